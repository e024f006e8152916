package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/dbx/internal/game"
)

// manager holds the sessions of this server process, set by RegisterTools.
var manager *Manager

// setupFile is an optional YAML setup path, set by main. Empty means the
// standard game.
var setupFile string

// SetSetupFile sets the path to the setup YAML file used by new_game.
func SetSetupFile(path string) {
	setupFile = path
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, m *Manager) {
	manager = m
	s.AddTool(newGameTool(), handleNewGame)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(buyCardTool(), handleBuyCard)
	s.AddTool(endPhaseTool(), handleEndPhase)
	s.AddTool(resolveChoiceTool(), handleResolveChoice)
	s.AddTool(listCardsTool(), handleListCards)
	s.AddTool(endGameTool(), handleEndGame)
}

// --- Tool definitions ---

func newGameTool() mcp.Tool {
	return mcp.NewTool("new_game",
		mcp.WithDescription("Start a new deck-building game and return its session ID, initial state, and events. "+
			"Multiple sessions may run concurrently; every other tool takes the session_id."),
		mcp.WithNumber("players", mcp.Description("Number of players (default 2)")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for reproducible games (0 or omitted for a random game)")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the full game state of a session without acting. Read-only. "+
			"The state includes the supply, every player's zones, the pending choice if any, and scores."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from the active player's hand. Action cards need the action phase and a "+
			"remaining action; treasure cards need the treasure phase. A rejected play leaves the state unchanged."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the active player's hand")),
	)
}

func buyCardTool() mcp.Tool {
	return mcp.NewTool("buy_card",
		mcp.WithDescription("Buy a card from the supply during the buy phase. Spending the last buy ends the turn "+
			"automatically."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithString("card", mcp.Required(), mcp.Description("Name of the card to buy, e.g. 'Silver'")),
	)
}

func endPhaseTool() mcp.Tool {
	return mcp.NewTool("end_phase",
		mcp.WithDescription("End the current phase: action → treasure → buy → next player's turn."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
	)
}

func resolveChoiceTool() mcp.Tool {
	return mcp.NewTool("resolve_choice",
		mcp.WithDescription("Answer the pending choice (see state.pending) with hand indices of the choosing "+
			"player. While a choice is pending all other commands are rejected."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based hand indices (e.g. '0 2'), or empty string to select nothing")),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its cost, types, and victory points. Read-only and session-independent."),
	)
}

func endGameTool() mcp.Tool {
	return mcp.NewTool("end_game",
		mcp.WithDescription("Discard a session. The final state is returned one last time."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
	)
}

// --- Tool handlers ---

func handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := game.Config{Players: 2}
	if setupFile != "" {
		parsed, err := game.ParseSetupFile(setupFile)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load setup file: %v", err), nil
		}
		cfg = parsed
	}
	if players := request.GetInt("players", 0); players != 0 {
		if players < 2 {
			return mcp.NewToolResultError("players must be >= 2"), nil
		}
		cfg.Players = players
	}
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Seed = int64(seed)
	}

	sess := manager.Create(cfg)
	return mcp.NewToolResultText(respondJSON(sess.apply(nil))), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}
	return mcp.NewToolResultText(respondJSON(sess.apply(nil))), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}
	index := request.GetInt("index", -1)
	resp := sess.apply(func(g *game.Game) error {
		return g.PlayCard(index)
	})
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleBuyCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}
	card := request.GetString("card", "")
	if card == "" {
		return mcp.NewToolResultError("card is required"), nil
	}
	resp := sess.apply(func(g *game.Game) error {
		return g.Buy(card)
	})
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleEndPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}
	resp := sess.apply(func(g *game.Game) error {
		return g.EndPhase()
	})
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleResolveChoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}

	var indices []int
	for _, part := range strings.Fields(request.GetString("indices", "")) {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", part), nil
		}
		indices = append(indices, idx)
	}

	resp := sess.apply(func(g *game.Game) error {
		return g.ResolveChoice(indices)
	})
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type cardInfo struct {
		Name  string   `json:"name"`
		Cost  int      `json:"cost"`
		Types []string `json:"types"`
		Coins int      `json:"coins,omitempty"`
		VP    int      `json:"vp,omitempty"`
	}
	var cards []cardInfo
	for _, name := range game.CardNames() {
		c := game.MustCard(name)
		info := cardInfo{Name: c.Name, Cost: c.Cost, Coins: c.TreasureValue(), VP: c.VP}
		for _, tag := range c.Types {
			info.Types = append(info.Types, tag.String())
		}
		cards = append(cards, info)
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, res := lookupSession(request)
	if res != nil {
		return res, nil
	}
	resp := sess.apply(nil)
	manager.Remove(sess.ID)
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// lookupSession resolves the session_id argument, returning an error result
// when the session is missing.
func lookupSession(request mcp.CallToolRequest) (*Session, *mcp.CallToolResult) {
	id := request.GetString("session_id", "")
	if id == "" {
		return nil, mcp.NewToolResultError("session_id is required. Use new_game first.")
	}
	sess, err := manager.Get(id)
	if err != nil {
		return nil, mcp.NewToolResultErrorf("Unknown session: %v", err)
	}
	return sess, nil
}

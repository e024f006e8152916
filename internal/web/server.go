package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/dbx/internal/game"
	gamelog "github.com/peterkuimelis/dbx/internal/log"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name  string   `json:"name"`
	Cost  int      `json:"cost"`
	Types []string `json:"types"`
	Coins int      `json:"coins,omitempty"`
	VP    int      `json:"vp,omitempty"`
}

// Server is the browser UI server. Each WebSocket connection owns one
// private game; connections never share state.
type Server struct {
	setupFile string
	mux       *http.ServeMux
}

// NewServer creates a web server. setupFile may be empty for the standard
// game.
func NewServer(setupFile string) *Server {
	s := &Server{
		setupFile: setupFile,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, name := range game.CardNames() {
		c := game.MustCard(name)
		ci := CardInfo{
			Name:  c.Name,
			Cost:  c.Cost,
			Coins: c.TreasureValue(),
			VP:    c.VP,
		}
		for _, tag := range c.Types {
			ci.Types = append(ci.Types, tag.String())
		}
		cards = append(cards, ci)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

// clientMessage is one command from the browser.
type clientMessage struct {
	Type    string `json:"type"` // new_game, play, buy, end, choose, state
	Players int    `json:"players,omitempty"`
	Seed    int64  `json:"seed,omitempty"`
	Index   int    `json:"index,omitempty"`
	Card    string `json:"card,omitempty"`
	Indices []int  `json:"indices,omitempty"`
}

// serverMessage is the reply to every command: the full state, the events
// since the last reply, and the command's error if it was rejected.
type serverMessage struct {
	Type   string         `json:"type"` // state or error
	State  *game.Snapshot `json:"state,omitempty"`
	Events []string       `json:"events"`
	Error  string         `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	sess := &wsSession{setupFile: s.setupFile}

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			return
		}
		reply, err := json.Marshal(sess.handle(data))
		if err != nil {
			log.Printf("WebSocket marshal error: %v", err)
			return
		}
		if err := wsConn.Write(ctx, websocket.MessageText, reply); err != nil {
			return
		}
	}
}

// wsSession is the per-connection game and event cursor.
type wsSession struct {
	setupFile string
	game      *game.Game
	cursor    int
}

// handle applies one browser command and builds the reply.
func (ws *wsSession) handle(data []byte) serverMessage {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return serverMessage{Type: "error", Events: []string{}, Error: "malformed message: " + err.Error()}
	}

	if msg.Type == "new_game" {
		return ws.newGame(msg)
	}
	if ws.game == nil {
		return serverMessage{Type: "error", Events: []string{}, Error: "no game started; send new_game first"}
	}

	var cmdErr error
	switch msg.Type {
	case "play":
		cmdErr = ws.game.PlayCard(msg.Index)
	case "buy":
		cmdErr = ws.game.Buy(msg.Card)
	case "end":
		cmdErr = ws.game.EndPhase()
	case "choose":
		cmdErr = ws.game.ResolveChoice(msg.Indices)
	case "state":
		// Read-only refresh.
	default:
		return serverMessage{Type: "error", Events: []string{}, Error: "unknown message type: " + msg.Type}
	}
	return ws.stateReply(cmdErr)
}

func (ws *wsSession) newGame(msg clientMessage) serverMessage {
	cfg := game.Config{Players: 2}
	if ws.setupFile != "" {
		parsed, err := game.ParseSetupFile(ws.setupFile)
		if err != nil {
			return serverMessage{Type: "error", Events: []string{}, Error: "setup file: " + err.Error()}
		}
		cfg = parsed
	}
	if msg.Players != 0 {
		if msg.Players < 2 {
			return serverMessage{Type: "error", Events: []string{}, Error: "players must be >= 2"}
		}
		cfg.Players = msg.Players
	}
	if msg.Seed != 0 {
		cfg.Seed = msg.Seed
	}
	ws.game = game.NewGame(cfg)
	ws.cursor = 0
	return ws.stateReply(nil)
}

func (ws *wsSession) stateReply(cmdErr error) serverMessage {
	snap := ws.game.Snapshot()
	events := ws.game.Events()
	fresh := make([]string, 0, len(events)-ws.cursor)
	for ; ws.cursor < len(events); ws.cursor++ {
		fresh = append(fresh, gamelog.FormatEvent(events[ws.cursor]))
	}
	out := serverMessage{Type: "state", State: &snap, Events: fresh}
	if cmdErr != nil {
		out.Error = cmdErr.Error()
	}
	return out
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/dbx/internal/game"
	"github.com/peterkuimelis/dbx/internal/log"
)

// Session is one game owned by the MCP server. The engine itself is
// synchronous, so a mutex around each command is all the concurrency
// control a session needs.
type Session struct {
	ID string

	mu     sync.Mutex
	game   *game.Game
	cursor int // events already reported to the client
}

// apply runs one command under the session lock and builds the response
// envelope. The command's error is reported in-band so the client sees
// rejected moves alongside the unchanged state.
func (s *Session) apply(cmd func(*game.Game) error) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cmdErr string
	if cmd != nil {
		if err := cmd(s.game); err != nil {
			cmdErr = err.Error()
		}
	}
	snap := s.game.Snapshot()
	events := s.game.Events()
	fresh := events[s.cursor:]
	s.cursor = len(events)

	return &ToolResponse{
		SessionID: s.ID,
		Events:    formatEvents(fresh),
		State:     &snap,
		Error:     cmdErr,
	}
}

// Manager tracks the live sessions of one MCP server process. Independent
// sessions run concurrently; each game instance is isolated.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create starts a game from the given config under a fresh session ID.
func (m *Manager) Create(cfg game.Config) *Session {
	s := &Session{
		ID:   uuid.NewString(),
		game: game.NewGame(cfg),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no session with ID %q", id)
	}
	return s, nil
}

// Remove drops a session. Removing an unknown ID is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// ToolResponse is the JSON envelope returned by all game tools.
type ToolResponse struct {
	SessionID string         `json:"session_id"`
	Events    []string       `json:"events"`
	State     *game.Snapshot `json:"state,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// formatEvents renders events as the human-readable log lines. Never nil,
// so the JSON field is always an array.
func formatEvents(events []log.GameEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = log.FormatEvent(e)
	}
	return out
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

package game

import "sort"

// Snapshot is a read-only copy of the full game state. Building one has no
// side effects.
type Snapshot struct {
	Turn       int              `json:"turn"`
	Phase      string           `json:"phase"`
	Active     int              `json:"active_player"`
	Actions    int              `json:"actions"`
	Buys       int              `json:"buys"`
	Coins      int              `json:"coins"`
	Supply     map[string]int   `json:"supply"`
	Players    []PlayerSnapshot `json:"players"`
	Trash      []string         `json:"trash,omitempty"`
	Pending    *Pending         `json:"pending,omitempty"`
	Over       bool             `json:"over,omitempty"`
	OverReason string           `json:"over_reason,omitempty"`
	Scores     []int            `json:"scores"`
}

// PlayerSnapshot shows one player's zones. Deck contents are reported as a
// sorted multiset so composition is visible without leaking draw order.
type PlayerSnapshot struct {
	Hand      []string `json:"hand"`
	Deck      []string `json:"deck"`
	DeckCount int      `json:"deck_count"`
	Discard   []string `json:"discard"`
	Played    []string `json:"played"`
}

// Snapshot captures the entire game state for clients and agents.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Turn:       g.turn,
		Phase:      g.phase.String(),
		Active:     g.active,
		Actions:    g.actions,
		Buys:       g.buys,
		Coins:      g.coins,
		Supply:     g.supply.Counts(),
		Trash:      cardNames(g.trash),
		Pending:    g.PendingChoice(),
		Over:       g.over,
		OverReason: g.overReason,
		Scores:     g.Scores(),
	}
	for _, p := range g.players {
		deck := cardNames(p.Deck)
		sort.Strings(deck)
		snap.Players = append(snap.Players, PlayerSnapshot{
			Hand:      cardNames(p.Hand),
			Deck:      deck,
			DeckCount: len(p.Deck),
			Discard:   cardNames(p.Discard),
			Played:    cardNames(p.Played),
		})
	}
	return snap
}

func cardNames(cards []*Card) []string {
	if len(cards) == 0 {
		return nil
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}

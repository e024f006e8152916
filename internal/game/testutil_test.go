package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/dbx/internal/log"
)

// newTestGame creates a deterministic game: fixed seed, no initial shuffle,
// memory logger. With NoShuffle the starting deck is drawn from the back, so
// each opening hand is 3 Estate + 2 Copper with 5 Copper left in the deck.
func newTestGame(t *testing.T, players int) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g := NewGame(Config{
		Players:   players,
		Seed:      1,
		NoShuffle: true,
		Logger:    logger,
	})
	return g, logger
}

// hand builds a hand from card names.
func hand(names ...string) []*Card {
	cards := make([]*Card, len(names))
	for i, name := range names {
		cards[i] = MustCard(name)
	}
	return cards
}

// setHand replaces a player's hand outright. Used to stage effect tests
// without scripting the draws that would produce the hand.
func setHand(g *Game, player int, names ...string) {
	g.players[player].Hand = hand(names...)
}

// advanceTo walks the active player through phases until the game reaches
// the wanted phase.
func advanceTo(t *testing.T, g *Game, phase Phase) {
	t.Helper()
	for g.phase != phase {
		if err := g.EndPhase(); err != nil {
			t.Fatalf("EndPhase() to reach %s: %v", phase, err)
		}
	}
}

// ownedCounts returns per-kind counts across all of one player's zones.
func ownedCounts(p *Player) map[string]int {
	counts := make(map[string]int)
	for _, zone := range [][]*Card{p.Deck, p.Hand, p.Discard, p.Played} {
		for _, c := range zone {
			counts[c.Name]++
		}
	}
	return counts
}

// assertErrIs fails unless err wraps want.
func assertErrIs(t *testing.T, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected error %v, got %v", want, err)
	}
}

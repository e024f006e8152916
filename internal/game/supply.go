package game

import (
	"fmt"
	"sort"
)

// DefaultEmptyPileLimit is the number of empty non-Province piles that ends
// the game.
const DefaultEmptyPileLimit = 3

// Supply is the shared bank of card piles all players purchase from. Counts
// only ever decrease, one card at a time, and never exceed their seeded
// values.
type Supply struct {
	piles          map[string]int
	initial        map[string]int
	emptyPileLimit int
}

// NewSupply seeds a supply from the given pile counts. Panics on unknown
// card names or negative counts: a corrupted configuration is a programmer
// error, not player input.
func NewSupply(counts map[string]int, emptyPileLimit int) *Supply {
	if emptyPileLimit <= 0 {
		emptyPileLimit = DefaultEmptyPileLimit
	}
	s := &Supply{
		piles:          make(map[string]int, len(counts)),
		initial:        make(map[string]int, len(counts)),
		emptyPileLimit: emptyPileLimit,
	}
	for name, count := range counts {
		if _, ok := CardRegistry[name]; !ok {
			panic(fmt.Sprintf("supply configured with unregistered card: %q", name))
		}
		if count < 0 {
			panic(fmt.Sprintf("supply configured with negative count for %q", name))
		}
		s.piles[name] = count
		s.initial[name] = count
	}
	return s
}

// Remaining returns the count left in the named pile (0 for absent piles).
func (s *Supply) Remaining(name string) int {
	return s.piles[name]
}

// Initial returns the seeded count of the named pile.
func (s *Supply) Initial(name string) int {
	return s.initial[name]
}

// Has reports whether the supply was seeded with the named pile.
func (s *Supply) Has(name string) bool {
	_, ok := s.initial[name]
	return ok
}

// Take removes one card from the named pile. The caller places the card in
// the receiving player's discard; a card leaves the supply exactly once.
func (s *Supply) Take(name string) (*Card, error) {
	if !s.Has(name) {
		return nil, fmt.Errorf("%w: %q not in supply", ErrUnknownCard, name)
	}
	if s.piles[name] == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSupplyExhausted, name)
	}
	s.piles[name]--
	return MustCard(name), nil
}

// EmptyPiles returns the names of all exhausted piles, sorted.
func (s *Supply) EmptyPiles() []string {
	var empty []string
	for name, count := range s.piles {
		if count == 0 {
			empty = append(empty, name)
		}
	}
	sort.Strings(empty)
	return empty
}

// IsGameOver reports whether the supply signals end of game: the Province
// pile is empty, or at least emptyPileLimit piles are empty. Once true it
// stays true, since counts never increase.
func (s *Supply) IsGameOver() bool {
	if s.Has("Province") && s.piles["Province"] == 0 {
		return true
	}
	return len(s.EmptyPiles()) >= s.emptyPileLimit
}

// Counts returns a copy of the remaining counts per pile.
func (s *Supply) Counts() map[string]int {
	out := make(map[string]int, len(s.piles))
	for name, count := range s.piles {
		out[name] = count
	}
	return out
}

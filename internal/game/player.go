package game

import (
	"fmt"
	"math/rand"
)

// HandSize is the number of cards drawn into a fresh hand.
const HandSize = 5

// Player owns the four per-player card zones. For every kind, the count
// across deck+hand+discard+played only changes when a card enters from the
// supply or leaves to the trash.
type Player struct {
	Deck    []*Card // draw order: top of deck is the last element
	Hand    []*Card
	Discard []*Card
	Played  []*Card // cards played this turn, cleared during cleanup
}

// Draw moves up to n cards from the deck into the hand. When the deck runs
// out mid-draw the entire discard is shuffled into the deck once and drawing
// continues. If deck and discard are both empty the draw stops early: a
// partial result, not an error. Returns cards drawn and discards reshuffled.
func (p *Player) Draw(n int, rng *rand.Rand) (drawn, reshuffled int) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			reshuffled += p.reshuffleDiscard(rng)
		}
		card := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		p.Hand = append(p.Hand, card)
		drawn++
	}
	return drawn, reshuffled
}

// reshuffleDiscard moves the whole discard into the (empty) deck in a
// uniformly random order. One atomic operation per exhaustion event.
func (p *Player) reshuffleDiscard(rng *rand.Rand) int {
	moved := len(p.Discard)
	p.Deck = append(p.Deck, p.Discard...)
	p.Discard = nil
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
	return moved
}

// ShuffleDeck randomizes the deck order. Used once at game setup.
func (p *Player) ShuffleDeck(rng *rand.Rand) {
	rng.Shuffle(len(p.Deck), func(i, j int) {
		p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
	})
}

// RemoveFromHand removes and returns the card at the given hand index.
func (p *Player) RemoveFromHand(index int) (*Card, error) {
	if index < 0 || index >= len(p.Hand) {
		return nil, fmt.Errorf("%w: hand index %d out of range (hand has %d)", ErrCardNotInHand, index, len(p.Hand))
	}
	card := p.Hand[index]
	p.Hand = append(p.Hand[:index], p.Hand[index+1:]...)
	return card, nil
}

// Gain places a card taken from the supply into the discard.
func (p *Player) Gain(card *Card) {
	p.Discard = append(p.Discard, card)
}

// CleanUp discards the hand and the played cards. Draws happen separately so
// the caller can log the reshuffle.
func (p *Player) CleanUp() {
	p.Discard = append(p.Discard, p.Hand...)
	p.Discard = append(p.Discard, p.Played...)
	p.Hand = nil
	p.Played = nil
}

// VictoryPoints sums VP over every zone the player owns.
func (p *Player) VictoryPoints() int {
	total := 0
	for _, zone := range [][]*Card{p.Deck, p.Hand, p.Discard, p.Played} {
		for _, c := range zone {
			total += c.VP
		}
	}
	return total
}

// CountOf returns how many copies of the named kind the player owns across
// all four zones.
func (p *Player) CountOf(name string) int {
	count := 0
	for _, zone := range [][]*Card{p.Deck, p.Hand, p.Discard, p.Played} {
		for _, c := range zone {
			if c.Name == name {
				count++
			}
		}
	}
	return count
}

// TotalCards returns the number of cards the player owns across all zones.
func (p *Player) TotalCards() int {
	return len(p.Deck) + len(p.Hand) + len(p.Discard) + len(p.Played)
}

package game

import (
	"fmt"
	"sort"
)

// Card is the immutable definition of one card kind. Runtime zones hold
// pointers to these shared definitions; all copies of a kind are
// indistinguishable.
type Card struct {
	Name   string
	Cost   int
	Types  []TypeTag
	Effect []EffectOp // executed in order when the card is played
	VP     int        // victory points at scoring time
}

func (c *Card) String() string {
	return c.Name
}

// HasType reports whether the card carries the given type tag.
func (c *Card) HasType(t TypeTag) bool {
	for _, tag := range c.Types {
		if tag == t {
			return true
		}
	}
	return false
}

// TreasureValue returns the coin value of a treasure card (0 for others).
// A treasure's descriptor is simply GainCoins(value).
func (c *Card) TreasureValue() int {
	if !c.HasType(TagTreasure) {
		return 0
	}
	for _, op := range c.Effect {
		if op.Code == OpGainCoins {
			return op.N
		}
	}
	return 0
}

// --- Base set ---

func Copper() *Card {
	return &Card{Name: "Copper", Cost: 0, Types: []TypeTag{TagTreasure}, Effect: []EffectOp{GainCoins(1)}}
}

func Silver() *Card {
	return &Card{Name: "Silver", Cost: 3, Types: []TypeTag{TagTreasure}, Effect: []EffectOp{GainCoins(2)}}
}

func Gold() *Card {
	return &Card{Name: "Gold", Cost: 6, Types: []TypeTag{TagTreasure}, Effect: []EffectOp{GainCoins(3)}}
}

func Estate() *Card {
	return &Card{Name: "Estate", Cost: 2, Types: []TypeTag{TagVictory}, VP: 1}
}

func Duchy() *Card {
	return &Card{Name: "Duchy", Cost: 5, Types: []TypeTag{TagVictory}, VP: 3}
}

func Province() *Card {
	return &Card{Name: "Province", Cost: 8, Types: []TypeTag{TagVictory}, VP: 6}
}

func Curse() *Card {
	return &Card{Name: "Curse", Cost: 0, Types: []TypeTag{TagCurse}, VP: -1}
}

// Moat — draw 2 cards.
func Moat() *Card {
	return &Card{Name: "Moat", Cost: 2, Types: []TypeTag{TagAction},
		Effect: []EffectOp{DrawCards(2)}}
}

// Chapel — trash up to 4 cards from your hand.
func Chapel() *Card {
	return &Card{Name: "Chapel", Cost: 2, Types: []TypeTag{TagAction},
		Effect: []EffectOp{TrashFromHand(4)}}
}

// Village — +2 actions, +1 card.
func Village() *Card {
	return &Card{Name: "Village", Cost: 3, Types: []TypeTag{TagAction},
		Effect: []EffectOp{GainActions(2), DrawCards(1)}}
}

// Woodcutter — +1 buy, +2 coins.
func Woodcutter() *Card {
	return &Card{Name: "Woodcutter", Cost: 3, Types: []TypeTag{TagAction},
		Effect: []EffectOp{GainBuys(1), GainCoins(2)}}
}

// Bureaucrat — gain a Silver.
func Bureaucrat() *Card {
	return &Card{Name: "Bureaucrat", Cost: 4, Types: []TypeTag{TagAction},
		Effect: []EffectOp{GainCard("Silver")}}
}

// Militia — +2 coins; each other player discards down to 3 cards.
func Militia() *Card {
	return &Card{Name: "Militia", Cost: 4, Types: []TypeTag{TagAction},
		Effect: []EffectOp{GainCoins(2), OthersDiscardTo(3)}}
}

// Smithy — +3 cards.
func Smithy() *Card {
	return &Card{Name: "Smithy", Cost: 4, Types: []TypeTag{TagAction},
		Effect: []EffectOp{DrawCards(3)}}
}

// Festival — +2 actions, +1 buy, +2 coins.
func Festival() *Card {
	return &Card{Name: "Festival", Cost: 5, Types: []TypeTag{TagAction},
		Effect: []EffectOp{GainActions(2), GainBuys(1), GainCoins(2)}}
}

// Laboratory — +2 cards, +1 action.
func Laboratory() *Card {
	return &Card{Name: "Laboratory", Cost: 5, Types: []TypeTag{TagAction},
		Effect: []EffectOp{DrawCards(2), GainActions(1)}}
}

// Market — +1 card, +1 action, +1 buy, +1 coin.
func Market() *Card {
	return &Card{Name: "Market", Cost: 5, Types: []TypeTag{TagAction},
		Effect: []EffectOp{DrawCards(1), GainActions(1), GainBuys(1), GainCoins(1)}}
}

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Copper":     Copper,
	"Silver":     Silver,
	"Gold":       Gold,
	"Estate":     Estate,
	"Duchy":      Duchy,
	"Province":   Province,
	"Curse":      Curse,
	"Moat":       Moat,
	"Chapel":     Chapel,
	"Village":    Village,
	"Woodcutter": Woodcutter,
	"Bureaucrat": Bureaucrat,
	"Militia":    Militia,
	"Smithy":     Smithy,
	"Festival":   Festival,
	"Laboratory": Laboratory,
	"Market":     Market,
}

// LookupCard looks up a card definition by name. Returns ErrUnknownCard for
// names outside the registry; player input must never panic.
func LookupCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return ctor(), nil
}

// MustCard is LookupCard for construction-time use with known-good names.
// Panics if the card is not found.
func MustCard(name string) *Card {
	c, err := LookupCard(name)
	if err != nil {
		panic(fmt.Sprintf("card not found in registry: %q", name))
	}
	return c
}

// CardNames returns every registered card name in sorted order.
func CardNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package game

import (
	"math/rand"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestDrawFromDeck(t *testing.T) {
	p := &Player{Deck: hand("Copper", "Estate", "Silver")}

	drawn, reshuffled := p.Draw(2, testRNG())
	if drawn != 2 || reshuffled != 0 {
		t.Fatalf("Draw(2) = (%d, %d), want (2, 0)", drawn, reshuffled)
	}
	// Top of deck is the last element
	if p.Hand[0].Name != "Silver" || p.Hand[1].Name != "Estate" {
		t.Errorf("drew %s, %s; want Silver, Estate", p.Hand[0], p.Hand[1])
	}
	if len(p.Deck) != 1 {
		t.Errorf("deck has %d cards, want 1", len(p.Deck))
	}
}

func TestDrawReshufflesDiscard(t *testing.T) {
	// Empty deck, five cards in discard: draw(5) must reshuffle once and
	// return exactly five cards, losing none.
	p := &Player{Discard: hand("Copper", "Copper", "Estate", "Silver", "Gold")}

	drawn, reshuffled := p.Draw(5, testRNG())
	if drawn != 5 {
		t.Fatalf("Draw(5) drew %d cards, want 5", drawn)
	}
	if reshuffled != 5 {
		t.Errorf("reshuffled %d cards, want 5", reshuffled)
	}
	if len(p.Deck) != 0 || len(p.Discard) != 0 {
		t.Errorf("deck=%d discard=%d after draw, want 0/0", len(p.Deck), len(p.Discard))
	}
	counts := ownedCounts(p)
	if counts["Copper"] != 2 || counts["Estate"] != 1 || counts["Silver"] != 1 || counts["Gold"] != 1 {
		t.Errorf("cards lost or duplicated in reshuffle: %v", counts)
	}
}

func TestDrawPartialWhenEmpty(t *testing.T) {
	// Fewer cards than requested is a partial result, not an error.
	p := &Player{Deck: hand("Copper"), Discard: hand("Estate")}

	drawn, _ := p.Draw(5, testRNG())
	if drawn != 2 {
		t.Fatalf("Draw(5) drew %d cards, want 2", drawn)
	}
	if len(p.Hand) != 2 {
		t.Errorf("hand has %d cards, want 2", len(p.Hand))
	}

	// Nothing at all left: zero drawn, still no error
	drawn, _ = p.Draw(3, testRNG())
	if drawn != 0 {
		t.Errorf("Draw(3) from empty zones drew %d, want 0", drawn)
	}
}

func TestDrawMidwayReshuffle(t *testing.T) {
	// Deck runs out mid-draw: the reshuffle happens once, then drawing
	// continues from the new deck.
	p := &Player{
		Deck:    hand("Copper", "Copper"),
		Discard: hand("Estate", "Estate", "Estate"),
	}

	drawn, reshuffled := p.Draw(4, testRNG())
	if drawn != 4 {
		t.Fatalf("Draw(4) drew %d, want 4", drawn)
	}
	if reshuffled != 3 {
		t.Errorf("reshuffled %d, want 3", reshuffled)
	}
	if len(p.Deck) != 1 || len(p.Discard) != 0 {
		t.Errorf("deck=%d discard=%d, want 1/0", len(p.Deck), len(p.Discard))
	}
}

func TestRemoveFromHandBounds(t *testing.T) {
	p := &Player{Hand: hand("Copper", "Estate")}

	if _, err := p.RemoveFromHand(2); err == nil {
		t.Error("out-of-range index should fail")
	} else {
		assertErrIs(t, err, ErrCardNotInHand)
	}
	if _, err := p.RemoveFromHand(-1); err == nil {
		t.Error("negative index should fail")
	}

	card, err := p.RemoveFromHand(1)
	if err != nil {
		t.Fatalf("RemoveFromHand(1): %v", err)
	}
	if card.Name != "Estate" {
		t.Errorf("removed %s, want Estate", card.Name)
	}
	if len(p.Hand) != 1 {
		t.Errorf("hand has %d cards, want 1", len(p.Hand))
	}
}

func TestCleanUpMovesHandAndPlayed(t *testing.T) {
	p := &Player{
		Hand:   hand("Copper", "Estate"),
		Played: hand("Smithy"),
	}
	p.CleanUp()
	if len(p.Hand) != 0 || len(p.Played) != 0 {
		t.Error("hand and played should be empty after cleanup")
	}
	if len(p.Discard) != 3 {
		t.Errorf("discard has %d cards, want 3", len(p.Discard))
	}
}

func TestVictoryPoints(t *testing.T) {
	p := &Player{
		Deck:    hand("Estate", "Copper"),
		Hand:    hand("Duchy"),
		Discard: hand("Province", "Curse"),
		Played:  hand("Smithy"),
	}
	// 1 + 3 + 6 - 1 = 9
	if got := p.VictoryPoints(); got != 9 {
		t.Errorf("VictoryPoints() = %d, want 9", got)
	}
}

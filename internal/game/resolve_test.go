package game

import (
	"testing"

	"github.com/peterkuimelis/dbx/internal/log"
)

func TestSmithyDrawsThree(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Smithy", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Smithy): %v", err)
	}
	if got := len(g.Player(0).Hand); got != 4 {
		t.Errorf("hand = %d cards, want 4 (1 left + 3 drawn)", got)
	}
	if g.Actions() != 0 {
		t.Errorf("actions = %d, want 0", g.Actions())
	}
	if got := g.Player(0).Played; len(got) != 1 || got[0].Name != "Smithy" {
		t.Error("Smithy should be in the played zone")
	}
}

func TestVillageGainsActions(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Village")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Village): %v", err)
	}
	// 1 - 1 (play cost) + 2 = 2
	if g.Actions() != 2 {
		t.Errorf("actions = %d, want 2", g.Actions())
	}
	if len(g.Player(0).Hand) != 1 {
		t.Errorf("hand = %d cards, want 1 drawn", len(g.Player(0).Hand))
	}
}

func TestMarketAllCounters(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Market")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Market): %v", err)
	}
	if g.Actions() != 1 || g.Buys() != 2 || g.Coins() != 1 {
		t.Errorf("counters = %d/%d/%d, want 1/2/1", g.Actions(), g.Buys(), g.Coins())
	}
	if len(g.Player(0).Hand) != 1 {
		t.Errorf("hand = %d cards, want 1", len(g.Player(0).Hand))
	}
}

func TestFestivalNoDraw(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Festival")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Festival): %v", err)
	}
	if g.Actions() != 2 || g.Buys() != 2 || g.Coins() != 2 {
		t.Errorf("counters = %d/%d/%d, want 2/2/2", g.Actions(), g.Buys(), g.Coins())
	}
	if len(g.Player(0).Hand) != 0 {
		t.Errorf("hand = %d cards, want 0", len(g.Player(0).Hand))
	}
}

func TestChainedActions(t *testing.T) {
	// Village grants the action Smithy then consumes.
	g, _ := newTestGame(t, 2)
	g.players[0].Hand = hand("Village", "Smithy")
	g.players[0].Deck = hand("Copper", "Copper", "Copper", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Village): %v", err)
	}
	// Village drew one Copper; Smithy is now index 0.
	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Smithy): %v", err)
	}
	if g.Actions() != 1 {
		t.Errorf("actions = %d, want 1", g.Actions())
	}
	if len(g.Player(0).Hand) != 4 {
		t.Errorf("hand = %d cards, want 4", len(g.Player(0).Hand))
	}
}

func TestBureaucratGainsSilver(t *testing.T) {
	g, logger := newTestGame(t, 2)
	setHand(g, 0, "Bureaucrat")
	before := g.supply.Remaining("Silver")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Bureaucrat): %v", err)
	}
	if g.supply.Remaining("Silver") != before-1 {
		t.Error("Silver pile not decremented")
	}
	p := g.Player(0)
	if len(p.Discard) != 1 || p.Discard[0].Name != "Silver" {
		t.Error("gained Silver should land in the discard")
	}
	if len(logger.EventsOfType(log.EventGain)) != 1 {
		t.Error("expected a gain event")
	}
}

func TestGainFromEmptyPileIsNoop(t *testing.T) {
	g, _ := newTestGame(t, 2)
	g.supply.piles["Silver"] = 0
	setHand(g, 0, "Bureaucrat")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Bureaucrat): %v", err)
	}
	if len(g.Player(0).Discard) != 0 {
		t.Error("nothing should be gained from an empty pile")
	}
}

func TestMilitiaPendingChoice(t *testing.T) {
	g, logger := newTestGame(t, 2)
	setHand(g, 0, "Militia")
	setHand(g, 1, "Copper", "Copper", "Estate", "Estate", "Estate")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Militia): %v", err)
	}
	// Coins apply before the choice suspends.
	if g.Coins() != 2 {
		t.Errorf("coins = %d, want 2", g.Coins())
	}
	pending := g.PendingChoice()
	if pending == nil {
		t.Fatal("expected a pending choice")
	}
	if pending.Player != 1 {
		t.Errorf("pending player = %d, want 1", pending.Player)
	}

	// Every other command is rejected while the choice is outstanding.
	assertErrIs(t, g.PlayCard(0), ErrPendingChoice)
	assertErrIs(t, g.EndPhase(), ErrPendingChoice)
	assertErrIs(t, g.Buy("Copper"), ErrPendingChoice)

	// Wrong selection size
	assertErrIs(t, g.ResolveChoice([]int{0}), ErrInvalidChoice)
	// Out-of-range and duplicate indices
	assertErrIs(t, g.ResolveChoice([]int{0, 9}), ErrInvalidChoice)
	assertErrIs(t, g.ResolveChoice([]int{1, 1}), ErrInvalidChoice)

	// Discard the two Coppers.
	if err := g.ResolveChoice([]int{0, 1}); err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	if g.PendingChoice() != nil {
		t.Error("choice should be cleared")
	}
	p1 := g.Player(1)
	if len(p1.Hand) != 3 {
		t.Errorf("opponent hand = %d cards, want 3", len(p1.Hand))
	}
	if len(p1.Discard) != 2 {
		t.Errorf("opponent discard = %d cards, want 2", len(p1.Discard))
	}
	if len(logger.EventsOfType(log.EventDiscard)) != 2 {
		t.Error("expected two discard events")
	}
}

func TestMilitiaSkipsSmallHands(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Militia")
	setHand(g, 1, "Copper", "Copper", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Militia): %v", err)
	}
	if g.PendingChoice() != nil {
		t.Error("a hand of 3 needs no discard; no choice should be raised")
	}
}

func TestMilitiaMultipleOpponents(t *testing.T) {
	g, _ := newTestGame(t, 3)
	setHand(g, 0, "Militia")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Militia): %v", err)
	}

	// Opponents resolve in turn order: player 1 first, then player 2.
	pending := g.PendingChoice()
	if pending == nil || pending.Player != 1 {
		t.Fatalf("pending = %+v, want player 1", pending)
	}
	if err := g.ResolveChoice([]int{0, 1}); err != nil {
		t.Fatalf("ResolveChoice for player 1: %v", err)
	}

	pending = g.PendingChoice()
	if pending == nil || pending.Player != 2 {
		t.Fatalf("pending = %+v, want player 2", pending)
	}
	if err := g.ResolveChoice([]int{3, 4}); err != nil {
		t.Fatalf("ResolveChoice for player 2: %v", err)
	}

	if g.PendingChoice() != nil {
		t.Error("all choices resolved; none should remain")
	}
	for i := 1; i < 3; i++ {
		if got := len(g.Player(i).Hand); got != 3 {
			t.Errorf("player %d hand = %d cards, want 3", i, got)
		}
	}
}

func TestChapelTrash(t *testing.T) {
	g, logger := newTestGame(t, 2)
	setHand(g, 0, "Chapel", "Curse", "Curse", "Estate", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Chapel): %v", err)
	}
	pending := g.PendingChoice()
	if pending == nil || pending.Player != 0 {
		t.Fatalf("pending = %+v, want player 0", pending)
	}

	// Trashing more than 4 is invalid; up to 4 is fine.
	if err := g.ResolveChoice([]int{0, 1}); err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	if got := len(g.TrashedCards()); got != 2 {
		t.Errorf("trash = %d cards, want 2", got)
	}
	p := g.Player(0)
	if len(p.Hand) != 2 {
		t.Errorf("hand = %d cards, want 2", len(p.Hand))
	}
	// Trashed cards leave the player permanently.
	if p.CountOf("Curse") != 0 {
		t.Error("trashed Curses still owned by the player")
	}
	if len(logger.EventsOfType(log.EventTrash)) != 2 {
		t.Error("expected two trash events")
	}
}

func TestChapelTrashNothing(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Chapel", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Chapel): %v", err)
	}
	if err := g.ResolveChoice(nil); err != nil {
		t.Fatalf("ResolveChoice(nil): %v", err)
	}
	if g.PendingChoice() != nil {
		t.Error("empty selection should clear the choice")
	}
	if len(g.Player(0).Hand) != 1 {
		t.Error("hand should be untouched")
	}
}

func TestChapelLimit(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Chapel", "Copper", "Copper", "Copper", "Copper", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Chapel): %v", err)
	}
	assertErrIs(t, g.ResolveChoice([]int{0, 1, 2, 3, 4}), ErrInvalidChoice)
	if err := g.ResolveChoice([]int{0, 1, 2, 3}); err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
}

func TestOpsResumeAfterChoice(t *testing.T) {
	// Ops behind a choice op stay suspended until the choice resolves.
	g, _ := newTestGame(t, 2)
	probe := &Card{
		Name:   "Probe",
		Cost:   4,
		Types:  []TypeTag{TagAction},
		Effect: []EffectOp{OthersDiscardTo(3), DrawCards(2)},
	}
	g.players[0].Hand = []*Card{probe}
	g.players[0].Deck = hand("Copper", "Copper", "Copper")

	if err := g.PlayCard(0); err != nil {
		t.Fatalf("PlayCard(Probe): %v", err)
	}
	if len(g.Player(0).Hand) != 0 {
		t.Fatal("draw op ran before the choice resolved")
	}
	if err := g.ResolveChoice([]int{0, 1}); err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	if got := len(g.Player(0).Hand); got != 2 {
		t.Errorf("hand = %d cards after resume, want 2", got)
	}
}

func TestResolveChoiceWithoutPending(t *testing.T) {
	g, _ := newTestGame(t, 2)
	assertErrIs(t, g.ResolveChoice([]int{0}), ErrNoPendingChoice)
}

func TestRejectedCommandLeavesStateUnchanged(t *testing.T) {
	g, _ := newTestGame(t, 2)
	setHand(g, 0, "Copper", "Smithy")
	before := ownedCounts(g.Player(0))
	actions, buys, coins := g.Actions(), g.Buys(), g.Coins()

	// Treasure in the action phase is rejected before any mutation.
	if err := g.PlayCard(0); err == nil {
		t.Fatal("expected rejection")
	}

	after := ownedCounts(g.Player(0))
	for name, n := range before {
		if after[name] != n {
			t.Errorf("count of %s changed from %d to %d", name, n, after[name])
		}
	}
	if g.Actions() != actions || g.Buys() != buys || g.Coins() != coins {
		t.Error("counters changed on a rejected command")
	}
}

func TestConservationThroughEffects(t *testing.T) {
	// Drawing, playing and cleanup move cards between zones but never
	// create or destroy them.
	g, _ := newTestGame(t, 2)
	before := ownedCounts(g.Player(0))

	// Play turns of end-end-end for both players a few times.
	for i := 0; i < 6; i++ {
		advanceTo(t, g, PhaseBuy)
		if err := g.EndPhase(); err != nil {
			t.Fatalf("EndPhase(): %v", err)
		}
	}

	after := ownedCounts(g.Player(0))
	for name, n := range before {
		if after[name] != n {
			t.Errorf("count of %s changed from %d to %d", name, n, after[name])
		}
	}
	if g.Player(0).TotalCards() != 10 {
		t.Errorf("player 0 owns %d cards, want 10", g.Player(0).TotalCards())
	}
}

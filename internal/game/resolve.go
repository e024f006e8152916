package game

import (
	"fmt"
	"sort"

	"github.com/peterkuimelis/dbx/internal/log"
)

// pendingChoice is the engine's single suspension point: an effect op that
// needs a player selection. While set, the command API accepts only
// ResolveChoice.
type pendingChoice struct {
	code    OpCode
	player  int        // who must choose
	n       int        // discard-to target hand size, or max cards to trash
	waiting []int      // further players who must choose after this one
	rest    []EffectOp // descriptor ops suspended behind this choice
	prompt  string
}

// Pending describes the outstanding choice for queries and clients.
type Pending struct {
	Player int    `json:"player"`
	Op     string `json:"op"`
	N      int    `json:"n"`
	Prompt string `json:"prompt"`
}

// PendingChoice returns the outstanding choice, or nil.
func (g *Game) PendingChoice() *Pending {
	if g.pending == nil {
		return nil
	}
	return &Pending{
		Player: g.pending.player,
		Op:     g.pending.code.String(),
		N:      g.pending.n,
		Prompt: g.pending.prompt,
	}
}

// runEffect executes descriptor ops in order against the game state. A
// choice op suspends the remaining ops into a pending choice; ResolveChoice
// resumes them.
func (g *Game) runEffect(ops []EffectOp) {
	for i, op := range ops {
		switch op.Code {
		case OpDrawCards:
			g.drawLogged(g.active, op.N)
		case OpGainActions:
			g.actions += op.N
		case OpGainBuys:
			g.buys += op.N
		case OpGainCoins:
			g.coins += op.N
			g.logger.Log(log.NewCoinsEvent(g.turn, g.phase.String(), g.active, op.N, g.coins))
		case OpGainCard:
			g.gainFromSupply(op.Card)
		case OpOthersDiscardTo:
			if g.beginOthersDiscard(op.N, ops[i+1:]) {
				return
			}
		case OpTrashFromHand:
			if g.beginTrash(op.N, ops[i+1:]) {
				return
			}
		}
	}
}

// gainFromSupply moves one card from the supply into the active player's
// discard. Gaining from an empty or absent pile is a no-op, not an error.
func (g *Game) gainFromSupply(name string) {
	if !g.supply.Has(name) || g.supply.Remaining(name) == 0 {
		return
	}
	card, err := g.supply.Take(name)
	if err != nil {
		return
	}
	g.players[g.active].Gain(card)
	g.logger.Log(log.NewGainEvent(g.turn, g.phase.String(), g.active, name, "effect"))
	if g.supply.Remaining(name) == 0 {
		g.logger.Log(log.NewPileEmptyEvent(g.turn, g.phase.String(), name))
	}
	g.checkGameOver()
}

// beginOthersDiscard raises a pending choice for each other player, in turn
// order, whose hand exceeds n cards. Returns false if nobody is affected.
func (g *Game) beginOthersDiscard(n int, rest []EffectOp) bool {
	var affected []int
	for off := 1; off < len(g.players); off++ {
		idx := (g.active + off) % len(g.players)
		if len(g.players[idx].Hand) > n {
			affected = append(affected, idx)
		}
	}
	if len(affected) == 0 {
		return false
	}
	g.pending = &pendingChoice{
		code:    OpOthersDiscardTo,
		player:  affected[0],
		n:       n,
		waiting: affected[1:],
		rest:    rest,
		prompt:  fmt.Sprintf("discard down to %d cards", n),
	}
	g.logger.Log(log.NewChoiceRequiredEvent(g.turn, g.phase.String(), affected[0], g.pending.prompt))
	return true
}

// beginTrash raises a pending choice for the active player to trash up to n
// hand cards. An empty hand makes the op a no-op.
func (g *Game) beginTrash(n int, rest []EffectOp) bool {
	if len(g.players[g.active].Hand) == 0 {
		return false
	}
	g.pending = &pendingChoice{
		code:   OpTrashFromHand,
		player: g.active,
		n:      n,
		rest:   rest,
		prompt: fmt.Sprintf("trash up to %d cards from hand", n),
	}
	g.logger.Log(log.NewChoiceRequiredEvent(g.turn, g.phase.String(), g.active, g.pending.prompt))
	return true
}

// ResolveChoice answers the outstanding pending choice with hand indices of
// the choosing player. Selection is validated in full before any card moves.
func (g *Game) ResolveChoice(selection []int) error {
	if g.over {
		return ErrGameOver
	}
	pc := g.pending
	if pc == nil {
		return ErrNoPendingChoice
	}
	p := g.players[pc.player]

	picked, err := validateSelection(selection, len(p.Hand))
	if err != nil {
		return err
	}
	switch pc.code {
	case OpOthersDiscardTo:
		need := len(p.Hand) - pc.n
		if len(picked) != need {
			return fmt.Errorf("%w: must discard exactly %d card(s), got %d", ErrInvalidChoice, need, len(picked))
		}
	case OpTrashFromHand:
		if len(picked) > pc.n {
			return fmt.Errorf("%w: may trash at most %d card(s), got %d", ErrInvalidChoice, pc.n, len(picked))
		}
	}

	// Validated: move the chosen cards. Indices are descending so removals
	// do not shift later picks.
	for _, idx := range picked {
		card := p.Hand[idx]
		p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
		switch pc.code {
		case OpOthersDiscardTo:
			p.Discard = append(p.Discard, card)
			g.logger.Log(log.NewDiscardEvent(g.turn, g.phase.String(), pc.player, card.Name))
		case OpTrashFromHand:
			g.trash = append(g.trash, card)
			g.logger.Log(log.NewTrashEvent(g.turn, g.phase.String(), pc.player, card.Name))
		}
	}
	g.logger.Log(log.NewChoiceResolvedEvent(g.turn, g.phase.String(), pc.player, len(picked)))

	// Hand the same choice to the next affected player, if any.
	if pc.code == OpOthersDiscardTo && len(pc.waiting) > 0 {
		next := pc.waiting[0]
		g.pending = &pendingChoice{
			code:    pc.code,
			player:  next,
			n:       pc.n,
			waiting: pc.waiting[1:],
			rest:    pc.rest,
			prompt:  pc.prompt,
		}
		g.logger.Log(log.NewChoiceRequiredEvent(g.turn, g.phase.String(), next, g.pending.prompt))
		return nil
	}

	// Choice fully resolved: resume the suspended descriptor ops.
	g.pending = nil
	g.runEffect(pc.rest)
	return nil
}

// validateSelection checks hand indices for range and duplicates and returns
// them sorted descending.
func validateSelection(selection []int, handLen int) ([]int, error) {
	picked := make([]int, len(selection))
	copy(picked, selection)
	sort.Sort(sort.Reverse(sort.IntSlice(picked)))
	for i, idx := range picked {
		if idx < 0 || idx >= handLen {
			return nil, fmt.Errorf("%w: hand index %d out of range (hand has %d)", ErrInvalidChoice, idx, handLen)
		}
		if i > 0 && picked[i-1] == idx {
			return nil, fmt.Errorf("%w: duplicate hand index %d", ErrInvalidChoice, idx)
		}
	}
	return picked, nil
}

// TrashedCards returns the cards removed from the game, oldest first.
func (g *Game) TrashedCards() []*Card {
	out := make([]*Card, len(g.trash))
	copy(out, g.trash)
	return out
}

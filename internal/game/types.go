package game

import "errors"

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseAction
	PhaseTreasure
	PhaseBuy
	PhaseCleanup
)

func (p Phase) String() string {
	switch p {
	case PhaseAction:
		return "Action Phase"
	case PhaseTreasure:
		return "Treasure Phase"
	case PhaseBuy:
		return "Buy Phase"
	case PhaseCleanup:
		return "Cleanup Phase"
	default:
		return "None"
	}
}

// TypeTag classifies a card. A card carries one or more tags.
type TypeTag int

const (
	TagTreasure TypeTag = iota
	TagAction
	TagVictory
	TagCurse
)

func (t TypeTag) String() string {
	switch t {
	case TagTreasure:
		return "Treasure"
	case TagAction:
		return "Action"
	case TagVictory:
		return "Victory"
	case TagCurse:
		return "Curse"
	default:
		return "Unknown"
	}
}

// --- Errors ---

// All command-level failures are returned to the caller; a rejected command
// leaves the game state unchanged.
var (
	ErrInvalidPhase       = errors.New("command not allowed in current phase")
	ErrCardNotInHand      = errors.New("card not in hand")
	ErrNoActionsRemaining = errors.New("no actions remaining")
	ErrInsufficientBuys   = errors.New("no buys remaining")
	ErrInsufficientCoins  = errors.New("insufficient coins")
	ErrSupplyExhausted    = errors.New("supply pile is empty")
	ErrUnknownCard        = errors.New("unknown card name")
	ErrPendingChoice      = errors.New("a choice is pending")
	ErrNoPendingChoice    = errors.New("no choice is pending")
	ErrInvalidChoice      = errors.New("invalid choice selection")
	ErrGameOver           = errors.New("game is over")
)

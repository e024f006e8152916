package game

// OpCode identifies one primitive effect operation. The set is closed: new
// cards are data-only combinations of these ops.
type OpCode int

const (
	OpDrawCards OpCode = iota
	OpGainActions
	OpGainBuys
	OpGainCoins
	OpOthersDiscardTo
	OpGainCard
	OpTrashFromHand
)

func (c OpCode) String() string {
	switch c {
	case OpDrawCards:
		return "DrawCards"
	case OpGainActions:
		return "GainActions"
	case OpGainBuys:
		return "GainBuys"
	case OpGainCoins:
		return "GainCoins"
	case OpOthersDiscardTo:
		return "OtherPlayersDiscardTo"
	case OpGainCard:
		return "GainCard"
	case OpTrashFromHand:
		return "TrashFromHand"
	default:
		return "Unknown"
	}
}

// EffectOp is a single step of a card's effect descriptor. Ops execute in
// order when the card is played; OpOthersDiscardTo and OpTrashFromHand
// suspend execution into a pending choice.
type EffectOp struct {
	Code OpCode
	N    int    // count for draw/actions/buys/coins/discard-to/trash-up-to
	Card string // card name, for OpGainCard
}

// --- Op constructors, used by the card catalog ---

func DrawCards(n int) EffectOp       { return EffectOp{Code: OpDrawCards, N: n} }
func GainActions(n int) EffectOp     { return EffectOp{Code: OpGainActions, N: n} }
func GainBuys(n int) EffectOp        { return EffectOp{Code: OpGainBuys, N: n} }
func GainCoins(n int) EffectOp       { return EffectOp{Code: OpGainCoins, N: n} }
func OthersDiscardTo(n int) EffectOp { return EffectOp{Code: OpOthersDiscardTo, N: n} }
func GainCard(name string) EffectOp  { return EffectOp{Code: OpGainCard, Card: name} }
func TrashFromHand(n int) EffectOp   { return EffectOp{Code: OpTrashFromHand, N: n} }

package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventNewTurn EventType = iota
	EventPhaseChange
	EventDraw
	EventShuffle
	EventPlay
	EventBuy
	EventGain
	EventDiscard
	EventTrash
	EventCoins
	EventChoiceRequired
	EventChoiceResolved
	EventPileEmpty
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventNewTurn:
		return "NewTurn"
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventPlay:
		return "Play"
	case EventBuy:
		return "Buy"
	case EventGain:
		return "Gain"
	case EventDiscard:
		return "Discard"
	case EventTrash:
		return "Trash"
	case EventCoins:
		return "Coins"
	case EventChoiceRequired:
		return "ChoiceRequired"
	case EventChoiceResolved:
		return "ChoiceResolved"
	case EventPileEmpty:
		return "PileEmpty"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Action Phase")
	Player  int       // acting player (0-based)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}

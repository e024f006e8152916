package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/peterkuimelis/dbx/internal/log"
)

// Config holds configuration for creating a new game.
type Config struct {
	Players        int
	Seed           int64          // RNG seed (0 for time-based)
	NoShuffle      bool           // skip initial deck shuffles (for deterministic tests)
	SupplyCounts   map[string]int // nil for the standard supply
	StartingDeck   []string       // nil for 7 Copper + 3 Estate
	EmptyPileLimit int            // empty piles that end the game (0 for default)
	Logger         log.EventLogger
}

// DefaultSupplyCounts returns the standard supply for the given player count.
func DefaultSupplyCounts(players int) map[string]int {
	victory := 8
	if players > 2 {
		victory = 12
	}
	counts := map[string]int{
		"Copper":   60,
		"Silver":   40,
		"Gold":     30,
		"Estate":   victory,
		"Duchy":    victory,
		"Province": victory,
		"Curse":    10 * (players - 1),
	}
	for _, name := range CardNames() {
		if MustCard(name).HasType(TagAction) {
			counts[name] = 10
		}
	}
	return counts
}

// DefaultStartingDeck returns the standard starting deck.
func DefaultStartingDeck() []string {
	deck := make([]string, 0, 10)
	for i := 0; i < 7; i++ {
		deck = append(deck, "Copper")
	}
	for i := 0; i < 3; i++ {
		deck = append(deck, "Estate")
	}
	return deck
}

// Game is one self-contained game instance: players, supply, turn state and
// RNG. Instances share nothing, so independent games may run concurrently.
// A single instance is synchronous: each command fully resolves before the
// next is accepted.
type Game struct {
	players []*Player
	supply  *Supply
	trash   []*Card

	active  int // index of the active player
	phase   Phase
	actions int
	buys    int
	coins   int
	turn    int // 1-based, advances every player turn

	pending    *pendingChoice
	over       bool
	overReason string

	rng    *rand.Rand
	logger log.EventLogger
}

// NewGame creates a game from the given config and deals starting hands.
// Panics on a corrupted configuration (unknown cards, bad player count);
// malformed player input after construction never panics.
func NewGame(cfg Config) *Game {
	if cfg.Players < 2 {
		panic(fmt.Sprintf("game requires at least 2 players, got %d", cfg.Players))
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	counts := cfg.SupplyCounts
	if counts == nil {
		counts = DefaultSupplyCounts(cfg.Players)
	}
	starting := cfg.StartingDeck
	if starting == nil {
		starting = DefaultStartingDeck()
	}

	g := &Game{
		supply: NewSupply(counts, cfg.EmptyPileLimit),
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		turn:   1,
		phase:  PhaseAction,
	}
	for i := 0; i < cfg.Players; i++ {
		p := &Player{}
		for _, name := range starting {
			p.Deck = append(p.Deck, MustCard(name))
		}
		if !cfg.NoShuffle {
			p.ShuffleDeck(g.rng)
		}
		p.Draw(HandSize, g.rng)
		g.players = append(g.players, p)
	}
	g.resetCounters()
	g.logger.Log(log.NewTurnEvent(g.turn, g.active))
	return g
}

func (g *Game) resetCounters() {
	g.actions = 1
	g.buys = 1
	g.coins = 0
}

// --- Queries ---

func (g *Game) NumPlayers() int    { return len(g.players) }
func (g *Game) ActivePlayer() int  { return g.active }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Actions() int       { return g.actions }
func (g *Game) Buys() int          { return g.buys }
func (g *Game) Coins() int         { return g.coins }
func (g *Game) Turn() int          { return g.turn }
func (g *Game) Over() bool         { return g.over }
func (g *Game) OverReason() string { return g.overReason }
func (g *Game) Supply() *Supply    { return g.supply }

// Player returns the player at the given index for read-only inspection.
func (g *Game) Player(i int) *Player {
	return g.players[i]
}

// Events returns the accumulated event log.
func (g *Game) Events() []log.GameEvent {
	return g.logger.Events()
}

// Scores returns each player's victory points. The engine does not pick a
// winner; clients compare scores themselves.
func (g *Game) Scores() []int {
	scores := make([]int, len(g.players))
	for i, p := range g.players {
		scores[i] = p.VictoryPoints()
	}
	return scores
}

// --- Commands ---

// checkCommand runs the guards shared by every top-level command.
func (g *Game) checkCommand() error {
	if g.over {
		return ErrGameOver
	}
	if g.pending != nil {
		return fmt.Errorf("%w: %s", ErrPendingChoice, g.pending.prompt)
	}
	return nil
}

// PlayCard plays the card at the given hand index of the active player.
// Action cards are legal only in the action phase and consume an action;
// treasure cards are legal only in the treasure phase. All validation
// happens before any mutation.
func (g *Game) PlayCard(handIndex int) error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	p := g.players[g.active]
	if handIndex < 0 || handIndex >= len(p.Hand) {
		return fmt.Errorf("%w: hand index %d out of range (hand has %d)", ErrCardNotInHand, handIndex, len(p.Hand))
	}
	card := p.Hand[handIndex]

	switch g.phase {
	case PhaseAction:
		if !card.HasType(TagAction) {
			return fmt.Errorf("%w: cannot play %s in the action phase", ErrInvalidPhase, card.Name)
		}
		if g.actions == 0 {
			return ErrNoActionsRemaining
		}
	case PhaseTreasure:
		if !card.HasType(TagTreasure) {
			return fmt.Errorf("%w: cannot play %s in the treasure phase", ErrInvalidPhase, card.Name)
		}
	default:
		return fmt.Errorf("%w: cannot play cards in the %s", ErrInvalidPhase, g.phase)
	}

	// Validated: move the card and resolve its effect.
	p.Hand = append(p.Hand[:handIndex], p.Hand[handIndex+1:]...)
	p.Played = append(p.Played, card)
	if g.phase == PhaseAction {
		g.actions--
	}
	g.logger.Log(log.NewPlayEvent(g.turn, g.phase.String(), g.active, card.Name))
	g.runEffect(card.Effect)
	return nil
}

// Buy purchases the named card from the supply into the active player's
// discard, consuming one buy and the card's cost in coins. The game-end
// condition is re-checked after every successful purchase, and the turn
// ends automatically when the last buy is spent.
func (g *Game) Buy(name string) error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	if g.phase != PhaseBuy {
		return fmt.Errorf("%w: buying is only allowed in the buy phase", ErrInvalidPhase)
	}
	if g.buys == 0 {
		return ErrInsufficientBuys
	}
	def, err := LookupCard(name)
	if err != nil {
		return err
	}
	if !g.supply.Has(name) {
		return fmt.Errorf("%w: %q not in supply", ErrUnknownCard, name)
	}
	if g.supply.Remaining(name) == 0 {
		return fmt.Errorf("%w: %s", ErrSupplyExhausted, name)
	}
	if g.coins < def.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCoins, name, def.Cost, g.coins)
	}

	card, err := g.supply.Take(name)
	if err != nil {
		return err
	}
	g.players[g.active].Gain(card)
	g.buys--
	g.coins -= def.Cost
	g.logger.Log(log.NewBuyEvent(g.turn, g.phase.String(), g.active, name, def.Cost))
	if g.supply.Remaining(name) == 0 {
		g.logger.Log(log.NewPileEmptyEvent(g.turn, g.phase.String(), name))
	}
	if g.checkGameOver() {
		return nil
	}
	if g.buys == 0 {
		g.cleanup()
	}
	return nil
}

// EndPhase advances Action → Treasure → Buy → Cleanup. Ending the buy phase
// runs cleanup and starts the next player's turn.
func (g *Game) EndPhase() error {
	if err := g.checkCommand(); err != nil {
		return err
	}
	switch g.phase {
	case PhaseAction:
		g.phase = PhaseTreasure
	case PhaseTreasure:
		g.phase = PhaseBuy
	case PhaseBuy:
		g.cleanup()
		return nil
	default:
		return fmt.Errorf("%w: cannot end the %s", ErrInvalidPhase, g.phase)
	}
	g.logger.Log(log.NewPhaseChangeEvent(g.turn, g.phase.String()))
	return nil
}

// cleanup discards the active player's hand and played cards, draws a new
// hand of five, advances the active player and resets the counters. This
// transition is unconditional and has no player-visible command.
func (g *Game) cleanup() {
	g.phase = PhaseCleanup
	g.logger.Log(log.NewPhaseChangeEvent(g.turn, g.phase.String()))

	p := g.players[g.active]
	p.CleanUp()
	g.drawLogged(g.active, HandSize)

	g.active = (g.active + 1) % len(g.players)
	g.turn++
	g.resetCounters()
	g.phase = PhaseAction
	g.logger.Log(log.NewTurnEvent(g.turn, g.active))
}

// drawLogged draws for the given player and logs the reshuffle and draw.
func (g *Game) drawLogged(player, n int) {
	p := g.players[player]
	drawn, reshuffled := p.Draw(n, g.rng)
	if reshuffled > 0 {
		g.logger.Log(log.NewShuffleEvent(g.turn, g.phase.String(), player, reshuffled))
	}
	if drawn > 0 {
		g.logger.Log(log.NewDrawEvent(g.turn, g.phase.String(), player, drawn))
	}
}

// checkGameOver latches the game-over flag from the supply's end condition.
func (g *Game) checkGameOver() bool {
	if g.over {
		return true
	}
	if !g.supply.IsGameOver() {
		return false
	}
	g.over = true
	if g.supply.Has("Province") && g.supply.Remaining("Province") == 0 {
		g.overReason = "Province pile empty"
	} else {
		g.overReason = fmt.Sprintf("%d supply piles empty", len(g.supply.EmptyPiles()))
	}
	g.logger.Log(log.NewGameOverEvent(g.turn, g.phase.String(), g.overReason))
	return true
}

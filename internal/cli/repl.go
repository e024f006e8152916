package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/peterkuimelis/dbx/internal/game"
	"github.com/peterkuimelis/dbx/internal/log"
)

// REPL drives a hot-seat game from a terminal. All players share one
// prompt; the prompt names whoever must act next.
type REPL struct {
	game *game.Game
	in   *bufio.Reader
	out  io.Writer
	seen int // events already printed
}

// New wraps a game in a REPL reading commands from in and writing to out.
func New(g *game.Game, in io.Reader, out io.Writer) *REPL {
	return &REPL{game: g, in: bufio.NewReader(in), out: out}
}

// Run reads commands until the game ends, input is exhausted, or the
// context is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Type 'help' for commands.")
	r.renderState()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.flushEvents()
		if r.game.Over() {
			r.renderGameOver()
			return nil
		}

		fmt.Fprint(r.out, r.prompt())
		line, err := r.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		if r.dispatch(strings.Fields(strings.TrimSpace(line))) {
			return nil
		}
	}
}

// prompt names the player the engine is waiting on.
func (r *REPL) prompt() string {
	if p := r.game.PendingChoice(); p != nil {
		return fmt.Sprintf("P%d %s > ", p.Player+1, p.Prompt)
	}
	return fmt.Sprintf("P%d T%d %s > ", r.game.ActivePlayer()+1, r.game.Turn(), r.game.Phase())
}

// dispatch runs one command. Returns true when the REPL should exit.
func (r *REPL) dispatch(args []string) bool {
	if len(args) == 0 {
		return false
	}
	var err error
	switch args[0] {
	case "play":
		err = r.cmdPlay(args[1:])
	case "buy":
		err = r.cmdBuy(args[1:])
	case "end":
		err = r.game.EndPhase()
	case "choose":
		err = r.cmdChoose(args[1:])
	case "state":
		r.renderState()
	case "supply":
		r.renderSupply()
	case "hand":
		r.renderHand()
	case "scores":
		r.renderScores()
	case "help":
		r.renderHelp()
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(r.out, "Unknown command %q. Type 'help'.\n", args[0])
	}
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
	return false
}

func (r *REPL) cmdPlay(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: play N (hand position, 1-based)")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("usage: play N (hand position, 1-based)")
	}
	return r.game.PlayCard(n - 1)
}

func (r *REPL) cmdBuy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: buy CARD")
	}
	return r.game.Buy(args[0])
}

func (r *REPL) cmdChoose(args []string) error {
	indices := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("usage: choose [N ...] (hand positions, 1-based)")
		}
		indices = append(indices, n-1)
	}
	return r.game.ResolveChoice(indices)
}

// flushEvents prints every event logged since the last flush.
func (r *REPL) flushEvents() {
	events := r.game.Events()
	for ; r.seen < len(events); r.seen++ {
		fmt.Fprintln(r.out, log.FormatEvent(events[r.seen]))
	}
}

func (r *REPL) renderState() {
	g := r.game
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "╔══════════════════════════════════════════════════════╗")
	for i := 0; i < g.NumPlayers(); i++ {
		p := g.Player(i)
		marker := "  "
		if i == g.ActivePlayer() {
			marker = "▶ "
		}
		fmt.Fprintf(r.out, "║ %sP%d  Hand: %d  Deck: %d  Discard: %d  In play: %d\n",
			marker, i+1, len(p.Hand), len(p.Deck), len(p.Discard), len(p.Played))
	}
	fmt.Fprintln(r.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(r.out, "Turn %d | %s | Actions: %d  Buys: %d  Coins: %d\n",
		g.Turn(), g.Phase(), g.Actions(), g.Buys(), g.Coins())
	r.renderHand()
}

// renderHand shows the hand of whoever must act: the pending chooser if a
// choice is outstanding, otherwise the active player.
func (r *REPL) renderHand() {
	who := r.game.ActivePlayer()
	if p := r.game.PendingChoice(); p != nil {
		who = p.Player
	}
	hand := r.game.Player(who).Hand
	if len(hand) == 0 {
		fmt.Fprintf(r.out, "P%d hand is empty\n", who+1)
		return
	}
	fmt.Fprintf(r.out, "P%d hand: ", who+1)
	for i, c := range hand {
		fmt.Fprintf(r.out, "[%d] %s  ", i+1, c.Name)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) renderSupply() {
	counts := r.game.Supply().Counts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	// Cheap piles first, ties alphabetical.
	sort.Slice(names, func(i, j int) bool {
		ci, cj := game.MustCard(names[i]).Cost, game.MustCard(names[j]).Cost
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})
	fmt.Fprintln(r.out, "\nSupply:")
	for _, name := range names {
		fmt.Fprintf(r.out, "  %-10s cost %d  (%d left)\n", name, game.MustCard(name).Cost, counts[name])
	}
}

func (r *REPL) renderScores() {
	for i, vp := range r.game.Scores() {
		fmt.Fprintf(r.out, "P%d: %d VP\n", i+1, vp)
	}
}

func (r *REPL) renderGameOver() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	fmt.Fprintln(r.out, "          GAME OVER")
	fmt.Fprintln(r.out, "═══════════════════════════════════")
	fmt.Fprintln(r.out, r.game.OverReason())
	r.renderScores()
	fmt.Fprintln(r.out, "═══════════════════════════════════")
}

func (r *REPL) renderHelp() {
	fmt.Fprint(r.out, `Commands:
  play N        play the Nth card in hand (1-based)
  buy CARD      buy the named card from the supply
  end           end the current phase
  choose N ...  answer a pending choice with hand positions (1-based)
  state         show the full game state
  supply        show the supply piles
  hand          show the acting player's hand
  scores        show victory points
  quit          leave the game
`)
}

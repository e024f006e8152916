package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/dbx/internal/cli"
	"github.com/peterkuimelis/dbx/internal/game"
)

func main() {
	players := flag.Int("players", 2, "number of players (hot-seat)")
	seed := flag.Int64("seed", 0, "RNG seed, 0 for random")
	setup := flag.String("setup", "", "path to a setup YAML file (overrides -players)")
	flag.Parse()

	cfg := game.Config{Players: *players, Seed: *seed}
	if *setup != "" {
		parsed, err := game.ParseSetupFile(*setup)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if parsed.Seed == 0 {
			parsed.Seed = *seed
		}
		cfg = parsed
	}
	if cfg.Players < 2 {
		fmt.Fprintln(os.Stderr, "Error: need at least 2 players")
		os.Exit(1)
	}

	g := game.NewGame(cfg)
	repl := cli.New(g, os.Stdin, os.Stdout)
	if err := repl.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

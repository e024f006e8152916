package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SetupFile is the top-level YAML structure for a game setup. Omitted
// sections fall back to the standard game.
type SetupFile struct {
	Players        int         `yaml:"players"`
	Seed           int64       `yaml:"seed"`
	EmptyPileLimit int         `yaml:"empty_pile_limit"`
	Supply         []PileEntry `yaml:"supply"`
	StartingDeck   []CardEntry `yaml:"starting_deck"`
}

// PileEntry overrides one supply pile count.
type PileEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// CardEntry is a card and its count in the starting deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ParseSetupFile parses a YAML setup file into a game Config. File input is
// validated here so construction never panics on a bad file.
func ParseSetupFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return parseSetup(data)
}

func parseSetup(data []byte) (Config, error) {
	var sf SetupFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return Config{}, fmt.Errorf("parse setup YAML: %w", err)
	}

	cfg := Config{
		Players:        sf.Players,
		Seed:           sf.Seed,
		EmptyPileLimit: sf.EmptyPileLimit,
	}
	if cfg.Players == 0 {
		cfg.Players = 2
	}
	if cfg.Players < 2 {
		return Config{}, fmt.Errorf("setup needs at least 2 players, got %d", cfg.Players)
	}

	if len(sf.Supply) > 0 {
		counts := DefaultSupplyCounts(cfg.Players)
		for _, pile := range sf.Supply {
			if _, err := LookupCard(pile.Name); err != nil {
				return Config{}, fmt.Errorf("setup supply: %w", err)
			}
			if pile.Count < 0 {
				return Config{}, fmt.Errorf("setup supply: negative count for %q", pile.Name)
			}
			counts[pile.Name] = pile.Count
		}
		cfg.SupplyCounts = counts
	}

	if len(sf.StartingDeck) > 0 {
		var deck []string
		for _, entry := range sf.StartingDeck {
			if _, err := LookupCard(entry.Name); err != nil {
				return Config{}, fmt.Errorf("setup starting deck: %w", err)
			}
			for i := 0; i < entry.Count; i++ {
				deck = append(deck, entry.Name)
			}
		}
		cfg.StartingDeck = deck
	}

	return cfg, nil
}

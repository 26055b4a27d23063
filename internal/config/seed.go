package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Seed describes events, drill templates and rosters loaded into the
// store on startup.
type Seed struct {
	Events []SeedEvent `koanf:"events"`
}

// SeedEvent is one event with its drills and roster.
type SeedEvent struct {
	ID            string       `koanf:"id"`
	LeagueID      string       `koanf:"league_id"`
	ActiveDrillID string       `koanf:"active_drill_id"`
	Drills        []SeedDrill  `koanf:"drills"`
	Roster        []SeedPlayer `koanf:"roster"`
}

// SeedDrill is one drill template entry.
type SeedDrill struct {
	ID             string  `koanf:"id"`
	Label          string  `koanf:"label"`
	Unit           string  `koanf:"unit"`
	Min            float64 `koanf:"min"`
	Max            float64 `koanf:"max"`
	HigherIsBetter bool    `koanf:"higher_is_better"`
	Weight         float64 `koanf:"weight"`
}

// SeedPlayer is one roster entry.
type SeedPlayer struct {
	ID           string `koanf:"id"`
	RosterNumber string `koanf:"roster_number"`
	Name         string `koanf:"name"`
}

// LoadSeed parses a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	var s Seed
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	for _, ev := range s.Events {
		if ev.ID == "" {
			return nil, fmt.Errorf("%w: seed event missing id", ErrInvalidConfig)
		}
	}
	return &s, nil
}

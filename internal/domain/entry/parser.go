// Package entry turns one line of operator input into a validated
// candidate score entry.
package entry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fieldday/scorekeeper/internal/adapters/roster"
	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// Mode selects how the input is shaped.
type Mode int

const (
	// ModeStandard takes two already-separated fields.
	ModeStandard Mode = iota
	// ModeRapid takes one combined string, split on the first occurrence
	// of a recognized delimiter.
	ModeRapid
)

// rapidDelimiters are the recognized separators for rapid entry.
const rapidDelimiters = " ,-"

// Input is one line of operator input.
type Input struct {
	Mode        Mode
	PlayerField string // standard mode: roster number
	ScoreField  string // standard mode: raw score string
	Raw         string // rapid mode: combined "number<delim>score"
}

// Parser validates operator input against the roster and the active
// drill's value domain. Pure apart from the roster lookup.
type Parser struct {
	roster roster.Resolver
}

// NewParser creates a parser over the given roster resolver.
func NewParser(r roster.Resolver) *Parser {
	return &Parser{roster: r}
}

// Parse validates one input line and returns a candidate for the active
// drill. Validation order: field presence, player resolution, score
// numeric and within the drill's inclusive domain.
func (p *Parser) Parse(ctx context.Context, eventID string, drill model.Drill, actor string, in Input) (model.Candidate, error) {
	playerField, scoreField, err := splitFields(in)
	if err != nil {
		return model.Candidate{}, err
	}

	player, err := p.roster.Resolve(ctx, eventID, playerField)
	if err != nil {
		if errors.Is(err, roster.ErrUnknownPlayer) {
			return model.Candidate{}, fmt.Errorf("roster number %q: %w", playerField, ErrUnknownPlayer)
		}
		return model.Candidate{}, fmt.Errorf("resolve player: %w", err)
	}

	value, err := strconv.ParseFloat(scoreField, 64)
	if err != nil {
		return model.Candidate{}, fmt.Errorf("score %q is not numeric: %w", scoreField, ErrInvalidScore)
	}
	if !drill.InDomain(value) {
		return model.Candidate{}, fmt.Errorf("score %v outside [%v, %v] for drill %s: %w",
			value, drill.Min, drill.Max, drill.ID, ErrInvalidScore)
	}

	return model.Candidate{
		EventID:  eventID,
		PlayerID: player.ID,
		DrillID:  drill.ID,
		Value:    value,
		Actor:    actor,
	}, nil
}

// splitFields extracts the player and score fields for either mode.
func splitFields(in Input) (playerField, scoreField string, err error) {
	switch in.Mode {
	case ModeRapid:
		raw := strings.TrimSpace(in.Raw)
		idx := strings.IndexAny(raw, rapidDelimiters)
		if idx < 0 {
			return "", "", fmt.Errorf("no delimiter in %q: %w", raw, ErrMissingField)
		}
		playerField = strings.TrimSpace(raw[:idx])
		scoreField = strings.TrimSpace(raw[idx+1:])
	default:
		playerField = strings.TrimSpace(in.PlayerField)
		scoreField = strings.TrimSpace(in.ScoreField)
	}

	if playerField == "" || scoreField == "" {
		return "", "", fmt.Errorf("player and score are both required: %w", ErrMissingField)
	}
	return playerField, scoreField, nil
}

// Package roster resolves operator-entered roster numbers to players.
// The snapshot is refreshed by the caller, never by this package.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// ErrUnknownPlayer is returned when a roster number does not resolve.
var ErrUnknownPlayer = errors.New("unknown player")

// Resolver resolves a roster number within an event.
type Resolver interface {
	Resolve(ctx context.Context, eventID, rosterNumber string) (model.Player, error)
}

// Snapshot is an in-memory Resolver holding a caller-refreshed roster.
type Snapshot struct {
	mu      sync.RWMutex
	players map[string]map[string]model.Player // eventID -> rosterNumber -> player
}

// NewSnapshot creates an empty roster snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{players: make(map[string]map[string]model.Player)}
}

// Replace swaps the roster for an event with the given players.
func (s *Snapshot) Replace(eventID string, players []model.Player) {
	byNumber := make(map[string]model.Player, len(players))
	for _, p := range players {
		byNumber[p.RosterNumber] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[eventID] = byNumber
}

// Resolve looks up a roster number for an event.
func (s *Snapshot) Resolve(ctx context.Context, eventID, rosterNumber string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[eventID][rosterNumber]
	if !ok {
		return model.Player{}, fmt.Errorf("roster number %q in event %s: %w", rosterNumber, eventID, ErrUnknownPlayer)
	}
	return p, nil
}

// Package store defines the remote entry store contract and its
// implementations. The store is the single source of truth for events
// and recorded scores; event state is mirrored in two logical locations
// (a league-scoped record and a global-index record) and lock writes
// must land in both.
package store

import (
	"context"
	"time"

	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// Store provides read/write access to events and score entries.
type Store interface {
	// GetEvent returns the event read from the global-index location.
	// Returns ErrNotFound if the event is unknown.
	GetEvent(ctx context.Context, eventID string) (model.Event, error)

	// PutEvent creates or replaces an event in both mirrored locations.
	// Used for seeding and by external provisioning.
	PutEvent(ctx context.Context, ev model.Event) error

	// SetEventLocked writes the lock state to every mirrored location.
	// Either all locations are updated or an error is returned.
	SetEventLocked(ctx context.Context, eventID string, locked bool, at time.Time, reason string) error

	// GetScore returns the entry for the triple, or ErrNotFound.
	GetScore(ctx context.Context, eventID, playerID, drillID string) (model.ScoreEntry, error)

	// PutScore creates or replaces the entry for its triple.
	PutScore(ctx context.Context, entry model.ScoreEntry) error

	// ListScores returns all entries recorded for the event.
	ListScores(ctx context.Context, eventID string) ([]model.ScoreEntry, error)
}

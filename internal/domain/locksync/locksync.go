// Package locksync toggles the event-wide "results are final" flag using
// a write, read-back, audit saga so an unverified write is a first-class
// outcome instead of a logged side effect.
package locksync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldday/scorekeeper/internal/adapters/audit"
	"github.com/fieldday/scorekeeper/internal/adapters/store"
	"github.com/fieldday/scorekeeper/pkg/logger"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

// ErrVerification means the lock write succeeded but the read-back
// disagrees. The caller must re-fetch authoritative state rather than
// assume either value.
var ErrVerification = errors.New("lock verification mismatch")

// LockResult reports the outcome of a toggle.
type LockResult struct {
	IsLocked bool
	Changed  bool
	Verified bool
}

// Synchronizer applies and verifies lock state changes.
type Synchronizer struct {
	store store.Store
	audit audit.Sink
	log   logger.Logger
	now   func() time.Time
}

// Option applies a configuration option to the Synchronizer.
type Option func(*Synchronizer)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a lock synchronizer.
func New(st store.Store, sink audit.Sink, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store: st,
		audit: sink,
		log:   logger.Named("locksync"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle moves the event to desired lock state. Toggling to the current
// state is an idempotent no-op. The write covers every mirrored storage
// location, is read back for verification, and is audited once verified.
func (s *Synchronizer) Toggle(ctx context.Context, eventID string, desired bool, actor, reason string) (LockResult, error) {
	ev, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		metrics.RecordStoreError("get_event")
		return LockResult{}, fmt.Errorf("fetch event: %w", err)
	}

	if ev.Locked == desired {
		return LockResult{IsLocked: desired, Changed: false, Verified: true}, nil
	}

	at := s.now()
	if err := s.store.SetEventLocked(ctx, eventID, desired, at, reason); err != nil {
		metrics.RecordStoreError("set_locked")
		return LockResult{}, fmt.Errorf("write lock state: %w", err)
	}

	// Read back from the store to confirm the write landed.
	check, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		metrics.RecordStoreError("get_event")
		return LockResult{}, fmt.Errorf("verify lock state: %w", err)
	}
	if check.Locked != desired {
		metrics.RecordLockVerifyFailure()
		s.log.Warn(ctx, "lock write did not verify",
			logger.String("event", eventID),
			logger.Bool("desired", desired),
			logger.Bool("observed", check.Locked),
		)
		return LockResult{IsLocked: check.Locked, Changed: true, Verified: false}, ErrVerification
	}

	metrics.RecordLockToggle(desired)
	rec := audit.Record{
		ID:       uuid.NewString(),
		EventID:  eventID,
		Actor:    actor,
		Previous: ev.Locked,
		New:      desired,
		Reason:   reason,
		At:       at,
	}
	if err := s.audit.Append(ctx, rec); err != nil {
		// The lock itself is verified; a lost audit row is not fatal.
		s.log.Error(ctx, "audit append failed", logger.Error(err), logger.String("event", eventID))
	}

	s.log.Info(ctx, "event lock toggled",
		logger.String("event", eventID),
		logger.Bool("locked", desired),
		logger.String("actor", actor),
	)
	return LockResult{IsLocked: desired, Changed: true, Verified: true}, nil
}

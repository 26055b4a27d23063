// Package resolve decides whether a candidate entry collides with an
// existing score and commits, prompts, or rejects it.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldday/scorekeeper/internal/adapters/store"
	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/internal/session"
	"github.com/fieldday/scorekeeper/pkg/logger"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

// Outcome classifies the result of a submission or decision.
type Outcome int

const (
	// OutcomeCommitted means the entry was written to the store.
	OutcomeCommitted Outcome = iota
	// OutcomeAwaitingDecision means an existing entry collides and the
	// operator must decide Replace or Cancel.
	OutcomeAwaitingDecision
	// OutcomeRejected means the submission was refused (event locked).
	OutcomeRejected
	// OutcomeCancelled means the operator discarded the candidate.
	OutcomeCancelled
)

// Result carries the outcome and its supporting values.
type Result struct {
	Outcome   Outcome
	Candidate model.Candidate
	Entry     model.ScoreEntry  // committed entry when OutcomeCommitted
	Existing  *model.ScoreEntry // colliding entry when OutcomeAwaitingDecision
	Reason    error             // rejection reason when OutcomeRejected
}

// DecisionKind is the operator's answer to an AwaitingDecision prompt.
type DecisionKind int

const (
	// Replace commits the candidate over the existing entry.
	Replace DecisionKind = iota
	// Cancel discards the candidate; nothing is written.
	Cancel
)

// Decision resolves one pending duplicate.
type Decision struct {
	Kind               DecisionKind
	PersistAutoReplace bool // on Replace: auto-replace this drill for the rest of the session
}

// Engine implements duplicate resolution over the remote entry store.
type Engine struct {
	store store.Store
	log   logger.Logger
	now   func() time.Time
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides the commit timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a duplicate resolution engine.
func NewEngine(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: st,
		log:   logger.Named("resolve"),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit processes one candidate. The lock check always precedes the
// duplicate check. A session with an unresolved decision cannot submit.
func (e *Engine) Submit(ctx context.Context, st *session.State, cand model.Candidate) (Result, error) {
	if st.Pending() != nil {
		return Result{}, ErrDecisionPending
	}

	ev, err := e.store.GetEvent(ctx, cand.EventID)
	if err != nil {
		metrics.RecordStoreError("get_event")
		return Result{}, fmt.Errorf("fetch event: %w", err)
	}
	if ev.Locked {
		metrics.RecordEntryRejected("locked")
		return Result{Outcome: OutcomeRejected, Candidate: cand, Reason: ErrEventLocked}, nil
	}

	existing, err := e.store.GetScore(ctx, cand.EventID, cand.PlayerID, cand.DrillID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return e.commit(ctx, st, cand, false)
	case err != nil:
		metrics.RecordStoreError("get_score")
		return Result{}, fmt.Errorf("lookup existing score: %w", err)
	}

	if st.AutoReplace(cand.DrillID) {
		metrics.RecordAutoReplace()
		return e.commit(ctx, st, cand, true)
	}

	st.SetPending(&session.PendingDecision{Candidate: cand, Existing: existing})
	metrics.RecordDuplicatePrompt()
	e.log.Debug(ctx, "duplicate requires decision",
		logger.String("player", cand.PlayerID),
		logger.String("drill", cand.DrillID),
		logger.Float64("existing", existing.Value),
		logger.Float64("candidate", cand.Value),
	)
	return Result{Outcome: OutcomeAwaitingDecision, Candidate: cand, Existing: &existing}, nil
}

// Resolve answers the session's pending duplicate decision. Cancel leaves
// no observable state change. Replace re-checks the lock before writing,
// since it may have flipped during the operator round-trip.
func (e *Engine) Resolve(ctx context.Context, st *session.State, d Decision) (Result, error) {
	p := st.Pending()
	if p == nil {
		return Result{}, ErrNoDecisionPending
	}

	if d.Kind == Cancel {
		st.ClearPending()
		return Result{Outcome: OutcomeCancelled, Candidate: p.Candidate}, nil
	}

	ev, err := e.store.GetEvent(ctx, p.Candidate.EventID)
	if err != nil {
		metrics.RecordStoreError("get_event")
		return Result{}, fmt.Errorf("fetch event: %w", err)
	}
	if ev.Locked {
		st.ClearPending()
		metrics.RecordEntryRejected("locked")
		return Result{Outcome: OutcomeRejected, Candidate: p.Candidate, Reason: ErrEventLocked}, nil
	}

	res, err := e.commit(ctx, st, p.Candidate, true)
	if err != nil {
		return Result{}, err
	}
	st.ClearPending()
	if d.PersistAutoReplace {
		st.SetAutoReplace(p.Candidate.DrillID)
	}
	return res, nil
}

// commit writes the candidate as the triple's single entry.
func (e *Engine) commit(ctx context.Context, st *session.State, cand model.Candidate, replacing bool) (Result, error) {
	entry := model.ScoreEntry{
		EventID:   cand.EventID,
		PlayerID:  cand.PlayerID,
		DrillID:   cand.DrillID,
		Value:     cand.Value,
		EnteredAt: e.now(),
		EnteredBy: cand.Actor,
	}
	if err := e.store.PutScore(ctx, entry); err != nil {
		metrics.RecordStoreError("put_score")
		return Result{}, fmt.Errorf("commit entry: %w", err)
	}

	st.RecordEntry(cand.DrillID)
	metrics.RecordEntryCommitted()
	if replacing {
		metrics.RecordEntryReplaced()
	}
	e.log.Debug(ctx, "entry committed",
		logger.String("player", cand.PlayerID),
		logger.String("drill", cand.DrillID),
		logger.Float64("value", cand.Value),
		logger.Bool("replaced", replacing),
	)
	return Result{Outcome: OutcomeCommitted, Candidate: cand, Entry: entry}, nil
}

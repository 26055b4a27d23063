// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fieldday/scorekeeper/internal/adapters/audit"
	"github.com/fieldday/scorekeeper/internal/adapters/roster"
	"github.com/fieldday/scorekeeper/internal/adapters/store"
	"github.com/fieldday/scorekeeper/internal/config"
	"github.com/fieldday/scorekeeper/internal/domain/entry"
	"github.com/fieldday/scorekeeper/internal/domain/guard"
	"github.com/fieldday/scorekeeper/internal/domain/locksync"
	"github.com/fieldday/scorekeeper/internal/domain/model"
	"github.com/fieldday/scorekeeper/internal/domain/ranking"
	"github.com/fieldday/scorekeeper/internal/domain/resolve"
	"github.com/fieldday/scorekeeper/internal/session"
	"github.com/fieldday/scorekeeper/pkg/logger"
	"github.com/fieldday/scorekeeper/pkg/metrics"
)

// Service wires the entry pipeline, lock synchronizer and ranking engine
// over the configured adapters, and owns the registry of open sessions.
type Service struct {
	mu sync.RWMutex

	// Adapters
	store  store.Store
	audit  audit.Sink
	roster *roster.Snapshot

	// Engines
	parser *entry.Parser
	engine *resolve.Engine
	locks  *locksync.Synchronizer

	// Event templates: eventID -> drillID -> drill
	drills map[string]map[string]model.Drill

	// Open sessions by ID
	sessions map[string]*session.Session

	// Configuration
	sessionQueueSize int

	started bool
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStore sets the remote entry store implementation.
func WithStore(st store.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithAuditSink sets the lock audit sink.
func WithAuditSink(sink audit.Sink) Option {
	return func(s *Service) {
		if sink != nil {
			s.audit = sink
		}
	}
}

// WithSessionQueueSize bounds each session's command queue.
func WithSessionQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sessionQueueSize = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		roster:           roster.NewSnapshot(),
		drills:           make(map[string]map[string]model.Drill),
		sessions:         make(map[string]*session.Session),
		sessionQueueSize: 64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Named("service")
	}
	if s.store == nil {
		s.store = store.NewMemStore()
		s.log.Info(ctx, "using in-memory entry store")
	}
	if s.audit == nil {
		s.audit = audit.NewMemLog()
	}

	s.parser = entry.NewParser(s.roster)
	s.engine = resolve.NewEngine(s.store)
	s.locks = locksync.New(s.store, s.audit)

	s.started = true
	s.log.Info(ctx, "scoring service started")
	return nil
}

// Stop closes all open sessions.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	for id, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, id)
	}
	metrics.UpdateActiveSessions(0)
	s.started = false
	s.log.Info(context.Background(), "scoring service stopped")
}

// RegisterEvent installs an event, its drill template and its roster.
// Used by seeding and by external provisioning.
func (s *Service) RegisterEvent(ctx context.Context, ev model.Event, drills []model.Drill, players []model.Player) error {
	if err := s.store.PutEvent(ctx, ev); err != nil {
		return fmt.Errorf("register event: %w", err)
	}

	byID := make(map[string]model.Drill, len(drills))
	for _, d := range drills {
		byID[d.ID] = d
	}

	s.mu.Lock()
	s.drills[ev.ID] = byID
	s.mu.Unlock()

	s.roster.Replace(ev.ID, players)
	return nil
}

// Seed loads events from a parsed seed file.
func (s *Service) Seed(ctx context.Context, seed *config.Seed) error {
	for _, se := range seed.Events {
		ev := model.Event{
			ID:            se.ID,
			LeagueID:      se.LeagueID,
			ActiveDrillID: se.ActiveDrillID,
		}
		drills := make([]model.Drill, 0, len(se.Drills))
		for _, d := range se.Drills {
			drills = append(drills, model.Drill{
				ID:             d.ID,
				Label:          d.Label,
				Unit:           d.Unit,
				Min:            d.Min,
				Max:            d.Max,
				HigherIsBetter: d.HigherIsBetter,
				Weight:         d.Weight,
			})
		}
		players := make([]model.Player, 0, len(se.Roster))
		for _, p := range se.Roster {
			players = append(players, model.Player{
				ID:           p.ID,
				RosterNumber: p.RosterNumber,
				Name:         p.Name,
			})
		}
		if err := s.RegisterEvent(ctx, ev, drills, players); err != nil {
			return err
		}
		s.log.Info(ctx, "seeded event",
			logger.String("event", se.ID),
			logger.Int("drills", len(drills)),
			logger.Int("roster", len(players)),
		)
	}
	return nil
}

// drillFor returns a drill from an event's template.
func (s *Service) drillFor(eventID, drillID string) (model.Drill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID, ok := s.drills[eventID]
	if !ok {
		return model.Drill{}, fmt.Errorf("event %s: %w", eventID, ErrUnknownEvent)
	}
	d, ok := byID[drillID]
	if !ok {
		return model.Drill{}, fmt.Errorf("drill %s in event %s: %w", drillID, eventID, ErrUnknownDrill)
	}
	return d, nil
}

func (s *Service) sessionByID(id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrUnknownSession)
	}
	return sess, nil
}

// StartSession opens an entry session for an event and active drill.
func (s *Service) StartSession(ctx context.Context, eventID, actor, drillID string) (string, error) {
	ev, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("fetch event: %w", err)
	}
	drill, err := s.drillFor(eventID, drillID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	state := session.NewState(id, eventID, ev.LeagueID, actor, drill.ID)
	s.sessions[id] = session.New(state,
		session.WithQueueSize(s.sessionQueueSize),
		session.WithLogger(s.log.Named("session")),
	)
	metrics.UpdateActiveSessions(len(s.sessions))

	s.log.Info(ctx, "session started",
		logger.String("session", id),
		logger.String("event", eventID),
		logger.String("drill", drillID),
		logger.String("actor", actor),
	)
	return id, nil
}

// EndSession closes a session and discards its client-local state.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", sessionID, ErrUnknownSession)
	}
	delete(s.sessions, sessionID)
	metrics.UpdateActiveSessions(len(s.sessions))
	s.mu.Unlock()

	sess.Close()
	s.log.Info(ctx, "session ended", logger.String("session", sessionID))
	return nil
}

// SubmitEntry parses one line of operator input against the session's
// active drill and runs it through duplicate resolution. Commands run
// strictly one at a time per session.
func (s *Service) SubmitEntry(ctx context.Context, sessionID string, in entry.Input) (resolve.Result, error) {
	sess, err := s.sessionByID(sessionID)
	if err != nil {
		return resolve.Result{}, err
	}

	var res resolve.Result
	err = sess.Do(ctx, func(ctx context.Context) error {
		st := sess.State
		drill, derr := s.drillFor(st.EventID, st.ActiveDrillID)
		if derr != nil {
			return derr
		}

		cand, perr := s.parser.Parse(ctx, st.EventID, drill, st.Actor, in)
		if perr != nil {
			if kind := entry.Kind(perr); kind != "" {
				metrics.RecordParseError(kind)
			}
			return perr
		}

		var serr error
		res, serr = s.engine.Submit(ctx, st, cand)
		return serr
	})
	return res, err
}

// ResolveDuplicate answers the session's pending duplicate decision.
func (s *Service) ResolveDuplicate(ctx context.Context, sessionID string, d resolve.Decision) (resolve.Result, error) {
	sess, err := s.sessionByID(sessionID)
	if err != nil {
		return resolve.Result{}, err
	}

	var res resolve.Result
	err = sess.Do(ctx, func(ctx context.Context) error {
		var rerr error
		res, rerr = s.engine.Resolve(ctx, sess.State, d)
		return rerr
	})
	return res, err
}

// RequestDrillSwitch asks to change the session's active drill.
func (s *Service) RequestDrillSwitch(ctx context.Context, sessionID, drillID string) (guard.Outcome, error) {
	sess, err := s.sessionByID(sessionID)
	if err != nil {
		return 0, err
	}

	var out guard.Outcome
	err = sess.Do(ctx, func(ctx context.Context) error {
		if _, derr := s.drillFor(sess.State.EventID, drillID); derr != nil {
			return derr
		}
		out = guard.RequestSwitch(sess.State, drillID)
		return nil
	})
	return out, err
}

// ConfirmDrillSwitch applies a pending drill switch.
func (s *Service) ConfirmDrillSwitch(ctx context.Context, sessionID string) (guard.SwitchResult, error) {
	sess, err := s.sessionByID(sessionID)
	if err != nil {
		return guard.SwitchResult{}, err
	}

	var res guard.SwitchResult
	err = sess.Do(ctx, func(ctx context.Context) error {
		var gerr error
		res, gerr = guard.Confirm(sess.State)
		return gerr
	})
	return res, err
}

// CancelDrillSwitch abandons a pending drill switch.
func (s *Service) CancelDrillSwitch(ctx context.Context, sessionID string) error {
	sess, err := s.sessionByID(sessionID)
	if err != nil {
		return err
	}
	return sess.Do(ctx, func(ctx context.Context) error {
		return guard.CancelSwitch(sess.State)
	})
}

// ToggleLock moves an event's lock state through the verify-after-write
// protocol. Not session-scoped: any pre-authorized organizer may call it.
func (s *Service) ToggleLock(ctx context.Context, eventID string, desired bool, actor, reason string) (locksync.LockResult, error) {
	return s.locks.Toggle(ctx, eventID, desired, actor, reason)
}

// Rankings recomputes the event ranking from a fresh read of the store.
// overrides, when non-nil, take precedence over drill default weights.
func (s *Service) Rankings(ctx context.Context, eventID string, overrides model.WeightConfig) ([]model.RankingRow, error) {
	scores, err := s.store.ListScores(ctx, eventID)
	if err != nil {
		metrics.RecordStoreError("list_scores")
		return nil, fmt.Errorf("list scores: %w", err)
	}

	s.mu.RLock()
	drills, ok := s.drills[eventID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrUnknownEvent)
	}

	return ranking.Compute(scores, drills, overrides), nil
}

// AuditLog returns recent lock transitions for an event, newest first.
func (s *Service) AuditLog(ctx context.Context, eventID string, n int) ([]audit.Record, error) {
	return s.audit.Recent(ctx, eventID, n)
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":        s.started,
		"activeSessions": len(s.sessions),
		"events":         len(s.drills),
	}
}

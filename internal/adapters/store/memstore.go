package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// MemStore is an in-memory Store used for standalone deployments and tests.
// Event state is held in two maps to model the league-scoped and
// global-index records of the remote backend.
type MemStore struct {
	mu sync.RWMutex

	leagueEvents map[string]model.Event // key: leagueID/eventID
	globalEvents map[string]model.Event // key: eventID
	scores       map[string]model.ScoreEntry

	// failNext, when set, causes the named operation to fail once with
	// ErrUnavailable. Used by tests to exercise failure branches.
	failNext string

	// dropLockMirror makes SetEventLocked skip the global-index write,
	// modelling a write that did not persist. Used by verification tests.
	dropLockMirror bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		leagueEvents: make(map[string]model.Event),
		globalEvents: make(map[string]model.Event),
		scores:       make(map[string]model.ScoreEntry),
	}
}

func scoreKey(eventID, playerID, drillID string) string {
	return fmt.Sprintf("%s/%s/%s", eventID, playerID, drillID)
}

func leagueKey(leagueID, eventID string) string {
	return fmt.Sprintf("%s/%s", leagueID, eventID)
}

// FailNext makes the named operation ("get_event", "put_score",
// "set_locked", ...) fail once with ErrUnavailable.
func (m *MemStore) FailNext(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = op
}

// DropLockMirror toggles silent loss of the global-index lock write.
func (m *MemStore) DropLockMirror(drop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropLockMirror = drop
}

// takeFault consumes an armed fault for op. It takes the write lock
// itself, so callers must invoke it before acquiring their own lock.
func (m *MemStore) takeFault(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext == op {
		m.failNext = ""
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return nil
}

// GetEvent returns the event from the global-index map.
func (m *MemStore) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	if err := m.takeFault("get_event"); err != nil {
		return model.Event{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.globalEvents[eventID]
	if !ok {
		return model.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return ev, nil
}

// PutEvent writes the event to both mirrored maps.
func (m *MemStore) PutEvent(ctx context.Context, ev model.Event) error {
	if err := m.takeFault("put_event"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leagueEvents[leagueKey(ev.LeagueID, ev.ID)] = ev
	m.globalEvents[ev.ID] = ev
	return nil
}

// SetEventLocked updates lock state in both mirrored maps.
func (m *MemStore) SetEventLocked(ctx context.Context, eventID string, locked bool, at time.Time, reason string) error {
	if err := m.takeFault("set_locked"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.globalEvents[eventID]
	if !ok {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}

	ev.Locked = locked
	ev.LockReason = reason
	if locked {
		t := at
		ev.LockedAt = &t
	} else {
		ev.LockedAt = nil
	}

	m.leagueEvents[leagueKey(ev.LeagueID, ev.ID)] = ev
	if !m.dropLockMirror {
		m.globalEvents[eventID] = ev
	}
	return nil
}

// GetScore returns the entry for the triple, or ErrNotFound.
func (m *MemStore) GetScore(ctx context.Context, eventID, playerID, drillID string) (model.ScoreEntry, error) {
	if err := m.takeFault("get_score"); err != nil {
		return model.ScoreEntry{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.scores[scoreKey(eventID, playerID, drillID)]
	if !ok {
		return model.ScoreEntry{}, fmt.Errorf("score %s/%s/%s: %w", eventID, playerID, drillID, ErrNotFound)
	}
	return entry, nil
}

// PutScore creates or replaces the entry for its triple.
func (m *MemStore) PutScore(ctx context.Context, entry model.ScoreEntry) error {
	if err := m.takeFault("put_score"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scores[scoreKey(entry.EventID, entry.PlayerID, entry.DrillID)] = entry
	return nil
}

// ListScores returns all entries recorded for the event.
func (m *MemStore) ListScores(ctx context.Context, eventID string) ([]model.ScoreEntry, error) {
	if err := m.takeFault("list_scores"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.ScoreEntry
	for _, e := range m.scores {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Package session models one operator entry session: its client-local
// state and the single-threaded command loop that serializes operator
// actions.
package session

import (
	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// Phase is the drill switch guard state.
type Phase int

const (
	// PhaseIdle means no drill switch is in progress.
	PhaseIdle Phase = iota
	// PhasePendingConfirmation means a switch awaits operator confirmation.
	PhasePendingConfirmation
	// PhaseSwitching means a confirmed switch is being applied.
	PhaseSwitching
)

// PendingDecision is an unresolved duplicate awaiting a Replace/Cancel
// decision from the operator.
type PendingDecision struct {
	Candidate model.Candidate
	Existing  model.ScoreEntry
}

// State is the session-scoped value object passed into every entry and
// guard operation. It is owned by one Session and only touched from its
// command loop, so it needs no locking of its own.
type State struct {
	ID            string
	EventID       string
	LeagueID      string
	Actor         string
	ActiveDrillID string

	Phase          Phase
	PendingDrillID string // target drill while PhasePendingConfirmation

	autoReplace map[string]bool // drillID -> replace duplicates without prompting
	entries     map[string]int  // drillID -> entries recorded this session
	pending     *PendingDecision
}

// NewState creates session state for an event with the given active drill.
func NewState(id, eventID, leagueID, actor, activeDrillID string) *State {
	return &State{
		ID:            id,
		EventID:       eventID,
		LeagueID:      leagueID,
		Actor:         actor,
		ActiveDrillID: activeDrillID,
		autoReplace:   make(map[string]bool),
		entries:       make(map[string]int),
	}
}

// AutoReplace reports whether duplicates for the drill replace without a
// prompt. Absence means "prompt before replace".
func (s *State) AutoReplace(drillID string) bool {
	return s.autoReplace[drillID]
}

// SetAutoReplace turns on auto-replace for the drill for the remainder
// of the session (or until the drill changes).
func (s *State) SetAutoReplace(drillID string) {
	s.autoReplace[drillID] = true
}

// ClearAutoReplace removes the drill's auto-replace preference.
func (s *State) ClearAutoReplace(drillID string) {
	delete(s.autoReplace, drillID)
}

// RecordEntry counts one committed entry for the drill in this session.
func (s *State) RecordEntry(drillID string) {
	s.entries[drillID]++
}

// EntryCount returns how many entries this session committed for the drill.
func (s *State) EntryCount(drillID string) int {
	return s.entries[drillID]
}

// Pending returns the unresolved duplicate decision, if any.
func (s *State) Pending() *PendingDecision {
	return s.pending
}

// SetPending records an unresolved duplicate decision.
func (s *State) SetPending(p *PendingDecision) {
	s.pending = p
}

// ClearPending discards the unresolved duplicate decision.
func (s *State) ClearPending() {
	s.pending = nil
}

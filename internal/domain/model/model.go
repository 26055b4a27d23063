// Package model contains domain models passed between layers.
package model

import "time"

// Event is a combine event whose scores are being recorded.
// Lock fields are mutated only through the lock synchronizer.
type Event struct {
	ID            string
	LeagueID      string
	ActiveDrillID string
	Locked        bool
	LockedAt      *time.Time
	LockReason    string
}

// Drill describes one measured drill within an event template.
// Immutable once the event starts.
type Drill struct {
	ID             string
	Label          string
	Unit           string  // e.g. "s", "%", "in"
	Min            float64 // inclusive lower bound of the value domain
	Max            float64 // inclusive upper bound of the value domain
	HigherIsBetter bool
	Weight         float64 // default ranking weight, may be overridden per query
}

// InDomain reports whether v lies within the drill's inclusive value range.
func (d Drill) InDomain(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// Player is a roster entry for an event.
type Player struct {
	ID           string
	RosterNumber string // human-assigned, unique within the event
	Name         string
}

// ScoreEntry is the recorded value for one (event, player, drill) triple.
// At most one entry exists per triple; a new value replaces the old one.
type ScoreEntry struct {
	EventID   string
	PlayerID  string
	DrillID   string
	Value     float64
	EnteredAt time.Time
	EnteredBy string
}

// Candidate is a parsed, not-yet-committed entry.
type Candidate struct {
	EventID  string
	PlayerID string
	DrillID  string
	Value    float64
	Actor    string
}

// WeightConfig maps drill IDs to ranking weights.
// Weights may be zero or negative; zero removes the drill's contribution
// and negative inverts it.
type WeightConfig map[string]float64

// RankingRow is one derived row of the event ranking. Never stored.
type RankingRow struct {
	PlayerID  string
	Composite float64
	Rank      int // 1-based, dense across ties
}

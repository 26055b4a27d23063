// Package audit records lock state changes for later review.
package audit

import (
	"context"
	"time"
)

// Record is one lock state transition.
type Record struct {
	ID       string
	EventID  string
	Actor    string
	Previous bool
	New      bool
	Reason   string
	At       time.Time
}

// Sink appends audit records.
type Sink interface {
	// Append stores one record.
	Append(ctx context.Context, rec Record) error

	// Recent returns up to n records for the event, newest first.
	Recent(ctx context.Context, eventID string, n int) ([]Record, error)
}

package resolve

import "errors"

// Sentinel kinds for submission errors.
var (
	ErrEventLocked       = errors.New("event locked")
	ErrDecisionPending   = errors.New("a duplicate decision is already pending")
	ErrNoDecisionPending = errors.New("no duplicate decision is pending")
)

package session

import "errors"

// Sentinel kinds for session errors.
var (
	ErrBusy   = errors.New("session command queue full")
	ErrClosed = errors.New("session closed")
)

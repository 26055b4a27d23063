package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownSession = errors.New("unknown session")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrUnknownDrill   = errors.New("unknown drill")
)

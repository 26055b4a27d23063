package config

import (
	"errors"
)

var (
	// ErrInvalidConfig marks configuration or seed data that fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a config source that could not be read or parsed.
	ErrLoadConfig = errors.New("load config failed")
)

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer file and env overrides through Load.
// - External errors are wrapped via this package's error kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SessionQueueSize bounds each session's command queue.
	SessionQueueSize int `koanf:"session_queue_size"`

	// RedisURL selects the Redis-backed entry store when set; the
	// in-memory store is used otherwise.
	RedisURL string `koanf:"redis_url"`

	// AuditDBURL selects the Postgres audit sink when set; the
	// in-memory audit log is used otherwise.
	AuditDBURL string `koanf:"audit_db_url"`

	// AuditLogCapacity bounds the in-memory audit log.
	AuditLogCapacity int `koanf:"audit_log_capacity"`

	// SeedFile names a YAML file of events, drills and rosters loaded
	// into the store on startup. Intended for standalone deployments.
	SeedFile string `koanf:"seed_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9090",
		SessionQueueSize: 64,
		AuditLogCapacity: 1024,
	}
}

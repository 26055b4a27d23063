// Package metrics provides Prometheus metrics for the scorekeeper service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	// Entry pipeline metrics
	entriesCommitted  prometheus.Counter
	entriesReplaced   prometheus.Counter
	duplicatePrompts  prometheus.Counter
	duplicateAutoRuns prometheus.Counter
	entriesRejected   *prometheus.CounterVec
	parseErrors       *prometheus.CounterVec

	// Lock metrics
	lockToggles      *prometheus.CounterVec
	lockVerifyFailed prometheus.Counter

	// Ranking metrics
	rankingRecomputes prometheus.Counter
	rankingDuration   prometheus.Histogram

	// Session metrics
	activeSessions  prometheus.Gauge
	drillSwitches   prometheus.Counter
	commandBacklogs prometheus.Counter

	// Store metrics
	storeErrors *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "scorekeeper",
		subsystem: "entry",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.entriesCommitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_committed_total",
		Help:      "Total number of score entries committed to the store",
	})

	m.entriesReplaced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_replaced_total",
		Help:      "Total number of commits that replaced an existing score",
	})

	m.duplicatePrompts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_prompts_total",
		Help:      "Total number of submissions that required an operator decision",
	})

	m.duplicateAutoRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_auto_replaced_total",
		Help:      "Total number of duplicates replaced by the auto-replace preference",
	})

	m.entriesRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_rejected_total",
		Help:      "Total number of rejected submissions by reason",
	}, []string{"reason"})

	m.parseErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_errors_total",
		Help:      "Total number of entry parse failures by kind",
	}, []string{"kind"})

	m.lockToggles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "lock",
		Name:      "toggles_total",
		Help:      "Total number of lock state changes by new state",
	}, []string{"state"})

	m.lockVerifyFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "lock",
		Name:      "verify_failures_total",
		Help:      "Total number of lock writes whose read-back did not match",
	})

	m.rankingRecomputes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "recomputes_total",
		Help:      "Total number of full ranking recomputations",
	})

	m.rankingDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "recompute_duration_milliseconds",
		Help:      "Histogram of ranking recomputation duration in milliseconds",
		Buckets:   m.buckets,
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Current number of open entry sessions",
	})

	m.drillSwitches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "drill_switches_total",
		Help:      "Total number of completed drill switches",
	})

	m.commandBacklogs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "command_backpressure_total",
		Help:      "Total number of commands rejected because a session queue was full",
	})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Total number of remote store failures by operation",
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Package-level helpers operating on the global manager.

// RecordEntryCommitted increments the committed entries counter.
func RecordEntryCommitted() { globalManager.entriesCommitted.Inc() }

// RecordEntryReplaced increments the replaced entries counter.
func RecordEntryReplaced() { globalManager.entriesReplaced.Inc() }

// RecordDuplicatePrompt increments the operator-decision counter.
func RecordDuplicatePrompt() { globalManager.duplicatePrompts.Inc() }

// RecordAutoReplace increments the auto-replace counter.
func RecordAutoReplace() { globalManager.duplicateAutoRuns.Inc() }

// RecordEntryRejected increments the rejected submissions counter.
func RecordEntryRejected(reason string) {
	globalManager.entriesRejected.WithLabelValues(reason).Inc()
}

// RecordParseError increments the parse error counter for a kind.
func RecordParseError(kind string) {
	globalManager.parseErrors.WithLabelValues(kind).Inc()
}

// RecordLockToggle increments the lock toggle counter for a state.
func RecordLockToggle(locked bool) {
	state := "unlocked"
	if locked {
		state = "locked"
	}
	globalManager.lockToggles.WithLabelValues(state).Inc()
}

// RecordLockVerifyFailure increments the verification failure counter.
func RecordLockVerifyFailure() { globalManager.lockVerifyFailed.Inc() }

// RecordRankingRecompute increments the recompute counter.
func RecordRankingRecompute() { globalManager.rankingRecomputes.Inc() }

// RecordRankingDuration observes a recompute duration in milliseconds.
func RecordRankingDuration(ms float64) { globalManager.rankingDuration.Observe(ms) }

// UpdateActiveSessions sets the open session gauge.
func UpdateActiveSessions(n int) { globalManager.activeSessions.Set(float64(n)) }

// RecordDrillSwitch increments the drill switch counter.
func RecordDrillSwitch() { globalManager.drillSwitches.Inc() }

// RecordCommandBackpressure increments the session backpressure counter.
func RecordCommandBackpressure() { globalManager.commandBacklogs.Inc() }

// RecordStoreError increments the store failure counter for an operation.
func RecordStoreError(op string) {
	globalManager.storeErrors.WithLabelValues(op).Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// GetRegistry exposes the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry { return customRegistry }

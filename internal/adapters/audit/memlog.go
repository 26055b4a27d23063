package audit

import (
	"context"
	"sync"
)

const defaultMemLogCapacity = 1024

// MemLog is a bounded in-memory Sink. Oldest records are dropped when the
// capacity is exceeded.
type MemLog struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
}

// Option applies a configuration option to the MemLog.
type Option func(*MemLog)

// WithCapacity bounds the number of retained records.
func WithCapacity(n int) Option {
	return func(m *MemLog) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// NewMemLog creates an in-memory audit log.
func NewMemLog(opts ...Option) *MemLog {
	m := &MemLog{capacity: defaultMemLogCapacity}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append stores one record, evicting the oldest when full.
func (m *MemLog) Append(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)
	if len(m.records) > m.capacity {
		m.records = m.records[len(m.records)-m.capacity:]
	}
	return nil
}

// Recent returns up to n records for the event, newest first.
func (m *MemLog) Recent(ctx context.Context, eventID string, n int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for i := len(m.records) - 1; i >= 0 && len(out) < n; i-- {
		if m.records[i].EventID == eventID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

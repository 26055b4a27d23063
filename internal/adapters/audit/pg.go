package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGLog is a Postgres-backed Sink writing one row per lock transition.
type PGLog struct {
	pool *pgxpool.Pool
}

// NewPGLog builds a Sink on an existing pgx pool.
func NewPGLog(pool *pgxpool.Pool) *PGLog {
	return &PGLog{pool: pool}
}

// NewPool configures a pgx connection pool for the audit database.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse audit db url: %w", err)
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the audit table if it does not exist.
func (p *PGLog) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS lock_audit (
    id         TEXT PRIMARY KEY,
    event_id   TEXT        NOT NULL,
    actor      TEXT        NOT NULL,
    previous   BOOLEAN     NOT NULL,
    new        BOOLEAN     NOT NULL,
    reason     TEXT        NOT NULL DEFAULT '',
    at         TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS lock_audit_event_at ON lock_audit (event_id, at DESC);`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Append stores one record.
func (p *PGLog) Append(ctx context.Context, rec Record) error {
	const q = `
INSERT INTO lock_audit (id, event_id, actor, previous, new, reason, at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := p.pool.Exec(ctx, q,
		rec.ID, rec.EventID, rec.Actor, rec.Previous, rec.New, rec.Reason, rec.At,
	); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// Recent returns up to n records for the event, newest first.
func (p *PGLog) Recent(ctx context.Context, eventID string, n int) ([]Record, error) {
	const q = `
SELECT id, event_id, actor, previous, new, reason, at
FROM lock_audit
WHERE event_id = $1
ORDER BY at DESC
LIMIT $2`
	rows, err := p.pool.Query(ctx, q, eventID, n)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.Actor, &rec.Previous, &rec.New, &rec.Reason, &rec.At); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldday/scorekeeper/internal/domain/model"
)

// Redis key layout. Event state is mirrored under a league-scoped key and
// a global-index key; both are written in one transaction.
const (
	globalEventKeyFmt = "event:%s"
	leagueEventKeyFmt = "league:%s:event:%s"
	eventScoresKeyFmt = "event:%s:scores"
)

// RedisStore implements Store on a Redis backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func scoreField(playerID, drillID string) string {
	return playerID + ":" + drillID
}

// GetEvent reads the event from the global-index key.
func (r *RedisStore) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf(globalEventKeyFmt, eventID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.Event{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("get event: %w", ErrUnavailable)
	}

	var ev model.Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return model.Event{}, fmt.Errorf("decode event %s: %w", eventID, err)
	}
	return ev, nil
}

// PutEvent writes the event to both mirrored keys in one transaction.
func (r *RedisStore) PutEvent(ctx context.Context, ev model.Event) error {
	return r.writeEventMirrors(ctx, ev)
}

// SetEventLocked reads the current event, applies the lock fields, and
// rewrites both mirrored keys atomically.
func (r *RedisStore) SetEventLocked(ctx context.Context, eventID string, locked bool, at time.Time, reason string) error {
	ev, err := r.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	ev.Locked = locked
	ev.LockReason = reason
	if locked {
		t := at
		ev.LockedAt = &t
	} else {
		ev.LockedAt = nil
	}

	return r.writeEventMirrors(ctx, ev)
}

func (r *RedisStore) writeEventMirrors(ctx context.Context, ev model.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(globalEventKeyFmt, ev.ID), raw, 0)
	pipe.Set(ctx, fmt.Sprintf(leagueEventKeyFmt, ev.LeagueID, ev.ID), raw, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write event mirrors: %w", ErrUnavailable)
	}
	return nil
}

// GetScore reads one entry from the event's score hash.
func (r *RedisStore) GetScore(ctx context.Context, eventID, playerID, drillID string) (model.ScoreEntry, error) {
	raw, err := r.client.HGet(ctx, fmt.Sprintf(eventScoresKeyFmt, eventID), scoreField(playerID, drillID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.ScoreEntry{}, fmt.Errorf("score %s/%s/%s: %w", eventID, playerID, drillID, ErrNotFound)
	}
	if err != nil {
		return model.ScoreEntry{}, fmt.Errorf("get score: %w", ErrUnavailable)
	}

	var entry model.ScoreEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return model.ScoreEntry{}, fmt.Errorf("decode score: %w", err)
	}
	return entry, nil
}

// PutScore writes the entry into the event's score hash, replacing any
// previous value for the same triple.
func (r *RedisStore) PutScore(ctx context.Context, entry model.ScoreEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}
	key := fmt.Sprintf(eventScoresKeyFmt, entry.EventID)
	if err := r.client.HSet(ctx, key, scoreField(entry.PlayerID, entry.DrillID), raw).Err(); err != nil {
		return fmt.Errorf("put score: %w", ErrUnavailable)
	}
	return nil
}

// ListScores returns every entry in the event's score hash.
func (r *RedisStore) ListScores(ctx context.Context, eventID string) ([]model.ScoreEntry, error) {
	fields, err := r.client.HGetAll(ctx, fmt.Sprintf(eventScoresKeyFmt, eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", ErrUnavailable)
	}

	out := make([]model.ScoreEntry, 0, len(fields))
	for _, raw := range fields {
		var entry model.ScoreEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("decode score: %w", err)
		}
		out = append(out, entry)
	}
	return out, nil
}

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisPhaseStore keeps the current phase of each run in Redis so status
// survives across instances and the GET status endpoint can read it back.
type RedisPhaseStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisPhaseStore(rdb *redis.Client) *RedisPhaseStore {
	return &RedisPhaseStore{RDB: rdb, TTL: 30 * time.Minute}
}

func phaseKey(jobDetailsID uuid.UUID) string {
	return "pipeline:phase:" + jobDetailsID.String()
}

func (s *RedisPhaseStore) Set(ctx context.Context, jobDetailsID uuid.UUID, ev PhaseEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.RDB.Set(ctx, phaseKey(jobDetailsID), b, s.TTL).Err()
}

// Get returns nil when no run has been recorded (or the record expired).
func (s *RedisPhaseStore) Get(ctx context.Context, jobDetailsID uuid.UUID) (*PhaseEvent, error) {
	b, err := s.RDB.Get(ctx, phaseKey(jobDetailsID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ev PhaseEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

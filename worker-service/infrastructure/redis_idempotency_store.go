package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/ticketflow/booking-system/worker-service/executors"
)

const idempotencyKeyPrefix = "booking:idem:"

// RedisIdempotencyStore implements executors.IdempotencyStore on Redis.
// Claim rides on SETNX, so exactly one worker wins the right to perform a
// side effect even when the same job is delivered twice concurrently.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyStore creates a new RedisIdempotencyStore. Records
// expire after the ttl; zero means no expiry.
func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, ttl: ttl}
}

// Get returns the record for a key, or nil when absent
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*executors.IdempotencyRecord, error) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read idempotency record")
	}

	var record executors.IdempotencyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal idempotency record")
	}

	return &record, nil
}

// Claim writes an unapplied record if the key is absent. Returns true when
// this caller won the claim.
func (s *RedisIdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	record := executors.IdempotencyRecord{
		Key:        key,
		Applied:    false,
		RecordedAt: time.Now(),
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return false, errors.Wrap(err, "failed to marshal idempotency record")
	}

	claimed, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to claim idempotency key")
	}

	return claimed, nil
}

// Record marks the side effect applied with the collaborator's reference
func (s *RedisIdempotencyStore) Record(ctx context.Context, key, reference string) error {
	record := executors.IdempotencyRecord{
		Key:        key,
		Applied:    true,
		Reference:  reference,
		RecordedAt: time.Now(),
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal idempotency record")
	}

	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to record idempotency result")
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tair/pededrink/internal/inventory/domain"
)

const DefaultSnapshotKey = "pededrink:snapshot"

var _ domain.SnapshotStore = (*RedisSnapshotStore)(nil)

// RedisSnapshotStore keeps the state blob under a single Redis key.
type RedisSnapshotStore struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotStore(client *redis.Client, key string) *RedisSnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &RedisSnapshotStore{client: client, key: key}
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

// Close is a no-op; the client is owned by the caller.
func (s *RedisSnapshotStore) Close() error { return nil }

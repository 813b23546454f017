package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotRepo stores the snapshot under a single key with no expiry.
type RedisSnapshotRepo struct {
	client *redis.Client
	key    string
}

func NewRedisSnapshotRepo(client *redis.Client, key string) *RedisSnapshotRepo {
	return &RedisSnapshotRepo{client: client, key: key}
}

func (r *RedisSnapshotRepo) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", r.key, err)
	}
	return data, nil
}

func (r *RedisSnapshotRepo) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %q: %w", r.key, err)
	}
	return nil
}

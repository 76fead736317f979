package persist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain/model"
)

// Redis実装。スロット名をそのままキーにしてペイロードをSETする。
// ttl=0 で無期限。
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DI
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Load(ctx context.Context, slot string) ([]model.CartLine, error) {
	b, err := s.client.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeLines(b), nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, slot string, lines []model.CartLine) error {
	b, err := encodeLines(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, slot, b, s.ttl).Err()
}

func (s *RedisSnapshotStore) Erase(ctx context.Context, slot string) error {
	return s.client.Del(ctx, slot).Err()
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogo/internal/model"
)

const defaultKey = "catalogo:products"

// Snapshot is a product list and the moment it was read from the source.
type Snapshot struct {
	Products []model.Product `json:"products"`
	LoadedAt time.Time       `json:"loadedAt"`
}

// Store shares the normalized product list between processes.
type Store interface {
	Get(ctx context.Context) (Snapshot, bool, error)
	Set(ctx context.Context, snap Snapshot, ttl time.Duration) error
}

type RedisStore struct {
	Client *redis.Client
	Key    string
}

func (s *RedisStore) key() string {
	if s.Key != "" {
		return s.Key
	}
	return defaultKey
}

func (s *RedisStore) Get(ctx context.Context) (Snapshot, bool, error) {
	val, err := s.Client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *RedisStore) Set(ctx context.Context, snap Snapshot, ttl time.Duration) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(), b, ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, s.key()).Err()
}

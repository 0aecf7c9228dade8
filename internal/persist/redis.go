package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps the sealed save under one key.
type RedisStore struct {
	client *redis.Client
	key    string
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, key string, log *zap.Logger) *RedisStore {
	return &RedisStore{client: client, key: key, log: log}
}

// NewRedisStoreFromURL parses a redis:// URL and verifies the server answers.
func NewRedisStoreFromURL(url, key string, log *zap.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, key, log), nil
}

func (s *RedisStore) Exists(ctx context.Context) (bool, error) {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("check save: %w", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := Seal(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	s.log.Info("game saved", zap.String("key", s.key), zap.Int("bytes", len(data)))
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	return Unseal(data)
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

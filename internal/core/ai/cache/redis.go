package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"health-recipe-modifier/internal/infrastructure/config"
	"health-recipe-modifier/internal/pkg/common"
)

// RedisStore 以 Redis 保存食譜快取，條目不設過期時間
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 創建 Redis 食譜快取並測試連線
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient 使用既有的 client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "recipe:generated"}
}

func (s *RedisStore) key(condition, key string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, condition, key)
}

// Find 查詢快取
func (s *RedisStore) Find(ctx context.Context, condition, key string) (string, error) {
	data, err := s.client.Get(ctx, s.key(condition, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", fmt.Errorf("failed to get cache: %v: %w", err, common.ErrLookupUnavailable)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	if entry.Recipe == "" {
		return "", ErrMiss
	}
	return entry.Recipe, nil
}

// Upsert 寫入快取
func (s *RedisStore) Upsert(ctx context.Context, condition, key, recipe string, updatedAt time.Time) error {
	data, err := json.Marshal(Entry{
		Condition:      condition,
		IngredientsKey: key,
		Recipe:         recipe,
		UpdatedAt:      updatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := s.client.Set(ctx, s.key(condition, key), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %v: %w", err, common.ErrLookupUnavailable)
	}
	return nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

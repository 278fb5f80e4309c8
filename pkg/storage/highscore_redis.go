package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTimeout 单次 redis 操作的超时
const redisTimeout = 2 * time.Second

// RedisHighScoreStore 使用 redis 保存最高分
// 适合多台机器共享排行（例如无头模拟批量运行）
type RedisHighScoreStore struct {
	client *redis.Client
	key    string
}

// NewRedisHighScoreStore 连接 redis 并创建存储
// 创建时执行一次 PING，地址不可用立即返回错误
func NewRedisHighScoreStore(addr, key string) (*RedisHighScoreStore, error) {
	if addr == "" {
		return nil, errors.New("redis: address is required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisHighScoreStoreWithClient(client, key), nil
}

// NewRedisHighScoreStoreWithClient 使用已有客户端创建存储
func NewRedisHighScoreStoreWithClient(client *redis.Client, key string) *RedisHighScoreStore {
	return &RedisHighScoreStore{client: client, key: key}
}

// Load 读取最高分，键不存在时返回 0
func (s *RedisHighScoreStore) Load() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get high score: %w", err)
	}

	score, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid high score value %q: %w", value, err)
	}
	return score, nil
}

// Save 保存最高分，已保存的值更高时不覆盖
func (s *RedisHighScoreStore) Save(score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	current, err := s.Load()
	if err != nil {
		log.Printf("[HighScore] Warning: %v (overwriting)", err)
		current = 0
	}
	if score <= current {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key, score, 0).Err(); err != nil {
		return fmt.Errorf("failed to set high score: %w", err)
	}
	return nil
}

// Close 关闭 redis 连接
func (s *RedisHighScoreStore) Close() error {
	return s.client.Close()
}

// Package storage 最高分持久化
//
// 提供 gdata（本地）、redis（远程）和内存三种实现，不依赖 ebiten，
// 无窗口的模拟器和测试可以直接使用。
package storage

import (
	"fmt"
	"log"

	"github.com/decker502/dungeon/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// HighScoreStore 最高分（最高波次）存储
// 值是单个整数；实现只需保证 Save 后 Load 能读回不小于该值的结果
type HighScoreStore interface {
	// Load 读取已保存的最高分，从未保存过时返回 0
	Load() (int, error)
	// Save 保存最高分，低于已保存值时保持原值
	Save(score int) error
}

// highScoreRecord 序列化格式
type highScoreRecord struct {
	Wave int `yaml:"wave"`
}

// MemoryHighScoreStore 仅内存的存储（测试、降级模式）
type MemoryHighScoreStore struct {
	score int
	saves int
}

// NewMemoryHighScoreStore 创建内存存储，initial 为初始最高分
func NewMemoryHighScoreStore(initial int) *MemoryHighScoreStore {
	return &MemoryHighScoreStore{score: initial}
}

// Load 返回内存中的最高分
func (s *MemoryHighScoreStore) Load() (int, error) {
	return s.score, nil
}

// Save 更新内存中的最高分
func (s *MemoryHighScoreStore) Save(score int) error {
	s.saves++
	if score > s.score {
		s.score = score
	}
	return nil
}

// SaveCount 返回 Save 被调用的次数
func (s *MemoryHighScoreStore) SaveCount() int {
	return s.saves
}

// OpenHighScoreStore 根据配置打开最高分存储
//
// 打开失败时记录警告并退回内存存储（降级模式），不阻止对局开始
func OpenHighScoreStore(cfg config.PersistenceConfig) HighScoreStore {
	switch cfg.Backend {
	case config.PersistenceMemory:
		return NewMemoryHighScoreStore(0)

	case config.PersistenceRedis:
		store, err := NewRedisHighScoreStore(cfg.RedisAddr, cfg.Key)
		if err != nil {
			log.Printf("[HighScore] Warning: redis unavailable at %s: %v (in-memory mode)", cfg.RedisAddr, err)
			return NewMemoryHighScoreStore(0)
		}
		return store

	default:
		manager, err := gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[HighScore] Warning: failed to open gdata for %q: %v (in-memory mode)", cfg.AppName, err)
			manager = nil
		}
		return NewGdataHighScoreStore(manager, cfg.Key)
	}
}

// LoadHighScore 读取最高分，失败时记录警告并返回 0
func LoadHighScore(store HighScoreStore) int {
	if store == nil {
		return 0
	}
	score, err := store.Load()
	if err != nil {
		log.Printf("[HighScore] Warning: failed to load high score: %v", err)
		return 0
	}
	return score
}

func validateScore(score int) error {
	if score < 0 {
		return fmt.Errorf("high score cannot be negative: %d", score)
	}
	return nil
}

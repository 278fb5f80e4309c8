package storage

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const highScoreObject = "highscore"

// GdataHighScoreStore 使用 gdata 跨平台存储的最高分
type GdataHighScoreStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	property     string
	cached       int
}

// NewGdataHighScoreStore 创建 gdata 最高分存储
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - key: 属性名
func NewGdataHighScoreStore(gdataManager *gdata.Manager, key string) *GdataHighScoreStore {
	return &GdataHighScoreStore{
		gdataManager: gdataManager,
		property:     key,
	}
}

// Load 从 gdata 读取最高分
// 文件不存在时返回 0
func (s *GdataHighScoreStore) Load() (int, error) {
	if s.gdataManager == nil {
		return s.cached, nil
	}

	if !s.gdataManager.ObjectPropExists(highScoreObject, s.property) {
		return 0, nil
	}

	data, err := s.gdataManager.LoadObjectProp(highScoreObject, s.property)
	if err != nil {
		return 0, fmt.Errorf("failed to load high score: %w", err)
	}

	var record highScoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("failed to unmarshal high score: %w", err)
	}

	s.cached = record.Wave
	return record.Wave, nil
}

// Save 保存最高分，已保存的值更高时不覆盖
func (s *GdataHighScoreStore) Save(score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	current, err := s.Load()
	if err != nil {
		// 存档损坏时直接覆盖
		log.Printf("[HighScore] Warning: %v (overwriting)", err)
		current = 0
	}
	if score <= current {
		return nil
	}

	s.cached = score
	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(highScoreRecord{Wave: score})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(highScoreObject, s.property, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}

	log.Printf("[HighScore] Saved high score: wave %d", score)
	return nil
}

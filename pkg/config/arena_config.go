package config

import (
	"fmt"

	"github.com/decker502/dungeon/pkg/embedded"
	"github.com/decker502/dungeon/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ArenaConfig 战场尺寸和出生点
type ArenaConfig struct {
	Width       float64
	Height      float64
	AllySpawns  []utils.Vec2
	EnemySpawns []utils.Vec2
}

// Size 返回战场尺寸向量
func (c *ArenaConfig) Size() utils.Vec2 {
	return utils.Vec2{X: c.Width, Y: c.Height}
}

type rawArenaConfig struct {
	Size        *Size        `yaml:"size"`
	AllySpawns  [][]float64 `yaml:"allySpawns"`
	EnemySpawns [][]float64 `yaml:"enemySpawns"`
}

// LoadArenaConfig 从 YAML 文件加载战场配置
func LoadArenaConfig(filepath string) (*ArenaConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read arena config file %s: %w", filepath, err)
	}

	config, err := ParseArenaConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid arena config in %s: %w", filepath, err)
	}
	return config, nil
}

// ParseArenaConfig 解析并校验战场配置
// 出生点格式为 [x, y]，必须位于战场范围内
func ParseArenaConfig(data []byte) (*ArenaConfig, error) {
	var raw rawArenaConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse arena config YAML: %w", err)
	}

	if raw.Size == nil {
		return nil, fmt.Errorf("arena: %w %q", ErrMissingField, "size")
	}
	if raw.Size.Width <= 0 || raw.Size.Height <= 0 {
		return nil, fmt.Errorf("arena: size must be positive, got %vx%v: %w", raw.Size.Width, raw.Size.Height, ErrInvalidValue)
	}

	config := &ArenaConfig{Width: raw.Size.Width, Height: raw.Size.Height}

	var err error
	if config.AllySpawns, err = parseSpawnPoints("allySpawns", raw.AllySpawns, config); err != nil {
		return nil, err
	}
	if config.EnemySpawns, err = parseSpawnPoints("enemySpawns", raw.EnemySpawns, config); err != nil {
		return nil, err
	}

	return config, nil
}

func parseSpawnPoints(key string, raw [][]float64, arena *ArenaConfig) ([]utils.Vec2, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("arena: %w %q", ErrMissingField, key)
	}
	points := make([]utils.Vec2, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("arena: %s[%d] must be [x, y], got %v: %w", key, i, p, ErrInvalidValue)
		}
		point := utils.Vec2{X: p[0], Y: p[1]}
		if point.X < 0 || point.Y < 0 || point.X > arena.Width || point.Y > arena.Height {
			return nil, fmt.Errorf("arena: %s[%d] (%v, %v) is outside the arena: %w", key, i, point.X, point.Y, ErrInvalidValue)
		}
		points = append(points, point)
	}
	return points, nil
}

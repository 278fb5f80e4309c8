package config

import (
	"fmt"

	"github.com/decker502/dungeon/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SpawnGroupConfig 一个出怪组的定义
type SpawnGroupConfig struct {
	Type          string  // 单位类型
	Level         int     // 单位等级（从 1 开始，缺省为 1）
	Amount        int     // 总数量
	SpawnAmount   int     // 每批数量
	StartDelay    float64 // 首批前的延迟（秒）
	SpawnInterval float64 // 批次间隔（秒）
}

// WaveTable 波次表
type WaveTable struct {
	DelayBetweenWaves float64              // 两波之间的间歇（秒）
	Waves             [][]SpawnGroupConfig // 每一波由若干出怪组组成
}

type rawSpawnGroup struct {
	Type          string   `yaml:"type"`
	Level         *int     `yaml:"level"`
	Amount        *int     `yaml:"amount"`
	SpawnAmount   *int     `yaml:"spawnAmount"`
	StartDelay    *float64 `yaml:"startDelay"`
	SpawnInterval *float64 `yaml:"spawnInterval"`
}

type rawWaveTable struct {
	DelayBetweenWaves *float64          `yaml:"delayBetweenWaves"`
	Waves             [][]rawSpawnGroup `yaml:"waves"`
}

// LoadWaveTable 从 YAML 文件加载波次表
func LoadWaveTable(filepath string) (*WaveTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave table file %s: %w", filepath, err)
	}

	table, err := ParseWaveTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid wave table in %s: %w", filepath, err)
	}
	return table, nil
}

// ParseWaveTable 解析并校验 YAML 格式的波次表
func ParseWaveTable(data []byte) (*WaveTable, error) {
	var raw rawWaveTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse wave table YAML: %w", err)
	}

	if raw.DelayBetweenWaves == nil {
		return nil, fmt.Errorf("wave table: %w %q", ErrMissingField, "delayBetweenWaves")
	}
	if *raw.DelayBetweenWaves < 0 {
		return nil, fmt.Errorf("wave table: delayBetweenWaves cannot be negative: %w", ErrInvalidValue)
	}
	if len(raw.Waves) == 0 {
		return nil, fmt.Errorf("wave table: %w %q", ErrMissingField, "waves")
	}

	table := &WaveTable{
		DelayBetweenWaves: *raw.DelayBetweenWaves,
		Waves:             make([][]SpawnGroupConfig, len(raw.Waves)),
	}

	for waveIndex, rawGroups := range raw.Waves {
		if len(rawGroups) == 0 {
			return nil, fmt.Errorf("wave %d: at least one spawn group is required: %w", waveIndex, ErrInvalidValue)
		}
		groups := make([]SpawnGroupConfig, 0, len(rawGroups))
		for groupIndex, rawGroup := range rawGroups {
			group, err := buildSpawnGroup(rawGroup)
			if err != nil {
				return nil, fmt.Errorf("wave %d group %d: %w", waveIndex, groupIndex, err)
			}
			groups = append(groups, group)
		}
		table.Waves[waveIndex] = groups
	}

	return table, nil
}

func buildSpawnGroup(raw rawSpawnGroup) (SpawnGroupConfig, error) {
	if raw.Type == "" {
		return SpawnGroupConfig{}, fmt.Errorf("%w %q", ErrMissingField, "type")
	}
	if raw.Amount == nil {
		return SpawnGroupConfig{}, fmt.Errorf("type %q: %w %q", raw.Type, ErrMissingField, "amount")
	}
	if raw.SpawnAmount == nil {
		return SpawnGroupConfig{}, fmt.Errorf("type %q: %w %q", raw.Type, ErrMissingField, "spawnAmount")
	}
	if raw.SpawnInterval == nil {
		return SpawnGroupConfig{}, fmt.Errorf("type %q: %w %q", raw.Type, ErrMissingField, "spawnInterval")
	}

	group := SpawnGroupConfig{
		Type:          raw.Type,
		Level:         1,
		Amount:        *raw.Amount,
		SpawnAmount:   *raw.SpawnAmount,
		SpawnInterval: *raw.SpawnInterval,
	}
	if raw.Level != nil {
		group.Level = *raw.Level
	}
	if raw.StartDelay != nil {
		group.StartDelay = *raw.StartDelay
	}

	switch {
	case group.Amount <= 0:
		return SpawnGroupConfig{}, fmt.Errorf("type %q: amount must be positive, got %d: %w", raw.Type, group.Amount, ErrInvalidValue)
	case group.SpawnAmount <= 0:
		return SpawnGroupConfig{}, fmt.Errorf("type %q: spawnAmount must be positive, got %d: %w", raw.Type, group.SpawnAmount, ErrInvalidValue)
	case group.SpawnInterval < 0:
		return SpawnGroupConfig{}, fmt.Errorf("type %q: spawnInterval cannot be negative: %w", raw.Type, ErrInvalidValue)
	case group.StartDelay < 0:
		return SpawnGroupConfig{}, fmt.Errorf("type %q: startDelay cannot be negative: %w", raw.Type, ErrInvalidValue)
	}

	return group, nil
}

// ValidateAgainst 检查波次表引用的单位类型和等级都存在于单位表中
func (w *WaveTable) ValidateAgainst(units *UnitConfig) error {
	for waveIndex, groups := range w.Waves {
		for groupIndex, group := range groups {
			if _, err := units.Stats(group.Type, group.Level); err != nil {
				return fmt.Errorf("wave %d group %d: %w", waveIndex, groupIndex, err)
			}
		}
	}
	return nil
}

// WaveCount 返回波次数量
func (w *WaveTable) WaveCount() int {
	return len(w.Waves)
}

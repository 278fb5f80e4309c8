package config

import (
	"fmt"

	"github.com/decker502/dungeon/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 最高分持久化后端
const (
	PersistenceGdata  = "gdata"
	PersistenceRedis  = "redis"
	PersistenceMemory = "memory"
)

// 默认值
const (
	DefaultTPS          = 60
	DefaultMaxDeltaTime = 0.25
	DefaultAppName      = "dungeon"
	DefaultScoreKey     = "highscore"
	DefaultRedisAddr    = "localhost:6379"
)

// PersistenceConfig 最高分存储配置
type PersistenceConfig struct {
	Backend   string `yaml:"backend"`   // gdata | redis | memory
	AppName   string `yaml:"appName"`   // gdata 应用名（决定存档目录）
	RedisAddr string `yaml:"redisAddr"` // redis 地址
	Key       string `yaml:"key"`       // 存储键名
}

// GameConfig 游戏运行参数
type GameConfig struct {
	TPS          int               `yaml:"tps"`          // 逻辑帧率
	MaxDeltaTime float64           `yaml:"maxDeltaTime"` // 单帧最大 deltaTime（秒），防止卡顿后一次跳太远
	Verbose      bool              `yaml:"verbose"`      // 是否输出日志
	Seed         int64             `yaml:"seed"`         // 随机种子，0 表示按时间
	Persistence  PersistenceConfig `yaml:"persistence"`
}

// DefaultGameConfig 返回全部使用默认值的配置
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{}
	config.applyDefaults()
	return config
}

// LoadGameConfig 从 YAML 文件加载游戏运行参数
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}
	return config, nil
}

// ParseGameConfig 解析游戏运行参数，未填写的字段使用默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	config.applyDefaults()

	if err := validateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *GameConfig) applyDefaults() {
	if c.TPS == 0 {
		c.TPS = DefaultTPS
	}
	if c.MaxDeltaTime == 0 {
		c.MaxDeltaTime = DefaultMaxDeltaTime
	}
	if c.Persistence.Backend == "" {
		c.Persistence.Backend = PersistenceGdata
	}
	if c.Persistence.AppName == "" {
		c.Persistence.AppName = DefaultAppName
	}
	if c.Persistence.Key == "" {
		c.Persistence.Key = DefaultScoreKey
	}
	if c.Persistence.RedisAddr == "" {
		c.Persistence.RedisAddr = DefaultRedisAddr
	}
}

func validateGameConfig(c *GameConfig) error {
	if c.TPS < 0 {
		return fmt.Errorf("tps cannot be negative, got %d: %w", c.TPS, ErrInvalidValue)
	}
	if c.MaxDeltaTime < 0 {
		return fmt.Errorf("maxDeltaTime cannot be negative, got %v: %w", c.MaxDeltaTime, ErrInvalidValue)
	}
	switch c.Persistence.Backend {
	case PersistenceGdata, PersistenceRedis, PersistenceMemory:
	default:
		return fmt.Errorf("unsupported persistence backend %q: %w", c.Persistence.Backend, ErrInvalidValue)
	}
	return nil
}

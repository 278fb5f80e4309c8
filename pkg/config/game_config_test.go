package config

import (
	"errors"
	"testing"
)

func TestParseGameConfig(t *testing.T) {
	t.Run("空文件使用默认值", func(t *testing.T) {
		config, err := ParseGameConfig([]byte("{}\n"))
		if err != nil {
			t.Fatalf("ParseGameConfig failed: %v", err)
		}
		if config.TPS != DefaultTPS {
			t.Errorf("tps: expected %d, got %d", DefaultTPS, config.TPS)
		}
		if config.MaxDeltaTime != DefaultMaxDeltaTime {
			t.Errorf("maxDeltaTime: expected %v, got %v", DefaultMaxDeltaTime, config.MaxDeltaTime)
		}
		if config.Persistence.Backend != PersistenceGdata {
			t.Errorf("backend: expected gdata, got %s", config.Persistence.Backend)
		}
		if config.Persistence.Key != DefaultScoreKey {
			t.Errorf("key: expected %s, got %s", DefaultScoreKey, config.Persistence.Key)
		}
	})

	t.Run("覆盖默认值", func(t *testing.T) {
		content := `
tps: 30
verbose: true
seed: 42
persistence:
  backend: redis
  redisAddr: 10.0.0.1:6380
`
		config, err := ParseGameConfig([]byte(content))
		if err != nil {
			t.Fatalf("ParseGameConfig failed: %v", err)
		}
		if config.TPS != 30 || !config.Verbose || config.Seed != 42 {
			t.Errorf("Unexpected config %+v", config)
		}
		if config.Persistence.Backend != PersistenceRedis || config.Persistence.RedisAddr != "10.0.0.1:6380" {
			t.Errorf("Unexpected persistence %+v", config.Persistence)
		}
		if config.Persistence.AppName != DefaultAppName {
			t.Errorf("appName should default to %s, got %s", DefaultAppName, config.Persistence.AppName)
		}
	})

	t.Run("未知存储后端", func(t *testing.T) {
		_, err := ParseGameConfig([]byte("persistence: {backend: sqlite}\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("负的最大帧间隔", func(t *testing.T) {
		_, err := ParseGameConfig([]byte("maxDeltaTime: -1\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Expected ErrInvalidValue, got %v", err)
		}
	})
}

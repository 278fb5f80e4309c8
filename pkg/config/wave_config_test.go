package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWaveTable(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("加载有效波次表", func(t *testing.T) {
		content := `
delayBetweenWaves: 3
waves:
  - - {type: goblin, amount: 3, spawnAmount: 1, startDelay: 0.5, spawnInterval: 1}
  - - {type: goblin, level: 2, amount: 4, spawnAmount: 2, spawnInterval: 2}
    - {type: archer, amount: 1, spawnAmount: 1, spawnInterval: 0}
`
		path := filepath.Join(tempDir, "waves.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		table, err := LoadWaveTable(path)
		if err != nil {
			t.Fatalf("LoadWaveTable failed: %v", err)
		}

		if table.DelayBetweenWaves != 3 {
			t.Errorf("delayBetweenWaves: expected 3, got %v", table.DelayBetweenWaves)
		}
		if table.WaveCount() != 2 {
			t.Fatalf("Expected 2 waves, got %d", table.WaveCount())
		}

		first := table.Waves[0][0]
		if first.Level != 1 {
			t.Errorf("Default level should be 1, got %d", first.Level)
		}
		if first.Amount != 3 || first.SpawnAmount != 1 || first.StartDelay != 0.5 || first.SpawnInterval != 1 {
			t.Errorf("Unexpected first group: %+v", first)
		}

		second := table.Waves[1]
		if len(second) != 2 {
			t.Fatalf("Expected 2 groups in wave 1, got %d", len(second))
		}
		if second[0].Level != 2 {
			t.Errorf("Expected level 2, got %d", second[0].Level)
		}
		if second[1].StartDelay != 0 {
			t.Errorf("Omitted startDelay should be 0, got %v", second[1].StartDelay)
		}
	})
}

func TestParseWaveTable_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErr  error
		contains string
	}{
		{
			name:     "缺少波次间隔",
			yaml:     "waves:\n  - - {type: goblin, amount: 1, spawnAmount: 1, spawnInterval: 1}\n",
			wantErr:  ErrMissingField,
			contains: `"delayBetweenWaves"`,
		},
		{
			name:     "缺少波次",
			yaml:     "delayBetweenWaves: 1\n",
			wantErr:  ErrMissingField,
			contains: `"waves"`,
		},
		{
			name:     "出怪组缺少数量",
			yaml:     "delayBetweenWaves: 1\nwaves:\n  - - {type: goblin, spawnAmount: 1, spawnInterval: 1}\n",
			wantErr:  ErrMissingField,
			contains: `type "goblin": missing required field "amount"`,
		},
		{
			name:     "出怪组缺少类型",
			yaml:     "delayBetweenWaves: 1\nwaves:\n  - - {amount: 1, spawnAmount: 1, spawnInterval: 1}\n",
			wantErr:  ErrMissingField,
			contains: `"type"`,
		},
		{
			name:     "每批数量为零",
			yaml:     "delayBetweenWaves: 1\nwaves:\n  - - {type: goblin, amount: 2, spawnAmount: 0, spawnInterval: 1}\n",
			wantErr:  ErrInvalidValue,
			contains: "spawnAmount",
		},
		{
			name:     "空波次",
			yaml:     "delayBetweenWaves: 1\nwaves:\n  - []\n",
			wantErr:  ErrInvalidValue,
			contains: "wave 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWaveTable([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error wrapping %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Error %q should contain %s", err.Error(), tt.contains)
			}
		})
	}
}

func TestWaveTableValidateAgainst(t *testing.T) {
	units, err := ParseUnitConfig([]byte(validUnitsYAML))
	if err != nil {
		t.Fatalf("ParseUnitConfig failed: %v", err)
	}

	t.Run("引用存在的单位", func(t *testing.T) {
		table := &WaveTable{Waves: [][]SpawnGroupConfig{{{Type: "brute", Level: 1, Amount: 1, SpawnAmount: 1}}}}
		if err := table.ValidateAgainst(units); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("引用不存在的单位", func(t *testing.T) {
		table := &WaveTable{Waves: [][]SpawnGroupConfig{{{Type: "dragon", Level: 1, Amount: 1, SpawnAmount: 1}}}}
		err := table.ValidateAgainst(units)
		if !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("Expected ErrUnknownUnit, got %v", err)
		}
	})

	t.Run("等级超出等级表", func(t *testing.T) {
		table := &WaveTable{Waves: [][]SpawnGroupConfig{{{Type: "brute", Level: 5, Amount: 1, SpawnAmount: 1}}}}
		if err := table.ValidateAgainst(units); !errors.Is(err, ErrLevelOutOfRange) {
			t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
		}
	})
}

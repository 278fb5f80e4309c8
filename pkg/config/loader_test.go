package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

const testWavesYAML = `
delayBetweenWaves: 2
waves:
  - - {type: brute, amount: 2, spawnAmount: 1, spawnInterval: 1}
`

const testArenaYAML = `
size: {width: 200, height: 100}
allySpawns: [[10, 50]]
enemySpawns: [[190, 50]]
`

func TestLoadAll(t *testing.T) {
	t.Run("加载完整配置目录", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, UnitsFile, validUnitsYAML)
		writeFixture(t, dir, WavesFile, testWavesYAML)
		writeFixture(t, dir, ArenaFile, testArenaYAML)
		writeFixture(t, dir, GameFile, "tps: 20\npersistence: {backend: memory}\n")

		bundle, err := LoadAll(dir)
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if len(bundle.Units.Units) != 2 {
			t.Errorf("Expected 2 unit types, got %d", len(bundle.Units.Units))
		}
		if bundle.Waves.WaveCount() != 1 {
			t.Errorf("Expected 1 wave, got %d", bundle.Waves.WaveCount())
		}
		if bundle.Arena.Width != 200 {
			t.Errorf("Expected arena width 200, got %v", bundle.Arena.Width)
		}
		if bundle.Game.TPS != 20 || bundle.Game.Persistence.Backend != PersistenceMemory {
			t.Errorf("Unexpected game config %+v", bundle.Game)
		}
	})

	t.Run("缺少game.yaml时使用默认值", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, UnitsFile, validUnitsYAML)
		writeFixture(t, dir, WavesFile, testWavesYAML)
		writeFixture(t, dir, ArenaFile, testArenaYAML)

		bundle, err := LoadAll(dir)
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if bundle.Game.TPS != DefaultTPS {
			t.Errorf("Expected default tps, got %d", bundle.Game.TPS)
		}
	})

	t.Run("波次表引用未知单位", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, UnitsFile, validUnitsYAML)
		writeFixture(t, dir, WavesFile, "delayBetweenWaves: 1\nwaves:\n  - - {type: dragon, amount: 1, spawnAmount: 1, spawnInterval: 1}\n")
		writeFixture(t, dir, ArenaFile, testArenaYAML)

		_, err := LoadAll(dir)
		if !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("Expected ErrUnknownUnit, got %v", err)
		}
	})

	t.Run("缺少单位表", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, WavesFile, testWavesYAML)
		writeFixture(t, dir, ArenaFile, testArenaYAML)

		if _, err := LoadAll(dir); err == nil {
			t.Error("Expected error when units.yaml is missing")
		}
	})
}

func TestLoadAll_ShippedData(t *testing.T) {
	// 校验随游戏发布的配置文件
	bundle, err := LoadAll(filepath.Join("..", "..", "data"))
	if err != nil {
		t.Fatalf("shipped data failed to load: %v", err)
	}
	if bundle.Waves.WaveCount() == 0 {
		t.Error("shipped wave table is empty")
	}
}

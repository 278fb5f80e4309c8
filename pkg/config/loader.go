package config

import (
	"fmt"
	"log"

	"github.com/decker502/dungeon/pkg/embedded"
)

// 配置文件名
const (
	UnitsFile = "units.yaml"
	WavesFile = "waves.yaml"
	ArenaFile = "arena.yaml"
	GameFile  = "game.yaml"
)

// DefaultDir 默认配置目录（嵌入资源）
const DefaultDir = "data"

// Bundle 一局对战所需的全部静态配置
type Bundle struct {
	Units *UnitConfig
	Waves *WaveTable
	Arena *ArenaConfig
	Game  *GameConfig
}

// LoadAll 加载目录下的全部配置并交叉校验
// game.yaml 可以缺省（使用默认值），其余文件缺失即返回错误
func LoadAll(dir string) (*Bundle, error) {
	units, err := LoadUnitConfig(embedded.Join(dir, UnitsFile))
	if err != nil {
		return nil, err
	}

	waves, err := LoadWaveTable(embedded.Join(dir, WavesFile))
	if err != nil {
		return nil, err
	}
	if err := waves.ValidateAgainst(units); err != nil {
		return nil, fmt.Errorf("wave table references invalid unit: %w", err)
	}

	arena, err := LoadArenaConfig(embedded.Join(dir, ArenaFile))
	if err != nil {
		return nil, err
	}

	game := DefaultGameConfig()
	gamePath := embedded.Join(dir, GameFile)
	if embedded.Exists(gamePath) {
		if game, err = LoadGameConfig(gamePath); err != nil {
			return nil, err
		}
	} else {
		log.Printf("[Config] %s not found, using defaults", gamePath)
	}

	log.Printf("[Config] Loaded %d unit types, %d waves from %s", len(units.Units), waves.WaveCount(), dir)

	return &Bundle{
		Units: units,
		Waves: waves,
		Arena: arena,
		Game:  game,
	}, nil
}

package scenes

import (
	"github.com/decker502/dungeon/pkg/game"
)

// Scene 是 game.Scene 的别名，本包的场景都实现该接口
type Scene = game.Scene

var (
	_ Scene         = (*DungeonScene)(nil)
	_ game.Finisher = (*DungeonScene)(nil)
)

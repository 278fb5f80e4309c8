package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 游戏场景（对战、结算等）
// 每个场景有自己的更新与绘制逻辑
type Scene interface {
	// Update 推进场景逻辑
	// deltaTime 为自上次更新以来的时间（秒）
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Finisher 是一个可选接口，场景结束后由 SceneManager 重新开局
//
// 对局场景在失败且玩家确认后返回 true
type Finisher interface {
	Finished() bool
}

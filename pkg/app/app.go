// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开最高分存储、
// 创建场景管理器和第一局对战。main.go 只负责解析参数和 RunGame。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/decker502/dungeon/pkg/arena"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/game"
	"github.com/decker502/dungeon/pkg/scenes"
	"github.com/decker502/dungeon/pkg/storage"
	"github.com/decker502/dungeon/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 窗口缩放倍数（逻辑分辨率 = 战场尺寸）
const windowScale = 2

// DefaultAllySpawnKeys 默认的调试出兵按键
var DefaultAllySpawnKeys = scenes.AllySpawnKeys{
	ebiten.Key1: "knight",
	ebiten.Key2: "archer",
}

// DefaultInitialAllies 每局开始时的友方
var DefaultInitialAllies = []string{"knight", "knight", "archer"}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，非 0 时覆盖 game.yaml
	Seed int64
	// ConfigDir 配置目录，为空时使用嵌入的 data/
	ConfigDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	bundle       *config.Bundle
	store        storage.HighScoreStore
	verbose      bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	dir := cfg.ConfigDir
	if dir == "" {
		dir = config.DefaultDir
	}
	bundle, err := config.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		bundle.Game.Seed = cfg.Seed
	}

	store := storage.OpenHighScoreStore(bundle.Game.Persistence)
	rng := utils.NewPRNGService(bundle.Game.Seed)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() (game.Scene, error) {
		a, err := arena.New(bundle, store, rng)
		if err != nil {
			return nil, err
		}
		return scenes.NewDungeonScene(a, DefaultAllySpawnKeys, DefaultInitialAllies), nil
	})
	if !sceneManager.NewMatch() {
		return nil, fmt.Errorf("无法创建对局场景")
	}

	ebiten.SetTPS(bundle.Game.TPS)
	log.Printf("[App] Started at %d TPS, persistence backend %s", bundle.Game.TPS, bundle.Game.Persistence.Backend)

	return &App{
		sceneManager: sceneManager,
		bundle:       bundle,
		store:        store,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(a.deltaTime())
	return nil
}

// deltaTime 固定步长，限制在 MaxDeltaTime 以内
func (a *App) deltaTime() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = a.bundle.Game.TPS
	}
	return math.Min(1.0/float64(tps), a.bundle.Game.MaxDeltaTime)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.sceneManager.Draw(screen)
}

// Layout 返回游戏的逻辑屏幕尺寸（即战场尺寸）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenSize()
}

// ScreenSize 逻辑屏幕尺寸
func (a *App) ScreenSize() (int, int) {
	return int(a.bundle.Arena.Width), int(a.bundle.Arena.Height)
}

// WindowSize 默认窗口尺寸
func (a *App) WindowSize() (int, int) {
	w, h := a.ScreenSize()
	return w * windowScale, h * windowScale
}

// Close 释放最高分存储持有的连接
func (a *App) Close() error {
	if closer, ok := a.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

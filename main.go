package main

import (
	"flag"
	"log"

	"github.com/decker502/dungeon/pkg/app"
	"github.com/decker502/dungeon/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细日志")
	seed      = flag.Int64("seed", 0, "随机种子（0 表示使用 game.yaml 或当前时间）")
	configDir = flag.String("config", "", "配置目录（默认使用内置 data/）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，必须在任何配置加载之前
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Seed:      *seed,
		ConfigDir: *configDir,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer func() {
		if err := gameApp.Close(); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
	}()

	ebiten.SetWindowSize(gameApp.WindowSize())
	ebiten.SetWindowTitle("Dungeon")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

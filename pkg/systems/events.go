package systems

import "github.com/decker502/dungeon/pkg/ecs"

// DeathEvent 单位死亡事件
// 战场在移除死亡单位时发出，每个单位只发出一次；
// 表现层据此生成 Amount 个粒子
type DeathEvent struct {
	EntityID ecs.EntityID
	UnitType string
	IsAlly   bool

	X, Y          float64 // 单位左上角
	Width, Height float64 // 单位尺寸（粒子散布范围）

	Amount   int
	Size     float64
	Speed    float64
	Duration float64
	Sprite   string
	Frame    int
}

package components

import "github.com/decker502/dungeon/pkg/ecs"

// UnitComponent 战斗单位的身份信息
// 用于友方与敌方单位；Type 是单位定义表的键
type UnitComponent struct {
	Type   string // 单位类型，如 "knight"
	IsAlly bool   // 是否为友方
	Level  int    // 等级（从 1 开始）
}

// PositionComponent 实体左上角的世界坐标（像素）
type PositionComponent struct {
	X float64
	Y float64
}

// SizeComponent 实体的碰撞盒尺寸（像素）
type SizeComponent struct {
	Width  float64
	Height float64
}

// MotionComponent 单位的运动状态
//
// 追击速度和击退速度是两个独立的分量，每帧各自产生位移后相加：
//   - ChaseSpeed 沿 FacingAngle 方向，限制在 [0, MaxSpeed]
//   - KnockbackSpeed 沿 KnockbackAngle 方向，按 KnockbackResistance 衰减到 0
type MotionComponent struct {
	FacingAngle    float64 // 朝向（弧度）
	ChaseSpeed     float64 // 当前追击速度（像素/秒）
	KnockbackSpeed float64 // 当前击退速度（像素/秒）
	KnockbackAngle float64 // 击退方向（弧度）

	MaxSpeed            float64 // 最大追击速度（像素/秒）
	Acceleration        float64 // 加速度（像素/秒²）
	Deceleration        float64 // 减速度（像素/秒²）
	KnockbackResistance float64 // 击退衰减速率（像素/秒²）
}

// TargetComponent 单位当前的攻击目标
// Target 是弱引用句柄：每帧使用前必须重新校验其是否存活
type TargetComponent struct {
	Target ecs.EntityID // ecs.InvalidEntity 表示没有目标
}

package components

// ProjectileComponent 子弹数据
// 位置与尺寸分别存放在 PositionComponent 和 SizeComponent 中
//
// PendingRemoval 一旦为 true，子弹不再移动、不再碰撞，
// 由战场在下一次生成阶段之前移除
type ProjectileComponent struct {
	Angle          float64 // 飞行方向（弧度）
	Speed          float64 // 飞行速度（像素/秒）
	Damage         float64 // 命中伤害
	Knockback      float64 // 命中时施加的击退冲量
	IsAlly         bool    // 友方子弹只能命中敌方，反之亦然
	Sprite         string  // 贴图名（仅表现层使用）
	PendingRemoval bool
}

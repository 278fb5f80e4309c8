package components

// HealthComponent 存储单位的生命值信息
// 本玩法中不存在治疗，Current 只会减少
type HealthComponent struct {
	Current float64 // 当前生命值，<= 0 即死亡
	Max     float64 // 最大生命值（来自等级表）
	JustHit bool    // 本帧是否受击（仅供渲染闪白，渲染后清除）
}

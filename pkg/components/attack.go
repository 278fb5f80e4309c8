package components

import "github.com/decker502/dungeon/pkg/utils"

// AttackKind 攻击方式
// 两种方式共用冷却逻辑，只在结算时不同
type AttackKind int

const (
	// AttackKindProjectile 发射子弹
	AttackKindProjectile AttackKind = iota
	// AttackKindArea 范围伤害，半径为 Range
	AttackKindArea
)

// String 返回攻击方式名称（日志用）
func (k AttackKind) String() string {
	switch k {
	case AttackKindProjectile:
		return "projectile"
	case AttackKindArea:
		return "aoe"
	default:
		return "unknown"
	}
}

// ProjectileAttack 远程攻击的专属参数
type ProjectileAttack struct {
	OffsetX float64 // 发射点相对单位左上角的偏移
	OffsetY float64
	Speed   float64 // 子弹速度（像素/秒）
	Width   float64 // 子弹碰撞盒
	Height  float64
	Sprite  string
}

// AreaAttack 范围攻击的专属参数
type AreaAttack struct {
	KnockbackAngleRange float64 // 击退角度抖动总范围（弧度）
}

// AttackComponent 单位的攻击能力
// Kind 决定 Projectile 与 Area 中哪一个非空
type AttackComponent struct {
	Kind      AttackKind
	Damage    float64     // 单次伤害
	Knockback float64     // 击退冲量（击退初速度）
	Range     float64     // 攻击距离；范围攻击时也是伤害半径
	Cooldown  utils.Timer // 攻击冷却，获得新目标时重置

	Projectile *ProjectileAttack
	Area       *AreaAttack
}

package systems

import (
	"log"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/entities"
	"github.com/decker502/dungeon/pkg/utils"
)

// AttackSystem 攻击结算系统
//
// 只有追击速度为 0（站定）且有有效目标的单位才会推进攻击冷却。
// 冷却在慢帧中可能累积多次完成，每次完成结算一次攻击：
//   - 远程：在发射点生成子弹，瞄准目标当前中心
//   - 范围：对半径内所有对手造成伤害，并向远离自身的方向击退
type AttackSystem struct {
	entityManager *ecs.EntityManager
	units         *UnitSystem
}

// NewAttackSystem 创建攻击结算系统
func NewAttackSystem(em *ecs.EntityManager, units *UnitSystem) *AttackSystem {
	return &AttackSystem{
		entityManager: em,
		units:         units,
	}
}

// Update 结算一方所有单位的攻击
// 返回本帧新生成的子弹
func (s *AttackSystem) Update(deltaTime float64, attackers, opponents []ecs.EntityID) []ecs.EntityID {
	var spawned []ecs.EntityID
	for _, id := range attackers {
		spawned = s.resolve(id, deltaTime, opponents, spawned)
	}
	return spawned
}

func (s *AttackSystem) resolve(id ecs.EntityID, deltaTime float64, opponents []ecs.EntityID, spawned []ecs.EntityID) []ecs.EntityID {
	if s.units.IsDead(id) {
		return spawned
	}
	motion, ok1 := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)
	attack, ok2 := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
	if !ok1 || !ok2 || motion.ChaseSpeed != 0 {
		return spawned
	}
	if !s.units.IsTargetable(s.units.TargetOf(id)) {
		return spawned
	}

	attack.Cooldown.Advance(deltaTime)

	// 零冷却每帧只结算一次，否则 TryConsume 永远为 true
	if attack.Cooldown.Delay <= 0 {
		return s.strike(id, attack, opponents, spawned)
	}

	for attack.Cooldown.TryConsume() {
		spawned = s.strike(id, attack, opponents, spawned)
		// 目标在本次结算中死亡，剩余的完成次数留给下一个目标（获取时会重置）
		if !s.units.IsTargetable(s.units.TargetOf(id)) {
			break
		}
	}
	return spawned
}

func (s *AttackSystem) strike(id ecs.EntityID, attack *components.AttackComponent, opponents []ecs.EntityID, spawned []ecs.EntityID) []ecs.EntityID {
	switch attack.Kind {
	case components.AttackKindProjectile:
		if projectileID, ok := s.fireProjectile(id, attack); ok {
			spawned = append(spawned, projectileID)
		}
	case components.AttackKindArea:
		s.areaStrike(id, attack, opponents)
	}
	return spawned
}

// fireProjectile 在 位置+发射偏移 处生成子弹，子弹中心对准发射点
func (s *AttackSystem) fireProjectile(id ecs.EntityID, attack *components.AttackComponent) (ecs.EntityID, bool) {
	spec := attack.Projectile
	if spec == nil {
		return ecs.InvalidEntity, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return ecs.InvalidEntity, false
	}
	unit, _ := ecs.GetComponent[*components.UnitComponent](s.entityManager, id)

	origin := utils.Vec2{X: pos.X + spec.OffsetX, Y: pos.Y + spec.OffsetY}
	angle := utils.AngleTo(origin, s.units.Center(s.units.TargetOf(id)))

	projectileID, err := entities.NewProjectile(s.entityManager, entities.ProjectileParams{
		X:         origin.X - spec.Width/2,
		Y:         origin.Y - spec.Height/2,
		Width:     spec.Width,
		Height:    spec.Height,
		Angle:     angle,
		Speed:     spec.Speed,
		Damage:    attack.Damage,
		Knockback: attack.Knockback,
		IsAlly:    unit != nil && unit.IsAlly,
		Sprite:    spec.Sprite,
	})
	if err != nil {
		log.Printf("[AttackSystem] Failed to fire projectile from entity %d: %v", id, err)
		return ecs.InvalidEntity, false
	}
	return projectileID, true
}

// areaStrike 对攻击距离内的所有存活对手造成伤害
func (s *AttackSystem) areaStrike(id ecs.EntityID, attack *components.AttackComponent, opponents []ecs.EntityID) {
	spread := 0.0
	if attack.Area != nil {
		spread = attack.Area.KnockbackAngleRange
	}

	self := s.units.Center(id)
	for _, opponent := range opponents {
		if !s.units.IsTargetable(opponent) {
			continue
		}
		center := s.units.Center(opponent)
		if utils.Distance(self, center) > attack.Range {
			continue
		}
		s.units.ApplyHit(opponent, attack.Damage, utils.AngleTo(self, center), attack.Knockback, spread)
	}
}

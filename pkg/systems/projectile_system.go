package systems

import (
	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/utils"
)

// ProjectileSystem 子弹系统
// 子弹直线飞行，不追踪、不重新选择目标；
// 碰到战场边界或命中第一个对手后标记移除
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	units         *UnitSystem
	arenaSize     utils.Vec2
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(em *ecs.EntityManager, units *UnitSystem, arenaSize utils.Vec2) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		units:         units,
		arenaSize:     arenaSize,
	}
}

// Update 移动子弹并检查边界
// 碰撞盒任一边到达或越过战场边界即标记移除
func (s *ProjectileSystem) Update(deltaTime float64, projectiles []ecs.EntityID) {
	for _, id := range projectiles {
		proj, ok1 := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
		pos, ok2 := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		size, ok3 := ecs.GetComponent[*components.SizeComponent](s.entityManager, id)
		if !ok1 || !ok2 || !ok3 || proj.PendingRemoval {
			continue
		}

		step := utils.FromAngle(proj.Angle).Scale(proj.Speed * deltaTime)
		pos.X += step.X
		pos.Y += step.Y

		if pos.X <= 0 || pos.Y <= 0 ||
			pos.X+size.Width >= s.arenaSize.X ||
			pos.Y+size.Height >= s.arenaSize.Y {
			proj.PendingRemoval = true
		}
	}
}

// TestCollisions 检查子弹与对手的碰撞
// 遇到第一个重叠的存活对手即结算命中并停止扫描，每颗子弹最多命中一次
//
// 返回：
//
//	被命中的单位，未命中返回 ecs.InvalidEntity
func (s *ProjectileSystem) TestCollisions(id ecs.EntityID, opponents []ecs.EntityID) ecs.EntityID {
	proj, ok1 := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	size, ok3 := ecs.GetComponent[*components.SizeComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 || proj.PendingRemoval {
		return ecs.InvalidEntity
	}

	projPos := utils.Vec2{X: pos.X, Y: pos.Y}
	projSize := utils.Vec2{X: size.Width, Y: size.Height}

	for _, opponent := range opponents {
		if !s.units.IsTargetable(opponent) {
			continue
		}
		oPos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, opponent)
		oSize, ok2 := ecs.GetComponent[*components.SizeComponent](s.entityManager, opponent)
		if !ok1 || !ok2 {
			continue
		}
		if utils.AABBOverlap(projPos, projSize, utils.Vec2{X: oPos.X, Y: oPos.Y}, utils.Vec2{X: oSize.Width, Y: oSize.Height}) {
			s.units.ApplyHit(opponent, proj.Damage, proj.Angle, proj.Knockback, DefaultHitJitter)
			proj.PendingRemoval = true
			return opponent
		}
	}
	return ecs.InvalidEntity
}

// ShouldRemove 子弹是否应被移除
// 已不存在的实体同样返回 true
func (s *ProjectileSystem) ShouldRemove(id ecs.EntityID) bool {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
	if !ok {
		return true
	}
	return proj.PendingRemoval
}

// HitsEnemies 友方子弹只能命中敌方
func (s *ProjectileSystem) HitsEnemies(id ecs.EntityID) bool {
	proj, ok := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, id)
	return ok && proj.IsAlly
}

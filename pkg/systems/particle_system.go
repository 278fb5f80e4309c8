package systems

import (
	"math"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/entities"
	"github.com/decker502/dungeon/pkg/utils"
)

// ParticleSystem 死亡粒子系统（纯表现，不影响战斗）
//
// 每个 DeathEvent 生成 Amount 个粒子，散布在单位碰撞盒内，
// 沿背离单位中心的方向飞出；速度与透明度随寿命线性衰减到 0
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	rng           *utils.PRNGService
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager, rng *utils.PRNGService) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		rng:           rng,
	}
}

// Emit 为一次死亡事件生成粒子
// 返回生成的粒子实体
func (s *ParticleSystem) Emit(event DeathEvent) []ecs.EntityID {
	if event.Amount <= 0 || event.Duration <= 0 {
		return nil
	}

	center := utils.Vec2{X: event.X + event.Width/2, Y: event.Y + event.Height/2}
	spreadX := math.Max(0, event.Width-event.Size)
	spreadY := math.Max(0, event.Height-event.Size)

	ids := make([]ecs.EntityID, 0, event.Amount)
	for i := 0; i < event.Amount; i++ {
		pos := utils.Vec2{
			X: event.X + s.rng.Float64()*spreadX,
			Y: event.Y + s.rng.Float64()*spreadY,
		}

		particleCenter := utils.Vec2{X: pos.X + event.Size/2, Y: pos.Y + event.Size/2}
		var angle float64
		if particleCenter == center {
			// 恰好在中心时随机方向
			angle = s.rng.Float64() * 2 * math.Pi
		} else {
			angle = utils.AngleTo(center, particleCenter)
		}

		ids = append(ids, entities.NewDeathParticle(s.entityManager, pos, angle,
			event.Speed, event.Size, event.Duration, event.Sprite, event.Frame))
	}
	return ids
}

// Update 移动粒子并淡出，寿命结束的粒子标记删除
func (s *ParticleSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager) {
		if s.entityManager.IsMarked(id) {
			continue
		}
		particle, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		particle.Life.Advance(deltaTime)
		if particle.Life.IsDue() {
			particle.Alpha = 0
			s.entityManager.DestroyEntity(id)
			continue
		}

		percentLeft := 1 - particle.Life.PercentElapsed()
		particle.Alpha = 255 * percentLeft

		step := utils.FromAngle(particle.Angle).Scale(particle.Speed * percentLeft * deltaTime)
		pos.X += step.X
		pos.Y += step.Y
	}
}

// Count 返回当前粒子数量（不含已标记删除的）
func (s *ParticleSystem) Count() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager) {
		if !s.entityManager.IsMarked(id) {
			count++
		}
	}
	return count
}

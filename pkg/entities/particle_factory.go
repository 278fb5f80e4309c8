package entities

import (
	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/utils"
)

// NewDeathParticle 创建单个死亡粒子实体
// 粒子完全不透明出生，寿命为 duration 秒
func NewDeathParticle(em *ecs.EntityManager, pos utils.Vec2, angle, speed, size, duration float64, sprite string, frame int) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: pos.X, Y: pos.Y})
	ecs.AddComponent(em, entityID, &components.ParticleComponent{
		Angle:  angle,
		Speed:  speed,
		Size:   size,
		Alpha:  255,
		Life:   utils.Timer{Delay: duration},
		Sprite: sprite,
		Frame:  frame,
	})

	return entityID
}

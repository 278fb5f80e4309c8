package entities

import (
	"fmt"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
)

// ProjectileParams 创建子弹所需的参数
type ProjectileParams struct {
	X, Y          float64 // 发射点（子弹左上角）
	Width, Height float64
	Angle         float64 // 飞行方向（弧度）
	Speed         float64
	Damage        float64
	Knockback     float64
	IsAlly        bool
	Sprite        string
}

// NewProjectile 创建子弹实体
// 子弹沿固定方向直线飞行，不追踪目标
func NewProjectile(em *ecs.EntityManager, p ProjectileParams) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: p.X, Y: p.Y})
	ecs.AddComponent(em, entityID, &components.SizeComponent{Width: p.Width, Height: p.Height})
	ecs.AddComponent(em, entityID, &components.ProjectileComponent{
		Angle:     p.Angle,
		Speed:     p.Speed,
		Damage:    p.Damage,
		Knockback: p.Knockback,
		IsAlly:    p.IsAlly,
		Sprite:    p.Sprite,
	})

	return entityID, nil
}

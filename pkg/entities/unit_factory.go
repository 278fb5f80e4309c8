package entities

import (
	"fmt"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/utils"
)

// NewUnit 创建战斗单位实体
// 属性从单位定义表按 (类型, 等级) 查询，生命值满值出生
//
// 参数:
//   - em: 实体管理器
//   - units: 单位定义表
//   - unitType: 单位类型
//   - level: 等级（从 1 开始）
//   - isAlly: 是否为友方
//   - pos: 出生点（左上角）
//
// 返回:
//   - ecs.EntityID: 创建的单位实体ID，失败时返回 0
//   - error: 单位类型或等级不存在时返回错误
func NewUnit(em *ecs.EntityManager, units *config.UnitConfig, unitType string, level int, isAlly bool, pos utils.Vec2) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if units == nil {
		return 0, fmt.Errorf("unit config cannot be nil")
	}

	def, err := units.Definition(unitType)
	if err != nil {
		return 0, fmt.Errorf("failed to create unit: %w", err)
	}
	stats, err := units.Stats(unitType, level)
	if err != nil {
		return 0, fmt.Errorf("failed to create unit: %w", err)
	}

	attack, err := newAttackComponent(def, stats)
	if err != nil {
		return 0, fmt.Errorf("failed to create unit %q: %w", unitType, err)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.UnitComponent{
		Type:   unitType,
		IsAlly: isAlly,
		Level:  level,
	})
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: pos.X, Y: pos.Y})
	ecs.AddComponent(em, entityID, &components.SizeComponent{
		Width:  def.Size.Width,
		Height: def.Size.Height,
	})
	ecs.AddComponent(em, entityID, &components.MotionComponent{
		MaxSpeed:            stats.MaxSpeed,
		Acceleration:        stats.Acceleration,
		Deceleration:        stats.Deceleration,
		KnockbackResistance: stats.KnockbackResistance,
	})
	ecs.AddComponent(em, entityID, &components.HealthComponent{
		Current: stats.Health,
		Max:     stats.Health,
	})
	ecs.AddComponent(em, entityID, attack)
	ecs.AddComponent(em, entityID, &components.TargetComponent{})
	ecs.AddComponent(em, entityID, &components.DeathParticlesComponent{
		Amount:   def.DeathParticles.Amount,
		Size:     def.DeathParticles.Size,
		Speed:    def.DeathParticles.Speed,
		Duration: def.DeathParticles.Duration,
		Sprite:   def.DeathParticles.Sprite,
		Frame:    def.DeathParticles.Frame,
	})

	return entityID, nil
}

func newAttackComponent(def *config.UnitDefinition, stats config.LevelStats) (*components.AttackComponent, error) {
	attack := &components.AttackComponent{
		Damage:    stats.Damage,
		Knockback: stats.Knockback,
		Range:     stats.AttackRange,
		Cooldown:  utils.Timer{Delay: stats.AttackCooldown},
	}

	switch def.Attack.Kind {
	case config.AttackProjectile:
		spec := def.Attack.Projectile
		if spec == nil {
			return nil, fmt.Errorf("projectile attack without projectile parameters")
		}
		attack.Kind = components.AttackKindProjectile
		attack.Projectile = &components.ProjectileAttack{
			OffsetX: spec.OffsetX,
			OffsetY: spec.OffsetY,
			Speed:   spec.Speed,
			Width:   spec.Width,
			Height:  spec.Height,
			Sprite:  spec.Sprite,
		}
	case config.AttackAreaOfEffect:
		attack.Kind = components.AttackKindArea
		attack.Area = &components.AreaAttack{}
		if def.Attack.Area != nil {
			attack.Area.KnockbackAngleRange = def.Attack.Area.KnockbackAngleRange
		}
	default:
		return nil, fmt.Errorf("unsupported attack kind %q", def.Attack.Kind)
	}

	return attack, nil
}

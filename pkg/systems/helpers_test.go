package systems

import (
	"testing"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/entities"
	"github.com/decker502/dungeon/pkg/utils"
)

// 测试用单位表
// 所有单位尺寸为 10x10，便于用左上角坐标推算中心距离
const testUnitsYAML = `
units:
  fighter:
    size: {width: 10, height: 10}
    attack:
      kind: aoe
      area: {knockbackAngleRange: 0}
    deathParticles: {amount: 6, size: 2, speed: 40, duration: 1, sprite: fighter, frame: 0}
    levels:
      - {health: 100, damage: 10, knockback: 50, maxSpeed: 100, acceleration: 50, deceleration: 100, knockbackResistance: 100, attackRange: 50, attackCooldown: 1}
  archer:
    size: {width: 10, height: 10}
    attack:
      kind: projectile
      projectile: {sprite: arrow, speed: 200, offsetX: 5, offsetY: 5, width: 4, height: 4}
    levels:
      - {health: 30, damage: 8, knockback: 20, maxSpeed: 60, acceleration: 100, deceleration: 200, knockbackResistance: 100, attackRange: 150, attackCooldown: 1}
  dummy:
    size: {width: 10, height: 10}
    attack:
      kind: aoe
    levels:
      - {health: 10, damage: 0, knockback: 0, maxSpeed: 0, acceleration: 0, deceleration: 100, knockbackResistance: 100, attackRange: 1, attackCooldown: 1}
`

// testWorld 单元测试用的最小战场
type testWorld struct {
	em    *ecs.EntityManager
	units *config.UnitConfig
	rng   *utils.PRNGService
	size  utils.Vec2
	us    *UnitSystem
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	units, err := config.ParseUnitConfig([]byte(testUnitsYAML))
	if err != nil {
		t.Fatalf("ParseUnitConfig failed: %v", err)
	}
	em := ecs.NewEntityManager()
	rng := utils.NewPRNGService(1)
	size := utils.Vec2{X: 1000, Y: 1000}
	return &testWorld{
		em:    em,
		units: units,
		rng:   rng,
		size:  size,
		us:    NewUnitSystem(em, rng, size),
	}
}

func (w *testWorld) spawn(t *testing.T, unitType string, isAlly bool, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewUnit(w.em, w.units, unitType, 1, isAlly, utils.Vec2{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewUnit(%s) failed: %v", unitType, err)
	}
	return id
}

func (w *testWorld) position(id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return pos
}

func (w *testWorld) motion(id ecs.EntityID) *components.MotionComponent {
	motion, _ := ecs.GetComponent[*components.MotionComponent](w.em, id)
	return motion
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	health, _ := ecs.GetComponent[*components.HealthComponent](w.em, id)
	return health
}

func (w *testWorld) attack(id ecs.EntityID) *components.AttackComponent {
	attack, _ := ecs.GetComponent[*components.AttackComponent](w.em, id)
	return attack
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

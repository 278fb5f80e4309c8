// Package arena 把战斗单位、子弹和波次调度串成每帧一次的对战循环
//
// Arena 持有双方存活单位列表、子弹列表和两个生成队列；
// 各系统只通过参数拿到需要的列表，不持有全局状态，
// 因此同一进程内可以同时运行多局（测试、无窗口模拟）。
package arena

import (
	"fmt"
	"log"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/entities"
	"github.com/decker502/dungeon/pkg/storage"
	"github.com/decker502/dungeon/pkg/systems"
	"github.com/decker502/dungeon/pkg/utils"
)

// Arena 一局对战
//
// 每帧 Tick 的顺序：
//  1. 移除上一帧死亡的单位（发出 DeathEvent）和待移除子弹
//  2. 生成友方队列中的单位（两波之间保留队列）
//  3. 波次调度（出怪、胜负判定、两波之间清空友方）
//  4. 生成敌方队列中的单位并清空队列
//  5. 双方单位移动与索敌
//  6. 双方攻击结算，收集新子弹
//  7. 子弹移动与碰撞
//  8. 死亡粒子
type Arena struct {
	entityManager *ecs.EntityManager
	bundle        *config.Bundle
	rng           *utils.PRNGService
	store         storage.HighScoreStore

	unitSystem       *systems.UnitSystem
	attackSystem     *systems.AttackSystem
	projectileSystem *systems.ProjectileSystem
	waveSystem       *systems.WaveSystem
	particleSystem   *systems.ParticleSystem

	allies      []ecs.EntityID
	enemies     []ecs.EntityID
	projectiles []ecs.EntityID

	enemyQueue *systems.SpawnQueue
	allyQueue  *systems.SpawnQueue

	deathEvents []systems.DeathEvent
	ticks       int
}

// New 创建一局对战
//
// 参数：
//
//	bundle - 已校验的静态配置（单位表、波次表、战场）
//	store - 最高分存储，nil 时使用内存存储
//	rng - 随机数服务，nil 时按 bundle.Game.Seed 创建
func New(bundle *config.Bundle, store storage.HighScoreStore, rng *utils.PRNGService) (*Arena, error) {
	if bundle == nil || bundle.Units == nil || bundle.Waves == nil || bundle.Arena == nil {
		return nil, fmt.Errorf("arena config bundle is incomplete")
	}
	if bundle.Waves.WaveCount() == 0 {
		return nil, fmt.Errorf("wave table has no waves")
	}
	if store == nil {
		store = storage.NewMemoryHighScoreStore(0)
	}
	if rng == nil {
		var seed int64
		if bundle.Game != nil {
			seed = bundle.Game.Seed
		}
		rng = utils.NewPRNGService(seed)
	}

	em := ecs.NewEntityManager()
	size := bundle.Arena.Size()
	unitSystem := systems.NewUnitSystem(em, rng, size)

	a := &Arena{
		entityManager:    em,
		bundle:           bundle,
		rng:              rng,
		store:            store,
		unitSystem:       unitSystem,
		attackSystem:     systems.NewAttackSystem(em, unitSystem),
		projectileSystem: systems.NewProjectileSystem(em, unitSystem, size),
		particleSystem:   systems.NewParticleSystem(em, rng),
		enemyQueue:       systems.NewSpawnQueue(),
		allyQueue:        systems.NewSpawnQueue(),
	}
	a.waveSystem = systems.NewWaveSystem(em, bundle.Waves, a.enemyQueue, store)

	log.Printf("[Arena] Created %.0fx%.0f arena, high score %d", size.X, size.Y, a.waveSystem.HighScore())
	return a, nil
}

// Tick 推进一帧
func (a *Arena) Tick(deltaTime float64) {
	a.ticks++
	a.deathEvents = a.deathEvents[:0]

	a.removeDead()

	// 两波之间友方会被清空，排队的友方留到下一波第一帧再生成
	if !a.waveSystem.IsBetweenWaves() {
		a.drainQueue(a.allyQueue, true)
		a.allyQueue.Clear()
	}

	a.waveSystem.Update(deltaTime, a)

	a.drainQueue(a.waveSystem.SpawnQueue(), false)
	a.waveSystem.ClearSpawnQueue()

	a.unitSystem.Update(deltaTime, a.allies, a.enemies)
	a.unitSystem.Update(deltaTime, a.enemies, a.allies)

	a.projectiles = append(a.projectiles, a.attackSystem.Update(deltaTime, a.allies, a.enemies)...)
	a.projectiles = append(a.projectiles, a.attackSystem.Update(deltaTime, a.enemies, a.allies)...)

	a.updateProjectiles(deltaTime)

	a.particleSystem.Update(deltaTime)
}

// removeDead 移除死亡单位和待移除子弹，然后统一清理实体
func (a *Arena) removeDead() {
	a.allies = a.compactUnits(a.allies)
	a.enemies = a.compactUnits(a.enemies)

	kept := a.projectiles[:0]
	for _, id := range a.projectiles {
		if a.projectileSystem.ShouldRemove(id) {
			a.entityManager.DestroyEntity(id)
			continue
		}
		kept = append(kept, id)
	}
	a.projectiles = kept

	a.entityManager.RemoveMarkedEntities()
}

// compactUnits 原地过滤出存活单位，死亡单位发出一次 DeathEvent
func (a *Arena) compactUnits(units []ecs.EntityID) []ecs.EntityID {
	kept := units[:0]
	for _, id := range units {
		if !a.entityManager.IsAlive(id) {
			continue
		}
		if a.unitSystem.IsDead(id) {
			a.emitDeath(id)
			a.entityManager.DestroyEntity(id)
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

func (a *Arena) emitDeath(id ecs.EntityID) {
	event := systems.DeathEvent{EntityID: id}
	if unit, ok := ecs.GetComponent[*components.UnitComponent](a.entityManager, id); ok {
		event.UnitType = unit.Type
		event.IsAlly = unit.IsAlly
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](a.entityManager, id); ok {
		event.X, event.Y = pos.X, pos.Y
	}
	if size, ok := ecs.GetComponent[*components.SizeComponent](a.entityManager, id); ok {
		event.Width, event.Height = size.Width, size.Height
	}
	if particles, ok := ecs.GetComponent[*components.DeathParticlesComponent](a.entityManager, id); ok {
		event.Amount = particles.Amount
		event.Size = particles.Size
		event.Speed = particles.Speed
		event.Duration = particles.Duration
		event.Sprite = particles.Sprite
		event.Frame = particles.Frame
	}

	a.deathEvents = append(a.deathEvents, event)
	a.particleSystem.Emit(event)
}

// drainQueue 在随机出生点生成队列中的单位
// 调用方负责随后清空队列
func (a *Arena) drainQueue(queue *systems.SpawnQueue, isAlly bool) {
	spawns := a.bundle.Arena.EnemySpawns
	if isAlly {
		spawns = a.bundle.Arena.AllySpawns
	}

	for _, req := range queue.Pending() {
		pos, ok := a.rng.ChoosePoint(spawns)
		if !ok {
			log.Printf("[Arena] Warning: no spawn points for %s (ally=%v)", req.Type, isAlly)
			continue
		}
		if _, err := a.PlaceUnit(req.Type, req.Level, isAlly, pos); err != nil {
			log.Printf("[Arena] Warning: failed to spawn %s: %v", req.Type, err)
		}
	}
}

// updateProjectiles 移动子弹并按阵营检测碰撞
func (a *Arena) updateProjectiles(deltaTime float64) {
	a.projectileSystem.Update(deltaTime, a.projectiles)

	for _, id := range a.projectiles {
		opponents := a.allies
		if a.projectileSystem.HitsEnemies(id) {
			opponents = a.enemies
		}
		a.projectileSystem.TestCollisions(id, opponents)
	}
}

// PlaceUnit 在指定位置立即创建单位并加入对应列表
func (a *Arena) PlaceUnit(unitType string, level int, isAlly bool, pos utils.Vec2) (ecs.EntityID, error) {
	id, err := entities.NewUnit(a.entityManager, a.bundle.Units, unitType, level, isAlly, pos)
	if err != nil {
		return ecs.InvalidEntity, err
	}
	if isAlly {
		a.allies = append(a.allies, id)
	} else {
		a.enemies = append(a.enemies, id)
	}
	return id, nil
}

// SpawnAlly 把一个友方单位加入生成队列，下一帧在随机友方出生点生成
func (a *Arena) SpawnAlly(unitType string, level int) error {
	if _, err := a.bundle.Units.Stats(unitType, level); err != nil {
		return fmt.Errorf("failed to queue ally: %w", err)
	}
	a.allyQueue.Push(systems.SpawnRequest{Type: unitType, Level: level})
	return nil
}

// AllyQueue 友方生成队列，交给出兵建筑等外部生产者
func (a *Arena) AllyQueue() *systems.SpawnQueue {
	return a.allyQueue
}

// AllyCount 实现 systems.Battlefield
func (a *Arena) AllyCount() int {
	return len(a.allies)
}

// EnemyCount 实现 systems.Battlefield
func (a *Arena) EnemyCount() int {
	return len(a.enemies)
}

// ClearAllies 立即移除所有友方，不发出死亡事件
func (a *Arena) ClearAllies() {
	if len(a.allies) == 0 {
		return
	}
	for _, id := range a.allies {
		a.entityManager.DestroyEntity(id)
	}
	a.allies = a.allies[:0]
}

// Reset 新开一局：清除全部实体和队列，从第一波重新开始
// 最高分从存储重新读取，不会丢失
func (a *Arena) Reset() {
	a.entityManager.DestroyAll()
	a.allies = nil
	a.enemies = nil
	a.projectiles = nil
	a.deathEvents = nil
	a.allyQueue.Clear()
	a.enemyQueue.Clear()
	a.ticks = 0

	a.waveSystem = systems.NewWaveSystem(a.entityManager, a.bundle.Waves, a.enemyQueue, a.store)
	log.Printf("[Arena] Reset, high score %d", a.waveSystem.HighScore())
}

// Allies 友方存活单位（只读，下一次 Tick 前有效）
func (a *Arena) Allies() []ecs.EntityID { return a.allies }

// Enemies 敌方存活单位（只读，下一次 Tick 前有效）
func (a *Arena) Enemies() []ecs.EntityID { return a.enemies }

// Projectiles 飞行中的子弹（只读，下一次 Tick 前有效）
func (a *Arena) Projectiles() []ecs.EntityID { return a.projectiles }

// DeathEvents 本帧发出的死亡事件
func (a *Arena) DeathEvents() []systems.DeathEvent { return a.deathEvents }

// Lost 对局是否失败
func (a *Arena) Lost() bool { return a.waveSystem.Lost() }

// WaveIndex 当前波次（0-based）
func (a *Arena) WaveIndex() int { return a.waveSystem.WaveIndex() }

// HighScore 最高分
func (a *Arena) HighScore() int { return a.waveSystem.HighScore() }

// Ticks 本局已推进的帧数
func (a *Arena) Ticks() int { return a.ticks }

// Size 战场尺寸
func (a *Arena) Size() utils.Vec2 { return a.bundle.Arena.Size() }

// EntityManager 供表现层读取组件
func (a *Arena) EntityManager() *ecs.EntityManager { return a.entityManager }

// Units 单位系统（状态查询）
func (a *Arena) Units() *systems.UnitSystem { return a.unitSystem }

// Waves 波次系统（间歇倒计时等查询）
func (a *Arena) Waves() *systems.WaveSystem { return a.waveSystem }

// Particles 当前死亡粒子实体
func (a *Arena) Particles() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ParticleComponent](a.entityManager)
}

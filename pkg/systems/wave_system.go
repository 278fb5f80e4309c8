package systems

import (
	"log"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/config"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/storage"
	"github.com/decker502/dungeon/pkg/utils"
)

// Battlefield 波次系统观察与操作战场的接口
// 由战场实现；测试中可替换为简单实现
type Battlefield interface {
	// AllyCount 当前存活的友方数量
	AllyCount() int
	// EnemyCount 当前存活的敌方数量
	EnemyCount() int
	// ClearAllies 立即清除所有友方（两波之间调用）
	ClearAllies()
}

// WaveSystem 波次调度系统
//
// 状态：
//   - 出怪中：至少一个出怪组还有剩余数量，或本波敌人尚未全部死亡
//   - 间歇：本波敌人全部生成（队列已被取走）并全部死亡，间歇计时器运行中；
//     间歇期间每帧清空友方，间歇结束后进入下一波
//
// 失败判定：出怪中每帧检查，友方为空立即失败；失败后不再推进，直到外部重置
//
// 最高分只在两个时刻更新为 wave+1：本波清空、对局失败
type WaveSystem struct {
	entityManager *ecs.EntityManager
	stateEntityID ecs.EntityID
	waves         *config.WaveTable
	queue         *SpawnQueue
	store         storage.HighScoreStore
}

// NewWaveSystem 创建波次系统并载入第一波
//
// 参数：
//
//	em - 实体管理器（状态挂在单例实体上）
//	waves - 波次表
//	queue - 敌方生成队列（战场持有）
//	store - 最高分存储，可为 nil（不持久化）
func NewWaveSystem(em *ecs.EntityManager, waves *config.WaveTable, queue *SpawnQueue, store storage.HighScoreStore) *WaveSystem {
	stateEntity := em.CreateEntity()
	state := &components.WaveStateComponent{
		InterWaveTimer: utils.Timer{Delay: waves.DelayBetweenWaves},
		HighScore:      storage.LoadHighScore(store),
	}
	ecs.AddComponent(em, stateEntity, state)

	s := &WaveSystem{
		entityManager: em,
		stateEntityID: stateEntity,
		waves:         waves,
		queue:         queue,
		store:         store,
	}
	s.loadWave(state, 0)
	return s
}

// getState 获取波次状态组件
func (s *WaveSystem) getState() *components.WaveStateComponent {
	state, ok := ecs.GetComponent[*components.WaveStateComponent](s.entityManager, s.stateEntityID)
	if !ok {
		return nil
	}
	return state
}

// loadWave 载入指定波次的出怪组
// 超出波次表时记录警告并回到第一波的定义；WaveIndex 本身不回退
func (s *WaveSystem) loadWave(state *components.WaveStateComponent, waveIndex int) {
	state.WaveIndex = waveIndex

	tableIndex := waveIndex
	if tableIndex >= s.waves.WaveCount() {
		log.Printf("[WaveSystem] Warning: wave %d exceeds wave table (%d waves), wrapping to first wave",
			waveIndex+1, s.waves.WaveCount())
		tableIndex = waveIndex % s.waves.WaveCount()
	}

	defs := s.waves.Waves[tableIndex]
	state.Groups = make([]components.SpawnGroup, 0, len(defs))
	for _, def := range defs {
		state.Groups = append(state.Groups, components.SpawnGroup{
			UnitType:       def.Type,
			Level:          def.Level,
			RemainingCount: def.Amount,
			CountPerBurst:  def.SpawnAmount,
			StartDelay:     utils.Timer{Delay: def.StartDelay},
			BurstInterval:  utils.Timer{Delay: def.SpawnInterval},
		})
	}
}

// Update 推进波次调度
// 参数：
//   - deltaTime: 自上次更新以来的时间（秒）
//   - field: 战场（读取存活数量、两波之间清空友方）
func (s *WaveSystem) Update(deltaTime float64, field Battlefield) {
	state := s.getState()
	if state == nil || state.Lost {
		return
	}

	if state.BetweenWaves {
		s.updateBetweenWaves(state, deltaTime, field)
		return
	}

	s.updateSpawnGroups(state, deltaTime)

	// 出怪中每帧检查失败，不论出怪组是否耗尽
	if field.AllyCount() == 0 {
		state.Lost = true
		log.Printf("[WaveSystem] All allies lost on wave %d", state.WaveIndex+1)
		s.recordHighScore(state)
		return
	}

	// 队列中尚未生成的敌人也算作存活
	if s.allGroupsExhausted(state) && s.queue.Len() == 0 && field.EnemyCount() == 0 {
		state.BetweenWaves = true
		state.InterWaveTimer.Reset()
		log.Printf("[WaveSystem] Wave %d cleared", state.WaveIndex+1)
		s.recordHighScore(state)
	}
}

func (s *WaveSystem) updateBetweenWaves(state *components.WaveStateComponent, deltaTime float64, field Battlefield) {
	// 间歇期间不进行友方战斗
	field.ClearAllies()

	state.InterWaveTimer.Advance(deltaTime)
	if !state.InterWaveTimer.TryConsume() {
		return
	}

	state.InterWaveTimer.Reset()
	state.BetweenWaves = false
	s.loadWave(state, state.WaveIndex+1)
	log.Printf("[WaveSystem] Starting wave %d", state.WaveIndex+1)
}

// updateSpawnGroups 推进各出怪组的延迟与批次
func (s *WaveSystem) updateSpawnGroups(state *components.WaveStateComponent, deltaTime float64) {
	for i := range state.Groups {
		group := &state.Groups[i]

		if !group.StartDelayConsumed {
			group.StartDelay.Advance(deltaTime)
			if !group.StartDelay.IsDue() {
				continue
			}
			group.StartDelayConsumed = true
		}

		if group.RemainingCount <= 0 {
			continue
		}

		group.BurstInterval.Advance(deltaTime)
		// 零间隔时 TryConsume 恒为 true，循环由剩余数量终止
		for group.RemainingCount > 0 && group.BurstInterval.TryConsume() {
			count := min(group.CountPerBurst, group.RemainingCount)
			for n := 0; n < count; n++ {
				s.queue.Push(SpawnRequest{Type: group.UnitType, Level: group.Level})
			}
			group.RemainingCount -= count
		}
	}
}

func (s *WaveSystem) allGroupsExhausted(state *components.WaveStateComponent) bool {
	for _, group := range state.Groups {
		if group.RemainingCount > 0 {
			return false
		}
	}
	return true
}

// recordHighScore 将最高分提升到 wave+1 并持久化
// 持久化失败只记录日志，不影响对局
func (s *WaveSystem) recordHighScore(state *components.WaveStateComponent) {
	score := state.WaveIndex + 1
	if score > state.HighScore {
		state.HighScore = score
	}
	if s.store == nil {
		return
	}
	if err := s.store.Save(state.HighScore); err != nil {
		log.Printf("[WaveSystem] Warning: failed to persist high score: %v", err)
	}
}

// SpawnQueue 返回敌方生成队列
func (s *WaveSystem) SpawnQueue() *SpawnQueue {
	return s.queue
}

// ClearSpawnQueue 清空敌方生成队列
// 由战场在取出队列内容后立即调用
func (s *WaveSystem) ClearSpawnQueue() {
	s.queue.Clear()
}

// WaveIndex 当前波次索引（0-based）
func (s *WaveSystem) WaveIndex() int {
	if state := s.getState(); state != nil {
		return state.WaveIndex
	}
	return 0
}

// IsBetweenWaves 是否处于两波之间
func (s *WaveSystem) IsBetweenWaves() bool {
	state := s.getState()
	return state != nil && state.BetweenWaves
}

// InterWaveTimeLeft 间歇剩余时间（秒），不在间歇中时返回 0
func (s *WaveSystem) InterWaveTimeLeft() float64 {
	state := s.getState()
	if state == nil || !state.BetweenWaves {
		return 0
	}
	return state.InterWaveTimer.TimeLeft()
}

// Lost 对局是否已失败
func (s *WaveSystem) Lost() bool {
	state := s.getState()
	return state != nil && state.Lost
}

// HighScore 当前最高分
func (s *WaveSystem) HighScore() int {
	if state := s.getState(); state != nil {
		return state.HighScore
	}
	return 0
}

// RemainingInWave 本波尚未生成的敌人数量
func (s *WaveSystem) RemainingInWave() int {
	state := s.getState()
	if state == nil {
		return 0
	}
	total := 0
	for _, group := range state.Groups {
		total += group.RemainingCount
	}
	return total
}

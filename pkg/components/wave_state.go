package components

import "github.com/decker502/dungeon/pkg/utils"

// SpawnGroup 一个出怪组的运行时状态
type SpawnGroup struct {
	UnitType       string
	Level          int
	RemainingCount int // 尚未生成的数量
	CountPerBurst  int // 每批数量

	StartDelay         utils.Timer // 首批前的延迟
	StartDelayConsumed bool        // 延迟触发后不再检查
	BurstInterval      utils.Timer // 批次间隔
}

// WaveStateComponent 波次调度状态
// 挂在一个单例实体上，由 WaveSystem 维护
// 注意：遵循 ECS 原则，组件仅存储数据，不包含方法
type WaveStateComponent struct {
	// WaveIndex 当前波次索引（0-based），只会前进
	// 波次表耗尽后回到 0，但 WaveIndex 继续累加，
	// 实际读取的是 WaveIndex % 波次数
	WaveIndex int

	// BetweenWaves 是否处于两波之间的间歇
	BetweenWaves bool

	// InterWaveTimer 间歇计时器
	InterWaveTimer utils.Timer

	// Groups 本波的出怪组
	Groups []SpawnGroup

	// Lost 是否已失败（本局终止，直到外部重置）
	Lost bool

	// HighScore 历史最高波次（wave+1）
	HighScore int
}

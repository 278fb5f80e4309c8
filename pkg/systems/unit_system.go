package systems

import (
	"math"

	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/decker502/dungeon/pkg/utils"
)

// UnitState 单位的概念状态（由组件数据推导，不单独存储）
type UnitState int

const (
	// UnitIdle 没有目标，减速到 0
	UnitIdle UnitState = iota
	// UnitApproaching 有目标但不在攻击距离内，加速追击
	UnitApproaching
	// UnitInRange 目标在攻击距离内，减速站定并攻击
	UnitInRange
	// UnitDead 生命值 <= 0，终止状态
	UnitDead
)

// String 返回状态名（日志、调试显示用）
func (s UnitState) String() string {
	switch s {
	case UnitIdle:
		return "Idle"
	case UnitApproaching:
		return "Approaching"
	case UnitInRange:
		return "InRange"
	case UnitDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// DefaultHitJitter 子弹命中时击退角度的抖动总范围（弧度）
const DefaultHitJitter = 0.2

// UnitSystem 战斗单位系统
//
// 职责：
//   - 目标获取：目标失效时清空，重新选择距离最近的对手
//   - 追击速度：无目标或在攻击距离内减速，否则加速
//   - 朝向与位移：追击位移和击退位移叠加
//   - 限制在战场范围内
//   - 受击结算（ApplyHit）
//
// 攻击结算由 AttackSystem 负责
type UnitSystem struct {
	entityManager *ecs.EntityManager
	rng           *utils.PRNGService
	arenaSize     utils.Vec2
}

// NewUnitSystem 创建战斗单位系统
//
// 参数：
//
//	em - 实体管理器
//	rng - 随机数服务（击退角度抖动）
//	arenaSize - 战场尺寸
func NewUnitSystem(em *ecs.EntityManager, rng *utils.PRNGService, arenaSize utils.Vec2) *UnitSystem {
	return &UnitSystem{
		entityManager: em,
		rng:           rng,
		arenaSize:     arenaSize,
	}
}

// Update 更新一方的所有单位
// 参数：
//   - deltaTime: 自上次更新以来的时间（秒）
//   - units: 本方单位（按列表顺序更新）
//   - opponents: 对方单位，只读
func (s *UnitSystem) Update(deltaTime float64, units, opponents []ecs.EntityID) {
	for _, id := range units {
		s.UpdateUnit(id, deltaTime, opponents)
	}
}

// UpdateUnit 更新单个单位的目标、速度和位置
// 死亡单位不做任何更新
func (s *UnitSystem) UpdateUnit(id ecs.EntityID, deltaTime float64, opponents []ecs.EntityID) {
	if s.IsDead(id) {
		return
	}

	pos, ok1 := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	size, ok2 := ecs.GetComponent[*components.SizeComponent](s.entityManager, id)
	motion, ok3 := ecs.GetComponent[*components.MotionComponent](s.entityManager, id)
	target, ok4 := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	attack, ok5 := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return
	}

	// 1. 目标获取
	s.acquireTarget(id, target, attack, opponents)

	self := s.Center(id)

	// 2. 速度更新
	if target.Target == ecs.InvalidEntity {
		motion.ChaseSpeed = utils.ApproachZero(motion.ChaseSpeed, motion.Deceleration, deltaTime)
	} else {
		targetCenter := s.Center(target.Target)
		if utils.Distance(self, targetCenter) <= attack.Range {
			motion.ChaseSpeed = utils.ApproachZero(motion.ChaseSpeed, motion.Deceleration, deltaTime)
		} else {
			motion.ChaseSpeed = math.Min(motion.ChaseSpeed+motion.Acceleration*deltaTime, motion.MaxSpeed)
		}

		// 3. 每帧重新计算朝向，减速时也持续面向移动中的目标
		motion.FacingAngle = utils.AngleTo(self, targetCenter)
	}

	if motion.ChaseSpeed > 0 {
		step := utils.FromAngle(motion.FacingAngle).Scale(motion.ChaseSpeed * deltaTime)
		pos.X += step.X
		pos.Y += step.Y
	}

	// 4. 击退：先衰减再位移，与追击位移叠加
	if motion.KnockbackSpeed > 0 {
		motion.KnockbackSpeed = utils.ApproachZero(motion.KnockbackSpeed, motion.KnockbackResistance, deltaTime)
		step := utils.FromAngle(motion.KnockbackAngle).Scale(motion.KnockbackSpeed * deltaTime)
		pos.X += step.X
		pos.Y += step.Y
	}

	// 5. 限制在战场内
	pos.X = utils.Clamp(pos.X, 0, math.Max(0, s.arenaSize.X-size.Width))
	pos.Y = utils.Clamp(pos.Y, 0, math.Max(0, s.arenaSize.Y-size.Height))
}

// acquireTarget 校验当前目标，失效则清空并重新选择
// 选择距离最近的存活对手，距离相同时列表中靠前者优先
func (s *UnitSystem) acquireTarget(id ecs.EntityID, target *components.TargetComponent, attack *components.AttackComponent, opponents []ecs.EntityID) {
	if target.Target != ecs.InvalidEntity && !s.IsTargetable(target.Target) {
		target.Target = ecs.InvalidEntity
	}
	if target.Target != ecs.InvalidEntity {
		return
	}

	self := s.Center(id)
	best := ecs.InvalidEntity
	bestDistance := math.Inf(1)
	for _, opponent := range opponents {
		if !s.IsTargetable(opponent) {
			continue
		}
		d := utils.Distance(self, s.Center(opponent))
		if d < bestDistance {
			best = opponent
			bestDistance = d
		}
	}

	if best != ecs.InvalidEntity {
		target.Target = best
		// 不继承上一个目标的攻击冷却进度
		attack.Cooldown.Reset()
	}
}

// ApplyHit 结算一次命中
// 扣除生命值；击退方向为 incomingAngle 加随机抖动，击退速度直接覆盖为 impulse（不叠加）
//
// 参数：
//   - id: 受击单位
//   - damage: 伤害
//   - incomingAngle: 命中方向（弧度）
//   - impulse: 击退冲量
//   - jitterSpread: 角度抖动总范围（弧度），结果在 ±jitterSpread/2 之内
func (s *UnitSystem) ApplyHit(id ecs.EntityID, damage, incomingAngle, impulse, jitterSpread float64) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return
	}
	health.Current -= damage
	health.JustHit = true

	if motion, ok := ecs.GetComponent[*components.MotionComponent](s.entityManager, id); ok {
		motion.KnockbackAngle = incomingAngle + s.rng.Jitter(jitterSpread)
		motion.KnockbackSpeed = math.Max(0, impulse)
	}
}

// IsDead 检查单位是否已死亡（生命值 <= 0）
// 不存在的实体也视为死亡
func (s *UnitSystem) IsDead(id ecs.EntityID) bool {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
	if !ok {
		return true
	}
	return health.Current <= 0
}

// IsTargetable 检查实体是否可以作为目标：存在、未标记删除且未死亡
func (s *UnitSystem) IsTargetable(id ecs.EntityID) bool {
	return s.entityManager.IsAlive(id) && !s.IsDead(id)
}

// Center 返回实体碰撞盒中心
func (s *UnitSystem) Center(id ecs.EntityID) utils.Vec2 {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return utils.Vec2{}
	}
	center := utils.Vec2{X: pos.X, Y: pos.Y}
	if size, ok := ecs.GetComponent[*components.SizeComponent](s.entityManager, id); ok {
		center.X += size.Width / 2
		center.Y += size.Height / 2
	}
	return center
}

// StateOf 返回单位的概念状态
func (s *UnitSystem) StateOf(id ecs.EntityID) UnitState {
	if s.IsDead(id) {
		return UnitDead
	}
	target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	if !ok || target.Target == ecs.InvalidEntity || !s.IsTargetable(target.Target) {
		return UnitIdle
	}
	attack, ok := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
	if ok && utils.Distance(s.Center(id), s.Center(target.Target)) <= attack.Range {
		return UnitInRange
	}
	return UnitApproaching
}

// TargetOf 返回单位当前的目标句柄（未校验）
func (s *UnitSystem) TargetOf(id ecs.EntityID) ecs.EntityID {
	target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	if !ok {
		return ecs.InvalidEntity
	}
	return target.Target
}

package config

import (
	"fmt"
	"sort"

	"github.com/decker502/dungeon/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// AttackKind 攻击方式
type AttackKind string

const (
	// AttackProjectile 远程攻击：向目标中心发射子弹
	AttackProjectile AttackKind = "projectile"
	// AttackAreaOfEffect 范围攻击：对 attackRange 半径内的所有对手造成伤害并击退
	AttackAreaOfEffect AttackKind = "aoe"
)

// Size 单位或子弹的碰撞盒尺寸（像素）
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LevelStats 单个等级的战斗属性
// 所有速率均为线性的每秒数值，由系统乘以 deltaTime
type LevelStats struct {
	Health              float64 // 最大生命值
	Damage              float64 // 单次攻击伤害
	Knockback           float64 // 击退初速度（像素/秒）
	MaxSpeed            float64 // 最大追击速度（像素/秒）
	Acceleration        float64 // 追击加速度（像素/秒²）
	Deceleration        float64 // 减速度（像素/秒²）
	KnockbackResistance float64 // 击退衰减速率（像素/秒²）
	AttackRange         float64 // 攻击距离，范围攻击时同时是伤害半径
	AttackCooldown      float64 // 攻击间隔（秒）
}

// ProjectileSpec 远程攻击的子弹参数
type ProjectileSpec struct {
	Sprite  string  `yaml:"sprite"`  // 子弹贴图名（仅表现层使用）
	Speed   float64 `yaml:"speed"`   // 飞行速度（像素/秒）
	OffsetX float64 `yaml:"offsetX"` // 发射点相对单位左上角的X偏移
	OffsetY float64 `yaml:"offsetY"` // 发射点相对单位左上角的Y偏移
	Width   float64 `yaml:"width"`   // 子弹碰撞盒宽度
	Height  float64 `yaml:"height"`  // 子弹碰撞盒高度
}

// AreaSpec 范围攻击参数
// 伤害半径使用等级表中的 attackRange
type AreaSpec struct {
	KnockbackAngleRange float64 `yaml:"knockbackAngleRange"` // 击退角度抖动总范围（弧度）
}

// AttackSpec 攻击方式及其专属参数
// Kind 决定 Projectile / Area 中哪一个有效
type AttackSpec struct {
	Kind       AttackKind      `yaml:"kind"`
	Projectile *ProjectileSpec `yaml:"projectile"`
	Area       *AreaSpec       `yaml:"area"`
}

// DeathParticles 死亡粒子效果参数（仅表现层使用）
type DeathParticles struct {
	Amount   int     `yaml:"amount"`   // 粒子数量
	Size     float64 `yaml:"size"`     // 粒子边长（像素）
	Speed    float64 `yaml:"speed"`    // 初速度（像素/秒）
	Duration float64 `yaml:"duration"` // 持续时间（秒）
	Sprite   string  `yaml:"sprite"`   // 取样贴图
	Frame    int     `yaml:"frame"`    // 取样帧
}

// UnitDefinition 单个单位类型的完整定义
type UnitDefinition struct {
	Type           string
	Sprite         string
	Size           Size
	Attack         AttackSpec
	DeathParticles DeathParticles
	Levels         []LevelStats // 下标 0 对应 1 级
}

// UnitConfig 单位定义表
type UnitConfig struct {
	Units map[string]*UnitDefinition
}

// rawLevelStats YAML 中的等级条目
// 使用指针以区分"未填写"与"填写为 0"
type rawLevelStats struct {
	Health              *float64 `yaml:"health"`
	Damage              *float64 `yaml:"damage"`
	Knockback           *float64 `yaml:"knockback"`
	MaxSpeed            *float64 `yaml:"maxSpeed"`
	Acceleration        *float64 `yaml:"acceleration"`
	Deceleration        *float64 `yaml:"deceleration"`
	KnockbackResistance *float64 `yaml:"knockbackResistance"`
	AttackRange         *float64 `yaml:"attackRange"`
	AttackCooldown      *float64 `yaml:"attackCooldown"`
}

type rawUnitDefinition struct {
	Sprite         string          `yaml:"sprite"`
	Size           *Size           `yaml:"size"`
	Attack         *AttackSpec     `yaml:"attack"`
	DeathParticles DeathParticles  `yaml:"deathParticles"`
	Levels         []rawLevelStats `yaml:"levels"`
}

type rawUnitConfig struct {
	Units map[string]rawUnitDefinition `yaml:"units"`
}

// LoadUnitConfig 从 YAML 文件加载单位定义表
// 参数：
//
//	filepath - 配置文件路径（"data/..." 优先读取嵌入资源）
//
// 返回：
//
//	*UnitConfig - 解析并校验后的单位表
//	error - 文件读取、解析或字段缺失时返回错误，错误信息包含单位类型和字段名
func LoadUnitConfig(filepath string) (*UnitConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit config file %s: %w", filepath, err)
	}

	config, err := ParseUnitConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid unit config in %s: %w", filepath, err)
	}
	return config, nil
}

// ParseUnitConfig 解析并校验 YAML 格式的单位定义
func ParseUnitConfig(data []byte) (*UnitConfig, error) {
	var raw rawUnitConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse unit config YAML: %w", err)
	}

	if len(raw.Units) == 0 {
		return nil, fmt.Errorf("at least one unit type is required: %w", ErrInvalidValue)
	}

	config := &UnitConfig{Units: make(map[string]*UnitDefinition, len(raw.Units))}

	// 按名称排序，保证多处错误时报告顺序稳定
	names := make([]string, 0, len(raw.Units))
	for name := range raw.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def, err := buildUnitDefinition(name, raw.Units[name])
		if err != nil {
			return nil, err
		}
		config.Units[name] = def
	}

	return config, nil
}

func buildUnitDefinition(name string, raw rawUnitDefinition) (*UnitDefinition, error) {
	if raw.Size == nil {
		return nil, fmt.Errorf("unit %q: %w %q", name, ErrMissingField, "size")
	}
	if raw.Size.Width <= 0 || raw.Size.Height <= 0 {
		return nil, fmt.Errorf("unit %q: size must be positive, got %vx%v: %w", name, raw.Size.Width, raw.Size.Height, ErrInvalidValue)
	}
	if raw.Attack == nil {
		return nil, fmt.Errorf("unit %q: %w %q", name, ErrMissingField, "attack")
	}
	if err := validateAttack(name, raw.Attack); err != nil {
		return nil, err
	}
	if len(raw.Levels) == 0 {
		return nil, fmt.Errorf("unit %q: %w %q", name, ErrMissingField, "levels")
	}
	if raw.DeathParticles.Amount < 0 {
		return nil, fmt.Errorf("unit %q: deathParticles.amount cannot be negative: %w", name, ErrInvalidValue)
	}

	def := &UnitDefinition{
		Type:           name,
		Sprite:         raw.Sprite,
		Size:           *raw.Size,
		Attack:         *raw.Attack,
		DeathParticles: raw.DeathParticles,
		Levels:         make([]LevelStats, 0, len(raw.Levels)),
	}

	for i, rawLevel := range raw.Levels {
		stats, err := buildLevelStats(name, i+1, rawLevel)
		if err != nil {
			return nil, err
		}
		def.Levels = append(def.Levels, stats)
	}

	return def, nil
}

func validateAttack(name string, attack *AttackSpec) error {
	switch attack.Kind {
	case "":
		return fmt.Errorf("unit %q: %w %q", name, ErrMissingField, "attack.kind")
	case AttackProjectile:
		if attack.Projectile == nil {
			return fmt.Errorf("unit %q: %w %q", name, ErrMissingField, "attack.projectile")
		}
		if attack.Projectile.Speed <= 0 {
			return fmt.Errorf("unit %q: attack.projectile.speed must be positive: %w", name, ErrInvalidValue)
		}
		if attack.Projectile.Width <= 0 || attack.Projectile.Height <= 0 {
			return fmt.Errorf("unit %q: attack.projectile size must be positive: %w", name, ErrInvalidValue)
		}
	case AttackAreaOfEffect:
		if attack.Area == nil {
			attack.Area = &AreaSpec{}
		}
		if attack.Area.KnockbackAngleRange < 0 {
			return fmt.Errorf("unit %q: attack.area.knockbackAngleRange cannot be negative: %w", name, ErrInvalidValue)
		}
	default:
		return fmt.Errorf("unit %q: unsupported attack.kind %q: %w", name, attack.Kind, ErrInvalidValue)
	}
	return nil
}

func buildLevelStats(name string, level int, raw rawLevelStats) (LevelStats, error) {
	fields := []struct {
		key      string
		value    *float64
		positive bool // true: 必须 > 0；false: 必须 >= 0
	}{
		{"health", raw.Health, true},
		{"damage", raw.Damage, false},
		{"knockback", raw.Knockback, false},
		{"maxSpeed", raw.MaxSpeed, false},
		{"acceleration", raw.Acceleration, false},
		{"deceleration", raw.Deceleration, false},
		{"knockbackResistance", raw.KnockbackResistance, false},
		{"attackRange", raw.AttackRange, true},
		{"attackCooldown", raw.AttackCooldown, true},
	}

	for _, f := range fields {
		if f.value == nil {
			return LevelStats{}, fmt.Errorf("unit %q level %d: %w %q", name, level, ErrMissingField, f.key)
		}
		if f.positive && *f.value <= 0 {
			return LevelStats{}, fmt.Errorf("unit %q level %d: %s must be positive, got %v: %w", name, level, f.key, *f.value, ErrInvalidValue)
		}
		if !f.positive && *f.value < 0 {
			return LevelStats{}, fmt.Errorf("unit %q level %d: %s cannot be negative, got %v: %w", name, level, f.key, *f.value, ErrInvalidValue)
		}
	}

	return LevelStats{
		Health:              *raw.Health,
		Damage:              *raw.Damage,
		Knockback:           *raw.Knockback,
		MaxSpeed:            *raw.MaxSpeed,
		Acceleration:        *raw.Acceleration,
		Deceleration:        *raw.Deceleration,
		KnockbackResistance: *raw.KnockbackResistance,
		AttackRange:         *raw.AttackRange,
		AttackCooldown:      *raw.AttackCooldown,
	}, nil
}

// Definition 获取指定单位类型的定义
func (c *UnitConfig) Definition(unitType string) (*UnitDefinition, error) {
	def, ok := c.Units[unitType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitType)
	}
	return def, nil
}

// Stats 获取指定单位类型、等级（从 1 开始）的属性
func (c *UnitConfig) Stats(unitType string, level int) (LevelStats, error) {
	def, err := c.Definition(unitType)
	if err != nil {
		return LevelStats{}, err
	}
	if level < 1 || level > len(def.Levels) {
		return LevelStats{}, fmt.Errorf("%w: unit %q level %d (have %d levels)", ErrLevelOutOfRange, unitType, level, len(def.Levels))
	}
	return def.Levels[level-1], nil
}

// Types 返回所有单位类型名（已排序）
func (c *UnitConfig) Types() []string {
	names := make([]string, 0, len(c.Units))
	for name := range c.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

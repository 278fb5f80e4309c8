package utils

import (
	"math/rand"
	"time"
)

// PRNGService 是标准库随机数生成器的包装
// 一局对战共用一个实例，固定种子即可复现整局（测试、录像回放）
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService 创建指定种子的随机数服务
// 种子为 0 时使用当前时间
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn 返回 [0, n) 范围的随机整数，n <= 0 时返回 0
func (s *PRNGService) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Float64 返回 [0.0, 1.0) 范围的随机浮点数
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Jitter 返回 [-spread/2, spread/2) 范围的随机偏移
// 用于击退角度抖动
func (s *PRNGService) Jitter(spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (s.rng.Float64() - 0.5) * spread
}

// ChoosePoint 从候选点中均匀随机选择一个
// 候选为空时返回 (0, 0) 和 false
func (s *PRNGService) ChoosePoint(points []Vec2) (Vec2, bool) {
	if len(points) == 0 {
		return Vec2{}, false
	}
	return points[s.Intn(len(points))], true
}

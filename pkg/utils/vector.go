package utils

import "math"

// Vec2 二维向量（像素坐标）
type Vec2 struct {
	X, Y float64
}

// Add 向量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 向量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale 向量数乘
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// FromAngle 返回给定角度（弧度）的单位向量
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Distance 返回两点的欧几里得距离
func Distance(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo 返回从 from 指向 to 的角度（弧度）
func AngleTo(from, to Vec2) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Clamp 将数值限制在 [min, max] 范围内
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ApproachZero 以 rate*dt 的速率将非负速度减向 0，不会越过 0
func ApproachZero(speed, rate, dt float64) float64 {
	speed -= rate * dt
	if speed < 0 {
		return 0
	}
	return speed
}

// AABBOverlap 检查两个轴对齐矩形（左上角 + 尺寸）是否重叠
// 边界刚好接触也视为碰撞
func AABBOverlap(pos1, size1, pos2, size2 Vec2) bool {
	return pos1.X+size1.X >= pos2.X &&
		pos1.X <= pos2.X+size2.X &&
		pos1.Y+size1.Y >= pos2.Y &&
		pos1.Y <= pos2.Y+size2.Y
}

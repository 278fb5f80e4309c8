package utils

// Timer 追赶式倒计时器
// 每帧由调用方累加 deltaTime；完成时只减去一个 Delay，而不是清零，
// 这样低帧率下一帧内累积的多次完成都能被逐次消费
//
// 用法：
//
//	timer.Advance(dt)
//	for timer.TryConsume() {
//	    // 触发一次
//	}
type Timer struct {
	Delay   float64 // 延迟（秒），<= 0 视为始终到期
	Elapsed float64 // 已累积时间（秒）
}

// NewTimer 创建指定延迟的计时器
func NewTimer(delay float64) *Timer {
	return &Timer{Delay: delay}
}

// Advance 累加经过的时间
func (t *Timer) Advance(dt float64) {
	t.Elapsed += dt
}

// TryConsume 若已到期则扣除一个 Delay 并返回 true
// 调用方必须循环调用以消费所有累积的完成次数
//
// Delay <= 0 时直接返回 true 且不修改 Elapsed，
// 调用方循环时需自行限制次数（例如剩余生成数量）
func (t *Timer) TryConsume() bool {
	if t.Delay <= 0 {
		return true
	}
	if t.Elapsed >= t.Delay {
		t.Elapsed -= t.Delay
		return true
	}
	return false
}

// IsDue 只读检查是否到期，不修改状态
func (t *Timer) IsDue() bool {
	return t.Elapsed >= t.Delay
}

// Reset 将已累积时间归零
func (t *Timer) Reset() {
	t.Elapsed = 0
}

// TimeLeft 返回距离下一次到期的剩余时间（可能为负）
func (t *Timer) TimeLeft() float64 {
	return t.Delay - t.Elapsed
}

// PercentElapsed 返回已经过的比例 Elapsed/Delay
// 仅用于表现层（粒子淡出、倒计时条），Delay <= 0 时返回 1
func (t *Timer) PercentElapsed() float64 {
	if t.Delay <= 0 {
		return 1
	}
	return t.Elapsed / t.Delay
}

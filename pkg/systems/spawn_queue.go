package systems

// SpawnRequest 待生成单位的请求
type SpawnRequest struct {
	Type  string
	Level int
}

// SpawnQueue 单局内的生成队列
//
// 由战场持有，以指针形式交给生产者（波次系统、出兵建筑）；
// 战场每帧读取一次全部请求后立即 Clear，同一请求不会被读取两次
type SpawnQueue struct {
	pending []SpawnRequest
}

// NewSpawnQueue 创建空队列
func NewSpawnQueue() *SpawnQueue {
	return &SpawnQueue{pending: make([]SpawnRequest, 0)}
}

// Push 追加一个生成请求
func (q *SpawnQueue) Push(req SpawnRequest) {
	q.pending = append(q.pending, req)
}

// Pending 返回当前所有请求（按入队顺序）
// 返回值在下一次 Push/Clear 之前有效
func (q *SpawnQueue) Pending() []SpawnRequest {
	return q.pending
}

// Len 返回队列长度
func (q *SpawnQueue) Len() int {
	return len(q.pending)
}

// Clear 清空队列
func (q *SpawnQueue) Clear() {
	q.pending = q.pending[:0]
}

package components

import "github.com/decker502/dungeon/pkg/utils"

// DeathParticlesComponent 单位死亡时需要播放的粒子效果参数
// 战场在移除单位时读取它并生成 DeathEvent
type DeathParticlesComponent struct {
	Amount   int
	Size     float64
	Speed    float64
	Duration float64
	Sprite   string
	Frame    int
}

// ParticleComponent 单个死亡粒子
// 粒子沿 Angle 方向以 Speed*(1-进度) 移动，透明度随进度线性衰减
type ParticleComponent struct {
	Angle  float64     // 运动方向（背离单位中心）
	Speed  float64     // 初速度（像素/秒）
	Size   float64     // 边长（像素）
	Alpha  float64     // 当前透明度 [0, 255]
	Life   utils.Timer // 生命周期，到期即移除
	Sprite string      // 取色贴图
	Frame  int
}

package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/dungeon/pkg/arena"
	"github.com/decker502/dungeon/pkg/components"
	"github.com/decker502/dungeon/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调试视图配色
var (
	allyColor       = color.RGBA{R: 80, G: 160, B: 255, A: 255}
	enemyColor      = color.RGBA{R: 230, G: 70, B: 70, A: 255}
	projectileColor = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	healthBackColor = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	healthFillColor = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	arenaBackColor  = color.RGBA{R: 28, G: 24, B: 32, A: 255}
)

// AllySpawnKeys 数字键到友方单位类型的映射（调试出兵）
type AllySpawnKeys map[ebiten.Key]string

// DungeonScene 对战场景
//
// 每帧推进一次 Arena，并且只在帧末查询一次 Lost()；
// 失败后停止推进，按 Enter 结束本局（SceneManager 随后新开一局）。
type DungeonScene struct {
	arena         *arena.Arena
	spawnKeys     AllySpawnKeys
	initialAllies []string
	betweenWaves  bool
	lost          bool
	finished      bool
	paused        bool
}

// NewDungeonScene 创建对战场景
// initialAllies 在第一帧之前加入友方队列，避免开局即判负；
// 每次进入两波间歇时再次加入，下一波开始时生成
func NewDungeonScene(a *arena.Arena, spawnKeys AllySpawnKeys, initialAllies []string) *DungeonScene {
	s := &DungeonScene{
		arena:         a,
		spawnKeys:     spawnKeys,
		initialAllies: initialAllies,
	}
	s.queueInitialAllies()
	return s
}

func (s *DungeonScene) queueInitialAllies() {
	for _, unitType := range s.initialAllies {
		if err := s.arena.SpawnAlly(unitType, 1); err != nil {
			log.Printf("[DungeonScene] Warning: %v", err)
		}
	}
}

// Update 推进对局
func (s *DungeonScene) Update(deltaTime float64) {
	if s.lost {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.finished = true
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
	}
	for key, unitType := range s.spawnKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := s.arena.SpawnAlly(unitType, 1); err != nil {
				log.Printf("[DungeonScene] Warning: %v", err)
			}
		}
	}
	if s.paused {
		return
	}

	s.arena.Tick(deltaTime)

	between := s.arena.Waves().IsBetweenWaves()
	if between && !s.betweenWaves {
		s.queueInitialAllies()
	}
	s.betweenWaves = between

	if s.arena.Lost() {
		s.lost = true
		log.Printf("[DungeonScene] Match lost on wave %d (high score %d)", s.arena.WaveIndex()+1, s.arena.HighScore())
	}
}

// Finished 实现 game.Finisher
func (s *DungeonScene) Finished() bool {
	return s.finished
}

// Draw 绘制调试视图：单位为彩色方块，顶部显示波次信息
func (s *DungeonScene) Draw(screen *ebiten.Image) {
	size := s.arena.Size()
	vector.DrawFilledRect(screen, 0, 0, float32(size.X), float32(size.Y), arenaBackColor, false)

	em := s.arena.EntityManager()
	for _, id := range s.arena.Allies() {
		drawUnit(screen, em, id, allyColor)
	}
	for _, id := range s.arena.Enemies() {
		drawUnit(screen, em, id, enemyColor)
	}
	for _, id := range s.arena.Projectiles() {
		pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, id)
		sz, ok2 := ecs.GetComponent[*components.SizeComponent](em, id)
		if ok1 && ok2 {
			vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(sz.Width), float32(sz.Height), projectileColor, false)
		}
	}
	for _, id := range s.arena.Particles() {
		drawParticle(screen, em, id)
	}

	ebitenutil.DebugPrintAt(screen, s.statusText(), 4, 4)
}

func (s *DungeonScene) statusText() string {
	waves := s.arena.Waves()
	text := fmt.Sprintf("Wave %d  High %d  Allies %d  Enemies %d",
		s.arena.WaveIndex()+1, s.arena.HighScore(), s.arena.AllyCount(), s.arena.EnemyCount())
	switch {
	case s.lost:
		text += "\nDefeated - press Enter for a new match"
	case waves.IsBetweenWaves():
		text += fmt.Sprintf("\nNext wave in %.1fs", math.Max(0, waves.InterWaveTimeLeft()))
	case s.paused:
		text += "\nPaused"
	}
	return text
}

func drawUnit(screen *ebiten.Image, em *ecs.EntityManager, id ecs.EntityID, clr color.Color) {
	pos, ok1 := ecs.GetComponent[*components.PositionComponent](em, id)
	size, ok2 := ecs.GetComponent[*components.SizeComponent](em, id)
	health, ok3 := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(size.Width), float32(size.Height)
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)

	// 血条
	pct := float32(0)
	if health.Max > 0 {
		pct = float32(math.Max(0, health.Current/health.Max))
	}
	vector.DrawFilledRect(screen, x, y-4, w, 2, healthBackColor, false)
	vector.DrawFilledRect(screen, x, y-4, w*pct, 2, healthFillColor, false)
}

func drawParticle(screen *ebiten.Image, em *ecs.EntityManager, id ecs.EntityID) {
	if em.IsMarked(id) {
		return
	}
	particle, ok1 := ecs.GetComponent[*components.ParticleComponent](em, id)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok1 || !ok2 {
		return
	}
	alpha := uint8(math.Max(0, math.Min(255, particle.Alpha)))
	clr := color.NRGBA{R: 200, G: 200, B: 200, A: alpha}
	vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(particle.Size), float32(particle.Size), clr, false)
}

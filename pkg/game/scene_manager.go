package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于新开一局，避免 game 包依赖具体场景实现
type SceneFactory func() (Scene, error)

// SceneManager 管理当前活动场景
// 任一时刻只调用一个场景的 Update 和 Draw
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器
// 初始没有活动场景，使用 SwitchTo 或 NewMatch 设置
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换到指定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// NewMatch 使用工厂函数创建新对局并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) NewMatch() bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	scene, err := sm.sceneFactory()
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法创建对局场景: %v", err)
		return false
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 新对局开始")
	return true
}

// Update 更新当前场景
// 当前场景实现 Finisher 且已结束时自动开始新对局
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}
	sm.currentScene.Update(deltaTime)

	if f, ok := sm.currentScene.(Finisher); ok && f.Finished() {
		sm.NewMatch()
	}
}

// Draw 绘制当前场景，没有活动场景时不做任何事
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

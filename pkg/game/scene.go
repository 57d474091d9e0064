// Package game 提供场景生命周期契约与各类全局管理器
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a drawable application scene (loading, card, error).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// CardScene 是两种贺卡场景变体（增强/回退）共同的生命周期契约
//
// 编排层只依赖本接口，对激活事件来自三维命中检测还是普通按钮
// 一无所知。Pause/Resume 可重复调用（幂等）；Dispose 在退出时
// 恰好调用一次，之后场景不可再用。
type CardScene interface {
	Scene

	// Start 场景进入活动状态（开始动画计时）
	Start()
	// Pause 暂停动画推进（窗口最小化时调用，可重复）
	Pause()
	// Resume 恢复动画推进（可重复）
	Resume()
	// HandleResize 视口尺寸变化通知
	HandleResize(width, height int)
	// Dispose 释放场景持有的全部图形资源，仅调用一次
	Dispose()
}

// CardView 是状态机副作用落到场景上的可见性与焦点操作
//
// 两种变体都实现本接口；编排层的 Effects 绑定把状态机副作用
// 转发到当前活动的变体。
type CardView interface {
	HideTag()
	RevealMessage()
	FocusMessage()
	RevealPrompt()
	RevealFlame()
	FocusFlame()
	HideFlame()
	ShowAudioControls()
	RevealGallery()
	RevealPhoto()
	SpawnConfetti()
}

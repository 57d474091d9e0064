// Package scenes 实现贺卡的各个场景：增强场景、回退场景、
// 加载场景和致命错误场景。
package scenes

import (
	"fmt"

	"github.com/gonewx/greeting/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Callbacks 是场景变体向交互状态机发出的两个语义事件
//
// 两种变体发出完全相同的事件，状态机不感知变体差异。
// 回调在构造时注入，场景不持有状态机引用。
type Callbacks struct {
	// OnTagActivated 纸签被激活（点击命中或按钮触发）
	OnTagActivated func()
	// OnFlameActivated 火焰被激活
	OnFlameActivated func()
}

// InitError 表示增强场景构造失败
//
// 这是整个应用中唯一有文档化恢复路径的错误：编排层捕获后
// 改用回退场景，只记日志，不打扰用户。
type InitError struct {
	Reason string
	Err    error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card scene init failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("card scene init failed: %s", e.Reason)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

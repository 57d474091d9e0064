// Package interaction 实现贺卡的交互状态机
//
// 状态严格单向推进：Initial → PaperRevealed → CandleBlown。
// 状态机只关心语义事件（纸签激活、火焰激活），不关心事件来自
// 增强场景的命中检测还是回退场景的按钮，两种场景变体共用同一实例。
// 所有界面副作用通过注入的 Effects 接口触发，定时副作用通过注入
// 的调度器触发，因此状态机本身可以用模拟时钟完整测试。
package interaction

import (
	"log"
	"time"

	"github.com/gonewx/greeting/pkg/clock"
)

// State 表示交互推进状态
type State int

const (
	// StateInitial 初始态：纸签可激活
	StateInitial State = iota
	// StatePaperRevealed 纸签已翻开，祝福消息可见，火焰可激活
	StatePaperRevealed
	// StateCandleBlown 终态：蜡烛已吹灭，之后所有激活事件都被忽略
	StateCandleBlown
)

// String 返回状态名（日志用）
func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StatePaperRevealed:
		return "PaperRevealed"
	case StateCandleBlown:
		return "CandleBlown"
	default:
		return "Unknown"
	}
}

// Effects 是状态机触发的全部界面副作用
//
// 由编排层实现：场景变体负责可见性与焦点，音频管理器负责音乐。
// 状态机保证每个方法在一次会话中至多被调用一次。
type Effects interface {
	// 纸签激活（Initial → PaperRevealed）
	HideTag()
	RevealMessage()
	FocusMessage()
	// 延迟 flameDelay 后触发
	RevealPrompt()
	RevealFlame()
	FocusFlame()

	// 火焰激活（PaperRevealed → CandleBlown）
	HideFlame()
	StartMusic()
	ShowAudioControls()
	RevealGallery()
	RevealPhoto()
	SpawnConfetti()
}

// Machine 是交互状态机
// 非并发安全：与场景一样只在游戏循环线程上使用
type Machine struct {
	state      State
	effects    Effects
	scheduler  *clock.Scheduler
	flameDelay time.Duration

	// 延迟揭示至多调度一次，快速重复激活不会堆叠定时器
	flameRevealScheduled bool
}

// NewMachine 创建处于初始态的状态机
//
// flameDelay 是纸签激活后到火焰控件出现的延迟。
func NewMachine(effects Effects, scheduler *clock.Scheduler, flameDelay time.Duration) *Machine {
	return &Machine{
		state:      StateInitial,
		effects:    effects,
		scheduler:  scheduler,
		flameDelay: flameDelay,
	}
}

// State 返回当前状态
func (m *Machine) State() State {
	return m.state
}

// TagActivated 处理纸签激活事件
//
// 仅在 Initial 态生效，其余状态为无操作；重复触发不会重复副作用。
func (m *Machine) TagActivated() {
	if m.state != StateInitial {
		log.Printf("[Interaction] tag activated ignored in state %s", m.state)
		return
	}
	m.state = StatePaperRevealed
	log.Printf("[Interaction] %s -> %s", StateInitial, m.state)

	m.effects.HideTag()
	m.effects.RevealMessage()
	m.effects.FocusMessage()

	if !m.flameRevealScheduled {
		m.flameRevealScheduled = true
		m.scheduler.After(m.flameDelay, m.revealFlame)
	}
}

// revealFlame 延迟揭示火焰控件
// 到期时若状态已推进到 CandleBlown（回退场景允许键盘先吹蜡烛），
// 不再揭示已经失效的控件
func (m *Machine) revealFlame() {
	if m.state != StatePaperRevealed {
		return
	}
	m.effects.RevealPrompt()
	m.effects.RevealFlame()
	m.effects.FocusFlame()
}

// FlameActivated 处理火焰激活事件
//
// 仅在 PaperRevealed 态生效。这是整个应用唯一允许启动音乐播放
// 的位置：它必然由用户手势触发。
func (m *Machine) FlameActivated() {
	if m.state != StatePaperRevealed {
		log.Printf("[Interaction] flame activated ignored in state %s", m.state)
		return
	}
	m.state = StateCandleBlown
	log.Printf("[Interaction] %s -> %s", StatePaperRevealed, m.state)

	m.effects.HideFlame()
	m.effects.StartMusic()
	m.effects.ShowAudioControls()
	m.effects.RevealGallery()
	m.effects.RevealPhoto()
	m.effects.SpawnConfetti()
}

package interaction

import (
	"testing"
	"time"

	"github.com/gonewx/greeting/pkg/clock"
)

// recordingEffects 记录每个副作用的触发次数
type recordingEffects struct {
	calls map[string]int
}

func newRecordingEffects() *recordingEffects {
	return &recordingEffects{calls: make(map[string]int)}
}

func (r *recordingEffects) HideTag()           { r.calls["HideTag"]++ }
func (r *recordingEffects) RevealMessage()     { r.calls["RevealMessage"]++ }
func (r *recordingEffects) FocusMessage()      { r.calls["FocusMessage"]++ }
func (r *recordingEffects) RevealPrompt()      { r.calls["RevealPrompt"]++ }
func (r *recordingEffects) RevealFlame()       { r.calls["RevealFlame"]++ }
func (r *recordingEffects) FocusFlame()        { r.calls["FocusFlame"]++ }
func (r *recordingEffects) HideFlame()         { r.calls["HideFlame"]++ }
func (r *recordingEffects) StartMusic()        { r.calls["StartMusic"]++ }
func (r *recordingEffects) ShowAudioControls() { r.calls["ShowAudioControls"]++ }
func (r *recordingEffects) RevealGallery()     { r.calls["RevealGallery"]++ }
func (r *recordingEffects) RevealPhoto()       { r.calls["RevealPhoto"]++ }
func (r *recordingEffects) SpawnConfetti()     { r.calls["SpawnConfetti"]++ }

func newTestMachine() (*Machine, *recordingEffects, *clock.MockClock, *clock.Scheduler) {
	mc := clock.NewMockClock(time.Unix(0, 0))
	sched := clock.NewScheduler(mc)
	fx := newRecordingEffects()
	m := NewMachine(fx, sched, 2000*time.Millisecond)
	return m, fx, mc, sched
}

// TestInitialState 测试初始状态
func TestInitialState(t *testing.T) {
	m, _, _, _ := newTestMachine()
	if m.State() != StateInitial {
		t.Errorf("State(): got %v, want %v", m.State(), StateInitial)
	}
}

// TestTagActivation 测试纸签激活的即时副作用与延迟揭示
func TestTagActivation(t *testing.T) {
	m, fx, mc, sched := newTestMachine()

	m.TagActivated()

	if m.State() != StatePaperRevealed {
		t.Fatalf("State(): got %v, want %v", m.State(), StatePaperRevealed)
	}
	// 调用内即时生效：消息可见、焦点移到消息标题
	for _, effect := range []string{"HideTag", "RevealMessage", "FocusMessage"} {
		if fx.calls[effect] != 1 {
			t.Errorf("%s: got %d calls, want 1", effect, fx.calls[effect])
		}
	}
	// 火焰控件尚未出现
	if fx.calls["RevealFlame"] != 0 {
		t.Errorf("RevealFlame before delay: got %d calls, want 0", fx.calls["RevealFlame"])
	}

	// 1999ms：仍未出现
	mc.Advance(1999 * time.Millisecond)
	sched.Update()
	if fx.calls["RevealFlame"] != 0 {
		t.Errorf("RevealFlame at 1999ms: got %d calls, want 0", fx.calls["RevealFlame"])
	}

	// 2000ms：提示与火焰控件出现，焦点移到火焰
	mc.Advance(1 * time.Millisecond)
	sched.Update()
	for _, effect := range []string{"RevealPrompt", "RevealFlame", "FocusFlame"} {
		if fx.calls[effect] != 1 {
			t.Errorf("%s at 2000ms: got %d calls, want 1", effect, fx.calls[effect])
		}
	}
}

// TestTagActivationIdempotent 测试重复纸签激活不重复副作用、不堆叠定时器
func TestTagActivationIdempotent(t *testing.T) {
	m, fx, mc, sched := newTestMachine()

	m.TagActivated()
	m.TagActivated()
	m.TagActivated()

	if fx.calls["RevealMessage"] != 1 {
		t.Errorf("RevealMessage: got %d calls, want 1", fx.calls["RevealMessage"])
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending timers: got %d, want 1", sched.Pending())
	}

	mc.Advance(3 * time.Second)
	sched.Update()
	if fx.calls["RevealFlame"] != 1 {
		t.Errorf("RevealFlame: got %d calls, want 1", fx.calls["RevealFlame"])
	}
}

// TestFlameActivation 测试火焰激活的副作用
func TestFlameActivation(t *testing.T) {
	m, fx, _, _ := newTestMachine()

	m.TagActivated()
	m.FlameActivated()

	if m.State() != StateCandleBlown {
		t.Fatalf("State(): got %v, want %v", m.State(), StateCandleBlown)
	}
	for _, effect := range []string{"HideFlame", "StartMusic", "ShowAudioControls", "RevealGallery", "RevealPhoto", "SpawnConfetti"} {
		if fx.calls[effect] != 1 {
			t.Errorf("%s: got %d calls, want 1", effect, fx.calls[effect])
		}
	}
}

// TestFlameBeforePaper 测试 Initial 态下火焰激活是无操作
func TestFlameBeforePaper(t *testing.T) {
	m, fx, _, _ := newTestMachine()

	m.FlameActivated()

	if m.State() != StateInitial {
		t.Errorf("State(): got %v, want %v", m.State(), StateInitial)
	}
	if len(fx.calls) != 0 {
		t.Errorf("effects fired: got %v, want none", fx.calls)
	}
}

// TestTerminalState 测试终态下所有事件无效
func TestTerminalState(t *testing.T) {
	m, fx, _, _ := newTestMachine()

	m.TagActivated()
	m.FlameActivated()

	m.FlameActivated()
	m.TagActivated()

	if m.State() != StateCandleBlown {
		t.Errorf("State(): got %v, want %v", m.State(), StateCandleBlown)
	}
	if fx.calls["StartMusic"] != 1 {
		t.Errorf("StartMusic: got %d calls, want 1 (no second audio start)", fx.calls["StartMusic"])
	}
	if fx.calls["SpawnConfetti"] != 1 {
		t.Errorf("SpawnConfetti: got %d calls, want 1 (no double spawn)", fx.calls["SpawnConfetti"])
	}
}

// TestDelayedRevealSkippedAfterBlow 测试定时器到期前已吹蜡烛时不再揭示火焰控件
func TestDelayedRevealSkippedAfterBlow(t *testing.T) {
	m, fx, mc, sched := newTestMachine()

	m.TagActivated()
	// 回退场景允许键盘在延迟揭示前吹蜡烛
	m.FlameActivated()

	mc.Advance(3 * time.Second)
	sched.Update()

	if fx.calls["RevealFlame"] != 0 {
		t.Errorf("RevealFlame after blow: got %d calls, want 0", fx.calls["RevealFlame"])
	}
	if fx.calls["RevealPrompt"] != 0 {
		t.Errorf("RevealPrompt after blow: got %d calls, want 0", fx.calls["RevealPrompt"])
	}
}

// TestStateString 测试状态名
func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateInitial, "Initial"},
		{StatePaperRevealed, "PaperRevealed"},
		{StateCandleBlown, "CandleBlown"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String(): got %q, want %q", tt.s, got, tt.want)
		}
	}
}

// Package clock 提供可注入的时钟与帧驱动的定时器调度
//
// 场景动画与交互状态机都依赖 Clock 接口而不是直接读 time.Now()，
// 测试中注入 MockClock 即可用模拟时间逐帧驱动，不依赖真实定时器。
package clock

import (
	"sync"
	"time"
)

// Clock 是时间来源抽象
type Clock interface {
	// Now 返回当前时间
	Now() time.Time
}

// TimeProvider 提供带单调时钟读数的真实系统时间
type TimeProvider struct{}

// NewTimeProvider 创建真实时间提供者
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now 返回当前系统时间
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockClock 提供可控的时间源，用于测试
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockClock 创建以 startTime 为起点的模拟时钟
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now 返回当前模拟时间
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime 设置当前模拟时间
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance 将模拟时间前进 d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// timer 是一个待触发的一次性定时任务
type timer struct {
	deadline time.Time
	fn       func()
}

// Scheduler 是帧驱动的一次性定时器调度器
//
// 所有回调都在 Update() 调用线程（游戏循环）上触发，
// 不启动任何 goroutine，因此与单线程场景状态天然一致。
type Scheduler struct {
	clock  Clock
	timers []*timer
}

// NewScheduler 创建使用指定时钟的调度器
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// After 注册一个在 d 之后的首次 Update() 中触发的回调
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.timers = append(s.timers, &timer{
		deadline: s.clock.Now().Add(d),
		fn:       fn,
	})
}

// Update 触发所有已到期的定时任务
//
// 回调中注册的新任务会留到下一次 Update 处理，
// 避免同一帧内级联触发带来的顺序歧义。
func (s *Scheduler) Update() {
	if len(s.timers) == 0 {
		return
	}

	now := s.clock.Now()
	due := make([]*timer, 0, len(s.timers))
	remaining := s.timers[:0]

	for _, t := range s.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	s.timers = remaining

	for _, t := range due {
		t.fn()
	}
}

// Pending 返回尚未触发的定时任务数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

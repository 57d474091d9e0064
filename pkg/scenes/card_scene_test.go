package scenes

import (
	"errors"
	"math"
	"testing"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/content"
	"github.com/gonewx/greeting/pkg/game"
)

func testDocument() *content.Document {
	return &content.Document{
		Title:   "生日快乐",
		Message: "又长大一岁啦",
		Sender:  "家人们",
		Gallery: []string{"data/images/p1.jpg", "data/images/p2.jpg"},
	}
}

func newTestCardScene(t *testing.T, cb Callbacks) *CardScene {
	t.Helper()
	s, err := NewCardScene(game.NewResourceManager(nil), config.DefaultLayoutConfig(), testDocument(), cb, false)
	if err != nil {
		t.Fatalf("NewCardScene failed: %v", err)
	}
	return s
}

func TestNewCardSceneValidation(t *testing.T) {
	rm := game.NewResourceManager(nil)
	layout := config.DefaultLayoutConfig()
	doc := testDocument()

	cases := []struct {
		name string
		fn   func() (*CardScene, error)
	}{
		{"nil resource manager", func() (*CardScene, error) { return NewCardScene(nil, layout, doc, Callbacks{}, false) }},
		{"nil layout", func() (*CardScene, error) { return NewCardScene(rm, nil, doc, Callbacks{}, false) }},
		{"nil document", func() (*CardScene, error) { return NewCardScene(rm, layout, nil, Callbacks{}, false) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.fn(); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}

	bad := config.DefaultLayoutConfig()
	bad.Cake.TierHeights = bad.Cake.TierHeights[:1]
	if _, err := NewCardScene(rm, bad, doc, Callbacks{}, false); err == nil {
		t.Errorf("expected error for malformed cake layout, got nil")
	}
}

func TestCardSceneInitErrorType(t *testing.T) {
	_, err := NewCardScene(nil, config.DefaultLayoutConfig(), testDocument(), Callbacks{}, false)
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected *InitError, got %T", err)
	}
}

func TestCardSceneClickDispatch(t *testing.T) {
	var tagHits, flameHits int
	s := newTestCardScene(t, Callbacks{
		OnTagActivated:   func() { tagHits++ },
		OnFlameActivated: func() { flameHits++ },
	})

	paper := s.layout.Paper
	if s.HandleClick(paper.X, paper.Y) {
		t.Errorf("click before Start should not dispatch")
	}

	s.Start()
	if !s.HandleClick(paper.X, paper.Y) {
		t.Errorf("click on paper should dispatch")
	}
	if tagHits != 1 {
		t.Errorf("tagHits = %d, want 1", tagHits)
	}

	// 火焰未揭示前点击不派发
	flame := s.layout.Flame
	s.HandleClick(flame.X, flame.Y)
	if flameHits != 0 {
		t.Errorf("flameHits = %d before reveal, want 0", flameHits)
	}

	s.RevealFlame()
	if !s.HandleClick(flame.X, flame.Y) {
		t.Errorf("click on revealed flame should dispatch")
	}
	if flameHits != 1 {
		t.Errorf("flameHits = %d, want 1", flameHits)
	}

	// 空白区域无派发
	if s.HandleClick(10, 10) {
		t.Errorf("click on empty space should not dispatch")
	}
}

func TestCardScenePaperFlipDisablesInteraction(t *testing.T) {
	var tagHits int
	s := newTestCardScene(t, Callbacks{OnTagActivated: func() { tagHits++ }})
	s.Start()

	s.HideTag()
	// 翻转动画进行中仍可见但最终会消失
	s.Update(s.layout.Paper.FlipDuration + 0.01)

	if !s.paperHidden {
		t.Errorf("paper should be hidden after flip duration")
	}
	paper := s.layout.Paper
	if s.HandleClick(paper.X, paper.Y) {
		t.Errorf("hidden paper should not be clickable")
	}
	if tagHits != 0 {
		t.Errorf("tagHits = %d, want 0", tagHits)
	}
}

func TestCardSceneFlameBlowDisablesInteraction(t *testing.T) {
	var flameHits int
	s := newTestCardScene(t, Callbacks{OnFlameActivated: func() { flameHits++ }})
	s.Start()
	s.RevealFlame()
	s.HideFlame()
	s.Update(s.layout.Flame.BlowDuration + 0.01)

	if s.flameVisible {
		t.Errorf("flame should be invisible after blow duration")
	}
	flame := s.layout.Flame
	if s.HandleClick(flame.X, flame.Y) {
		t.Errorf("extinguished flame should not be clickable")
	}
	if flameHits != 0 {
		t.Errorf("flameHits = %d, want 0", flameHits)
	}
}

func TestCardScenePauseBlocksInputAndTime(t *testing.T) {
	s := newTestCardScene(t, Callbacks{})
	s.Start()
	s.Pause()
	s.Pause() // 重复暂停无副作用

	before := s.elapsed
	s.Update(1.0)
	if s.elapsed != before {
		t.Errorf("elapsed advanced while paused")
	}
	paper := s.layout.Paper
	if s.HandleClick(paper.X, paper.Y) {
		t.Errorf("paused scene should ignore clicks")
	}

	s.Resume()
	s.Resume()
	s.Update(1.0)
	if s.elapsed != before+1.0 {
		t.Errorf("elapsed = %v after resume, want %v", s.elapsed, before+1.0)
	}
}

func TestCardSceneDisposeStopsEverything(t *testing.T) {
	s := newTestCardScene(t, Callbacks{})
	s.Start()
	s.Dispose()

	s.Update(1.0)
	if s.elapsed != 0 {
		t.Errorf("disposed scene should not advance time")
	}
	paper := s.layout.Paper
	if s.HandleClick(paper.X, paper.Y) {
		t.Errorf("disposed scene should ignore clicks")
	}
}

func TestCardSceneActivateFocused(t *testing.T) {
	var tagHits, flameHits int
	s := newTestCardScene(t, Callbacks{
		OnTagActivated:   func() { tagHits++ },
		OnFlameActivated: func() { flameHits++ },
	})
	s.Start()

	// 初始焦点在纸签
	if !s.ActivateFocused() {
		t.Fatalf("initial focus should activate paper")
	}
	if tagHits != 1 {
		t.Errorf("tagHits = %d, want 1", tagHits)
	}

	s.RevealFlame()
	s.FocusFlame()
	if !s.ActivateFocused() {
		t.Fatalf("flame focus should activate flame")
	}
	if flameHits != 1 {
		t.Errorf("flameHits = %d, want 1", flameHits)
	}

	s.FocusMessage()
	if s.ActivateFocused() {
		t.Errorf("message focus is not activatable")
	}
}

func TestCardSceneVisibilityEffects(t *testing.T) {
	s := newTestCardScene(t, Callbacks{})
	s.Start()

	s.RevealMessage()
	s.RevealPrompt()
	s.ShowAudioControls()
	if !s.messageVisible || !s.promptVisible || !s.audioControlsVisible {
		t.Errorf("visibility flags not set: message=%v prompt=%v audio=%v",
			s.messageVisible, s.promptVisible, s.audioControlsVisible)
	}
}

func TestCardSceneRevealGalleryStartsLoads(t *testing.T) {
	s := newTestCardScene(t, Callbacks{})
	s.Start()

	s.RevealGallery()
	if got := len(s.gallery); got != 2 {
		t.Fatalf("gallery cells = %d, want 2", got)
	}
	// 重复揭示不重复加载
	s.RevealGallery()
	if got := len(s.gallery); got != 2 {
		t.Errorf("gallery cells after second reveal = %d, want 2", got)
	}

	// 不存在的文件：轮询若干次后标记失败而不中断场景
	for i := 0; i < 50; i++ {
		s.Update(0.016)
	}
}

func TestCardSceneRevealPhotoEmptyGallery(t *testing.T) {
	doc := testDocument()
	doc.Gallery = nil
	s, err := NewCardScene(game.NewResourceManager(nil), config.DefaultLayoutConfig(), doc, Callbacks{}, false)
	if err != nil {
		t.Fatalf("NewCardScene failed: %v", err)
	}
	s.Start()

	s.RevealPhoto()
	if !s.photoVisible {
		t.Errorf("photo placeholder should still be shown")
	}
	if s.photoCh != nil {
		t.Errorf("no decode should start with empty gallery")
	}
}

func TestCrossfadeAlphas(t *testing.T) {
	c := crossfade{fadeIn: 1.0, lag: 0.2, loadedAt: -1}

	full, placeholder := c.alphas(5.0)
	if full != 0 || placeholder != 1 {
		t.Errorf("before load: full=%v placeholder=%v, want 0 and 1", full, placeholder)
	}

	c.markLoaded(10.0)
	c.markLoaded(12.0) // 只记录第一次
	if c.loadedAt != 10.0 {
		t.Errorf("loadedAt = %v, want 10.0", c.loadedAt)
	}

	// 淡入刚开始：全幅图透明，占位块仍不透明
	full, placeholder = c.alphas(10.0)
	if full != 0 || placeholder != 1 {
		t.Errorf("at load: full=%v placeholder=%v, want 0 and 1", full, placeholder)
	}

	// 滞后窗口内：全幅图在淡入，占位块还没开始淡出
	full, placeholder = c.alphas(10.1)
	if math.Abs(full-0.1) > 1e-9 {
		t.Errorf("full = %v at +100ms, want 0.1", full)
	}
	if placeholder != 1 {
		t.Errorf("placeholder = %v at +100ms, want 1 (lag not elapsed)", placeholder)
	}

	// 滞后过后占位块开始淡出
	full, placeholder = c.alphas(10.7)
	if math.Abs(full-0.7) > 1e-9 {
		t.Errorf("full = %v at +700ms, want 0.7", full)
	}
	if math.Abs(placeholder-0.5) > 1e-9 {
		t.Errorf("placeholder = %v at +700ms, want 0.5", placeholder)
	}

	// 双方都收敛
	full, placeholder = c.alphas(12.0)
	if full != 1 || placeholder != 0 {
		t.Errorf("settled: full=%v placeholder=%v, want 1 and 0", full, placeholder)
	}
}

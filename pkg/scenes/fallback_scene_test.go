package scenes

import "testing"

func newTestFallbackScene(tagHits, flameHits *int) *FallbackScene {
	s := NewFallbackScene(testDocument(), Callbacks{
		OnTagActivated:   func() { *tagHits++ },
		OnFlameActivated: func() { *flameHits++ },
	})
	s.Start()
	return s
}

func TestFallbackSceneInitialControls(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)

	if !s.paperBtn.visible || !s.paperBtn.enabled {
		t.Errorf("paper button should start visible and enabled")
	}
	if s.flameBtn.visible {
		t.Errorf("flame button should start hidden")
	}
}

func TestFallbackSceneClickButtons(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)

	cx := s.paperBtn.x + s.paperBtn.w/2
	cy := s.paperBtn.y + s.paperBtn.h/2
	if !s.HandleClick(cx, cy) {
		t.Fatalf("click on paper button should dispatch")
	}
	if tagHits != 1 {
		t.Errorf("tagHits = %d, want 1", tagHits)
	}

	// 蜡烛按钮揭示前点击无效
	fx := s.flameBtn.x + s.flameBtn.w/2
	fy := s.flameBtn.y + s.flameBtn.h/2
	if s.HandleClick(fx, fy) {
		t.Errorf("hidden flame button should not dispatch")
	}

	s.RevealFlame()
	if !s.HandleClick(fx, fy) {
		t.Errorf("revealed flame button should dispatch")
	}
	if flameHits != 1 {
		t.Errorf("flameHits = %d, want 1", flameHits)
	}
}

func TestFallbackSceneHideTagDisablesButton(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)

	s.HideTag()
	cx := s.paperBtn.x + s.paperBtn.w/2
	cy := s.paperBtn.y + s.paperBtn.h/2
	if s.HandleClick(cx, cy) {
		t.Errorf("hidden paper button should not dispatch")
	}
	if tagHits != 0 {
		t.Errorf("tagHits = %d, want 0", tagHits)
	}
}

func TestFallbackSceneKeyboardFocus(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)

	// 初始焦点在纸签按钮
	if !s.ActivateFocused() {
		t.Fatalf("initial focus should activate paper button")
	}
	if tagHits != 1 {
		t.Errorf("tagHits = %d, want 1", tagHits)
	}

	// 纸签隐藏后焦点轮转只剩蜡烛按钮
	s.HideTag()
	s.RevealFlame()
	s.FocusNext()
	if s.focus != "flame" {
		t.Errorf("focus = %q, want flame", s.focus)
	}
	if !s.ActivateFocused() {
		t.Fatalf("flame focus should activate flame button")
	}
	if flameHits != 1 {
		t.Errorf("flameHits = %d, want 1", flameHits)
	}

	// 全部按钮不可用时焦点清空
	s.HideFlame()
	s.FocusNext()
	if s.focus != "" {
		t.Errorf("focus = %q with no controls, want empty", s.focus)
	}
	if s.ActivateFocused() {
		t.Errorf("nothing to activate with no controls")
	}
}

func TestFallbackScenePauseBlocksInput(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)
	s.Pause()

	cx := s.paperBtn.x + s.paperBtn.w/2
	cy := s.paperBtn.y + s.paperBtn.h/2
	if s.HandleClick(cx, cy) || s.ActivateFocused() {
		t.Errorf("paused scene should ignore input")
	}

	s.Resume()
	if !s.HandleClick(cx, cy) {
		t.Errorf("resumed scene should accept input")
	}
}

func TestFallbackSceneVisibilityEffects(t *testing.T) {
	var tagHits, flameHits int
	s := newTestFallbackScene(&tagHits, &flameHits)

	s.RevealMessage()
	s.RevealPrompt()
	s.ShowAudioControls()
	s.RevealGallery()
	s.RevealPhoto()
	if !s.messageVisible || !s.promptVisible || !s.audioControlsVisible ||
		!s.galleryVisible || !s.photoVisible {
		t.Errorf("visibility flags not all set")
	}
}

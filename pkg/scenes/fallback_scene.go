package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/content"
	"github.com/gonewx/greeting/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fallbackButton 静态场景中的一个按钮控件
type fallbackButton struct {
	label   string
	hitbox  config.Hitbox
	x, y    float64
	w, h    float64
	visible bool
	enabled bool
}

// FallbackScene 是静态场景变体：在低配设备或增强场景初始化
// 失败时使用。没有动画，两个按钮直接对应两个语义事件，
// 揭示效果立即生效。
//
// 键盘操作由编排层转译：Tab 调 FocusNext，Enter/空格 调
// ActivateFocused。
type FallbackScene struct {
	doc       *content.Document
	callbacks Callbacks

	running  bool
	paused   bool
	disposed bool

	paperBtn fallbackButton
	flameBtn fallbackButton

	messageVisible       bool
	promptVisible        bool
	galleryVisible       bool
	audioControlsVisible bool
	photoVisible         bool

	focus string // "paper" / "flame" / ""
}

// NewFallbackScene 构造静态场景，构造不会失败
func NewFallbackScene(doc *content.Document, cb Callbacks) *FallbackScene {
	s := &FallbackScene{
		doc:       doc,
		callbacks: cb,
		paperBtn:  newFallbackButton("打开纸签", 380, 280),
		flameBtn:  newFallbackButton("吹灭蜡烛", 380, 360),
	}
	s.paperBtn.visible = true
	s.paperBtn.enabled = true
	s.focus = "paper"
	log.Printf("[FallbackScene] constructed")
	return s
}

func newFallbackButton(label string, x, y float64) fallbackButton {
	const w, h = 200.0, 48.0
	return fallbackButton{
		label:  label,
		x:      x,
		y:      y,
		w:      w,
		h:      h,
		hitbox: config.RectHitbox(x, y, w, h),
	}
}

func (s *FallbackScene) Start()   { s.running = true }
func (s *FallbackScene) Pause()   { s.paused = true }
func (s *FallbackScene) Resume()  { s.paused = false }
func (s *FallbackScene) Dispose() { s.disposed = true; s.running = false }

// HandleResize 静态布局不随窗口变化
func (s *FallbackScene) HandleResize(width, height int) {}

// Update 静态场景没有随时间推进的状态
func (s *FallbackScene) Update(deltaTime float64) {}

// HandleClick 对按钮做命中检测并派发对应事件
func (s *FallbackScene) HandleClick(x, y float64) bool {
	if !s.running || s.paused || s.disposed {
		return false
	}
	if s.paperBtn.visible && s.paperBtn.enabled && s.paperBtn.hitbox.Contains(x, y) {
		s.activatePaper()
		return true
	}
	if s.flameBtn.visible && s.flameBtn.enabled && s.flameBtn.hitbox.Contains(x, y) {
		s.activateFlame()
		return true
	}
	return false
}

// FocusNext 把键盘焦点移到下一个可用按钮
func (s *FallbackScene) FocusNext() {
	order := []struct {
		name string
		btn  *fallbackButton
	}{
		{"paper", &s.paperBtn},
		{"flame", &s.flameBtn},
	}

	start := 0
	for i, o := range order {
		if o.name == s.focus {
			start = i + 1
			break
		}
	}
	for i := 0; i < len(order); i++ {
		o := order[(start+i)%len(order)]
		if o.btn.visible && o.btn.enabled {
			s.focus = o.name
			return
		}
	}
	s.focus = ""
}

// ActivateFocused 激活当前获得焦点的按钮，返回是否激活了控件
func (s *FallbackScene) ActivateFocused() bool {
	if !s.running || s.paused || s.disposed {
		return false
	}
	switch s.focus {
	case "paper":
		if s.paperBtn.visible && s.paperBtn.enabled {
			s.activatePaper()
			return true
		}
	case "flame":
		if s.flameBtn.visible && s.flameBtn.enabled {
			s.activateFlame()
			return true
		}
	}
	return false
}

func (s *FallbackScene) activatePaper() {
	if s.callbacks.OnTagActivated != nil {
		s.callbacks.OnTagActivated()
	}
}

func (s *FallbackScene) activateFlame() {
	if s.callbacks.OnFlameActivated != nil {
		s.callbacks.OnFlameActivated()
	}
}

// ----- 状态机副作用（game.CardView）：静态场景里立即生效 -----

// HideTag 立即隐藏并禁用纸签按钮
func (s *FallbackScene) HideTag() {
	s.paperBtn.visible = false
	s.paperBtn.enabled = false
}

func (s *FallbackScene) RevealMessage() { s.messageVisible = true }
func (s *FallbackScene) FocusMessage()  { s.focus = "" }
func (s *FallbackScene) RevealPrompt()  { s.promptVisible = true }

// RevealFlame 显示并启用蜡烛按钮
func (s *FallbackScene) RevealFlame() {
	s.flameBtn.visible = true
	s.flameBtn.enabled = true
}

func (s *FallbackScene) FocusFlame() { s.focus = "flame" }

// HideFlame 立即隐藏并禁用蜡烛按钮
func (s *FallbackScene) HideFlame() {
	s.flameBtn.visible = false
	s.flameBtn.enabled = false
}

func (s *FallbackScene) ShowAudioControls() { s.audioControlsVisible = true }
func (s *FallbackScene) RevealGallery()     { s.galleryVisible = true }
func (s *FallbackScene) RevealPhoto()       { s.photoVisible = true }

// SpawnConfetti 静态场景不做粒子效果
func (s *FallbackScene) SpawnConfetti() {
	log.Printf("[FallbackScene] confetti not available in fallback mode")
}

// Draw 绘制静态界面
func (s *FallbackScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	screen.Fill(color.RGBA{R: 38, G: 32, B: 58, A: 255})

	y := 60
	ebitenutil.DebugPrintAt(screen, s.doc.Title, 60, y)
	if s.messageVisible {
		y += 30
		ebitenutil.DebugPrintAt(screen, s.doc.Subtitle, 60, y)
		y += 24
		ebitenutil.DebugPrintAt(screen, s.doc.Message, 60, y)
		y += 24
		ebitenutil.DebugPrintAt(screen, "-- "+s.doc.Sender, 60, y)
	}
	if s.promptVisible {
		ebitenutil.DebugPrintAt(screen, "吹灭蜡烛，许个愿吧", 380, 330)
	}
	if s.photoVisible {
		vector.DrawFilledRect(screen, 620, 60, 280, 190, color.RGBA{R: 70, G: 60, B: 95, A: 255}, false)
	}
	if s.galleryVisible {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("相册：%d 张照片", len(s.doc.Gallery)), 60, config.GameWindowHeight-40)
	}
	if s.audioControlsVisible {
		ebitenutil.DebugPrintAt(screen, "[M] 音乐开/关", config.GameWindowWidth-140, 20)
	}

	s.drawButton(screen, &s.paperBtn, s.focus == "paper")
	s.drawButton(screen, &s.flameBtn, s.focus == "flame")
}

func (s *FallbackScene) drawButton(screen *ebiten.Image, btn *fallbackButton, focused bool) {
	if !btn.visible {
		return
	}
	fill := color.RGBA{R: 90, G: 70, B: 130, A: 255}
	vector.DrawFilledRect(screen, float32(btn.x), float32(btn.y), float32(btn.w), float32(btn.h), fill, false)
	if focused {
		vector.StrokeRect(screen, float32(btn.x), float32(btn.y), float32(btn.w), float32(btn.h), 2, color.RGBA{R: 255, G: 214, B: 90, A: 255}, false)
	}
	ebitenutil.DebugPrintAt(screen, btn.label, int(btn.x)+16, int(btn.y)+16)
}

var _ game.CardScene = (*FallbackScene)(nil)
var _ game.CardView = (*FallbackScene)(nil)

package scenes

import (
	"image"
	"log"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/content"
	"github.com/gonewx/greeting/pkg/ecs"
	"github.com/gonewx/greeting/pkg/game"
	"github.com/gonewx/greeting/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CardScene 是增强场景变体：程序化绘制的分层蛋糕、蜡烛火焰
// 和飘浮的纸签，以及点击命中检测
//
// 所有动画进度都由累计的真实时间驱动（activation 时刻记录为
// elapsed 值，进度 = 经过时间 / 固定时长），与帧率无关。
// 场景只发出两个语义事件（Callbacks），状态推进由外部状态机
// 负责；状态机的副作用再通过 CardView 接口落回可见性标志。
type CardScene struct {
	layout    *config.LayoutConfig
	doc       *content.Document
	resources *game.ResourceManager
	callbacks Callbacks

	elapsed  float64
	running  bool
	paused   bool
	disposed bool

	width  int
	height int

	// 纸签元素
	paperInteractive bool
	paperHidden      bool
	paperFlipStart   float64 // 翻转动画开始时刻（elapsed 值），负值表示未开始
	paperHitbox      config.Hitbox

	// 火焰元素（纸签揭示 2 秒后才出现）
	flameVisible     bool
	flameInteractive bool
	flameBlowStart   float64 // 熄灭动画开始时刻，负值表示未开始
	flameHitbox      config.Hitbox

	// 可见性状态（由状态机副作用驱动）
	messageVisible       bool
	promptVisible        bool
	galleryVisible       bool
	audioControlsVisible bool
	photoVisible         bool
	focusTarget          string

	// 五彩纸屑
	entityManager *ecs.EntityManager
	confetti      *systems.ConfettiSystem
	reducedMotion bool

	// 照片交叉淡化
	// 解码结果先存为 image.Image，首次绘制时才上传 GPU，
	// Update 保持可以无图形环境运行
	fade         crossfade
	photoPath    string
	photoCh      <-chan game.AsyncImage
	photoDecoded image.Image
	photoImg     *ebiten.Image

	// 相册
	gallery []*galleryCell

	titleFont *text.GoTextFace
	bodyFont  *text.GoTextFace
}

// galleryCell 相册中一张照片的加载状态
type galleryCell struct {
	path    string
	ch      <-chan game.AsyncImage
	decoded image.Image
	img     *ebiten.Image
	fail    bool
}

// NewCardScene 构造增强场景
//
// 构造可能失败（布局残缺、依赖缺失），失败返回 *InitError，
// 由编排层捕获并回退到静态场景。字体缺失不算失败：文字用
// 调试字体降级绘制。
func NewCardScene(rm *game.ResourceManager, layout *config.LayoutConfig, doc *content.Document, cb Callbacks, reducedMotion bool) (*CardScene, error) {
	if rm == nil {
		return nil, &InitError{Reason: "resource manager is nil"}
	}
	if layout == nil {
		return nil, &InitError{Reason: "layout config is nil"}
	}
	if doc == nil {
		return nil, &InitError{Reason: "content document is nil"}
	}
	if len(layout.Cake.TierWidths) == 0 || len(layout.Cake.TierWidths) != len(layout.Cake.TierHeights) {
		return nil, &InitError{Reason: "cake layout is malformed"}
	}

	em := ecs.NewEntityManager()
	s := &CardScene{
		layout:           layout,
		doc:              doc,
		resources:        rm,
		callbacks:        cb,
		width:            config.GameWindowWidth,
		height:           config.GameWindowHeight,
		focusTarget:      "paper",
		paperInteractive: true,
		paperFlipStart:   -1,
		flameBlowStart:   -1,
		paperHitbox:      layout.PaperHitbox(),
		flameHitbox:      layout.FlameHitbox(),
		entityManager:    em,
		confetti:         systems.NewConfettiSystem(em, layout.Confetti),
		reducedMotion:    reducedMotion,
	}
	s.fade = crossfade{
		fadeIn:   layout.Photo.FadeInDuration,
		lag:      float64(layout.Photo.PlaceholderLagMs) / 1000,
		loadedAt: -1,
	}

	// 字体是装饰性资源：加载失败降级到调试文字
	s.titleFont = s.loadFont("FONT_TITLE")
	s.bodyFont = s.loadFont("FONT_BODY")

	log.Printf("[CardScene] constructed (reducedMotion=%v)", reducedMotion)
	return s, nil
}

// loadFont 按资源 ID 加载字体，失败返回 nil
func (s *CardScene) loadFont(id string) *text.GoTextFace {
	path, ok := s.resources.ResourcePath(id)
	if !ok {
		return nil
	}
	size := 24.0
	if id == "FONT_TITLE" {
		size = 40.0
	}
	face, err := s.resources.LoadFont(path, size)
	if err != nil {
		log.Printf("[CardScene] Warning: font %s unavailable: %v", id, err)
		return nil
	}
	return face
}

// Start 场景进入活动状态
func (s *CardScene) Start() {
	s.running = true
}

// Pause 暂停动画推进（可重复调用）
func (s *CardScene) Pause() {
	if !s.paused {
		s.paused = true
		log.Printf("[CardScene] paused")
	}
}

// Resume 恢复动画推进（可重复调用）
func (s *CardScene) Resume() {
	if s.paused {
		s.paused = false
		log.Printf("[CardScene] resumed")
	}
}

// HandleResize 视口尺寸变化
// 逻辑坐标系由 Layout 固定，这里只记录实际尺寸供命中换算参考
func (s *CardScene) HandleResize(width, height int) {
	s.width = width
	s.height = height
}

// Dispose 释放场景资源，仅调用一次
func (s *CardScene) Dispose() {
	s.disposed = true
	s.running = false
	if s.photoImg != nil {
		s.photoImg.Deallocate()
		s.photoImg = nil
	}
	for _, cell := range s.gallery {
		if cell.img != nil {
			cell.img.Deallocate()
			cell.img = nil
		}
	}
	log.Printf("[CardScene] disposed")
}

// Update 推进场景动画
// deltaTime 是自上一帧以来的时间（秒）
func (s *CardScene) Update(deltaTime float64) {
	if !s.running || s.paused || s.disposed {
		return
	}
	s.elapsed += deltaTime

	// 纸签翻转动画结束后不可见、不可交互
	if s.paperFlipStart >= 0 && s.elapsed-s.paperFlipStart >= s.layout.Paper.FlipDuration {
		s.paperHidden = true
		s.paperInteractive = false
	}
	// 火焰熄灭动画结束后不可见、不可交互
	if s.flameBlowStart >= 0 && s.elapsed-s.flameBlowStart >= s.layout.Flame.BlowDuration {
		s.flameVisible = false
		s.flameInteractive = false
	}

	s.confetti.Update(deltaTime)
	s.pollPhoto()
	s.pollGallery()
}

// HandleClick 对一次点击做命中检测并派发语义事件
//
// 按相交顺序检查交互元素，命中第一个即派发；已隐藏或不可
// 交互的元素被跳过；无命中则无派发。返回是否命中了某个元素。
func (s *CardScene) HandleClick(x, y float64) bool {
	if !s.running || s.paused || s.disposed {
		return false
	}

	if s.paperInteractive && !s.paperHidden && s.paperHitbox.Contains(x, y) {
		if s.callbacks.OnTagActivated != nil {
			s.callbacks.OnTagActivated()
		}
		return true
	}
	if s.flameInteractive && s.flameVisible && s.flameHitbox.Contains(x, y) {
		if s.callbacks.OnFlameActivated != nil {
			s.callbacks.OnFlameActivated()
		}
		return true
	}
	return false
}

// ActivateFocused 激活当前获得键盘焦点的元素，返回是否激活了控件
func (s *CardScene) ActivateFocused() bool {
	if !s.running || s.paused || s.disposed {
		return false
	}
	switch s.focusTarget {
	case "paper":
		if s.paperInteractive && !s.paperHidden {
			if s.callbacks.OnTagActivated != nil {
				s.callbacks.OnTagActivated()
			}
			return true
		}
	case "flame":
		if s.flameInteractive && s.flameVisible {
			if s.callbacks.OnFlameActivated != nil {
				s.callbacks.OnFlameActivated()
			}
			return true
		}
	}
	return false
}

var _ game.CardScene = (*CardScene)(nil)

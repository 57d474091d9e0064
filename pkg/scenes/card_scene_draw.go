package scenes

import (
	"image/color"
	"math"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 增强场景的全部视觉元素都是程序化绘制的，不依赖外部图片。
// 字体是唯一的可选资源，缺失时使用调试字体。

var (
	skyTop      = color.RGBA{R: 30, G: 24, B: 54, A: 255}
	skyBottom   = color.RGBA{R: 64, G: 42, B: 86, A: 255}
	tableColor  = color.RGBA{R: 92, G: 58, B: 38, A: 255}
	tierColors  = []color.RGBA{{R: 244, G: 194, B: 194, A: 255}, {R: 250, G: 218, B: 221, A: 255}, {R: 255, G: 240, B: 245, A: 255}}
	icingColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	candleColor = color.RGBA{R: 120, G: 170, B: 220, A: 255}
	flameCore   = color.RGBA{R: 255, G: 236, B: 150, A: 255}
	flameHalo   = color.RGBA{R: 255, G: 160, B: 60, A: 140}
	paperColor  = color.RGBA{R: 255, G: 250, B: 230, A: 255}
	panelColor  = color.RGBA{R: 20, G: 16, B: 36, A: 200}
	textColor   = color.RGBA{R: 245, G: 240, B: 250, A: 255}
	mutedText   = color.RGBA{R: 190, G: 180, B: 205, A: 255}
	focusColor  = color.RGBA{R: 255, G: 214, B: 90, A: 255}
	photoFill   = color.RGBA{R: 70, G: 60, B: 95, A: 255}
)

// Draw 绘制场景
// 绘制顺序：背景 → 蛋糕 → 火焰 → 纸签 → 文字面板 → 照片/相册 → 纸屑
func (s *CardScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}

	s.drawBackground(screen)
	s.drawCake(screen)
	s.drawFlame(screen)
	s.drawPaper(screen)
	s.drawPanels(screen)
	s.drawPhoto(screen)
	s.drawGallery(screen)
	s.confetti.Draw(screen)
	s.drawFocusRing(screen)

	if s.paused {
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, color.RGBA{A: 120}, false)
	}
}

func (s *CardScene) drawBackground(screen *ebiten.Image) {
	h := float32(config.GameWindowHeight)
	w := float32(config.GameWindowWidth)
	vector.DrawFilledRect(screen, 0, 0, w, h/2, skyTop, false)
	vector.DrawFilledRect(screen, 0, h/2, w, h/2, skyBottom, false)
	// 桌面
	vector.DrawFilledRect(screen, 0, float32(s.layout.Cake.BaseY), w, h-float32(s.layout.Cake.BaseY), tableColor, false)
}

func (s *CardScene) drawCake(screen *ebiten.Image) {
	cake := s.layout.Cake
	y := cake.BaseY
	for i, tw := range cake.TierWidths {
		th := cake.TierHeights[i]
		y -= th
		clr := tierColors[i%len(tierColors)]
		vector.DrawFilledRect(screen, float32(cake.CenterX-tw/2), float32(y), float32(tw), float32(th), clr, false)
		// 每层上沿一条糖霜
		vector.DrawFilledRect(screen, float32(cake.CenterX-tw/2), float32(y), float32(tw), 8, icingColor, false)
	}
	// 蜡烛立在顶层中央
	f := s.layout.Flame
	candleTop := f.Y + f.Radius
	vector.DrawFilledRect(screen, float32(f.X-4), float32(candleTop), 8, float32(y-candleTop), candleColor, false)
}

func (s *CardScene) drawFlame(screen *ebiten.Image) {
	if !s.flameVisible {
		return
	}
	f := s.layout.Flame

	// 闪烁：半径随时间轻微波动
	scale := 1 + 0.08*math.Sin(s.elapsed*12)
	alpha := 1.0
	if s.flameBlowStart >= 0 {
		prog := clamp01((s.elapsed - s.flameBlowStart) / s.layout.Flame.BlowDuration)
		scale *= 1 - prog
		alpha = 1 - prog
	}
	if scale <= 0 || alpha <= 0 {
		return
	}

	r := float32(f.Radius * scale)
	halo := flameHalo
	halo.A = uint8(float64(halo.A) * alpha)
	core := flameCore
	core.A = uint8(float64(core.A) * alpha)
	vector.DrawFilledCircle(screen, float32(f.X), float32(f.Y), r*1.8, halo, true)
	vector.DrawFilledCircle(screen, float32(f.X), float32(f.Y), r, core, true)
}

func (s *CardScene) drawPaper(screen *ebiten.Image) {
	if s.paperHidden {
		return
	}
	p := s.layout.Paper

	// 未激活时轻微上下飘浮
	bob := 4 * math.Sin(s.elapsed*1.6)
	widthScale := 1.0
	alpha := 1.0
	if s.paperFlipStart >= 0 {
		prog := clamp01((s.elapsed - s.paperFlipStart) / p.FlipDuration)
		widthScale = 1 - prog
		alpha = 1 - prog
		bob = 0
	}
	if widthScale <= 0 || alpha <= 0 {
		return
	}

	w := p.Width * widthScale
	clr := paperColor
	clr.A = uint8(255 * alpha)
	vector.DrawFilledRect(screen, float32(p.X-w/2), float32(p.Y-p.Height/2+bob), float32(w), float32(p.Height), clr, false)

	if s.paperFlipStart < 0 {
		s.drawText(screen, s.doc.Title, s.bodyFont, p.X-w/2+10, p.Y+bob, color.RGBA{R: 60, G: 40, B: 40, A: 255})
	}
}

func (s *CardScene) drawPanels(screen *ebiten.Image) {
	if s.messageVisible {
		vector.DrawFilledRect(screen, 40, 40, 420, 220, panelColor, false)
		s.drawText(screen, s.doc.Title, s.titleFont, 60, 80, textColor)
		s.drawText(screen, s.doc.Subtitle, s.bodyFont, 60, 125, mutedText)
		s.drawText(screen, s.doc.Message, s.bodyFont, 60, 165, textColor)
		s.drawText(screen, "— "+s.doc.Sender, s.bodyFont, 60, 225, mutedText)
	}
	if s.promptVisible {
		f := s.layout.Flame
		s.drawText(screen, "吹灭蜡烛吧！", s.bodyFont, f.X-70, f.Y-60, textColor)
	}
	if s.audioControlsVisible {
		vector.DrawFilledRect(screen, float32(config.GameWindowWidth-52), 12, 40, 28, panelColor, false)
		s.drawText(screen, "♪", s.bodyFont, float64(config.GameWindowWidth-40), 32, textColor)
	}
}

func (s *CardScene) drawPhoto(screen *ebiten.Image) {
	if !s.photoVisible {
		return
	}
	const px, py, pw, ph = 560.0, 60.0, 320.0, 220.0
	full, placeholder := s.fade.alphas(s.elapsed)

	if placeholder > 0 {
		clr := photoFill
		clr.A = uint8(float64(clr.A) * placeholder)
		vector.DrawFilledRect(screen, px, py, pw, ph, clr, false)
	}
	// 解码结果在首次绘制时上传 GPU 并进缓存
	if s.photoImg == nil && s.photoDecoded != nil {
		s.photoImg = ebiten.NewImageFromImage(s.photoDecoded)
		s.resources.CacheImage(s.photoPath, s.photoImg)
		s.photoDecoded = nil
	}
	if s.photoImg != nil && full > 0 {
		opts := &ebiten.DrawImageOptions{}
		bounds := s.photoImg.Bounds()
		opts.GeoM.Scale(pw/float64(bounds.Dx()), ph/float64(bounds.Dy()))
		opts.GeoM.Translate(px, py)
		opts.ColorScale.ScaleAlpha(float32(full))
		screen.DrawImage(s.photoImg, opts)
	}
}

func (s *CardScene) drawGallery(screen *ebiten.Image) {
	if !s.galleryVisible || len(s.gallery) == 0 {
		return
	}
	const thumbW, thumbH, gap = 120.0, 80.0, 12.0
	x := 40.0
	y := float64(config.GameWindowHeight) - thumbH - 24
	for _, cell := range s.gallery {
		if cell.img == nil && cell.decoded != nil {
			cell.img = ebiten.NewImageFromImage(cell.decoded)
			s.resources.CacheImage(cell.path, cell.img)
			cell.decoded = nil
		}
		if cell.img != nil {
			opts := &ebiten.DrawImageOptions{}
			bounds := cell.img.Bounds()
			opts.GeoM.Scale(thumbW/float64(bounds.Dx()), thumbH/float64(bounds.Dy()))
			opts.GeoM.Translate(x, y)
			screen.DrawImage(cell.img, opts)
		} else if !cell.fail {
			vector.DrawFilledRect(screen, float32(x), float32(y), thumbW, thumbH, photoFill, false)
		}
		x += thumbW + gap
	}
}

func (s *CardScene) drawFocusRing(screen *ebiten.Image) {
	var hb config.Hitbox
	switch s.focusTarget {
	case "paper":
		if s.paperHidden {
			return
		}
		hb = s.paperHitbox
	case "flame":
		if !s.flameVisible {
			return
		}
		hb = s.flameHitbox
	case "message":
		if !s.messageVisible {
			return
		}
		hb = config.RectHitbox(40, 40, 420, 220)
	default:
		return
	}
	vector.StrokeRect(screen, float32(hb.TopLeft.X), float32(hb.TopLeft.Y),
		float32(hb.TopRight.X-hb.TopLeft.X), float32(hb.BottomLeft.Y-hb.TopLeft.Y),
		2, focusColor, false)
}

// drawText 绘制一行文字，字体缺失时退化为调试字体
func (s *CardScene) drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.RGBA) {
	if str == "" {
		return
	}
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y)-12)
		return
	}
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y-face.Size)
	opts.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, opts)
}

package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrorScene 在内容加载失败时显示：贺卡没有内容就没有意义，
// 这是唯一致命的失败路径
type ErrorScene struct {
	detail string
}

// NewErrorScene 创建错误场景，detail 是面向用户的一行说明
func NewErrorScene(detail string) *ErrorScene {
	return &ErrorScene{detail: detail}
}

func (s *ErrorScene) Update(deltaTime float64) {}

// Draw 绘制错误信息
func (s *ErrorScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 26, B: 40, A: 255})
	ebitenutil.DebugPrintAt(screen, "贺卡内容加载失败，请检查内容文件后重试。", 280, 290)
	if s.detail != "" {
		ebitenutil.DebugPrintAt(screen, s.detail, 280, 320)
	}
}

package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/greeting/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
)

const degToRad = math.Pi / 180

// whiteImage 是纸屑渲染共用的基础贴图，通过 ColorScale 着色
var whiteImage *ebiten.Image

func sharedWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// Draw 渲染所有可见纸屑
func (s *ConfettiSystem) Draw(screen *ebiten.Image) {
	base := sharedWhiteImage()

	for _, id := range s.entityManager.GetEntitiesWith(confettiQuery...) {
		confComp, _ := s.entityManager.GetComponent(id, confettiQuery[0])
		conf := confComp.(*components.ConfettiComponent)

		// 延迟期内或已完全淡出的纸屑不绘制
		if conf.Age < conf.Delay || conf.Alpha <= 0 {
			continue
		}

		posComp, _ := s.entityManager.GetComponent(id, confettiQuery[1])
		pos := posComp.(*components.PositionComponent)

		op := &ebiten.DrawImageOptions{}
		scale := conf.Size / 3.0
		op.GeoM.Translate(-1.5, -1.5)
		op.GeoM.Rotate(conf.Rotation * degToRad)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(pos.X, pos.Y)

		op.ColorScale.Scale(
			float32(conf.Color.R)/255,
			float32(conf.Color.G)/255,
			float32(conf.Color.B)/255,
			1,
		)
		op.ColorScale.ScaleAlpha(float32(conf.Alpha))

		screen.DrawImage(base, op)
	}
}

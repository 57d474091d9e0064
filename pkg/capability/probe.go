package capability

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Probe 采集当前环境的能力快照
//
// 图形可用性通过尝试创建最小离屏图像判断：Ebitengine 在图形
// 后端不可用时会 panic，这里 recover 后按不可用处理。
// 视口宽度取主显示器尺寸；窗口尚未创建时这是最接近的信号。
func Probe() Profile {
	p := Profile{
		GraphicsAvailable: probeGraphics(),
		MemoryGiB:         readMemoryGiB(),
	}

	w, _ := ebiten.Monitor().Size()
	p.ViewportWidth = w

	log.Printf("[Capability] graphics=%v memoryGiB=%.1f viewportWidth=%d",
		p.GraphicsAvailable, p.MemoryGiB, p.ViewportWidth)

	return p
}

// probeGraphics 尝试创建离屏图像，panic 视为图形不可用
func probeGraphics() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Capability] graphics probe failed: %v", r)
			ok = false
		}
	}()

	img := ebiten.NewImage(1, 1)
	if img == nil {
		return false
	}
	img.Deallocate()
	return true
}

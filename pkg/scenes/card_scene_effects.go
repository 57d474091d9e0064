package scenes

import (
	"log"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/game"
)

// 本文件是 CardScene 对 game.CardView 的实现：
// 状态机的副作用落回场景的可见性/动画标志

// HideTag 开始纸签的翻转隐藏动画
func (s *CardScene) HideTag() {
	if s.paperFlipStart < 0 {
		s.paperFlipStart = s.elapsed
	}
}

// RevealMessage 显示祝福正文
func (s *CardScene) RevealMessage() {
	s.messageVisible = true
}

// FocusMessage 将键盘焦点移到正文区域
func (s *CardScene) FocusMessage() {
	s.focusTarget = "message"
}

// RevealPrompt 显示吹蜡烛提示
func (s *CardScene) RevealPrompt() {
	s.promptVisible = true
}

// RevealFlame 点亮火焰并使其可交互
func (s *CardScene) RevealFlame() {
	s.flameVisible = true
	s.flameInteractive = true
}

// FocusFlame 将键盘焦点移到火焰控件
func (s *CardScene) FocusFlame() {
	s.focusTarget = "flame"
}

// HideFlame 开始火焰的熄灭动画
func (s *CardScene) HideFlame() {
	if s.flameBlowStart < 0 {
		s.flameBlowStart = s.elapsed
	}
}

// ShowAudioControls 显示音乐开关
func (s *CardScene) ShowAudioControls() {
	s.audioControlsVisible = true
}

// RevealGallery 显示相册并启动懒加载
func (s *CardScene) RevealGallery() {
	s.galleryVisible = true
	if len(s.gallery) > 0 {
		return
	}
	for _, path := range s.doc.Gallery {
		cell := &galleryCell{path: path}
		cell.ch = s.resources.DecodeImageAsync(path)
		s.gallery = append(s.gallery, cell)
	}
}

// RevealPhoto 显示主照片：先出占位块，全幅图解码完成后交叉淡化
// 相册为空时静默降级，只保留占位块
func (s *CardScene) RevealPhoto() {
	if s.photoVisible {
		return
	}
	s.photoVisible = true
	if len(s.doc.Gallery) == 0 {
		return
	}
	s.photoPath = s.doc.Gallery[0]
	s.photoCh = s.resources.DecodeImageAsync(s.photoPath)
}

// SpawnConfetti 触发一次五彩纸屑爆发
// 从窗口上沿之外的整宽条带洒落，尊重减弱动态设置（由 ConfettiSystem 检查）
func (s *CardScene) SpawnConfetti() {
	spawned := s.confetti.SpawnBurst(0, -40, config.GameWindowWidth, 30, s.reducedMotion)
	if spawned > 0 {
		log.Printf("[CardScene] confetti burst: %d particles", spawned)
	}
}

// pollPhoto 非阻塞地检查主照片解码结果
func (s *CardScene) pollPhoto() {
	if s.photoCh == nil {
		return
	}
	select {
	case res := <-s.photoCh:
		s.photoCh = nil
		if res.Err != nil {
			// 图片失败静默降级：占位块留在原处
			log.Printf("[CardScene] Warning: photo %s failed: %v", res.Path, res.Err)
			return
		}
		s.photoDecoded = res.Img
		s.fade.markLoaded(s.elapsed)
	default:
	}
}

// pollGallery 非阻塞地收取相册图片解码结果
func (s *CardScene) pollGallery() {
	for _, cell := range s.gallery {
		if cell.ch == nil {
			continue
		}
		select {
		case res := <-cell.ch:
			cell.ch = nil
			if res.Err != nil {
				cell.fail = true
				log.Printf("[CardScene] Warning: gallery image %s failed: %v", res.Path, res.Err)
				continue
			}
			cell.decoded = res.Img
		default:
		}
	}
}

// crossfade 交叉淡化的纯时间状态
//
// 全幅图解码完成（markLoaded）后开始淡入，fadeIn 秒达到不透明；
// 占位块在淡入开始 lag 秒后才开始淡出，避免两层同时半透明时
// 露出背景
type crossfade struct {
	fadeIn   float64 // 全幅图淡入时长（秒）
	lag      float64 // 占位块延迟淡出（秒）
	loadedAt float64 // 全幅图就绪时刻，负值表示未就绪
}

func (c *crossfade) markLoaded(elapsed float64) {
	if c.loadedAt < 0 {
		c.loadedAt = elapsed
	}
}

// alphas 返回当前时刻全幅图与占位块的不透明度
func (c *crossfade) alphas(elapsed float64) (full, placeholder float64) {
	if c.loadedAt < 0 {
		return 0, 1
	}
	t := elapsed - c.loadedAt
	full = clamp01(t / c.fadeIn)
	placeholder = 1 - clamp01((t-c.lag)/c.fadeIn)
	return full, placeholder
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ game.CardView = (*CardScene)(nil)

package scenes

import (
	"log"
	"strings"

	"github.com/gonewx/greeting/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// LoadingScene 在首帧预载资源组，下一帧通知编排层切换场景
//
// 加载在游戏循环线程上同步完成（资源很小，一帧以内）。
// 预载失败不阻止进入：缺失的资源由各场景自行降级。
type LoadingScene struct {
	resources *game.ResourceManager
	group     string
	onReady   func()

	elapsed float64
	loaded  bool
	fired   bool
}

// NewLoadingScene 创建加载场景
// onReady 在资源组预载结束后的下一次 Update 中被调用一次
func NewLoadingScene(rm *game.ResourceManager, group string, onReady func()) *LoadingScene {
	return &LoadingScene{
		resources: rm,
		group:     group,
		onReady:   onReady,
	}
}

// Update 推进加载流程
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	if !s.loaded {
		s.loaded = true
		if err := s.resources.LoadResourceGroup(s.group); err != nil {
			log.Printf("[LoadingScene] Warning: preload of group %s incomplete: %v", s.group, err)
		}
		// 先画一帧加载提示，下一帧再切换
		return
	}

	if !s.fired {
		s.fired = true
		if s.onReady != nil {
			s.onReady()
		}
	}
}

// Draw 绘制加载提示
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	dots := strings.Repeat(".", int(s.elapsed*2)%4)
	ebitenutil.DebugPrintAt(screen, "加载中"+dots, 440, 310)
}

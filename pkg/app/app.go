// Package app 提供贺卡应用的核心包装器
//
// 该包把初始化与事件接线逻辑从 main 包提取出来：探测设备能力、
// 加载内容与配置、选择场景变体、组装状态机，并把窗口/输入事件
// 翻译成场景生命周期调用。
package app

import (
	"image/color"
	"io"
	"log"
	"time"

	"github.com/gonewx/greeting/pkg/capability"
	"github.com/gonewx/greeting/pkg/clock"
	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/content"
	"github.com/gonewx/greeting/pkg/game"
	"github.com/gonewx/greeting/pkg/interaction"
	"github.com/gonewx/greeting/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ContentPath 内容文档路径（文件路径或 http(s) URL）
	ContentPath string
	// ForceFallback 无视能力探测结果，强制使用静态场景
	ForceFallback bool
	// Fullscreen 启动时进入全屏
	Fullscreen bool
}

// cardScene 是两种场景变体共同的输入面
type cardScene interface {
	game.CardScene
	HandleClick(x, y float64) bool
	ActivateFocused() bool
}

// App 是贺卡应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scheduler    *clock.Scheduler
	machine      *interaction.Machine
	audioManager *game.AudioManager
	settings     *game.SettingsManager
	card         cardScene

	verbose   bool
	minimized bool
	lastW     int
	lastH     int
	shutdown  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// sceneEffects 把状态机副作用接到场景变体与音频管理器上
//
// 可见性与焦点类副作用直接转发给当前场景；StartMusic 是整个
// 应用唯一允许启动播放的入口。
type sceneEffects struct {
	view  game.CardView
	audio *game.AudioManager
	music string
}

func (e *sceneEffects) HideTag()           { e.view.HideTag() }
func (e *sceneEffects) RevealMessage()     { e.view.RevealMessage() }
func (e *sceneEffects) FocusMessage()      { e.view.FocusMessage() }
func (e *sceneEffects) RevealPrompt()      { e.view.RevealPrompt() }
func (e *sceneEffects) RevealFlame()       { e.view.RevealFlame() }
func (e *sceneEffects) FocusFlame()        { e.view.FocusFlame() }
func (e *sceneEffects) HideFlame()         { e.view.HideFlame() }
func (e *sceneEffects) ShowAudioControls() { e.view.ShowAudioControls() }
func (e *sceneEffects) RevealGallery()     { e.view.RevealGallery() }
func (e *sceneEffects) RevealPhoto()       { e.view.RevealPhoto() }
func (e *sceneEffects) SpawnConfetti()     { e.view.SpawnConfetti() }
func (e *sceneEffects) StartMusic()        { e.audio.StartMusic(e.music) }

var _ interaction.Effects = (*sceneEffects)(nil)

// NewApp 创建并初始化贺卡应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 内容文档加载失败是唯一致命的失败：应用仍会启动，但只显示
// 错误场景。其余失败（设置存储、资源清单、布局配置、增强场景
// 初始化）都有降级路径。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 设置存储：打不开时进入内存降级模式
	gdataManager, err := gdata.Open(gdata.Config{AppName: "greeting"})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, err
	}

	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig("data/config/resources.yaml"); err != nil {
		// 字体与音乐按资源逐个降级，清单缺失不阻止启动
		log.Printf("[App] Warning: resource manifest unavailable: %v", err)
	}

	sceneManager := game.NewSceneManager()
	app := &App{
		sceneManager: sceneManager,
		scheduler:    clock.NewScheduler(clock.NewTimeProvider()),
		settings:     settings,
		verbose:      cfg.Verbose,
	}

	// 内容文档是贺卡的全部意义所在，加载失败直接进错误场景
	doc, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Printf("[App] content load failed: %v", err)
		sceneManager.SwitchTo(scenes.NewErrorScene(cfg.ContentPath))
		return app, nil
	}
	log.Printf("[App] content loaded: %q (%d gallery images)", doc.Title, len(doc.Gallery))

	layout, err := config.LoadLayoutConfig("data/config/layout.yaml")
	if err != nil {
		log.Printf("[App] Warning: layout config unavailable, using defaults: %v", err)
		layout = config.DefaultLayoutConfig()
	}

	app.audioManager = game.NewAudioManager(resourceManager, settings)

	// 能力探测只在启动时做一次，不持久化
	profile := capability.Probe()
	enhanced := capability.Decide(profile)
	if cfg.ForceFallback {
		enhanced = false
		log.Printf("[App] fallback forced by flag")
	}
	log.Printf("[App] capability: graphics=%v memory=%.1fGiB viewport=%d -> enhanced=%v",
		profile.GraphicsAvailable, profile.MemoryGiB, profile.ViewportWidth, enhanced)

	// 两种场景变体发出同样的两个语义事件
	callbacks := scenes.Callbacks{
		OnTagActivated:   func() { app.machine.TagActivated() },
		OnFlameActivated: func() { app.machine.FlameActivated() },
	}

	var card cardScene
	var view game.CardView
	if enhanced {
		cs, err := scenes.NewCardScene(resourceManager, layout, doc, callbacks, settings.GetSettings().ReducedMotion)
		if err != nil {
			log.Printf("[App] enhanced scene init failed, falling back: %v", err)
			enhanced = false
		} else {
			card, view = cs, cs
		}
	}
	if !enhanced {
		fs := scenes.NewFallbackScene(doc, callbacks)
		card, view = fs, fs
	}
	app.card = card

	effects := &sceneEffects{view: view, audio: app.audioManager, music: doc.Music}
	app.machine = interaction.NewMachine(effects, app.scheduler,
		time.Duration(layout.Reveal.FlameDelayMs)*time.Millisecond)

	// 先进加载场景预载资源组，完成后切到贺卡场景
	loading := scenes.NewLoadingScene(resourceManager, "card", func() {
		sceneManager.SwitchTo(card)
		card.Start()
	})
	sceneManager.SwitchTo(loading)

	if cfg.Fullscreen || settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] initialized")
	return app, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.scheduler.Update()
	a.handleWindowEvents()
	a.handleInput()

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleWindowEvents 处理最小化、还原与窗口尺寸变化
func (a *App) handleWindowEvents() {
	minimized := ebiten.IsWindowMinimized()
	if minimized != a.minimized {
		a.minimized = minimized
		if a.card != nil {
			if minimized {
				a.card.Pause()
				a.audioManager.PauseMusic()
				log.Printf("[App] window minimized, scene paused")
			} else {
				a.card.Resume()
				a.audioManager.ResumeMusic()
				log.Printf("[App] window restored, scene resumed")
			}
		}
	}

	w, h := ebiten.WindowSize()
	if w != a.lastW || h != a.lastH {
		a.lastW, a.lastH = w, h
		if a.card != nil && w > 0 && h > 0 {
			a.card.HandleResize(w, h)
		}
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}
}

// handleInput 处理指针与键盘输入
func (a *App) handleInput() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	// M 切换静音并持久化
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && a.audioManager != nil {
		muted := a.audioManager.ToggleMute()
		a.settings.SetMuted(muted)
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
	}

	if a.card == nil || a.minimized {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.card.HandleClick(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.card.HandleClick(float64(x), float64(y))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if fs, ok := a.card.(*scenes.FallbackScene); ok {
			fs.FocusNext()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.card.ActivateFocused()
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 释放场景并保存设置，重复调用只生效一次
func (a *App) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	if a.card != nil {
		a.card.Dispose()
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings on shutdown: %v", err)
	}
	log.Printf("[App] shutdown complete")
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

package main

import (
	"flag"
	"log"

	"github.com/gonewx/greeting/pkg/app"
	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	contentPath := flag.String("content", "data/content.json", "内容文档路径（文件或 http(s) URL）")
	forceFallback := flag.Bool("force-fallback", false, "强制使用静态场景（调试用）")
	fullscreen := flag.Bool("fullscreen", false, "启动时进入全屏")
	flag.Parse()

	// 初始化嵌入资源
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	greetingApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		ContentPath:   *contentPath,
		ForceFallback: *forceFallback,
		Fullscreen:    *fullscreen,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("生日贺卡")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(greetingApp); err != nil {
		log.Fatal(err)
	}

	greetingApp.Shutdown()
}

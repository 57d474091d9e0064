// verify_confetti 无头模拟一次五彩纸屑爆发
// 按固定步长推进系统并打印存活数量，验证延迟、下落与到期清理
package main

import (
	"fmt"
	"log"

	"github.com/gonewx/greeting/pkg/config"
	"github.com/gonewx/greeting/pkg/ecs"
	"github.com/gonewx/greeting/pkg/systems"
)

func main() {
	fmt.Println("=== 五彩纸屑爆发模拟 ===")

	cfg := config.DefaultLayoutConfig().Confetti
	em := ecs.NewEntityManager()
	sys := systems.NewConfettiSystem(em, cfg)

	spawned := sys.SpawnBurst(0, -40, config.GameWindowWidth, 30, false)
	fmt.Printf("生成粒子: %d（配置 count=%d）\n\n", spawned, cfg.Count)
	if spawned != cfg.Count {
		log.Fatalf("生成数量与配置不符: got %d, want %d", spawned, cfg.Count)
	}

	// 60fps 推进到寿命上限之后，期间每秒打印一次存活数
	const dt = 1.0 / 60.0
	steps := int((cfg.LifetimeSec + 1.0) / dt)
	for i := 1; i <= steps; i++ {
		sys.Update(dt)
		if i%60 == 0 {
			fmt.Printf("t=%2ds  存活: %d\n", i/60, sys.ActiveCount())
		}
	}

	if remaining := sys.ActiveCount(); remaining != 0 {
		log.Fatalf("寿命到期后仍有 %d 个粒子存活", remaining)
	}
	fmt.Println("\n全部粒子按期清理，模拟通过")
}

// capcheck 打印当前设备的能力画像与场景变体决策
// 用于在目标机器上排查为什么没有进入增强场景
package main

import (
	"fmt"

	"github.com/gonewx/greeting/pkg/capability"
)

func main() {
	fmt.Println("=== 设备能力检查 ===")

	profile := capability.Probe()
	fmt.Printf("图形环境可用: %v\n", profile.GraphicsAvailable)
	if profile.MemoryGiB == 0 {
		fmt.Println("设备内存:     未上报（按满足处理）")
	} else {
		fmt.Printf("设备内存:     %.1f GiB\n", profile.MemoryGiB)
	}
	fmt.Printf("视口宽度:     %d px\n", profile.ViewportWidth)

	if capability.Decide(profile) {
		fmt.Println("\n决策: 增强场景")
	} else {
		fmt.Println("\n决策: 静态回退场景")
	}
}

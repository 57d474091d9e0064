// Package capability 决定使用增强场景还是静态回退场景
//
// 探测（Probe）读取环境信号，决策（Decide）是其上的纯函数，
// 两者分离以便决策逻辑可以在无图形环境下测试。
// 策略是保守的：宁可得到一个正确的降级体验，
// 也不要一个残缺的增强体验。
package capability

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/greeting/pkg/config"
)

// Profile 是启动时采集一次的环境能力快照，不持久化
type Profile struct {
	// GraphicsAvailable 能否创建硬件加速渲染表面
	GraphicsAvailable bool
	// MemoryGiB 设备内存（GiB)，0 表示未上报
	MemoryGiB float64
	// ViewportWidth 视口宽度（逻辑像素）
	ViewportWidth int
}

// Decide 判断是否选用增强场景
//
// 纯函数。全部条件满足才返回 true：
//   - 图形上下文可用
//   - 内存未上报，或 >= 2 GiB（未上报按满足处理，fail open）
//   - 视口宽度 >= 420 逻辑像素
func Decide(p Profile) bool {
	if !p.GraphicsAvailable {
		return false
	}
	if p.MemoryGiB != 0 && p.MemoryGiB < config.MinMemoryGiB {
		return false
	}
	if p.ViewportWidth < config.MinViewportWidth {
		return false
	}
	return true
}

// readMemoryGiB 从 /proc/meminfo 读取物理内存总量
// 非 Linux 或读取失败返回 0（未上报）
func readMemoryGiB() float64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}

package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/gonewx/greeting/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 窗口逻辑尺寸
const (
	GameWindowWidth  = 960
	GameWindowHeight = 640
)

// 增强场景选择策略的阈值（任一不满足即回退到静态场景）
const (
	// MinMemoryGiB 设备内存下限（GiB），未上报内存的设备视为满足
	MinMemoryGiB = 2.0
	// MinViewportWidth 视口宽度下限（逻辑像素）
	MinViewportWidth = 420
)

// LayoutConfig 定义场景布局与主题
// 从 data/config/layout.yaml 加载，缺失字段使用默认值
type LayoutConfig struct {
	Cake     CakeLayout     `yaml:"cake"`
	Paper    PaperLayout    `yaml:"paper"`
	Flame    FlameLayout    `yaml:"flame"`
	Reveal   RevealTiming   `yaml:"reveal"`
	Confetti ConfettiConfig `yaml:"confetti"`
	Photo    PhotoTiming    `yaml:"photo"`
}

// CakeLayout 蛋糕几何参数（自下而上逐层收窄）
type CakeLayout struct {
	CenterX     float64   `yaml:"centerX"`
	BaseY       float64   `yaml:"baseY"` // 底层下沿 Y 坐标
	TierWidths  []float64 `yaml:"tierWidths"`
	TierHeights []float64 `yaml:"tierHeights"`
}

// PaperLayout 纸签几何与动画参数
type PaperLayout struct {
	X            float64 `yaml:"x"` // 纸签中心
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Tilt         float64 `yaml:"tilt"`         // 倾斜角（度）
	FlipDuration float64 `yaml:"flipDuration"` // 激活后翻转淡出时长（秒）
}

// FlameLayout 火焰几何与动画参数
type FlameLayout struct {
	X            float64 `yaml:"x"` // 火焰中心
	Y            float64 `yaml:"y"`
	Radius       float64 `yaml:"radius"`
	BlowDuration float64 `yaml:"blowDuration"` // 激活后收缩淡出时长（秒）
}

// RevealTiming 消息揭示后的延迟节奏
type RevealTiming struct {
	// FlameDelayMs 纸签激活后到火焰控件出现的延迟（毫秒）
	FlameDelayMs int `yaml:"flameDelayMs"`
}

// ConfettiConfig 五彩纸屑爆发参数
type ConfettiConfig struct {
	Count       int      `yaml:"count"`
	LifetimeSec float64  `yaml:"lifetimeSec"` // 粒子自移除时限（秒）
	MinDelay    float64  `yaml:"minDelay"`    // 随机起始延迟范围（秒）
	MaxDelay    float64  `yaml:"maxDelay"`
	MinDuration float64  `yaml:"minDuration"` // 随机下落时长范围（秒）
	MaxDuration float64  `yaml:"maxDuration"`
	Palette     []string `yaml:"palette"` // "#rrggbb" 颜色表
}

// PhotoTiming 照片交叉淡化节奏
type PhotoTiming struct {
	FadeInDuration   float64 `yaml:"fadeInDuration"`   // 原图淡入时长（秒）
	PlaceholderLagMs int     `yaml:"placeholderLagMs"` // 占位图开始淡出的滞后（毫秒）
}

// DefaultLayoutConfig 返回内置默认布局
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		Cake: CakeLayout{
			CenterX:     480,
			BaseY:       470,
			TierWidths:  []float64{360, 280, 200},
			TierHeights: []float64{90, 80, 70},
		},
		Paper: PaperLayout{
			X: 720, Y: 210, Width: 140, Height: 90,
			Tilt:         -8,
			FlipDuration: 0.8,
		},
		Flame: FlameLayout{
			X: 480, Y: 180, Radius: 14,
			BlowDuration: 0.5,
		},
		Reveal: RevealTiming{FlameDelayMs: 2000},
		Confetti: ConfettiConfig{
			Count:       50,
			LifetimeSec: 5.0,
			MinDelay:    0.0,
			MaxDelay:    1.5,
			MinDuration: 2.0,
			MaxDuration: 4.0,
			Palette: []string{
				"#ff6b6b", "#ffd93d", "#6bcb77", "#4d96ff", "#c780fa", "#ff9f45",
			},
		},
		Photo: PhotoTiming{
			FadeInDuration:   1.0,
			PlaceholderLagMs: 200,
		},
	}
}

// LoadLayoutConfig 从 YAML 文件加载布局配置
//
// 优先从磁盘读取，失败后回退到嵌入资源。文件中未出现的字段
// 保留默认值，保证旧配置文件向前兼容。
func LoadLayoutConfig(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		data, err = embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout config %s: %w", path, err)
		}
	}

	cfg := DefaultLayoutConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse layout config %s: %w", path, err)
	}

	return cfg, nil
}

// PaperHitbox 计算纸签的命中四边形
// 倾斜角较小，轴对齐矩形近似即可满足命中精度
func (c *LayoutConfig) PaperHitbox() Hitbox {
	p := c.Paper
	return RectHitbox(p.X-p.Width/2, p.Y-p.Height/2, p.Width, p.Height)
}

// FlameHitbox 计算火焰的命中四边形
// 命中区域比可见火焰略大，手指点击更容易命中
func (c *LayoutConfig) FlameHitbox() Hitbox {
	f := c.Flame
	pad := f.Radius * 2
	return RectHitbox(f.X-pad, f.Y-pad, pad*2, pad*2)
}

// ParseHexColor 解析 "#rrggbb" 格式的颜色
// 解析失败返回白色和错误，调用方可选择忽略错误继续
func ParseHexColor(s string) (color.RGBA, error) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if len(s) != 7 || s[0] != '#' {
		return white, fmt.Errorf("invalid hex color %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return white, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// PaletteColors 将调色板解析为 RGBA 列表，非法项被跳过
// 全部非法时返回单一白色，保证五彩纸屑始终有颜色可用
func (c *ConfettiConfig) PaletteColors() []color.RGBA {
	colors := make([]color.RGBA, 0, len(c.Palette))
	for _, s := range c.Palette {
		rgba, err := ParseHexColor(s)
		if err != nil {
			continue
		}
		colors = append(colors, rgba)
	}
	if len(colors) == 0 {
		colors = append(colors, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return colors
}

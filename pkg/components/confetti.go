package components

import (
	"image/color"

	"github.com/gonewx/greeting/internal/anim"
)

// ConfettiComponent 是单片五彩纸屑的运行时状态
//
// 位置由独立的 PositionComponent 管理；本组件保存下落运动、
// 旋转和淡出曲线。Delay 期间粒子不可见也不运动，模拟爆发里
// 不同纸屑先后飘落的效果。
type ConfettiComponent struct {
	// 下落运动
	VelocityX float64 // 水平漂移速度（像素/秒）
	VelocityY float64 // 下落速度（像素/秒）

	// 旋转（度）
	Rotation      float64
	RotationSpeed float64 // 度/秒

	// 外观
	Color color.RGBA
	Size  float64 // 纸屑边长（像素）
	Alpha float64 // 当前透明度 0-1

	// 节奏
	Delay    float64 // 开始运动前的延迟（秒）
	Duration float64 // 下落动画时长（秒），之后纸屑静止等待过期
	Age      float64 // 自生成以来的时间（秒），含延迟

	// 透明度随下落进度变化的曲线（归一化时间 0-1）
	AlphaKeyframes []anim.Keyframe
	AlphaInterp    string
}

// Package anim 提供关键帧插值工具
//
// 场景动画（纸签翻转淡出、火焰熄灭、五彩纸屑生命周期）都用
// 归一化时间 (0-1) 上的关键帧曲线描述，由各系统每帧求值。
package anim

import (
	"math"
	"math/rand"
)

// Keyframe 表示一个关键帧：归一化时间点及其对应的值
type Keyframe struct {
	Time  float64 // 归一化时间 (0-1)
	Value float64
}

// 插值模式
const (
	InterpLinear  = "Linear"
	InterpEaseIn  = "EaseIn"
	InterpEaseOut = "EaseOut"
	InterpSmooth  = "Smooth" // cubic smoothstep
)

// Evaluate 在关键帧序列上求 t 时刻的插值结果
//
// t 会被钳制到 [0, 1]。t 位于首个关键帧之前返回首值，
// 位于末个关键帧之后返回末值。空序列返回 0。
func Evaluate(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration
			return k0.Value + ease(ratio, interpolation)*(k1.Value-k0.Value)
		}
	}

	return keyframes[len(keyframes)-1].Value
}

// ease 将线性比率映射为对应插值模式下的比率
func ease(ratio float64, interpolation string) float64 {
	switch interpolation {
	case InterpEaseIn:
		return ratio * ratio
	case InterpEaseOut:
		return 1 - (1-ratio)*(1-ratio)
	case InterpSmooth:
		return ratio * ratio * (3 - 2*ratio)
	default:
		// 未知模式按线性处理
		return ratio
	}
}

// RandomInRange 返回 [min, max] 区间内的随机数
// min >= max 时直接返回 min
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}

package anim

import (
	"math"
	"testing"
)

// TestEvaluateEmpty 测试空关键帧序列返回 0
func TestEvaluateEmpty(t *testing.T) {
	if got := Evaluate(nil, 0.5, InterpLinear); got != 0 {
		t.Errorf("Evaluate(nil): got %v, want 0", got)
	}
}

// TestEvaluateSingle 测试单关键帧始终返回其值
func TestEvaluateSingle(t *testing.T) {
	kf := []Keyframe{{Time: 0.5, Value: 3.0}}
	for _, tt := range []float64{0, 0.3, 0.5, 1.0} {
		if got := Evaluate(kf, tt, InterpLinear); got != 3.0 {
			t.Errorf("Evaluate(single, t=%v): got %v, want 3.0", tt, got)
		}
	}
}

// TestEvaluateLinear 测试线性插值
func TestEvaluateLinear(t *testing.T) {
	kf := []Keyframe{{Time: 0, Value: 1.0}, {Time: 1, Value: 0.0}}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 1.0},
		{0.25, 0.75},
		{0.5, 0.5},
		{1.0, 0.0},
		{1.5, 0.0},  // 钳制到 1
		{-0.5, 1.0}, // 钳制到 0
	}

	for _, tt := range tests {
		got := Evaluate(kf, tt.t, InterpLinear)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Evaluate(t=%v): got %v, want %v", tt.t, got, tt.want)
		}
	}
}

// TestEvaluateBeforeFirstKeyframe 测试 t 在首关键帧之前返回首值
func TestEvaluateBeforeFirstKeyframe(t *testing.T) {
	kf := []Keyframe{{Time: 0.4, Value: 2.0}, {Time: 1, Value: 4.0}}
	if got := Evaluate(kf, 0.1, InterpLinear); got != 2.0 {
		t.Errorf("Evaluate(before first): got %v, want 2.0", got)
	}
}

// TestEvaluateEaseModes 测试非线性插值模式的端点和中点行为
func TestEvaluateEaseModes(t *testing.T) {
	kf := []Keyframe{{Time: 0, Value: 0.0}, {Time: 1, Value: 1.0}}

	tests := []struct {
		mode string
		mid  float64
	}{
		{InterpEaseIn, 0.25},
		{InterpEaseOut, 0.75},
		{InterpSmooth, 0.5},
	}

	for _, tt := range tests {
		// 端点不受插值模式影响
		if got := Evaluate(kf, 0, tt.mode); got != 0 {
			t.Errorf("%s at t=0: got %v, want 0", tt.mode, got)
		}
		if got := Evaluate(kf, 1, tt.mode); got != 1 {
			t.Errorf("%s at t=1: got %v, want 1", tt.mode, got)
		}
		got := Evaluate(kf, 0.5, tt.mode)
		if math.Abs(got-tt.mid) > 1e-9 {
			t.Errorf("%s at t=0.5: got %v, want %v", tt.mode, got, tt.mid)
		}
	}
}

// TestRandomInRange 测试随机数落在区间内以及退化区间
func TestRandomInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomInRange(2.0, 4.0)
		if v < 2.0 || v > 4.0 {
			t.Fatalf("RandomInRange(2, 4): got %v, out of range", v)
		}
	}

	if got := RandomInRange(5.0, 5.0); got != 5.0 {
		t.Errorf("RandomInRange(5, 5): got %v, want 5", got)
	}
	if got := RandomInRange(6.0, 1.0); got != 6.0 {
		t.Errorf("RandomInRange(6, 1): got %v, want 6", got)
	}
}

package utils

import (
	"math"
	"testing"
)

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.0625},
		{"中点", 0.5, 0.5},
		{"四分之三", 0.75, 0.9375},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(40, 140, 0.5); got != 90 {
		t.Errorf("Lerp(40, 140, 0.5) = %v, 期望 90", got)
	}
	if got := Lerp(40, 140, 0); got != 40 {
		t.Errorf("Lerp(40, 140, 0) = %v, 期望 40", got)
	}
}

func TestPulse(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  float64
		period   float64
		expected float64
	}{
		{"周期开始", 0, 1, 0},
		{"四分之一周期", 0.25, 1, 0.5},
		{"半周期峰值", 0.5, 1, 1},
		{"下一个周期", 1.5, 1, 1},
		{"无周期", 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Pulse(tt.elapsed, tt.period)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Pulse(%v, %v) = %v, 期望 %v", tt.elapsed, tt.period, result, tt.expected)
			}
		})
	}

	for e := 0.0; e < 3; e += 0.07 {
		if v := Pulse(e, 0.8); v < 0 || v > 1 {
			t.Errorf("Pulse(%v, 0.8) = %v, out of [0, 1]", e, v)
		}
	}
}

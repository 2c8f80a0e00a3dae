package utils

import "math"

// EaseInOutCubic 三次方缓入缓出，t ∈ [0, 1]
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Pulse 周期脉冲：从 0 缓动到 1 再缓动回 0，周期为 period 秒
// 中奖高亮的透明度随它变化。period <= 0 时恒为 1
func Pulse(elapsed, period float64) float64 {
	if period <= 0 {
		return 1
	}
	phase := math.Mod(elapsed, period) / period
	if phase < 0 {
		phase += 1
	}
	// 三角波：前半周期上升，后半周期下降
	tri := 1 - math.Abs(2*phase-1)
	return EaseInOutCubic(tri)
}

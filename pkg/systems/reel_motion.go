package systems

import (
	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/config"
)

// snapTolerance 回弹对齐的容差（像素）
// 剩余距离小于该值时直接对齐到 SnapSpace，避免比例缓动无限逼近
const snapTolerance = 0.5

// SpinReel 让静止的转轮开始旋转
//
// 只有 Idle 状态可以开始旋转；其他状态调用返回 false 且不做任何修改。
//
// 参数：
//   - r: 转轮组件
//   - m: 运动参数
//
// 返回：
//   - bool: 是否成功开始旋转
func SpinReel(r *components.ReelComponent, m config.ReelMotion) bool {
	if r.State != components.MotionIdle {
		return false
	}
	r.State = components.MotionSpinning
	r.Velocity = m.SpinVelocity
	r.StopTimer = 0
	r.SpinElapsed = 0
	return true
}

// StopReel 请求软停止：Spinning → SoftStopping
//
// 非 Spinning 状态调用无效果，返回 false
func StopReel(r *components.ReelComponent) bool {
	if r.State != components.MotionSpinning {
		return false
	}
	r.State = components.MotionSoftStopping
	r.StopTimer = 0
	return true
}

// ForceStopReel 强制停止：跳过软停止，直接进入回弹对齐
//
// Spinning 和 SoftStopping 状态下生效，StopTimer 归零，速度清零，
// 返回 true；Idle 和 SnappingBack 状态下无效果，返回 false。
func ForceStopReel(r *components.ReelComponent) bool {
	switch r.State {
	case components.MotionSpinning, components.MotionSoftStopping:
		r.State = components.MotionSnappingBack
		r.StopTimer = 0
		r.Velocity = 0
		return true
	default:
		return false
	}
}

// UpdateReel 推进转轮状态机一帧
//
// 执行顺序：
//  1. 根据当前状态更新计时器和速度（可能发生状态切换）
//  2. 所有槽位偏移加上速度
//  3. 检查一次循环滚动
//
// 参数：
//   - r: 转轮组件
//   - dt: 帧间隔（秒），负值视为无效帧直接忽略
//   - m: 运动参数
//
// 返回：
//   - bool: 本帧是否从 SnappingBack 回到 Idle（"转轮已停止"信号）
func UpdateReel(r *components.ReelComponent, dt float64, m config.ReelMotion) bool {
	if dt < 0 || r.State == components.MotionIdle || len(r.Slots) == 0 {
		return false
	}

	stopped := false
	switch r.State {
	case components.MotionSpinning:
		r.SpinElapsed += dt

	case components.MotionSoftStopping:
		r.StopTimer += dt
		if r.StopTimer >= m.StopDuration {
			r.Velocity = 0
			r.State = components.MotionSnappingBack
		} else if dt > 0 {
			r.Velocity -= m.SpinVelocity * dt / m.StopDuration
			if r.Velocity < 0 {
				r.Velocity = 0
			}
		}

	case components.MotionSnappingBack:
		stopped = snapReel(r, m)
	}

	if r.Velocity != 0 {
		for i := range r.Slots {
			r.Slots[i].OffsetY += r.Velocity
		}
	}
	wrapReel(r, m.Pitch())

	return stopped
}

// snapReel 回弹阶段的速度计算
// 返回 true 表示已对齐并进入 Idle
func snapReel(r *components.ReelComponent, m config.ReelMotion) bool {
	residual := r.Slots[0].OffsetY - m.SnapSpace
	if residual > snapTolerance {
		easing := m.SnapEasing
		if easing < 1 {
			easing = 1
		}
		v := -residual / easing
		// SnapVelocity 为 0 表示不限速
		if m.SnapVelocity < 0 && v < m.SnapVelocity {
			v = m.SnapVelocity
		}
		r.Velocity = v
		return false
	}

	if residual > 0 {
		for i := range r.Slots {
			r.Slots[i].OffsetY -= residual
		}
	}
	r.Velocity = 0
	r.State = components.MotionIdle
	return true
}

// wrapReel 循环滚动：顶部槽位偏移达到一个 pitch 时，
// 把最后一个槽位移到最前面，偏移为 顶部偏移 - pitch
func wrapReel(r *components.ReelComponent, pitch float64) {
	n := len(r.Slots)
	if n < 2 || r.Slots[0].OffsetY < pitch {
		return
	}

	last := r.Slots[n-1]
	last.OffsetY = r.Slots[0].OffsetY - pitch
	copy(r.Slots[1:], r.Slots[:n-1])
	r.Slots[0] = last
}

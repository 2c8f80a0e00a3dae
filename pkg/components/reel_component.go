package components

import (
	"errors"
	"fmt"

	"github.com/decker502/sloth/pkg/types"
)

// ErrRowOutOfRange 访问的可见行超出范围
var ErrRowOutOfRange = errors.New("row out of range")

// MotionState 转轮运动状态
//
// 状态流转（唯一合法路径）：
//
//	Idle → Spinning → SoftStopping → SnappingBack → Idle
//
// 强制停止可以从 Spinning / SoftStopping 直接进入 SnappingBack。
// SoftStopping 与 SnappingBack 都属于"仍在转动"的子阶段。
type MotionState int

const (
	// MotionIdle 静止
	MotionIdle MotionState = iota
	// MotionSpinning 匀速旋转
	MotionSpinning
	// MotionSoftStopping 线性减速
	MotionSoftStopping
	// MotionSnappingBack 回弹对齐
	MotionSnappingBack
)

// String 返回运动状态名称
func (s MotionState) String() string {
	switch s {
	case MotionIdle:
		return "Idle"
	case MotionSpinning:
		return "Spinning"
	case MotionSoftStopping:
		return "SoftStopping"
	case MotionSnappingBack:
		return "SnappingBack"
	default:
		return "Unknown"
	}
}

// SymbolSlot 转轮上的一个符号槽位
type SymbolSlot struct {
	Symbol  types.Symbol
	OffsetY float64 // 相对转轮窗口顶部的垂直偏移（像素）
}

// ReelComponent 转轮组件
//
// 一个固定长度的循环符号序列，配合运动状态机实现纵向滚动。
// Slots 的顺序即纵向堆叠顺序：索引 0 是最上方（可见或刚好在上方）的槽位。
// 滚动只会旋转序列，长度和符号集合保持不变。
type ReelComponent struct {
	// Column 转轮所在列（从左到右，0 开始）
	Column int

	// Slots 符号槽位，长度固定为 ReelLength
	Slots []SymbolSlot

	// VisibleRows 可见行数
	VisibleRows int

	// Velocity 当前速度（像素/帧），只由状态机修改
	// 静止状态下恒为 0
	Velocity float64

	// State 当前运动状态
	State MotionState

	// StopTimer 软停止计时器（秒）
	StopTimer float64

	// SpinElapsed 本次旋转已持续时间（秒）
	SpinElapsed float64

	// SpinDuration 旋转目标时长（秒），到时后由转轮组发起软停止
	SpinDuration float64
}

// NewReelComponent 创建转轮组件
// 槽位按 pitch 从 0 开始依次向下排列
//
// 参数：
//   - column: 转轮所在列
//   - strip: 初始符号序列（长度即转轮长度）
//   - visibleRows: 可见行数
//   - pitch: 相邻槽位间距（格子高度 + 间距）
//   - spinDuration: 旋转目标时长（秒）
func NewReelComponent(column int, strip []types.Symbol, visibleRows int, pitch, spinDuration float64) *ReelComponent {
	slots := make([]SymbolSlot, len(strip))
	for i, sym := range strip {
		slots[i] = SymbolSlot{Symbol: sym, OffsetY: float64(i) * pitch}
	}
	return &ReelComponent{
		Column:       column,
		Slots:        slots,
		VisibleRows:  visibleRows,
		State:        MotionIdle,
		SpinDuration: spinDuration,
	}
}

// Len 返回槽位数量
func (r *ReelComponent) Len() int {
	return len(r.Slots)
}

// IsIdle 是否静止
func (r *ReelComponent) IsIdle() bool {
	return r.State == MotionIdle
}

// IsMoving 是否处于任意转动阶段（非静止）
func (r *ReelComponent) IsMoving() bool {
	return r.State != MotionIdle
}

// IsStopping 是否处于软停止阶段
func (r *ReelComponent) IsStopping() bool {
	return r.State == MotionSoftStopping
}

// IsSnappingBack 是否处于回弹对齐阶段
func (r *ReelComponent) IsSnappingBack() bool {
	return r.State == MotionSnappingBack
}

// TopOffset 返回最上方槽位的偏移量
func (r *ReelComponent) TopOffset() float64 {
	if len(r.Slots) == 0 {
		return 0
	}
	return r.Slots[0].OffsetY
}

// SymbolAt 返回第 row 个可见行上的符号（row 0 为最上方可见行）
//
// 越界访问返回 ErrRowOutOfRange，不会静默截断
func (r *ReelComponent) SymbolAt(row int) (types.Symbol, error) {
	if row < 0 || row >= r.VisibleRows || row >= len(r.Slots) {
		return types.NoSymbol, fmt.Errorf("%w: reel %d row %d (visible rows %d)",
			ErrRowOutOfRange, r.Column, row, r.VisibleRows)
	}
	return r.Slots[row].Symbol, nil
}

// Symbols 返回当前槽位符号序列的副本
func (r *ReelComponent) Symbols() []types.Symbol {
	out := make([]types.Symbol, len(r.Slots))
	for i, slot := range r.Slots {
		out[i] = slot.Symbol
	}
	return out
}

// VisibleSymbols 返回可见行上的符号副本
func (r *ReelComponent) VisibleSymbols() []types.Symbol {
	n := r.VisibleRows
	if n > len(r.Slots) {
		n = len(r.Slots)
	}
	out := make([]types.Symbol, n)
	for i := 0; i < n; i++ {
		out[i] = r.Slots[i].Symbol
	}
	return out
}

// SlotsSnapshot 返回槽位（符号、偏移）的副本，供渲染使用
func (r *ReelComponent) SlotsSnapshot() []SymbolSlot {
	out := make([]SymbolSlot, len(r.Slots))
	copy(out, r.Slots)
	return out
}

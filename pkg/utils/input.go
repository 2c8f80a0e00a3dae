// Package utils 提供演示程序的输入与平台工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 按键绑定
const (
	KeySpin            = ebiten.KeySpace
	KeyForceStop       = ebiten.KeyEnter
	KeyToggleQuickStop = ebiten.KeyQ
	KeyToggleGrid      = ebiten.KeyG
)

// SlotInput 一帧内的老虎机输入
// 所有字段都是"刚刚按下"语义，持续按住不会重复触发
type SlotInput struct {
	// Spin 旋转请求（空格、鼠标左键或触摸）
	Spin bool
	// ForceStop 强制停止请求（回车）
	ForceStop bool
	// ToggleQuickStop 切换快速停止
	ToggleQuickStop bool
	// ToggleGrid 切换网格文本显示
	ToggleGrid bool
}

// IsEmpty 本帧没有任何输入
func (in SlotInput) IsEmpty() bool {
	return !in.Spin && !in.ForceStop && !in.ToggleQuickStop && !in.ToggleGrid
}

// PollSlotInput 读取本帧的老虎机输入
func PollSlotInput() SlotInput {
	clicked, _, _ := IsJustTouchedOrClicked()
	return SlotInput{
		Spin:            clicked || inpututil.IsKeyJustPressed(KeySpin),
		ForceStop:       inpututil.IsKeyJustPressed(KeyForceStop),
		ToggleQuickStop: inpututil.IsKeyJustPressed(KeyToggleQuickStop),
		ToggleGrid:      inpututil.IsKeyJustPressed(KeyToggleGrid),
	}
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置，触摸优先
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

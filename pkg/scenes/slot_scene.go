// Package scenes 实现演示程序的场景
package scenes

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/game"
	"github.com/decker502/sloth/pkg/logger"
	"github.com/decker502/sloth/pkg/systems"
	"github.com/decker502/sloth/pkg/systems/render"
	"github.com/decker502/sloth/pkg/utils"
)

// SlotAction 一帧输入解析出的转轮操作
type SlotAction int

const (
	// ActionNone 无操作
	ActionNone SlotAction = iota
	// ActionSpin 开始旋转
	ActionSpin
	// ActionForceStop 强制停止
	ActionForceStop
)

// String 返回操作名称
func (a SlotAction) String() string {
	switch a {
	case ActionSpin:
		return "spin"
	case ActionForceStop:
		return "force-stop"
	default:
		return "none"
	}
}

// ResolveAction 把输入解析为转轮操作
//
// 旋转中再次按下旋转键等同于强制停止；静止时强制停止键无效
func ResolveAction(in utils.SlotInput, spinning bool) SlotAction {
	if spinning {
		if in.Spin || in.ForceStop {
			return ActionForceStop
		}
		return ActionNone
	}
	if in.Spin {
		return ActionSpin
	}
	return ActionNone
}

// 文字区域位置
const (
	gridTextY  = config.GameWindowHeight - 115
	statusY    = config.GameWindowHeight - 50
	hintY      = config.GameWindowHeight - 30
	textMargin = 20
)

var backgroundColor = color.RGBA{R: 10, G: 10, B: 16, A: 255}

// SlotScene 老虎机场景
//
// 每帧读取输入并驱动转轮组，渲染转轮、中奖高亮和状态文字。
// 场景只通过 ReelSetSystem 的公开方法访问转轮。
type SlotScene struct {
	reelSet  *systems.ReelSetSystem
	render   *render.ReelRenderSystem
	settings *game.SettingsManager
	logger   *zap.Logger

	// pollInput 读取本帧输入，测试中可替换
	pollInput func() utils.SlotInput

	status string
}

// NewSlotScene 创建老虎机场景
//
// 参数：
//   - reelSet: 转轮组
//   - rs: 转轮渲染系统，为 nil 时只绘制文字
//   - settings: 用户设置，为 nil 时使用不持久化的默认设置
//   - l: 日志器，可为 nil
func NewSlotScene(reelSet *systems.ReelSetSystem, rs *render.ReelRenderSystem, settings *game.SettingsManager, l *zap.Logger) *SlotScene {
	if settings == nil {
		settings = game.NewSettingsManager(nil, l)
	}
	s := &SlotScene{
		reelSet:   reelSet,
		render:    rs,
		settings:  settings,
		logger:    logger.OrNop(l).Named("scene"),
		pollInput: utils.PollSlotInput,
		status:    "Ready",
	}
	reelSet.AddListener(systems.SpinListenerFuncs{
		SpinComplete: s.onSpinComplete,
	})
	return s
}

// Update 读取输入、处理操作并推进转轮
func (s *SlotScene) Update(deltaTime float64) {
	s.HandleInput(s.pollInput())
	s.reelSet.Update(deltaTime)
	if s.render != nil {
		s.render.Update(deltaTime)
	}
}

// HandleInput 处理一帧的输入，返回执行的操作
func (s *SlotScene) HandleInput(in utils.SlotInput) SlotAction {
	if in.ToggleQuickStop {
		enabled := s.settings.ToggleQuickStop()
		s.saveSettings()
		s.logger.Info("[SlotScene] quick stop toggled", zap.Bool("enabled", enabled))
	}
	if in.ToggleGrid {
		s.settings.ToggleShowGrid()
		s.saveSettings()
	}

	action := ResolveAction(in, s.reelSet.IsAnySpinning())
	switch action {
	case ActionSpin:
		if !s.reelSet.SpinAll() {
			return ActionNone
		}
		s.status = "Spinning..."
		if s.settings.GetSettings().QuickStop {
			s.reelSet.ForceStopAll()
		}
	case ActionForceStop:
		if s.reelSet.ForceStopAll() == 0 {
			return ActionNone
		}
	}
	return action
}

func (s *SlotScene) onSpinComplete(result systems.WinResult) {
	s.status = FormatResult(result)
	if s.render != nil {
		s.render.ResetHighlight()
	}
}

// Status 当前状态文字
func (s *SlotScene) Status() string {
	return s.status
}

// FormatResult 把评估结果格式化为一行状态文字
// 中奖线按索引排序
func FormatResult(result systems.WinResult) string {
	if !result.HasWin() {
		return "No win"
	}

	lines := make([]int, 0, len(result.Wins))
	for line := range result.Wins {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("line %d: %d x %s", line+1, result.Wins[line], result.Symbols[line]))
	}
	return "WIN! " + strings.Join(parts, ", ")
}

// GridText 把可见网格格式化为多行文字（每行一个可见行）
func GridText(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}
	var sb strings.Builder
	for row := 0; row < len(grid[0]); row++ {
		cells := make([]string, 0, len(grid))
		for col := range grid {
			if row < len(grid[col]) {
				cells = append(cells, fmt.Sprintf("%-8s", grid[col][row]))
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// hintText 操作提示
func hintText(quickStop bool) string {
	spin := "SPACE/click: spin"
	if utils.IsMobile() {
		spin = "tap: spin"
	}
	mode := "off"
	if quickStop {
		mode = "on"
	}
	return fmt.Sprintf("%s  ENTER: stop  Q: quick stop (%s)  G: grid  F11: fullscreen", spin, mode)
}

// Draw 渲染场景
func (s *SlotScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if s.render != nil {
		var highlights []systems.GridCell
		if s.reelSet.IsPresentingResult() {
			highlights = s.reelSet.WinningCells()
		}
		s.render.Draw(screen, highlights)
	}

	settings := s.settings.GetSettings()
	if settings.ShowGrid && !s.reelSet.IsAnySpinning() {
		ebitenutil.DebugPrintAt(screen, GridText(s.gridStrings()), textMargin, gridTextY)
	}

	stats := s.reelSet.Stats()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s   (lines %d, spins %d, wins %d)", s.status, s.reelSet.WinLines(), stats.SpinsCompleted, stats.WinningSpins),
		textMargin, statusY)
	ebitenutil.DebugPrintAt(screen, hintText(settings.QuickStop), textMargin, hintY)
}

func (s *SlotScene) gridStrings() [][]string {
	grid := s.reelSet.Grid()
	out := make([][]string, len(grid))
	for col, column := range grid {
		out[col] = make([]string, len(column))
		for row, sym := range column {
			out[col][row] = string(sym)
		}
	}
	return out
}

// SaveOnExit 实现 Saveable，退出时保存用户设置
func (s *SlotScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		s.logger.Error("[SlotScene] failed to save settings on exit", zap.Error(err))
		return false
	}
	return true
}

func (s *SlotScene) saveSettings() {
	if err := s.settings.Save(); err != nil {
		s.logger.Warn("[SlotScene] failed to save settings", zap.Error(err))
	}
}

package systems

import (
	"fmt"

	"github.com/decker502/sloth/pkg/types"
)

// Grid 可评估的符号网格（只读）
type Grid interface {
	// Columns 返回列数（转轮数量）
	Columns() int
	// SymbolAt 返回指定列、可见行上的符号，越界返回错误
	SymbolAt(column, row int) (types.Symbol, error)
}

// WinResult 一次评估的完整结果
type WinResult struct {
	// MatchCounts 每条中奖线从第 0 列开始连续匹配的数量（至少为 1）
	MatchCounts []int
	// Wins 中奖线索引 → 匹配数量，只包含匹配数量 > 1 的中奖线
	Wins map[int]int
	// Symbols 中奖线索引 → 中奖符号（第 0 列的锚点符号）
	Symbols map[int]types.Symbol
}

// HasWin 是否有任意中奖线
func (r WinResult) HasWin() bool {
	return len(r.Wins) > 0
}

// GridCell 网格单元，用于中奖高亮
type GridCell struct {
	Column int
	Row    int
	Line   int
}

// WinEvaluator 中奖线评估器
//
// 纯函数式：只读取网格快照，不修改任何状态，相同网格多次评估结果相同。
// 调用方保证评估时所有转轮都已静止。
type WinEvaluator struct {
	lines []types.WinLine
}

// NewWinEvaluator 创建评估器（持有中奖线的副本）
func NewWinEvaluator(lines []types.WinLine) *WinEvaluator {
	copied := make([]types.WinLine, len(lines))
	for i, line := range lines {
		copied[i] = append(types.WinLine(nil), line...)
	}
	return &WinEvaluator{lines: copied}
}

// Lines 返回中奖线数量
func (e *WinEvaluator) Lines() int {
	return len(e.lines)
}

// Line 返回第 i 条中奖线
func (e *WinEvaluator) Line(i int) types.WinLine {
	return e.lines[i]
}

// Evaluate 评估网格上的所有中奖线
//
// 每条线以第 0 列为锚点，从左到右统计连续相同符号的数量，遇到第一个不同即停止
// （不环绕，不跳过）。匹配数量大于 1 视为中奖。
//
// 参数：
//   - grid: 符号网格
//
// 返回：
//   - WinResult: 评估结果
//   - error: 中奖线长度与列数不一致，或网格访问越界
func (e *WinEvaluator) Evaluate(grid Grid) (WinResult, error) {
	result := WinResult{
		MatchCounts: make([]int, len(e.lines)),
		Wins:        make(map[int]int),
		Symbols:     make(map[int]types.Symbol),
	}

	columns := grid.Columns()
	for i, line := range e.lines {
		if line.Len() != columns {
			return WinResult{}, fmt.Errorf("win line %d %s has %d entries, grid has %d columns",
				i, line, line.Len(), columns)
		}

		count, anchor, err := matchLine(grid, line)
		if err != nil {
			return WinResult{}, fmt.Errorf("win line %d %s: %w", i, line, err)
		}

		result.MatchCounts[i] = count
		if count > 1 {
			result.Wins[i] = count
			result.Symbols[i] = anchor
		}
	}

	return result, nil
}

// matchLine 统计单条中奖线的连续匹配数量
func matchLine(grid Grid, line types.WinLine) (int, types.Symbol, error) {
	anchor, err := grid.SymbolAt(0, line.Row(0))
	if err != nil {
		return 0, types.NoSymbol, err
	}

	count := 1
	for col := 1; col < line.Len(); col++ {
		sym, err := grid.SymbolAt(col, line.Row(col))
		if err != nil {
			return 0, types.NoSymbol, err
		}
		if sym != anchor {
			break
		}
		count++
	}
	return count, anchor, nil
}

// WinningCells 返回所有中奖单元格（每条中奖线的前 matchCount 列）
// 按中奖线索引升序排列，供渲染高亮使用
func (e *WinEvaluator) WinningCells(wins map[int]int) []GridCell {
	var cells []GridCell
	for i, line := range e.lines {
		count, ok := wins[i]
		if !ok {
			continue
		}
		for col := 0; col < count && col < line.Len(); col++ {
			cells = append(cells, GridCell{Column: col, Row: line.Row(col), Line: i})
		}
	}
	return cells
}

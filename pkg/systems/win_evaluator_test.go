package systems

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/types"
)

// staticGrid 固定内容的测试网格，按 [列][行] 存储
type staticGrid [][]types.Symbol

func (g staticGrid) Columns() int {
	return len(g)
}

func (g staticGrid) SymbolAt(column, row int) (types.Symbol, error) {
	if column < 0 || column >= len(g) {
		return types.NoSymbol, fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}
	if row < 0 || row >= len(g[column]) {
		return types.NoSymbol, fmt.Errorf("%w: %d", components.ErrRowOutOfRange, row)
	}
	return g[column][row], nil
}

// gridFromRows 按行书写网格，便于阅读
func gridFromRows(rows ...[]types.Symbol) staticGrid {
	cols := len(rows[0])
	g := make(staticGrid, cols)
	for c := 0; c < cols; c++ {
		g[c] = make([]types.Symbol, len(rows))
		for r := range rows {
			g[c][r] = rows[r][c]
		}
	}
	return g
}

func TestWinEvaluator_TopLineStopsAtFirstMismatch(t *testing.T) {
	grid := gridFromRows(
		[]types.Symbol{"A", "A", "A", "B", "C"},
		[]types.Symbol{"B", "C", "D", "E", "A"},
		[]types.Symbol{"C", "D", "E", "A", "B"},
	)
	eval := NewWinEvaluator([]types.WinLine{{0, 0, 0, 0, 0}})

	result, err := eval.Evaluate(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MatchCounts[0] != 3 {
		t.Errorf("Expected match count 3, got %d", result.MatchCounts[0])
	}
	if result.Wins[0] != 3 || result.Symbols[0] != "A" {
		t.Errorf("Expected win {0: 3} on A, got %v / %v", result.Wins, result.Symbols)
	}
}

func TestWinEvaluator_Evaluate(t *testing.T) {
	grid := gridFromRows(
		[]types.Symbol{"A", "B", "A", "A", "A"},
		[]types.Symbol{"B", "B", "B", "B", "B"},
		[]types.Symbol{"C", "C", "B", "C", "C"},
	)
	lines := []types.WinLine{
		{1, 1, 1, 1, 1}, // 中间行全中
		{0, 0, 0, 0, 0}, // A B ... 第二列即断开
		{2, 2, 2, 2, 2}, // C C B：2 连
		{0, 1, 2, 1, 0}, // A B B B A：1
		{2, 1, 0, 1, 2}, // C B A B C：1
	}
	eval := NewWinEvaluator(lines)

	result, err := eval.Evaluate(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]int{5, 1, 2, 1, 1}, result.MatchCounts); diff != "" {
		t.Errorf("MatchCounts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[int]int{0: 5, 2: 2}, result.Wins); diff != "" {
		t.Errorf("Wins mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[int]types.Symbol{0: "B", 2: "C"}, result.Symbols); diff != "" {
		t.Errorf("Symbols mismatch (-want +got):\n%s", diff)
	}
	if !result.HasWin() {
		t.Error("Expected HasWin() to be true")
	}
}

func TestWinEvaluator_NoWins(t *testing.T) {
	grid := gridFromRows(
		[]types.Symbol{"A", "B", "C"},
		[]types.Symbol{"B", "C", "A"},
	)
	eval := NewWinEvaluator([]types.WinLine{{0, 0, 0}, {1, 1, 1}})

	result, err := eval.Evaluate(grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasWin() || len(result.Symbols) != 0 {
		t.Errorf("Expected no wins, got %v", result.Wins)
	}
	for i, c := range result.MatchCounts {
		if c != 1 {
			t.Errorf("line %d: expected match count 1, got %d", i, c)
		}
	}
}

func TestWinEvaluator_Errors(t *testing.T) {
	grid := gridFromRows(
		[]types.Symbol{"A", "A", "A"},
		[]types.Symbol{"B", "B", "B"},
	)

	tests := []struct {
		name    string
		lines   []types.WinLine
		wantErr error
	}{
		{name: "row out of range", lines: []types.WinLine{{0, 2, 0}}, wantErr: components.ErrRowOutOfRange},
		{name: "anchor row out of range", lines: []types.WinLine{{-1, 0, 0}}, wantErr: components.ErrRowOutOfRange},
		{name: "line too short", lines: []types.WinLine{{0, 0}}},
		{name: "line too long", lines: []types.WinLine{{0, 0, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWinEvaluator(tt.lines).Evaluate(grid)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWinEvaluator_CopiesLines(t *testing.T) {
	lines := []types.WinLine{{0, 0, 0}}
	eval := NewWinEvaluator(lines)
	lines[0][1] = 1

	if eval.Line(0).Row(1) != 0 {
		t.Error("Evaluator should not alias the caller's win lines")
	}
	if eval.Lines() != 1 {
		t.Errorf("Expected 1 line, got %d", eval.Lines())
	}
}

func TestWinEvaluator_WinningCells(t *testing.T) {
	eval := NewWinEvaluator([]types.WinLine{
		{1, 1, 1},
		{0, 1, 2},
		{2, 2, 2},
	})

	cells := eval.WinningCells(map[int]int{0: 3, 1: 2})
	want := []GridCell{
		{Column: 0, Row: 1, Line: 0},
		{Column: 1, Row: 1, Line: 0},
		{Column: 2, Row: 1, Line: 0},
		{Column: 0, Row: 0, Line: 1},
		{Column: 1, Row: 1, Line: 1},
	}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("WinningCells mismatch (-want +got):\n%s", diff)
	}

	if len(eval.WinningCells(nil)) != 0 {
		t.Error("Expected no cells without wins")
	}
}

// TestWinEvaluator_Idempotent 同一网格评估两次结果完全相同，且匹配数量在 [1, 列数] 内
func TestWinEvaluator_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cols := rapid.IntRange(2, 6).Draw(t, "cols")
		rows := rapid.IntRange(1, 4).Draw(t, "rows")
		symGen := rapid.SampledFrom([]types.Symbol{"A", "B", "C"})

		grid := make(staticGrid, cols)
		for c := range grid {
			grid[c] = rapid.SliceOfN(symGen, rows, rows).Draw(t, fmt.Sprintf("col%d", c))
		}

		nLines := rapid.IntRange(1, 5).Draw(t, "lines")
		lines := make([]types.WinLine, nLines)
		for i := range lines {
			lines[i] = rapid.SliceOfN(rapid.IntRange(0, rows-1), cols, cols).Draw(t, fmt.Sprintf("line%d", i))
		}

		eval := NewWinEvaluator(lines)
		first, err := eval.Evaluate(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := eval.Evaluate(grid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("evaluation not idempotent (-first +second):\n%s", diff)
		}

		for i, c := range first.MatchCounts {
			if c < 1 || c > cols {
				t.Fatalf("line %d: match count %d outside [1, %d]", i, c, cols)
			}
			if _, won := first.Wins[i]; won != (c > 1) {
				t.Fatalf("line %d: count %d but win flag %v", i, c, won)
			}
		}
	})
}

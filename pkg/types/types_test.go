package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSymbolString(t *testing.T) {
	if got := Symbol("seven").String(); got != "seven" {
		t.Errorf("String() = %q, want seven", got)
	}
	if got := NoSymbol.String(); got != "<none>" {
		t.Errorf("NoSymbol.String() = %q, want <none>", got)
	}
}

func TestSymbolNamesRoundTrip(t *testing.T) {
	names := []string{"cherry", "bell", "bar"}
	if diff := cmp.Diff(names, SymbolNames(SymbolsFromStrings(names))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWinLine(t *testing.T) {
	line := WinLine{0, 1, 2, 1, 0}
	if line.Len() != 5 {
		t.Errorf("Len() = %d, want 5", line.Len())
	}
	if line.Row(2) != 2 {
		t.Errorf("Row(2) = %d, want 2", line.Row(2))
	}
	if got := line.String(); got != "[0 1 2 1 0]" {
		t.Errorf("String() = %q", got)
	}
}

func TestWinLinesFromRowsCopies(t *testing.T) {
	rows := [][]int{{0, 0, 0}, {1, 1, 1}}
	lines := WinLinesFromRows(rows)
	rows[0][0] = 2

	if lines[0][0] != 0 {
		t.Error("WinLinesFromRows should copy the row slices")
	}
	if len(lines) != 2 || lines[1].String() != "[1 1 1]" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

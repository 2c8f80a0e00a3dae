package config

import (
	"math"
	"testing"
)

func TestReelScreenX(t *testing.T) {
	tests := []struct {
		name   string
		column int
		want   float64
	}{
		{name: "第一列", column: 0, want: ReelOriginX},
		{name: "第二列", column: 1, want: ReelOriginX + ReelCellWidth + ReelGap},
		{name: "第五列", column: 4, want: ReelOriginX + 4*(ReelCellWidth+ReelGap)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReelScreenX(tt.column); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ReelScreenX(%d) = %.1f, want %.1f", tt.column, got, tt.want)
			}
		})
	}
}

// TestDefaultLayoutFitsScreen 默认机器的所有转轮都在逻辑屏幕内
func TestDefaultLayoutFitsScreen(t *testing.T) {
	cfg := DefaultMachineConfig()
	motion := cfg.Motion()

	right := ReelScreenX(cfg.ReelCount()-1) + ReelCellWidth
	if right > GameWindowWidth {
		t.Errorf("reels extend to x=%.1f, beyond screen width %d", right, GameWindowWidth)
	}

	bottom := ReelOriginY + ReelWindowHeight(cfg.VisibleRows, motion)
	if bottom > GameWindowHeight {
		t.Errorf("reel window extends to y=%.1f, beyond screen height %d", bottom, GameWindowHeight)
	}
}

func TestCellScreenRect(t *testing.T) {
	motion := ReelMotion{CellHeight: 60, Spacing: 15}

	x, y, w, h := CellScreenRect(2, 1, 15, motion)
	if x != ReelScreenX(2) {
		t.Errorf("x = %.1f, want %.1f", x, ReelScreenX(2))
	}
	if want := ReelOriginY + 15 + 75; y != want {
		t.Errorf("y = %.1f, want %.1f", y, want)
	}
	if w != ReelCellWidth || h != 60 {
		t.Errorf("size = %.1fx%.1f, want %.1fx60", w, h, ReelCellWidth)
	}

	if got := ReelWindowHeight(3, motion); got != 3*75+15 {
		t.Errorf("ReelWindowHeight = %.1f, want %d", got, 3*75+15)
	}
}

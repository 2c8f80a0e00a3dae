package components

import (
	"errors"
	"testing"

	"github.com/decker502/sloth/pkg/types"
)

func TestNewReelComponent(t *testing.T) {
	strip := []types.Symbol{"A", "B", "C", "D"}
	reel := NewReelComponent(2, strip, 3, 75, 1.5)

	if reel.Column != 2 {
		t.Errorf("Expected Column=2, got %d", reel.Column)
	}
	if reel.Len() != 4 {
		t.Fatalf("Expected 4 slots, got %d", reel.Len())
	}
	if !reel.IsIdle() || reel.Velocity != 0 {
		t.Errorf("New reel should be idle with zero velocity, got %s / %f", reel.State, reel.Velocity)
	}
	if reel.SpinDuration != 1.5 {
		t.Errorf("Expected SpinDuration=1.5, got %f", reel.SpinDuration)
	}

	// 槽位按间距依次排列
	for i, slot := range reel.Slots {
		if slot.Symbol != strip[i] {
			t.Errorf("slot %d: expected symbol %s, got %s", i, strip[i], slot.Symbol)
		}
		if slot.OffsetY != float64(i)*75 {
			t.Errorf("slot %d: expected offset %f, got %f", i, float64(i)*75, slot.OffsetY)
		}
	}

	// 修改原始序列不影响组件
	strip[0] = "Z"
	if reel.Slots[0].Symbol != "A" {
		t.Error("Reel should not alias the input strip")
	}
}

func TestReelComponent_SymbolAt(t *testing.T) {
	reel := NewReelComponent(0, []types.Symbol{"A", "B", "C", "D"}, 3, 75, 1)

	tests := []struct {
		name    string
		row     int
		want    types.Symbol
		wantErr bool
	}{
		{name: "top row", row: 0, want: "A"},
		{name: "last visible row", row: 2, want: "C"},
		{name: "hidden slack slot", row: 3, wantErr: true},
		{name: "negative row", row: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reel.SymbolAt(tt.row)
			if tt.wantErr {
				if !errors.Is(err, ErrRowOutOfRange) {
					t.Fatalf("expected ErrRowOutOfRange, got %v", err)
				}
				if got != types.NoSymbol {
					t.Errorf("expected NoSymbol on error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SymbolAt(%d) = %s, want %s", tt.row, got, tt.want)
			}
		})
	}
}

func TestReelComponent_StatePredicates(t *testing.T) {
	reel := NewReelComponent(0, []types.Symbol{"A", "B"}, 1, 75, 1)

	reel.State = MotionSoftStopping
	if !reel.IsStopping() || reel.IsSnappingBack() || !reel.IsMoving() {
		t.Error("SoftStopping predicates mismatch")
	}

	reel.State = MotionSnappingBack
	if reel.IsStopping() || !reel.IsSnappingBack() || !reel.IsMoving() {
		t.Error("SnappingBack predicates mismatch")
	}
}

func TestReelComponent_SnapshotsAreCopies(t *testing.T) {
	reel := NewReelComponent(0, []types.Symbol{"A", "B", "C"}, 2, 75, 1)

	snap := reel.SlotsSnapshot()
	snap[0].Symbol = "X"
	syms := reel.Symbols()
	syms[1] = "Y"
	visible := reel.VisibleSymbols()

	if reel.Slots[0].Symbol != "A" || reel.Slots[1].Symbol != "B" {
		t.Error("Snapshots should not alias reel slots")
	}
	if len(visible) != 2 || visible[0] != "A" || visible[1] != "B" {
		t.Errorf("VisibleSymbols mismatch: %v", visible)
	}
}

func TestMotionState_String(t *testing.T) {
	cases := map[MotionState]string{
		MotionIdle:         "Idle",
		MotionSpinning:     "Spinning",
		MotionSoftStopping: "SoftStopping",
		MotionSnappingBack: "SnappingBack",
		MotionState(99):    "Unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("MotionState(%d).String() = %s, want %s", int(state), got, want)
		}
	}
}

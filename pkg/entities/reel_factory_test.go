package entities

import (
	"testing"

	"github.com/decker502/sloth/pkg/components"
	"github.com/decker502/sloth/pkg/config"
	"github.com/decker502/sloth/pkg/ecs"
	"github.com/decker502/sloth/pkg/types"
)

func TestNewReelEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultMachineConfig()
	strip := []types.Symbol{"A", "B", "C", "D", "E", "F"}

	id, err := NewReelEntity(em, 2, strip, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reel, ok := ecs.GetComponent[*components.ReelComponent](em, id)
	if !ok {
		t.Fatal("Expected ReelComponent on reel entity")
	}
	if reel.Column != 2 || reel.Len() != 6 || reel.VisibleRows != 3 {
		t.Errorf("Unexpected reel: column=%d len=%d rows=%d", reel.Column, reel.Len(), reel.VisibleRows)
	}
	if reel.SpinDuration != cfg.SpinDurations[2] {
		t.Errorf("Expected SpinDuration %f, got %f", cfg.SpinDurations[2], reel.SpinDuration)
	}
	if reel.Slots[1].OffsetY != cfg.Motion().Pitch() {
		t.Errorf("Expected slot 1 at %f, got %f", cfg.Motion().Pitch(), reel.Slots[1].OffsetY)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("Expected PositionComponent on reel entity")
	}
	if pos.X != config.ReelScreenX(2) || pos.Y != config.ReelOriginY {
		t.Errorf("Unexpected position (%f, %f)", pos.X, pos.Y)
	}
}

func TestNewReelEntity_Errors(t *testing.T) {
	cfg := config.DefaultMachineConfig()

	tests := []struct {
		name   string
		column int
		strip  []types.Symbol
	}{
		{name: "negative column", column: -1, strip: []types.Symbol{"A", "B", "C", "D"}},
		{name: "column past last reel", column: 5, strip: []types.Symbol{"A", "B", "C", "D"}},
		{name: "strip without wrap slack", column: 0, strip: []types.Symbol{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			if _, err := NewReelEntity(em, tt.column, tt.strip, cfg); err == nil {
				t.Fatal("expected error, got nil")
			}
			if em.EntityCount() != 0 {
				t.Errorf("Expected no entity on failure, got %d", em.EntityCount())
			}
		})
	}
}

package game

import "testing"

// TestNewPlayerDefaults tests player creation
func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("alice", 1, PlayerOptions{})

	if p.Name != "alice" {
		t.Errorf("Expected name 'alice', got %q", p.Name)
	}
	if p.ID == "" {
		t.Error("Player ID should be assigned")
	}
	if p.Color == "" {
		t.Error("Player color should be assigned")
	}
	if p.Speed <= 0 {
		t.Errorf("Expected positive default speed, got %v", p.Speed)
	}
	if p.Moving() {
		t.Error("New player should not be moving")
	}
	if p.Drawing {
		t.Error("New player should not be drawing")
	}
}

// TestNewPlayerWithOptions tests option overrides
func TestNewPlayerWithOptions(t *testing.T) {
	p := NewPlayer("bob", 2, PlayerOptions{Color: "#ff0000", Speed: 7})
	if p.Color != "#ff0000" {
		t.Errorf("Expected color '#ff0000', got %q", p.Color)
	}
	if p.Speed != 7 {
		t.Errorf("Expected speed 7, got %v", p.Speed)
	}
}

// TestSetDirectionRejectsInvalid tests zero and diagonal rejection
func TestSetDirectionRejectsInvalid(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.SetDirection(0, 0)
	if p.Moving() {
		t.Error("Zero direction should be rejected")
	}
	p.SetDirection(1, 1)
	if p.Moving() {
		t.Error("Diagonal direction should be rejected")
	}
	p.SetDirection(2, 0)
	if p.Moving() {
		t.Error("Non-unit direction should be rejected")
	}
}

// TestSetDirectionRejectsReversal tests that a direct reversal is ignored
func TestSetDirectionRejectsReversal(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.SetDirection(1, 0)
	if p.DirX != 1 || p.DirY != 0 {
		t.Fatalf("Expected direction (1,0), got (%d,%d)", p.DirX, p.DirY)
	}

	p.SetDirection(-1, 0)
	if p.DirX != 1 || p.DirY != 0 {
		t.Errorf("Reversal should be ignored, direction became (%d,%d)", p.DirX, p.DirY)
	}
	if p.HasBuffered {
		t.Error("Reversal must not be buffered either")
	}

	// A perpendicular change while stationary at a tile center applies
	// immediately.
	p.SetDirection(0, 1)
	if p.DirX != 0 || p.DirY != 1 {
		t.Errorf("Expected direction (0,1), got (%d,%d)", p.DirX, p.DirY)
	}
}

// TestSetDirectionBuffersMidTransit tests deferred application
func TestSetDirectionBuffersMidTransit(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.SetDirection(1, 0)
	p.MovingToNext = true

	p.SetDirection(0, -1)
	if p.DirX != 1 || p.DirY != 0 {
		t.Errorf("Mid-transit change must not apply immediately, direction = (%d,%d)", p.DirX, p.DirY)
	}
	if !p.HasBuffered || p.BufferedX != 0 || p.BufferedY != -1 {
		t.Errorf("Expected buffered (0,-1), got buffered=%v (%d,%d)", p.HasBuffered, p.BufferedX, p.BufferedY)
	}

	p.applyBuffered()
	if p.DirX != 0 || p.DirY != -1 {
		t.Errorf("Expected direction (0,-1) after apply, got (%d,%d)", p.DirX, p.DirY)
	}
	if p.HasBuffered {
		t.Error("Buffer should be cleared after apply")
	}
}

// TestApplyBufferedDropsStaleReversal tests that a buffered change that
// has become a reversal by apply time is dropped
func TestApplyBufferedDropsStaleReversal(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.DirX, p.DirY = 0, 1
	p.BufferedX, p.BufferedY = 0, -1
	p.HasBuffered = true

	p.applyBuffered()
	if p.DirX != 0 || p.DirY != 1 {
		t.Errorf("Stale reversal applied, direction = (%d,%d)", p.DirX, p.DirY)
	}
}

// TestMidTransitReversalIgnoredOutright tests the input contract:
// a reversal sent mid-transit is dropped, not buffered
func TestMidTransitReversalIgnoredOutright(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.SetDirection(1, 0)
	p.MovingToNext = true

	p.SetDirection(-1, 0)
	if p.HasBuffered {
		t.Error("Mid-transit reversal must be ignored, not buffered")
	}
}

// TestClearTransit tests the death-reset of movement state
func TestClearTransit(t *testing.T) {
	p := NewPlayer("p", 1, PlayerOptions{})
	p.SetDirection(1, 0)
	p.MovingToNext = true
	p.Drawing = true
	p.BufferedX, p.BufferedY, p.HasBuffered = 0, 1, true

	p.clearTransit()
	if p.Moving() || p.MovingToNext || p.Drawing || p.HasBuffered {
		t.Error("clearTransit should reset direction, transit, drawing and buffer state")
	}
}

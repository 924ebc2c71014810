package game

import "testing"

// TestTrailBegin tests activation
func TestTrailBegin(t *testing.T) {
	tr := NewTrail("p1", 5)
	if tr.Active {
		t.Fatal("New trail should be inactive")
	}

	tr.Begin(100, 100)
	if !tr.Active {
		t.Error("Trail should be active after Begin")
	}
	if tr.Len() != 1 {
		t.Errorf("Expected 1 point after Begin, got %d", tr.Len())
	}
}

// TestTrailAppendSpacing tests that points closer than the minimum
// spacing are not recorded
func TestTrailAppendSpacing(t *testing.T) {
	tr := NewTrail("p1", 5)
	tr.Begin(0, 0)

	tr.Append(3, 0) // too close
	if tr.Len() != 1 {
		t.Errorf("Point within spacing should be dropped, got %d points", tr.Len())
	}

	tr.Append(6, 0)
	if tr.Len() != 2 {
		t.Errorf("Point beyond spacing should be kept, got %d points", tr.Len())
	}

	tr.Append(6, 4.9) // too close to (6,0)
	tr.Append(6, 5.1)
	if tr.Len() != 3 {
		t.Errorf("Expected 3 points, got %d", tr.Len())
	}
}

// TestTrailAppendInactive tests that inactive trails ignore appends
func TestTrailAppendInactive(t *testing.T) {
	tr := NewTrail("p1", 5)
	tr.Append(10, 10)
	if tr.Len() != 0 {
		t.Errorf("Inactive trail must not record points, got %d", tr.Len())
	}
}

// TestTrailReset tests deactivation
func TestTrailReset(t *testing.T) {
	tr := NewTrail("p1", 5)
	tr.Begin(0, 0)
	tr.Append(10, 0)
	tr.Append(20, 0)

	tr.Reset()
	if tr.Active {
		t.Error("Trail should be inactive after Reset")
	}
	if tr.Len() != 0 {
		t.Errorf("Expected 0 points after Reset, got %d", tr.Len())
	}
}

// TestTrailPointsCopy tests that Points returns an independent copy
func TestTrailPointsCopy(t *testing.T) {
	tr := NewTrail("p1", 5)
	tr.Begin(0, 0)
	tr.Append(10, 0)

	pts := tr.Points()
	if len(pts) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(pts))
	}
	pts[0].X = 999
	if tr.Points()[0].X == 999 {
		t.Error("Points must return a copy, not the backing slice")
	}
}

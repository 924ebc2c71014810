package game

import "testing"

func newCollisionDetectorForTest(g *Grid) *CollisionDetector {
	return NewCollisionDetector(g, 10, 1, 0.75)
}

// paintTrailColumn lays a vertical trail for the player.
func paintTrailColumn(t *testing.T, g *Grid, owner string, x, y0, y1 int) {
	t.Helper()
	for y := y0; y <= y1; y++ {
		if err := g.SetTile(x, y, owner, true); err != nil {
			t.Fatalf("SetTile(%d,%d) failed: %v", x, y, err)
		}
	}
}

// TestCollisionProximityKills tests the continuous-position check:
// within 0.6 tile of a trail tile outside the safe zone, trail >= 10
func TestCollisionProximityKills(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Drawing: true, Speed: 5}
	paintTrailColumn(t, g, "p1", 2, 1, 10) // 10 trail tiles

	// Player's tracked tile is far away; continuous position has come
	// within 8 units (0.4 tile) of the trail tile (2,5).
	p.LastTileX, p.LastTileY = 8, 8
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+8, ty

	death := c.Check(p)
	if death == nil {
		t.Fatal("Expected a trail-collision death")
	}
	if death.Reason != DeathTrailCollision {
		t.Errorf("Expected reason trail_collision, got %s", death.Reason)
	}
	if death.PlayerID != "p1" {
		t.Errorf("Expected player p1, got %s", death.PlayerID)
	}
}

// TestCollisionSafeZoneExcluded tests that tiles within the Chebyshev
// safe zone around the current tile never register
func TestCollisionSafeZoneExcluded(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Drawing: true, Speed: 5}
	paintTrailColumn(t, g, "p1", 2, 1, 10)

	// Current tile adjacent to the closest trail tile: Chebyshev 1.
	p.LastTileX, p.LastTileY = 3, 5
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+8, ty

	if death := c.Check(p); death != nil {
		t.Errorf("Safe-zone tile registered a hit: %+v", death)
	}
}

// TestCollisionRequiresMinimumTrail tests the trail-length gate
func TestCollisionRequiresMinimumTrail(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Drawing: true, Speed: 5}
	paintTrailColumn(t, g, "p1", 2, 1, 9) // only 9 trail tiles

	p.LastTileX, p.LastTileY = 8, 8
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+8, ty

	if death := c.Check(p); death != nil {
		t.Errorf("Check must be gated until the trail has %d tiles, got %+v", 10, death)
	}
}

// TestCollisionRequiresDrawing tests that non-drawing players are immune
func TestCollisionRequiresDrawing(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Speed: 5}
	paintTrailColumn(t, g, "p1", 2, 1, 10)
	p.LastTileX, p.LastTileY = 8, 8
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+8, ty

	if death := c.Check(p); death != nil {
		t.Errorf("Non-drawing player must not collide with trail, got %+v", death)
	}
}

// TestCollisionIgnoresOtherPlayersTrail tests ownership scoping
func TestCollisionIgnoresOtherPlayersTrail(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Drawing: true, Speed: 5}
	paintTrailColumn(t, g, "p2", 2, 1, 10) // someone else's trail
	paintTrailColumn(t, g, "p1", 15, 1, 10)

	p.LastTileX, p.LastTileY = 8, 8
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+8, ty

	if death := c.Check(p); death != nil {
		t.Errorf("Another player's trail must not trigger self-collision, got %+v", death)
	}
}

// TestCollisionOutsideRangeSurvives tests the distance threshold
func TestCollisionOutsideRangeSurvives(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := newCollisionDetectorForTest(g)

	p := &Player{ID: "p1", Drawing: true, Speed: 5}
	paintTrailColumn(t, g, "p1", 2, 1, 10)

	p.LastTileX, p.LastTileY = 8, 8
	tx, ty := g.TileCenter(2, 5)
	p.X, p.Y = tx+16, ty // 16 units > 0.75 * 20

	if death := c.Check(p); death != nil {
		t.Errorf("Position outside kill range must survive, got %+v", death)
	}
}

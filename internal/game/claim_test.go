package game

import "testing"

// paintTrailRing lays the perimeter of the square [x0,x1]x[y0,y1] as
// trail tiles for the player.
func paintTrailRing(t *testing.T, g *Grid, owner string, x0, y0, x1, y1 int) {
	t.Helper()
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			if x != x0 && x != x1 && y != y0 && y != y1 {
				continue
			}
			if err := g.SetTile(x, y, owner, true); err != nil {
				t.Fatalf("SetTile(%d,%d) failed: %v", x, y, err)
			}
		}
	}
}

// TestResolveClaimsEnclosedRegion tests the border flood fill: a closed
// ring of trail claims its interior
func TestResolveClaimsEnclosedRegion(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)

	p := &Player{ID: "p1", Score: 0}
	tr := NewTrail(p.ID, 5)
	tr.Begin(0, 0)
	paintTrailRing(t, g, "p1", 2, 2, 6, 6) // 16 border tiles, 3x3 interior

	req := &ClaimRequest{PlayerID: "p1", EntryX: 2, EntryY: 2, HasEntry: true, Complete: true}
	claimed, death := c.Resolve(req, p, tr)
	if death != nil {
		t.Fatalf("Unexpected death: %+v", death)
	}
	if claimed != 9 {
		t.Errorf("Expected 9 enclosed tiles claimed, got %d", claimed)
	}
	if p.Score != 9 {
		t.Errorf("Expected score 9, got %d", p.Score)
	}
	if p.Claims != 1 {
		t.Errorf("Expected 1 claim recorded, got %d", p.Claims)
	}
	if tr.Active || tr.Len() != 0 {
		t.Error("Trail point history should be reset after a claim")
	}
	if n := g.TrailCount("p1"); n != 0 {
		t.Errorf("Expected no trail tiles after claim, got %d", n)
	}
	if n := g.OwnedCount("p1"); n != 25 {
		t.Errorf("Expected 25 owned tiles (16 border + 9 interior), got %d", n)
	}
	for y := 3; y <= 5; y++ {
		for x := 3; x <= 5; x++ {
			tile, _ := g.TileAt(x, y)
			if tile.Owner != "p1" || tile.IsTrail {
				t.Errorf("Interior tile (%d,%d) should be p1 territory, got owner=%q trail=%v",
					x, y, tile.Owner, tile.IsTrail)
			}
		}
	}
	checkTrailInvariant(t, g)
}

// TestResolveEmptyLoopStillConvertsTrail tests that a trail enclosing
// nothing still becomes territory
func TestResolveEmptyLoopStillConvertsTrail(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)

	p := &Player{ID: "p1"}
	tr := NewTrail(p.ID, 5)
	// A straight line encloses nothing.
	for x := 2; x <= 8; x++ {
		g.SetTile(x, 10, "p1", true)
	}

	req := &ClaimRequest{PlayerID: "p1", EntryX: 9, EntryY: 10, HasEntry: true, Complete: true}
	claimed, death := c.Resolve(req, p, tr)
	if death != nil {
		t.Fatalf("Unexpected death: %+v", death)
	}
	if claimed != 0 {
		t.Errorf("Expected nothing enclosed, got %d", claimed)
	}
	if n := g.TrailCount("p1"); n != 0 {
		t.Errorf("Trail tiles should convert to territory regardless, got %d left", n)
	}
	if n := g.OwnedCount("p1"); n != 7 {
		t.Errorf("Expected the 7 line tiles kept as territory, got %d", n)
	}
}

// TestResolveNoEntryIsFatal tests the entry-less loop closure:
// crossing your own trail without returning home kills
func TestResolveNoEntryIsFatal(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)

	p := &Player{ID: "p1", Score: 3}
	tr := NewTrail(p.ID, 5)
	paintTrailRing(t, g, "p1", 2, 2, 6, 6)

	req := &ClaimRequest{PlayerID: "p1", Complete: true}
	claimed, death := c.Resolve(req, p, tr)
	if claimed != 0 {
		t.Errorf("Fatal resolution must claim nothing, got %d", claimed)
	}
	if death == nil {
		t.Fatal("Expected a death signal for an entry-less claim")
	}
	if death.Reason != DeathCrossedTrail {
		t.Errorf("Expected reason crossed_trail, got %s", death.Reason)
	}
	if p.Score != 3 || p.Claims != 0 {
		t.Errorf("Score and claim count must be untouched, got score=%d claims=%d", p.Score, p.Claims)
	}
}

// TestResolveIgnoresEmptyRequest tests that the zero-value request is a
// no-op, so the single claim slot can be resolved unconditionally
func TestResolveIgnoresEmptyRequest(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)
	p := &Player{ID: "p1"}
	tr := NewTrail(p.ID, 5)

	var req ClaimRequest
	claimed, death := c.Resolve(&req, p, tr)
	if claimed != 0 || death != nil {
		t.Errorf("Zero-value request should be a no-op, got claimed=%d death=%v", claimed, death)
	}
}

// TestResolveWrongPlayerIsNoOp tests request/player scoping
func TestResolveWrongPlayerIsNoOp(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)
	p := &Player{ID: "p2"}
	tr := NewTrail(p.ID, 5)
	paintTrailRing(t, g, "p1", 2, 2, 6, 6)

	req := &ClaimRequest{PlayerID: "p1", EntryX: 2, EntryY: 2, HasEntry: true, Complete: true}
	claimed, death := c.Resolve(req, p, tr)
	if claimed != 0 || death != nil {
		t.Errorf("Request for another player should be a no-op, got claimed=%d death=%v", claimed, death)
	}
	if n := g.TrailCount("p1"); n != 16 {
		t.Errorf("p1's trail must be untouched, got %d trail tiles", n)
	}
}

// TestResolveLeavesOtherPlayersTilesAlone tests that an enclosed tile
// owned by someone else is not stolen
func TestResolveLeavesOtherPlayersTilesAlone(t *testing.T) {
	g := NewGrid(20, 20, 20)
	c := NewClaimer(g)

	p := &Player{ID: "p1"}
	tr := NewTrail(p.ID, 5)
	paintTrailRing(t, g, "p1", 2, 2, 8, 8)
	g.SetTile(5, 5, "p2", false) // inside the ring

	req := &ClaimRequest{PlayerID: "p1", EntryX: 2, EntryY: 2, HasEntry: true, Complete: true}
	claimed, death := c.Resolve(req, p, tr)
	if death != nil {
		t.Fatalf("Unexpected death: %+v", death)
	}
	// 5x5 interior minus the one occupied cell.
	if claimed != 24 {
		t.Errorf("Expected 24 claimed, got %d", claimed)
	}
	tile, _ := g.TileAt(5, 5)
	if tile.Owner != "p2" {
		t.Errorf("Enclosed p2 tile was stolen, owner=%q", tile.Owner)
	}
}

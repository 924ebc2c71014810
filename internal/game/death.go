package game

// DeathHandler resets a player to baseline after any death condition
// and hands out the fresh starting block.
type DeathHandler struct {
	grid *Grid

	// spawnRadius is the half-width of the starting block: a radius-R
	// Chebyshev square, (2R+1)^2 tiles when fully inside the grid.
	spawnRadius int
}

// NewDeathHandler creates the death pass over the grid.
func NewDeathHandler(grid *Grid, spawnRadius int) *DeathHandler {
	return &DeathHandler{grid: grid, spawnRadius: spawnRadius}
}

// Apply consumes one death signal. Any claim still pending for the
// same player is cancelled first: a player must never score from the
// same movement that killed them. pending may be nil when no claim is
// queued.
func (d *DeathHandler) Apply(p *Player, trail *Trail, pending *ClaimRequest) {
	if pending != nil && pending.Complete && pending.PlayerID == p.ID {
		pending.clear()
	}
	p.Deaths++
	d.Respawn(p, trail)
}

// Respawn moves the player to a free spawn anchor with a fresh
// starting block. Also used for the initial spawn, so joining and
// dying leave the player in the same state.
//
// Owned tiles are collected in a pre-pass and released afterwards:
// release and grant must not interleave, or a tile could be observed
// owned mid-reset right before being re-granted.
func (d *DeathHandler) Respawn(p *Player, trail *Trail) {
	p.clearTransit()
	p.Score = 0
	trail.Reset()

	tiles := d.grid.Tiles()
	held := make([][2]int, 0, 64)
	for i := range tiles {
		if tiles[i].Owner == p.ID {
			held = append(held, [2]int{tiles[i].X, tiles[i].Y})
		}
	}
	for _, xy := range held {
		_ = d.grid.ResetTile(xy[0], xy[1])
	}

	cx, cy := d.findSpawn(p)
	p.X, p.Y = d.grid.TileCenter(cx, cy)
	p.LastTileX, p.LastTileY = cx, cy

	granted := 0
	for y := cy - d.spawnRadius; y <= cy+d.spawnRadius; y++ {
		for x := cx - d.spawnRadius; x <= cx+d.spawnRadius; x++ {
			if err := d.grid.SetTile(x, y, p.ID, false); err == nil {
				granted++
			}
		}
	}
	p.Score = granted
}

// findSpawn picks the anchor closest to the grid center whose starting
// block overlaps nobody else's tiles, searched in deterministic ring
// order so spawns are reproducible. When the board is too crowded for
// any free block it falls back to the center.
func (d *DeathHandler) findSpawn(p *Player) (int, int) {
	cx, cy := d.grid.Center()
	maxR := d.grid.Width() + d.grid.Height()
	for r := 0; r <= maxR; r++ {
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				if abs(x-cx) != r && abs(y-cy) != r {
					continue
				}
				if d.blockFree(p, x, y) {
					return x, y
				}
			}
		}
	}
	return cx, cy
}

// blockFree reports whether the starting block anchored at (x,y) sits
// on the board and overlaps no tile held by another player. Clipped
// blocks at the grid edge are acceptable; stolen tiles are not.
func (d *DeathHandler) blockFree(p *Player, x, y int) bool {
	if !d.grid.InBounds(x, y) {
		return false
	}
	for yy := y - d.spawnRadius; yy <= y+d.spawnRadius; yy++ {
		for xx := x - d.spawnRadius; xx <= x+d.spawnRadius; xx++ {
			t, err := d.grid.TileAt(xx, yy)
			if err != nil {
				continue
			}
			if t.Owner != "" && t.Owner != p.ID {
				return false
			}
		}
	}
	return true
}

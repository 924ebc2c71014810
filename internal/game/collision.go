package game

import "math"

// CollisionDetector checks a player's continuous position against the
// centers of their own trail tiles. It is independent of the tile
// crossing logic in the movement pass: sub-tile precision matters
// here, because a player can brush a trail tile without its cell ever
// becoming the current cell.
type CollisionDetector struct {
	grid *Grid

	// minTrail gates the check until the trail has substance, so a
	// player is not killed the moment they leave territory.
	minTrail int

	// safeZone is a Chebyshev radius around the current cell that is
	// excluded: the most recently drawn tiles are always close to the
	// player and would register as a hit on every tick.
	safeZone int

	// hitRange is the kill distance as a fraction of the tile size.
	hitRange float64
}

// NewCollisionDetector creates a detector with the given tuning.
func NewCollisionDetector(grid *Grid, minTrail, safeZone int, hitRange float64) *CollisionDetector {
	return &CollisionDetector{
		grid:     grid,
		minTrail: minTrail,
		safeZone: safeZone,
		hitRange: hitRange,
	}
}

// Check returns a trail-collision death signal if the player is too
// close to a non-recent tile of their own trail, nil otherwise.
func (c *CollisionDetector) Check(p *Player) *DeathSignal {
	if !p.Drawing {
		return nil
	}
	if c.grid.TrailCount(p.ID) < c.minTrail {
		return nil
	}

	// Safe zone is anchored on the player's current tile as tracked
	// by the movement pass, not recomputed from the position: the two
	// agree during normal movement, and the tracked tile is the
	// authoritative one.
	cx, cy := p.LastTileX, p.LastTileY
	threshold := c.hitRange * c.grid.TileSize()

	tiles := c.grid.Tiles()
	for i := range tiles {
		t := &tiles[i]
		if t.Owner != p.ID || !t.IsTrail {
			continue
		}
		if abs(t.X-cx) <= c.safeZone && abs(t.Y-cy) <= c.safeZone {
			continue
		}
		tx, ty := c.grid.TileCenter(t.X, t.Y)
		if math.Hypot(p.X-tx, p.Y-ty) < threshold {
			return &DeathSignal{PlayerID: p.ID, Reason: DeathTrailCollision}
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package game

// tileClass is the movement pass's view of the tile a player entered.
type tileClass uint8

const (
	tileOutside   tileClass = iota // unowned, or owned by someone else
	tileTerritory                  // player's own settled territory
	tileTrail                      // player's own active trail
)

// Mover advances continuous positions and drives the per-tile trail
// state machine: trail start on leaving territory, trail marking,
// self-trail collision, loop closure on territory re-entry.
//
// All ownership decisions compare integer tile coordinates. The
// continuous position is kept for rendering and for the proximity
// collision check, nothing else.
type Mover struct {
	grid *Grid
}

// NewMover creates a movement pass over the grid.
func NewMover(grid *Grid) *Mover {
	return &Mover{grid: grid}
}

func (m *Mover) classify(p *Player, x, y int) tileClass {
	t, err := m.grid.TileAt(x, y)
	if err != nil {
		return tileOutside
	}
	if t.Owner != p.ID {
		return tileOutside
	}
	if t.IsTrail {
		return tileTrail
	}
	return tileTerritory
}

// Step moves one player by dt seconds. It returns a death signal or a
// claim request when the tile just entered produces one; both nil on a
// plain move. At most one of the two is non-nil.
func (m *Mover) Step(p *Player, trail *Trail, dt float64) (*DeathSignal, *ClaimRequest) {
	if !p.Moving() {
		return nil, nil
	}

	size := m.grid.TileSize()
	p.X += float64(p.DirX) * p.Speed * dt * size
	p.Y += float64(p.DirY) * p.Speed * dt * size

	// Clamp to the grid. If clamping moved us into a different cell,
	// snap to that cell's center and treat it as an immediate arrival.
	maxX := float64(m.grid.Width())*size - 1e-9
	maxY := float64(m.grid.Height())*size - 1e-9
	clampedX := clamp(p.X, 0, maxX)
	clampedY := clamp(p.Y, 0, maxY)
	if clampedX != p.X || clampedY != p.Y {
		preX, preY := m.grid.CellAt(p.X, p.Y)
		p.X, p.Y = clampedX, clampedY
		cx, cy := m.grid.CellAt(p.X, p.Y)
		if cx != preX || cy != preY {
			p.X, p.Y = m.grid.TileCenter(cx, cy)
			p.MovingToNext = false
		}
	}

	cx, cy := m.grid.CellAt(p.X, p.Y)
	if !m.grid.InBounds(cx, cy) {
		// Clamping should make this unreachable; treat it as fatal
		// rather than touching tiles we cannot index.
		return &DeathSignal{PlayerID: p.ID, Reason: DeathOutOfBounds}, nil
	}

	if cx == p.LastTileX && cy == p.LastTileY {
		// Pinned at a snapped tile center (grid edge): buffered turns
		// must still apply, or the player could never leave the wall.
		if !p.MovingToNext && p.HasBuffered {
			wasX, wasY := p.DirX, p.DirY
			p.applyBuffered()
			if p.DirX != wasX || p.DirY != wasY {
				p.X, p.Y = m.grid.TileCenter(cx, cy)
			}
		}
		if p.Drawing {
			trail.Append(p.X, p.Y)
		}
		return nil, nil
	}

	// Entered a new tile's domain. This branch runs exactly once per
	// tile because LastTile advances here.
	p.LastTileX, p.LastTileY = cx, cy

	if p.HasBuffered {
		wasX, wasY := p.DirX, p.DirY
		p.applyBuffered()
		if p.DirX != wasX || p.DirY != wasY {
			// Turning off-center would leave the lattice; align first.
			p.X, p.Y = m.grid.TileCenter(cx, cy)
		}
	}
	p.MovingToNext = true

	switch m.classify(p, cx, cy) {
	case tileTrail:
		if p.Drawing {
			return &DeathSignal{PlayerID: p.ID, Reason: DeathTrailCollision}, nil
		}
		// A leftover trail tile while not drawing is stale state, not
		// an error; walk over it.
		return nil, nil

	case tileTerritory:
		if p.Drawing {
			p.Drawing = false
			return nil, &ClaimRequest{
				PlayerID: p.ID,
				EntryX:   cx,
				EntryY:   cy,
				HasEntry: true,
				Complete: true,
			}
		}
		return nil, nil

	default: // outside own holdings
		if !p.Drawing {
			// The departure tile stays territory; marking starts on
			// this, the first tile beyond it.
			p.Drawing = true
			trail.Begin(p.X, p.Y)
		}
		m.markTrail(p, cx, cy)
		trail.Append(p.X, p.Y)
		return nil, nil
	}
}

// markTrail flags (x,y) as part of the player's trail. Marking for a
// player who is not drawing is invalid state and a local no-op.
func (m *Mover) markTrail(p *Player, x, y int) {
	if !p.Drawing {
		return
	}
	// Bounds were checked by the caller; an error here means a logic
	// bug upstream, and dropping the mark is the contained outcome.
	_ = m.grid.SetTile(x, y, p.ID, true)
}

// DetectLoop scans the player's trail tiles for a topological
// self-intersection: a trail tile with more than two trail-connected
// 4-neighbors. A trail can cross itself without ever re-entering
// territory, so territory re-entry alone cannot catch this. The
// returned request carries no entry point.
func (m *Mover) DetectLoop(p *Player) *ClaimRequest {
	if !p.Drawing {
		return nil
	}
	tiles := m.grid.Tiles()
	for i := range tiles {
		t := &tiles[i]
		if t.Owner != p.ID || !t.IsTrail {
			continue
		}
		neighbors := [4][2]int{
			{t.X + 1, t.Y}, {t.X - 1, t.Y}, {t.X, t.Y + 1}, {t.X, t.Y - 1},
		}
		count := 0
		for _, n := range neighbors {
			nt, err := m.grid.TileAt(n[0], n[1])
			if err != nil {
				continue
			}
			if nt.Owner == p.ID && nt.IsTrail {
				count++
			}
		}
		if count > 2 {
			return &ClaimRequest{PlayerID: p.ID, Complete: true}
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package game

// cell classification for the claim pass.
type claimCell uint8

const (
	cellEmpty claimCell = iota
	cellTerritory
	cellTrail
	cellOther
)

// Claimer converts a closed trail into territory. The enclosed region
// is found by the complement of a border flood fill: everything empty
// that is reachable from the grid edge without crossing an occupied
// cell is outside; whatever empty cells remain are enclosed.
type Claimer struct {
	grid *Grid
}

// NewClaimer creates a claim pass over the grid.
func NewClaimer(grid *Grid) *Claimer {
	return &Claimer{grid: grid}
}

// Resolve consumes one claim request for the player. It returns the
// number of newly enclosed tiles claimed, or a death signal when the
// request has no entry point: a trail that closed on itself without a
// territory return is fatal, not a scoring opportunity.
//
// On a successful claim, every trail tile of the player becomes
// territory (the trail is the claimed border, even when nothing is
// enclosed), the enclosed cells are claimed, score grows by the
// enclosed count, and the trail point history is reset.
func (c *Claimer) Resolve(req *ClaimRequest, p *Player, trail *Trail) (int, *DeathSignal) {
	if !req.Complete || req.PlayerID != p.ID {
		return 0, nil
	}

	if !req.HasEntry {
		return 0, &DeathSignal{PlayerID: p.ID, Reason: DeathCrossedTrail}
	}

	w, h := c.grid.Width(), c.grid.Height()

	// Classification grid. Built once; the flood fill and the claim
	// pass below both read it.
	cells := make([]claimCell, w*h)
	tiles := c.grid.Tiles()
	for i := range tiles {
		t := &tiles[i]
		switch {
		case t.Owner == p.ID && t.IsTrail:
			cells[t.Y*w+t.X] = cellTrail
		case t.Owner == p.ID:
			cells[t.Y*w+t.X] = cellTerritory
		case t.Owner != "":
			cells[t.Y*w+t.X] = cellOther
		}
	}

	// The trail becomes territory unconditionally.
	for i := range tiles {
		t := &tiles[i]
		if t.Owner == p.ID && t.IsTrail {
			t.IsTrail = false
		}
	}

	// Flood fill from every still-empty border cell, marking the
	// outside. 4-connected, iterative.
	outside := make([]bool, w*h)
	stack := make([][2]int, 0, w*h/4)
	seed := func(x, y int) {
		idx := y*w + x
		if cells[idx] == cellEmpty && !outside[idx] {
			outside[idx] = true
			stack = append(stack, [2]int{x, y})
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		seed(0, y)
		seed(w-1, y)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := cur[0], cur[1]
		neighbors := [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}}
		for _, n := range neighbors {
			nx, ny := n[0], n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			idx := ny*w + nx
			if cells[idx] == cellEmpty && !outside[idx] {
				outside[idx] = true
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}

	// Empty cells the fill never reached are enclosed by the loop.
	claimed := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if cells[idx] == cellEmpty && !outside[idx] {
				tiles[idx].Owner = p.ID
				tiles[idx].IsTrail = false
				claimed++
			}
		}
	}

	p.Score += claimed
	p.Claims++
	trail.Reset()
	return claimed, nil
}

package game

import (
	"fmt"
	"math"
)

// Tile is one cell of the board. Owner is the empty string for neutral
// tiles. Tiles are created once at grid construction and mutated in
// place for the life of the match.
//
// Invariant: IsTrail implies Owner != "".
type Tile struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Owner   string `json:"owner"`
	IsTrail bool   `json:"isTrail"`
}

// BoundsError reports a tile coordinate outside the grid. Upstream
// clamping should prevent these; accessors reject rather than index
// out of range.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tile (%d,%d) outside grid %dx%d", e.X, e.Y, e.Width, e.Height)
}

// Grid is the authoritative tile store. Tiles live in a flat slice
// indexed by y*width+x so every lookup is O(1) - the movement,
// collision and claim passes all touch the grid per tick and must not
// pay a scan per lookup.
type Grid struct {
	width    int
	height   int
	tileSize float64
	tiles    []Tile
}

// NewGrid allocates a width x height grid of neutral tiles.
func NewGrid(width, height int, tileSize float64) *Grid {
	g := &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[y*width+x] = Tile{X: x, Y: y}
		}
	}
	return g
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the edge length of one tile in world units.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (x,y) is a valid tile coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TileAt returns the tile at (x,y).
func (g *Grid) TileAt(x, y int) (*Tile, error) {
	if !g.InBounds(x, y) {
		return nil, &BoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return &g.tiles[y*g.width+x], nil
}

// SetTile overwrites ownership and trail state at (x,y).
func (g *Grid) SetTile(x, y int, owner string, isTrail bool) error {
	if !g.InBounds(x, y) {
		return &BoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	t := &g.tiles[y*g.width+x]
	t.Owner = owner
	t.IsTrail = isTrail
	return nil
}

// ResetTile restores the neutral baseline at (x,y). The two-tone
// checkerboard pattern is cosmetic and derived from (x+y)%2 at render
// time, so neutral state is just "no owner, no trail".
func (g *Grid) ResetTile(x, y int) error {
	return g.SetTile(x, y, "", false)
}

// Center returns the tile coordinate of the grid's center.
func (g *Grid) Center() (int, int) {
	return g.width / 2, g.height / 2
}

// CellAt converts a continuous world position to the tile coordinate
// whose domain contains it. The result may be out of bounds; callers
// clamp or check. Floor, not truncation: positions just left of or
// above the grid must resolve to cell -1, or the boundary snap would
// never see a cell change there.
func (g *Grid) CellAt(px, py float64) (int, int) {
	return int(math.Floor(px / g.tileSize)), int(math.Floor(py / g.tileSize))
}

// TileCenter returns the world position of the center of tile (x,y).
func (g *Grid) TileCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * g.tileSize, (float64(y) + 0.5) * g.tileSize
}

// OwnedCount returns how many tiles the player currently owns,
// counting both territory and trail tiles.
func (g *Grid) OwnedCount(owner string) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Owner == owner {
			n++
		}
	}
	return n
}

// TrailCount returns how many of the player's tiles are trail.
func (g *Grid) TrailCount(owner string) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].Owner == owner && g.tiles[i].IsTrail {
			n++
		}
	}
	return n
}

// Tiles exposes the backing slice for whole-grid passes (claiming,
// snapshots). Callers must not retain it across ticks.
func (g *Grid) Tiles() []Tile {
	return g.tiles
}

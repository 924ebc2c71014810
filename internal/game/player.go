package game

import "fmt"

// Player is one participant. Position is continuous (world units);
// all ownership and trail decisions run on integer tile coordinates,
// the continuous position exists for movement interpolation and the
// proximity-based trail collision check.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Current direction, unit cardinal or zero.
	DirX int `json:"dirX"`
	DirY int `json:"dirY"`

	// Direction change received mid-transit, applied at the next
	// tile-center arrival.
	BufferedX   int  `json:"-"`
	BufferedY   int  `json:"-"`
	HasBuffered bool `json:"-"`

	Speed float64 `json:"-"` // tiles per second
	Score int     `json:"score"`

	Drawing      bool `json:"drawing"`
	LastTileX    int  `json:"-"`
	LastTileY    int  `json:"-"`
	MovingToNext bool `json:"-"`

	Deaths int `json:"deaths"`
	Claims int `json:"claims"`
}

// PlayerOptions contains options for creating a player.
type PlayerOptions struct {
	Color string
	Speed float64 // tiles per second, defaults to 5 if zero
}

var playerColors = []string{
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#96ceb4",
	"#ffeaa7", "#fd79a8", "#00b894", "#6c5ce7",
	"#fdcb6e", "#e17055", "#00cec9", "#74b9ff",
}

// NewPlayer creates a player. Position and territory are assigned by
// the engine's respawn pass, not here.
func NewPlayer(name string, seq int, opts PlayerOptions) *Player {
	color := opts.Color
	if color == "" {
		color = playerColors[seq%len(playerColors)]
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = 5
	}
	return &Player{
		ID:    fmt.Sprintf("player_%d_%s", seq, name),
		Name:  name,
		Color: color,
		Speed: speed,
	}
}

// Moving reports whether the player has a nonzero direction.
func (p *Player) Moving() bool {
	return p.DirX != 0 || p.DirY != 0
}

// SetDirection requests a four-way direction change. Diagonals and
// zero vectors are rejected. A direct reversal of the current
// direction is ignored outright. A non-reversal change made while the
// player is between tile centers is buffered and applied at the next
// tile-center arrival.
func (p *Player) SetDirection(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	if dx != 0 && dy != 0 {
		return
	}
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return
	}
	if p.Moving() && dx == -p.DirX && dy == -p.DirY {
		return
	}
	if p.MovingToNext {
		p.BufferedX, p.BufferedY = dx, dy
		p.HasBuffered = true
		return
	}
	p.DirX, p.DirY = dx, dy
}

// applyBuffered installs a buffered direction change, if any. Called
// by the movement pass at tile-center arrival. A buffered reversal is
// dropped here as well: the direction may have changed since the
// buffer was written.
func (p *Player) applyBuffered() {
	if !p.HasBuffered {
		return
	}
	dx, dy := p.BufferedX, p.BufferedY
	p.HasBuffered = false
	if p.Moving() && dx == -p.DirX && dy == -p.DirY {
		return
	}
	p.DirX, p.DirY = dx, dy
}

// clearTransit resets the direction and transit state. Used by the
// death pass.
func (p *Player) clearTransit() {
	p.DirX, p.DirY = 0, 0
	p.BufferedX, p.BufferedY = 0, 0
	p.HasBuffered = false
	p.MovingToNext = false
	p.Drawing = false
}

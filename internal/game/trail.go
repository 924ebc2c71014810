package game

// TrailPoint is a 2D position in the trail's point history.
type TrailPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trail is the ordered point history of one player's active trail,
// kept for polyline rendering and proximity checks. Tile-level trail
// state lives on the grid; this is the continuous path.
type Trail struct {
	Owner  string
	Active bool

	points     []TrailPoint
	minSpacing float64
}

// NewTrail creates an inactive trail for the player. minSpacing bounds
// memory: a point is appended only when it is at least that far from
// the previous one.
func NewTrail(owner string, minSpacing float64) *Trail {
	return &Trail{Owner: owner, minSpacing: minSpacing}
}

// Begin activates the trail, starting a fresh point history.
func (t *Trail) Begin(x, y float64) {
	t.Active = true
	t.points = t.points[:0]
	t.points = append(t.points, TrailPoint{X: x, Y: y})
}

// Append records the player's position if the trail is active and the
// point is far enough from the last one.
func (t *Trail) Append(x, y float64) {
	if !t.Active {
		return
	}
	if n := len(t.points); n > 0 {
		last := t.points[n-1]
		dx, dy := x-last.X, y-last.Y
		if dx*dx+dy*dy < t.minSpacing*t.minSpacing {
			return
		}
	}
	t.points = append(t.points, TrailPoint{X: x, Y: y})
}

// Reset deactivates the trail and drops its points. Called when the
// loop closes, by claim or by death.
func (t *Trail) Reset() {
	t.Active = false
	t.points = t.points[:0]
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns a copy of the point history. A polyline is only
// drawable from two points up; callers check Len.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, len(t.points))
	copy(out, t.points)
	return out
}

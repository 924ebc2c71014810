package game

// Immutable snapshots decouple readers (render, API, WebSocket
// broadcast) from the tick goroutine: the engine publishes a fresh
// snapshot at the end of every tick via an atomic pointer, and readers
// never touch live state.

// PlayerSnapshot is an immutable copy of player state.
type PlayerSnapshot struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	DirX    int     `json:"dirX"`
	DirY    int     `json:"dirY"`
	Score   int     `json:"score"`
	Drawing bool    `json:"drawing"`
	Deaths  int     `json:"deaths"`
	Claims  int     `json:"claims"`
}

// TileSnapshot is one owned or trail tile. Neutral tiles are omitted;
// the renderer derives the checkerboard baseline from coordinates.
type TileSnapshot struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Owner   string `json:"owner"`
	IsTrail bool   `json:"isTrail"`
}

// TrailSnapshot is the point history of one active trail, for
// polyline rendering. Only trails with at least two points are worth
// drawing; the renderer checks.
type TrailSnapshot struct {
	Owner  string       `json:"owner"`
	Color  string       `json:"color"`
	Points []TrailPoint `json:"points"`
}

// GameSnapshot is a complete immutable view of one tick boundary.
type GameSnapshot struct {
	TickNum       uint64           `json:"tickNum"`
	GridWidth     int              `json:"gridWidth"`
	GridHeight    int              `json:"gridHeight"`
	TileSize      float64          `json:"tileSize"`
	TimeRemaining float64          `json:"timeRemaining"`
	MatchOver     bool             `json:"matchOver"`
	WinnerID      string           `json:"winnerId,omitempty"`
	Players       []PlayerSnapshot `json:"players"`
	Tiles         []TileSnapshot   `json:"tiles"`
	Trails        []TrailSnapshot  `json:"trails"`
}

// buildSnapshot copies live state. Caller holds the engine lock.
func (e *Engine) buildSnapshot() *GameSnapshot {
	snap := &GameSnapshot{
		TickNum:       e.tickCount,
		GridWidth:     e.grid.Width(),
		GridHeight:    e.grid.Height(),
		TileSize:      e.grid.TileSize(),
		TimeRemaining: e.timeRemaining,
		MatchOver:     e.matchOver,
		WinnerID:      e.winnerID,
		Players:       make([]PlayerSnapshot, 0, len(e.order)),
		Trails:        make([]TrailSnapshot, 0, len(e.order)),
	}

	for _, id := range e.order {
		p := e.players[id]
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:      p.ID,
			Name:    p.Name,
			Color:   p.Color,
			X:       p.X,
			Y:       p.Y,
			DirX:    p.DirX,
			DirY:    p.DirY,
			Score:   p.Score,
			Drawing: p.Drawing,
			Deaths:  p.Deaths,
			Claims:  p.Claims,
		})
		if t := e.trails[id]; t != nil && t.Active && t.Len() >= 2 {
			snap.Trails = append(snap.Trails, TrailSnapshot{
				Owner:  p.ID,
				Color:  p.Color,
				Points: t.Points(),
			})
		}
	}

	tiles := e.grid.Tiles()
	for i := range tiles {
		if tiles[i].Owner == "" {
			continue
		}
		snap.Tiles = append(snap.Tiles, TileSnapshot{
			X:       tiles[i].X,
			Y:       tiles[i].Y,
			Owner:   tiles[i].Owner,
			IsTrail: tiles[i].IsTrail,
		})
	}
	return snap
}

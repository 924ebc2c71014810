package game

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"landgrab/internal/config"
)

// EngineConfig bundles the configuration sections the engine needs.
type EngineConfig struct {
	Grid  config.GridConfig
	Rules config.RulesConfig
	Match config.MatchConfig
}

// Engine owns the match: the grid, the players, and the fixed-phase
// tick. One tick runs, in order: movement (with loop detection),
// collision, death handling, claim resolution, timer, snapshot. The
// phases never interleave, so the grid has a single writer per phase
// and no tile is written by two phases in the same tick.
//
// Death resolution strictly precedes claim resolution: a death raised
// in the movement or collision phase cancels the player's pending
// claim before the claim phase runs.
type Engine struct {
	mu  sync.RWMutex
	cfg EngineConfig

	grid    *Grid
	players map[string]*Player // keyed by player ID
	byName  map[string]string  // join name -> player ID
	trails  map[string]*Trail
	order   []string // deterministic iteration and tie-break order

	mover        *Mover
	collider     *CollisionDetector
	claimer      *Claimer
	deathHandler *DeathHandler

	// Per-player claim slots and the per-tick death list. Both are
	// consumed and cleared within the tick that filled them. A player
	// holds at most one slot; slots resolve in join order.
	pendingClaims map[string]*ClaimRequest
	pendingDeaths []DeathSignal

	tickCount     uint64
	timeRemaining float64
	matchOver     bool
	winnerID      string

	playerSeq int
	running   bool
	ticker    *time.Ticker
	stopChan  chan struct{}

	eventLog *EventLog
	snapshot atomic.Pointer[GameSnapshot]

	// Observability callbacks, wired by the caller. All optional.
	OnTick     func(duration time.Duration, players int)
	OnDeath    func(reason string)
	OnClaim    func(tiles int)
	OnMatchEnd func(winnerID string)
}

// NewEngine creates an engine. No goroutines run until Start.
func NewEngine(cfg EngineConfig) *Engine {
	grid := NewGrid(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.TileSize)
	e := &Engine{
		cfg:           cfg,
		grid:          grid,
		players:       make(map[string]*Player),
		byName:        make(map[string]string),
		trails:        make(map[string]*Trail),
		mover:         NewMover(grid),
		collider:      NewCollisionDetector(grid, cfg.Rules.CollisionMinTrail, cfg.Rules.CollisionSafeZone, cfg.Rules.CollisionRange),
		claimer:       NewClaimer(grid),
		deathHandler:  NewDeathHandler(grid, cfg.Rules.SpawnRadius),
		pendingClaims: make(map[string]*ClaimRequest),
		timeRemaining: cfg.Match.Duration,
		stopChan:      make(chan struct{}),
		eventLog:      NewEventLog(),
	}
	e.snapshot.Store(e.buildSnapshot())
	return e
}

// Start begins the tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.Match.TickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Engine started: %dx%d grid, %d TPS, %.0fs match",
		e.cfg.Grid.Width, e.cfg.Grid.Height, e.cfg.Match.TickRate, e.cfg.Match.Duration)
}

// Stop stops the tick loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)
	e.eventLog.Stop()
	log.Println("🛑 Engine stopped")
}

// StartEventLog begins persisting gameplay events to path.
func (e *Engine) StartEventLog(path string) error {
	return e.eventLog.Start(path)
}

func (e *Engine) tick() {
	start := time.Now()

	e.mu.Lock()
	e.step(1.0 / float64(e.cfg.Match.TickRate))
	players := len(e.players)
	e.mu.Unlock()

	if e.OnTick != nil {
		e.OnTick(time.Since(start), players)
	}
}

// step advances the match by dt seconds. Caller holds the lock.
// Exposed to tests through the package boundary only.
func (e *Engine) step(dt float64) {
	e.tickCount++

	// After timer expiry every mutating phase is frozen; snapshots
	// keep flowing for the render side.
	if e.matchOver {
		e.snapshot.Store(e.buildSnapshot())
		return
	}

	// Phase: movement and trail state machine.
	sentenced := make(map[string]bool)
	for _, id := range e.order {
		p := e.players[id]
		trail := e.trails[id]

		death, claim := e.mover.Step(p, trail, dt)
		if death != nil {
			e.pendingDeaths = append(e.pendingDeaths, *death)
			sentenced[id] = true
			continue
		}
		if claim != nil {
			if _, pending := e.pendingClaims[id]; !pending {
				e.pendingClaims[id] = claim
			}
		}

		// Topological loop check: a trail can self-intersect without
		// ever re-entering territory.
		if p.Drawing {
			if _, pending := e.pendingClaims[id]; !pending {
				if lc := e.mover.DetectLoop(p); lc != nil {
					e.pendingClaims[id] = lc
				}
			}
		}
	}

	// Phase: proximity collision.
	for _, id := range e.order {
		if sentenced[id] {
			continue
		}
		if death := e.collider.Check(e.players[id]); death != nil {
			e.pendingDeaths = append(e.pendingDeaths, *death)
			sentenced[id] = true
		}
	}

	// Phase: death handling. Cancels the pending claim of anyone who
	// died this tick before the claim phase can see it.
	for _, sig := range e.pendingDeaths {
		e.applyDeath(sig)
	}
	e.pendingDeaths = e.pendingDeaths[:0]

	// Phase: claim resolution, in join order. Each slot is consumed
	// exactly once; slots cancelled by the death phase are dropped.
	for _, id := range e.order {
		req, ok := e.pendingClaims[id]
		if !ok {
			continue
		}
		delete(e.pendingClaims, id)
		if !req.Complete {
			continue
		}
		p := e.players[id]
		claimed, death := e.claimer.Resolve(req, p, e.trails[id])
		if death != nil {
			// Entry-less closure: the claim becomes a death, applied
			// within the same tick.
			e.applyDeath(*death)
			continue
		}
		e.eventLog.EmitSimple(EventTypeClaim, e.tickCount, p.ID,
			ClaimPayload{PlayerID: p.ID, Claimed: claimed, Score: p.Score})
		if e.OnClaim != nil {
			e.OnClaim(claimed)
		}
	}

	// Phase: match countdown.
	e.timeRemaining -= dt
	if e.timeRemaining <= 0 {
		e.timeRemaining = 0
		e.matchOver = true
		e.winnerID = e.leaderLocked()
		e.eventLog.EmitSimple(EventTypeMatchEnd, e.tickCount, e.winnerID,
			MatchEndPayload{WinnerID: e.winnerID, Scores: e.scoresLocked()})
		if e.OnMatchEnd != nil {
			e.OnMatchEnd(e.winnerID)
		}
		log.Printf("🏁 Match over, winner: %s", e.winnerID)
	}

	e.snapshot.Store(e.buildSnapshot())
}

// applyDeath runs the death handler for one signal and records it.
// Caller holds the lock.
func (e *Engine) applyDeath(sig DeathSignal) {
	p, ok := e.players[sig.PlayerID]
	if !ok {
		return
	}
	// Record the tile the player died on before the respawn moves them.
	diedX, diedY := p.LastTileX, p.LastTileY
	e.deathHandler.Apply(p, e.trails[p.ID], e.pendingClaims[sig.PlayerID])
	delete(e.pendingClaims, sig.PlayerID)
	e.eventLog.EmitSimple(EventTypeDeath, e.tickCount, p.ID,
		DeathPayload{PlayerID: p.ID, Reason: sig.Reason.String(), TileX: diedX, TileY: diedY})
	e.eventLog.EmitSimple(EventTypeRespawn, e.tickCount, p.ID,
		JoinPayload{PlayerID: p.ID, Name: p.Name, Color: p.Color,
			SpawnX: p.LastTileX, SpawnY: p.LastTileY, Score: p.Score})
	if e.OnDeath != nil {
		e.OnDeath(sig.Reason.String())
	}
}

// AddPlayer adds a player by join name. Joining again with the same
// name returns the existing player. Returns nil when the match is
// full or already over.
func (e *Engine) AddPlayer(name string, opts PlayerOptions) *Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id, ok := e.byName[name]; ok {
		return e.players[id]
	}
	if len(e.players) >= e.cfg.Rules.MaxPlayers {
		log.Printf("⚠️ Player limit reached (%d), rejecting: %s", e.cfg.Rules.MaxPlayers, name)
		return nil
	}
	if e.matchOver {
		return nil
	}

	if opts.Speed <= 0 {
		opts.Speed = e.cfg.Rules.Speed
	}
	e.playerSeq++
	p := NewPlayer(name, e.playerSeq, opts)
	trail := NewTrail(p.ID, e.cfg.Rules.TrailPointSpacing)

	e.players[p.ID] = p
	e.byName[name] = p.ID
	e.trails[p.ID] = trail
	e.order = append(e.order, p.ID)

	e.deathHandler.Respawn(p, trail)

	e.eventLog.EmitSimple(EventTypePlayerJoin, e.tickCount, p.ID,
		JoinPayload{PlayerID: p.ID, Name: p.Name, Color: p.Color,
			SpawnX: p.LastTileX, SpawnY: p.LastTileY, Score: p.Score})
	log.Printf("👤 Player joined: %s (%s)", name, p.ID)
	return p
}

// RemovePlayer releases the player's tiles and forgets them.
func (e *Engine) RemovePlayer(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.byName[name]
	if !ok {
		return
	}
	p := e.players[id]

	tiles := e.grid.Tiles()
	held := make([][2]int, 0, 64)
	for i := range tiles {
		if tiles[i].Owner == id {
			held = append(held, [2]int{tiles[i].X, tiles[i].Y})
		}
	}
	for _, xy := range held {
		_ = e.grid.ResetTile(xy[0], xy[1])
	}

	delete(e.players, id)
	delete(e.trails, id)
	delete(e.byName, name)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	delete(e.pendingClaims, id)

	e.eventLog.EmitSimple(EventTypePlayerLeave, e.tickCount, id, JoinPayload{PlayerID: id, Name: p.Name})
	log.Printf("👋 Player left: %s", name)
}

// GetPlayer returns a player by join name, nil if unknown.
func (e *Engine) GetPlayer(name string) *Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id, ok := e.byName[name]; ok {
		return e.players[id]
	}
	return nil
}

// SetDirection forwards a direction command to a player by ID. The
// command obeys the player's buffering rules; it never takes effect
// mid-tile.
func (e *Engine) SetDirection(playerID string, dx, dy int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.matchOver {
		return false
	}
	p, ok := e.players[playerID]
	if !ok {
		return false
	}
	p.SetDirection(dx, dy)
	return true
}

// Snapshot returns the latest immutable snapshot. Never nil.
func (e *Engine) Snapshot() *GameSnapshot {
	return e.snapshot.Load()
}

// TimeRemaining returns the countdown in seconds.
func (e *Engine) TimeRemaining() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.timeRemaining
}

// MatchOver reports whether the countdown expired.
func (e *Engine) MatchOver() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.matchOver
}

// Winner returns the winning player ID once the match is over. Ties
// go to the earliest joiner; the full score table is available from
// Scores for callers with their own tie policy.
func (e *Engine) Winner() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.winnerID
}

// Scores returns the current score per player ID.
func (e *Engine) Scores() map[string]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scoresLocked()
}

func (e *Engine) scoresLocked() map[string]int {
	out := make(map[string]int, len(e.players))
	for id, p := range e.players {
		out[id] = p.Score
	}
	return out
}

func (e *Engine) leaderLocked() string {
	best := ""
	bestScore := -1
	for _, id := range e.order {
		if s := e.players[id].Score; s > bestScore {
			best, bestScore = id, s
		}
	}
	return best
}

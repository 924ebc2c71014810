package game

// DeathReason classifies why a player was reset.
type DeathReason uint8

const (
	DeathTrailCollision DeathReason = iota // ran into their own trail
	DeathCrossedTrail                      // trail self-intersected without a territory return
	DeathOutOfBounds                       // position resolved outside the grid
	DeathHitOtherPlayer                    // collided with another player
)

// String returns the bounded label used in events and metrics.
func (r DeathReason) String() string {
	switch r {
	case DeathTrailCollision:
		return "trail_collision"
	case DeathCrossedTrail:
		return "crossed_trail"
	case DeathOutOfBounds:
		return "out_of_bounds"
	case DeathHitOtherPlayer:
		return "hit_other_player"
	default:
		return "unknown"
	}
}

// DeathSignal is raised by the movement or collision pass and consumed
// by the death pass within the same tick.
type DeathSignal struct {
	PlayerID string
	Reason   DeathReason
}

// ClaimRequest is a pending claim slot. Each player has at most one
// per tick; the claim pass consumes it exactly once and clears it.
// Complete gates consumption so a zero value is a no-op.
//
// HasEntry is false for loops detected by the trail-topology scan,
// where no territory re-entry tile exists. Policy for those is death,
// not claiming.
type ClaimRequest struct {
	PlayerID string
	EntryX   int
	EntryY   int
	HasEntry bool
	Complete bool
}

// clear empties the slot.
func (c *ClaimRequest) clear() {
	*c = ClaimRequest{}
}

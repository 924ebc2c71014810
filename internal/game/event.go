package game

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypePlayerJoin
	EventTypePlayerLeave
	EventTypeDeath
	EventTypeClaim
	EventTypeRespawn
	EventTypeMatchEnd
)

// Event is one entry in the match event log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Game tick this occurred in
	PlayerID  string    `json:"playerId"`
	Payload   []byte    `json:"payload"` // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypePlayerJoin:
		return "player_join"
	case EventTypePlayerLeave:
		return "player_leave"
	case EventTypeDeath:
		return "death"
	case EventTypeClaim:
		return "claim"
	case EventTypeRespawn:
		return "respawn"
	case EventTypeMatchEnd:
		return "match_end"
	default:
		return "unknown"
	}
}

// Typed payloads for the event log

// JoinPayload records a player entering the match.
type JoinPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	SpawnX   int    `json:"spawnX"`
	SpawnY   int    `json:"spawnY"`
	Score    int    `json:"score"`
}

// DeathPayload records a death and its cause.
type DeathPayload struct {
	PlayerID string `json:"playerId"`
	Reason   string `json:"reason"`
	TileX    int    `json:"tileX"`
	TileY    int    `json:"tileY"`
}

// ClaimPayload records a resolved territory claim.
type ClaimPayload struct {
	PlayerID string `json:"playerId"`
	Claimed  int    `json:"claimed"`
	Score    int    `json:"score"`
}

// MatchEndPayload records the final standings at timer expiry.
type MatchEndPayload struct {
	WinnerID string         `json:"winnerId"`
	Scores   map[string]int `json:"scores"`
}

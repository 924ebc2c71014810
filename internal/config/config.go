// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all board, rules and server
// settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// BOARD CONFIGURATION
// =============================================================================

// GridConfig holds the board dimensions. These values are shared
// between the game engine and the frame renderer.
type GridConfig struct {
	Width    int     // Board width in tiles
	Height   int     // Board height in tiles
	TileSize float64 // Tile edge length in world units / pixels
}

// DefaultGrid returns the default board configuration.
func DefaultGrid() GridConfig {
	return GridConfig{
		Width:    40, // 800 world units across
		Height:   30, // 600 world units high
		TileSize: 20,
	}
}

// GridFromEnv returns board configuration with environment variable
// overrides. Environment variables take precedence over defaults.
func GridFromEnv() GridConfig {
	cfg := DefaultGrid()
	if w := getEnvInt("GRID_WIDTH", 0); w > 0 {
		cfg.Width = w
	}
	if h := getEnvInt("GRID_HEIGHT", 0); h > 0 {
		cfg.Height = h
	}
	if ts := getEnvFloat("TILE_SIZE", 0); ts > 0 {
		cfg.TileSize = ts
	}
	return cfg
}

// =============================================================================
// GAMEPLAY RULES
// =============================================================================

// RulesConfig holds the gameplay tuning knobs.
type RulesConfig struct {
	Speed             float64 // Player speed in tiles per second
	TrailPointSpacing float64 // Minimum world-unit gap between recorded trail points
	CollisionMinTrail int     // Trail tiles required before self-collision applies
	CollisionSafeZone int     // Chebyshev radius around the player excluded from collision
	CollisionRange    float64 // Kill distance as a fraction of tile size
	SpawnRadius       int     // Starting block half-width (radius 2 = 5x5 block)
	MaxPlayers        int     // Hard cap on participants
}

// DefaultRules returns the default gameplay tuning.
func DefaultRules() RulesConfig {
	return RulesConfig{
		Speed:             5,
		TrailPointSpacing: 5,
		CollisionMinTrail: 10,
		CollisionSafeZone: 1,
		CollisionRange:    0.75,
		SpawnRadius:       2,
		MaxPlayers:        32,
	}
}

// RulesFromEnv returns rules with environment variable overrides.
func RulesFromEnv() RulesConfig {
	cfg := DefaultRules()
	if v := getEnvFloat("PLAYER_SPEED", 0); v > 0 {
		cfg.Speed = v
	}
	if v := getEnvInt("COLLISION_MIN_TRAIL", 0); v > 0 {
		cfg.CollisionMinTrail = v
	}
	if v := getEnvInt("SPAWN_RADIUS", 0); v > 0 {
		cfg.SpawnRadius = v
	}
	if v := getEnvInt("MAX_PLAYERS", 0); v > 0 {
		cfg.MaxPlayers = v
	}
	return cfg
}

// =============================================================================
// MATCH CONFIGURATION
// =============================================================================

// MatchConfig holds tick rate and match countdown settings.
type MatchConfig struct {
	TickRate int     // Simulation ticks per second
	Duration float64 // Match length in seconds; single countdown, no pause
}

// DefaultMatch returns the default match configuration.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		TickRate: 30,
		Duration: 300, // 5 minutes
	}
}

// MatchFromEnv returns match configuration with environment variable
// overrides.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()
	if v := getEnvInt("TICK_RATE", 0); v > 0 {
		cfg.TickRate = v
	}
	if v := getEnvFloat("MATCH_DURATION", 0); v > 0 {
		cfg.Duration = v
	}
	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         8080,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if v := getEnvInt("PORT", 0); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("EVENT_LOG_PATH"); v != "" {
		cfg.EventLogPath = v
	}
	return cfg
}

// =============================================================================
// AGGREGATE
// =============================================================================

// Config aggregates every section.
type Config struct {
	Grid   GridConfig
	Rules  RulesConfig
	Match  MatchConfig
	Server ServerConfig
}

// Load returns the full configuration with environment overrides
// applied. Call godotenv.Load first if a .env file should be honored.
func Load() Config {
	return Config{
		Grid:   GridFromEnv(),
		Rules:  RulesFromEnv(),
		Match:  MatchFromEnv(),
		Server: ServerFromEnv(),
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

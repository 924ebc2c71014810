package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"landgrab/internal/api"
	"landgrab/internal/config"
	"landgrab/internal/game"
	"landgrab/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🗺️ ================================")
	log.Println("🗺️  LANDGRAB - GAME SERVER")
	log.Println("🗺️ ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	gridCfg := appConfig.Grid
	matchCfg := appConfig.Match
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %dx%d board, %d TPS, %.0fs match, %d players max",
		gridCfg.Width, gridCfg.Height, matchCfg.TickRate, matchCfg.Duration, appConfig.Rules.MaxPlayers)

	// Create game engine with centralized config
	engine := game.NewEngine(game.EngineConfig{
		Grid:  gridCfg,
		Rules: appConfig.Rules,
		Match: matchCfg,
	})

	// Engine callbacks feed the metrics; all bounded-cardinality.
	engine.OnTick = api.RecordTick
	engine.OnDeath = api.RecordDeath
	engine.OnClaim = api.RecordClaim
	engine.OnMatchEnd = func(winnerID string) {
		log.Printf("🏆 Winner: %s", winnerID)
	}

	// Start event log
	if err := engine.StartEventLog(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	// Start debug server
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	renderer := render.NewRenderer()
	server := api.NewServer(engine, renderer)

	// Start game engine
	engine.Start()
	log.Println("✅ Game engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	engine.Stop()
	log.Println("👋 Goodbye!")
}

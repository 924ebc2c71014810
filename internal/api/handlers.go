package api

import (
	"encoding/json"
	"net/http"

	"landgrab/internal/game"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Snapshot())
}

func (h *routerHandlers) handleGetScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"scores":    h.engine.Scores(),
		"matchOver": h.engine.MatchOver(),
		"winner":    h.engine.Winner(),
	})
}

func (h *routerHandlers) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	writeJSON(w, map[string]interface{}{
		"tickNum":       snap.TickNum,
		"timeRemaining": h.engine.TimeRemaining(),
		"matchOver":     snap.MatchOver,
		"winner":        snap.WinnerID,
		"playerCount":   len(snap.Players),
	})
}

func (h *routerHandlers) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, "Renderer not configured", http.StatusServiceUnavailable)
		return
	}

	png, err := h.renderer.RenderPNG(h.engine.Snapshot())
	if err != nil {
		writeError(w, "Render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (h *routerHandlers) handlePlayerJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	player := h.engine.AddPlayer(req.Name, game.PlayerOptions{
		Color: req.Color,
	})

	// Full match and finished match both refuse joins
	if player == nil {
		writeError(w, "Match is full or over", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]interface{}{
		"id":    player.ID,
		"name":  player.Name,
		"color": player.Color,
		"score": player.Score,
	})
}

func (h *routerHandlers) handlePlayerLeave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		writeError(w, "Name is required", http.StatusBadRequest)
		return
	}

	h.engine.RemovePlayer(req.Name)
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handlePlayerDirection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID string `json:"playerId"`
		DX       int    `json:"dx"`
		DY       int    `json:"dy"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" {
		writeError(w, "playerId is required", http.StatusBadRequest)
		return
	}

	ok := h.engine.SetDirection(req.PlayerID, req.DX, req.DY)
	writeJSON(w, map[string]bool{"success": ok})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

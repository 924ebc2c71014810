package api

import (
	"net/http"
	"testing"
	"time"
)

// TestIPRateLimiterBurst tests that requests beyond the burst are rejected
func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             3,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("Request %d within burst should be allowed", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Request beyond burst should be rejected")
	}

	// A different IP has its own budget.
	if !rl.Allow("10.0.0.2") {
		t.Error("Fresh IP should be allowed")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 4 || stats["rejected"] != 1 {
		t.Errorf("Unexpected stats: %v", stats)
	}
}

// TestWebSocketRateLimiterPerIP tests the concurrent connection cap
func TestWebSocketRateLimiterPerIP(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("10.0.0.1") || !wrl.Allow("10.0.0.1") {
		t.Fatal("Connections within the cap should be allowed")
	}
	if wrl.Allow("10.0.0.1") {
		t.Error("Third connection should be rejected")
	}

	wrl.Release("10.0.0.1")
	if !wrl.Allow("10.0.0.1") {
		t.Error("Released slot should be reusable")
	}
	if wrl.GetConnectionCount("10.0.0.1") != 2 {
		t.Errorf("Expected 2 connections tracked, got %d", wrl.GetConnectionCount("10.0.0.1"))
	}
}

// TestIsAllowedOrigin tests the origin gate used at WebSocket upgrade
func TestIsAllowedOrigin(t *testing.T) {
	for _, origin := range []string{"http://localhost", "http://localhost:3000", "http://127.0.0.1:8080"} {
		if !IsAllowedOrigin(origin) {
			t.Errorf("Local origin %q should be allowed", origin)
		}
	}
	for _, origin := range []string{"", "https://example.com", "http://evil.test"} {
		if IsAllowedOrigin(origin) {
			t.Errorf("Origin %q should be rejected", origin)
		}
	}
}

// TestGetClientIP tests proxy header handling
func TestGetClientIP(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.168.1.5:1234"
	if ip := GetClientIP(r); ip != "192.168.1.5" {
		t.Errorf("Expected RemoteAddr host, got %q", ip)
	}

	r.Header.Set("X-Real-IP", "203.0.113.9")
	if ip := GetClientIP(r); ip != "203.0.113.9" {
		t.Errorf("Expected X-Real-IP, got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.9")
	if ip := GetClientIP(r); ip != "198.51.100.7" {
		t.Errorf("Expected first X-Forwarded-For entry, got %q", ip)
	}
}

package render

import (
	"bytes"
	"image/png"
	"testing"

	"landgrab/internal/game"
)

func testSnapshot() *game.GameSnapshot {
	return &game.GameSnapshot{
		TickNum:    1,
		GridWidth:  10,
		GridHeight: 8,
		TileSize:   20,
		Players: []game.PlayerSnapshot{
			{ID: "p1", Name: "alice", Color: "#e74c3c", X: 90, Y: 70, Score: 9},
		},
		Tiles: []game.TileSnapshot{
			{X: 4, Y: 3, Owner: "p1"},
			{X: 5, Y: 3, Owner: "p1"},
			{X: 6, Y: 3, Owner: "p1", IsTrail: true},
		},
		Trails: []game.TrailSnapshot{
			{Owner: "p1", Color: "#e74c3c", Points: []game.TrailPoint{{X: 90, Y: 70}, {X: 110, Y: 70}, {X: 130, Y: 70}}},
		},
	}
}

// TestRenderPNGProducesDecodableImage tests the frame pipeline end to end
func TestRenderPNGProducesDecodableImage(t *testing.T) {
	r := NewRenderer()

	data, err := r.RenderPNG(testSnapshot())
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 160 {
		t.Errorf("Expected 200x160 frame, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

// TestRenderPNGRejectsEmptySnapshot tests input validation
func TestRenderPNGRejectsEmptySnapshot(t *testing.T) {
	r := NewRenderer()
	if _, err := r.RenderPNG(nil); err == nil {
		t.Error("Expected an error for a nil snapshot")
	}
	if _, err := r.RenderPNG(&game.GameSnapshot{}); err == nil {
		t.Error("Expected an error for a zero-size grid")
	}
}

// TestParseHexFallsBackToGray tests malformed color handling
func TestParseHexFallsBackToGray(t *testing.T) {
	r := NewRenderer()
	rgb := r.parseHex("not-a-color")
	if rgb != [3]float64{0.5, 0.5, 0.5} {
		t.Errorf("Expected gray fallback, got %v", rgb)
	}

	rgb = r.parseHex("#ff0000")
	if rgb[0] != 1 || rgb[1] != 0 || rgb[2] != 0 {
		t.Errorf("Expected pure red, got %v", rgb)
	}
}

// Package render draws board snapshots as PNG frames with fogleman/gg.
// The renderer only reads immutable snapshots, so it can run on any
// goroutine without touching engine state.
package render

import (
	"bytes"
	"fmt"

	"landgrab/internal/game"

	"github.com/fogleman/gg"
)

// Checkerboard shades for neutral tiles. The two-tone pattern is
// derived from (x+y)%2, never stored in the grid.
const (
	boardLight = 0.16
	boardDark  = 0.13
)

const (
	territoryAlpha = 0.55
	trailTileAlpha = 0.80
	trailLineWidth = 3.0
)

// Renderer draws snapshots. Safe for a single caller at a time; wrap
// with a mutex if frames are requested concurrently.
type Renderer struct {
	colors map[string][3]float64 // hex string -> rgb cache
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{colors: make(map[string][3]float64)}
}

// RenderPNG draws one snapshot and returns the encoded PNG.
func (r *Renderer) RenderPNG(snap *game.GameSnapshot) ([]byte, error) {
	if snap == nil || snap.GridWidth <= 0 || snap.GridHeight <= 0 {
		return nil, fmt.Errorf("render: empty snapshot")
	}

	size := snap.TileSize
	w := int(float64(snap.GridWidth) * size)
	h := int(float64(snap.GridHeight) * size)
	dc := gg.NewContext(w, h)

	// Neutral checkerboard baseline.
	for y := 0; y < snap.GridHeight; y++ {
		for x := 0; x < snap.GridWidth; x++ {
			shade := boardLight
			if (x+y)%2 == 1 {
				shade = boardDark
			}
			dc.SetRGB(shade, shade, shade)
			dc.DrawRectangle(float64(x)*size, float64(y)*size, size, size)
			dc.Fill()
		}
	}

	// Owned tiles on top. Trail tiles render brighter than settled
	// territory so an active run reads at a glance.
	colorOf := r.playerColors(snap)
	for _, t := range snap.Tiles {
		rgb, ok := colorOf[t.Owner]
		if !ok {
			continue
		}
		alpha := territoryAlpha
		if t.IsTrail {
			alpha = trailTileAlpha
		}
		dc.SetRGBA(rgb[0], rgb[1], rgb[2], alpha)
		dc.DrawRectangle(float64(t.X)*size, float64(t.Y)*size, size, size)
		dc.Fill()
	}

	// Trail polylines over the tiles, following the continuous path.
	for _, tr := range snap.Trails {
		if len(tr.Points) < 2 {
			continue
		}
		rgb := r.parseHex(tr.Color)
		dc.SetRGBA(rgb[0], rgb[1], rgb[2], 0.9)
		dc.SetLineWidth(trailLineWidth)
		dc.MoveTo(tr.Points[0].X, tr.Points[0].Y)
		for _, pt := range tr.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.Stroke()
	}

	// Player markers last.
	for _, p := range snap.Players {
		rgb := r.parseHex(p.Color)
		dc.SetRGB(rgb[0], rgb[1], rgb[2])
		dc.DrawCircle(p.X, p.Y, size*0.35)
		dc.Fill()
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(2)
		dc.DrawCircle(p.X, p.Y, size*0.35)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// playerColors maps owner IDs to parsed colors for this snapshot.
func (r *Renderer) playerColors(snap *game.GameSnapshot) map[string][3]float64 {
	out := make(map[string][3]float64, len(snap.Players))
	for _, p := range snap.Players {
		out[p.ID] = r.parseHex(p.Color)
	}
	return out
}

// parseHex converts "#rrggbb" to rgb in [0,1], caching results. A
// malformed color falls back to gray rather than failing the frame.
func (r *Renderer) parseHex(hex string) [3]float64 {
	if rgb, ok := r.colors[hex]; ok {
		return rgb
	}

	rgb := [3]float64{0.5, 0.5, 0.5}
	if len(hex) == 7 && hex[0] == '#' {
		var cr, cg, cb int
		if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &cr, &cg, &cb); err == nil {
			rgb = [3]float64{float64(cr) / 255, float64(cg) / 255, float64(cb) / 255}
		}
	}
	r.colors[hex] = rgb
	return rgb
}

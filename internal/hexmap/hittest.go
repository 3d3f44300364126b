package hexmap

import (
	"math"

	"github.com/talgya/hexboard/internal/topo"
)

// Locator resolves a pixel position to the cell drawn there. A render layer
// with its own hit index can supply one through WithLocator.
type Locator interface {
	HexAt(x, y float64) *Hex
}

// geoLocator finds cells from the projection alone.
type geoLocator struct {
	m *Map
}

func (g geoLocator) HexAt(x, y float64) *Hex {
	m := g.m
	r, t := m.cfg.Radius, m.topo()
	guess := topo.Approx(x, y, r, t)
	candidates := []topo.RC{guess}
	for _, d := range t.Dirs() {
		rc, _ := t.Next(guess, d)
		candidates = append(candidates, rc)
	}

	var best *Hex
	bestDist := math.Inf(1)
	for _, rc := range candidates {
		h := m.At(rc.Row, rc.Col)
		if h == nil {
			continue
		}
		p := topo.Project(rc.Row, rc.Col, r, t)
		if !topo.Contains(x-p.X, y-p.Y, r, t) {
			continue
		}
		if dist := math.Hypot(x-p.X, y-p.Y); dist < bestDist {
			best, bestDist = h, dist
		}
	}
	return best
}

// HexUnderPoint returns the cell drawn at pixel (x, y), or nil. With
// legalOnly set, a cell that is not Legal is reported as nil.
func (m *Map) HexUnderPoint(x, y float64, legalOnly bool) *Hex {
	h := m.locator.HexAt(x, y)
	if h == nil || (legalOnly && !h.Legal()) {
		return nil
	}
	return h
}

// PixelBounds is the rectangle covering every cell's hexagon.
func (m *Map) PixelBounds() topo.Rect {
	if m.count == 0 {
		return topo.Rect{}
	}
	hb := topo.HexBounds(m.cfg.Radius, m.topo().Tilt())
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	m.ForEachHex(func(h *Hex) {
		p := h.XYWH()
		minX, maxX = math.Min(minX, p.X+hb.X), math.Max(maxX, p.X+hb.X+hb.Width)
		minY, maxY = math.Min(minY, p.Y+hb.Y), math.Max(maxY, p.Y+hb.Y+hb.Height)
	})
	return topo.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

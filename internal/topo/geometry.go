package topo

import "math"

const (
	sqrt3        = 1.7320508075688772
	sqrt3_2      = sqrt3 / 2
	degToRadians = math.Pi / 180
)

// XYWH is the projected center (X, Y) and size (W, H) of one cell, plus the
// distance between adjacent columns (DXDC) and rows (DYDR).
type XYWH struct {
	X, Y       float64
	W, H       float64
	DXDC, DYDR float64
}

// Rect is an axis aligned rectangle in pixel space.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func parity(n int) float64 {
	if n%2 != 0 {
		return 1
	}
	return 0
}

// Project maps (row, col) to the pixel center and size of the cell drawn with
// the given radius (center to vertex) under t. It has no state: identical
// inputs give identical outputs.
func Project(row, col int, radius float64, t Topology) XYWH {
	if t == EW {
		h, w := 2*radius, radius*sqrt3
		dxdc, dydr := w, 1.5*radius
		return XYWH{
			X:    (float64(col) + parity(row)/2) * dxdc,
			Y:    float64(row) * dydr,
			W:    w,
			H:    h,
			DXDC: dxdc,
			DYDR: dydr,
		}
	}
	w, h := 2*radius, radius*sqrt3
	dxdc, dydr := 1.5*radius, h
	return XYWH{
		X:    float64(col) * dxdc,
		Y:    (float64(row) + parity(col)/2) * dydr,
		W:    w,
		H:    h,
		DXDC: dxdc,
		DYDR: dydr,
	}
}

// Approx inverts Project to the nearest row/col lattice point. The cell that
// actually covers (x, y) is either the result or one of its six neighbors.
func Approx(x, y, radius float64, t Topology) RC {
	g := Project(0, 0, radius, t)
	if t == EW {
		row := int(math.Round(y / g.DYDR))
		col := int(math.Round(x/g.DXDC - parity(row)/2))
		return RC{Row: row, Col: col}
	}
	col := int(math.Round(x / g.DXDC))
	row := int(math.Round(y/g.DYDR - parity(col)/2))
	return RC{Row: row, Col: col}
}

// HexBounds is the bounding box of a hexagon of the given radius centered on
// the origin and rotated by tilt degrees (30 for EW, 0 for NS).
func HexBounds(radius, tilt float64) Rect {
	w := radius * math.Cos(degToRadians*tilt)
	h := radius * math.Cos(degToRadians*(tilt-30))
	return Rect{X: -w, Y: -h, Width: 2 * w, Height: 2 * h}
}

// Contains reports whether the offset (dx, dy) from a cell center lies inside
// that cell's hexagon. Points on an edge count as inside.
func Contains(dx, dy, radius float64, t Topology) bool {
	const eps = 1e-9
	ax, ay := math.Abs(dx), math.Abs(dy)
	if t == NS {
		ax, ay = ay, ax
	}
	// pointy-top after the swap: flat sides face +x/-x
	if ax > radius*sqrt3_2+eps {
		return false
	}
	return ay <= radius-ax/sqrt3+eps
}

// EdgePoint is the midpoint of the edge facing d on a hexagon centered at
// (x, y). Screen y grows downward, so north is -y.
func EdgePoint(x, y, radius float64, d Dir) (float64, float64) {
	a := float64(Rotation(d)) * degToRadians
	h := radius * sqrt3_2
	return x + math.Sin(a)*h, y - math.Cos(a)*h
}

// CornerPoint is the vertex between the edges facing d0 and d1.
func CornerPoint(x, y, radius float64, d0, d1 Dir) (float64, float64) {
	r0, r1 := float64(Rotation(d0)), float64(Rotation(d1))
	a2 := (r0 + r1) / 2
	if math.Abs(r0-r1) > 180 {
		a2 += 180
	}
	a := a2 * degToRadians
	return x + math.Sin(a)*radius, y - math.Cos(a)*radius
}

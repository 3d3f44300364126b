package topo

import (
	"fmt"
	"strings"
)

// Topology selects one of the two axis conventions. A grid uses exactly one
// for its whole lifetime.
type Topology uint8

const (
	// EW: long axis of the hex is vertical, rows are offset, E and W are
	// direct neighbors. Offsets depend on row parity.
	EW Topology = iota
	// NS: long axis is horizontal, columns are offset, N and S are direct
	// neighbors. Offsets depend on column parity.
	NS
)

// RC is a (row, col) grid coordinate.
type RC struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// delta is a column/row step.
type delta struct {
	dc, dr int
	ok     bool
}

type table [NumDirs]delta

func tableOf(entries map[Dir][2]int) table {
	var t table
	for d, v := range entries {
		t[d] = delta{dc: v[0], dr: v[1], ok: true}
	}
	return t
}

// Neighbor offsets {dc, dr} for even and odd rows (EW) or columns (NS).
var (
	ewEvenRow = tableOf(map[Dir][2]int{
		NE: {0, -1}, E: {1, 0}, SE: {0, 1},
		SW: {-1, 1}, W: {-1, 0}, NW: {-1, -1},
	})
	ewOddRow = tableOf(map[Dir][2]int{
		NE: {1, -1}, E: {1, 0}, SE: {1, 1},
		SW: {0, 1}, W: {-1, 0}, NW: {0, -1},
	})
	nsEvenCol = tableOf(map[Dir][2]int{
		N: {0, -1}, EN: {1, -1}, ES: {1, 0},
		S: {0, 1}, WS: {-1, 0}, WN: {-1, -1},
	})
	nsOddCol = tableOf(map[Dir][2]int{
		N: {0, -1}, EN: {1, 0}, ES: {1, 1},
		S: {0, 1}, WS: {-1, 1}, WN: {-1, 0},
	})
)

// Declared direction order; iteration over a topology always uses it.
var (
	ewDirs = []Dir{NE, E, SE, SW, W, NW}
	nsDirs = []Dir{N, EN, ES, S, WS, WN}
)

// Dirs returns the six directions of t in declared clockwise order.
// The returned slice must not be modified.
func (t Topology) Dirs() []Dir {
	if t == NS {
		return nsDirs
	}
	return ewDirs
}

// Has reports whether d belongs to t.
func (t Topology) Has(d Dir) bool {
	if !d.Valid() {
		return false
	}
	if t == NS {
		return nsEvenCol[d].ok
	}
	return ewEvenRow[d].ok
}

// odd reports parity the way the offset tables expect it, including for
// negative indices.
func odd(n int) bool {
	return n%2 != 0
}

func (t Topology) table(row, col int) *table {
	if t == NS {
		if odd(col) {
			return &nsOddCol
		}
		return &nsEvenCol
	}
	if odd(row) {
		return &ewOddRow
	}
	return &ewEvenRow
}

// Delta returns the row/col step from (row, col) toward d. ok is false when
// d is not a direction of t.
func (t Topology) Delta(d Dir, row, col int) (dr, dc int, ok bool) {
	if !t.Has(d) {
		return 0, 0, false
	}
	e := t.table(row, col)[d]
	return e.dr, e.dc, true
}

// Next returns the coordinate one step from rc toward d.
func (t Topology) Next(rc RC, d Dir) (RC, bool) {
	dr, dc, ok := t.Delta(d, rc.Row, rc.Col)
	if !ok {
		return rc, false
	}
	return RC{Row: rc.Row + dr, Col: rc.Col + dc}, true
}

// StartDir is the direction stepped from a center to reach the first cell
// of a ring, so that walking Dirs() in order traces the ring clockwise.
func (t Topology) StartDir() Dir {
	return t.Dirs()[4]
}

// Tilt is the rotation in degrees a renderer applies to a hexagon drawn with
// a vertex at angle 0 so that it matches t.
func (t Topology) Tilt() float64 {
	if t == EW {
		return 30
	}
	return 0
}

func (t Topology) String() string {
	switch t {
	case EW:
		return "ew"
	case NS:
		return "ns"
	default:
		return fmt.Sprintf("Topology(%d)", uint8(t))
	}
}

// ParseTopology accepts "ew" or "ns" (any case).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ew", "":
		return EW, nil
	case "ns":
		return NS, nil
	}
	return EW, fmt.Errorf("unknown topology %q", s)
}

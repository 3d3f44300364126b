package hexmap

import (
	"fmt"
	"math"

	"github.com/talgya/hexboard/internal/topo"
)

// Names of the two off-grid cells.
const (
	SkipName   = "Hex@skip"
	ResignName = "Hex@Resign"
)

// IHex is the serializable projection of a Hex: enough to find the same
// cell again in a map built with the same configuration.
type IHex struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// HexName returns the display name for (row, col). Rows below zero are
// reserved for the skip (col -1) and resign cells.
func HexName(row, col int) string {
	if row >= 0 {
		return fmt.Sprintf("Hex@[%d,%d]", row, col)
	}
	if col == -1 {
		return SkipName
	}
	return ResignName
}

// Hex is one cell of a Map: fixed coordinates, an optional district tag and
// links to the neighbors that exist in each direction of the map's topology.
type Hex struct {
	name     string
	row, col int
	m        *Map

	district    int
	hasDistrict bool

	links [topo.NumDirs]*Hex
	legal bool

	rcLinear    int
	rcLinearSet bool
}

func newHex(m *Map, row, col int, name string) *Hex {
	return &Hex{name: name, row: row, col: col, m: m}
}

// Name returns the stable display name.
func (h *Hex) Name() string { return h.name }

// Row returns the grid row.
func (h *Hex) Row() int { return h.row }

// Col returns the grid column.
func (h *Hex) Col() int { return h.col }

// RC returns the grid coordinate.
func (h *Hex) RC() topo.RC { return topo.RC{Row: h.row, Col: h.col} }

// Map returns the owning map.
func (h *Hex) Map() *Map { return h.m }

// District returns the district tag, if one has been assigned.
func (h *Hex) District() (int, bool) { return h.district, h.hasDistrict }

// OnMap reports whether the cell belongs to a district.
func (h *Hex) OnMap() bool { return h.hasDistrict }

// Color returns the color of the cell's district, or "" when the district
// has not been colored yet.
func (h *Hex) Color() string {
	if !h.hasDistrict {
		return ""
	}
	return h.m.colors[h.district]
}

// Legal reports the flag the game layer uses to mark drop targets.
func (h *Hex) Legal() bool { return h.legal }

// SetLegal sets the legal flag. The engine never writes it.
func (h *Hex) SetLegal(v bool) { h.legal = v }

// Marked reports whether this cell currently holds the map's mark.
func (h *Hex) Marked() bool { return h.m != nil && h.m.mark == h }

// RCLinear is a dense integer key for (row, col), computed from the column
// bounds the first time it is asked for and cached from then on. Ask only
// after the map is fully built.
func (h *Hex) RCLinear() int {
	if !h.rcLinearSet {
		h.rcLinear = h.m.RCLinear(h.row, h.col)
		h.rcLinearSet = true
	}
	return h.rcLinear
}

// IHex returns the {name, row, col} projection.
func (h *Hex) IHex() IHex {
	return IHex{Name: h.name, Row: h.row, Col: h.col}
}

// RCS returns "[row,col]", or the special name for off-grid cells.
func (h *Hex) RCS() string {
	if h.row >= 0 {
		return fmt.Sprintf("[%d,%d]", h.row, h.col)
	}
	return h.name[len("Hex@"):]
}

func (h *Hex) String() string {
	return "Hex@" + h.RCS()
}

// Neighbor returns the linked cell in direction d, or nil.
func (h *Hex) Neighbor(d topo.Dir) *Hex {
	if !d.Valid() {
		return nil
	}
	return h.links[d]
}

// LinkDirs returns the directions that currently have a neighbor, in the
// topology's declared order.
func (h *Hex) LinkDirs() []topo.Dir {
	var dirs []topo.Dir
	for _, d := range h.m.topo().Dirs() {
		if h.links[d] != nil {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// LinkHexes returns the current neighbors in LinkDirs order.
func (h *Hex) LinkHexes() []*Hex {
	var out []*Hex
	for _, d := range h.LinkDirs() {
		out = append(out, h.links[d])
	}
	return out
}

// ForEachLinkHex calls fn for each neighbor in LinkDirs order.
func (h *Hex) ForEachLinkHex(fn func(nb *Hex, d topo.Dir)) {
	for _, d := range h.LinkDirs() {
		fn(h.links[d], d)
	}
}

// FindLinkHex returns the first direction, in topology order, whose neighbor
// satisfies pred.
func (h *Hex) FindLinkHex(pred func(nb *Hex, d topo.Dir) bool) (topo.Dir, bool) {
	for _, d := range h.LinkDirs() {
		if pred(h.links[d], d) {
			return d, true
		}
	}
	return 0, false
}

// FindInDir tests h and then each successive neighbor in direction d,
// returning the first cell that satisfies pred, or nil when the line ends.
func (h *Hex) FindInDir(d topo.Dir, pred func(x *Hex) bool) *Hex {
	for x := h; x != nil; x = x.Neighbor(d) {
		if pred(x) {
			return x
		}
	}
	return nil
}

// HexesInDir returns every cell on the line from h in direction d, not
// including h itself.
func (h *Hex) HexesInDir(d topo.Dir) []*Hex {
	var out []*Hex
	for x := h.Neighbor(d); x != nil; x = x.Neighbor(d) {
		out = append(out, x)
	}
	return out
}

// ForEachHexDir calls fn for every cell on every line radiating from h.
func (h *Hex) ForEachHexDir(fn func(x *Hex, d topo.Dir)) {
	for _, d := range h.LinkDirs() {
		for _, x := range h.HexesInDir(d) {
			fn(x, d)
		}
	}
}

// NextHex follows d for n steps (at least one) and returns the cell reached,
// or nil if the line ends first.
func (h *Hex) NextHex(d topo.Dir, n int) *Hex {
	x := h.Neighbor(d)
	for i := 1; i < n && x != nil; i++ {
		x = x.Neighbor(d)
	}
	return x
}

// LastHex returns the last cell on the line from h in direction d (h itself
// when it has no neighbor there).
func (h *Hex) LastHex(d topo.Dir) *Hex {
	x := h
	for nx := x.Neighbor(d); nx != nil; nx = x.Neighbor(d) {
		x = nx
	}
	return x
}

// XYWH projects the cell with the map's radius and topology.
func (h *Hex) XYWH() topo.XYWH {
	return topo.Project(h.row, h.col, h.m.cfg.Radius, h.m.topo())
}

// DistanceApprox is the straight-line distance between projected centers,
// scaled so adjacent cells are 1 apart. It is not a hop count: cells two
// steps apart along a zig-zag are less than 2 apart.
func (h *Hex) DistanceApprox(o *Hex) float64 {
	return h.dist(o, 1/math.Sqrt(3))
}

// MetricDist is the straight-line distance at radius 1 (adjacent = sqrt 3).
func (h *Hex) MetricDist(o *Hex) float64 {
	return h.dist(o, 1)
}

func (h *Hex) dist(o *Hex, radius float64) float64 {
	t := h.m.topo()
	a := topo.Project(h.row, h.col, radius, t)
	b := topo.Project(o.row, o.col, radius, t)
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

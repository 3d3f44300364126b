// Package hexmap is the hexagonal board model: cells, neighbor links,
// district generation and coloring, coordinate projection and hit testing.
package hexmap

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/talgya/hexboard/internal/topo"
)

// DefaultPalette is the district color palette. The first entry is the base
// color of district 0.
var DefaultPalette = []string{
	"lightgrey", "limegreen", "deepskyblue", "rgb(255,165,0)",
	"violet", "rgb(250,80,80)", "yellow",
}

// DefaultColor is used when every palette entry is taken by a neighbor.
const DefaultColor = "white"

// Config holds the construction parameters of a Map.
type Config struct {
	Radius       float64       // center to vertex, in pixels
	Topology     topo.Topology // fixed for the lifetime of the map
	Palette      []string
	DefaultColor string
}

// DefaultConfig returns radius 60, EW topology and the default palette.
func DefaultConfig() Config {
	return Config{
		Radius:       60,
		Topology:     topo.EW,
		Palette:      DefaultPalette,
		DefaultColor: DefaultColor,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Radius <= 0 {
		c.Radius = d.Radius
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	if c.DefaultColor == "" {
		c.DefaultColor = d.DefaultColor
	}
	return c
}

// Option configures optional collaborators of a Map.
type Option func(*Map)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Map) { m.log = l }
}

// WithOnCreate registers a hook called for every cell the map creates,
// including the skip and resign cells. Use it to attach facets.
func WithOnCreate(fn func(*Hex)) Option {
	return func(m *Map) { m.onCreate = append(m.onCreate, fn) }
}

// WithLocator replaces the geometric hit tester.
func WithLocator(l Locator) Option {
	return func(m *Map) { m.locator = l }
}

// Map owns a set of cells keyed by (row, col). Each coordinate holds at most
// one cell and links between cells are always symmetric. A Map is not safe
// for concurrent mutation.
type Map struct {
	Name string

	cfg   Config
	rows  map[int]map[int]*Hex
	count int

	bounded                        bool
	minRow, maxRow, minCol, maxCol int

	colors        map[int]string
	districtIDs   []int
	districtCells map[int][]*Hex

	skip, resign *Hex
	mark         *Hex

	// orders of the last spiral or battle generation
	nh, mh int

	onCreate   []func(*Hex)
	onDistrict []func(*Hex, int)
	onColor    []func(int, string)
	onMark     []func(*Hex, bool)

	locator Locator
	log     *slog.Logger
}

// New creates an empty map. Zero fields of cfg take their DefaultConfig
// values.
func New(cfg Config, opts ...Option) *Map {
	m := &Map{
		cfg:           cfg.normalized(),
		rows:          make(map[int]map[int]*Hex),
		colors:        make(map[int]string),
		districtCells: make(map[int][]*Hex),
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	m.log = m.log.With("component", "hexmap")
	if m.locator == nil {
		m.locator = geoLocator{m}
	}
	return m
}

// Config returns the normalized construction parameters.
func (m *Map) Config() Config { return m.cfg }

func (m *Map) topo() topo.Topology { return m.cfg.Topology }

// Topology returns the map's axis convention.
func (m *Map) Topology() topo.Topology { return m.cfg.Topology }

// OnDistrict registers fn to run whenever a cell is tagged with a district.
func (m *Map) OnDistrict(fn func(h *Hex, district int)) {
	m.onDistrict = append(m.onDistrict, fn)
}

// OnDistrictColor registers fn to run whenever a district is assigned a
// color.
func (m *Map) OnDistrictColor(fn func(district int, color string)) {
	m.onColor = append(m.onColor, fn)
}

func (m *Map) create(row, col int) *Hex {
	h := newHex(m, row, col, HexName(row, col))
	for _, fn := range m.onCreate {
		fn(h)
	}
	return h
}

func (m *Map) setDistrict(h *Hex, district int) {
	h.district, h.hasDistrict = district, true
	m.districtCells[district] = append(m.districtCells[district], h)
	for _, fn := range m.onDistrict {
		fn(h, district)
	}
}

// AddHex creates a cell at (row, col) in district and links it to every
// existing neighbor. Adding at an occupied coordinate returns ErrOccupied
// and changes nothing.
func (m *Map) AddHex(row, col, district int) (*Hex, error) {
	if m.At(row, col) != nil {
		return nil, fmt.Errorf("add [%d,%d]: %w", row, col, ErrOccupied)
	}
	h := m.create(row, col)
	m.place(h)
	m.setDistrict(h, district)
	return h, nil
}

func (m *Map) place(h *Hex) {
	r, ok := m.rows[h.row]
	if !ok {
		r = make(map[int]*Hex)
		m.rows[h.row] = r
	}
	r[h.col] = h
	m.count++

	if !m.bounded {
		m.minRow, m.maxRow, m.minCol, m.maxCol = h.row, h.row, h.col, h.col
		m.bounded = true
	} else {
		m.minRow, m.maxRow = min(m.minRow, h.row), max(m.maxRow, h.row)
		m.minCol, m.maxCol = min(m.minCol, h.col), max(m.maxCol, h.col)
	}
	m.link(h)
}

// At returns the cell at (row, col), or nil.
func (m *Map) At(row, col int) *Hex {
	return m.rows[row][col]
}

// HexCount returns the number of on-grid cells.
func (m *Map) HexCount() int { return m.count }

// Bounds returns the smallest and largest row and column in use. All four
// are zero on an empty map.
func (m *Map) Bounds() (minRow, maxRow, minCol, maxCol int) {
	return m.minRow, m.maxRow, m.minCol, m.maxCol
}

// NRowCol returns the number of rows and columns spanned by the bounds.
func (m *Map) NRowCol() (nrows, ncols int) {
	if !m.bounded {
		return 0, 0
	}
	return 1 + m.maxRow - m.minRow, 1 + m.maxCol - m.minCol
}

// RCLinear maps (row, col) to col + row*(column span). It is only stable
// once the map has stopped growing.
func (m *Map) RCLinear(row, col int) int {
	return col + row*(1+m.maxCol-m.minCol)
}

// CenterHex returns the cell at the midpoint of the bounds. On a sparse map
// with no cell there it returns the cell whose projected center is nearest
// the midpoint's, the first in iteration order on a tie. It is nil only on an
// empty map.
func (m *Map) CenterHex() *Hex {
	if !m.bounded {
		return nil
	}
	row, col := floorDiv(m.minRow+m.maxRow, 2), floorDiv(m.minCol+m.maxCol, 2)
	if h := m.At(row, col); h != nil {
		return h
	}
	mid := topo.Project(row, col, 1, m.topo())
	var best *Hex
	bestDist := math.Inf(1)
	m.each(func(h *Hex) bool {
		p := topo.Project(h.row, h.col, 1, m.topo())
		if d := math.Hypot(p.X-mid.X, p.Y-mid.Y); d < bestDist {
			best, bestDist = h, d
		}
		return true
	})
	return best
}

// CornerHex returns the cell closest to the top-left of the bounds: the first
// cell of the first row in iteration order.
func (m *Map) CornerHex() *Hex {
	var first *Hex
	m.each(func(h *Hex) bool {
		first = h
		return false
	})
	return first
}

// SkipHex is the off-grid cell that stands for "pass".
func (m *Map) SkipHex() *Hex {
	if m.skip == nil {
		m.skip = m.create(-1, -1)
	}
	return m.skip
}

// ResignHex is the off-grid cell that stands for "resign".
func (m *Map) ResignHex() *Hex {
	if m.resign == nil {
		m.resign = m.create(-1, -2)
	}
	return m.resign
}

// each visits cells in ascending row, then ascending column, until fn
// returns false.
func (m *Map) each(fn func(*Hex) bool) {
	for _, row := range slices.Sorted(maps.Keys(m.rows)) {
		r := m.rows[row]
		for _, col := range slices.Sorted(maps.Keys(r)) {
			if !fn(r[col]) {
				return
			}
		}
	}
}

// Lookup resolves a serialized cell against this map. An empty coordinate
// with a row below zero names the skip or resign cell. A coordinate with no
// cell or a name that does not match is logged and returned as an error.
func (m *Map) Lookup(ih IHex) (*Hex, error) {
	h := m.At(ih.Row, ih.Col)
	if h == nil && ih.Row < 0 {
		if ih.Col == -1 {
			h = m.SkipHex()
		} else {
			h = m.ResignHex()
		}
	}
	if h == nil {
		m.log.Warn("lookup failed", "name", ih.Name, "row", ih.Row, "col", ih.Col, "map", m.Name)
		return nil, fmt.Errorf("lookup %s [%d,%d]: %w", ih.Name, ih.Row, ih.Col, ErrNotFound)
	}
	if ih.Name != "" && strings.TrimSpace(ih.Name) != h.name {
		m.log.Warn("lookup name mismatch", "want", ih.Name, "got", h.name, "map", m.Name)
		return nil, fmt.Errorf("lookup %s: found %s: %w", ih.Name, h.name, ErrNameMismatch)
	}
	return h, nil
}

// DistrictColor returns the color assigned to district.
func (m *Map) DistrictColor(district int) (string, bool) {
	c, ok := m.colors[district]
	return c, ok
}

// DistrictHexes returns the cells of district in insertion order.
func (m *Map) DistrictHexes(district int) []*Hex {
	return slices.Clone(m.districtCells[district])
}

// Districts returns the colored district ids in the order they were placed.
func (m *Map) Districts() []int {
	return slices.Clone(m.districtIDs)
}

// Orders returns the district order (nh) and meta order (mh) of the last
// generated layout. mh is zero after a battle layout.
func (m *Map) Orders() (nh, mh int) { return m.nh, m.mh }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

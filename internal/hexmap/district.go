package hexmap

import (
	"fmt"
	"math"

	"github.com/talgya/hexboard/internal/topo"
)

// DistrictCenter returns the grid coordinate of the center of the district
// of order nh at meta position (mr, mc). Districts placed at the positions
// of an EW meta-hex tile without gaps or overlaps.
func DistrictCenter(nh, mr, mc int) topo.RC {
	mcp := abs(mc % 2)
	dia := 2*nh - 1
	row := mr*dia - nh*(mcp+1) + 1 - floorDiv(mc, 2)

	np := abs(nh % 2)
	rp := abs(row % 2)
	col := floorDiv(mc*(3*nh-1), 2) + (nh - 1)
	col -= floorDiv(mc+(2-np), 4)
	col += floorDiv(mr-rp, 2)
	return topo.RC{Row: row, Col: col}
}

// spiral lists the coordinates of a hexagon of order n around center: the
// center first, then each ring clockwise starting from the StartDir side.
func spiral(t topo.Topology, center topo.RC, n int) []topo.RC {
	out := []topo.RC{center}
	rc := center
	for ring := 1; ring < n; ring++ {
		rc, _ = t.Next(rc, t.StartDir())
		for _, d := range t.Dirs() {
			for range ring {
				out = append(out, rc)
				rc, _ = t.Next(rc, d)
			}
		}
	}
	return out
}

// MakeDistrict builds the hexagon of order nh (1, 7, 19, 37... cells) for
// district at meta position (mr, mc), then colors it. The first cell of the
// result is the district center. If any target coordinate is taken nothing
// is added.
func (m *Map) MakeDistrict(nh, district, mr, mc int) ([]*Hex, error) {
	if nh < 1 {
		return nil, fmt.Errorf("district %d order %d: %w", district, nh, ErrDistrictOrder)
	}
	coords := spiral(m.topo(), DistrictCenter(nh, mr, mc), nh)
	cells, err := m.addAll(coords, district)
	if err != nil {
		return nil, fmt.Errorf("district %d: %w", district, err)
	}
	m.colorDistrict(district, cells)
	m.log.Debug("district placed", "district", district, "cells", len(cells), "color", cells[0].Color())
	return cells, nil
}

// addAll adds every coordinate to district, or none of them.
func (m *Map) addAll(coords []topo.RC, district int) ([]*Hex, error) {
	seen := make(map[topo.RC]bool, len(coords))
	for _, rc := range coords {
		if seen[rc] || m.At(rc.Row, rc.Col) != nil {
			return nil, fmt.Errorf("add [%d,%d]: %w", rc.Row, rc.Col, ErrOccupied)
		}
		seen[rc] = true
	}
	cells := make([]*Hex, 0, len(coords))
	for _, rc := range coords {
		h, err := m.AddHex(rc.Row, rc.Col, district)
		if err != nil {
			return cells, err
		}
		cells = append(cells, h)
	}
	return cells, nil
}

// metaNext steps across the meta-hex lattice. Meta positions form a column
// offset grid whose parity is the reverse of the NS cell grid.
func metaNext(rc topo.RC, d topo.Dir) topo.RC {
	dr, dc, _ := topo.NS.Delta(d, rc.Row, rc.Col+1)
	return topo.RC{Row: rc.Row + dr, Col: rc.Col + dc}
}

// MetaPositions lists the meta positions of a meta-hex of order mh: the
// center (mh, 0) and then each ring clockwise.
func MetaPositions(mh int) []topo.RC {
	center := topo.RC{Row: mh, Col: 0}
	out := []topo.RC{center}
	rc := center
	for ring := 1; ring < mh; ring++ {
		rc = metaNext(rc, topo.NS.StartDir())
		for _, d := range topo.NS.Dirs() {
			for range ring {
				out = append(out, rc)
				rc = metaNext(rc, d)
			}
		}
	}
	return out
}

// MakeAllDistricts fills the map with a meta-hex of order mh whose cells are
// districts of order nh, numbered from 0 in spiral order. The meta tiling
// only closes under EW; NS maps accept a single district (mh == 1).
func (m *Map) MakeAllDistricts(nh, mh int) ([]*Hex, error) {
	if mh < 1 {
		return nil, fmt.Errorf("meta order %d: %w", mh, ErrDistrictOrder)
	}
	if mh > 1 && m.topo() != topo.EW {
		return nil, fmt.Errorf("meta order %d on %v: %w", mh, m.topo(), ErrTopology)
	}
	var all []*Hex
	for district, meta := range MetaPositions(mh) {
		cells, err := m.MakeDistrict(nh, district, meta.Row, meta.Col)
		if err != nil {
			return all, err
		}
		all = append(all, cells...)
	}
	m.nh, m.mh = nh, mh
	m.log.Info("board generated", "nh", nh, "mh", mh, "cells", m.HexCount(), "districts", len(m.districtIDs))
	return all, nil
}

// RingWalk visits the ring of radius n (n >= 1) around center clockwise,
// calling fn with each existing cell and the direction being walked.
// Coordinates with no cell are skipped.
func (m *Map) RingWalk(center *Hex, n int, fn func(h *Hex, d topo.Dir)) {
	if n < 1 {
		return
	}
	t := m.topo()
	rc := center.RC()
	for range n {
		rc, _ = t.Next(rc, t.StartDir())
	}
	for _, d := range t.Dirs() {
		for range n {
			if h := m.At(rc.Row, rc.Col); h != nil {
				fn(h, d)
			}
			rc, _ = t.Next(rc, d)
		}
	}
}

// Ring returns the existing cells of the ring of radius n around center.
func (m *Map) Ring(center *Hex, n int) []*Hex {
	var out []*Hex
	m.RingWalk(center, n, func(h *Hex, _ topo.Dir) {
		out = append(out, h)
	})
	return out
}

// battleHalfWidth is the half width of each row of the largest battle board,
// indexed so that smaller boards read a scaled slice of it.
var battleHalfWidth = [...]int{3, 4, 4, 5, 6, 6, 7, 7, 6, 5, 5, 4, 3, 3, 2, 2, 1}

// MakeBattleDistrict builds the irregular battle board of order nh (2..8) as
// a single district on an NS map. Rows run from 1 to 2(nh-1); the last row
// keeps only even columns.
func (m *Map) MakeBattleDistrict(nh, district int) ([]*Hex, error) {
	if m.topo() != topo.NS {
		return nil, fmt.Errorf("battle board on %v: %w", m.topo(), ErrTopology)
	}
	if nh < 2 || nh > 8 {
		return nil, fmt.Errorf("battle order %d: %w", nh, ErrDistrictOrder)
	}
	last := 2 * (nh - 1)
	var coords []topo.RC
	for row := 1; row <= last; row++ {
		k := int(math.Round(float64(battleHalfWidth[row+7-nh]*nh) / 7))
		for col := nh - k; col <= nh+k; col++ {
			if row == last && col%2 != 0 {
				continue
			}
			coords = append(coords, topo.RC{Row: row, Col: col})
		}
	}
	cells, err := m.addAll(coords, district)
	if err != nil {
		return nil, fmt.Errorf("battle district %d: %w", district, err)
	}
	m.colorDistrict(district, cells)
	m.nh, m.mh = nh, 0
	m.log.Info("battle board generated", "nh", nh, "cells", len(cells))
	return cells, nil
}

// battleBlackParity maps a battle board row to the column parity of its
// black cells. Rows not listed have none.
var battleBlackParity = map[int]int{2: 0, 3: 1, 5: 0, 6: 1, 8: 0, 9: 1, 11: 0, 12: 1, 14: 0, 15: 1}

// BattleBlack reports whether (row, col) is a black cell of a battle board.
func BattleBlack(row, col int) bool {
	p, ok := battleBlackParity[row]
	return ok && abs(col%2) == p
}

// BattleBlackCells returns the black cells among cells as a facet table,
// typically fed the result of MakeBattleDistrict.
func BattleBlackCells(cells []*Hex) *Facets[bool] {
	f := NewFacets[bool]()
	for _, h := range cells {
		if BattleBlack(h.row, h.col) {
			f.Set(h, true)
		}
	}
	return f
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package hexmap

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/talgya/hexboard/internal/topo"
)

func newMap(t topo.Topology) *Map {
	cfg := DefaultConfig()
	cfg.Topology = t
	return New(cfg)
}

func TestHexName(t *testing.T) {
	cases := []struct {
		row, col int
		want     string
	}{
		{0, 0, "Hex@[0,0]"},
		{3, 7, "Hex@[3,7]"},
		{-1, -1, SkipName},
		{-1, -2, ResignName},
		{-5, 4, ResignName},
	}
	for _, c := range cases {
		if got := HexName(c.row, c.col); got != c.want {
			t.Errorf("HexName(%d,%d) = %q, want %q", c.row, c.col, got, c.want)
		}
	}
}

func TestAddHexRejectsOccupied(t *testing.T) {
	m := newMap(topo.EW)
	if _, err := m.AddHex(2, 3, 0); err != nil {
		t.Fatalf("AddHex: %v", err)
	}
	_, err := m.AddHex(2, 3, 1)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("second AddHex err = %v, want ErrOccupied", err)
	}
	if m.HexCount() != 1 {
		t.Fatalf("HexCount = %d after rejected add", m.HexCount())
	}
	if d, _ := m.At(2, 3).District(); d != 0 {
		t.Fatalf("district overwritten to %d", d)
	}
}

func TestLinksAreSymmetric(t *testing.T) {
	for _, tp := range []topo.Topology{topo.EW, topo.NS} {
		m := newMap(tp)
		for row := 0; row < 6; row++ {
			for col := 0; col < 6; col++ {
				if _, err := m.AddHex(row, col, 0); err != nil {
					t.Fatal(err)
				}
			}
		}
		m.ForEachHex(func(h *Hex) {
			for _, d := range tp.Dirs() {
				want, _ := tp.Next(h.RC(), d)
				nb := h.Neighbor(d)
				if exists := m.At(want.Row, want.Col); exists != nb {
					t.Fatalf("%v %v: Neighbor(%v) = %v, grid has %v", tp, h, d, nb, exists)
				}
				if nb != nil && nb.Neighbor(topo.Reverse(d)) != h {
					t.Fatalf("%v %v: link to %v not reciprocated", tp, h, nb)
				}
			}
		})
	}
}

func TestLinksIndependentOfInsertionOrder(t *testing.T) {
	var coords []topo.RC
	for row := -2; row < 4; row++ {
		for col := -2; col < 4; col++ {
			coords = append(coords, topo.RC{Row: row, Col: col})
		}
	}
	fwd, rev := newMap(topo.NS), newMap(topo.NS)
	for _, rc := range coords {
		fwd.AddHex(rc.Row, rc.Col, 0)
	}
	for _, rc := range slices.Backward(coords) {
		rev.AddHex(rc.Row, rc.Col, 0)
	}
	fwd.ForEachHex(func(h *Hex) {
		o := rev.At(h.Row(), h.Col())
		for _, d := range topo.NS.Dirs() {
			a, b := h.Neighbor(d), o.Neighbor(d)
			if (a == nil) != (b == nil) || (a != nil && a.RC() != b.RC()) {
				t.Fatalf("%v %v: %v vs %v", h, d, a, b)
			}
		}
	})
}

func TestLinkDirsFollowTopologyOrder(t *testing.T) {
	m := newMap(topo.EW)
	cells, err := m.MakeDistrict(2, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	center := cells[0]
	if got := center.LinkDirs(); !slices.Equal(got, topo.EW.Dirs()) {
		t.Fatalf("LinkDirs = %v", got)
	}
	if len(center.LinkHexes()) != 6 {
		t.Fatalf("center has %d neighbors", len(center.LinkHexes()))
	}
	if nb := center.Neighbor(topo.N); nb != nil {
		t.Fatalf("EW cell linked in NS direction N")
	}
	d, ok := center.FindLinkHex(func(nb *Hex, _ topo.Dir) bool { return nb.Row() > center.Row() })
	if !ok || d != topo.SE {
		t.Fatalf("FindLinkHex = %v,%v want SE", d, ok)
	}
}

func TestLineTraversal(t *testing.T) {
	m := newMap(topo.EW)
	cells, err := m.MakeDistrict(3, 0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	center := cells[0]
	line := center.HexesInDir(topo.E)
	if len(line) != 2 {
		t.Fatalf("HexesInDir(E) has %d cells", len(line))
	}
	if last := center.LastHex(topo.E); last != line[1] || center.NextHex(topo.E, 2) != last {
		t.Fatalf("LastHex/NextHex disagree with HexesInDir")
	}
	if center.NextHex(topo.E, 3) != nil {
		t.Fatalf("NextHex past the edge returned a cell")
	}
	if got := center.FindInDir(topo.E, func(*Hex) bool { return true }); got != center {
		t.Fatalf("FindInDir does not test the starting cell first")
	}
	if got := center.FindInDir(topo.E, func(x *Hex) bool { return x == line[1] }); got != line[1] {
		t.Fatalf("FindInDir = %v", got)
	}
	n := 0
	center.ForEachHexDir(func(*Hex, topo.Dir) { n++ })
	if n != 12 {
		t.Fatalf("ForEachHexDir visited %d cells, want 12", n)
	}
}

func TestTraversalOrder(t *testing.T) {
	m := newMap(topo.EW)
	if _, err := m.MakeAllDistricts(3, 2); err != nil {
		t.Fatal(err)
	}
	var prev *Hex
	m.ForEachHex(func(h *Hex) {
		if prev != nil && (h.Row() < prev.Row() || (h.Row() == prev.Row() && h.Col() <= prev.Col())) {
			t.Fatalf("%v visited after %v", h, prev)
		}
		prev = h
	})
	if m.CornerHex() != m.FindHex(func(*Hex) bool { return true }) {
		t.Fatalf("CornerHex is not the first cell")
	}
	names := MapHexes(m, (*Hex).Name)
	if len(names) != m.HexCount() {
		t.Fatalf("MapHexes returned %d of %d", len(names), m.HexCount())
	}
	row5 := m.FilterHexes(func(h *Hex) bool { return h.Row() == 5 })
	for _, h := range row5 {
		if h.Row() != 5 {
			t.Fatalf("FilterHexes returned %v", h)
		}
	}
	if len(row5) == 0 {
		t.Fatalf("no cells in row 5")
	}
}

func TestRCLinearIsUnique(t *testing.T) {
	m := newMap(topo.EW)
	if _, err := m.MakeAllDistricts(3, 2); err != nil {
		t.Fatal(err)
	}
	seen := map[int]*Hex{}
	m.ForEachHex(func(h *Hex) {
		k := h.RCLinear()
		if o, dup := seen[k]; dup {
			t.Fatalf("%v and %v share key %d", h, o, k)
		}
		seen[k] = h
	})
	nr, nc := m.NRowCol()
	if nr != 15 || nc != 13 {
		t.Fatalf("NRowCol = %d,%d want 15,13", nr, nc)
	}
}

func TestLookupAcrossMaps(t *testing.T) {
	a, b := newMap(topo.EW), newMap(topo.EW)
	a.MakeAllDistricts(2, 2)
	b.MakeAllDistricts(2, 2)
	a.ForEachHex(func(h *Hex) {
		got, err := b.Lookup(h.IHex())
		if err != nil {
			t.Fatalf("Lookup(%v): %v", h, err)
		}
		if got.RC() != h.RC() || got.Map() != b {
			t.Fatalf("Lookup(%v) = %v", h, got)
		}
	})

	small := newMap(topo.EW)
	small.MakeAllDistricts(1, 1)
	if _, err := small.Lookup(IHex{Name: "Hex@[9,9]", Row: 9, Col: 9}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing cell err = %v", err)
	}
	renamed := b.CenterHex().IHex()
	renamed.Name = "Hex@[0,0]"
	if _, err := b.Lookup(renamed); !errors.Is(err, ErrNameMismatch) {
		t.Fatalf("mismatch err = %v", err)
	}
	skip, err := b.Lookup(a.SkipHex().IHex())
	if err != nil || skip != b.SkipHex() {
		t.Fatalf("skip lookup = %v, %v", skip, err)
	}
	resign, err := b.Lookup(a.ResignHex().IHex())
	if err != nil || resign != b.ResignHex() {
		t.Fatalf("resign lookup = %v, %v", resign, err)
	}
}

func TestCenterHexOnSparseMap(t *testing.T) {
	if h := newMap(topo.EW).CenterHex(); h != nil {
		t.Fatalf("empty map center %v", h)
	}
	cases := []struct {
		cells   []topo.RC
		wantRow int
		wantCol int
	}{
		{[]topo.RC{{Row: 0, Col: 0}, {Row: 0, Col: 5}}, 0, 0},
		{[]topo.RC{{Row: 0, Col: 0}, {Row: 0, Col: 4}}, 0, 0},
		{[]topo.RC{{Row: 0, Col: 0}, {Row: 0, Col: 6}, {Row: 2, Col: 3}}, 2, 3},
		{[]topo.RC{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, 1, 1},
	}
	for _, c := range cases {
		m := newMap(topo.EW)
		for _, rc := range c.cells {
			if _, err := m.AddHex(rc.Row, rc.Col, 0); err != nil {
				t.Fatal(err)
			}
		}
		h := m.CenterHex()
		if h == nil || h.Row() != c.wantRow || h.Col() != c.wantCol {
			t.Fatalf("%v: CenterHex = %v, want [%d,%d]", c.cells, h, c.wantRow, c.wantCol)
		}
	}
}

func TestSpecialHexes(t *testing.T) {
	m := newMap(topo.EW)
	if m.SkipHex().String() != "Hex@skip" || m.ResignHex().String() != "Hex@Resign" {
		t.Fatalf("special names %q %q", m.SkipHex(), m.ResignHex())
	}
	if m.SkipHex() != m.SkipHex() {
		t.Fatalf("SkipHex not stable")
	}
	if m.HexCount() != 0 || m.SkipHex().OnMap() {
		t.Fatalf("special cells joined the grid")
	}
}

func TestDistances(t *testing.T) {
	for _, tp := range []topo.Topology{topo.EW, topo.NS} {
		m := newMap(tp)
		cells, _ := m.MakeDistrict(3, 0, 1, 0)
		center := cells[0]
		center.ForEachLinkHex(func(nb *Hex, d topo.Dir) {
			if got := center.DistanceApprox(nb); math.Abs(got-1) > 1e-9 {
				t.Fatalf("%v %v DistanceApprox = %f", tp, d, got)
			}
			if got := center.MetricDist(nb); math.Abs(got-math.Sqrt(3)) > 1e-9 {
				t.Fatalf("%v %v MetricDist = %f", tp, d, got)
			}
		})
		if center.DistanceApprox(center) != 0 {
			t.Fatalf("self distance not zero")
		}
	}
}

func TestDistrictNotifications(t *testing.T) {
	m := newMap(topo.EW)
	tagged := 0
	var colored []string
	m.OnDistrict(func(*Hex, int) { tagged++ })
	m.OnDistrictColor(func(_ int, c string) { colored = append(colored, c) })
	if _, err := m.MakeAllDistricts(2, 2); err != nil {
		t.Fatal(err)
	}
	if tagged != m.HexCount() {
		t.Fatalf("OnDistrict fired %d times for %d cells", tagged, m.HexCount())
	}
	if len(colored) != 7 || colored[0] != DefaultPalette[0] {
		t.Fatalf("colors = %v", colored)
	}
	if !slices.Equal(m.Districts(), []int{0, 1, 2, 3, 4, 5, 6}) {
		t.Fatalf("Districts = %v", m.Districts())
	}
}

func TestMarkNotifiesClearBeforeSet(t *testing.T) {
	m := newMap(topo.EW)
	a, _ := m.AddHex(0, 0, 0)
	b, _ := m.AddHex(0, 1, 0)
	var events []string
	m.OnMark(func(h *Hex, shown bool) {
		if shown {
			events = append(events, "+"+h.RCS())
		} else {
			events = append(events, "-"+h.RCS())
		}
	})
	m.ShowMark(a)
	m.ShowMark(a)
	m.ShowMark(b)
	m.ShowMark(nil)
	want := []string{"+[0,0]", "-[0,0]", "+[0,1]", "-[0,1]"}
	if !slices.Equal(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	if m.Mark() != nil || a.Marked() || b.Marked() {
		t.Fatalf("mark not cleared")
	}
}

func TestFacetsWithOnCreate(t *testing.T) {
	labels := NewFacets[string]()
	m := New(DefaultConfig(), WithOnCreate(func(h *Hex) { labels.Set(h, h.Name()) }))
	m.MakeDistrict(2, 0, 1, 0)
	m.SkipHex()
	if labels.Len() != m.HexCount()+1 {
		t.Fatalf("facets = %d, cells = %d", labels.Len(), m.HexCount())
	}
	c := m.CenterHex()
	if v, ok := labels.Get(c); !ok || v != c.Name() {
		t.Fatalf("facet for %v = %q,%v", c, v, ok)
	}
	labels.Delete(c)
	if _, ok := labels.Get(c); ok {
		t.Fatalf("facet survived Delete")
	}
}

func TestConfigDefaults(t *testing.T) {
	m := New(Config{Topology: topo.NS})
	cfg := m.Config()
	if cfg.Radius != 60 || len(cfg.Palette) != len(DefaultPalette) || cfg.DefaultColor != DefaultColor {
		t.Fatalf("normalized config %+v", cfg)
	}
	if m.Topology() != topo.NS {
		t.Fatalf("topology lost")
	}
}

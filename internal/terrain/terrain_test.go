package terrain

import (
	"testing"

	"github.com/talgya/hexboard/internal/hexmap"
)

func board(t *testing.T) *hexmap.Map {
	t.Helper()
	m := hexmap.New(hexmap.DefaultConfig())
	if _, err := m.MakeAllDistricts(3, 2); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestAssignCoversEveryCell(t *testing.T) {
	m := board(t)
	cfg := DefaultConfig()
	cfg.Seed = 42
	f := Assign(m, cfg)
	if f.Len() != m.HexCount() {
		t.Fatalf("%d facets for %d cells", f.Len(), m.HexCount())
	}
	m.ForEachHex(func(h *hexmap.Hex) {
		c, ok := f.Get(h)
		if !ok {
			t.Fatalf("%v has no terrain", h)
		}
		for _, v := range []float64{c.Elevation, c.Rainfall, c.Temperature} {
			if v < 0 || v > 1 {
				t.Fatalf("%v: value %f out of range", h, v)
			}
		}
		if Name(f, h) == "" || Name(f, h) == "unknown" {
			t.Fatalf("%v: bad name %q", h, Name(f, h))
		}
	})
	total := 0
	for _, n := range Counts(f) {
		total += n
	}
	if total != m.HexCount() {
		t.Fatalf("Counts sums to %d", total)
	}
}

func TestAssignIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	a, b := board(t), board(t)
	fa, fb := Assign(a, cfg), Assign(b, cfg)
	a.ForEachHex(func(h *hexmap.Hex) {
		ca, _ := fa.Get(h)
		cb, _ := fb.Get(b.At(h.Row(), h.Col()))
		if ca != cb {
			t.Fatalf("%v: %+v vs %+v", h, ca, cb)
		}
	})
}

func TestDerive(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		elev, rain, temp float64
		want             Terrain
	}{
		{0.1, 0.5, 0.5, Lake},
		{0.9, 0.5, 0.5, Mountain},
		{0.5, 0.5, 0.1, Tundra},
		{0.5, 0.1, 0.8, Desert},
		{0.3, 0.9, 0.5, Swamp},
		{0.6, 0.6, 0.5, Forest},
		{0.4, 0.4, 0.4, Plains},
	}
	for _, c := range cases {
		if got := derive(c.elev, c.rain, c.temp, cfg); got != c.want {
			t.Errorf("derive(%v,%v,%v) = %v, want %v", c.elev, c.rain, c.temp, got, c.want)
		}
	}
	if Terrain(99).String() != "unknown" {
		t.Fatalf("out of range terrain name")
	}
}

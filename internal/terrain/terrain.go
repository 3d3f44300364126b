// Package terrain paints a board with terrain derived from layered simplex
// noise sampled at each cell's projected center.
package terrain

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexboard/internal/hexmap"
	"github.com/talgya/hexboard/internal/topo"
)

// Terrain types for board cells.
type Terrain uint8

const (
	Plains Terrain = iota
	Forest
	Mountain
	Desert
	Swamp
	Tundra
	Lake
)

var names = [...]string{"plains", "forest", "mountain", "desert", "swamp", "tundra", "lake"}

func (t Terrain) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Cell is the terrain facet of one board cell. Elevation, Rainfall and
// Temperature are in [0, 1].
type Cell struct {
	Terrain     Terrain
	Elevation   float64
	Rainfall    float64
	Temperature float64
}

// Config holds terrain generation parameters.
type Config struct {
	Seed          int64   // 0 = random
	LakeLevel     float64 // elevation below which a cell is a lake
	MountainLevel float64 // elevation above which a cell is a mountain
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		LakeLevel:     0.25,
		MountainLevel: 0.72,
	}
}

// Assign computes a terrain facet for every cell of m. The same seed and
// board always give the same result.
func Assign(m *hexmap.Map, cfg Config) *hexmap.Facets[Cell] {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	// Sample at unit radius so noise frequency does not depend on pixel size.
	t := m.Topology()
	var cx, cy float64
	if c := m.CenterHex(); c != nil {
		p := topo.Project(c.Row(), c.Col(), 1, t)
		cx, cy = p.X, p.Y
	}
	reach := 1.0
	m.ForEachHex(func(h *hexmap.Hex) {
		p := topo.Project(h.Row(), h.Col(), 1, t)
		reach = math.Max(reach, math.Hypot(p.X-cx, p.Y-cy))
	})

	facets := hexmap.NewFacets[Cell]()
	m.ForEachHex(func(h *hexmap.Hex) {
		p := topo.Project(h.Row(), h.Col(), 1, t)
		x, y := p.X-cx, p.Y-cy

		elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
		rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

		// Lower the rim so boards tend to be ringed by lakes.
		falloff := 1.0 - math.Pow(math.Hypot(x, y)/(reach+1), 3.5)
		elev *= math.Max(falloff, 0)

		temp = clamp(temp*0.6 + (1.0-math.Abs(y)/(reach+1))*0.3 + (1.0-elev)*0.1)

		facets.Set(h, Cell{
			Terrain:     derive(elev, rain, temp, cfg),
			Elevation:   elev,
			Rainfall:    rain,
			Temperature: temp,
		})
	})
	return facets
}

func derive(elev, rain, temp float64, cfg Config) Terrain {
	if elev < cfg.LakeLevel {
		return Lake
	}
	if elev > cfg.MountainLevel {
		return Mountain
	}
	if temp < 0.25 {
		return Tundra
	}
	if rain < 0.25 && temp > 0.5 {
		return Desert
	}
	if rain > 0.7 && elev < 0.45 {
		return Swamp
	}
	if rain > 0.45 && elev > 0.45 {
		return Forest
	}
	return Plains
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for range octaves {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func clamp(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// Counts returns how many cells carry each terrain.
func Counts(f *hexmap.Facets[Cell]) map[Terrain]int {
	counts := make(map[Terrain]int)
	f.Each(func(_ *hexmap.Hex, c Cell) {
		counts[c.Terrain]++
	})
	return counts
}

// Name returns the terrain name of h, or "" when h has no facet.
func Name(f *hexmap.Facets[Cell], h *hexmap.Hex) string {
	c, ok := f.Get(h)
	if !ok {
		return ""
	}
	return c.Terrain.String()
}

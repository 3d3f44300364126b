package hexmap

import "github.com/zyedidia/generic/mapset"

// PickColor chooses a palette color for the district whose cells are given,
// center first. From the center it looks along each direction for the first
// cell of another colored district and rules out that district's color. The
// base color is always ruled out. When the palette runs dry the configured
// default color is returned.
func (m *Map) PickColor(cells []*Hex) string {
	if len(cells) == 0 {
		return m.cfg.DefaultColor
	}
	center := cells[0]
	own, _ := center.District()

	forbidden := mapset.New[string]()
	forbidden.Put(m.cfg.Palette[0])
	for _, d := range m.topo().Dirs() {
		for x := center.Neighbor(d); x != nil; x = x.Neighbor(d) {
			id, ok := x.District()
			if !ok || id == own {
				continue
			}
			if c, ok := m.colors[id]; ok {
				forbidden.Put(c)
				break
			}
		}
	}
	for _, c := range m.cfg.Palette {
		if !forbidden.Has(c) {
			return c
		}
	}
	return m.cfg.DefaultColor
}

// colorDistrict assigns the district color: the base color for the first
// district placed on the map, PickColor otherwise.
func (m *Map) colorDistrict(district int, cells []*Hex) {
	var c string
	if len(m.colors) == 0 {
		c = m.cfg.Palette[0]
	} else {
		c = m.PickColor(cells)
	}
	m.SetDistrictColor(district, c)
}

// SetDistrictColor records the color of district and notifies listeners.
func (m *Map) SetDistrictColor(district int, color string) {
	if _, ok := m.colors[district]; !ok {
		m.districtIDs = append(m.districtIDs, district)
	}
	m.colors[district] = color
	for _, fn := range m.onColor {
		fn(district, color)
	}
}

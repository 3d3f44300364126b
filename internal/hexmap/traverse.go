package hexmap

// ForEachHex calls fn for every on-grid cell in ascending row, then column
// order.
func (m *Map) ForEachHex(fn func(h *Hex)) {
	m.each(func(h *Hex) bool {
		fn(h)
		return true
	})
}

// FilterHexes returns the cells that satisfy pred, in iteration order.
func (m *Map) FilterHexes(pred func(h *Hex) bool) []*Hex {
	var out []*Hex
	m.ForEachHex(func(h *Hex) {
		if pred(h) {
			out = append(out, h)
		}
	})
	return out
}

// FindHex returns the first cell, in iteration order, that satisfies pred.
func (m *Map) FindHex(pred func(h *Hex) bool) *Hex {
	var found *Hex
	m.each(func(h *Hex) bool {
		if pred(h) {
			found = h
			return false
		}
		return true
	})
	return found
}

// MapHexes applies fn to every cell in iteration order.
func MapHexes[R any](m *Map, fn func(h *Hex) R) []R {
	out := make([]R, 0, m.HexCount())
	m.ForEachHex(func(h *Hex) {
		out = append(out, fn(h))
	})
	return out
}

package hexmap

// OnMark registers fn to run when a cell gains (shown true) or loses the
// mark. When the mark moves, the old cell is notified before the new one.
func (m *Map) OnMark(fn func(h *Hex, shown bool)) {
	m.onMark = append(m.onMark, fn)
}

// Mark returns the marked cell, or nil.
func (m *Map) Mark() *Hex { return m.mark }

// ShowMark moves the single mark to h. A nil h clears it. Marking the
// already marked cell does nothing.
func (m *Map) ShowMark(h *Hex) {
	if h == m.mark {
		return
	}
	if old := m.mark; old != nil {
		m.mark = nil
		m.notifyMark(old, false)
	}
	m.mark = h
	if h != nil {
		m.notifyMark(h, true)
	}
}

func (m *Map) notifyMark(h *Hex, shown bool) {
	for _, fn := range m.onMark {
		fn(h, shown)
	}
}

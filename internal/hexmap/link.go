package hexmap

import "github.com/talgya/hexboard/internal/topo"

// link binds h to every existing neighbor in both directions. Neighbors that
// do not exist yet pick up the link when they are added.
func (m *Map) link(h *Hex) {
	t := m.topo()
	for _, d := range t.Dirs() {
		rc, _ := t.Next(h.RC(), d)
		if nb := m.At(rc.Row, rc.Col); nb != nil {
			h.links[d] = nb
			nb.links[topo.Reverse(d)] = h
		}
	}
}

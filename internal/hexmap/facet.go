package hexmap

// Facets attaches a value of type T to cells without changing Hex. Pair it
// with WithOnCreate to give every new cell a value.
type Facets[T any] struct {
	byHex map[*Hex]T
}

// NewFacets returns an empty side table.
func NewFacets[T any]() *Facets[T] {
	return &Facets[T]{byHex: make(map[*Hex]T)}
}

// Set stores v for h.
func (f *Facets[T]) Set(h *Hex, v T) { f.byHex[h] = v }

// Get returns the value stored for h.
func (f *Facets[T]) Get(h *Hex) (T, bool) {
	v, ok := f.byHex[h]
	return v, ok
}

// Delete removes the value stored for h.
func (f *Facets[T]) Delete(h *Hex) { delete(f.byHex, h) }

// Len returns the number of cells with a value.
func (f *Facets[T]) Len() int { return len(f.byHex) }

// Each calls fn for every stored value in no particular order.
func (f *Facets[T]) Each(fn func(h *Hex, v T)) {
	for h, v := range f.byHex {
		fn(h, v)
	}
}

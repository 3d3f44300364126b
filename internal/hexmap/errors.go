package hexmap

import "errors"

var (
	// ErrOccupied is returned when a cell already exists at the requested
	// coordinate. The map is left unchanged.
	ErrOccupied = errors.New("hexmap: coordinate already occupied")

	// ErrNotFound is returned by Lookup when the target map has no cell at
	// the serialized coordinate (usually a map of a different size).
	ErrNotFound = errors.New("hexmap: no cell at coordinate")

	// ErrNameMismatch is returned by Lookup when the cell found at the
	// serialized coordinate carries a different name.
	ErrNameMismatch = errors.New("hexmap: cell name does not match")

	// ErrDistrictOrder is returned for a district order outside the range a
	// generator supports.
	ErrDistrictOrder = errors.New("hexmap: invalid district order")

	// ErrTopology is returned when a generator does not support the map's
	// topology.
	ErrTopology = errors.New("hexmap: generator does not support topology")
)

// Package topo holds the direction vocabulary, the per-parity neighbor
// offset tables for the two hex axis conventions, and the pixel geometry
// derived from them.
package topo

import "fmt"

// Dir is a compass label for one side of a hex. The values are ordered
// clockwise from north in 30 degree steps, so a Dir doubles as its rotation.
type Dir uint8

const (
	N  Dir = iota // 0°
	NE            // 30°
	EN            // 60°
	E             // 90°
	ES            // 120°
	SE            // 150°
	S             // 180°
	SW            // 210°
	WS            // 240°
	W             // 270°
	WN            // 300°
	NW            // 330°
)

// NumDirs is the size of the direction vocabulary (both topologies).
const NumDirs = 12

var dirNames = [NumDirs]string{"N", "NE", "EN", "E", "ES", "SE", "S", "SW", "WS", "W", "WN", "NW"}

// String returns the compass label.
func (d Dir) String() string {
	if int(d) < NumDirs {
		return dirNames[d]
	}
	return fmt.Sprintf("Dir(%d)", uint8(d))
}

// Valid reports whether d is one of the twelve labels.
func (d Dir) Valid() bool {
	return int(d) < NumDirs
}

// Reverse returns the direction 180° opposite d.
func Reverse(d Dir) Dir {
	return (d + 6) % NumDirs
}

// Rotation returns the clockwise angle of d in degrees.
func Rotation(d Dir) int {
	return int(d) * 30
}

// DirAtRotation returns the direction at the given clockwise angle.
// Angles are normalized to [0, 360); only multiples of 30 resolve.
func DirAtRotation(deg int) (Dir, bool) {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	if deg%30 != 0 {
		return 0, false
	}
	return Dir(deg / 30), true
}

// ParseDir resolves a compass label such as "NE" or "WS".
func ParseDir(s string) (Dir, bool) {
	for i, name := range dirNames {
		if name == s {
			return Dir(i), true
		}
	}
	return 0, false
}

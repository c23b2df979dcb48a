package atlas

import (
	"strings"
)

// Rotation is the clockwise rotation a part was stored with in the sheet.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseRotation decodes the value of a rotate line. Both the full
// "  rotate: true" line and a bare "true" token are accepted.
//
// "true" means 90 degrees; "180" and "270" mean what they say. Anything else,
// including "false", is no rotation.
func ParseRotation(line string) Rotation {
	v := strings.TrimSpace(line)
	v = strings.TrimSpace(strings.TrimPrefix(v, "rotate:"))
	switch v {
	case "true":
		return Rotate90
	case "180":
		return Rotate180
	case "270":
		return Rotate270
	default:
		return Rotate0
	}
}

// Degrees returns the clockwise angle in degrees.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	default:
		return "invalid"
	}
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return (4 - r) % 4
}

// Swaps reports whether r exchanges width and height.
func (r Rotation) Swaps() bool {
	return r == Rotate90 || r == Rotate270
}

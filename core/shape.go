package core

import "fmt"

// ShapeKind identifies one of the seven piece kinds. The zero value NoShape
// marks an empty cell, so a ShapeKind doubles as a board cell tag.
type ShapeKind uint8

const (
	// NoShape marks an empty cell.
	NoShape ShapeKind = iota
	// ShapeI is the straight piece.
	ShapeI
	// ShapeL is the L piece.
	ShapeL
	// ShapeJ is the mirrored L piece.
	ShapeJ
	// ShapeO is the square piece.
	ShapeO
	// ShapeS is the S piece.
	ShapeS
	// ShapeZ is the mirrored S piece.
	ShapeZ
	// ShapeT is the T piece.
	ShapeT
)

// Shapes lists the seven playable kinds in declaration order.
var Shapes = [...]ShapeKind{ShapeI, ShapeL, ShapeJ, ShapeO, ShapeS, ShapeZ, ShapeT}

// String returns the conventional single letter name of the kind.
func (k ShapeKind) String() string {
	switch k {
	case NoShape:
		return "None"
	case ShapeI:
		return "I"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	case ShapeO:
		return "O"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeT:
		return "T"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k ShapeKind) Valid() bool { return k >= ShapeI && k <= ShapeT }

// Width returns the horizontal extent (1-4) of the kind in orientation o.
// It panics for NoShape or an unknown kind.
func (k ShapeKind) Width(o Orientation) int {
	return widths[k.index()][o.index()]
}

// Footprint returns the 4x4 occupancy matrix of the kind in orientation o.
// It panics for NoShape or an unknown kind.
func (k ShapeKind) Footprint(o Orientation) Footprint {
	return footprints[k.index()][o.index()]
}

func (k ShapeKind) index() int {
	if !k.Valid() {
		panic(fmt.Sprintf("core: no geometry for shape %s", k))
	}
	return int(k - ShapeI)
}

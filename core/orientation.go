package core

import "fmt"

// Orientation is the rotation state of a piece. The declaration order is the
// clockwise cycle Up -> Right -> Down -> Left -> Up.
type Orientation uint8

const (
	// Up is the spawn orientation.
	Up Orientation = iota
	// Right is one clockwise turn from Up.
	Right
	// Down is two turns from Up.
	Down
	// Left is one counter-clockwise turn from Up.
	Left
)

// Orientations lists all orientations in clockwise order.
var Orientations = [...]Orientation{Up, Right, Down, Left}

func (o Orientation) String() string {
	switch o {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}

// Cw returns the next orientation clockwise.
func (o Orientation) Cw() Orientation { return Orientation((o.index() + 1) % 4) }

// Ccw returns the next orientation counter-clockwise.
func (o Orientation) Ccw() Orientation { return Orientation((o.index() + 3) % 4) }

// Rotate turns o one step in direction d.
func (o Orientation) Rotate(d Direction) Orientation {
	if d == Ccw {
		return o.Ccw()
	}
	return o.Cw()
}

func (o Orientation) index() int {
	if o > Left {
		panic(fmt.Sprintf("core: invalid orientation %d", uint8(o)))
	}
	return int(o)
}

// Direction is a rotation sense.
type Direction uint8

const (
	// Cw rotates clockwise.
	Cw Direction = iota
	// Ccw rotates counter-clockwise.
	Ccw
)

func (d Direction) String() string {
	if d == Ccw {
		return "Ccw"
	}
	return "Cw"
}

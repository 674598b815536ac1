package piece

import (
	"errors"

	"github.com/hupe1980/tetrix/board"
	"github.com/hupe1980/tetrix/core"
)

const (
	// SpawnRow is the row every new piece is anchored at.
	SpawnRow = 21
	// SpawnColumn is the spawn column of every kind but the straight piece.
	SpawnColumn = 4
	// StraightSpawnColumn is the spawn column of the straight piece.
	StraightSpawnColumn = 3
)

// ErrRotationBlocked reports a rotation for which the wall-kick search found
// no free position. The piece is left unchanged.
var ErrRotationBlocked = errors.New("piece: rotation blocked")

// Piece is the falling piece state. It is a small value type; the
// orchestrator replaces it wholesale on lock or hold.
type Piece struct {
	Kind        core.ShapeKind   `json:"kind"`
	Orientation core.Orientation `json:"orientation"`
	Position    core.Point       `json:"position"`
}

// Spawn returns a fresh piece of kind k at the spawn position, facing Up.
func Spawn(k core.ShapeKind) Piece {
	x := SpawnColumn
	if k == core.ShapeI {
		x = StraightSpawnColumn
	}
	return Piece{Kind: k, Orientation: core.Up, Position: core.Point{X: x, Y: SpawnRow}}
}

// Footprint returns the occupancy matrix for the current kind and orientation.
func (p *Piece) Footprint() core.Footprint { return p.Kind.Footprint(p.Orientation) }

// Width returns the horizontal extent for the current orientation.
func (p *Piece) Width() int { return p.Kind.Width(p.Orientation) }

// Collides reports whether the piece sticks out of the board sideways or
// vertically, or covers a locked cell.
func (p *Piece) Collides(b *board.Board) bool {
	if p.Position.X < 0 || p.Position.X+p.Width() > core.BoardWidth {
		return true
	}
	for c := range p.Footprint().Cells(p.Position) {
		if c.X >= core.BoardWidth || c.Y < 0 || c.Y >= core.BoardHeight {
			return true
		}
		if b.Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// Resting reports whether the piece cannot fall any further: it sits on the
// floor or one row lower would collide.
func (p *Piece) Resting(b *board.Board) bool {
	if p.Position.Y == 0 {
		return true
	}
	below := *p
	below.Position.Y--
	return below.Collides(b)
}

// MoveLeft shifts the piece one column left unless that collides. It reports
// whether the position changed.
func (p *Piece) MoveLeft(b *board.Board) bool { return p.shift(-1, b) }

// MoveRight shifts the piece one column right unless that collides. It
// reports whether the position changed.
func (p *Piece) MoveRight(b *board.Board) bool { return p.shift(1, b) }

func (p *Piece) shift(dx int, b *board.Board) bool {
	p.Position.X += dx
	if p.Collides(b) {
		p.Position.X -= dx
		return false
	}
	return true
}

// MoveDown lowers the piece one row unless it is on the floor. It does not
// test for collisions; callers check Resting first. It reports whether the
// position changed.
func (p *Piece) MoveDown() bool {
	if p.Position.Y == 0 {
		return false
	}
	p.Position.Y--
	return true
}

// HardDrop lowers the piece until the next row would collide or it reaches
// the floor, and returns the number of rows fallen.
func (p *Piece) HardDrop(b *board.Board) int {
	start := p.Position.Y
	for p.Position.Y > 0 {
		p.Position.Y--
		if p.Collides(b) {
			p.Position.Y++
			break
		}
	}
	return start - p.Position.Y
}

// Rotate turns the piece one step in direction d and resolves any overlap
// with the wall-kick search. When no position is found within the board the
// piece is restored and ErrRotationBlocked is returned.
func (p *Piece) Rotate(d core.Direction, b *board.Board) error {
	orig := *p
	p.Orientation = p.Orientation.Rotate(d)

	for p.Position.Y < core.BoardHeight {
		if p.kick(b) {
			return nil
		}
		p.Position.Y++
	}

	*p = orig
	return ErrRotationBlocked
}

// kick tries the current column, then up to maxKick columns to the left. On
// failure the column is restored.
func (p *Piece) kick(b *board.Board) bool {
	if !p.Collides(b) {
		return true
	}
	x := p.Position.X
	for shifted := 1; shifted <= p.maxKick() && p.Position.X > 0; shifted++ {
		p.Position.X--
		if !p.Collides(b) {
			return true
		}
	}
	p.Position.X = x
	return false
}

func (p *Piece) maxKick() int {
	if p.Kind == core.ShapeI {
		return 3
	}
	return 1
}

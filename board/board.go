package board

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/hupe1980/tetrix/core"
)

// Board is a core.BoardWidth x core.BoardHeight grid of optional shape tags.
// The zero value is an empty board. Board is not safe for concurrent use.
type Board struct {
	cells core.Grid
}

// New returns an empty board.
func New() *Board { return &Board{} }

// FromGrid returns a board holding a copy of grid.
func FromGrid(grid core.Grid) *Board { return &Board{cells: grid} }

// Cell returns the tag at column x, row y.
func (b *Board) Cell(x, y int) core.ShapeKind {
	mustContain(x, y)
	return b.cells[y][x]
}

// Occupied reports whether the cell at column x, row y is locked.
func (b *Board) Occupied(x, y int) bool { return b.Cell(x, y) != core.NoShape }

// Snapshot returns a copy of every cell.
func (b *Board) Snapshot() core.Grid { return b.cells }

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != core.NoShape {
				n++
			}
		}
	}
	return n
}

// Paint writes every occupied footprint cell anchored at pos into the board.
// Cells the footprint leaves empty are not touched, so Paint also serves to
// merge shapes into existing content.
func (b *Board) Paint(fp core.Footprint, pos core.Point) {
	for p, kind := range fp.Cells(pos) {
		mustContain(p.X, p.Y)
		b.cells[p.Y][p.X] = kind
	}
}

// Erase clears every cell that is occupied in the footprint anchored at pos
// and currently locked on the board.
func (b *Board) Erase(fp core.Footprint, pos core.Point) {
	for p := range fp.Cells(pos) {
		if !contains(p.X, p.Y) {
			continue
		}
		b.cells[p.Y][p.X] = core.NoShape
	}
}

// Reset clears every cell.
func (b *Board) Reset() { b.cells = core.Grid{} }

// LoadLayout copies rows into the board. rows are ordered top to bottom and
// the last row lands on board row origin.Y; column j lands on origin.X+j.
// With overwrite the destination cells are replaced unconditionally,
// otherwise only empty destination cells are filled.
func (b *Board) LoadLayout(rows [][]core.ShapeKind, origin core.Point, overwrite bool) {
	for i, row := range rows {
		y := origin.Y + len(rows) - 1 - i
		for j, kind := range row {
			x := origin.X + j
			mustContain(x, y)
			if overwrite || b.cells[y][x] == core.NoShape {
				b.cells[y][x] = kind
			}
		}
	}
}

// ScatterDebris fills count uniformly chosen empty cells with random kinds.
// It panics when the board has fewer than count empty cells.
func (b *Board) ScatterDebris(count int, rng *rand.Rand) {
	if free := core.BoardWidth*core.BoardHeight - b.Filled(); count > free {
		panic(fmt.Sprintf("board: cannot scatter %d cells on %d free", count, free))
	}
	for placed := 0; placed < count; {
		x, y := rng.IntN(core.BoardWidth), rng.IntN(core.BoardHeight)
		if b.cells[y][x] != core.NoShape {
			continue
		}
		b.cells[y][x] = core.Shapes[rng.IntN(len(core.Shapes))]
		placed++
	}
}

// String renders the board for debugging: a header with the board height,
// one line per row from the top with its index, and a column index footer.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[  ]----%02d----\n", core.BoardHeight)
	for y := core.BoardHeight - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%02d ", y)
		for x := 0; x < core.BoardWidth; x++ {
			if b.cells[y][x] != core.NoShape {
				sb.WriteByte('x')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("-------------\n")
	sb.WriteString("  |0123456789\n")
	return sb.String()
}

func contains(x, y int) bool {
	return x >= 0 && x < core.BoardWidth && y >= 0 && y < core.BoardHeight
}

func mustContain(x, y int) {
	if !contains(x, y) {
		panic(fmt.Sprintf("board: cell (%d,%d) outside %dx%d board", x, y, core.BoardWidth, core.BoardHeight))
	}
}

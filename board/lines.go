package board

import "github.com/hupe1980/tetrix/core"

// ClearFullLines removes every full row and lets the rows above fall into
// the gap. Rows are scanned bottom-up; after a clear the same index is
// examined again because a new row has fallen into it. It returns the number
// of cleared rows.
func (b *Board) ClearFullLines() int {
	cleared := 0
	for y := 0; y < core.BoardHeight; {
		if !b.rowFull(y) {
			y++
			continue
		}
		b.collapse(y)
		cleared++
	}
	return cleared
}

// collapse shifts every row above y down by one, stopping early once the row
// being copied is empty since nothing above it can fall.
func (b *Board) collapse(y int) {
	for z := y; z < core.BoardHeight-1; z++ {
		b.cells[z] = b.cells[z+1]
		if b.rowEmpty(z + 1) {
			return
		}
	}
	b.cells[core.BoardHeight-1] = [core.BoardWidth]core.ShapeKind{}
}

func (b *Board) rowFull(y int) bool {
	for _, cell := range b.cells[y] {
		if cell == core.NoShape {
			return false
		}
	}
	return true
}

func (b *Board) rowEmpty(y int) bool {
	for _, cell := range b.cells[y] {
		if cell != core.NoShape {
			return false
		}
	}
	return true
}

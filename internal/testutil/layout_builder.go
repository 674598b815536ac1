package testutil

import (
	"fmt"

	"github.com/hupe1980/tetrix/core"
)

// LayoutBuilder builds board layouts from ASCII rows for tests.
// Example:
//
//	rows := NewLayoutBuilder().Row("x.xxxxxxxx").Repeat(3).Build()
//
// Rows are added top to bottom, matching board.LoadLayout. Any character
// other than '.' and ' ' is an occupied cell tagged with the builder's kind.
type LayoutBuilder struct {
	kind core.ShapeKind
	rows [][]core.ShapeKind
}

// NewLayoutBuilder creates a builder that tags occupied cells as ShapeO.
func NewLayoutBuilder() *LayoutBuilder { return &LayoutBuilder{kind: core.ShapeO} }

// Kind sets the tag used for subsequently added rows (chainable).
func (b *LayoutBuilder) Kind(k core.ShapeKind) *LayoutBuilder { b.kind = k; return b }

// Row appends one row below the previous ones (chainable).
func (b *LayoutBuilder) Row(s string) *LayoutBuilder {
	if len(s) > core.BoardWidth {
		panic(fmt.Sprintf("testutil: row %q wider than the board", s))
	}
	row := make([]core.ShapeKind, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '.' && s[i] != ' ' {
			row[i] = b.kind
		}
	}
	b.rows = append(b.rows, row)
	return b
}

// Repeat appends n more copies of the last row (chainable).
func (b *LayoutBuilder) Repeat(n int) *LayoutBuilder {
	last := b.rows[len(b.rows)-1]
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, append([]core.ShapeKind(nil), last...))
	}
	return b
}

// Build returns the rows top to bottom.
func (b *LayoutBuilder) Build() [][]core.ShapeKind { return b.rows }

// FullRow returns a board-wide row string with the given columns left empty.
func FullRow(holes ...int) string {
	row := []byte("xxxxxxxxxx")
	for _, h := range holes {
		row[h] = '.'
	}
	return string(row)
}

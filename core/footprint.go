package core

import "iter"

const (
	// BoardWidth is the number of board columns.
	BoardWidth = 10
	// BoardHeight is the number of board rows. Row 0 is the bottom.
	BoardHeight = 25
	// FootprintSize is the edge length of every footprint matrix.
	FootprintSize = 4
)

// Point is a board coordinate. For a piece it anchors the bottom-left corner
// of its 4x4 footprint.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a value snapshot of every board cell, indexed [row][column].
type Grid [BoardHeight][BoardWidth]ShapeKind

// Footprint is the occupancy matrix of a piece. Row 3 of the matrix is the
// bottom-most row of the piece, so board row origin.Y+r receives matrix row 3-r.
type Footprint [FootprintSize][FootprintSize]ShapeKind

// Cells yields the board coordinate and kind of every occupied cell when the
// footprint is anchored at origin.
func (f Footprint) Cells(origin Point) iter.Seq2[Point, ShapeKind] {
	return func(yield func(Point, ShapeKind) bool) {
		for r := 0; r < FootprintSize; r++ {
			for c := 0; c < FootprintSize; c++ {
				kind := f[FootprintSize-1-r][c]
				if kind == NoShape {
					continue
				}
				if !yield(Point{X: origin.X + c, Y: origin.Y + r}, kind) {
					return
				}
			}
		}
	}
}

// Span returns the first and one-past-last occupied columns of the footprint.
func (f Footprint) Span() (int, int) {
	lo, hi := FootprintSize, 0
	for r := range f {
		for c, kind := range f[r] {
			if kind == NoShape {
				continue
			}
			lo = min(lo, c)
			hi = max(hi, c+1)
		}
	}
	return lo, hi
}

// widths is indexed [kind][orientation] in Shapes and Orientations order.
var widths = [len(Shapes)][4]int{
	{1, 4, 1, 4}, // I
	{2, 3, 2, 3}, // L
	{2, 3, 2, 3}, // J
	{2, 2, 2, 2}, // O
	{2, 3, 2, 3}, // S
	{2, 3, 2, 3}, // Z
	{3, 2, 3, 2}, // T
}

// patterns draws each footprint top row first, '#' marking an occupied cell.
// Every pattern is bottom and left aligned.
var patterns = [len(Shapes)][4][FootprintSize]string{
	{ // I
		{"#...", "#...", "#...", "#..."},
		{"....", "....", "....", "####"},
		{"#...", "#...", "#...", "#..."},
		{"....", "....", "....", "####"},
	},
	{ // L
		{"....", "#...", "#...", "##.."},
		{"....", "....", "###.", "#..."},
		{"....", "##..", ".#..", ".#.."},
		{"....", "....", "..#.", "###."},
	},
	{ // J
		{"....", ".#..", ".#..", "##.."},
		{"....", "....", "#...", "###."},
		{"....", "##..", "#...", "#..."},
		{"....", "....", "###.", "..#."},
	},
	{ // O
		{"....", "....", "##..", "##.."},
		{"....", "....", "##..", "##.."},
		{"....", "....", "##..", "##.."},
		{"....", "....", "##..", "##.."},
	},
	{ // S
		{"....", "#...", "##..", ".#.."},
		{"....", "....", ".##.", "##.."},
		{"....", "#...", "##..", ".#.."},
		{"....", "....", ".##.", "##.."},
	},
	{ // Z
		{"....", ".#..", "##..", "#..."},
		{"....", "....", "##..", ".##."},
		{"....", ".#..", "##..", "#..."},
		{"....", "....", "##..", ".##."},
	},
	{ // T
		{"....", "....", ".#..", "###."},
		{"....", "#...", "##..", "#..."},
		{"....", "....", "###.", ".#.."},
		{"....", ".#..", "##..", ".#.."},
	},
}

var footprints = func() (table [len(Shapes)][4]Footprint) {
	for k, kind := range Shapes {
		for o := range Orientations {
			for r, line := range patterns[k][o] {
				for c, ch := range line {
					if ch == '#' {
						table[k][o][r][c] = kind
					}
				}
			}
		}
	}
	return table
}()

package game

import (
	"fmt"

	"github.com/hupe1980/tetrix/board"
	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/piece"
)

// Summary is a point-in-time digest of a game.
type Summary struct {
	State   State                  `json:"state"`
	Reason  string                 `json:"reason,omitempty"`
	Score   int                    `json:"score"`
	Lines   int                    `json:"lines"`
	Locked  int                    `json:"locked"`
	Steps   int                    `json:"steps"`
	Spawned map[core.ShapeKind]int `json:"spawned"`
}

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Score returns the number of rows cleared so far.
func (g *Game) Score() int { return g.score }

// Piece returns a copy of the falling piece.
func (g *Game) Piece() piece.Piece { return g.piece }

// Next returns the queued upcoming kind.
func (g *Game) Next() core.ShapeKind { return g.next }

// Held returns the held kind, if any.
func (g *Game) Held() (core.ShapeKind, bool) { return g.held, g.held != core.NoShape }

// History returns the most recent inputs, newest first.
func (g *Game) History() []core.Input { return append([]core.Input(nil), g.history...) }

// Board exposes the board for inspection. Callers must not mutate it; use
// LoadLayout and SetPiece to stage scenarios.
func (g *Game) Board() *board.Board { return g.board }

// LoadLayout stages rows on the board, see board.Board.LoadLayout. The
// layout must stay clear of the falling piece.
func (g *Game) LoadLayout(rows [][]core.ShapeKind, origin core.Point, overwrite bool) {
	g.unpaint()
	g.board.LoadLayout(rows, origin, overwrite)
	g.repaint()
}

// SetPiece replaces the falling piece. It panics if p collides with the
// locked cells or the board edges.
func (g *Game) SetPiece(p piece.Piece) {
	g.unpaint()
	if p.Collides(g.board) {
		g.repaint()
		panic(fmt.Sprintf("game: piece %s at %v collides", p.Kind, p.Position))
	}
	g.piece = p
	g.repaint()
}

// Summary returns the current statistics.
func (g *Game) Summary() Summary {
	spawned := make(map[core.ShapeKind]int, len(core.Shapes))
	for _, k := range core.Shapes {
		if n, ok := g.spawned.Get(k); ok {
			spawned[k] = n
		}
	}
	return Summary{
		State:   g.state,
		Reason:  g.reason,
		Score:   g.score,
		Lines:   g.lines,
		Locked:  g.locked,
		Steps:   g.steps,
		Spawned: spawned,
	}
}

// The falling piece is only painted while playing.
func (g *Game) unpaint() {
	if g.state == StatePlaying {
		g.board.Erase(g.piece.Footprint(), g.piece.Position)
	}
}

func (g *Game) repaint() {
	if g.state == StatePlaying {
		g.paint()
	}
}

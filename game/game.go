package game

import (
	"fmt"

	"github.com/hupe1980/tetrix/board"
	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/piece"
	"github.com/kamstrup/intmap"
)

// State is the lifecycle state of a game.
type State uint8

const (
	// StateNew is a game waiting for its start command.
	StateNew State = iota
	// StatePlaying is a game in progress.
	StatePlaying
	// StateOver is terminal; no further input is processed.
	StateOver
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "New"
	case StatePlaying:
		return "Playing"
	case StateOver:
		return "Over"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// DefaultLockOutRow is the near-top threshold: a piece locking at or above
// this row ends the game.
const DefaultLockOutRow = 20

// Game over reasons reported in Summary.
const (
	ReasonQuit     = "quit"
	ReasonBlockOut = "block out"
	ReasonLockOut  = "lock out"
)

const historySize = 3

// Options configures a Game.
type Options struct {
	// LockOutRow ends the game when a piece locks at or above it. Zero or a
	// negative value disables the check, leaving spawn collisions as the only
	// automatic game over.
	LockOutRow int

	// SoftDrop makes every lock-check cycle of a Down step descend one row,
	// so a Down input moves the piece two rows. By default Down only runs
	// the cycle twice and a cycle descends only when gravity is pending.
	SoftDrop bool

	// Board pre-seeds the game with an existing board. The game takes
	// ownership of it. Defaults to an empty board.
	Board *board.Board
}

// Game is the orchestration state machine for one game instance.
type Game struct {
	opts     Options
	provider core.ShapeProvider
	board    *board.Board
	state    State
	reason   string

	piece   piece.Piece
	from    *piece.Piece // falling piece at the start of the step, nil once replaced
	next    core.ShapeKind
	pending []core.ShapeKind // kinds pushed back ahead of the provider
	held    core.ShapeKind
	history []core.Input

	doubleStep  bool
	gravityDue  bool
	holdAllowed bool

	score   int
	lines   int
	locked  int
	steps   int
	spawned *intmap.Map[core.ShapeKind, int]

	out []core.Output
}

// New creates a game drawing its pieces from provider. The first falling
// piece and the queued next kind are drawn immediately.
func New(provider core.ShapeProvider, optFns ...func(o *Options)) *Game {
	opts := Options{
		LockOutRow: DefaultLockOutRow,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	b := opts.Board
	if b == nil {
		b = board.New()
	}

	g := &Game{
		opts:        opts,
		provider:    provider,
		board:       b,
		state:       StateNew,
		holdAllowed: true,
		history:     make([]core.Input, 0, historySize),
		spawned:     intmap.New[core.ShapeKind, int](len(core.Shapes)),
	}
	g.spawn(g.draw())
	g.next = g.draw()

	return g
}

// Step processes one input and returns the outputs it produced, in order.
// Inputs received once the game is over produce nothing.
func (g *Game) Step(in core.Input) []core.Output {
	g.out = nil

	switch g.state {
	case StateOver:
		return nil
	case StateNew:
		switch in {
		case core.InputStartGame:
			g.start()
		case core.InputEndGame:
			g.quit()
		}
		return g.flush()
	}

	switch in {
	case core.InputStartGame:
		g.emit(core.NewOutput(core.OutputGameRunning))
		return g.flush()
	case core.InputEndGame:
		g.quit()
		return g.flush()
	}

	g.steps++
	g.pushHistory(in)
	g.board.Erase(g.piece.Footprint(), g.piece.Position)
	from := g.piece
	g.from = &from

	g.dispatch(in)

	cycles := 1
	if g.doubleStep {
		cycles = 2
		g.doubleStep = false
	}
	for i := 0; i < cycles && g.state == StatePlaying; i++ {
		g.settle(in)
	}

	if g.state == StatePlaying {
		g.paint()
	}
	g.emit(core.NewBoardOutput(g.board.Snapshot()))
	if g.state == StateOver {
		g.emit(core.NewOutput(core.OutputGameOver))
	}

	return g.flush()
}

// Start moves a new game into play and returns the outputs that produced,
// like Step(InputStartGame). It has no effect in any other state.
func (g *Game) Start() []core.Output {
	g.out = nil
	g.start()
	return g.flush()
}

// Quit ends the game and returns the GameOver output. It has no effect once
// the game is over.
func (g *Game) Quit() []core.Output {
	g.out = nil
	g.quit()
	return g.flush()
}

func (g *Game) start() {
	if g.state != StateNew {
		return
	}
	g.state = StatePlaying
	g.emit(core.NewOutput(core.OutputGameStarted))
	g.emit(core.NewShapeOutput(core.OutputNextShape, g.next))
	if g.piece.Collides(g.board) {
		g.end(ReasonBlockOut)
		g.emit(core.NewOutput(core.OutputGameOver))
		return
	}
	g.paint()
}

func (g *Game) quit() {
	if g.state == StateOver {
		return
	}
	g.end(ReasonQuit)
	g.emit(core.NewOutput(core.OutputGameOver))
}

func (g *Game) dispatch(in core.Input) {
	switch in {
	case core.InputLeft:
		if g.piece.MoveLeft(g.board) {
			g.emit(core.NewOutput(core.OutputMovedShape))
		}
	case core.InputRight:
		if g.piece.MoveRight(g.board) {
			g.emit(core.NewOutput(core.OutputMovedShape))
		}
	case core.InputDrop:
		if g.piece.HardDrop(g.board) > 0 {
			g.emit(core.NewOutput(core.OutputMovedShape))
		}
	case core.InputDown:
		g.doubleStep = true
	case core.InputHold:
		g.hold()
	case core.InputRestoreHold:
		g.restore()
	case core.InputCw:
		g.rotate(core.Cw)
	case core.InputCcw:
		g.rotate(core.Ccw)
	case core.InputTick:
		g.gravityDue = true
	}
}

// settle runs one lock-check cycle. A resting piece locks on a hard drop or
// when gravity finds it resting for a second consecutive tick; otherwise it
// stays suspended and pending gravity is kept. A falling piece descends when
// gravity is due, or on every cycle of a Down step with SoftDrop enabled.
// Only a descent consumes pending gravity.
func (g *Game) settle(in core.Input) {
	if g.piece.Resting(g.board) {
		g.emitPosition()
		if in == core.InputDrop || (g.gravityDue && g.graceExpired()) {
			g.lock()
		}
		return
	}

	if g.gravityDue || (g.opts.SoftDrop && in == core.InputDown) {
		g.gravityDue = false
		if g.piece.MoveDown() {
			g.emit(core.NewOutput(core.OutputMovedShape))
		}
	}
	g.emitPosition()
}

func (g *Game) graceExpired() bool {
	return len(g.history) >= 2 && g.history[0] == core.InputTick && g.history[1] == core.InputTick
}

func (g *Game) lock() {
	kind := g.piece.Kind
	lockedOut := g.opts.LockOutRow > 0 && g.piece.Position.Y >= g.opts.LockOutRow

	g.paint()
	g.locked++
	g.emit(core.NewLockedOutput(kind, g.board.Snapshot()))

	g.holdAllowed = true
	g.promote()

	if n := g.board.ClearFullLines(); n > 0 {
		g.score += n
		g.lines += n
		g.emit(core.NewLinesOutput(n, g.board.Snapshot()))
		g.emit(core.NewScoreOutput(g.score))
	}

	switch {
	case lockedOut:
		g.end(ReasonLockOut)
	case g.piece.Collides(g.board):
		g.end(ReasonBlockOut)
	}
}

func (g *Game) hold() {
	if !g.holdAllowed {
		return
	}
	g.holdAllowed = false

	if g.held == core.NoShape {
		g.held = g.piece.Kind
		g.promote()
	} else {
		swapped := g.held
		g.held = g.piece.Kind
		g.spawn(swapped)
	}
	g.emit(core.NewShapeOutput(core.OutputHeldShape, g.held))

	if g.piece.Collides(g.board) {
		g.end(ReasonBlockOut)
	}
}

// restore brings the held kind back into play. The displaced kind becomes the
// queued next piece and the previously queued kind is kept right behind it.
func (g *Game) restore() {
	if !g.holdAllowed || g.held == core.NoShape {
		return
	}
	g.holdAllowed = false

	restored := g.held
	g.held = core.NoShape
	g.pending = append([]core.ShapeKind{g.next}, g.pending...)
	g.next = g.piece.Kind
	g.spawn(restored)

	g.emit(core.NewShapeOutput(core.OutputRestoredShape, restored))
	g.emit(core.NewShapeOutput(core.OutputNextShape, g.next))

	if g.piece.Collides(g.board) {
		g.end(ReasonBlockOut)
	}
}

func (g *Game) rotate(d core.Direction) {
	if err := g.piece.Rotate(d, g.board); err != nil {
		return
	}
	g.emit(core.NewRotatedOutput(g.piece.Orientation))
}

// promote makes the queued kind the falling piece and queues a new one.
func (g *Game) promote() {
	g.spawn(g.next)
	g.next = g.draw()
	g.emit(core.NewShapeOutput(core.OutputNextShape, g.next))
}

func (g *Game) spawn(k core.ShapeKind) {
	g.piece = piece.Spawn(k)
	g.from = nil
	n, _ := g.spawned.Get(k)
	g.spawned.Put(k, n+1)
}

func (g *Game) draw() core.ShapeKind {
	if len(g.pending) > 0 {
		k := g.pending[0]
		g.pending = g.pending[1:]
		return k
	}
	k := g.provider.NextShape()
	if !k.Valid() {
		panic(fmt.Sprintf("game: shape provider returned %s", k))
	}
	return k
}

func (g *Game) pushHistory(in core.Input) {
	if len(g.history) < historySize {
		g.history = append(g.history, core.InputNone)
	}
	copy(g.history[1:], g.history[:len(g.history)-1])
	g.history[0] = in
}

func (g *Game) paint() {
	g.board.Paint(g.piece.Footprint(), g.piece.Position)
}

func (g *Game) end(reason string) {
	g.state = StateOver
	g.reason = reason
}

func (g *Game) emitPosition() {
	out := core.NewPositionOutput(g.piece.Kind, nil, g.piece.Orientation, nil, g.piece.Position)
	if g.from != nil {
		o, p := g.from.Orientation, g.from.Position
		out.FromOrientation = &o
		out.FromPosition = &p
	}
	g.emit(out)
}

func (g *Game) emit(out core.Output) {
	g.out = append(g.out, out)
}

func (g *Game) flush() []core.Output {
	out := g.out
	g.out = nil
	return out
}

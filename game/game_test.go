package game

import (
	"testing"

	"github.com/hupe1980/tetrix/bag"
	"github.com/hupe1980/tetrix/board"
	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/internal/testutil"
	"github.com/hupe1980/tetrix/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct{ mock.Mock }

func (m *MockProvider) NextShape() core.ShapeKind {
	args := m.Called()
	return args.Get(0).(core.ShapeKind)
}

func started(t *testing.T, kinds ...core.ShapeKind) *Game {
	t.Helper()
	g := New(bag.NewSequence(kinds...))
	out := g.Start()
	require.Equal(t, []core.OutputKind{core.OutputGameStarted, core.OutputNextShape}, testutil.Kinds(out))
	require.Equal(t, StatePlaying, g.State())
	return g
}

func TestNew_DrawsCurrentAndNext(t *testing.T) {
	p := new(MockProvider)
	p.On("NextShape").Return(core.ShapeT).Once()
	p.On("NextShape").Return(core.ShapeO).Once()

	g := New(p)

	assert.Equal(t, StateNew, g.State())
	assert.Equal(t, core.ShapeT, g.Piece().Kind)
	assert.Equal(t, core.ShapeO, g.Next())
	_, ok := g.Held()
	assert.False(t, ok)
	p.AssertNumberOfCalls(t, "NextShape", 2)
	assert.Zero(t, g.Board().Filled(), "piece is not painted before start")
}

func TestNew_InvalidProviderPanics(t *testing.T) {
	p := new(MockProvider)
	p.On("NextShape").Return(core.NoShape)
	assert.Panics(t, func() { New(p) })
}

func TestStep_NewState(t *testing.T) {
	g := New(bag.NewSequence(core.ShapeO, core.ShapeT))

	assert.Empty(t, g.Step(core.InputTick))
	assert.Equal(t, StateNew, g.State())

	out := g.Step(core.InputStartGame)
	assert.Equal(t, []core.OutputKind{core.OutputGameStarted, core.OutputNextShape}, testutil.Kinds(out))
	assert.Equal(t, core.ShapeT, out[1].Shape)
	assert.Equal(t, 4, g.Board().Filled())
}

func TestStep_GameRunning(t *testing.T) {
	g := started(t, core.ShapeO)
	out := g.Step(core.InputStartGame)
	assert.Equal(t, []core.OutputKind{core.OutputGameRunning}, testutil.Kinds(out))
	assert.Empty(t, g.History())
}

func TestStep_EndGame(t *testing.T) {
	g := started(t, core.ShapeO)

	out := g.Step(core.InputEndGame)
	assert.Equal(t, []core.OutputKind{core.OutputGameOver}, testutil.Kinds(out))
	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, ReasonQuit, g.Summary().Reason)

	assert.Nil(t, g.Step(core.InputTick))
	assert.Nil(t, g.Step(core.InputStartGame))
}

func TestStart_BlockOut(t *testing.T) {
	b := board.New()
	b.LoadLayout(testutil.NewLayoutBuilder().Row("xxxxxxxxxx").Build(), core.Point{X: 0, Y: piece.SpawnRow}, true)
	g := New(bag.NewSequence(core.ShapeO), func(o *Options) { o.Board = b })

	out := g.Start()
	assert.Equal(t, []core.OutputKind{core.OutputGameStarted, core.OutputNextShape, core.OutputGameOver}, testutil.Kinds(out))
	assert.Nil(t, g.Step(core.InputTick))
	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, ReasonBlockOut, g.Summary().Reason)
}

func TestStep_PositionCarriesStepStart(t *testing.T) {
	g := started(t, core.ShapeO)

	out := g.Step(core.InputLeft)
	assert.Equal(t, []core.OutputKind{core.OutputMovedShape, core.OutputShapePosition, core.OutputBoardUpdate}, testutil.Kinds(out))

	pos := out[1]
	require.NotNil(t, pos.FromPosition)
	require.NotNil(t, pos.FromOrientation)
	assert.Equal(t, core.Point{X: 4, Y: 21}, *pos.FromPosition)
	assert.Equal(t, core.Up, *pos.FromOrientation)
	assert.Equal(t, core.Point{X: 3, Y: 21}, pos.Position)
	assert.Equal(t, core.ShapeO, pos.Shape)
}

func TestStep_BoardUpdateShowsPiece(t *testing.T) {
	g := started(t, core.ShapeO)

	out := g.Step(core.InputTick)
	last, ok := testutil.Last(out, core.OutputBoardUpdate)
	require.True(t, ok)
	require.NotNil(t, last.Board)
	assert.Equal(t, core.ShapeO, last.Board[20][4])
	assert.Equal(t, core.ShapeO, last.Board[21][5])
	assert.Equal(t, core.NoShape, last.Board[22][4])
	assert.Equal(t, 20, g.Piece().Position.Y)
}

func TestStep_TickDescendsOnce(t *testing.T) {
	g := started(t, core.ShapeO)
	g.Step(core.InputTick)
	g.Step(core.InputTick)
	assert.Equal(t, 19, g.Piece().Position.Y)
}

func TestStep_DownWithoutGravityStays(t *testing.T) {
	g := started(t, core.ShapeO)

	out := g.Step(core.InputDown)
	assert.Equal(t, 21, g.Piece().Position.Y)
	assert.Empty(t, testutil.Filter(out, core.OutputMovedShape))
	assert.Len(t, testutil.Filter(out, core.OutputShapePosition), 2)
}

func TestStep_DownConsumesPendingGravity(t *testing.T) {
	g := started(t, core.ShapeO, core.ShapeT)
	g.LoadLayout(testutil.NewLayoutBuilder().Row("x").Build(), core.Point{X: 5, Y: 5}, true)
	g.SetPiece(piece.Piece{Kind: core.ShapeO, Position: core.Point{X: 5, Y: 6}})

	g.Step(core.InputTick)
	require.Equal(t, core.Point{X: 5, Y: 6}, g.Piece().Position)

	g.Step(core.InputLeft)
	g.Step(core.InputLeft)
	require.Equal(t, core.Point{X: 3, Y: 5}, g.Piece().Position)

	out := g.Step(core.InputDown)
	assert.Equal(t, 5, g.Piece().Position.Y, "gravity was consumed by the previous descent")
	assert.Empty(t, testutil.Filter(out, core.OutputMovedShape))
}

func TestStep_SoftDropDescendsTwice(t *testing.T) {
	g := New(bag.NewSequence(core.ShapeO), func(o *Options) { o.SoftDrop = true })
	g.Start()

	out := g.Step(core.InputDown)
	assert.Equal(t, 19, g.Piece().Position.Y)
	assert.Len(t, testutil.Filter(out, core.OutputMovedShape), 2)
	assert.Len(t, testutil.Filter(out, core.OutputShapePosition), 2)
}

func TestStep_PendingGravityOutlivesRest(t *testing.T) {
	g := started(t, core.ShapeO, core.ShapeT)
	g.LoadLayout(testutil.NewLayoutBuilder().Row("x").Build(), core.Point{X: 5, Y: 5}, true)
	g.SetPiece(piece.Piece{Kind: core.ShapeO, Position: core.Point{X: 5, Y: 6}})

	out := g.Step(core.InputTick)
	assert.False(t, testutil.Contains(out, core.OutputShapeLocked))
	assert.Equal(t, core.Point{X: 5, Y: 6}, g.Piece().Position)

	out = g.Step(core.InputLeft)
	assert.Equal(t, core.Point{X: 4, Y: 6}, g.Piece().Position, "still on the ledge")
	assert.Len(t, testutil.Filter(out, core.OutputMovedShape), 1)

	out = g.Step(core.InputLeft)
	assert.Equal(t, core.Point{X: 3, Y: 5}, g.Piece().Position, "falls once off the ledge")
	assert.Len(t, testutil.Filter(out, core.OutputMovedShape), 2)

	g.Step(core.InputLeft)
	assert.Equal(t, core.Point{X: 2, Y: 5}, g.Piece().Position)
}

func TestQuit_ReturnsGameOver(t *testing.T) {
	g := started(t, core.ShapeO)
	assert.Equal(t, []core.OutputKind{core.OutputGameOver}, testutil.Kinds(g.Quit()))
	assert.Empty(t, g.Quit())
	assert.Empty(t, g.Start())
	assert.Equal(t, StateOver, g.State())
}

func TestStep_DropLocks(t *testing.T) {
	g := started(t, core.ShapeO, core.ShapeT, core.ShapeL)

	out := g.Step(core.InputDrop)
	assert.Equal(t, []core.OutputKind{
		core.OutputMovedShape,
		core.OutputShapePosition,
		core.OutputShapeLocked,
		core.OutputNextShape,
		core.OutputBoardUpdate,
	}, testutil.Kinds(out))

	locked, _ := testutil.Last(out, core.OutputShapeLocked)
	assert.Equal(t, core.ShapeO, locked.Shape)
	assert.Equal(t, core.ShapeO, locked.Board[0][4])

	next, _ := testutil.Last(out, core.OutputNextShape)
	assert.Equal(t, core.ShapeL, next.Shape)

	assert.Equal(t, core.ShapeT, g.Piece().Kind)
	assert.Equal(t, core.Point{X: 4, Y: 21}, g.Piece().Position)
	assert.False(t, testutil.Contains(out, core.OutputLineCompleted))
	assert.False(t, testutil.Contains(out, core.OutputScoreUpdate))
	assert.Equal(t, 1, g.Summary().Locked)
}

func TestStep_LockGracePeriod(t *testing.T) {
	g := started(t, core.ShapeO, core.ShapeT)
	g.SetPiece(piece.Piece{Kind: core.ShapeO, Position: core.Point{X: 4, Y: 0}})

	out := g.Step(core.InputLeft)
	assert.False(t, testutil.Contains(out, core.OutputShapeLocked))

	out = g.Step(core.InputTick)
	assert.False(t, testutil.Contains(out, core.OutputShapeLocked), "first tick at rest is the grace period")
	assert.Equal(t, core.Point{X: 3, Y: 0}, g.Piece().Position)

	out = g.Step(core.InputRight)
	assert.False(t, testutil.Contains(out, core.OutputShapeLocked))
	assert.Equal(t, core.Point{X: 4, Y: 0}, g.Piece().Position)

	out = g.Step(core.InputTick)
	assert.False(t, testutil.Contains(out, core.OutputShapeLocked), "grace restarts after a non-tick input")

	out = g.Step(core.InputTick)
	assert.True(t, testutil.Contains(out, core.OutputShapeLocked))
	assert.Equal(t, core.ShapeO, g.Board().Cell(4, 0))
	assert.Equal(t, core.ShapeT, g.Piece().Kind)
}

func TestStep_ClearsFourLines(t *testing.T) {
	g := started(t, core.ShapeI, core.ShapeO)
	rows := testutil.NewLayoutBuilder().Row(testutil.FullRow(1)).Repeat(3).Build()
	g.LoadLayout(rows, core.Point{}, true)

	g.Step(core.InputLeft)
	g.Step(core.InputLeft)
	require.Equal(t, 1, g.Piece().Position.X)

	out := g.Step(core.InputDrop)

	lines, ok := testutil.Last(out, core.OutputLineCompleted)
	require.True(t, ok)
	assert.Equal(t, 4, lines.Lines)
	assert.Equal(t, core.Grid{}, *lines.Board)

	score, ok := testutil.Last(out, core.OutputScoreUpdate)
	require.True(t, ok)
	assert.Equal(t, 4, score.Score)
	assert.Equal(t, 4, g.Score())
	assert.Equal(t, 4, g.Summary().Lines)

	assert.Equal(t, 4, g.Board().Filled(), "only the freshly spawned piece remains")
}

func TestStep_Hold(t *testing.T) {
	g := started(t, core.ShapeT, core.ShapeL, core.ShapeS, core.ShapeZ)

	out := g.Step(core.InputHold)
	assert.Equal(t, []core.OutputKind{
		core.OutputNextShape,
		core.OutputHeldShape,
		core.OutputShapePosition,
		core.OutputBoardUpdate,
	}, testutil.Kinds(out))
	assert.Equal(t, core.ShapeS, out[0].Shape)
	assert.Equal(t, core.ShapeT, out[1].Shape)
	assert.Nil(t, out[2].FromPosition, "fresh piece has no origin")

	held, ok := g.Held()
	assert.True(t, ok)
	assert.Equal(t, core.ShapeT, held)
	assert.Equal(t, core.ShapeL, g.Piece().Kind)

	out = g.Step(core.InputHold)
	assert.False(t, testutil.Contains(out, core.OutputHeldShape))
	assert.Equal(t, core.ShapeL, g.Piece().Kind)
}

func TestStep_HoldSwapsAfterLock(t *testing.T) {
	g := started(t, core.ShapeT, core.ShapeL, core.ShapeS, core.ShapeZ)
	g.Step(core.InputHold)
	g.Step(core.InputDrop)
	require.Equal(t, core.ShapeS, g.Piece().Kind)

	out := g.Step(core.InputHold)
	assert.Equal(t, core.OutputHeldShape, out[0].Kind)
	assert.Equal(t, core.ShapeS, out[0].Shape)
	assert.Equal(t, core.ShapeT, g.Piece().Kind)
	assert.Equal(t, piece.Spawn(core.ShapeT), g.Piece())
	assert.Equal(t, core.ShapeZ, g.Next())
}

func TestStep_RestoreHold(t *testing.T) {
	g := started(t, core.ShapeT, core.ShapeL, core.ShapeS, core.ShapeZ)

	out := g.Step(core.InputRestoreHold)
	assert.False(t, testutil.Contains(out, core.OutputRestoredShape), "nothing held")

	g.Step(core.InputHold)
	g.Step(core.InputDrop)
	require.Equal(t, core.ShapeS, g.Piece().Kind)
	require.Equal(t, core.ShapeZ, g.Next())

	out = g.Step(core.InputRestoreHold)
	assert.Equal(t, []core.OutputKind{
		core.OutputRestoredShape,
		core.OutputNextShape,
		core.OutputShapePosition,
		core.OutputBoardUpdate,
	}, testutil.Kinds(out))
	assert.Equal(t, core.ShapeT, out[0].Shape)
	assert.Equal(t, core.ShapeS, out[1].Shape)

	assert.Equal(t, core.ShapeT, g.Piece().Kind)
	assert.Equal(t, core.ShapeS, g.Next())
	_, ok := g.Held()
	assert.False(t, ok)

	out = g.Step(core.InputDrop)
	next, _ := testutil.Last(out, core.OutputNextShape)
	assert.Equal(t, core.ShapeZ, next.Shape, "displaced queue entry comes back")
	assert.Equal(t, core.ShapeS, g.Piece().Kind)
}

func TestStep_Rotate(t *testing.T) {
	g := started(t, core.ShapeT)

	out := g.Step(core.InputCw)
	require.Equal(t, core.OutputRotatedShape, out[0].Kind)
	assert.Equal(t, core.Right, out[0].Orientation)
	assert.Equal(t, core.Right, g.Piece().Orientation)

	g.Step(core.InputCcw)
	assert.Equal(t, core.Up, g.Piece().Orientation)
}

func TestStep_LockOut(t *testing.T) {
	g := New(bag.NewSequence(core.ShapeO), func(o *Options) { o.LockOutRow = 1 })
	require.NotEmpty(t, g.Start())

	out := g.Step(core.InputDrop)
	require.Equal(t, StatePlaying, g.State())
	assert.False(t, testutil.Contains(out, core.OutputGameOver))

	out = g.Step(core.InputDrop)
	kinds := testutil.Kinds(out)
	require.GreaterOrEqual(t, len(kinds), 2)
	assert.Equal(t, core.OutputBoardUpdate, kinds[len(kinds)-2])
	assert.Equal(t, core.OutputGameOver, kinds[len(kinds)-1])
	assert.Equal(t, ReasonLockOut, g.Summary().Reason)
}

func TestStep_TicksOnlyEndsGame(t *testing.T) {
	g := New(bag.NewGenerator(1))
	g.Start()

	var last []core.Output
	for i := 0; i < 5000 && g.State() == StatePlaying; i++ {
		last = g.Step(core.InputTick)
	}

	require.Equal(t, StateOver, g.State())
	kinds := testutil.Kinds(last)
	assert.Equal(t, core.OutputGameOver, kinds[len(kinds)-1])
	assert.Contains(t, []string{ReasonLockOut, ReasonBlockOut}, g.Summary().Reason)
	assert.Zero(t, g.Score())
}

func TestHistory_KeepsThreeNewestFirst(t *testing.T) {
	g := started(t, core.ShapeO)
	g.Step(core.InputLeft)
	g.Step(core.InputRight)
	g.Step(core.InputTick)
	g.Step(core.InputCw)

	assert.Equal(t, []core.Input{core.InputCw, core.InputTick, core.InputRight}, g.History())
}

func TestSetPiece(t *testing.T) {
	g := started(t, core.ShapeO)
	g.SetPiece(piece.Piece{Kind: core.ShapeI, Position: core.Point{X: 0, Y: 0}})

	assert.Equal(t, core.ShapeI, g.Board().Cell(0, 3))
	assert.Equal(t, core.NoShape, g.Board().Cell(4, 21), "previous piece erased")
	assert.Equal(t, 4, g.Board().Filled())

	assert.Panics(t, func() {
		g.SetPiece(piece.Piece{Kind: core.ShapeO, Position: core.Point{X: 9, Y: 0}})
	})
	assert.Equal(t, 4, g.Board().Filled())
}

func TestSummary(t *testing.T) {
	g := started(t, core.ShapeO, core.ShapeT)
	g.Step(core.InputDrop)
	g.Step(core.InputTick)

	s := g.Summary()
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 2, s.Steps)
	assert.Equal(t, 1, s.Locked)
	assert.Equal(t, map[core.ShapeKind]int{core.ShapeO: 1, core.ShapeT: 1}, s.Spawned)
	assert.Equal(t, "Playing", s.State.String())
}

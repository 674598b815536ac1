package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OutputKind discriminates the events a session emits.
type OutputKind uint8

const (
	// OutputGameOver is emitted once when the game reaches its terminal state.
	OutputGameOver OutputKind = iota + 1
	// OutputGameStarted is emitted when a new game enters play.
	OutputGameStarted
	// OutputGameRunning acknowledges a start request for a game already in play.
	OutputGameRunning
	// OutputBoardUpdate carries a full board snapshot after every step.
	OutputBoardUpdate
	// OutputHeldShape reports the kind now held.
	OutputHeldShape
	// OutputRestoredShape reports the held kind brought back into play.
	OutputRestoredShape
	// OutputNextShape reports the queued upcoming kind.
	OutputNextShape
	// OutputRotatedShape reports the new orientation after a rotation.
	OutputRotatedShape
	// OutputMovedShape reports that the falling piece changed position.
	OutputMovedShape
	// OutputShapePosition is a position snapshot of the falling piece.
	OutputShapePosition
	// OutputShapeLocked reports a piece committed to the board.
	OutputShapeLocked
	// OutputLineCompleted reports cleared rows.
	OutputLineCompleted
	// OutputScoreUpdate reports the new score.
	OutputScoreUpdate
)

var outputNames = [...]string{
	OutputGameOver:      "GameOver",
	OutputGameStarted:   "GameStarted",
	OutputGameRunning:   "GameRunning",
	OutputBoardUpdate:   "BoardUpdate",
	OutputHeldShape:     "HeldShape",
	OutputRestoredShape: "RestoredShape",
	OutputNextShape:     "NextShape",
	OutputRotatedShape:  "RotatedShape",
	OutputMovedShape:    "MovedShape",
	OutputShapePosition: "ShapePosition",
	OutputShapeLocked:   "ShapeLocked",
	OutputLineCompleted: "LineCompleted",
	OutputScoreUpdate:   "ScoreUpdate",
}

func (k OutputKind) String() string {
	if int(k) < len(outputNames) && outputNames[k] != "" {
		return outputNames[k]
	}
	return fmt.Sprintf("OutputKind(%d)", uint8(k))
}

// Output is the unit of communication from a session to its consumer. After
// emission it should be treated as immutable. Only the fields relevant to
// Kind are populated:
//
//   - Shape: HeldShape, RestoredShape, NextShape, ShapePosition, ShapeLocked
//   - Orientation: RotatedShape, ShapePosition (the "to" orientation)
//   - Position: ShapePosition (the "to" position)
//   - FromOrientation / FromPosition: ShapePosition, nil for a fresh piece
//   - Lines: LineCompleted
//   - Score: ScoreUpdate
//   - Board: BoardUpdate, ShapeLocked, LineCompleted
type Output struct {
	ID              string       `json:"id"`
	SessionID       string       `json:"session_id,omitempty"`
	Kind            OutputKind   `json:"kind"`
	Timestamp       time.Time    `json:"timestamp"`
	Shape           ShapeKind    `json:"shape,omitempty"`
	Orientation     Orientation  `json:"orientation,omitempty"`
	FromOrientation *Orientation `json:"from_orientation,omitempty"`
	Position        Point        `json:"position"`
	FromPosition    *Point       `json:"from_position,omitempty"`
	Lines           int          `json:"lines,omitempty"`
	Score           int          `json:"score,omitempty"`
	Board           *Grid        `json:"board,omitempty"`
}

// NewOutput creates a bare output of the given kind. Prefer the helper
// constructors below for kinds that carry a payload.
func NewOutput(kind OutputKind) Output {
	return Output{
		ID:        NewID(),
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// NewShapeOutput creates a HeldShape, RestoredShape or NextShape output.
func NewShapeOutput(kind OutputKind, shape ShapeKind) Output {
	out := NewOutput(kind)
	out.Shape = shape
	return out
}

// NewRotatedOutput reports the orientation reached by a rotation.
func NewRotatedOutput(o Orientation) Output {
	out := NewOutput(OutputRotatedShape)
	out.Orientation = o
	return out
}

// NewPositionOutput snapshots a falling piece. from and fromPos may be nil.
func NewPositionOutput(shape ShapeKind, from *Orientation, to Orientation, fromPos *Point, toPos Point) Output {
	out := NewOutput(OutputShapePosition)
	out.Shape = shape
	out.FromOrientation = from
	out.Orientation = to
	out.FromPosition = fromPos
	out.Position = toPos
	return out
}

// NewBoardOutput creates a BoardUpdate carrying a copy of grid.
func NewBoardOutput(grid Grid) Output {
	out := NewOutput(OutputBoardUpdate)
	out.Board = &grid
	return out
}

// NewLockedOutput reports a locked piece together with the resulting board.
func NewLockedOutput(shape ShapeKind, grid Grid) Output {
	out := NewOutput(OutputShapeLocked)
	out.Shape = shape
	out.Board = &grid
	return out
}

// NewLinesOutput reports count cleared rows and the compacted board.
func NewLinesOutput(count int, grid Grid) Output {
	out := NewOutput(OutputLineCompleted)
	out.Lines = count
	out.Board = &grid
	return out
}

// NewScoreOutput reports the current score.
func NewScoreOutput(score int) Output {
	out := NewOutput(OutputScoreUpdate)
	out.Score = score
	return out
}

// NewID generates a new unique identifier for outputs and sessions.
func NewID() string { return uuid.NewString() }

// Package board implements the fixed-size occupancy grid of locked cells.
//
// The falling piece is not a separate overlay: the orchestrator paints it into
// the grid after each step and erases it again before the next one. Board
// offers the primitives for that (Paint, Erase), bulk scenario setup
// (LoadLayout, ScatterDebris), the line clear / gravity compaction pass and a
// diagnostic text dump.
//
// Out-of-range coordinates are programmer errors and panic.
package board

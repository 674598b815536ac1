// Package piece models the falling piece: its kind, orientation and anchor
// position, plus the movement and rotation operations that consult a board
// for collisions.
//
// Rotation resolves overlaps with a deterministic wall-kick search: try the
// rotated position, then one column to the left (up to three for the
// straight piece), then rise one row and repeat. Unlike an unbounded search
// the rise is capped at the board height; a rotation that finds no room is
// undone and reported as ErrRotationBlocked.
package piece

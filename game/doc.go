// Package game implements the orchestration state machine that turns
// discrete inputs into board mutations and output events.
//
// A Game moves New -> Playing -> Over. While playing, every Step erases the
// falling piece from the board, applies the input, runs the lock check
// (once, or twice after a soft drop request), repaints the piece and reports
// the board. A piece that comes to rest gets a one-tick grace period before
// gravity locks it; a hard drop locks immediately.
//
// A Game is not safe for concurrent use. It is meant to be owned by exactly
// one goroutine (see package session) and driven purely through Step.
package game

// Package core provides the foundational domain types and interfaces used by
// tetrix. It defines the shared vocabulary of the engine:
//
//   - Shapes (the seven piece kinds) and their orientations
//   - Footprints (the fixed 4x4 occupancy table per kind and orientation)
//   - Board dimensions and the Grid snapshot value
//   - Inputs (messages consumed by a session) and Outputs (events it emits)
//   - ShapeProvider, the pluggable source of upcoming piece kinds
//
// The package intentionally keeps behaviour (collision, line clearing, the
// game state machine, concurrency) out of scope so that every other package
// can depend on it without cycles.
package core

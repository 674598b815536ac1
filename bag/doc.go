// Package bag houses concrete implementations of core.ShapeProvider:
//
//   - Generator: the seven-bag randomizer (every kind once per shuffled bag)
//   - Uniform: independent uniform draws
//   - Sequence: a fixed repeating list, handy for tests and scenarios
//
// Seeded providers are deterministic: equal seeds yield equal sequences.
package bag

// Package session runs games as isolated, message-driven workers.
//
// A Session is the single owner of one game.Game. Producers hand it inputs
// through Send; a dedicated goroutine blocks on the mailbox, drains every
// input that is pending at wake-up and applies them in FIFO order, emitting
// the resulting outputs on a channel. The game value is never shared.
//
// Supporting pieces:
//
//   - Buffer pumps a session's output channel into a deque that consumers
//     drain at their own pace.
//   - Clock produces gravity ticks at a level dependent interval.
//   - InMemoryStore keeps summaries of finished sessions.
package session

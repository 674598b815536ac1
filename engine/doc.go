// Package engine manages many concurrent game sessions.
//
// The Engine is a registry of sessions keyed by generated ids. Each session
// gets its own worker goroutine (see package session), an output buffer and,
// unless disabled, a gravity clock. Sessions are deregistered explicitly
// with Remove or all at once with Shutdown.
//
// # Lifecycle
//
//	e := engine.New()
//	id, err := e.Create(ctx)
//	if err != nil {
//	    return err
//	}
//	_ = e.Send(id, core.InputLeft)
//	outputs, _ := e.Drain(id)
//	_ = e.Remove(id)
//
// Create queues a start command by default, so a fresh session is already
// playing. Once a game ends its worker stops, Send reports
// session.ErrSessionClosed and the final summary is kept in the engine's
// store, where Summary keeps finding it after Remove.
//
// # Callbacks
//
// Callbacks hook into session creation, game over and removal:
//
//	cb := engine.NewFunctionCallback(engine.CallbackGameOver,
//	    func(ctx context.Context, c *engine.CallbackContext) error {
//	        fmt.Println(c.SessionID, c.Summary.Score)
//	        return nil
//	    })
//	e := engine.New(func(o *engine.Options) { o.Callbacks = append(o.Callbacks, cb) })
//
// # Concurrency
//
// All Engine methods are safe for concurrent use. The registry is guarded by
// a RWMutex; game state is only touched by the owning session worker.
package engine

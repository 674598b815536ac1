// Package tetrix is the entry point for running falling-block puzzle games.
//
// It wraps an engine.Engine with a small API for creating sessions, feeding
// them inputs and collecting their outputs:
//
//	t := tetrix.New()
//	id, err := t.NewSession(ctx)
//	if err != nil {
//	    return err
//	}
//	_ = t.Send(id, core.InputLeft)
//	outputs, _ := t.Drain(id)
//
// For scripted, non-interactive play PlaySync runs one game to completion.
package tetrix

import (
	"context"
	"errors"

	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/engine"
	"github.com/hupe1980/tetrix/game"
	"github.com/hupe1980/tetrix/logging"
	"github.com/hupe1980/tetrix/session"
)

// Options configures a Tetrix instance.
type Options struct {
	// EngineConfig tunes session buffers, gravity and lock-out.
	EngineConfig engine.Config

	// Providers creates the shape provider of each session. Defaults to a
	// randomly seeded seven-bag generator.
	Providers engine.ProviderFactory

	// Callbacks are run at session lifecycle points.
	Callbacks []engine.Callback

	// Logger receives lifecycle logs. Defaults to a no-op logger.
	Logger logging.Logger
}

// Tetrix manages concurrent game sessions.
type Tetrix struct {
	opts   Options
	engine *engine.Engine
}

// New creates a Tetrix instance.
func New(optFns ...func(o *Options)) *Tetrix {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Providers:    engine.SevenBag,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Config = opts.EngineConfig
		o.Providers = opts.Providers
		o.Callbacks = opts.Callbacks
		o.Logger = opts.Logger
	})

	return &Tetrix{opts: opts, engine: e}
}

// NewSession starts a game session and returns its id.
func (t *Tetrix) NewSession(ctx context.Context) (string, error) { return t.engine.Create(ctx) }

// Send forwards an input to a session.
func (t *Tetrix) Send(id string, in core.Input) error { return t.engine.Send(id, in) }

// Drain returns the outputs produced by a session since the last call.
func (t *Tetrix) Drain(id string) ([]core.Output, error) { return t.engine.Drain(id) }

// SetLevel changes a session's gravity speed.
func (t *Tetrix) SetLevel(id string, level int) error { return t.engine.SetLevel(id, level) }

// Summary returns the statistics of a running or finished session.
func (t *Tetrix) Summary(id string) (game.Summary, error) { return t.engine.Summary(id) }

// CloseSession stops and deregisters a session.
func (t *Tetrix) CloseSession(id string) error { return t.engine.Remove(id) }

// Sessions returns the ids of all registered sessions.
func (t *Tetrix) Sessions() []string { return t.engine.IDs() }

// Shutdown closes every session.
func (t *Tetrix) Shutdown(ctx context.Context) error { return t.engine.Shutdown(ctx) }

// PlaySync runs a fresh session fed with inputs, waits for its game to end
// and returns every output it produced. Inputs the game no longer accepts
// are dropped. If ctx ends first the outputs collected so far are returned
// together with ctx's error. The session is removed before returning.
func (t *Tetrix) PlaySync(ctx context.Context, inputs ...core.Input) ([]core.Output, game.Summary, error) {
	id, err := t.engine.Create(ctx)
	if err != nil {
		return nil, game.Summary{}, err
	}
	defer t.engine.Remove(id) //nolint:errcheck

	go func() {
		for _, in := range inputs {
			if err := t.engine.Send(id, in); err != nil {
				if !errors.Is(err, session.ErrSessionClosed) {
					t.opts.Logger.Warn("dropping input", "session_id", id, "input", in.String(), "error", err)
				}
				return
			}
		}
	}()

	sum, err := t.engine.Wait(ctx, id)
	outputs, _ := t.engine.Drain(id)

	return outputs, sum, err
}

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/game"
	"github.com/hupe1980/tetrix/logging"
)

// ErrSessionClosed is returned by Send once the session worker has stopped.
var ErrSessionClosed = errors.New("session: closed")

// Options configures a Session.
type Options struct {
	// InputBufferSize is the mailbox capacity. Send blocks while it is full.
	InputBufferSize int

	// OutputBufferSize is the capacity of the output channel.
	OutputBufferSize int

	// Logger receives lifecycle messages. Defaults to a no-op logger.
	Logger logging.Logger
}

// Session owns one game and processes its inputs on a dedicated goroutine.
type Session struct {
	id     string
	game   *game.Game
	logger logging.Logger

	inputs  chan core.Input
	outputs chan core.Output
	closing chan struct{}
	done    chan struct{}

	startOnce sync.Once
	closeOnce sync.Once

	mu      sync.RWMutex
	summary game.Summary
}

// New wraps g in a session. The session takes ownership of g; callers must
// not touch it afterwards.
func New(id string, g *game.Game, optFns ...func(o *Options)) *Session {
	opts := Options{
		InputBufferSize:  64,
		OutputBufferSize: 256,
		Logger:           logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Session{
		id:      id,
		game:    g,
		logger:  opts.Logger,
		inputs:  make(chan core.Input, opts.InputBufferSize),
		outputs: make(chan core.Output, opts.OutputBufferSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		summary: g.Summary(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start launches the worker. Subsequent calls are no-ops. The worker stops
// when the game ends, Close is called or ctx is cancelled.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.logger.Debug("session started", "session_id", s.id)
		go s.run(ctx)
	})
}

// Send enqueues an input. It returns ErrSessionClosed once the session has
// been closed or its worker has stopped; producers should stop sending then.
func (s *Session) Send(in core.Input) error {
	select {
	case <-s.closing:
		return ErrSessionClosed
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.inputs <- in:
		return nil
	case <-s.closing:
		return ErrSessionClosed
	case <-s.done:
		return ErrSessionClosed
	}
}

// Outputs returns the output stream. It is closed when the worker stops.
func (s *Session) Outputs() <-chan core.Output { return s.outputs }

// Close asks the worker to stop. Inputs still queued are discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// Done is closed after the worker has stopped and the output stream has
// been closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Wait blocks until the worker stops or ctx ends, and returns the final
// summary.
func (s *Session) Wait(ctx context.Context) (game.Summary, error) {
	select {
	case <-s.done:
		return s.Summary(), nil
	case <-ctx.Done():
		return game.Summary{}, ctx.Err()
	}
}

// Summary returns the game statistics as of the last processed batch.
func (s *Session) Summary() game.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Session) run(ctx context.Context) {
	defer func() {
		s.record()
		close(s.outputs)
		close(s.done)
		s.logger.Debug("session stopped", "session_id", s.id)
	}()

	for {
		var in core.Input
		select {
		case <-ctx.Done():
			return
		case <-s.closing:
			return
		case in = <-s.inputs:
		}

		batch := []core.Input{in}
		for n := len(s.inputs); n > 0; n-- {
			batch = append(batch, <-s.inputs)
		}

		for _, in := range batch {
			for _, out := range s.game.Step(in) {
				out.SessionID = s.id
				if !s.emit(ctx, out) {
					return
				}
			}
			if s.game.State() == game.StateOver {
				return
			}
		}
		s.record()
	}
}

// emit reports false when the consumer side is gone.
func (s *Session) emit(ctx context.Context, out core.Output) bool {
	select {
	case s.outputs <- out:
		return true
	case <-ctx.Done():
		return false
	case <-s.closing:
		return false
	}
}

func (s *Session) record() {
	sum := s.game.Summary()
	s.mu.Lock()
	s.summary = sum
	s.mu.Unlock()
}

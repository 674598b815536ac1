package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/tetrix/bag"
	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/game"
	"github.com/hupe1980/tetrix/logging"
	"github.com/hupe1980/tetrix/session"
)

var (
	// ErrSessionNotFound is returned for ids the engine does not know.
	ErrSessionNotFound = errors.New("engine: session not found")

	// ErrTooManySessions is returned by Create when MaxSessions is reached.
	ErrTooManySessions = errors.New("engine: too many sessions")
)

// Config defines tuning parameters for the engine.
//
// Example:
//
//	cfg := DefaultConfig
//	cfg.StartLevel = 5
//	e := New(func(o *Options) { o.Config = cfg })
type Config struct {
	// MaxSessions limits the number of registered sessions. Zero means
	// unlimited.
	MaxSessions int

	// InputBufferSize is the mailbox capacity of each session.
	InputBufferSize int

	// OutputBufferSize is the output channel capacity of each session.
	OutputBufferSize int

	// AutoStart queues StartGame as the first input of every new session.
	AutoStart bool

	// AutoTick attaches a gravity clock to every new session.
	AutoTick bool

	// StartLevel is the initial clock level, clamped to 1..10.
	StartLevel int

	// TickBaseInterval is the clock interval before level scaling.
	TickBaseInterval time.Duration

	// LockOutRow is passed to every game, see game.Options.
	LockOutRow int
}

// DefaultConfig provides the default configuration values.
var DefaultConfig = Config{
	InputBufferSize:  64,
	OutputBufferSize: 256,
	AutoStart:        true,
	AutoTick:         true,
	StartLevel:       session.MinLevel,
	TickBaseInterval: session.DefaultBaseInterval,
	LockOutRow:       game.DefaultLockOutRow,
}

// ProviderFactory creates the shape provider for a new session.
type ProviderFactory func() (core.ShapeProvider, error)

// Options configures an Engine instance.
type Options struct {
	// Config contains operational parameters. Defaults to DefaultConfig.
	Config Config

	// Providers creates one shape provider per session. Defaults to a
	// randomly seeded seven-bag generator.
	Providers ProviderFactory

	// Store receives the summary of every finished session. Defaults to an
	// in-memory store.
	Store *session.InMemoryStore

	// Callbacks are run at session lifecycle points.
	Callbacks []Callback

	// Logger provides structured logging. Defaults to a no-op logger.
	Logger logging.Logger
}

type handle struct {
	session *session.Session
	buffer  *session.Buffer
	clock   *session.Clock
	cancel  context.CancelFunc
	started time.Time
}

// Engine is a registry of running game sessions. It is safe for concurrent
// use.
type Engine struct {
	config    Config
	providers ProviderFactory
	store     *session.InMemoryStore
	callbacks *CallbackManager
	logger    logging.Logger

	mu       sync.RWMutex
	sessions map[string]*handle
	reserved int
	wg       sync.WaitGroup
}

// New creates an engine.
//
//	e := New(func(o *Options) {
//	    o.Config.AutoTick = false
//	    o.Logger = logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	})
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config:    DefaultConfig,
		Providers: SevenBag,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = session.NewInMemoryStore()
	}

	callbacks := NewCallbackManager()
	for _, cb := range opts.Callbacks {
		callbacks.RegisterCallback(cb)
	}

	return &Engine{
		config:    opts.Config,
		providers: opts.Providers,
		store:     opts.Store,
		callbacks: callbacks,
		logger:    opts.Logger,
		sessions:  make(map[string]*handle),
	}
}

// SevenBag is the default ProviderFactory.
func SevenBag() (core.ShapeProvider, error) {
	seed, err := bag.NewSeed()
	if err != nil {
		return nil, err
	}
	return bag.NewGenerator(seed), nil
}

// Create starts a new session and returns its id. The session lives until
// its game ends, it is removed, or ctx is cancelled.
func (e *Engine) Create(ctx context.Context) (string, error) {
	provider, err := e.providers()
	if err != nil {
		return "", fmt.Errorf("failed to create shape provider: %w", err)
	}

	id := uuid.NewString()

	if err := e.reserve(); err != nil {
		return "", err
	}

	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackSessionCreated, &CallbackContext{SessionID: id}); err != nil {
		e.release()
		return "", fmt.Errorf("session create callback failed: %w", err)
	}

	g := game.New(provider, func(o *game.Options) {
		o.LockOutRow = e.config.LockOutRow
	})

	s := session.New(id, g, func(o *session.Options) {
		o.InputBufferSize = e.config.InputBufferSize
		o.OutputBufferSize = e.config.OutputBufferSize
		o.Logger = e.logger
	})

	var clock *session.Clock
	if e.config.AutoTick {
		clock = session.NewClock(s, func(o *session.ClockOptions) {
			o.BaseInterval = e.config.TickBaseInterval
			o.Level = e.config.StartLevel
		})
	}

	e.mu.Lock()
	e.reserved--
	sessCtx, cancel := context.WithCancel(ctx)
	h := &handle{
		session: s,
		buffer:  session.NewBuffer(s.Outputs()),
		clock:   clock,
		cancel:  cancel,
		started: time.Now(),
	}
	e.sessions[id] = h
	e.mu.Unlock()

	s.Start(sessCtx)

	if e.config.AutoStart {
		if err := s.Send(core.InputStartGame); err != nil {
			_ = e.Remove(id)
			return "", fmt.Errorf("failed to start game: %w", err)
		}
	}

	if h.clock != nil {
		go h.clock.Run(sessCtx)
	}

	e.wg.Add(1)
	go e.watch(sessCtx, id, h)

	e.logger.Info("session created", "session_id", id)

	return id, nil
}

// reserve claims a registry slot ahead of registration so the session limit
// holds while creation callbacks run.
func (e *Engine) reserve() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config.MaxSessions > 0 && len(e.sessions)+e.reserved >= e.config.MaxSessions {
		return fmt.Errorf("%w: limit %d", ErrTooManySessions, e.config.MaxSessions)
	}
	e.reserved++
	return nil
}

func (e *Engine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reserved--
}

// watch records the final summary once the session worker stops.
func (e *Engine) watch(ctx context.Context, id string, h *handle) {
	defer e.wg.Done()

	<-h.session.Done()
	<-h.buffer.Done()

	sum := h.session.Summary()
	e.store.Save(id, sum)

	if tl, ok := e.logger.(*logging.TetrixLogger); ok {
		tl.WithSession(id).LogGameSummary(sum.Score, sum.Lines, sum.Locked, time.Since(h.started), sum.Reason)
	} else {
		e.logger.Info("session finished", "session_id", id, "score", sum.Score, "reason", sum.Reason)
	}

	if sum.State == game.StateOver {
		cbCtx := &CallbackContext{SessionID: id, Summary: &sum}
		if err := e.callbacks.ExecuteCallbacks(context.WithoutCancel(ctx), CallbackGameOver, cbCtx); err != nil {
			e.logger.Warn("game over callback failed", "session_id", id, "error", err)
		}
	}
}

func (e *Engine) get(id string) (*handle, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, ok := e.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return h, nil
}

// Get returns the session registered under id.
func (e *Engine) Get(id string) (*session.Session, error) {
	h, err := e.get(id)
	if err != nil {
		return nil, err
	}
	return h.session, nil
}

// Send forwards an input to the session. It returns session.ErrSessionClosed
// once the game is over.
func (e *Engine) Send(id string, in core.Input) error {
	h, err := e.get(id)
	if err != nil {
		return err
	}
	return h.session.Send(in)
}

// Drain returns and clears the outputs buffered for the session.
func (e *Engine) Drain(id string) ([]core.Output, error) {
	h, err := e.get(id)
	if err != nil {
		return nil, err
	}
	return h.buffer.Drain(), nil
}

// SetLevel changes the gravity speed of the session. It is a no-op for
// sessions without a clock.
func (e *Engine) SetLevel(id string, level int) error {
	h, err := e.get(id)
	if err != nil {
		return err
	}
	if h.clock != nil {
		h.clock.SetLevel(level)
	}
	return nil
}

// Summary returns the live statistics of a registered session, or the final
// statistics of a finished one.
func (e *Engine) Summary(id string) (game.Summary, error) {
	h, err := e.get(id)
	if err == nil {
		return h.session.Summary(), nil
	}
	if sum, ok := e.store.Get(id); ok {
		return sum, nil
	}
	return game.Summary{}, err
}

// Wait blocks until the session's worker has stopped and every output has
// reached the buffer, or ctx ends. It returns the final summary.
func (e *Engine) Wait(ctx context.Context, id string) (game.Summary, error) {
	h, err := e.get(id)
	if err != nil {
		return game.Summary{}, err
	}

	select {
	case <-h.buffer.Done():
	case <-ctx.Done():
		return game.Summary{}, ctx.Err()
	}

	return h.session.Wait(ctx)
}

// Remove stops the session and deregisters it.
func (e *Engine) Remove(id string) error {
	e.mu.Lock()
	h, ok := e.sessions[id]
	if ok {
		delete(e.sessions, id)
	}
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	h.session.Close()
	h.cancel()

	if err := e.callbacks.ExecuteCallbacks(context.Background(), CallbackSessionRemoved, &CallbackContext{SessionID: id}); err != nil {
		e.logger.Warn("session remove callback failed", "session_id", id, "error", err)
	}

	e.logger.Debug("session removed", "session_id", id)

	return nil
}

// IDs returns the ids of all registered sessions in sorted order.
func (e *Engine) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.sessions))
	for id := range e.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered sessions.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// Shutdown removes every session and waits for their workers to finish or
// ctx to end.
func (e *Engine) Shutdown(ctx context.Context) error {
	for _, id := range e.IDs() {
		_ = e.Remove(id)
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

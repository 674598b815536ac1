package session

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/tetrix/core"
)

const (
	// MinLevel and MaxLevel bound the speed levels accepted by a Clock.
	MinLevel = 1
	MaxLevel = 10

	// DefaultBaseInterval is the tick interval at level zero.
	DefaultBaseInterval = time.Second

	minIntervalDiv = 20
)

// TickSink receives the ticks produced by a Clock. *Session implements it.
type TickSink interface {
	Send(in core.Input) error
}

// ClockOptions configures a Clock.
type ClockOptions struct {
	BaseInterval time.Duration
	Level        int
}

// Clock emits InputTick to a sink at a level dependent interval.
type Clock struct {
	sink TickSink
	base time.Duration

	mu    sync.RWMutex
	level int
}

// NewClock creates a clock feeding sink. Run starts it.
func NewClock(sink TickSink, optFns ...func(o *ClockOptions)) *Clock {
	opts := ClockOptions{
		BaseInterval: DefaultBaseInterval,
		Level:        MinLevel,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Clock{
		sink:  sink,
		base:  opts.BaseInterval,
		level: clampLevel(opts.Level),
	}
}

// Run ticks until ctx ends or the sink refuses a tick.
func (c *Clock) Run(ctx context.Context) {
	timer := time.NewTimer(c.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := c.sink.Send(core.InputTick); err != nil {
			return
		}
		timer.Reset(c.Interval())
	}
}

// SetLevel changes the speed level, clamped to [MinLevel, MaxLevel]. The
// new interval applies from the next tick on.
func (c *Clock) SetLevel(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = clampLevel(level)
}

// Level returns the current speed level.
func (c *Clock) Level() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

// Interval returns the delay between ticks at the current level:
// base - level*base/10, never below base/20.
func (c *Clock) Interval() time.Duration {
	return TickInterval(c.base, c.Level())
}

// TickInterval computes the tick delay for base and level as
// base - level*base/10. The top level would yield zero, which makes the
// timer fire back to back, so the result is floored at base/minIntervalDiv
// (50ms for the default one second base).
func TickInterval(base time.Duration, level int) time.Duration {
	d := base - time.Duration(clampLevel(level))*base/10
	if floor := base / minIntervalDiv; d < floor {
		return floor
	}
	return d
}

func clampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

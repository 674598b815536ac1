package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/tetrix/bag"
	"github.com/hupe1980/tetrix/core"
	"github.com/hupe1980/tetrix/game"
	"github.com/hupe1980/tetrix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ TickSink = (*Session)(nil)

func newSession(kinds ...core.ShapeKind) *Session {
	return New("s-1", game.New(bag.NewSequence(kinds...)))
}

func collect(t *testing.T, s *Session) []core.Output {
	t.Helper()
	var res []core.Output
	timeout := time.After(5 * time.Second)
	for {
		select {
		case out, ok := <-s.Outputs():
			if !ok {
				return res
			}
			res = append(res, out)
		case <-timeout:
			t.Fatal("output stream not closed")
		}
	}
}

func TestSession_TicksOnlyReachGameOver(t *testing.T) {
	s := New("s-1", game.New(bag.NewGenerator(3)))
	s.Start(context.Background())
	require.NoError(t, s.Send(core.InputStartGame))

	go func() {
		for s.Send(core.InputTick) == nil {
		}
	}()

	outputs := collect(t, s)
	require.NotEmpty(t, outputs)
	assert.Equal(t, core.OutputGameStarted, outputs[0].Kind)
	assert.Equal(t, core.OutputGameOver, outputs[len(outputs)-1].Kind)

	sum, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.StateOver, sum.State)
	assert.Positive(t, sum.Locked)

	assert.ErrorIs(t, s.Send(core.InputTick), ErrSessionClosed)
}

func TestSession_AppliesPendingInputsInOrder(t *testing.T) {
	s := newSession(core.ShapeO)
	require.NoError(t, s.Send(core.InputStartGame))
	require.NoError(t, s.Send(core.InputLeft))
	require.NoError(t, s.Send(core.InputLeft))
	require.NoError(t, s.Send(core.InputEndGame))
	s.Start(context.Background())

	outputs := collect(t, s)
	positions := testutil.Filter(outputs, core.OutputShapePosition)
	require.Len(t, positions, 2)
	assert.Equal(t, 3, positions[0].Position.X)
	assert.Equal(t, 2, positions[1].Position.X)
	assert.Equal(t, core.OutputGameOver, outputs[len(outputs)-1].Kind)

	for _, out := range outputs {
		assert.Equal(t, "s-1", out.SessionID)
	}
	assert.Equal(t, game.ReasonQuit, s.Summary().Reason)
}

func TestSession_Close(t *testing.T) {
	s := newSession(core.ShapeO)
	s.Start(context.Background())
	require.NoError(t, s.Send(core.InputStartGame))

	s.Close()
	s.Close()

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.ErrorIs(t, s.Send(core.InputTick), ErrSessionClosed)
}

func TestSession_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSession(core.ShapeO)
	s.Start(ctx)
	cancel()

	collect(t, s)
	<-s.Done()
	assert.True(t, errors.Is(s.Send(core.InputTick), ErrSessionClosed))
}

func TestSession_WaitHonoursContext(t *testing.T) {
	s := newSession(core.ShapeO)
	s.Start(context.Background())
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuffer_DrainFIFO(t *testing.T) {
	src := make(chan core.Output, 3)
	src <- core.NewScoreOutput(1)
	src <- core.NewScoreOutput(2)
	src <- core.NewScoreOutput(3)
	close(src)

	b := NewBuffer(src)
	<-b.Done()
	require.Equal(t, 3, b.Len())

	drained := b.Drain()
	require.Len(t, drained, 3)
	for i, out := range drained {
		assert.Equal(t, i+1, out.Score)
	}
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Drain())
}

type recordingSink struct {
	limit int
	ticks int
}

func (r *recordingSink) Send(in core.Input) error {
	if in != core.InputTick {
		return errors.New("unexpected input")
	}
	r.ticks++
	if r.ticks >= r.limit {
		return ErrSessionClosed
	}
	return nil
}

func TestClock_StopsWhenSinkCloses(t *testing.T) {
	sink := &recordingSink{limit: 3}
	c := NewClock(sink, func(o *ClockOptions) {
		o.BaseInterval = 20 * time.Millisecond
		o.Level = MaxLevel
	})

	c.Run(context.Background())
	assert.Equal(t, 3, sink.ticks)
}

func TestClock_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{limit: 100}
	NewClock(sink).Run(ctx)
	assert.Zero(t, sink.ticks)
}

func TestClock_Levels(t *testing.T) {
	c := NewClock(&recordingSink{})
	assert.Equal(t, MinLevel, c.Level())
	assert.Equal(t, 900*time.Millisecond, c.Interval())

	c.SetLevel(5)
	assert.Equal(t, 500*time.Millisecond, c.Interval())

	c.SetLevel(42)
	assert.Equal(t, MaxLevel, c.Level())
	assert.Equal(t, 50*time.Millisecond, c.Interval())

	c.SetLevel(-3)
	assert.Equal(t, MinLevel, c.Level())
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, 900 * time.Millisecond},
		{1, 900 * time.Millisecond},
		{3, 700 * time.Millisecond},
		{9, 100 * time.Millisecond},
		{10, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TickInterval(time.Second, tt.level), "level %d", tt.level)
	}
	assert.Equal(t, 10*time.Millisecond, TickInterval(200*time.Millisecond, MaxLevel))
	assert.Positive(t, TickInterval(time.Millisecond, MaxLevel))
}

func TestInMemoryStore(t *testing.T) {
	s := NewInMemoryStore()
	sum := game.Summary{Score: 3, Spawned: map[core.ShapeKind]int{core.ShapeO: 2}}
	s.Save("b", sum)
	s.Save("a", game.Summary{})

	sum.Spawned[core.ShapeO] = 99
	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, got.Spawned[core.ShapeO])

	got.Spawned[core.ShapeO] = 7
	again, _ := s.Get("b")
	assert.Equal(t, 2, again.Spawned[core.ShapeO])

	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Delete("b")
	_, ok = s.Get("b")
	assert.False(t, ok)
}

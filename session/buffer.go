package session

import (
	"sync"

	"github.com/gammazero/deque"
	"github.com/hupe1980/tetrix/core"
)

// Buffer collects outputs from a channel so consumers can poll them.
type Buffer struct {
	mu   sync.Mutex
	q    deque.Deque[core.Output]
	done chan struct{}
}

// NewBuffer starts pumping src into a new buffer until src is closed.
func NewBuffer(src <-chan core.Output) *Buffer {
	b := &Buffer{done: make(chan struct{})}
	go b.pump(src)
	return b
}

func (b *Buffer) pump(src <-chan core.Output) {
	defer close(b.done)
	for out := range src {
		b.mu.Lock()
		b.q.PushBack(out)
		b.mu.Unlock()
	}
}

// Drain removes and returns every buffered output in arrival order.
func (b *Buffer) Drain() []core.Output {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := make([]core.Output, 0, b.q.Len())
	for b.q.Len() > 0 {
		res = append(res, b.q.PopFront())
	}
	return res
}

// Len returns the number of buffered outputs.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.q.Len()
}

// Done is closed once the source channel has been closed and fully pumped.
func (b *Buffer) Done() <-chan struct{} { return b.done }

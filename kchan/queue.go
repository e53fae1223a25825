package kchan

import (
	"context"
	"fmt"
	"sync"
)

// queue is the buffer of a single consumer. push is only called by the
// producer goroutine, pop only by the consumer goroutine.
type queue[T any] interface {
	push(ctx context.Context, v T) error
	pop(ctx context.Context) (T, error)
	close()
	detach()
	len() int
	cap() int
}

func newQueue[T any](capacity int) queue[T] {
	switch {
	case capacity == Unbounded:
		return &unboundedQueue[T]{ready: make(chan struct{}, 1)}
	case capacity >= 0:
		return &boundedQueue[T]{
			ch:       make(chan T, capacity),
			detached: make(chan struct{}),
		}
	default:
		panic(fmt.Sprintf("kchan: invalid capacity %d", capacity))
	}
}

// boundedQueue is a plain Go channel. Closing it gives the drain-then-closed
// semantics for free.
type boundedQueue[T any] struct {
	ch         chan T
	detached   chan struct{}
	closeOnce  sync.Once
	detachOnce sync.Once
}

func (q *boundedQueue[T]) push(ctx context.Context, v T) error {
	select {
	case <-q.detached:
		return nil
	default:
	}
	select {
	case q.ch <- v:
		// A push racing with detach may land after the drain.
		select {
		case <-q.detached:
			q.drain()
		default:
		}
		return nil
	case <-q.detached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *boundedQueue[T]) pop(ctx context.Context) (T, error) {
	select {
	case v, ok := <-q.ch:
		if !ok {
			var zero T
			return zero, ErrClosed
		}
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (q *boundedQueue[T]) close() {
	q.closeOnce.Do(func() { close(q.ch) })
}

func (q *boundedQueue[T]) detach() {
	q.detachOnce.Do(func() { close(q.detached) })
	q.drain()
}

// drain discards buffered values without blocking.
func (q *boundedQueue[T]) drain() {
	for {
		select {
		case _, ok := <-q.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (q *boundedQueue[T]) len() int { return len(q.ch) }
func (q *boundedQueue[T]) cap() int { return cap(q.ch) }

// compactThreshold is the number of consumed slots after which the backing
// array of an unbounded queue is compacted.
const compactThreshold = 1024

// unboundedQueue never blocks push. ready carries at most one pending
// wake-up for the single consumer.
type unboundedQueue[T any] struct {
	mu       sync.Mutex
	items    []T
	head     int
	closed   bool
	detached bool
	ready    chan struct{}
}

func (q *unboundedQueue[T]) push(_ context.Context, v T) error {
	q.mu.Lock()
	if q.detached {
		q.mu.Unlock()
		return nil
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.signal()
	return nil
}

func (q *unboundedQueue[T]) pop(ctx context.Context) (T, error) {
	var zero T
	for {
		q.mu.Lock()
		if q.head < len(q.items) {
			v := q.items[q.head]
			q.items[q.head] = zero
			q.head++
			q.compact()
			q.mu.Unlock()
			return v, nil
		}
		if q.closed {
			q.mu.Unlock()
			return zero, ErrClosed
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// compact must be called with mu held.
func (q *unboundedQueue[T]) compact() {
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}

func (q *unboundedQueue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *unboundedQueue[T]) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *unboundedQueue[T]) detach() {
	q.mu.Lock()
	q.detached = true
	q.items = nil
	q.head = 0
	q.mu.Unlock()
}

func (q *unboundedQueue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *unboundedQueue[T]) cap() int { return Unbounded }

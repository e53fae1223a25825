// Package kchan provides the typed endpoints that connect kflow nodes.
//
// A Sender is owned by exactly one producing node. At construction time it
// can be paired with any number of Receivers (fan-out); every Receiver has
// its own queue, so backpressure is applied per consumer and one slow
// consumer never starves its siblings of values, only delays the producer.
//
// Values are moved, not shared: once a value is sent, the producer must not
// touch it again. For pointers and slices this is a convention the node
// author has to honor, the channel does not copy deep structures.
package kchan

import (
	"context"
	"errors"
	"fmt"
)

// Unbounded is the capacity of a consumer queue that never blocks its producer.
const Unbounded = -1

// ErrClosed is returned by Recv once the producer closed and the queue is
// drained, and by Send after Close.
var ErrClosed = errors.New("kchan: channel closed")

// Closer is implemented by every Sender. The runtime uses it to close all
// outputs of a node without knowing their element types.
type Closer interface {
	Close()
}

// Detacher is implemented by every Receiver. The runtime uses it to release
// the inputs of a node that stopped reading.
type Detacher interface {
	Detach()
}

// Sender is the producing side of a channel.
//
// A Sender is not safe for concurrent use: it belongs to the goroutine of the
// node that writes to it.
type Sender[T any] struct {
	queues []queue[T]
	sent   bool
	closed bool
}

// Receiver is one consuming side of a channel. It is read by exactly one node.
type Receiver[T any] struct {
	q queue[T]
}

// New creates a Sender paired with a single Receiver whose queue holds up to
// capacity values. Capacity 0 is a rendezvous: a send completes only once
// the consumer took the value. Use Unbounded for an unbounded queue.
func New[T any](capacity int) (*Sender[T], *Receiver[T]) {
	s := &Sender[T]{}
	return s, s.Subscribe(capacity)
}

// NewSender creates a Sender without consumers. Receivers are added with
// Subscribe before the first Send.
func NewSender[T any]() *Sender[T] {
	return &Sender[T]{}
}

// Subscribe pairs an additional, independent consumer with s. Every
// subscriber observes the identical value sequence.
//
// Pairing is part of graph construction: Subscribe panics once s has sent a
// value or was closed.
func (s *Sender[T]) Subscribe(capacity int) *Receiver[T] {
	if s.sent || s.closed {
		panic("kchan: Subscribe after the sender started sending")
	}
	q := newQueue[T](capacity)
	s.queues = append(s.queues, q)
	return &Receiver[T]{q: q}
}

// Send hands v to every consumer, in subscribe order. It blocks while any
// consumer's bounded queue is full. A consumer that detached is skipped.
//
// Send returns ctx.Err() if ctx ends while blocked, in which case v may have
// reached only a prefix of the consumers.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	if s.closed {
		return ErrClosed
	}
	s.sent = true
	for i, q := range s.queues {
		if err := q.push(ctx, v); err != nil {
			return fmt.Errorf("consumer %d: %w", i, err)
		}
	}
	return nil
}

// Close closes the channel for every consumer. Buffered values stay readable.
// Calling Close more than once is a no-op.
func (s *Sender[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, q := range s.queues {
		q.close()
	}
}

// Consumers returns the number of paired receivers.
func (s *Sender[T]) Consumers() int {
	return len(s.queues)
}

// Recv returns the next value. After the producer closed, buffered values
// are drained first and ErrClosed is returned from then on.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	return r.q.pop(ctx)
}

// Detach tells the producer that nobody reads from r anymore. Values sent
// afterwards are discarded and a Send blocked on r returns. Buffered values
// are dropped.
func (r *Receiver[T]) Detach() {
	r.q.detach()
}

// Len returns the number of buffered values.
func (r *Receiver[T]) Len() int {
	return r.q.len()
}

// Cap returns the queue capacity, Unbounded for unbounded queues.
func (r *Receiver[T]) Cap() int {
	return r.q.cap()
}

var (
	_ Closer   = (*Sender[any])(nil)
	_ Detacher = (*Receiver[any])(nil)
)

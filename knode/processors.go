package knode

import (
	"context"
	"sync"
)

// FromSlice creates a source that emits items in order and then ends the
// stream.
//
// Example:
//
//	knode.MustRegister0x1(b, "numbers", knode.FromSlice([]int{1, 2, 3}))
func FromSlice[T any](items []T) Step0x1[T] {
	next := 0
	return func(context.Context) (T, error) {
		if next >= len(items) {
			var zero T
			return zero, ErrEndOfStream
		}
		v := items[next]
		next++
		return v, nil
	}
}

// Generate creates a source that emits fn(0), fn(1), ... fn(count-1) and then
// ends the stream. A negative count never ends.
//
// Example:
//
//	knode.MustRegister0x1(b, "ramp", knode.Generate(100, func(i int) float64 {
//	    return float64(i) / 100
//	}))
func Generate[T any](count int, fn func(i int) T) Step0x1[T] {
	i := 0
	return func(context.Context) (T, error) {
		if count >= 0 && i >= count {
			var zero T
			return zero, ErrEndOfStream
		}
		v := fn(i)
		i++
		return v, nil
	}
}

// Map creates a node that transforms every value with fn.
//
// Example:
//
//	knode.MustRegister1x1(b, "double", knode.Map(func(v int) int {
//	    return v * 2
//	}))
func Map[I, O any](fn func(I) O) Step1x1[I, O] {
	return func(_ context.Context, v I) (O, error) {
		return fn(v), nil
	}
}

// Filter creates a node that only forwards values matching the predicate.
//
// Example:
//
//	knode.MustRegister1x1(b, "loud", knode.Filter(func(s float64) bool {
//	    return math.Abs(s) > 0.5
//	}))
func Filter[T any](predicate func(T) bool) Step1x1[T, T] {
	return func(_ context.Context, v T) (T, error) {
		if !predicate(v) {
			var zero T
			return zero, ErrNoOutput
		}
		return v, nil
	}
}

// ForEach creates a sink that calls fn for every value.
func ForEach[T any](fn func(T)) Step1x0[T] {
	return func(_ context.Context, v T) error {
		fn(v)
		return nil
	}
}

// Aggregate creates a node that collects size values and forwards them as one
// batch. Values of an incomplete batch are dropped when the input closes.
//
// Example:
//
//	knode.MustRegister1x1(b, "frames", knode.Aggregate[float64](1024))
func Aggregate[T any](size int) Step1x1[T, []T] {
	if size < 1 {
		size = 1
	}
	batch := make([]T, 0, size)
	return func(_ context.Context, v T) ([]T, error) {
		batch = append(batch, v)
		if len(batch) < size {
			return nil, ErrNoOutput
		}
		out := batch
		batch = make([]T, 0, size)
		return out, nil
	}
}

// Collector stores the values received by a Collect sink. It is safe to read
// while the graph runs.
type Collector[T any] struct {
	mu    sync.Mutex
	items []T
}

// Items returns a copy of the values collected so far.
func (c *Collector[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of values collected so far.
func (c *Collector[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Collect creates a sink that appends every value to into.
//
// Example:
//
//	var out knode.Collector[int]
//	knode.MustRegister1x0(b, "collect", knode.Collect(&out))
func Collect[T any](into *Collector[T]) Step1x0[T] {
	return func(_ context.Context, v T) error {
		into.mu.Lock()
		into.items = append(into.items, v)
		into.mu.Unlock()
		return nil
	}
}

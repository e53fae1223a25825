package kflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/birdayz/kflow/internal/execution"
	"github.com/birdayz/kflow/kgraph"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAlreadyStarted is returned by Start when the App runs already.
	ErrAlreadyStarted = errors.New("kflow: app already started")
	// ErrNotStarted is returned by Join when Start was never called.
	ErrNotStarted = errors.New("kflow: app not started")
)

// App runs an instantiated Topology: one goroutine per node, connected by the
// channels of its edges.
type App struct {
	t *kgraph.Topology

	log        logr.Logger
	registerer prometheus.Registerer
	onFailure  FailureHandler

	workers []*execution.Worker
	byName  map[string]*execution.Worker

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	eg      errgroup.Group
}

// New instantiates t. Every channel is created and every node bound before
// New returns; if anything fails, no node runs and the error is returned.
// A Topology can be instantiated only once.
func New(t *kgraph.Topology, opts ...Option) (*App, error) {
	a := &App{
		t:   t,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	metrics, err := execution.NewMetrics(a.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	bindings, err := execution.Wire(t)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate topology: %w", err)
	}

	a.byName = make(map[string]*execution.Worker, len(bindings))
	for _, b := range bindings {
		name := string(b.Node.ID)
		w, err := execution.NewWorker(a.log.WithName("node").WithValues("node", name), b, metrics, a.onFailure)
		if err != nil {
			return nil, fmt.Errorf("failed to instantiate topology: %w", err)
		}
		a.workers = append(a.workers, w)
		a.byName[name] = w
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(t *kgraph.Topology, opts ...Option) *App {
	app, err := New(t, opts...)
	if err != nil {
		panic(err)
	}
	return app
}

// Start spawns the node goroutines and returns immediately.
//
// Cancelling ctx drops all nodes that are still running. A node that is
// dropped terminates without a failure.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true

	ctx, a.cancel = context.WithCancel(ctx)
	a.log.Info("Starting", "nodes", len(a.workers), "edges", len(a.t.Edges()))
	for _, w := range a.workers {
		a.eg.Go(func() error {
			return w.Run(ctx)
		})
	}
	return nil
}

// Join blocks until every node terminated. It returns the processing
// failures of all failed nodes combined, or nil if every node ended by end of
// stream, closed input, or being dropped.
func (a *App) Join() error {
	a.mu.Lock()
	started := a.started
	a.mu.Unlock()
	if !started {
		return ErrNotStarted
	}

	// The group's first error is also in the loop below.
	_ = a.eg.Wait()
	a.cancel()

	var errs error
	for _, w := range a.workers {
		if f := w.Failure(); f != nil {
			errs = multierr.Append(errs, f)
		}
	}
	if errs == nil {
		a.log.Info("All nodes terminated")
	} else {
		a.log.Info("All nodes terminated", "failures", len(multierr.Errors(errs)))
	}
	return errs
}

// Run is Start followed by Join.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	return a.Join()
}

// Close drops every node that is still running and waits for all of them.
// Close on an App that was never started returns nil.
func (a *App) Close() error {
	a.mu.Lock()
	started, cancel := a.started, a.cancel
	a.mu.Unlock()
	if !started {
		return nil
	}
	cancel()
	return a.Join()
}

// Handle returns the handle of the named node.
func (a *App) Handle(name string) (*Handle, bool) {
	w, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return &Handle{w: w}, true
}

// Handles returns the handles of all nodes in registration order.
func (a *App) Handles() []*Handle {
	handles := make([]*Handle, len(a.workers))
	for i, w := range a.workers {
		handles[i] = &Handle{w: w}
	}
	return handles
}

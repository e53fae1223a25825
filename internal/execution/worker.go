package execution

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"runtime/pprof"
	"sync"

	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/knode"
	"github.com/go-logr/logr"
)

type RoutineState string

const (
	StateCreated    RoutineState = "CREATED"
	StateRunning    RoutineState = "RUNNING"
	StateTerminated RoutineState = "TERMINATED"
)

// ExitReason tells why a node terminated.
type ExitReason string

const (
	ExitNone        ExitReason = ""
	ExitEndOfStream ExitReason = "END_OF_STREAM"
	ExitInputClosed ExitReason = "INPUT_CLOSED"
	ExitFailed      ExitReason = "FAILED"
	ExitDropped     ExitReason = "DROPPED"
)

// FailureHandler is called once for every node that fails, on the failing
// node's goroutine.
type FailureHandler func(*knode.Failure)

// Worker drives one bound node on its own goroutine. When the node's loop
// returns, for whatever reason, every output is closed and every input
// detached, so termination propagates downstream and the node's producers
// are never blocked by it again.
type Worker struct {
	name      string
	binding   *Binding
	closers   []kchan.Closer
	detachers []kchan.Detacher

	log       logr.Logger
	metrics   Metrics
	onFailure FailureHandler

	mu      sync.Mutex
	state   RoutineState
	exit    ExitReason
	failure *knode.Failure

	done chan struct{}
}

// NewWorker creates the worker of a binding returned by Wire.
func NewWorker(log logr.Logger, b *Binding, metrics Metrics, onFailure FailureHandler) (*Worker, error) {
	w := &Worker{
		name:      string(b.Node.ID),
		binding:   b,
		log:       log,
		metrics:   metrics,
		onFailure: onFailure,
		state:     StateCreated,
		done:      make(chan struct{}),
	}
	if w.metrics == nil {
		w.metrics = nopMetrics{}
	}

	for i, out := range b.Outputs {
		c, ok := out.(kchan.Closer)
		if !ok {
			return nil, fmt.Errorf("node %s: output %d (%T) cannot be closed", w.name, i, out)
		}
		w.closers = append(w.closers, c)
	}
	for i, in := range b.Inputs {
		d, ok := in.(kchan.Detacher)
		if !ok {
			return nil, fmt.Errorf("node %s: input %d (%T) cannot be detached", w.name, i, in)
		}
		w.detachers = append(w.detachers, d)
	}
	return w, nil
}

// Name returns the node ID.
func (r *Worker) Name() string {
	return r.name
}

func (r *Worker) changeState(newState RoutineState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.V(1).Info("Change state", "from", r.state, "to", newState)
	r.state = newState
}

// Run executes the node until it terminates. It returns the node's failure,
// or nil for any orderly termination. Run must be called exactly once.
func (r *Worker) Run(ctx context.Context) error {
	var err error
	labels := pprof.Labels("kflow-node", r.name)
	pprof.Do(ctx, labels, func(ctx context.Context) {
		err = r.loop(ctx)
	})
	return err
}

func (r *Worker) loop(ctx context.Context) error {
	r.changeState(StateRunning)
	r.metrics.NodeStarted(r.name)

	runErr := r.runRecovered(ctx)

	// Consumers observe closure after draining, producers stop blocking on us.
	for _, c := range r.closers {
		c.Close()
	}
	for _, d := range r.detachers {
		d.Detach()
	}

	exit, failure := classify(ctx, r.name, runErr)
	r.finish(exit, failure, runErr)
	if failure != nil {
		return failure
	}
	return nil
}

func (r *Worker) runRecovered(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error(nil, "Node panicked", "panic", p, "stack", string(debug.Stack()))
			err = &knode.Failure{Kind: knode.KindPanic, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return r.binding.Node.Runner.Run(ctx)
}

// classify maps the error returned by a node loop to its exit reason.
func classify(ctx context.Context, node string, err error) (ExitReason, *knode.Failure) {
	var f *knode.Failure
	switch {
	case err == nil, errors.Is(err, knode.ErrEndOfStream):
		return ExitEndOfStream, nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return ExitDropped, nil
	case errors.As(err, &f):
		return ExitFailed, knode.AsFailure(node, err)
	case errors.Is(err, kchan.ErrClosed):
		return ExitInputClosed, nil
	default:
		return ExitFailed, knode.AsFailure(node, err)
	}
}

func (r *Worker) finish(exit ExitReason, failure *knode.Failure, runErr error) {
	r.mu.Lock()
	r.exit = exit
	r.failure = failure
	r.mu.Unlock()

	switch exit {
	case ExitFailed:
		r.log.Error(failure.Err, "Node failed", "kind", failure.Kind)
		r.metrics.NodeFailed(r.name, failure.Kind)
		if r.onFailure != nil {
			r.onFailure(failure)
		}
	case ExitDropped:
		r.log.Info("Node dropped", "cause", runErr)
	default:
		r.log.Info("Node finished", "reason", exit)
	}
	r.metrics.NodeExited(r.name, exit)

	r.changeState(StateTerminated)
	close(r.done)
}

// Done is closed once the node terminated and its endpoints are released.
func (r *Worker) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the node terminated and returns its failure, if any.
func (r *Worker) Wait() error {
	<-r.done
	if f := r.Failure(); f != nil {
		return f
	}
	return nil
}

// State returns the current lifecycle state.
func (r *Worker) State() RoutineState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Exit returns why the node terminated, ExitNone while it is not terminated.
func (r *Worker) Exit() ExitReason {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exit
}

// Failure returns the node's processing failure, nil unless Exit is
// ExitFailed.
func (r *Worker) Failure() *knode.Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failure
}

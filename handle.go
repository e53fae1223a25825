package kflow

import (
	"github.com/birdayz/kflow/internal/execution"
	"github.com/birdayz/kflow/knode"
)

// State is the lifecycle state of a node.
type State = execution.RoutineState

const (
	StateCreated    = execution.StateCreated
	StateRunning    = execution.StateRunning
	StateTerminated = execution.StateTerminated
)

// ExitReason tells why a node terminated.
type ExitReason = execution.ExitReason

const (
	ExitNone        = execution.ExitNone
	ExitEndOfStream = execution.ExitEndOfStream
	ExitInputClosed = execution.ExitInputClosed
	ExitFailed      = execution.ExitFailed
	ExitDropped     = execution.ExitDropped
)

// Handle observes one running node.
type Handle struct {
	w *execution.Worker
}

// Name returns the node ID.
func (h *Handle) Name() string {
	return h.w.Name()
}

// Done is closed once the node terminated and released its channels.
func (h *Handle) Done() <-chan struct{} {
	return h.w.Done()
}

// Wait blocks until the node terminated. It returns the node's
// *knode.Failure, or nil.
func (h *Handle) Wait() error {
	return h.w.Wait()
}

// State returns the node's lifecycle state.
func (h *Handle) State() State {
	return h.w.State()
}

// Exit returns why the node terminated, ExitNone while it runs.
func (h *Handle) Exit() ExitReason {
	return h.w.Exit()
}

// Failure returns the node's processing failure, nil unless Exit is
// ExitFailed.
func (h *Handle) Failure() *knode.Failure {
	return h.w.Failure()
}

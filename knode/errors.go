package knode

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned by a step to stop its node in an orderly way.
	// The node's outputs close and every consumer terminates once it drained
	// the values already sent.
	ErrEndOfStream = errors.New("end of stream")

	// ErrNoOutput is returned by a step that produced nothing this iteration,
	// for example an aggregating node that has not filled its batch yet. The
	// node keeps running and sends nothing.
	ErrNoOutput = errors.New("no output")

	// ErrBind is returned when a runner is bound to endpoints that do not
	// match its declared ports.
	ErrBind = errors.New("cannot bind endpoints")
)

// Failure kinds assigned by the runtime.
const (
	KindPanic      = "panic"
	KindProcessing = "processing"
)

// Failure is a processing failure of one node. It terminates only that node;
// its consumers observe closed inputs and its producers see a detached
// consumer.
type Failure struct {
	// Kind is chosen by the node author with Fail, or one of the Kind
	// constants.
	Kind string
	// Node is filled in by the runtime.
	Node string
	Err  error
}

func (f *Failure) Error() string {
	if f.Node == "" {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("node %s: %s: %v", f.Node, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fail returns err as a Failure of the given kind.
//
// Example:
//
//	if len(frame) < headerSize {
//	    return 0, knode.Fail("malformed-frame", fmt.Errorf("short frame: %d bytes", len(frame)))
//	}
func Fail(kind string, err error) error {
	return &Failure{Kind: kind, Err: err}
}

// AsFailure converts err into a Failure attributed to node. Errors that do not
// carry a Failure get KindProcessing.
func AsFailure(node string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		out := *f
		if out.Node == "" {
			out.Node = node
		}
		return &out
	}
	return &Failure{Kind: KindProcessing, Node: node, Err: err}
}

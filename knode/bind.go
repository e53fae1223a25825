package knode

import (
	"fmt"
	"reflect"

	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/kgraph"
)

// CheckArity verifies the number of endpoints handed to Bind. Used by
// generated code.
func CheckArity(inputs, outputs []any, numInputs, numOutputs int) error {
	if len(inputs) != numInputs || len(outputs) != numOutputs {
		return fmt.Errorf("%w: want %d inputs and %d outputs, got %d and %d",
			ErrBind, numInputs, numOutputs, len(inputs), len(outputs))
	}
	return nil
}

// BindInput returns inputs[i] as a receiver of T. Used by generated code.
func BindInput[T any](inputs []any, i int) (*kchan.Receiver[T], error) {
	r, ok := inputs[i].(*kchan.Receiver[T])
	if !ok || r == nil {
		return nil, fmt.Errorf("%w: input %d is %T, want *kchan.Receiver[%v]", ErrBind, i, inputs[i], reflect.TypeFor[T]())
	}
	return r, nil
}

// BindOutput returns outputs[i] as a sender of T. Used by generated code.
func BindOutput[T any](outputs []any, i int) (*kchan.Sender[T], error) {
	s, ok := outputs[i].(*kchan.Sender[T])
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: output %d is %T, want *kchan.Sender[%v]", ErrBind, i, outputs[i], reflect.TypeFor[T]())
	}
	return s, nil
}

func nilStep(name string) error {
	return fmt.Errorf("%w: node %q has a nil step function", kgraph.ErrInvalidTopology, name)
}

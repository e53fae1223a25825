// Package knode defines how a node computes.
//
// A node is a step function plus the loop that drives it. The loop receives
// one value from every input, in declared order, calls the step, then sends
// every result to its output, in declared order, and starts over. The loop
// ends when an input closes, when the step returns an error, or when the
// context passed to the runtime is done.
//
// Loops are generated for every combination of up to three inputs and three
// outputs (the NodeIxO types). Register a step with the matching RegisterIxO
// function:
//
//	knode.MustRegister2x1(b, "mix", func(ctx context.Context, x, y float64) (float64, error) {
//	    return x * y, nil
//	})
//
// Nodes with private state are either closures or structs whose loops are
// generated by kflowgen derive.
//
// A step returns ErrEndOfStream to finish its node, ErrNoOutput to skip
// sending for one iteration, and any other error to fail. Use Fail to give a
// failure a kind.
package knode

//go:generate go run ../cmd/kflowgen arity --max-in 3 --max-out 3 -o zz_generated_arity.go

package kgraph

import (
	"context"
)

// nopRunner implements Runner for testing graph structure only.
type nopRunner struct {
	inputs, outputs []any
}

func (r *nopRunner) Bind(inputs, outputs []any) error {
	r.inputs, r.outputs = inputs, outputs
	return nil
}

func (r *nopRunner) Run(context.Context) error {
	return nil
}

// registerTestSource registers a node with a single string output.
func registerTestSource(b *Builder, name string) error {
	return b.AddNode(name, nil, []Port{OutputPort[string]("out")}, &nopRunner{})
}

// registerTestProcessor registers a string -> string node.
func registerTestProcessor(b *Builder, name string) error {
	return b.AddNode(name,
		[]Port{InputPort[string]("in")},
		[]Port{OutputPort[string]("out")},
		&nopRunner{})
}

// registerTestSink registers a node with a single string input.
func registerTestSink(b *Builder, name string) error {
	return b.AddNode(name, []Port{InputPort[string]("in")}, nil, &nopRunner{})
}

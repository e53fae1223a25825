package kgraph

import (
	"errors"
	"fmt"
)

// CyclePolicy decides what Build does with a graph that contains a cycle.
type CyclePolicy int

const (
	// CyclesUnspecified is the zero value. Acyclic graphs build fine; a cycle
	// fails the build until the caller picks a policy explicitly.
	CyclesUnspecified CyclePolicy = iota
	// RejectCycles fails Build with ErrCycleDetected.
	RejectCycles
	// AllowCycles accepts cycles. A cycle without a path from a terminating
	// source never observes closure, and can deadlock once its bounded queues
	// fill up. A back edge stays empty until something seeds it, see
	// Topology.Unterminated.
	AllowCycles
)

func (p CyclePolicy) String() string {
	switch p {
	case CyclesUnspecified:
		return "Unspecified"
	case RejectCycles:
		return "RejectCycles"
	case AllowCycles:
		return "AllowCycles"
	default:
		return "Unknown"
	}
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCyclePolicy sets how Build treats cycles.
func WithCyclePolicy(p CyclePolicy) BuilderOption {
	return func(b *Builder) {
		b.cyclePolicy = p
	}
}

// Builder assembles a Topology.
//
// IMPORTANT: Builder is NOT safe for concurrent use. All registration
// methods must be called from a single goroutine. Once Build succeeded the
// builder is sealed and rejects further changes.
type Builder struct {
	graph       *Graph
	cyclePolicy CyclePolicy
	sealed      bool
}

// NewBuilder creates a new graph builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		graph: NewGraph(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddNode registers a node with its declared ports and its execution loop.
// Generated Register functions call it; assembling code normally does not.
func (b *Builder) AddNode(name string, inputs, outputs []Port, runner Runner) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if runner == nil {
		return fmt.Errorf("%w: node %q has no runner", ErrInvalidTopology, name)
	}
	if len(inputs) == 0 && len(outputs) == 0 {
		return fmt.Errorf("%w: node %q declares neither inputs nor outputs", ErrInvalidTopology, name)
	}
	for _, p := range inputs {
		if p.IsOutput() {
			return fmt.Errorf("%w: port %q of node %q is declared as input but built with OutputPort", ErrInvalidTopology, p.Name, name)
		}
	}
	for _, p := range outputs {
		if !p.IsOutput() {
			return fmt.Errorf("%w: port %q of node %q is declared as output but built with InputPort", ErrInvalidTopology, p.Name, name)
		}
	}
	if len(b.graph.Nodes) >= MaxNodes {
		return fmt.Errorf("%w: node count exceeds maximum %d", ErrInvalidTopology, MaxNodes)
	}

	return b.graph.addNode(&Node{
		ID:      NodeID(name),
		Inputs:  inputs,
		Outputs: outputs,
		Runner:  runner,
	})
}

// Connect wires output port from to input port to. capacity is the size of
// the consumer queue: 0 for a rendezvous, kchan.Unbounded for no limit.
//
// An output may be connected to any number of inputs; each input accepts
// exactly one producer. Element types must be identical.
func (b *Builder) Connect(from, to Endpoint, capacity int) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if _, err := b.graph.addEdge(from, to, capacity); err != nil {
		return fmt.Errorf("cannot connect %s -> %s: %w", from, to, err)
	}
	return nil
}

// MustConnect is like Connect but panics on error.
func (b *Builder) MustConnect(from, to Endpoint, capacity int) {
	must(b.Connect(from, to, capacity))
}

// Pipe connects output 0 of from to input 0 of to, the common case of a
// linear chain.
func (b *Builder) Pipe(from, to string, capacity int) error {
	return b.Connect(Out(from, 0), In(to, 0), capacity)
}

// MustPipe is like Pipe but panics on error.
func (b *Builder) MustPipe(from, to string, capacity int) {
	must(b.Pipe(from, to, capacity))
}

// Build validates the graph and returns the immutable Topology.
func (b *Builder) Build() (*Topology, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	cyclic, err := b.graph.Validate(b.cyclePolicy)
	if err != nil {
		return nil, err
	}
	b.sealed = true
	return &Topology{
		graph:  b.graph.clone(),
		cyclic: cyclic,
		policy: b.cyclePolicy,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Topology {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// GetGraph returns the graph under construction for inspection. The Topology
// returned by Build holds its own copy, so changes made here never reach it.
func (b *Builder) GetGraph() *Graph {
	return b.graph
}

// GetNode returns a node by ID if it exists.
func (b *Builder) GetNode(id NodeID) (*Node, bool) {
	node, ok := b.graph.Nodes[id]
	return node, ok
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Sentinel errors for common failure cases.
var (
	ErrNodeAlreadyExists = errors.New("node already exists")
	ErrNodeNotFound      = errors.New("node not found")
	ErrPortNotFound      = errors.New("port not found")
	ErrPortInUse         = errors.New("input port already connected")
	ErrUnconnectedInput  = errors.New("unconnected input port")
	ErrCycleDetected     = errors.New("cycle detected in graph")
	ErrInvalidNodeID     = errors.New("invalid node ID")
	ErrInvalidCapacity   = errors.New("invalid channel capacity")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrInvalidTopology   = errors.New("invalid topology")
	ErrBuilderSealed     = errors.New("builder already built")
	ErrTopologyInUse     = errors.New("topology already instantiated")
)

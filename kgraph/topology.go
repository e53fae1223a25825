package kgraph

import (
	"sync/atomic"
)

// Topology is a fully built, validated graph. It is immutable: accessors
// return copies, and the builder that produced it is sealed. The runtime
// instantiates it exactly once because runners carry private node state.
type Topology struct {
	graph   *Graph
	cyclic  bool
	policy  CyclePolicy
	claimed atomic.Bool
}

// Claim marks t as instantiated. Only the first call succeeds.
func (t *Topology) Claim() error {
	if !t.claimed.CompareAndSwap(false, true) {
		return ErrTopologyInUse
	}
	return nil
}

// Nodes returns copies of all nodes in registration order. The copies share
// their edges with each other but not with t.
func (t *Topology) Nodes() []*Node {
	g := t.graph.clone()
	nodes := make([]*Node, 0, len(g.NodeOrder))
	for _, id := range g.NodeOrder {
		nodes = append(nodes, g.Nodes[id])
	}
	return nodes
}

// Node returns a copy of a node by ID if it exists.
func (t *Topology) Node(id NodeID) (*Node, bool) {
	n, ok := t.graph.Nodes[id]
	if !ok {
		return nil, false
	}
	return n.clone(copyEdge), true
}

// Edges returns copies of all edges in connect order.
func (t *Topology) Edges() []*Edge {
	edges := make([]*Edge, len(t.graph.Edges))
	for i, e := range t.graph.Edges {
		edges[i] = copyEdge(e)
	}
	return edges
}

// Sources returns the IDs of nodes without inputs, in registration order.
func (t *Topology) Sources() []NodeID {
	return t.ofType(NodeTypeSource)
}

// Sinks returns the IDs of nodes without outputs, in registration order.
func (t *Topology) Sinks() []NodeID {
	return t.ofType(NodeTypeSink)
}

func (t *Topology) ofType(typ NodeType) []NodeID {
	var ids []NodeID
	for _, id := range t.graph.NodeOrder {
		if t.graph.Nodes[id].Type() == typ {
			ids = append(ids, id)
		}
	}
	return ids
}

// Cyclic reports whether the graph contains a cycle. Only possible with
// AllowCycles.
func (t *Topology) Cyclic() bool {
	return t.cyclic
}

// CyclePolicy returns the policy the topology was built with.
func (t *Topology) CyclePolicy() CyclePolicy {
	return t.policy
}

// TopologicalOrder returns a deterministic topological order of the nodes.
// Fails with ErrCycleDetected for cyclic topologies.
func (t *Topology) TopologicalOrder() ([]NodeID, error) {
	return t.graph.topologicalSort()
}

// Unterminated returns the nodes that have no path from any source. They
// never observe a closed input and run until the application drops them.
//
// A node not listed here can still hang inside a cycle: its loop receives
// every input in order before each step, so a back edge carries nothing until
// the node produced once. The generated loops never do that by themselves; a
// cycle needs a hand-written Runner that sends a seed value before its first
// receive on the back edge.
func (t *Topology) Unterminated() []NodeID {
	reachable := t.graph.reachableFromSources()
	var ids []NodeID
	for _, id := range t.graph.NodeOrder {
		if !reachable[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

package kgraph

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/birdayz/kflow/kchan"
	"golang.org/x/exp/slices"
)

// Runner is the execution loop of one node. Generated code implements it.
//
// Bind receives the node's endpoints in declared order: inputs[i] is a
// *kchan.Receiver[T] for input port i, outputs[i] a *kchan.Sender[T] for
// output port i. Run is called once, on the node's own goroutine, and
// returns when the loop terminates.
type Runner interface {
	Bind(inputs, outputs []any) error
	Run(ctx context.Context) error
}

// NodeID is a strongly-typed identifier for graph nodes.
// NodeIDs must be non-empty and cannot contain whitespace.
type NodeID string

// Validate checks if the NodeID is valid.
// Returns ErrInvalidNodeID if the ID is empty or contains whitespace.
func (id NodeID) Validate() error {
	if id == "" {
		return fmt.Errorf("%w: NodeID cannot be empty", ErrInvalidNodeID)
	}
	if strings.ContainsAny(string(id), " \t\n\r") {
		return fmt.Errorf("%w: NodeID %q cannot contain whitespace", ErrInvalidNodeID, id)
	}
	return nil
}

// NodeType represents the kind of node in the graph. It is derived from the
// node's arity.
type NodeType int

const (
	NodeTypeSource NodeType = iota
	NodeTypeProcessor
	NodeTypeSink
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeSource:
		return "Source"
	case NodeTypeProcessor:
		return "Processor"
	case NodeTypeSink:
		return "Sink"
	default:
		return "Unknown"
	}
}

// Port is one declared input or output of a node. Ports are created with
// InputPort and OutputPort, which capture the element type so that edges can
// be checked while the graph is assembled.
type Port struct {
	Name string
	Type reflect.Type

	output    bool
	newSender func() any
	subscribe func(sender any, capacity int) (any, error)
}

// InputPort declares an input receiving values of type T.
func InputPort[T any](name string) Port {
	return Port{Name: name, Type: reflect.TypeFor[T]()}
}

// OutputPort declares an output producing values of type T.
func OutputPort[T any](name string) Port {
	return Port{
		Name:   name,
		Type:   reflect.TypeFor[T](),
		output: true,
		newSender: func() any {
			return kchan.NewSender[T]()
		},
		subscribe: func(sender any, capacity int) (any, error) {
			s, ok := sender.(*kchan.Sender[T])
			if !ok {
				return nil, fmt.Errorf("%w: endpoint %T is not a *kchan.Sender[%v]", ErrTypeMismatch, sender, reflect.TypeFor[T]())
			}
			return s.Subscribe(capacity), nil
		},
	}
}

// IsOutput reports whether p was declared with OutputPort.
func (p Port) IsOutput() bool {
	return p.output
}

// NewSender creates the producing endpoint for an output port.
func (p Port) NewSender() (any, error) {
	if !p.output {
		return nil, fmt.Errorf("%w: port %q is an input", ErrInvalidTopology, p.Name)
	}
	return p.newSender(), nil
}

// Subscribe pairs a new consumer with a sender created by NewSender.
func (p Port) Subscribe(sender any, capacity int) (any, error) {
	if !p.output {
		return nil, fmt.Errorf("%w: port %q is an input", ErrInvalidTopology, p.Name)
	}
	return p.subscribe(sender, capacity)
}

// Endpoint addresses a port of a node, by index or, if Name is set, by name.
type Endpoint struct {
	Node  NodeID
	Index int
	Name  string
}

// Out addresses output port index of node.
func Out(node string, index int) Endpoint {
	return Endpoint{Node: NodeID(node), Index: index}
}

// In addresses input port index of node.
func In(node string, index int) Endpoint {
	return Endpoint{Node: NodeID(node), Index: index}
}

// OutNamed addresses an output port of node by its declared name.
func OutNamed(node, port string) Endpoint {
	return Endpoint{Node: NodeID(node), Name: port}
}

// InNamed addresses an input port of node by its declared name.
func InNamed(node, port string) Endpoint {
	return Endpoint{Node: NodeID(node), Name: port}
}

func (e Endpoint) String() string {
	if e.Name != "" {
		return fmt.Sprintf("%s.%s", e.Node, e.Name)
	}
	return fmt.Sprintf("%s[%d]", e.Node, e.Index)
}

// Edge is a resolved connection from an output port to an input port.
type Edge struct {
	From      NodeID
	FromPort  int
	To        NodeID
	ToPort    int
	Capacity  int
	ValueType reflect.Type
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s[%d] -> %s[%d]", e.From, e.FromPort, e.To, e.ToPort)
}

// Node is the build-time representation of a node in the graph.
type Node struct {
	ID      NodeID
	Inputs  []Port
	Outputs []Port

	// Incoming[i] is the edge feeding input i, nil while unconnected.
	Incoming []*Edge
	// Outgoing[i] lists the edges leaving output i, in connect order.
	Outgoing [][]*Edge

	Runner Runner
}

// Type returns Source for nodes without inputs, Sink for nodes without
// outputs and Processor otherwise.
func (n *Node) Type() NodeType {
	switch {
	case len(n.Inputs) == 0:
		return NodeTypeSource
	case len(n.Outputs) == 0:
		return NodeTypeSink
	default:
		return NodeTypeProcessor
	}
}

// Children returns the distinct downstream nodes in connect order.
func (n *Node) Children() []NodeID {
	var children []NodeID
	seen := make(map[NodeID]bool)
	for _, edges := range n.Outgoing {
		for _, e := range edges {
			if !seen[e.To] {
				seen[e.To] = true
				children = append(children, e.To)
			}
		}
	}
	return children
}

// clone copies n. Ports and the runner are shared, edges are mapped through
// edge.
func (n *Node) clone(edge func(*Edge) *Edge) *Node {
	c := *n
	c.Inputs = slices.Clone(n.Inputs)
	c.Outputs = slices.Clone(n.Outputs)
	c.Incoming = make([]*Edge, len(n.Incoming))
	for i, e := range n.Incoming {
		if e != nil {
			c.Incoming[i] = edge(e)
		}
	}
	c.Outgoing = make([][]*Edge, len(n.Outgoing))
	for i, edges := range n.Outgoing {
		for _, e := range edges {
			c.Outgoing[i] = append(c.Outgoing[i], edge(e))
		}
	}
	return &c
}

func copyEdge(e *Edge) *Edge {
	c := *e
	return &c
}

func (n *Node) resolve(e Endpoint, ports []Port, kind string) (int, error) {
	if e.Name != "" {
		for i, p := range ports {
			if p.Name == e.Name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: node %s has no %s named %q", ErrPortNotFound, n.ID, kind, e.Name)
	}
	if e.Index < 0 || e.Index >= len(ports) {
		return 0, fmt.Errorf("%w: node %s has %d %ss, index %d out of range", ErrPortNotFound, n.ID, len(ports), kind, e.Index)
	}
	return e.Index, nil
}

// Graph is the build-time graph representation.
// It contains only structural information - no runtime behavior.
type Graph struct {
	Nodes map[NodeID]*Node
	Edges []*Edge

	// Deterministic node ordering (insertion order)
	NodeOrder []NodeID
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:     make(map[NodeID]*Node),
		NodeOrder: make([]NodeID, 0),
	}
}

func (g *Graph) addNode(node *Node) error {
	if err := node.ID.Validate(); err != nil {
		return err
	}
	if _, exists := g.Nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrNodeAlreadyExists, node.ID)
	}
	node.Incoming = make([]*Edge, len(node.Inputs))
	node.Outgoing = make([][]*Edge, len(node.Outputs))
	g.Nodes[node.ID] = node
	g.NodeOrder = append(g.NodeOrder, node.ID)
	return nil
}

// addEdge connects an output port to an input port after checking that the
// element types are identical.
func (g *Graph) addEdge(from, to Endpoint, capacity int) (*Edge, error) {
	if capacity < kchan.Unbounded {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	parent, ok := g.Nodes[from.Node]
	if !ok {
		return nil, fmt.Errorf("%w: producer %s", ErrNodeNotFound, from.Node)
	}
	child, ok := g.Nodes[to.Node]
	if !ok {
		return nil, fmt.Errorf("%w: consumer %s", ErrNodeNotFound, to.Node)
	}

	out, err := parent.resolve(from, parent.Outputs, "output")
	if err != nil {
		return nil, err
	}
	in, err := child.resolve(to, child.Inputs, "input")
	if err != nil {
		return nil, err
	}

	if len(parent.Outgoing[out]) >= MaxFanOut {
		return nil, fmt.Errorf("%w: output %s already has %d consumers, maximum is %d",
			ErrInvalidTopology, from, len(parent.Outgoing[out]), MaxFanOut)
	}
	if existing := child.Incoming[in]; existing != nil {
		return nil, fmt.Errorf("%w: %s is already fed by %s[%d]", ErrPortInUse, to, existing.From, existing.FromPort)
	}

	outType, inType := parent.Outputs[out].Type, child.Inputs[in].Type
	if outType != inType {
		return nil, fmt.Errorf("%w: %s produces %v but %s expects %v",
			ErrTypeMismatch, from, outType, to, inType)
	}

	e := &Edge{
		From:      parent.ID,
		FromPort:  out,
		To:        child.ID,
		ToPort:    in,
		Capacity:  capacity,
		ValueType: outType,
	}
	parent.Outgoing[out] = append(parent.Outgoing[out], e)
	child.Incoming[in] = e
	g.Edges = append(g.Edges, e)
	return e, nil
}

// clone returns a deep copy of g in which nodes of the copy reference the
// copied edges.
func (g *Graph) clone() *Graph {
	c := NewGraph()
	edges := make(map[*Edge]*Edge, len(g.Edges))
	for _, e := range g.Edges {
		ce := copyEdge(e)
		edges[e] = ce
		c.Edges = append(c.Edges, ce)
	}
	for _, id := range g.NodeOrder {
		c.Nodes[id] = g.Nodes[id].clone(func(e *Edge) *Edge { return edges[e] })
		c.NodeOrder = append(c.NodeOrder, id)
	}
	return c
}

package execution

import (
	"fmt"

	"github.com/birdayz/kflow/kgraph"
)

// Binding is a node together with the endpoints it owns. Inputs[i] is a
// *kchan.Receiver for input port i, Outputs[i] the *kchan.Sender of output
// port i.
type Binding struct {
	Node    *kgraph.Node
	Inputs  []any
	Outputs []any
}

// Wire claims t, creates one sender per output port and one queue per edge,
// and binds every runner to its endpoints. Nothing runs yet; an error means
// no goroutine may be started for t.
func Wire(t *kgraph.Topology) ([]*Binding, error) {
	if err := t.Claim(); err != nil {
		return nil, err
	}

	nodes := t.Nodes()
	bindings := make([]*Binding, 0, len(nodes))
	byID := make(map[kgraph.NodeID]*Binding, len(nodes))
	for _, node := range nodes {
		b := &Binding{
			Node:    node,
			Inputs:  make([]any, len(node.Inputs)),
			Outputs: make([]any, len(node.Outputs)),
		}
		for i, port := range node.Outputs {
			sender, err := port.NewSender()
			if err != nil {
				return nil, fmt.Errorf("node %s: output %s: %w", node.ID, port.Name, err)
			}
			b.Outputs[i] = sender
		}
		bindings = append(bindings, b)
		byID[node.ID] = b
	}

	// Subscribe order is connect order, which fixes the fan-out order.
	for _, e := range t.Edges() {
		from, to := byID[e.From], byID[e.To]
		receiver, err := from.Node.Outputs[e.FromPort].Subscribe(from.Outputs[e.FromPort], e.Capacity)
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e, err)
		}
		to.Inputs[e.ToPort] = receiver
	}

	for _, b := range bindings {
		for i, in := range b.Inputs {
			if in == nil {
				return nil, fmt.Errorf("node %s: %w: %s", b.Node.ID, kgraph.ErrUnconnectedInput, b.Node.Inputs[i].Name)
			}
		}
		if err := b.Node.Runner.Bind(b.Inputs, b.Outputs); err != nil {
			return nil, fmt.Errorf("node %s: %w", b.Node.ID, err)
		}
	}
	return bindings, nil
}

package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/kgraph"
	"github.com/birdayz/kflow/knode"
)

type failingBind struct{}

func (failingBind) Bind([]any, []any) error { return errors.New("no thanks") }

func (failingBind) Run(context.Context) error { return nil }

func TestWire(t *testing.T) {
	t.Run("fan-out subscribes in connect order", func(t *testing.T) {
		b := kgraph.NewBuilder()
		knode.MustRegister0x1(b, "source", knode.FromSlice([]int{1}))
		knode.MustRegister1x0(b, "a", knode.ForEach(func(int) {}))
		knode.MustRegister1x0(b, "b", knode.ForEach(func(int) {}))
		b.MustPipe("source", "a", 0)
		b.MustPipe("source", "b", kchan.Unbounded)

		bindings, err := Wire(b.MustBuild())
		assert.NoError(t, err)
		assert.Equal(t, 3, len(bindings))

		sender, ok := bindings[0].Outputs[0].(*kchan.Sender[int])
		assert.True(t, ok)
		assert.Equal(t, 2, sender.Consumers())

		a := bindings[1].Inputs[0].(*kchan.Receiver[int])
		bb := bindings[2].Inputs[0].(*kchan.Receiver[int])
		assert.Equal(t, 0, a.Cap())
		assert.Equal(t, kchan.Unbounded, bb.Cap())
	})

	t.Run("unconnected outputs get a sender", func(t *testing.T) {
		b := kgraph.NewBuilder()
		knode.MustRegister0x2(b, "split", func(context.Context) (int, string, error) {
			return 0, "", knode.ErrEndOfStream
		})
		knode.MustRegister1x0(b, "ints", knode.ForEach(func(int) {}))
		b.MustConnect(kgraph.Out("split", 0), kgraph.In("ints", 0), 1)

		bindings, err := Wire(b.MustBuild())
		assert.NoError(t, err)
		sender, ok := bindings[0].Outputs[1].(*kchan.Sender[string])
		assert.True(t, ok)
		assert.Equal(t, 0, sender.Consumers())
	})

	t.Run("topology is claimed once", func(t *testing.T) {
		b := kgraph.NewBuilder()
		knode.MustRegister0x1(b, "source", knode.FromSlice([]int{1}))
		topo := b.MustBuild()

		_, err := Wire(topo)
		assert.NoError(t, err)
		_, err = Wire(topo)
		assert.IsError(t, err, kgraph.ErrTopologyInUse)
	})

	t.Run("changes to returned nodes and edges are not wired", func(t *testing.T) {
		b := kgraph.NewBuilder()
		knode.MustRegister0x1(b, "source", knode.FromSlice([]int{1}))
		knode.MustRegister1x0(b, "sink", knode.ForEach(func(int) {}))
		b.MustPipe("source", "sink", 2)
		topo := b.MustBuild()

		for _, n := range topo.Nodes() {
			n.Runner = nil
			n.Inputs = nil
		}
		topo.Edges()[0].Capacity = kchan.Unbounded

		bindings, err := Wire(topo)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(bindings))
		assert.NotZero(t, bindings[1].Node.Runner)
		assert.Equal(t, 2, bindings[1].Inputs[0].(*kchan.Receiver[int]).Cap())
	})

	t.Run("bind failure names the node", func(t *testing.T) {
		b := kgraph.NewBuilder()
		assert.NoError(t, b.AddNode("stubborn", nil, []kgraph.Port{kgraph.OutputPort[int]("out")}, failingBind{}))

		_, err := Wire(b.MustBuild())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "node stubborn: no thanks")
	})
}

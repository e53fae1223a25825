package kgraph

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// buildLoop registers source -> a -> b -> a, with a taking two inputs.
func buildLoop(t *testing.T, b *Builder) {
	t.Helper()
	assert.NoError(t, registerTestSource(b, "source"))
	assert.NoError(t, b.AddNode("a",
		[]Port{InputPort[string]("seed"), InputPort[string]("back")},
		[]Port{OutputPort[string]("out")},
		&nopRunner{}))
	assert.NoError(t, registerTestProcessor(b, "b"))

	b.MustConnect(Out("source", 0), InNamed("a", "seed"), 1)
	b.MustConnect(Out("a", 0), In("b", 0), 1)
	b.MustConnect(Out("b", 0), InNamed("a", "back"), 1)
}

func TestCyclePolicy(t *testing.T) {
	t.Run("unspecified policy rejects cycles with a hint", func(t *testing.T) {
		b := NewBuilder()
		buildLoop(t, b)

		_, err := b.Build()
		assert.True(t, errors.Is(err, ErrCycleDetected))
		assert.Contains(t, err.Error(), "a -> b -> a")
		assert.Contains(t, err.Error(), "WithCyclePolicy")
	})

	t.Run("reject cycles", func(t *testing.T) {
		b := NewBuilder(WithCyclePolicy(RejectCycles))
		buildLoop(t, b)

		_, err := b.Build()
		assert.IsError(t, err, ErrCycleDetected)
		assert.NotContains(t, err.Error(), "WithCyclePolicy")
	})

	t.Run("allow cycles", func(t *testing.T) {
		b := NewBuilder(WithCyclePolicy(AllowCycles))
		buildLoop(t, b)

		topo, err := b.Build()
		assert.NoError(t, err)
		assert.True(t, topo.Cyclic())
		assert.Equal(t, AllowCycles, topo.CyclePolicy())

		_, err = topo.TopologicalOrder()
		assert.IsError(t, err, ErrCycleDetected)

		// Every node has a path from the source. a still needs a seed on
		// its back input before its first step.
		assert.Equal(t, 0, len(topo.Unterminated()))
	})

	t.Run("self loop", func(t *testing.T) {
		b := NewBuilder()
		assert.NoError(t, registerTestProcessor(b, "self"))
		b.MustPipe("self", "self", 1)

		_, err := b.Build()
		assert.IsError(t, err, ErrCycleDetected)
		assert.Contains(t, err.Error(), "self -> self")
	})

	t.Run("closed loop without source is unterminated", func(t *testing.T) {
		b := NewBuilder(WithCyclePolicy(AllowCycles))
		assert.NoError(t, registerTestProcessor(b, "ping"))
		assert.NoError(t, registerTestProcessor(b, "pong"))
		assert.NoError(t, registerTestSource(b, "source"))
		assert.NoError(t, registerTestSink(b, "sink"))
		b.MustPipe("ping", "pong", 1)
		b.MustPipe("pong", "ping", 1)
		b.MustPipe("source", "sink", 1)

		topo, err := b.Build()
		assert.NoError(t, err)
		assert.Equal(t, []NodeID{"ping", "pong"}, topo.Unterminated())
	})

	t.Run("policy strings", func(t *testing.T) {
		assert.Equal(t, "Unspecified", CyclesUnspecified.String())
		assert.Equal(t, "RejectCycles", RejectCycles.String())
		assert.Equal(t, "AllowCycles", AllowCycles.String())
	})
}

func TestValidateInputs(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.AddNode("join",
		[]Port{InputPort[string]("right"), InputPort[string]("left")},
		nil, &nopRunner{}))
	assert.NoError(t, registerTestSink(b, "alone"))

	_, err := b.Build()
	assert.IsError(t, err, ErrUnconnectedInput)
	// Sorted for a deterministic message
	assert.Contains(t, err.Error(), "alone.in, join.left, join.right")
}

func TestTopologicalSortDeterministic(t *testing.T) {
	//        +-> c --+
	// a -----+       +--> e
	//        +-> b --+
	//               d (independent source)
	for range 10 {
		b := NewBuilder()
		assert.NoError(t, registerTestSource(b, "a"))
		assert.NoError(t, registerTestProcessor(b, "c"))
		assert.NoError(t, registerTestProcessor(b, "b"))
		assert.NoError(t, registerTestSource(b, "d"))
		assert.NoError(t, b.AddNode("e",
			[]Port{InputPort[string]("x"), InputPort[string]("y")},
			nil, &nopRunner{}))
		b.MustPipe("a", "c", 1)
		b.MustPipe("a", "b", 1)
		b.MustConnect(Out("c", 0), In("e", 0), 1)
		b.MustConnect(Out("b", 0), In("e", 1), 1)

		topo := b.MustBuild()
		order, err := topo.TopologicalOrder()
		assert.NoError(t, err)
		assert.Equal(t, []NodeID{"a", "b", "c", "d", "e"}, order)
		assert.Equal(t, []NodeID{"a", "d"}, topo.Sources())
		assert.Equal(t, []NodeID{"e"}, topo.Sinks())
	}
}

func TestNodeIDValidate(t *testing.T) {
	assert.NoError(t, NodeID("ok-name_1").Validate())
	assert.IsError(t, NodeID("").Validate(), ErrInvalidNodeID)
	assert.IsError(t, NodeID("new\nline").Validate(), ErrInvalidNodeID)
}

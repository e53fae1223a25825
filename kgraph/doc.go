// Package kgraph assembles dataflow graphs of typed nodes.
//
// # Overview
//
// kgraph separates graph construction from execution:
//
// 1. **Build Phase**: register nodes with typed ports, connect ports, validate
// 2. **Runtime Phase**: the kflow package instantiates the Topology, one goroutine per node
//
// # Architecture
//
//   - **Port**: a declared input or output. InputPort and OutputPort capture the
//     element type as a reflect.Type and, for outputs, typed endpoint factories
//     as closures.
//   - **Node**: ports plus a Runner, the node's execution loop.
//   - **Edge**: a resolved output-to-input connection with a queue capacity.
//   - **Topology**: the validated, immutable graph.
//
// Type information is captured in closures at registration, so the runtime
// can create typed kchan endpoints for type-erased nodes without inspecting
// any value.
//
// # Basic Usage
//
//	b := kgraph.NewBuilder()
//
//	knode.MustRegister0x1(b, "numbers", knode.FromSlice([]int{1, 2, 3}))
//	knode.MustRegister1x1(b, "double", knode.Map(func(v int) int { return v * 2 }))
//	knode.MustRegister1x0(b, "print", knode.ForEach(func(v int) { fmt.Println(v) }))
//
//	b.MustPipe("numbers", "double", 1)
//	b.MustPipe("double", "print", 1)
//
//	topology := b.MustBuild()
//
// # Type Safety
//
// Connect compares the element types of both ports and fails with
// ErrTypeMismatch before anything runs:
//
//	knode.MustRegister0x1(b, "words", knode.FromSlice([]string{"a"}))
//	err := b.Pipe("words", "double", 1) // FAILS: string output, int input
//
// # Validation
//
// Build checks:
//
//   - **Inputs**: every input port has exactly one producer (ErrUnconnectedInput, ErrPortInUse)
//   - **Cycles**: cycles fail the build unless WithCyclePolicy(AllowCycles) was given
//   - **Size Limits**: MaxNodes, MaxFanOut
//
// All validation errors use sentinel errors (ErrCycleDetected, ErrTypeMismatch, etc.)
// that can be checked with errors.Is().
//
// # Cycles
//
// A cycle is permitted only with an explicit AllowCycles policy. Termination
// in kflow travels along data-flow edges from sources, so a cycle with no
// path from a source never shuts down by itself and may deadlock once its
// bounded queues fill. Topology.Unterminated lists such nodes. A node fed by
// a back edge blocks on its first receive from that edge until a value was
// seeded into the cycle.
//
// # Thread Safety
//
// IMPORTANT: Builder is NOT safe for concurrent use. The resulting Topology
// is immutable and safe to read concurrently; it owns a copy of the graph
// and hands out copies of its nodes and edges.
package kgraph

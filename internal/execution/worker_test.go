package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/kgraph"
	"github.com/birdayz/kflow/knode"
	"github.com/go-logr/logr"
)

func newWorkers(t *testing.T, topo *kgraph.Topology, metrics Metrics, onFailure FailureHandler) map[string]*Worker {
	t.Helper()
	bindings, err := Wire(topo)
	assert.NoError(t, err)

	workers := make(map[string]*Worker, len(bindings))
	for _, b := range bindings {
		w, err := NewWorker(logr.Discard(), b, metrics, onFailure)
		assert.NoError(t, err)
		workers[w.Name()] = w
	}
	return workers
}

// runAll starts every worker and waits until all terminated.
func runAll(t *testing.T, ctx context.Context, workers map[string]*Worker) {
	t.Helper()
	for _, w := range workers {
		go func() { _ = w.Run(ctx) }()
	}
	timeout := time.After(5 * time.Second)
	for name, w := range workers {
		select {
		case <-w.Done():
		case <-timeout:
			t.Fatalf("node %s did not terminate", name)
		}
	}
}

func linearTopology(t *testing.T, step knode.Step1x1[int, int], into *knode.Collector[int]) *kgraph.Topology {
	t.Helper()
	b := kgraph.NewBuilder()
	knode.MustRegister0x1(b, "source", knode.FromSlice([]int{1, 2, 3, 4}))
	knode.MustRegister1x1(b, "map", step)
	knode.MustRegister1x0(b, "sink", knode.Collect(into))
	b.MustPipe("source", "map", 0)
	b.MustPipe("map", "sink", 0)
	return b.MustBuild()
}

func TestWorkerTermination(t *testing.T) {
	var out knode.Collector[int]
	topo := linearTopology(t, knode.Map(func(v int) int { return v * 10 }), &out)
	workers := newWorkers(t, topo, nil, nil)

	for _, w := range workers {
		assert.Equal(t, StateCreated, w.State())
		assert.Equal(t, ExitNone, w.Exit())
	}

	runAll(t, context.Background(), workers)

	assert.Equal(t, []int{10, 20, 30, 40}, out.Items())
	assert.Equal(t, ExitEndOfStream, workers["source"].Exit())
	assert.Equal(t, ExitInputClosed, workers["map"].Exit())
	assert.Equal(t, ExitInputClosed, workers["sink"].Exit())
	for _, w := range workers {
		assert.Equal(t, StateTerminated, w.State())
		assert.NoError(t, w.Wait())
		assert.Zero(t, w.Failure())
	}
}

func TestWorkerFailure(t *testing.T) {
	t.Run("panic is recovered into a failure", func(t *testing.T) {
		var out knode.Collector[int]
		topo := linearTopology(t, knode.Map(func(v int) int {
			if v == 3 {
				panic("bad sample")
			}
			return v
		}), &out)

		var mu sync.Mutex
		var reported []*knode.Failure
		workers := newWorkers(t, topo, nil, func(f *knode.Failure) {
			mu.Lock()
			defer mu.Unlock()
			reported = append(reported, f)
		})
		runAll(t, context.Background(), workers)

		assert.Equal(t, []int{1, 2}, out.Items())
		assert.Equal(t, ExitFailed, workers["map"].Exit())
		// The source keeps sending into the detached input and ends normally
		assert.Equal(t, ExitEndOfStream, workers["source"].Exit())
		assert.Equal(t, ExitInputClosed, workers["sink"].Exit())

		f := workers["map"].Failure()
		assert.Equal(t, knode.KindPanic, f.Kind)
		assert.Equal(t, "map", f.Node)
		assert.Contains(t, f.Error(), "bad sample")

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, len(reported))
		assert.Equal(t, f, reported[0])
	})

	t.Run("step error carries its kind", func(t *testing.T) {
		var out knode.Collector[int]
		cause := errors.New("out of range")
		topo := linearTopology(t, func(_ context.Context, v int) (int, error) {
			if v == 2 {
				return 0, knode.Fail("range", cause)
			}
			return v, nil
		}, &out)
		workers := newWorkers(t, topo, nil, nil)
		runAll(t, context.Background(), workers)

		err := workers["map"].Wait()
		assert.IsError(t, err, cause)
		var f *knode.Failure
		assert.True(t, errors.As(err, &f))
		assert.Equal(t, "range", f.Kind)
		assert.Equal(t, []int{1}, out.Items())
	})
}

func TestWorkerDropped(t *testing.T) {
	b := kgraph.NewBuilder()
	knode.MustRegister0x1(b, "ticks", knode.Generate(-1, func(i int) int { return i }))
	knode.MustRegister1x0(b, "sink", knode.ForEach(func(int) {}))
	b.MustPipe("ticks", "sink", 1)
	workers := newWorkers(t, b.MustBuild(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	runAll(t, ctx, workers)

	assert.Equal(t, ExitDropped, workers["ticks"].Exit())
	// The sink sees either the cancellation or its closed input first
	sinkExit := workers["sink"].Exit()
	assert.True(t, sinkExit == ExitDropped || sinkExit == ExitInputClosed, "sink exit %s", sinkExit)
	for _, w := range workers {
		assert.NoError(t, w.Wait())
	}
}

func TestClassify(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	background := context.Background()

	tests := []struct {
		name   string
		ctx    context.Context
		err    error
		exit   ExitReason
		kind   string
		failed bool
	}{
		{name: "nil", ctx: background, err: nil, exit: ExitEndOfStream},
		{name: "end of stream", ctx: background, err: fmt.Errorf("source: %w", knode.ErrEndOfStream), exit: ExitEndOfStream},
		{name: "closed input", ctx: background, err: kchan.ErrClosed, exit: ExitInputClosed},
		{name: "dropped", ctx: cancelled, err: fmt.Errorf("consumer 0: %w", context.Canceled), exit: ExitDropped},
		{name: "canceled without drop", ctx: background, err: context.Canceled, exit: ExitFailed, kind: knode.KindProcessing, failed: true},
		{name: "typed failure", ctx: background, err: knode.Fail("device", errors.New("gone")), exit: ExitFailed, kind: "device", failed: true},
		{name: "plain error", ctx: background, err: errors.New("boom"), exit: ExitFailed, kind: knode.KindProcessing, failed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit, f := classify(tt.ctx, "n", tt.err)
			assert.Equal(t, tt.exit, exit)
			if !tt.failed {
				assert.Zero(t, f)
				return
			}
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, "n", f.Node)
		})
	}
}

package kflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/kgraph"
	"github.com/birdayz/kflow/knode"
)

// BenchmarkPipeline measures values per second through source -> map -> sink.
func BenchmarkPipeline(b *testing.B) {
	for _, capacity := range []int{0, 64, kchan.Unbounded} {
		b.Run(fmt.Sprintf("capacity=%d", capacity), func(b *testing.B) {
			builder := kgraph.NewBuilder()
			knode.MustRegister0x1(builder, "source", knode.Generate(b.N, func(i int) int { return i }))
			knode.MustRegister1x1(builder, "map", knode.Map(func(v int) int { return v + 1 }))
			knode.MustRegister1x0(builder, "sink", knode.ForEach(func(int) {}))
			builder.MustPipe("source", "map", capacity)
			builder.MustPipe("map", "sink", capacity)
			app := MustNew(builder.MustBuild())

			b.ReportAllocs()
			b.ResetTimer()
			assert.NoError(b, app.Run(context.Background()))
		})
	}
}

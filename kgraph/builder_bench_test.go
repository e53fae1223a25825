package kgraph

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func buildChain(b *testing.B, processors int) {
	builder := NewBuilder()
	assert.NoError(b, registerTestSource(builder, "source"))

	parent := "source"
	for j := 0; j < processors; j++ {
		name := fmt.Sprintf("proc-%d", j)
		assert.NoError(b, registerTestProcessor(builder, name))
		assert.NoError(b, builder.Pipe(parent, name, 0))
		parent = name
	}

	assert.NoError(b, registerTestSink(builder, "sink"))
	assert.NoError(b, builder.Pipe(parent, "sink", 0))

	_, err := builder.Build()
	assert.NoError(b, err)
}

func BenchmarkBuildChain(b *testing.B) {
	for _, n := range []int{8, 98, 498} {
		b.Run(fmt.Sprintf("%d", n+2), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buildChain(b, n)
			}
		})
	}
}

// BenchmarkBuildFanOut builds one source feeding 10 branches of 10 processors.
func BenchmarkBuildFanOut(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		builder := NewBuilder()
		assert.NoError(b, registerTestSource(builder, "source"))

		for branch := 0; branch < 10; branch++ {
			parent := "source"
			for j := 0; j < 10; j++ {
				name := fmt.Sprintf("b%d-proc-%d", branch, j)
				assert.NoError(b, registerTestProcessor(builder, name))
				assert.NoError(b, builder.Pipe(parent, name, 0))
				parent = name
			}
			sink := fmt.Sprintf("b%d-sink", branch)
			assert.NoError(b, registerTestSink(builder, sink))
			assert.NoError(b, builder.Pipe(parent, sink, 0))
		}

		_, err := builder.Build()
		assert.NoError(b, err)
	}
}

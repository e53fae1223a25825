package codegen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestGenerateArity(t *testing.T) {
	t.Run("matches the committed file", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, GenerateArity(&buf, ArityConfig{MaxInputs: 3, MaxOutputs: 3}))

		committed, err := os.ReadFile(filepath.Join("..", "..", "knode", "zz_generated_arity.go"))
		assert.NoError(t, err)
		assert.Equal(t, string(committed), buf.String())
	})

	t.Run("skips the empty family", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, GenerateArity(&buf, ArityConfig{MaxInputs: 1, MaxOutputs: 1}))
		out := buf.String()

		assert.NotContains(t, out, "Node0x0")
		assert.Contains(t, out, "type Node0x1[O1 any] struct")
		assert.Contains(t, out, "type Node1x0[I1 any] struct")
		assert.Contains(t, out, "type Step1x1[I1, O1 any] func(ctx context.Context, in1 I1) (O1, error)")
		assert.Contains(t, out, "type Step1x0[I1 any] func(ctx context.Context, in1 I1) error")
		assert.NotContains(t, out, "Node2x")
	})

	t.Run("invalid config", func(t *testing.T) {
		var buf bytes.Buffer
		assert.IsError(t, GenerateArity(&buf, ArityConfig{}), ErrInvalidConfig)
		assert.IsError(t, GenerateArity(&buf, ArityConfig{MaxInputs: -1, MaxOutputs: 2}), ErrInvalidConfig)
		assert.IsError(t, GenerateArity(&buf, ArityConfig{MaxInputs: MaxPorts + 1, MaxOutputs: 1}), ErrInvalidConfig)
		assert.Equal(t, 0, buf.Len())
	})
}

func TestParsePackage(t *testing.T) {
	pkg, err := ParsePackage(filepath.Join("testdata", "signal"), []string{"Mixer", "Timer"})
	assert.NoError(t, err)
	assert.Equal(t, "signal", pkg.Name)
	assert.Equal(t, 2, len(pkg.Nodes))

	mixer := pkg.Nodes[0]
	assert.Equal(t, []NodePort{{Field: "Left", Elem: "float64"}, {Field: "Right", Elem: "float64"}}, mixer.Inputs)
	assert.Equal(t, []NodePort{{Field: "Out", Elem: "float64"}}, mixer.Outputs)
	assert.Equal(t, 0, len(mixer.State))

	timer := pkg.Nodes[1]
	assert.Equal(t, []NodePort{{Field: "Ticks", Elem: "time.Duration"}}, timer.Inputs)
	assert.Equal(t, 0, len(timer.Outputs))
	assert.Equal(t, []string{"elapsed", "count"}, timer.State)

	assert.Equal(t, filepath.Join("testdata", "signal", "nodes_kflow.go"), pkg.DefaultOutput())
}

func TestGenerateDerive(t *testing.T) {
	pkg, err := ParsePackage(filepath.Join("testdata", "signal"), []string{"Mixer", "Timer"})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, GenerateDerive(&buf, pkg))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "// Code generated by kflowgen derive --type Mixer,Timer. DO NOT EDIT.\n"))
	assert.Contains(t, out, "package signal")
	assert.Contains(t, out, "\t\"time\"\n")
	assert.Contains(t, out, "func RegisterMixer(b *kgraph.Builder, name string, n *Mixer) error {")
	assert.Contains(t, out, `[]kgraph.Port{kgraph.InputPort[float64]("Left"), kgraph.InputPort[float64]("Right")},`)
	assert.Contains(t, out, `[]kgraph.Port{kgraph.OutputPort[float64]("Out")},`)
	assert.Contains(t, out, "if n.Right, err = knode.BindInput[float64](inputs, 1); err != nil {")
	assert.Contains(t, out, "out1, err := n.Step(ctx, in1, in2)")
	assert.Contains(t, out, "if err := n.Out.Send(ctx, out1); err != nil {")

	// Sinks have no outputs, so the port list is nil
	assert.Contains(t, out, "func RegisterTimer(b *kgraph.Builder, name string, n *Timer) error {")
	assert.Contains(t, out, "[]kgraph.Port{kgraph.InputPort[time.Duration](\"Ticks\")},\n\t\tnil,\n\t\tn,\n")
	assert.Contains(t, out, "if err := n.Step(ctx, in1); err != nil && !errors.Is(err, knode.ErrNoOutput) {")
	assert.Contains(t, out, "// RegisterTimer adds n to b as a node with inputs Ticks.")
}

func writePackage(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "node.go"), []byte(src), 0o644))
	return dir
}

func TestDeriveDiagnostics(t *testing.T) {
	t.Run("parameter type mismatch names field and parameter", func(t *testing.T) {
		dir := writePackage(t, `package p

import (
	"context"

	"github.com/birdayz/kflow/kchan"
)

type Scale struct {
	In     *kchan.Receiver[float64]
	Out    *kchan.Sender[float64]
	factor float64
}

func (s *Scale) Step(ctx context.Context, v float32) (float64, error) {
	return float64(v) * s.factor, nil
}
`)
		_, err := ParsePackage(dir, []string{"Scale"})
		assert.IsError(t, err, ErrSignatureMismatch)
		assert.Contains(t, err.Error(), "Scale.Step: parameter 2 v has type float32, input field In carries float64")
	})

	t.Run("missing context and wrong results are reported together", func(t *testing.T) {
		dir := writePackage(t, `package p

import "github.com/birdayz/kflow/kchan"

type Sink struct {
	In *kchan.Receiver[string]
}

func (s *Sink) Step(v string) string { return v }
`)
		_, err := ParsePackage(dir, []string{"Sink"})
		assert.IsError(t, err, ErrSignatureMismatch)
		assert.Contains(t, err.Error(), "first parameter must be context.Context")
		assert.Contains(t, err.Error(), "last result must be error")
	})

	t.Run("output count mismatch", func(t *testing.T) {
		dir := writePackage(t, `package p

import (
	"context"

	"github.com/birdayz/kflow/kchan"
)

type Split struct {
	In   *kchan.Receiver[int]
	A, B *kchan.Sender[int]
}

func (s *Split) Step(ctx context.Context, v int) (int, error) { return v, nil }
`)
		_, err := ParsePackage(dir, []string{"Split"})
		assert.IsError(t, err, ErrSignatureMismatch)
		assert.Contains(t, err.Error(), "returns 1 values before the error, Split declares 2 output fields")
	})

	t.Run("every bad type is reported", func(t *testing.T) {
		dir := writePackage(t, `package p

import "github.com/birdayz/kflow/kchan"

type NoStep struct {
	Out *kchan.Sender[int]
}

type NoPorts struct {
	count int
}
`)
		_, err := ParsePackage(dir, []string{"NoStep", "NoPorts", "Missing"})
		assert.True(t, errors.Is(err, ErrSignatureMismatch))
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.True(t, errors.Is(err, ErrTypeNotFound))
	})

	t.Run("aliased imports", func(t *testing.T) {
		dir := writePackage(t, `package p

import (
	stdctx "context"

	ch "github.com/birdayz/kflow/kchan"
)

type Tick struct {
	Out *ch.Sender[int]
	n   int
}

func (t *Tick) Step(stdctx.Context) (int, error) {
	t.n++
	return t.n, nil
}
`)
		pkg, err := ParsePackage(dir, []string{"Tick"})
		assert.NoError(t, err)
		assert.Equal(t, []NodePort{{Field: "Out", Elem: "int"}}, pkg.Nodes[0].Outputs)

		var buf bytes.Buffer
		assert.NoError(t, GenerateDerive(&buf, pkg))
		assert.Contains(t, buf.String(), "out1, err := n.Step(ctx)")
	})

	t.Run("no types", func(t *testing.T) {
		_, err := ParsePackage(t.TempDir(), nil)
		assert.IsError(t, err, ErrInvalidConfig)
	})
}

func TestVersionedImports(t *testing.T) {
	pkg, err := ParsePackage(filepath.Join("testdata", "decode"), []string{"Reading"})
	assert.NoError(t, err)
	assert.Equal(t, []NodePort{{Field: "Docs", Elem: "yaml.Node"}}, pkg.Nodes[0].Inputs)
	assert.Equal(t, []NodePort{{Field: "Out", Elem: "units.Celsius"}}, pkg.Nodes[0].Outputs)

	var buf bytes.Buffer
	assert.NoError(t, GenerateDerive(&buf, pkg))
	out := buf.String()
	assert.Contains(t, out, "\t\"gopkg.in/yaml.v3\"\n")
	assert.Contains(t, out, "\t\"github.com/acme/units/v2\"\n")
	assert.Contains(t, out, "knode.BindInput[yaml.Node](inputs, 0)")
	assert.Contains(t, out, "knode.BindOutput[units.Celsius](outputs, 0)")
}

func TestImportName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "context", want: "context"},
		{path: "github.com/birdayz/kflow/kchan", want: "kchan"},
		{path: "gopkg.in/yaml.v3", want: "yaml"},
		{path: "github.com/acme/units/v2", want: "units"},
		{path: "github.com/go-logr/logr", want: "logr"},
		{path: "github.com/acme/go-geo", want: "geo"},
		{path: "github.com/acme/v2", want: "acme"},
		{path: "github.com/acme/vx", want: "vx"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, importName(tt.path))
		})
	}
}

func TestDerive(t *testing.T) {
	dir := writePackage(t, `package p

import (
	"context"

	"github.com/birdayz/kflow/kchan"
)

type Echo struct {
	In  *kchan.Receiver[string]
	Out *kchan.Sender[string]
}

func (e *Echo) Step(ctx context.Context, v string) (string, error) { return v, nil }
`)
	path, err := Derive(dir, []string{"Echo"}, "")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "node_kflow.go"), path)

	src, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(src), "func (n *Echo) Run(ctx context.Context) error {")

	// The generated file is parsed too and must not change the result
	again, err := Derive(dir, []string{"Echo"}, "")
	assert.NoError(t, err)
	regenerated, err := os.ReadFile(again)
	assert.NoError(t, err)
	assert.Equal(t, string(src), string(regenerated))
}

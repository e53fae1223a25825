package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"
)

// ArityConfig selects the node families rendered by GenerateArity.
type ArityConfig struct {
	MaxInputs  int
	MaxOutputs int
}

type arityPort struct {
	Index int
	Var   string
	Type  string
}

type arity struct {
	Name        string
	NumIn       int
	NumOut      int
	Inputs      []arityPort
	Outputs     []arityPort
	TypeParams  string
	TypeArgs    string
	StepParams  string
	StepResults string
	CallArgs    string
	ResultVars  string
	InputPorts  string
	OutputPorts string
}

func newArity(numIn, numOut int) arity {
	a := arity{
		Name:   fmt.Sprintf("%dx%d", numIn, numOut),
		NumIn:  numIn,
		NumOut: numOut,
	}

	var typeArgs, params, args, results, vars, inPorts, outPorts []string
	params = append(params, "ctx context.Context")
	args = append(args, "ctx")
	for i := 0; i < numIn; i++ {
		p := arityPort{Index: i, Var: fmt.Sprintf("in%d", i+1), Type: fmt.Sprintf("I%d", i+1)}
		a.Inputs = append(a.Inputs, p)
		typeArgs = append(typeArgs, p.Type)
		params = append(params, p.Var+" "+p.Type)
		args = append(args, p.Var)
		inPorts = append(inPorts, fmt.Sprintf("kgraph.InputPort[%s](%q)", p.Type, p.Var))
	}
	for i := 0; i < numOut; i++ {
		p := arityPort{Index: i, Var: fmt.Sprintf("out%d", i+1), Type: fmt.Sprintf("O%d", i+1)}
		a.Outputs = append(a.Outputs, p)
		typeArgs = append(typeArgs, p.Type)
		results = append(results, p.Type)
		vars = append(vars, p.Var)
		outPorts = append(outPorts, fmt.Sprintf("kgraph.OutputPort[%s](%q)", p.Type, p.Var))
	}

	a.TypeArgs = strings.Join(typeArgs, ", ")
	a.TypeParams = a.TypeArgs + " any"
	a.StepParams = strings.Join(params, ", ")
	a.CallArgs = strings.Join(args, ", ")
	a.ResultVars = strings.Join(vars, ", ")
	if numOut == 0 {
		a.StepResults = "error"
	} else {
		a.StepResults = "(" + strings.Join(append(results, "error"), ", ") + ")"
	}
	a.InputPorts = portList(inPorts)
	a.OutputPorts = portList(outPorts)
	return a
}

func portList(ports []string) string {
	if len(ports) == 0 {
		return "nil"
	}
	return "[]kgraph.Port{" + strings.Join(ports, ", ") + "}"
}

func plural(n int, noun string) string {
	switch n {
	case 0:
		return "no " + noun + "s"
	case 1:
		return "1 " + noun
	default:
		return fmt.Sprintf("%d %ss", n, noun)
	}
}

var arityTemplate = template.Must(template.New("arity").Funcs(template.FuncMap{
	"plural": plural,
}).Parse(`// Code generated by kflowgen arity --max-in {{.MaxIn}} --max-out {{.MaxOut}}. DO NOT EDIT.

package knode

import (
	"context"
	"errors"

	"github.com/birdayz/kflow/kchan"
	"github.com/birdayz/kflow/kgraph"
)
{{range .Arities}}
// Step{{.Name}} is the step function of a node with {{plural .NumIn "input"}} and {{plural .NumOut "output"}}.
type Step{{.Name}}[{{.TypeParams}}] func({{.StepParams}}) {{.StepResults}}

// Node{{.Name}} drives a Step{{.Name}}.
type Node{{.Name}}[{{.TypeParams}}] struct {
	step Step{{.Name}}[{{.TypeArgs}}]
{{- range .Inputs}}
	{{.Var}}  *kchan.Receiver[{{.Type}}]
{{- end}}
{{- range .Outputs}}
	{{.Var}} *kchan.Sender[{{.Type}}]
{{- end}}
}

// Bind implements kgraph.Runner.
func (n *Node{{.Name}}[{{.TypeArgs}}]) Bind(inputs, outputs []any) error {
	if err := CheckArity(inputs, outputs, {{.NumIn}}, {{.NumOut}}); err != nil {
		return err
	}
	var err error
{{- range .Inputs}}
	if n.{{.Var}}, err = BindInput[{{.Type}}](inputs, {{.Index}}); err != nil {
		return err
	}
{{- end}}
{{- range .Outputs}}
	if n.{{.Var}}, err = BindOutput[{{.Type}}](outputs, {{.Index}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

// Run implements kgraph.Runner.
func (n *Node{{.Name}}[{{.TypeArgs}}]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
{{- range .Inputs}}
		{{.Var}}, err := n.{{.Var}}.Recv(ctx)
		if err != nil {
			return err
		}
{{- end}}
{{- if .Outputs}}
		{{.ResultVars}}, err := n.step({{.CallArgs}})
		if errors.Is(err, ErrNoOutput) {
			continue
		}
		if err != nil {
			return err
		}
{{- range .Outputs}}
		if err := n.{{.Var}}.Send(ctx, {{.Var}}); err != nil {
			return err
		}
{{- end}}
{{- else}}
		if err := n.step({{.CallArgs}}); err != nil && !errors.Is(err, ErrNoOutput) {
			return err
		}
{{- end}}
	}
}

// Register{{.Name}} adds a node running step to b.
func Register{{.Name}}[{{.TypeParams}}](b *kgraph.Builder, name string, step Step{{.Name}}[{{.TypeArgs}}]) error {
	if step == nil {
		return nilStep(name)
	}
	return b.AddNode(name,
		{{.InputPorts}},
		{{.OutputPorts}},
		&Node{{.Name}}[{{.TypeArgs}}]{step: step},
	)
}

// MustRegister{{.Name}} is like Register{{.Name}} but panics on error.
func MustRegister{{.Name}}[{{.TypeParams}}](b *kgraph.Builder, name string, step Step{{.Name}}[{{.TypeArgs}}]) {
	if err := Register{{.Name}}(b, name, step); err != nil {
		panic(err)
	}
}
{{end}}`))

// GenerateArity renders the NodeIxO families of package knode for up to
// cfg.MaxInputs inputs and cfg.MaxOutputs outputs, without the 0x0 family.
func GenerateArity(w io.Writer, cfg ArityConfig) error {
	if cfg.MaxInputs < 0 || cfg.MaxOutputs < 0 || cfg.MaxInputs+cfg.MaxOutputs == 0 {
		return fmt.Errorf("%w: --max-in %d --max-out %d", ErrInvalidConfig, cfg.MaxInputs, cfg.MaxOutputs)
	}
	if cfg.MaxInputs > MaxPorts || cfg.MaxOutputs > MaxPorts {
		return fmt.Errorf("%w: at most %d ports per side", ErrInvalidConfig, MaxPorts)
	}

	var arities []arity
	for in := 0; in <= cfg.MaxInputs; in++ {
		for out := 0; out <= cfg.MaxOutputs; out++ {
			if in == 0 && out == 0 {
				continue
			}
			arities = append(arities, newArity(in, out))
		}
	}

	var buf bytes.Buffer
	err := arityTemplate.Execute(&buf, map[string]any{
		"MaxIn":   cfg.MaxInputs,
		"MaxOut":  cfg.MaxOutputs,
		"Arities": arities,
	})
	if err != nil {
		return fmt.Errorf("failed to render arity template: %w", err)
	}
	return writeFormatted(w, buf.Bytes())
}

func writeFormatted(w io.Writer, src []byte) error {
	formatted, err := format.Source(src)
	if err != nil {
		return fmt.Errorf("generated code does not parse: %w", err)
	}
	_, err = w.Write(formatted)
	return err
}

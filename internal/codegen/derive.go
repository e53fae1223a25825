package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"go.uber.org/multierr"
)

const (
	kchanPath   = "github.com/birdayz/kflow/kchan"
	contextPath = "context"
)

// MaxPorts limits the ports per side of a node.
const MaxPorts = 16

var (
	ErrInvalidConfig     = errors.New("invalid generator configuration")
	ErrTypeNotFound      = errors.New("type not found")
	ErrSignatureMismatch = errors.New("step signature does not match ports")
	ErrUnsupportedType   = errors.New("unsupported node type")
)

// NodePort is one channel field of a derived node.
type NodePort struct {
	Field string
	Elem  string
}

// NodeType describes a struct whose loop is derived.
type NodeType struct {
	Name    string
	File    string
	Inputs  []NodePort
	Outputs []NodePort
	// State lists the fields that are neither inputs nor outputs.
	State []string
}

// Package is the result of parsing a package for derivation.
type Package struct {
	Name  string
	Dir   string
	Nodes []*NodeType

	imports map[string]string // local name -> path, of the files declaring nodes
	used    map[string]bool   // local names referenced by port element types
}

type sourceFile struct {
	name    string
	ast     *ast.File
	imports map[string]string
}

// ParsePackage parses the Go files in dir and analyzes the named structs.
// Diagnostics for all types are returned together.
func ParsePackage(dir string, typeNames []string) (*Package, error) {
	if len(typeNames) == 0 {
		return nil, fmt.Errorf("%w: no types given", ErrInvalidConfig)
	}

	fset := token.NewFileSet()
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	pkg := &Package{
		Dir:     dir,
		imports: make(map[string]string),
		used:    make(map[string]bool),
	}
	var files []*sourceFile
	for _, path := range paths {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if pkg.Name != f.Name.Name {
			return nil, fmt.Errorf("%w: %s declares package %s, expected %s", ErrInvalidConfig, path, f.Name.Name, pkg.Name)
		}
		files = append(files, &sourceFile{name: path, ast: f, imports: fileImports(f)})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no Go files in %s", ErrInvalidConfig, dir)
	}

	var errs error
	for _, name := range typeNames {
		node, err := pkg.analyze(files, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		pkg.Nodes = append(pkg.Nodes, node)
	}
	if errs != nil {
		return nil, errs
	}
	return pkg, nil
}

func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := importName(path)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		imports[name] = path
	}
	return imports
}

// importName returns the package name assumed for an import path without an
// explicit name: the last element, skipping a /vN major version element,
// without a "go-" prefix and cut at the first "." or "-". gopkg.in/yaml.v3
// is yaml, github.com/x/y/v2 is y.
func importName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexAny(name, ".-"); i >= 0 {
		name = name[:i]
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func localName(imports map[string]string, path string) (string, bool) {
	for name, p := range imports {
		if p == path {
			return name, true
		}
	}
	return "", false
}

func (p *Package) analyze(files []*sourceFile, typeName string) (*NodeType, error) {
	var (
		decl  *ast.TypeSpec
		where *sourceFile
	)
	for _, f := range files {
		if spec := findType(f.ast, typeName); spec != nil {
			decl, where = spec, f
			break
		}
	}
	if decl == nil {
		return nil, fmt.Errorf("%w: %s in package %s", ErrTypeNotFound, typeName, p.Name)
	}
	if decl.TypeParams != nil && len(decl.TypeParams.List) > 0 {
		return nil, fmt.Errorf("%w: %s has type parameters", ErrUnsupportedType, typeName)
	}
	st, ok := decl.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedType, typeName)
	}

	node := &NodeType{Name: typeName, File: filepath.Base(where.name)}
	kchanName, hasKchan := localName(where.imports, kchanPath)
	for _, field := range st.Fields.List {
		kind, elem := "", ""
		if hasKchan {
			kind, elem = channelField(field.Type, kchanName)
		}
		if len(field.Names) == 0 {
			node.State = append(node.State, types.ExprString(field.Type))
			continue
		}
		for _, ident := range field.Names {
			switch kind {
			case "Receiver":
				node.Inputs = append(node.Inputs, NodePort{Field: ident.Name, Elem: elem})
			case "Sender":
				node.Outputs = append(node.Outputs, NodePort{Field: ident.Name, Elem: elem})
			default:
				node.State = append(node.State, ident.Name)
			}
		}
		if kind != "" {
			p.markUsed(field.Type, where.imports, kchanName)
		}
	}
	if len(node.Inputs)+len(node.Outputs) == 0 {
		return nil, fmt.Errorf("%w: %s has no *kchan.Receiver or *kchan.Sender fields", ErrUnsupportedType, typeName)
	}
	if len(node.Inputs) > MaxPorts || len(node.Outputs) > MaxPorts {
		return nil, fmt.Errorf("%w: %s has more than %d ports per side", ErrUnsupportedType, typeName, MaxPorts)
	}

	step := findMethod(files, typeName, "Step")
	if step == nil {
		return nil, fmt.Errorf("%w: %s has no Step method", ErrSignatureMismatch, typeName)
	}
	if err := checkStep(node, step, where.imports); err != nil {
		return nil, err
	}
	return node, nil
}

func findType(f *ast.File, name string) *ast.TypeSpec {
	for _, d := range f.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, s := range gen.Specs {
			if spec := s.(*ast.TypeSpec); spec.Name.Name == name {
				return spec
			}
		}
	}
	return nil
}

func findMethod(files []*sourceFile, typeName, method string) *ast.FuncDecl {
	for _, f := range files {
		for _, d := range f.ast.Decls {
			fn, ok := d.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != method || len(fn.Recv.List) != 1 {
				continue
			}
			recv := fn.Recv.List[0].Type
			if star, ok := recv.(*ast.StarExpr); ok {
				recv = star.X
			}
			if ident, ok := recv.(*ast.Ident); ok && ident.Name == typeName {
				return fn
			}
		}
	}
	return nil
}

// channelField reports whether expr is *kchan.Receiver[T] or *kchan.Sender[T]
// and returns the source text of T.
func channelField(expr ast.Expr, kchanName string) (string, string) {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return "", ""
	}
	index, ok := star.X.(*ast.IndexExpr)
	if !ok {
		return "", ""
	}
	sel, ok := index.X.(*ast.SelectorExpr)
	if !ok {
		return "", ""
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != kchanName {
		return "", ""
	}
	switch sel.Sel.Name {
	case "Receiver", "Sender":
		return sel.Sel.Name, types.ExprString(index.Index)
	default:
		return "", ""
	}
}

// markUsed records the packages referenced by the element type of a port
// field, so the generated file can import them.
func (p *Package) markUsed(expr ast.Expr, imports map[string]string, kchanName string) {
	elem := expr.(*ast.StarExpr).X.(*ast.IndexExpr).Index
	ast.Inspect(elem, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			if path, ok := imports[ident.Name]; ok && ident.Name != kchanName {
				p.imports[ident.Name] = path
				p.used[ident.Name] = true
			}
		}
		return false
	})
}

type param struct {
	name string
	typ  string
}

func flatten(list *ast.FieldList) []param {
	if list == nil {
		return nil
	}
	var out []param
	for _, f := range list.List {
		typ := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			out = append(out, param{typ: typ})
			continue
		}
		for _, n := range f.Names {
			out = append(out, param{name: n.Name, typ: typ})
		}
	}
	return out
}

// checkStep verifies Step(ctx context.Context, in...) (out..., error) against
// the port fields in declaration order.
func checkStep(node *NodeType, fn *ast.FuncDecl, imports map[string]string) error {
	prefix := node.Name + ".Step"
	params := flatten(fn.Type.Params)
	results := flatten(fn.Type.Results)

	ctxType := "context.Context"
	if name, ok := localName(imports, contextPath); ok {
		ctxType = name + ".Context"
	}

	var errs error
	if len(params) == 0 || params[0].typ != ctxType {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s: first parameter must be %s", ErrSignatureMismatch, prefix, ctxType))
	} else {
		params = params[1:]
	}
	if errs == nil {
		if len(params) != len(node.Inputs) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s takes %d inputs after the context, %s declares %d input fields",
				ErrSignatureMismatch, prefix, len(params), node.Name, len(node.Inputs)))
		}
		for i := 0; i < len(params) && i < len(node.Inputs); i++ {
			if params[i].typ != node.Inputs[i].Elem {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s: parameter %d %s has type %s, input field %s carries %s",
					ErrSignatureMismatch, prefix, i+2, paramName(params[i]), params[i].typ, node.Inputs[i].Field, node.Inputs[i].Elem))
			}
		}
	}

	if len(results) == 0 || results[len(results)-1].typ != "error" {
		return multierr.Append(errs, fmt.Errorf("%w: %s: last result must be error", ErrSignatureMismatch, prefix))
	}
	results = results[:len(results)-1]
	if len(results) != len(node.Outputs) {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s returns %d values before the error, %s declares %d output fields",
			ErrSignatureMismatch, prefix, len(results), node.Name, len(node.Outputs)))
	}
	for i := 0; i < len(results) && i < len(node.Outputs); i++ {
		if results[i].typ != node.Outputs[i].Elem {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: result %d has type %s, output field %s carries %s",
				ErrSignatureMismatch, prefix, i+1, results[i].typ, node.Outputs[i].Field, node.Outputs[i].Elem))
		}
	}
	return errs
}

func paramName(p param) string {
	if p.name == "" {
		return "(unnamed)"
	}
	return p.name
}

// DefaultOutput returns the file name derive writes to when none is given:
// the file declaring the first node with a _kflow suffix.
func (p *Package) DefaultOutput() string {
	base := strings.TrimSuffix(p.Nodes[0].File, ".go")
	return filepath.Join(p.Dir, base+"_kflow.go")
}

type derivePort struct {
	Var   string
	Field string
}

type deriveNode struct {
	*NodeType
	Locals      []derivePort
	Results     []derivePort
	CallArgs    string
	ResultVars  string
	InputPorts  string
	OutputPorts string
	PortDoc     string
}

func newDeriveNode(n *NodeType) deriveNode {
	d := deriveNode{NodeType: n}
	args := []string{"ctx"}
	var vars, inPorts, outPorts, doc []string
	for i, in := range n.Inputs {
		v := fmt.Sprintf("in%d", i+1)
		d.Locals = append(d.Locals, derivePort{Var: v, Field: in.Field})
		args = append(args, v)
		inPorts = append(inPorts, fmt.Sprintf("kgraph.InputPort[%s](%q)", in.Elem, in.Field))
	}
	for i, out := range n.Outputs {
		v := fmt.Sprintf("out%d", i+1)
		d.Results = append(d.Results, derivePort{Var: v, Field: out.Field})
		vars = append(vars, v)
		outPorts = append(outPorts, fmt.Sprintf("kgraph.OutputPort[%s](%q)", out.Elem, out.Field))
	}
	d.CallArgs = strings.Join(args, ", ")
	d.ResultVars = strings.Join(vars, ", ")
	d.InputPorts = portList(inPorts)
	d.OutputPorts = portList(outPorts)

	if len(n.Inputs) > 0 {
		doc = append(doc, "inputs "+fieldNames(n.Inputs))
	}
	if len(n.Outputs) > 0 {
		doc = append(doc, "outputs "+fieldNames(n.Outputs))
	}
	d.PortDoc = strings.Join(doc, " and ")
	return d
}

func fieldNames(ports []NodePort) string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.Field
	}
	return strings.Join(names, ", ")
}

var deriveTemplate = template.Must(template.New("derive").Parse(`// Code generated by kflowgen derive --type {{.Types}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"
	"errors"
	"fmt"
{{- range .Imports}}
	{{.}}
{{- end}}

	"github.com/birdayz/kflow/kgraph"
	"github.com/birdayz/kflow/knode"
)
{{range .Nodes}}
// Register{{.Name}} adds n to b as a node with {{.PortDoc}}.
func Register{{.Name}}(b *kgraph.Builder, name string, n *{{.Name}}) error {
	if n == nil {
		return fmt.Errorf("%w: node %q is nil", kgraph.ErrInvalidTopology, name)
	}
	return b.AddNode(name,
		{{.InputPorts}},
		{{.OutputPorts}},
		n,
	)
}

// Bind implements kgraph.Runner.
func (n *{{.Name}}) Bind(inputs, outputs []any) error {
	if err := knode.CheckArity(inputs, outputs, {{len .Inputs}}, {{len .Outputs}}); err != nil {
		return err
	}
	var err error
{{- range $i, $p := .Inputs}}
	if n.{{$p.Field}}, err = knode.BindInput[{{$p.Elem}}](inputs, {{$i}}); err != nil {
		return err
	}
{{- end}}
{{- range $i, $p := .Outputs}}
	if n.{{$p.Field}}, err = knode.BindOutput[{{$p.Elem}}](outputs, {{$i}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

// Run implements kgraph.Runner.
func (n *{{.Name}}) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
{{- range .Locals}}
		{{.Var}}, err := n.{{.Field}}.Recv(ctx)
		if err != nil {
			return err
		}
{{- end}}
{{- if .Results}}
		{{.ResultVars}}, err := n.Step({{.CallArgs}})
		if errors.Is(err, knode.ErrNoOutput) {
			continue
		}
		if err != nil {
			return err
		}
{{- range .Results}}
		if err := n.{{.Field}}.Send(ctx, {{.Var}}); err != nil {
			return err
		}
{{- end}}
{{- else}}
		if err := n.Step({{.CallArgs}}); err != nil && !errors.Is(err, knode.ErrNoOutput) {
			return err
		}
{{- end}}
	}
}
{{end}}`))

// GenerateDerive writes the Register function and the kgraph.Runner methods
// of every node in pkg.
func GenerateDerive(w io.Writer, pkg *Package) error {
	var (
		names   []string
		nodes   []deriveNode
		imports []string
	)
	for _, n := range pkg.Nodes {
		names = append(names, n.Name)
		nodes = append(nodes, newDeriveNode(n))
	}
	for name := range pkg.used {
		path := pkg.imports[name]
		switch path {
		case contextPath, "errors", "fmt":
			continue
		}
		if importName(path) == name {
			imports = append(imports, strconv.Quote(path))
		} else {
			imports = append(imports, name+" "+strconv.Quote(path))
		}
	}
	sort.Strings(imports)

	var buf bytes.Buffer
	err := deriveTemplate.Execute(&buf, map[string]any{
		"Types":   strings.Join(names, ","),
		"Package": pkg.Name,
		"Imports": imports,
		"Nodes":   nodes,
	})
	if err != nil {
		return fmt.Errorf("failed to render derive template: %w", err)
	}
	return writeFormatted(w, buf.Bytes())
}

// Derive parses dir, generates the code for typeNames and writes it to
// output, or to the default file when output is empty. It returns the path
// written.
func Derive(dir string, typeNames []string, output string) (string, error) {
	pkg, err := ParsePackage(dir, typeNames)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := GenerateDerive(&buf, pkg); err != nil {
		return "", err
	}
	if output == "" {
		output = pkg.DefaultOutput()
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", output, err)
	}
	return output, nil
}

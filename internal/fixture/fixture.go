// Package fixture loads toy pkg/ast trees from a compact YAML format, so
// the narrowing pass is exercisable without the lexer/parser spec.md §1
// explicitly places out of scope. It mirrors the role of the teacher's
// testdata/fixtures convention (a directory of source files driving
// TestDWScriptFixtures), but since this repository has no parser of its
// own, the fixture format IS the AST, pre-annotated with the candidate
// datatypes a real candidate-collection pass would have computed.
package fixture

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// raw is the shape a fixture file decodes to before being built into a
// *ast.Program: an untyped tree, because each node's YAML shape varies by
// its own "kind"/operator discriminator field.
type raw = map[string]any

// file is the top-level document shape.
type file struct {
	Types          map[string]string `yaml:"types"`
	Functions      []raw             `yaml:"functions"`
	FunctionBlocks []raw             `yaml:"function_blocks"`
	Programs       []raw             `yaml:"programs"`
}

// Load reads and decodes a fixture file at path into a *ast.Program.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes decodes fixture YAML already read into memory.
func LoadBytes(data []byte) (*ast.Program, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}

	b := newBuilder(f.Types)

	var units []ast.Node
	for _, fn := range f.Functions {
		decl, err := b.buildFunctionDecl(fn)
		if err != nil {
			return nil, err
		}
		units = append(units, decl)
	}
	for _, fb := range f.FunctionBlocks {
		decl, err := b.buildFunctionBlockDecl(fb)
		if err != nil {
			return nil, err
		}
		units = append(units, decl)
	}
	for _, pr := range f.Programs {
		decl, err := b.buildProgramDecl(pr)
		if err != nil {
			return nil, err
		}
		units = append(units, decl)
	}

	return &ast.Program{Units: units}, nil
}

// builder carries the type-name registry (well-known elementary types plus
// any derived types declared under the fixture's top-level `types:` map)
// used to resolve every `type:`/`candidates:` string in the document.
type builder struct {
	types map[string]*types.Ref
	funcs map[string]*ast.FunctionDecl
	fbs   map[string]*ast.FunctionBlockDecl
}

func newBuilder(declared map[string]string) *builder {
	b := &builder{
		types: wellKnownTypes(),
		funcs: make(map[string]*ast.FunctionDecl),
		fbs:   make(map[string]*ast.FunctionBlockDecl),
	}
	for name, underlying := range declared {
		b.types[name] = types.NewDerived(name, b.types[underlying])
	}
	return b
}

func wellKnownTypes() map[string]*types.Ref {
	return map[string]*types.Ref{
		"BOOL":          types.BOOL,
		"BYTE":          types.BYTE,
		"WORD":          types.WORD,
		"DWORD":         types.DWORD,
		"LWORD":         types.LWORD,
		"SINT":          types.SINT,
		"INT":           types.INT,
		"DINT":          types.DINT,
		"LINT":          types.LINT,
		"USINT":         types.USINT,
		"UINT":          types.UINT,
		"UDINT":         types.UDINT,
		"ULINT":         types.ULINT,
		"REAL":          types.REAL,
		"LREAL":         types.LREAL,
		"TIME":          types.TIME,
		"DATE":          types.DATE,
		"TIME_OF_DAY":   types.TIME_OF_DAY,
		"DATE_AND_TIME": types.DATE_AND_TIME,
		"STRING":        types.STRING,
		"WSTRING":       types.WSTRING,
	}
}

func (b *builder) resolveType(name string) (*types.Ref, error) {
	if name == "" {
		return nil, nil
	}
	t, ok := b.types[name]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown type name %q", name)
	}
	return t, nil
}

func (b *builder) resolveTypes(names []any) ([]*types.Ref, error) {
	refs := make([]*types.Ref, 0, len(names))
	for _, n := range names {
		name, _ := n.(string)
		t, err := b.resolveType(name)
		if err != nil {
			return nil, err
		}
		refs = append(refs, t)
	}
	return refs, nil
}

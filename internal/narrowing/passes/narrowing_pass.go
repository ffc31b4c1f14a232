package passes

import (
	"github.com/plctoolchain/narrow/internal/narrowing"
	"github.com/plctoolchain/narrow/pkg/ast"
)

// NarrowingPass implements the teacher's Pass shape (Name()/Run(program,
// ctx) error) so the type-narrowing pass can be slotted into a larger
// pipeline after a candidate-collection stage and before a diagnostics
// stage, the way the teacher slots TypeResolutionPass between
// DeclarationPass and ContractPass.
type NarrowingPass struct {
	pass *narrowing.Pass
}

// NewNarrowingPass creates a NarrowingPass.
func NewNarrowingPass() *NarrowingPass {
	return &NarrowingPass{pass: narrowing.New()}
}

// Name identifies this pipeline stage.
func (p *NarrowingPass) Name() string {
	return "TypeNarrowingPass"
}

// Run scans ctx.FBTypes (if not already populated) and narrows every POU
// in program, building a freshly scoped SymbolResolver per POU from its own
// parameter list, per spec.md §4.6's "instantiate ... release" lifecycle.
func (p *NarrowingPass) Run(program *ast.Program, ctx *PassContext) error {
	if len(ctx.FBTypes) == 0 {
		ScanFBTypes(program, ctx)
	}

	for _, unit := range program.Units {
		params := paramsOf(unit)
		resolver := BuildResolver(ctx, params)
		single := &ast.Program{BaseNode: program.BaseNode, Units: []ast.Node{unit}}
		if err := p.pass.Run(single, resolver); err != nil {
			ctx.AddError("%v", err)
			return err
		}
	}
	return nil
}

func paramsOf(unit ast.Node) []*ast.Parameter {
	switch u := unit.(type) {
	case *ast.FunctionDecl:
		return u.Params
	case *ast.FunctionBlockDecl:
		return u.Params
	case *ast.ProgramDecl:
		return u.Params
	default:
		return nil
	}
}

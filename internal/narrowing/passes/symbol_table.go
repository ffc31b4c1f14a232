package passes

import (
	"github.com/plctoolchain/narrow/internal/narrowing"
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/ident"
	"github.com/plctoolchain/narrow/pkg/types"
)

// ScanFBTypes populates ctx.FBTypes from every FunctionBlockDecl in
// program, keyed by normalized name. Grounded on the teacher's
// DeclarationPass, which likewise does one up-front registration sweep
// before any later pass resolves a reference against it.
func ScanFBTypes(program *ast.Program, ctx *PassContext) {
	for _, unit := range program.Units {
		if fb, ok := unit.(*ast.FunctionBlockDecl); ok {
			ctx.FBTypes[ident.Normalize(fb.Name)] = fb
		}
	}
}

// BuildResolver constructs the SymbolResolver spec.md §6 describes,
// scoped to one POU's variable declarations: every Parameter whose
// Datatype names a known FB type (per ctx.FBTypes) is registered as an
// FB-instance name resolving to that FB's declaration.
func BuildResolver(ctx *PassContext, params []*ast.Parameter) narrowing.SymbolResolver {
	scope := narrowing.NewScopedResolver()
	definer, ok := scope.(interface {
		Define(name string, fbDecl *ast.FunctionBlockDecl)
	})
	if !ok {
		return scope
	}
	for _, param := range params {
		fbDecl := fbDeclForDatatype(ctx, param.Datatype)
		if fbDecl != nil {
			definer.Define(param.Name, fbDecl)
		}
	}
	return scope
}

func fbDeclForDatatype(ctx *PassContext, t *types.Ref) *ast.FunctionBlockDecl {
	if t == nil || t.Kind != types.KindDerived {
		return nil
	}
	return ctx.FBTypes[ident.Normalize(t.Name)]
}

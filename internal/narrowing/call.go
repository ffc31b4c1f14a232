package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/ident"
	"github.com/plctoolchain/narrow/pkg/types"
)

// genericCall is the generic call descriptor spec §4.3 describes: every
// function call-site node kind (ST CallExpr, IL ILFunctionCall/
// ILFormalFunctCall) is adapted to this shape so resolution and parameter
// propagation are written once. FB calls are not: il.go's
// narrowILFBCallBody and stmt.go's narrowFBInvocation propagate their
// parameters themselves.
type genericCall struct {
	callee string

	nonFormal []ast.Expression
	formal    []ast.Param

	candidates     []*types.Ref
	candidateFuncs []*ast.FunctionDecl

	chosen *types.Ref

	resolved     **ast.FunctionDecl
	extensible   *int
}

// narrowCallExpr adapts an ST CallExpr to genericCall and runs resolution.
func (p *Pass) narrowCallExpr(ctx *context, c *ast.CallExpr) {
	g := &genericCall{
		callee:         c.Callee,
		nonFormal:      c.NonFormal,
		formal:         c.Formal,
		candidates:     c.CandidateDatatypes(),
		candidateFuncs: c.CandidateFuncs,
		chosen:         c.Datatype(),
		resolved:       &c.CalledFunction,
		extensible:     &c.ExtensibleParamCount,
	}
	p.resolveGenericCall(ctx, g)
}

// resolveGenericCall0 implements spec §4.3's resolution algorithm.
func resolveGenericCall0(g *genericCall) {
	*g.extensible = -1

	idx := types.SearchInCandidateDatatypeList(g.chosen, g.candidates)
	switch {
	case idx >= 0:
		*g.resolved = g.candidateFuncs[idx]
	case len(g.candidates) == 1:
		// Accept the sole candidate regardless of whether a return type
		// was demanded, keeping parameter-error reporting alive even in
		// otherwise-broken contexts (spec §4.3, rule 2).
		*g.resolved = g.candidateFuncs[0]
	default:
		*g.resolved = nil
	}
}

func (p *Pass) resolveGenericCall(ctx *context, g *genericCall) {
	resolveGenericCall0(g)
	if *g.resolved == nil {
		return
	}
	p.propagateCallParams(ctx, g, *g.resolved)
}

// propagateCallParams implements spec §4.3's parameter-propagation rules
// once a declaration is known.
func (p *Pass) propagateCallParams(ctx *context, g *genericCall, decl *ast.FunctionDecl) {
	highestExt := -1

	if g.formal != nil {
		for _, param := range g.formal {
			formalDecl := findFormalParam(decl, param.Name)
			if formalDecl == nil {
				// Name not found: null demand, but still recurse
				// (spec §4.3: "a name not found in the declaration
				// yields a null demand but the argument expression is
				// still recursed into").
				p.narrowExpr(ctx, param.Value)
				continue
			}
			setDatatype(formalDecl.Datatype, param.Value)
			p.narrowExpr(ctx, param.Value)
			if idx := paramIndex(decl, formalDecl); idx >= decl.FirstExtensibleParamIndex && decl.FirstExtensibleParamIndex >= 0 {
				if idx > highestExt {
					highestExt = idx
				}
			}
		}
	} else {
		i := 0
		for _, param := range decl.Params {
			if isENENO(param.Name) {
				continue
			}
			if i >= len(g.nonFormal) {
				break
			}
			arg := g.nonFormal[i]
			setDatatype(param.Datatype, arg)
			p.narrowExpr(ctx, arg)
			if decl.FirstExtensibleParamIndex >= 0 && i >= decl.FirstExtensibleParamIndex && i > highestExt {
				highestExt = i
			}
			i++
		}
	}

	if decl.FirstExtensibleParamIndex >= 0 && highestExt >= decl.FirstExtensibleParamIndex {
		*g.extensible = 1 + highestExt - decl.FirstExtensibleParamIndex
	} else {
		*g.extensible = -1
	}
}

func isENENO(name string) bool {
	return ident.Equal(name, "EN") || ident.Equal(name, "ENO")
}

func findFormalParam(decl *ast.FunctionDecl, name string) *ast.Parameter {
	for _, p := range decl.Params {
		if ident.Equal(p.Name, name) {
			return p
		}
	}
	return nil
}

func paramIndex(decl *ast.FunctionDecl, target *ast.Parameter) int {
	return paramIndexIn(decl.Params, target)
}

func paramIndexIn(params []*ast.Parameter, target *ast.Parameter) int {
	for i, p := range params {
		if p == target {
			return i
		}
	}
	return -1
}

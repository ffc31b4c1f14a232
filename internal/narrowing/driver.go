// Package narrowing implements the type-narrowing pass: a single top-down
// AST walk that chooses concrete datatypes from the candidate sets a prior
// pass computed, resolves overloaded function/FB calls, and threads IL's
// implicit current-value dataflow backward through instruction lists.
//
// The driver (this file) dispatches on AST node kind via a big type
// switch — not virtual/visitor dispatch — per spec.md §9's "tagged
// variants over inheritance" redesign note. Component files:
// selector.go (§4.1), expr.go (§4.2), call.go (§4.3), il.go (§4.4/§4.5),
// stmt.go (§4.6).
package narrowing

import "github.com/plctoolchain/narrow/pkg/ast"

// Pass narrows one compilation unit. It holds no state across Run calls;
// all per-run state lives in the context value threaded through recursion
// (spec §5's "replace two conceptually-global slots with an explicit
// context parameter").
type Pass struct{}

// New creates a narrowing Pass.
func New() *Pass { return &Pass{} }

// Run narrows program in place, visiting every POU declaration using
// resolver to look up FB-instance types (spec §6's externally-supplied
// "resolver capability"). It recovers from internal-error panics raised by
// fail() and returns them as a normal error — user-code type errors never
// reach this path; they are recorded in-band via types.Invalid and never
// abort the pass (spec §7).
func (p *Pass) Run(program *ast.Program, resolver SymbolResolver) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				err = ie
				return
			}
			panic(r) // not ours: a genuine bug, let it propagate
		}
	}()

	ctx := newContext(resolver)
	for _, unit := range program.Units {
		p.narrowUnit(ctx, unit)
	}
	return nil
}

// narrowUnit narrows one top-level POU declaration, per spec §4.6's
// "instantiate a scoped variable-type resolver, narrow the variable-
// declaration list, then narrow the body, then release the resolver" —
// the scoped resolver itself is the caller's responsibility (the passes
// package's BuildResolver builds one from a POU's parameter list); this
// pass only consumes
// whatever SymbolResolver it is handed.
func (p *Pass) narrowUnit(ctx *context, unit ast.Node) {
	switch u := unit.(type) {
	case *ast.FunctionDecl:
		for _, param := range u.Params {
			p.narrowStatement(ctx, param)
		}
		if u.Body != nil {
			p.narrowStatement(ctx, u.Body)
		}
	case *ast.FunctionBlockDecl:
		for _, param := range u.Params {
			p.narrowStatement(ctx, param)
		}
		if u.Body != nil {
			p.narrowStatement(ctx, u.Body)
		}
	case *ast.ProgramDecl:
		for _, param := range u.Params {
			p.narrowStatement(ctx, param)
		}
		if u.Body != nil {
			p.narrowStatement(ctx, u.Body)
		}
	case *ast.ConfigurationDecl:
		// Stubbed per spec §9: "Configuration declarations are stubbed —
		// skip narrowing inside them until a reference behavior is
		// specified." Left entirely untouched.
	default:
		fail("narrowUnit", "unhandled POU declaration %T", unit)
	}
}

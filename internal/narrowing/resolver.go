package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/ident"
)

func normalizedKey(name string) string { return ident.Normalize(name) }

// SymbolResolver is the small interface spec §6 describes as an input
// collaborator: "a resolver capability for 'given an FB-instance name in
// current scope, return its FB-type declaration'". Scoped per POU visit
// (spec §4.6's "instantiate a scoped variable-type resolver ... release
// the resolver").
type SymbolResolver interface {
	// ResolveFBInstance returns the FunctionBlockDecl for the FB-instance
	// variable named name in the current scope, or nil if name is not a
	// known FB instance.
	ResolveFBInstance(name string) *ast.FunctionBlockDecl
}

// scopedResolver is the default SymbolResolver: a chain of flat maps, one
// per nested POU/block scope, mirroring the teacher's semantic.Scope
// parent-chain design.
type scopedResolver struct {
	fbInstances map[string]*ast.FunctionBlockDecl
	parent      *scopedResolver
}

// NewScopedResolver creates a root scope with no FB instances defined.
func NewScopedResolver() SymbolResolver {
	return newScope(nil)
}

func newScope(parent *scopedResolver) *scopedResolver {
	return &scopedResolver{fbInstances: make(map[string]*ast.FunctionBlockDecl), parent: parent}
}

// Push opens a nested scope (entering a POU body), returning the new
// resolver; Pop (discarding the returned value) releases it, per spec
// §4.6's "instantiate ... release the resolver" lifecycle.
func (s *scopedResolver) Push() *scopedResolver {
	return newScope(s)
}

// Define registers name as an instance of fbDecl in this scope.
func (s *scopedResolver) Define(name string, fbDecl *ast.FunctionBlockDecl) {
	s.fbInstances[normalizedKey(name)] = fbDecl
}

func (s *scopedResolver) ResolveFBInstance(name string) *ast.FunctionBlockDecl {
	key := normalizedKey(name)
	for sc := s; sc != nil; sc = sc.parent {
		if d, ok := sc.fbInstances[key]; ok {
			return d
		}
	}
	return nil
}

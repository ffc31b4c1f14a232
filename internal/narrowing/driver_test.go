package narrowing

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

func TestRun_NarrowsEveryPOU(t *testing.T) {
	lhs := ast.NewTestIdentifier("A", types.INT)
	rhs := ast.NewTestIdentifier("B", types.INT)
	assign := &ast.AssignmentStatement{LHS: lhs, RHS: rhs, Candidates: []*types.Ref{types.INT}}
	body := &ast.BlockStatement{Statements: []ast.Statement{assign}}
	fn := ast.NewTestFunctionDecl("DOUBLE", nil, types.INT)
	fn.Body = body

	program := &ast.Program{Units: []ast.Node{fn}}

	p := New()
	if err := p.Run(program, NewScopedResolver()); err != nil {
		t.Fatalf("Run returned an unexpected error: %v", err)
	}
	if assign.Chosen != types.INT {
		t.Errorf("expected the nested assignment narrowed, got %v", assign.Chosen)
	}
}

func TestRun_RecoversInternalErrorAsReturnedError(t *testing.T) {
	program := &ast.Program{Units: []ast.Node{unknownUnit{}}}

	p := New()
	err := p.Run(program, NewScopedResolver())
	if err == nil {
		t.Fatal("expected Run to return an error for an unhandled POU kind")
	}
	if _, ok := err.(*InternalError); !ok {
		t.Fatalf("expected *InternalError, got %T", err)
	}
}

func TestRun_ConfigurationDecl_Skipped(t *testing.T) {
	program := &ast.Program{Units: []ast.Node{&ast.ConfigurationDecl{Name: "CONF"}}}

	p := New()
	if err := p.Run(program, NewScopedResolver()); err != nil {
		t.Fatalf("Run should not error on a configuration declaration, got %v", err)
	}
}

type unknownUnit struct{ ast.BaseNode }

func (unknownUnit) TokenLiteral() string { return "?" }
func (unknownUnit) String() string       { return "?" }

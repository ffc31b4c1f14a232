package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/plctoolchain/narrow/internal/diagnostics"
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

func TestCollect_FindsInvalidBinaryExpr(t *testing.T) {
	left := ast.NewTestIdentifier("A", types.INT)
	right := ast.NewTestIdentifier("B", types.INT)
	bin := ast.NewTestBinaryExpr(ast.OpAdd, left, right, types.INT)
	bin.SetDatatype(types.Invalid)

	program := &ast.Program{Units: []ast.Node{wrapAsFunctionBody(bin)}}

	findings := diagnostics.Collect(program)
	if len(findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d", len(findings))
	}
	if !strings.Contains(findings[0].Reason, "operands have no common datatype") {
		t.Errorf("unexpected reason: %q", findings[0].Reason)
	}
}

func TestCollect_NoFindingsWhenAllResolved(t *testing.T) {
	left := ast.NewTestIdentifier("A", types.INT)
	right := ast.NewTestIdentifier("B", types.INT)
	bin := ast.NewTestBinaryExpr(ast.OpAdd, left, right, types.INT)
	bin.SetDatatype(types.INT)
	left.SetDatatype(types.INT)
	right.SetDatatype(types.INT)

	program := &ast.Program{Units: []ast.Node{wrapAsFunctionBody(bin)}}

	findings := diagnostics.Collect(program)
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %d: %v", len(findings), findings)
	}
}

func TestCollect_FindsInvalidAssignment(t *testing.T) {
	lhs := ast.NewTestIdentifier("A", types.INT)
	rhs := ast.NewTestIdentifier("B", types.REAL)
	assign := &ast.AssignmentStatement{LHS: lhs, RHS: rhs, Chosen: types.Invalid}
	body := &ast.BlockStatement{Statements: []ast.Statement{assign}}
	fn := ast.NewTestFunctionDecl("F", nil, types.INT)
	fn.Body = body

	program := &ast.Program{Units: []ast.Node{fn}}

	findings := diagnostics.Collect(program)
	if len(findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d", len(findings))
	}
}

func wrapAsFunctionBody(e ast.Expression) *ast.FunctionDecl {
	assign := &ast.AssignmentStatement{
		LHS: ast.NewTestIdentifier("RESULT", types.INT),
		RHS: e,
	}
	body := &ast.BlockStatement{Statements: []ast.Statement{assign}}
	fn := ast.NewTestFunctionDecl("F", nil, types.INT)
	fn.Body = body
	return fn
}

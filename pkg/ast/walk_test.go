package ast_test

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

func TestInspect_VisitsEveryNode(t *testing.T) {
	left := ast.NewTestIdentifier("A", types.INT)
	right := ast.NewTestLiteral("1", types.INT)
	bin := ast.NewTestBinaryExpr(ast.OpAdd, left, right, types.INT)
	assign := ast.NewTestAssignment(ast.NewTestIdentifier("B", types.INT), bin)
	block := &ast.BlockStatement{Statements: []ast.Statement{assign}}

	var seen []ast.Node
	ast.Inspect(block, func(n ast.Node) bool {
		seen = append(seen, n)
		return true
	})

	if len(seen) != 6 {
		t.Fatalf("expected 6 nodes visited (block, assign, lhs, bin, left, right), got %d", len(seen))
	}
}

func TestInspect_PruneStopsDescent(t *testing.T) {
	left := ast.NewTestIdentifier("A", types.INT)
	right := ast.NewTestLiteral("1", types.INT)
	bin := ast.NewTestBinaryExpr(ast.OpAdd, left, right, types.INT)

	var seen []ast.Node
	ast.Inspect(bin, func(n ast.Node) bool {
		seen = append(seen, n)
		_, isBinary := n.(*ast.BinaryExpr)
		return !isBinary
	})

	if len(seen) != 1 {
		t.Fatalf("pruning at the root BinaryExpr should stop descent, got %d nodes visited", len(seen))
	}
}

func TestInspect_NilNodeIsNoOp(t *testing.T) {
	called := false
	ast.Inspect(nil, func(ast.Node) bool {
		called = true
		return true
	})
	if called {
		t.Error("Inspect(nil, ...) should never call the callback")
	}
}

func TestPosition_IsValidAndString(t *testing.T) {
	var zero ast.Position
	if zero.IsValid() {
		t.Error("zero Position should not be valid")
	}
	if got := zero.String(); got != "<unknown>" {
		t.Errorf("zero Position.String() = %q, want <unknown>", got)
	}

	p := ast.Position{Line: 3, Column: 7}
	if !p.IsValid() {
		t.Error("Position with Line/Column set should be valid")
	}
	if got := p.String(); got != "3:7" {
		t.Errorf("Position.String() = %q, want 3:7", got)
	}
}

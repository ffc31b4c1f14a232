package narrowing

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

func newFakePrevCtx(ctx *context, candidates []*types.Ref, prev ...*ast.ILInstruction) *context {
	return ctx.withFakePrev(&ast.FakePrevILInstruction{
		Candidates:        candidates,
		PrevILInstruction: prev,
	})
}

func TestNarrowILProducer_LD_CopiesDemandToOperand(t *testing.T) {
	p, ctx := newTestPass()
	operand := ast.NewTestIdentifier("X", types.INT, types.DINT)
	op := ast.NewTestILSimpleOperation(ast.ILOpLD, operand)
	node := ast.NewTestILInstruction(op, []*types.Ref{types.INT})
	node.SetDatatype(types.INT)

	p.narrowILSimpleOperation(ctx, node, op)

	if operand.Datatype() != types.INT {
		t.Errorf("LD should copy the demanded type to its operand, got %v", operand.Datatype())
	}
}

func TestNarrowILConsumer_ST_RequiresSingleCandidate(t *testing.T) {
	operand := ast.NewTestIdentifier("X", types.INT, types.DINT)
	op := ast.NewTestILSimpleOperation(ast.ILOpST, operand)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.INT})
	node := ast.NewTestILInstruction(op, []*types.Ref{types.INT, types.DINT}, predecessor)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.INT}, predecessor)
	p.narrowILSimpleOperation(ctx, node, op)

	// Two candidates on the node itself: spec says ST requires exactly one
	// candidate on the node to commit; here it has two, so it must not
	// commit.
	if node.Datatype() != nil {
		t.Errorf("ST with more than one node candidate must not commit, got %v", node.Datatype())
	}
}

func TestNarrowILConsumer_ST_SingleCandidateCommitsAndBroadcasts(t *testing.T) {
	operand := ast.NewTestIdentifier("X", types.INT)
	op := ast.NewTestILSimpleOperation(ast.ILOpST, operand)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.INT, types.DINT})
	node := ast.NewTestILInstruction(op, []*types.Ref{types.INT}, predecessor)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.INT}, predecessor)
	p.narrowILSimpleOperation(ctx, node, op)

	if node.Datatype() != types.INT {
		t.Errorf("ST with a single candidate should commit it, got %v", node.Datatype())
	}
	if operand.Datatype() != types.INT {
		t.Errorf("operand should be narrowed to the committed type, got %v", operand.Datatype())
	}
	if predecessor.Datatype() != types.INT {
		t.Errorf("predecessor should receive the broadcast, got %v", predecessor.Datatype())
	}
}

func TestNarrowILTransformingOperator_BroadcastsToOperandAndPrev(t *testing.T) {
	operand := ast.NewTestIdentifier("X", types.INT, types.DINT)
	op := ast.NewTestILSimpleOperation(ast.ILOpADD, operand)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.INT, types.DINT})
	node := ast.NewTestILInstruction(op, nil, predecessor)
	node.SetDatatype(types.INT)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.INT, types.DINT}, predecessor)
	p.narrowILSimpleOperation(ctx, node, op)

	if operand.Datatype() != types.INT {
		t.Errorf("operand should receive the node's demanded type, got %v", operand.Datatype())
	}
	if predecessor.Datatype() != types.INT {
		t.Errorf("predecessor should receive the same broadcast, got %v", predecessor.Datatype())
	}
}

func TestNarrowILConditionalFlowControl_NonBoolDemand_Fatal(t *testing.T) {
	op := ast.NewTestILSimpleOperation(ast.ILOpJMPC, nil)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.BOOL})
	node := ast.NewTestILInstruction(op, []*types.Ref{types.BOOL}, predecessor)
	node.SetDatatype(types.INT)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.BOOL}, predecessor)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a fatal internal error for a non-BOOL demand on JMPC")
		}
	}()
	p.narrowILSimpleOperation(ctx, node, op)
}

func TestNarrowILConditionalFlowControl_AmbiguousCandidates_Fatal(t *testing.T) {
	op := ast.NewTestILSimpleOperation(ast.ILOpJMPC, nil)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.BOOL})
	node := ast.NewTestILInstruction(op, []*types.Ref{types.BOOL, types.BYTE}, predecessor)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.BOOL}, predecessor)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a fatal internal error for ambiguous JMPC candidates")
		}
	}()
	p.narrowILSimpleOperation(ctx, node, op)
}

func TestNarrowILParenExpression_PropagatesToLastElementAndPrev(t *testing.T) {
	innerOperand := ast.NewTestIdentifier("Y", types.INT)
	innerOp := ast.NewTestILSimpleOperation(ast.ILOpLD, innerOperand)
	innerInstr := ast.NewTestILInstruction(innerOp, []*types.Ref{types.INT})

	exprNode := &ast.ILExpression{
		Operator: ast.ILOpAND,
		Inner:    &ast.SimpleInstrList{Elements: []*ast.ILInstruction{innerInstr}},
	}

	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.INT})
	outer := ast.NewTestILInstruction(exprNode, nil, predecessor)
	outer.SetDatatype(types.INT)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.INT}, predecessor)
	p.narrowILParenExpression(ctx, outer, exprNode)

	if predecessor.Datatype() != types.INT {
		t.Errorf("outer demand should broadcast to the outer predecessor, got %v", predecessor.Datatype())
	}
	if innerInstr.Datatype() != types.INT {
		t.Errorf("the sub-list's last element should receive the demand, got %v", innerInstr.Datatype())
	}
}

func TestNarrowOneILInstruction_MultiplePredecessorsWithoutLabel_Fatal(t *testing.T) {
	p1 := ast.NewTestILInstruction(nil, []*types.Ref{types.INT})
	p2 := ast.NewTestILInstruction(nil, []*types.Ref{types.INT})
	node := ast.NewTestILInstruction(nil, nil, p1, p2)
	node.Label = ""

	p, ctx := newTestPass()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a fatal internal error for an unlabeled node with multiple predecessors")
		}
	}()
	p.narrowOneILInstruction(ctx, node)
}

func TestIntersectCandidateSets(t *testing.T) {
	p1 := ast.NewTestILInstruction(nil, []*types.Ref{types.INT, types.DINT, types.REAL})
	p2 := ast.NewTestILInstruction(nil, []*types.Ref{types.DINT, types.REAL})

	got := intersectCandidateSets([]*ast.ILInstruction{p1, p2})
	if len(got) != 2 {
		t.Fatalf("expected 2 common candidates, got %d: %v", len(got), got)
	}
}

func TestNarrowImplicitILFBCall_InvalidInstance_ForwardsDemandUpstream(t *testing.T) {
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.BOOL})
	operand := ast.NewTestIdentifier("NOT_AN_FB")
	op := ast.NewTestILSimpleOperation(ast.ILOpCLK, operand)
	node := ast.NewTestILInstruction(op, nil, predecessor)
	node.SetDatatype(types.BOOL)

	p, ctx0 := newTestPass()
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.BOOL}, predecessor)
	// resolver returns nil for every instance name (default scoped resolver,
	// nothing Defined).
	p.narrowImplicitILFBCall(ctx, node, op)

	if predecessor.Datatype() != types.BOOL {
		t.Errorf("an unresolved FB instance should forward the outer demand upstream, got %v", predecessor.Datatype())
	}
}

func TestNarrowImplicitILFBCall_ValidInstance_RewritesAndReconciles(t *testing.T) {
	fbDecl := ast.NewTestFunctionBlockDecl("TON", []*ast.Parameter{
		ast.NewTestParameter("IN", ast.VarInput, types.BOOL),
	})

	resolver := NewScopedResolver()
	definer := resolver.(interface {
		Define(name string, fbDecl *ast.FunctionBlockDecl)
	})
	definer.Define("TIMER1", fbDecl)

	fbType := types.NewDerived("TON", nil)
	operand := ast.NewTestIdentifier("TIMER1", fbType)
	op := ast.NewTestILSimpleOperation(ast.ILOpIN, operand)
	predecessor := ast.NewTestILInstruction(nil, []*types.Ref{types.BOOL})
	node := ast.NewTestILInstruction(op, nil, predecessor)
	node.SetDatatype(types.BOOL)

	p := New()
	ctx0 := newContext(resolver)
	ctx := newFakePrevCtx(ctx0, []*types.Ref{types.BOOL}, predecessor)

	p.narrowImplicitILFBCall(ctx, node, op)

	if !types.IsTypeEqual(operand.Datatype(), fbType) {
		t.Errorf("operand should be narrowed to the resolved FB's derived type, got %v", operand.Datatype())
	}
	if predecessor.Datatype() != types.BOOL {
		t.Errorf("predecessor should receive the reconciled broadcast, got %v", predecessor.Datatype())
	}
}

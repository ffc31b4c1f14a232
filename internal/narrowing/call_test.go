package narrowing

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

func TestResolveGenericCall_ResolvesByChosenReturnType(t *testing.T) {
	intParam := ast.NewTestParameter("A", ast.VarInput, types.INT)
	intFn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{intParam}, types.INT)
	realParam := ast.NewTestParameter("A", ast.VarInput, types.REAL)
	realFn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{realParam}, types.REAL)

	arg := ast.NewTestIdentifier("X", types.INT, types.REAL)
	call := ast.NewTestCallExpr("FOO", []ast.Expression{arg}, []*types.Ref{types.INT, types.REAL}, []*ast.FunctionDecl{intFn, realFn})
	call.SetDatatype(types.REAL)

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if call.CalledFunction != realFn {
		t.Fatalf("expected resolution to the REAL-returning overload, got %v", call.CalledFunction)
	}
	if arg.Datatype() != types.REAL {
		t.Errorf("sole argument should be narrowed to the resolved overload's parameter type, got %v", arg.Datatype())
	}
}

func TestResolveGenericCall_SoleCandidateAcceptedRegardless(t *testing.T) {
	param := ast.NewTestParameter("A", ast.VarInput, types.INT)
	fn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{param}, types.INT)

	arg := ast.NewTestIdentifier("X", types.INT)
	call := ast.NewTestCallExpr("FOO", []ast.Expression{arg}, []*types.Ref{types.INT}, []*ast.FunctionDecl{fn})
	// No demanded return type committed at all.

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if call.CalledFunction != fn {
		t.Fatalf("the sole candidate should be accepted even without a matching demand, got %v", call.CalledFunction)
	}
}

func TestResolveGenericCall_NoMatchAndMultipleCandidates_LeavesUnresolved(t *testing.T) {
	p1 := ast.NewTestParameter("A", ast.VarInput, types.INT)
	fn1 := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{p1}, types.INT)
	p2 := ast.NewTestParameter("A", ast.VarInput, types.REAL)
	fn2 := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{p2}, types.REAL)

	arg := ast.NewTestIdentifier("X", types.INT, types.REAL)
	call := ast.NewTestCallExpr("FOO", []ast.Expression{arg}, []*types.Ref{types.INT, types.REAL}, []*ast.FunctionDecl{fn1, fn2})
	call.SetDatatype(types.DINT) // not among candidates

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if call.CalledFunction != nil {
		t.Errorf("expected no resolution when the demand matches no candidate and there is more than one, got %v", call.CalledFunction)
	}
}

func TestPropagateCallParams_NonFormal_SkipsENENO(t *testing.T) {
	en := ast.NewTestParameter("EN", ast.VarInput, types.BOOL)
	a := ast.NewTestParameter("A", ast.VarInput, types.INT)
	fn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{en, a}, types.INT)

	arg := ast.NewTestIdentifier("X", types.INT)
	call := ast.NewTestCallExpr("FOO", []ast.Expression{arg}, []*types.Ref{types.INT}, []*ast.FunctionDecl{fn})
	call.SetDatatype(types.INT)

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if arg.Datatype() != types.INT {
		t.Errorf("the single real argument should bind to A, skipping EN, got %v", arg.Datatype())
	}
}

func TestPropagateCallParams_Formal_UnknownNameStillRecurses(t *testing.T) {
	a := ast.NewTestParameter("A", ast.VarInput, types.INT)
	fn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{a}, types.INT)

	known := ast.NewTestIdentifier("X", types.INT)
	unknown := ast.NewTestIdentifier("Y", types.INT, types.REAL)
	call := ast.NewTestFormalCallExpr("FOO",
		[]ast.Param{{Name: "A", Value: known}, {Name: "NOPE", Value: unknown}},
		[]*types.Ref{types.INT}, []*ast.FunctionDecl{fn})
	call.SetDatatype(types.INT)

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if known.Datatype() != types.INT {
		t.Errorf("the known formal param should be narrowed, got %v", known.Datatype())
	}
	if unknown.Datatype() != nil {
		t.Errorf("an unmatched formal name must still recurse but leave the node undemanded, got %v", unknown.Datatype())
	}
}

func TestPropagateCallParams_ExtensibleCount(t *testing.T) {
	a := ast.NewTestParameter("IN1", ast.VarInput, types.INT)
	b := ast.NewTestParameter("IN2", ast.VarInput, types.INT)
	c := ast.NewTestParameter("IN3", ast.VarInput, types.INT)
	fn := ast.NewTestExtensibleFunctionDecl("ADD", []*ast.Parameter{a, b, c}, types.INT, 0)

	args := []ast.Expression{
		ast.NewTestIdentifier("X1", types.INT),
		ast.NewTestIdentifier("X2", types.INT),
		ast.NewTestIdentifier("X3", types.INT),
	}
	call := ast.NewTestCallExpr("ADD", args, []*types.Ref{types.INT}, []*ast.FunctionDecl{fn})
	call.SetDatatype(types.INT)

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if call.ExtensibleParamCount != 3 {
		t.Errorf("expected ExtensibleParamCount = 3 for three bound extensible args, got %d", call.ExtensibleParamCount)
	}
}

func TestPropagateCallParams_NoExtensibleParams_CountIsMinusOne(t *testing.T) {
	a := ast.NewTestParameter("A", ast.VarInput, types.INT)
	fn := ast.NewTestFunctionDecl("FOO", []*ast.Parameter{a}, types.INT)

	arg := ast.NewTestIdentifier("X", types.INT)
	call := ast.NewTestCallExpr("FOO", []ast.Expression{arg}, []*types.Ref{types.INT}, []*ast.FunctionDecl{fn})
	call.SetDatatype(types.INT)

	p, ctx := newTestPass()
	p.narrowCallExpr(ctx, call)

	if call.ExtensibleParamCount != -1 {
		t.Errorf("expected ExtensibleParamCount = -1 when the declaration has no extensible tail, got %d", call.ExtensibleParamCount)
	}
}

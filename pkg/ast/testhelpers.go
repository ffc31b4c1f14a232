package ast

import "github.com/plctoolchain/narrow/pkg/types"

// This file provides test helper constructors for building small AST
// fixtures by hand, mirroring the teacher's internal/ast/test_helpers.go
// pattern: reduce struct-literal boilerplate in narrowing unit tests that
// don't go through internal/fixture's YAML loader.

// NewTestIdentifier builds an Identifier with the given candidate set.
func NewTestIdentifier(name string, candidates ...*types.Ref) *Identifier {
	return &Identifier{
		TypedExpr: TypedExpr{Candidates: candidates},
		Name:      name,
	}
}

// NewTestLiteral builds a single-candidate Literal.
func NewTestLiteral(raw string, t *types.Ref) *Literal {
	return NewLiteral(raw, t)
}

// NewTestBinaryExpr builds a BinaryExpr with the given candidate set. No
// datatype is set; tests that need a top-down demand call SetDatatype.
func NewTestBinaryExpr(op BinaryOp, left, right Expression, candidates ...*types.Ref) *BinaryExpr {
	return &BinaryExpr{
		TypedExpr: TypedExpr{Candidates: candidates},
		Op:        op,
		Left:      left,
		Right:     right,
	}
}

// NewTestUnaryExpr builds a UnaryExpr.
func NewTestUnaryExpr(op UnaryOp, operand Expression, candidates ...*types.Ref) *UnaryExpr {
	return &UnaryExpr{
		TypedExpr: TypedExpr{Candidates: candidates},
		Op:        op,
		Operand:   operand,
	}
}

// NewTestAssignment builds an AssignmentStatement.
func NewTestAssignment(lhs, rhs Expression) *AssignmentStatement {
	return &AssignmentStatement{LHS: lhs, RHS: rhs}
}

// NewTestFunctionDecl builds a FunctionDecl with no extensible tail.
func NewTestFunctionDecl(name string, params []*Parameter, ret *types.Ref) *FunctionDecl {
	return &FunctionDecl{
		Name:                      name,
		ReturnType:                ret,
		Params:                    params,
		FirstExtensibleParamIndex: -1,
	}
}

// NewTestExtensibleFunctionDecl builds a FunctionDecl modeling a standard
// extensible function (e.g. ADD) whose variadic tail starts at index
// firstExtensible.
func NewTestExtensibleFunctionDecl(name string, params []*Parameter, ret *types.Ref, firstExtensible int) *FunctionDecl {
	d := NewTestFunctionDecl(name, params, ret)
	d.FirstExtensibleParamIndex = firstExtensible
	return d
}

// NewTestParameter builds a Parameter of the given kind.
func NewTestParameter(name string, kind VariableKind, t *types.Ref) *Parameter {
	return &Parameter{Name: name, Kind: kind, Datatype: t}
}

// NewTestFunctionBlockDecl builds a FunctionBlockDecl.
func NewTestFunctionBlockDecl(name string, params []*Parameter) *FunctionBlockDecl {
	return &FunctionBlockDecl{Name: name, Params: params, FirstExtensibleParamIndex: -1}
}

// NewTestCallExpr builds a non-formal CallExpr with parallel candidate
// datatypes/declarations already populated (as the prior pass would leave
// them), ready for the Call Narrower to resolve.
func NewTestCallExpr(callee string, args []Expression, candidates []*types.Ref, decls []*FunctionDecl) *CallExpr {
	return &CallExpr{
		TypedExpr:            TypedExpr{Candidates: candidates},
		Callee:               callee,
		NonFormal:            args,
		CandidateFuncs:       decls,
		ExtensibleParamCount: -1,
	}
}

// NewTestFormalCallExpr builds a formal (named-parameter) CallExpr.
func NewTestFormalCallExpr(callee string, params []Param, candidates []*types.Ref, decls []*FunctionDecl) *CallExpr {
	return &CallExpr{
		TypedExpr:            TypedExpr{Candidates: candidates},
		Callee:               callee,
		Formal:               params,
		CandidateFuncs:       decls,
		ExtensibleParamCount: -1,
	}
}

// NewTestILInstruction builds a labeled-or-not IL instruction with the
// given predecessor back-edges and candidate set.
func NewTestILInstruction(body ILBody, candidates []*types.Ref, prev ...*ILInstruction) *ILInstruction {
	return &ILInstruction{Body: body, Candidates: candidates, PrevILInstruction: prev}
}

// NewTestILSimpleOperation builds an ILSimpleOperation.
func NewTestILSimpleOperation(op ILOperator, operand Expression) *ILSimpleOperation {
	return &ILSimpleOperation{Operator: op, Operand: operand}
}

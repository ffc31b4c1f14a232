package fixture

import (
	"fmt"

	"github.com/plctoolchain/narrow/pkg/ast"
)

func (b *builder) buildExpr(v any) (ast.Expression, error) {
	m, ok := v.(raw0)
	if !ok {
		return nil, fmt.Errorf("fixture: expression is not a mapping: %v", v)
	}

	switch {
	case m["ident"] != nil:
		candidates, err := b.resolveTypes(asList(m["candidates"]))
		if err != nil {
			return nil, err
		}
		name, _ := m["ident"].(string)
		return ast.NewTestIdentifier(name, candidates...), nil

	case m["lit"] != nil:
		raw, _ := m["lit"].(string)
		t, err := b.resolveType(stringField(m, "type"))
		if err != nil {
			return nil, err
		}
		return ast.NewTestLiteral(raw, t), nil

	case m["binary"] != nil:
		return b.buildBinary(m["binary"].(raw0))

	case m["unary"] != nil:
		return b.buildUnary(m["unary"].(raw0))

	case m["group"] != nil:
		inner, err := b.buildExpr(m["group"])
		if err != nil {
			return nil, err
		}
		return &ast.GroupedExpr{Inner: inner}, nil

	case m["subscript"] != nil:
		return b.buildSubscript(m["subscript"].(raw0))

	case m["call"] != nil:
		return b.buildCall(m["call"].(raw0))

	default:
		return nil, fmt.Errorf("fixture: unrecognized expression keys %v", keysOf(m))
	}
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

var binaryOps = map[string]ast.BinaryOp{
	"AND": ast.OpAnd, "OR": ast.OpOr, "XOR": ast.OpXor,
	"EQ": ast.OpEq, "NE": ast.OpNe,
	"GT": ast.OpGt, "GE": ast.OpGe, "LT": ast.OpLt, "LE": ast.OpLe,
	"ADD": ast.OpAdd, "SUB": ast.OpSub, "MUL": ast.OpMul, "DIV": ast.OpDiv, "MOD": ast.OpMod,
	"POWER": ast.OpPower,
}

var unaryOps = map[string]ast.UnaryOp{
	"NEG": ast.OpNeg,
	"NOT": ast.OpNot,
}

func (b *builder) buildBinary(m raw0) (*ast.BinaryExpr, error) {
	op, ok := binaryOps[stringField(m, "op")]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown binary op %q", stringField(m, "op"))
	}
	left, err := b.buildExpr(m["left"])
	if err != nil {
		return nil, err
	}
	right, err := b.buildExpr(m["right"])
	if err != nil {
		return nil, err
	}
	candidates, err := b.resolveTypes(asList(m["candidates"]))
	if err != nil {
		return nil, err
	}
	return ast.NewTestBinaryExpr(op, left, right, candidates...), nil
}

func (b *builder) buildUnary(m raw0) (*ast.UnaryExpr, error) {
	op, ok := unaryOps[stringField(m, "op")]
	if !ok {
		return nil, fmt.Errorf("fixture: unknown unary op %q", stringField(m, "op"))
	}
	operand, err := b.buildExpr(m["operand"])
	if err != nil {
		return nil, err
	}
	candidates, err := b.resolveTypes(asList(m["candidates"]))
	if err != nil {
		return nil, err
	}
	return ast.NewTestUnaryExpr(op, operand, candidates...), nil
}

func (b *builder) buildSubscript(m raw0) (*ast.SubscriptExpr, error) {
	arr, err := b.buildExpr(m["array"])
	if err != nil {
		return nil, err
	}
	var indices []ast.Expression
	for _, ir := range asList(m["indices"]) {
		idx, err := b.buildExpr(ir)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	candidates, err := b.resolveTypes(asList(m["candidates"]))
	if err != nil {
		return nil, err
	}
	return &ast.SubscriptExpr{TypedExpr: ast.TypedExpr{Candidates: candidates}, Array: arr, Indices: indices}, nil
}

// buildCall resolves `funcs:` (a list of previously-declared function
// names) into the CandidateFuncs slice the Call Narrower consumes, so
// fixtures can drive overload resolution without hand-writing Go.
func (b *builder) buildCall(m raw0) (*ast.CallExpr, error) {
	callee := stringField(m, "callee")
	candidates, err := b.resolveTypes(asList(m["candidates"]))
	if err != nil {
		return nil, err
	}

	var decls []*ast.FunctionDecl
	for _, fn := range asList(m["funcs"]) {
		name, _ := fn.(string)
		decl, ok := b.funcs[name]
		if !ok {
			return nil, fmt.Errorf("fixture: call %q references unknown function %q", callee, name)
		}
		decls = append(decls, decl)
	}

	if argsRaw, ok := m["args"].([]any); ok {
		var args []ast.Expression
		for _, ar := range argsRaw {
			a, err := b.buildExpr(ar)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
		}
		return ast.NewTestCallExpr(callee, args, candidates, decls), nil
	}

	paramsRaw, _ := m["params"].([]any)
	var params []ast.Param
	for _, pr := range paramsRaw {
		pm, _ := pr.(raw0)
		val, err := b.buildExpr(pm["value"])
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: stringField(pm, "name"), Value: val})
	}
	return ast.NewTestFormalCallExpr(callee, params, candidates, decls), nil
}

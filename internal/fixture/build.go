package fixture

import (
	"fmt"

	"github.com/plctoolchain/narrow/pkg/ast"
)

// The fixture format covers the ST expression/statement surface only; it
// has no IL statement form. IL (simple operations, parenthesized sub-lists,
// non-formal/formal function calls, and implicit-FB-call rewriting) is
// exercised directly in internal/narrowing's own _test.go files via
// pkg/ast's NewTest* helpers instead: its shape
// (clone-on-descent, saved/restored fake-prev scoping) is awkward to express
// declaratively and is better pinned down with Go table-driven cases than a
// YAML schema that would just reinvent Go struct literals with worse types.

func (b *builder) buildParams(raw []any) ([]*ast.Parameter, int, error) {
	var params []*ast.Parameter
	firstExt := -1
	for i, item := range raw {
		m, ok := item.(raw0)
		if !ok {
			return nil, -1, fmt.Errorf("fixture: param %d is not a mapping", i)
		}
		name, _ := m["name"].(string)
		typeName, _ := m["type"].(string)
		t, err := b.resolveType(typeName)
		if err != nil {
			return nil, -1, err
		}
		kind := parseVarKind(stringField(m, "kind"))
		p := &ast.Parameter{Name: name, Kind: kind, Datatype: t}
		if ext, _ := m["extensible"].(bool); ext {
			p.Extensible = true
			if firstExt < 0 {
				firstExt = i
			}
		}
		params = append(params, p)
	}
	return params, firstExt, nil
}

type raw0 = map[string]any

func stringField(m raw0, key string) string {
	s, _ := m[key].(string)
	return s
}

func parseVarKind(s string) ast.VariableKind {
	switch s {
	case "output":
		return ast.VarOutput
	case "inout":
		return ast.VarInOut
	case "local":
		return ast.VarLocal
	case "external":
		return ast.VarExternal
	case "global":
		return ast.VarGlobal
	default:
		return ast.VarInput
	}
}

func (b *builder) buildFunctionDecl(m raw) (*ast.FunctionDecl, error) {
	name := stringField(m, "name")
	ret, err := b.resolveType(stringField(m, "return"))
	if err != nil {
		return nil, err
	}
	paramsRaw, _ := m["params"].([]any)
	params, firstExt, err := b.buildParams(paramsRaw)
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(m["body"])
	if err != nil {
		return nil, err
	}
	decl := &ast.FunctionDecl{Name: name, ReturnType: ret, Params: params, FirstExtensibleParamIndex: firstExt, Body: body}
	b.funcs[name] = decl
	return decl, nil
}

func (b *builder) buildFunctionBlockDecl(m raw) (*ast.FunctionBlockDecl, error) {
	name := stringField(m, "name")
	paramsRaw, _ := m["params"].([]any)
	params, firstExt, err := b.buildParams(paramsRaw)
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(m["body"])
	if err != nil {
		return nil, err
	}
	decl := &ast.FunctionBlockDecl{Name: name, Params: params, FirstExtensibleParamIndex: firstExt, Body: body}
	b.fbs[name] = decl
	return decl, nil
}

func (b *builder) buildProgramDecl(m raw) (*ast.ProgramDecl, error) {
	name := stringField(m, "name")
	paramsRaw, _ := m["params"].([]any)
	params, _, err := b.buildParams(paramsRaw)
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(m["body"])
	if err != nil {
		return nil, err
	}
	return &ast.ProgramDecl{Name: name, Params: params, Body: body}, nil
}

func (b *builder) buildBlock(v any) (*ast.BlockStatement, error) {
	items, _ := v.([]any)
	stmts := make([]ast.Statement, 0, len(items))
	for i, item := range items {
		m, ok := item.(raw0)
		if !ok {
			return nil, fmt.Errorf("fixture: statement %d is not a mapping", i)
		}
		s, err := b.buildStatement(m)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &ast.BlockStatement{Statements: stmts}, nil
}

func (b *builder) buildStatement(m raw0) (ast.Statement, error) {
	switch {
	case m["assign"] != nil:
		a, _ := m["assign"].(raw0)
		lhs, err := b.buildExpr(a["lhs"])
		if err != nil {
			return nil, err
		}
		rhs, err := b.buildExpr(a["rhs"])
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentStatement{LHS: lhs, RHS: rhs}, nil

	case m["if"] != nil:
		return b.buildIf(m["if"].(raw0))

	case m["while"] != nil:
		w := m["while"].(raw0)
		cond, err := b.buildExpr(w["cond"])
		if err != nil {
			return nil, err
		}
		body, err := b.buildBlock(w["body"])
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Condition: cond, Body: body}, nil

	case m["repeat"] != nil:
		r := m["repeat"].(raw0)
		cond, err := b.buildExpr(r["cond"])
		if err != nil {
			return nil, err
		}
		body, err := b.buildBlock(r["body"])
		if err != nil {
			return nil, err
		}
		return &ast.RepeatStatement{Condition: cond, Body: body}, nil

	case m["for"] != nil:
		return b.buildFor(m["for"].(raw0))

	case m["case"] != nil:
		return b.buildCase(m["case"].(raw0))

	default:
		return nil, fmt.Errorf("fixture: unrecognized statement keys %v", keysOf(m))
	}
}

func (b *builder) buildIf(m raw0) (*ast.IfStatement, error) {
	cond, err := b.buildExpr(m["cond"])
	if err != nil {
		return nil, err
	}
	then, err := b.buildBlock(m["then"])
	if err != nil {
		return nil, err
	}
	s := &ast.IfStatement{Condition: cond, Then: then}

	if elsifsRaw, ok := m["elsifs"].([]any); ok {
		for _, er := range elsifsRaw {
			em, _ := er.(raw0)
			econd, err := b.buildExpr(em["cond"])
			if err != nil {
				return nil, err
			}
			ebody, err := b.buildBlock(em["body"])
			if err != nil {
				return nil, err
			}
			s.Elsifs = append(s.Elsifs, ast.ElsifBranch{Condition: econd, Body: ebody})
		}
	}
	if m["else"] != nil {
		elseBody, err := b.buildBlock(m["else"])
		if err != nil {
			return nil, err
		}
		s.Else = elseBody
	}
	return s, nil
}

func (b *builder) buildFor(m raw0) (*ast.ForStatement, error) {
	ctrlRaw, _ := m["control"].(raw0)
	ctrlExpr, err := b.buildExpr(ctrlRaw)
	if err != nil {
		return nil, err
	}
	ctrl, ok := ctrlExpr.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("fixture: FOR control must be an ident node")
	}
	begin, err := b.buildExpr(m["begin"])
	if err != nil {
		return nil, err
	}
	end, err := b.buildExpr(m["end"])
	if err != nil {
		return nil, err
	}
	var step ast.Expression
	if m["step"] != nil {
		step, err = b.buildExpr(m["step"])
		if err != nil {
			return nil, err
		}
	}
	body, err := b.buildBlock(m["body"])
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Control: ctrl, Begin: begin, End: end, Step: step, Body: body}, nil
}

func (b *builder) buildCase(m raw0) (*ast.CaseStatement, error) {
	sel, err := b.buildExpr(m["selector"])
	if err != nil {
		return nil, err
	}
	s := &ast.CaseStatement{Selector: sel}

	elementsRaw, _ := m["elements"].([]any)
	for _, er := range elementsRaw {
		em, _ := er.(raw0)
		labelsRaw, _ := em["labels"].([]any)
		var labels []ast.Expression
		for _, lr := range labelsRaw {
			lbl, err := b.buildExpr(lr)
			if err != nil {
				return nil, err
			}
			labels = append(labels, lbl)
		}
		body, err := b.buildBlock(em["body"])
		if err != nil {
			return nil, err
		}
		s.Elements = append(s.Elements, ast.CaseElement{Labels: labels, Body: body})
	}
	if m["else"] != nil {
		elseBody, err := b.buildBlock(m["else"])
		if err != nil {
			return nil, err
		}
		s.Else = elseBody
	}
	return s, nil
}

func keysOf(m raw0) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

package diagnostics

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// Annotation is one node's resolved-datatype record, in a shape the
// `explain` CLI subcommand serializes to JSON and queries/patches with
// gjson/sjson.
type Annotation struct {
	Kind    string `json:"kind"`
	Token   string `json:"token"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Chosen  string `json:"chosen"`
	Invalid bool   `json:"invalid"`
}

// Dump walks a narrowed program and records every node that carries a
// resolved (or still-invalid) datatype, in source order.
func Dump(program *ast.Program) []Annotation {
	var out []Annotation
	ast.Inspect(program, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if expr, ok := n.(ast.Expression); ok {
			out = append(out, annotationOf(n, expr.Datatype()))
		}
		if a, ok := n.(*ast.AssignmentStatement); ok {
			out = append(out, annotationOf(n, a.Chosen))
		}
		if i, ok := n.(*ast.ILInstruction); ok {
			out = append(out, annotationOf(n, i.Chosen))
		}
		return true
	})
	return out
}

func annotationOf(n ast.Node, chosen *types.Ref) Annotation {
	pos := n.Pos()
	a := Annotation{Kind: kindOf(n), Token: n.TokenLiteral(), Line: pos.Line, Column: pos.Column}
	switch {
	case chosen == nil:
		a.Chosen = ""
	case types.IsInvalid(chosen):
		a.Chosen = ""
		a.Invalid = true
	default:
		a.Chosen = chosen.Name
	}
	return a
}

func kindOf(n ast.Node) string {
	switch n.(type) {
	case *ast.Identifier:
		return "ident"
	case *ast.Literal:
		return "literal"
	case *ast.BinaryExpr:
		return "binary"
	case *ast.UnaryExpr:
		return "unary"
	case *ast.GroupedExpr:
		return "group"
	case *ast.SubscriptExpr:
		return "subscript"
	case *ast.CallExpr:
		return "call"
	case *ast.AssignmentStatement:
		return "assign"
	case *ast.ILInstruction:
		return "il_instruction"
	default:
		return "node"
	}
}

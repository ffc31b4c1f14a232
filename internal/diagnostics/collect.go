// Package diagnostics is the downstream observer spec.md places out of
// scope for the narrowing pass itself ("a separate diagnostic pass
// observes the invalid_type_name sentinel and reports it"): it walks an
// already-narrowed tree, collects every node left marked invalid, and
// renders them the way the teacher's internal/errors.CompilerError does —
// source line plus caret. matiec's own equivalent, print_datatypes_error_c,
// is referenced but not included in the retrieval pack; this package is
// the feature it would otherwise leave unimplemented.
package diagnostics

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// Finding is one invalid-datatype marker found in a narrowed tree.
type Finding struct {
	Node   ast.Node
	Reason string
}

// Collect walks program and returns one Finding per node whose resolved
// datatype is types.Invalid. Expression nodes are checked via Datatype();
// AssignmentStatement and ILInstruction are checked via their own Chosen
// field since they are not themselves Expressions.
func Collect(program *ast.Program) []Finding {
	var findings []Finding
	ast.Inspect(program, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if expr, ok := n.(ast.Expression); ok {
			if types.IsInvalid(expr.Datatype()) {
				findings = append(findings, Finding{Node: n, Reason: invalidReason(n)})
			}
		}
		switch s := n.(type) {
		case *ast.AssignmentStatement:
			if types.IsInvalid(s.Chosen) {
				findings = append(findings, Finding{Node: n, Reason: "assignment operands have no common datatype"})
			}
		case *ast.ILInstruction:
			if types.IsInvalid(s.Chosen) {
				findings = append(findings, Finding{Node: n, Reason: invalidReason(n)})
			}
		}
		return true
	})
	return findings
}

func invalidReason(n ast.Node) string {
	switch n.(type) {
	case *ast.CallExpr:
		return "no matching function/function-block overload for this call"
	case *ast.BinaryExpr:
		return "operands have no common datatype for this operator"
	case *ast.SubscriptExpr:
		return "array index has no compatible datatype"
	default:
		return "no compatible datatype could be determined for " + n.TokenLiteral()
	}
}

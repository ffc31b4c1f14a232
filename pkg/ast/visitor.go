package ast

// Visitor is implemented by callers of Walk. Visit is called for every node
// before its children; if it returns nil, the children are skipped.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses node's children depth-first in source order, calling
// v.Visit(node) before descending and v.Visit(nil) after the children of a
// node whose Visit returned non-nil. This is a debugging/inspection helper
// only — the narrowing pass itself dispatches via type switch (spec.md §9's
// "tagged variants over inheritance" note), not this visitor pattern.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, u := range n.Units {
			Walk(v, u)
		}
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Operand)
	case *GroupedExpr:
		Walk(v, n.Inner)
	case *SubscriptExpr:
		Walk(v, n.Array)
		for _, idx := range n.Indices {
			Walk(v, idx)
		}
	case *CallExpr:
		for _, a := range n.NonFormal {
			Walk(v, a)
		}
		for _, p := range n.Formal {
			Walk(v, p.Value)
		}
	case *AssignmentStatement:
		Walk(v, n.LHS)
		Walk(v, n.RHS)
	case *BlockStatement:
		for _, s := range n.Statements {
			Walk(v, s)
		}
	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Then)
		for _, e := range n.Elsifs {
			Walk(v, e.Condition)
			Walk(v, e.Body)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *RepeatStatement:
		Walk(v, n.Body)
		Walk(v, n.Condition)
	case *ForStatement:
		Walk(v, n.Control)
		Walk(v, n.Begin)
		Walk(v, n.End)
		if n.Step != nil {
			Walk(v, n.Step)
		}
		Walk(v, n.Body)
	case *CaseStatement:
		Walk(v, n.Selector)
		for _, el := range n.Elements {
			for _, lbl := range el.Labels {
				Walk(v, lbl)
			}
			Walk(v, el.Body)
		}
		if n.Else != nil {
			Walk(v, n.Else)
		}
	case *FBInvocationStatement:
		for _, a := range n.NonFormal {
			Walk(v, a)
		}
		for _, p := range n.Formal {
			Walk(v, p.Value)
		}
	case *FunctionDecl:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *FunctionBlockDecl:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ProgramDecl:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ILInstructionList:
		for _, i := range n.Elements {
			Walk(v, i)
		}
	case *ILInstruction:
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ILSimpleOperation:
		if n.Operand != nil {
			Walk(v, n.Operand)
		}
	case *ILExpression:
		Walk(v, n.Inner)
	case *ILFunctionCall:
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *ILFormalFunctCall:
		for _, p := range n.Params {
			Walk(v, p.Value)
		}
	case *ILFBCall:
		for _, p := range n.Params {
			Walk(v, p.Value)
		}
	case *SimpleInstrList:
		for _, i := range n.Elements {
			Walk(v, i)
		}
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses node's tree calling f(node) for every node in source
// order; f returning false prunes that subtree.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

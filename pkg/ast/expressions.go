package ast

import "github.com/plctoolchain/narrow/pkg/types"

// BinaryOp enumerates the ST binary operators the Expression Narrower
// (spec §4.2) gives distinct treatment.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpXor
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPower
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "MOD"
	case OpPower:
		return "**"
	}
	return "?"
}

// UnaryOp enumerates the ST unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "NOT"
	}
	return "-"
}

// Identifier is a variable/FB-instance/constant reference.
type Identifier struct {
	TypedExpr
	Name string
}

func (i *Identifier) TokenLiteral() string { return "ident" }
func (i *Identifier) String() string       { return i.Name }

// Literal is any elementary-type literal (integer, real, string, time,
// date, boolean). Its candidate set holds its single, fixed type.
type Literal struct {
	TypedExpr
	Raw string
}

func (l *Literal) TokenLiteral() string { return "literal" }
func (l *Literal) String() string       { return l.Raw }

// NewLiteral builds a Literal whose candidate set is the single type t.
func NewLiteral(raw string, t *types.Ref) *Literal {
	return &Literal{TypedExpr: TypedExpr{Candidates: []*types.Ref{t}}, Raw: raw}
}

// BinaryExpr is `Left Op Right`.
type BinaryExpr struct {
	TypedExpr
	Op          BinaryOp
	Left, Right Expression
}

func (b *BinaryExpr) TokenLiteral() string { return b.Op.String() }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryExpr is `Op Operand` (NEG, NOT) or `Operand ** Exponent` handled via
// BinaryExpr with OpPower — POWER is binary, not unary, per spec §4.2.
type UnaryExpr struct {
	TypedExpr
	Op      UnaryOp
	Operand Expression
}

func (u *UnaryExpr) TokenLiteral() string { return u.Op.String() }
func (u *UnaryExpr) String() string       { return "(" + u.Op.String() + " " + u.Operand.String() + ")" }

// GroupedExpr is a parenthesized ST expression; narrowing transparently
// forwards the group's own demanded type to Inner.
type GroupedExpr struct {
	TypedExpr
	Inner Expression
}

func (g *GroupedExpr) TokenLiteral() string { return "(...)" }
func (g *GroupedExpr) String() string       { return "(" + g.Inner.String() + ")" }

// Param is one actual argument of a call. Name is set for formal
// (named, `X := e`) style and empty for non-formal (positional) style.
type Param struct {
	Name  string
	Value Expression
}

// CallExpr is a function or function-block invocation in ST, e.g.
// `ADD(a, b)` or `fb(IN := x, PT := t#100ms)`.
//
// Exactly one of NonFormal/Formal is populated per IEC 61131-3 grammar
// (a single call site does not mix styles).
type CallExpr struct {
	TypedExpr
	Callee    string
	NonFormal []Expression
	Formal    []Param

	// CandidateFuncs runs parallel to Candidates: CandidateFuncs[i] is the
	// declaration whose return type is Candidates[i].
	CandidateFuncs []*FunctionDecl

	// Outputs of the Call Narrower (spec §4.3). The Call Narrower sets
	// CalledFunction and ExtensibleParamCount; it never sets CalledFB.
	CalledFunction        *FunctionDecl
	CalledFB              *FunctionBlockDecl
	ExtensibleParamCount  int
}

func (c *CallExpr) TokenLiteral() string { return "call" }
func (c *CallExpr) String() string       { return c.Callee + "(...)" }

// IsFormal reports whether this call uses named-parameter style.
func (c *CallExpr) IsFormal() bool { return c.Formal != nil }

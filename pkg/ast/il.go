package ast

import "github.com/plctoolchain/narrow/pkg/types"

// ILOperator enumerates every Instruction List mnemonic the IL Dataflow
// Core (spec §4.4/§4.5) gives distinct treatment, including the comparison
// and negated-logical forms (GT/GE/EQ/LT/LE/NE, ANDN/ORN/XORN) supplemental
// to spec.md's own listing but present in matiec's visitor table.
type ILOperator int

const (
	ILOpLD ILOperator = iota
	ILOpLDN
	ILOpST
	ILOpSTN
	ILOpNOT

	// Generic transforming/conservative operators.
	ILOpS
	ILOpR

	// Implicit FB-call operators, rewritten per spec §4.5.
	ILOpS1
	ILOpR1
	ILOpCLK
	ILOpCU
	ILOpCD
	ILOpPV
	ILOpIN
	ILOpPT

	ILOpAND
	ILOpOR
	ILOpXOR
	ILOpANDN
	ILOpORN
	ILOpXORN

	ILOpADD
	ILOpSUB
	ILOpMUL
	ILOpDIV
	ILOpMOD

	ILOpGT
	ILOpGE
	ILOpEQ
	ILOpLT
	ILOpLE
	ILOpNE

	ILOpCAL

	ILOpCALC
	ILOpCALCN
	ILOpRETC
	ILOpRETCN
	ILOpJMPC
	ILOpJMPCN

	ILOpRET
	ILOpJMP
)

// implicitFBParamName returns the named FB input an implicit FB-call
// operator assigns the current value to, per spec §4.5.
func (op ILOperator) implicitFBParamName() (name string, ok bool) {
	switch op {
	case ILOpS1:
		return "S1", true
	case ILOpR1:
		return "R1", true
	case ILOpCLK:
		return "CLK", true
	case ILOpCU:
		return "CU", true
	case ILOpCD:
		return "CD", true
	case ILOpPV:
		return "PV", true
	case ILOpIN:
		return "IN", true
	case ILOpPT:
		return "PT", true
	}
	return "", false
}

// IsImplicitFBCall reports whether op is one of the implicit-FB-call forms
// the narrower rewrites into a synthetic il_fb_call (spec §4.5).
func (op ILOperator) IsImplicitFBCall() bool {
	_, ok := op.implicitFBParamName()
	return ok
}

// ImplicitFBParamName returns the named FB input for an implicit-FB-call
// operator, panicking if op is not one (callers must check IsImplicitFBCall
// first; this mirrors the internal-error-on-misuse style of this pass).
func (op ILOperator) ImplicitFBParamName() string {
	name, ok := op.implicitFBParamName()
	if !ok {
		panic("ast: ImplicitFBParamName called on non-implicit-FB operator")
	}
	return name
}

func (op ILOperator) String() string {
	names := map[ILOperator]string{
		ILOpLD: "LD", ILOpLDN: "LDN", ILOpST: "ST", ILOpSTN: "STN", ILOpNOT: "NOT",
		ILOpS: "S", ILOpR: "R",
		ILOpS1: "S1", ILOpR1: "R1", ILOpCLK: "CLK", ILOpCU: "CU", ILOpCD: "CD",
		ILOpPV: "PV", ILOpIN: "IN", ILOpPT: "PT",
		ILOpAND: "AND", ILOpOR: "OR", ILOpXOR: "XOR",
		ILOpANDN: "ANDN", ILOpORN: "ORN", ILOpXORN: "XORN",
		ILOpADD: "ADD", ILOpSUB: "SUB", ILOpMUL: "MUL", ILOpDIV: "DIV", ILOpMOD: "MOD",
		ILOpGT: "GT", ILOpGE: "GE", ILOpEQ: "EQ", ILOpLT: "LT", ILOpLE: "LE", ILOpNE: "NE",
		ILOpCAL: "CAL",
		ILOpCALC: "CALC", ILOpCALCN: "CALCN", ILOpRETC: "RETC", ILOpRETCN: "RETCN",
		ILOpJMPC: "JMPC", ILOpJMPCN: "JMPCN",
		ILOpRET: "RET", ILOpJMP: "JMP",
	}
	if s, ok := names[op]; ok {
		return s
	}
	return "?"
}

// ILBody is the payload of one IL instruction: a simple operation, a
// parenthesized sub-expression, or a call form.
type ILBody interface {
	Node
	ilBodyNode()
}

// ILSimpleOperation is `Operator Operand` (LD, ST, AND, CLK, S, ... plus
// the nullary RET/JMP forms where Operand is nil).
type ILSimpleOperation struct {
	BaseNode
	Operator ILOperator
	Operand  Expression // nil for RET/JMP/unconditional forms
}

func (o *ILSimpleOperation) ilBodyNode()          {}
func (o *ILSimpleOperation) TokenLiteral() string { return o.Operator.String() }
func (o *ILSimpleOperation) String() string       { return o.Operator.String() + " ..." }

// ILExpression is a parenthesized IL sub-list, e.g. `AND ( LD x; OR y; )`.
// Per spec §4.4, the outer operator's demanded input type is pushed into
// Inner's last element, and Inner is then traversed backward as a normal
// list with its own saved/restored fake-prev scope.
type ILExpression struct {
	BaseNode
	Operator ILOperator
	Inner    *SimpleInstrList
}

func (e *ILExpression) ilBodyNode()          {}
func (e *ILExpression) TokenLiteral() string { return e.Operator.String() + "(...)" }
func (e *ILExpression) String() string       { return e.Operator.String() + " ( ... )" }

// ILFunctionCall is a non-formal (positional) IL function call whose first
// implicit argument is the current value, e.g. `LIMIT(lo, hi)`.
type ILFunctionCall struct {
	BaseNode
	Callee    string
	Args      []Expression
	Candidates     []*types.Ref
	Chosen         *types.Ref
	CandidateFuncs []*FunctionDecl
	CalledFunction *FunctionDecl
	ExtensibleParamCount int
}

func (c *ILFunctionCall) ilBodyNode()          {}
func (c *ILFunctionCall) TokenLiteral() string { return "call" }
func (c *ILFunctionCall) String() string       { return c.Callee + "(...)" }

// ILFormalFunctCall is a named-parameter IL function call.
type ILFormalFunctCall struct {
	BaseNode
	Callee string
	Params []Param
	Candidates     []*types.Ref
	Chosen         *types.Ref
	CandidateFuncs []*FunctionDecl
	CalledFunction *FunctionDecl
	ExtensibleParamCount int
}

func (c *ILFormalFunctCall) ilBodyNode()          {}
func (c *ILFormalFunctCall) TokenLiteral() string { return "call" }
func (c *ILFormalFunctCall) String() string       { return c.Callee + "(...)" }

// ILParamAssignment is one `Name := Value` binding inside an il_fb_call's
// formal parameter list.
type ILParamAssignment struct {
	BaseNode
	Name  string
	Value Expression
}

// ILFBCall is `CAL instance(IN := x, PT := t);` — an explicit FB
// invocation, or the synthetic node the implicit-FB rewriting in spec §4.5
// builds on the fly.
type ILFBCall struct {
	BaseNode
	Instance string
	Params   []ILParamAssignment

	CalledFB             *FunctionBlockDecl
	ExtensibleParamCount int
}

func (c *ILFBCall) ilBodyNode()          {}
func (c *ILFBCall) TokenLiteral() string { return "CAL" }
func (c *ILFBCall) String() string       { return "CAL " + c.Instance + "(...)" }

// ILInstruction is one (optionally labeled) entry of an IL instruction
// list, or an unlabeled entry of a parenthesized SimpleInstrList.
//
// PrevILInstruction holds the back-edges the prior pass computed: the
// instructions whose current value reaches this one. Exactly one entry in
// the common case; more at join points (label targets).
type ILInstruction struct {
	BaseNode
	Label string // empty outside top-level labeled lists
	Body  ILBody

	Candidates        []*types.Ref
	Chosen            *types.Ref
	PrevILInstruction []*ILInstruction
}

func (i *ILInstruction) TokenLiteral() string { return "il_instruction" }
func (i *ILInstruction) String() string {
	if i.Body == nil {
		return "<empty il instruction>"
	}
	return i.Body.String()
}

// CandidateDatatypes/Datatype/SetDatatype let ILInstruction satisfy the
// same shape the Type Selector (spec §4.1) operates on, without pretending
// it is an Expression (IL instructions are not ST-expression-typed).
func (i *ILInstruction) CandidateDatatypes() []*types.Ref { return i.Candidates }
func (i *ILInstruction) Datatype() *types.Ref             { return i.Chosen }
func (i *ILInstruction) SetDatatype(d *types.Ref)         { i.Chosen = d }

// FakePrevILInstruction is the synthetic aggregate predecessor node spec
// §4.4 describes: its Candidates field holds the intersected candidate set
// across every real predecessor in scope, and PrevILInstruction is the
// shared back-edge list used to broadcast a chosen type to all of them.
type FakePrevILInstruction struct {
	Candidates        []*types.Ref
	Chosen            *types.Ref
	PrevILInstruction []*ILInstruction
}

func (f *FakePrevILInstruction) CandidateDatatypes() []*types.Ref { return f.Candidates }
func (f *FakePrevILInstruction) Datatype() *types.Ref             { return f.Chosen }
func (f *FakePrevILInstruction) SetDatatype(d *types.Ref)         { f.Chosen = d }

// ILInstructionList is a top-level (possibly labeled) IL instruction
// sequence, visited strictly last-to-first (spec §4.4).
type ILInstructionList struct {
	BaseNode
	Elements []*ILInstruction
}

func (l *ILInstructionList) statementNode()       {}
func (l *ILInstructionList) TokenLiteral() string { return "il_instruction_list" }
func (l *ILInstructionList) String() string       { return "<il instruction list>" }

// SimpleInstrList is the body of a parenthesized IL sub-expression
// (`AND ( ... )`). Per spec §4.4/matiec's simple_instr_list_c, a datatype
// demand is set only on the last element; the list is then traversed
// backward like a normal instruction list.
type SimpleInstrList struct {
	BaseNode
	Elements []*ILInstruction
}

func (l *SimpleInstrList) TokenLiteral() string { return "simple_instr_list" }
func (l *SimpleInstrList) String() string       { return "( ... )" }

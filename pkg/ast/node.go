// Package ast defines the Abstract Syntax Tree node types the narrowing
// pass walks: Structured Text expressions and statements, Instruction List
// instructions, and POU (Function/FunctionBlock/Program/Configuration)
// declarations.
//
// Every node already carries the annotation fields a prior candidate-
// collection pass populates (CandidateDatatypes, and for IL nodes
// PrevILInstruction); this package only models the tree shape plus those
// slots. Choosing concrete values for them is internal/narrowing's job.
package ast

import "github.com/plctoolchain/narrow/pkg/types"

// Node is the base interface for every AST node the pass visits.
type Node interface {
	// TokenLiteral returns a short human-readable label for the node kind,
	// used in internal-error messages.
	TokenLiteral() string

	// String returns a debug representation.
	String() string

	// Pos returns the node's starting source position.
	Pos() Position

	// End returns the node's ending source position.
	End() Position
}

// Expression is any node that produces a current value (ST) or result
// value (IL) and therefore carries candidate/chosen datatypes.
type Expression interface {
	Node
	expressionNode()

	// CandidateDatatypes is the non-empty set the prior pass computed.
	CandidateDatatypes() []*types.Ref
	// Datatype is the type this pass chooses: nil (no demand yet),
	// types.Invalid, or a member of CandidateDatatypes.
	Datatype() *types.Ref
	SetDatatype(*types.Ref)
}

// Statement is a node that performs an action but produces no value of its
// own (though it narrows the expressions nested inside it).
type Statement interface {
	Node
	statementNode()
}

// BaseNode provides the position bookkeeping shared by every concrete node.
type BaseNode struct {
	StartPos, EndPos Position
}

func (b BaseNode) Pos() Position { return b.StartPos }
func (b BaseNode) End() Position { return b.EndPos }

// TypedExpr embeds into every Expression struct to supply the
// CandidateDatatypes/Datatype bookkeeping uniformly, mirroring the
// teacher's TypedExpressionBase embedding pattern.
type TypedExpr struct {
	BaseNode
	Candidates []*types.Ref
	Chosen     *types.Ref
}

func (t *TypedExpr) expressionNode() {}

func (t *TypedExpr) CandidateDatatypes() []*types.Ref { return t.Candidates }
func (t *TypedExpr) Datatype() *types.Ref             { return t.Chosen }
func (t *TypedExpr) SetDatatype(d *types.Ref)         { t.Chosen = d }

// Program is the root node of a parsed compilation unit: an ordered list of
// POU declarations (functions, function blocks, programs, configurations).
type Program struct {
	BaseNode
	Units []Node
}

func (p *Program) statementNode()       {}
func (p *Program) TokenLiteral() string { return "program" }
func (p *Program) String() string       { return "<program>" }

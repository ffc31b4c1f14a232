package ast

import "github.com/plctoolchain/narrow/pkg/types"

// AssignmentStatement is `LHS := RHS;`. It commits only when the
// assignment's own Candidates has a single entry, then pushes the chosen
// type to both sides.
type AssignmentStatement struct {
	BaseNode
	LHS, RHS Expression
	// Candidates/Chosen are the commit slot for the assignment node itself, since an
	// assignment is a Statement (no value) but still needs somewhere to
	// record the single-candidate commit check of spec §4.6.
	Candidates []*types.Ref
	Chosen     *types.Ref
}

func (a *AssignmentStatement) statementNode()       {}
func (a *AssignmentStatement) TokenLiteral() string { return ":=" }
func (a *AssignmentStatement) String() string       { return a.LHS.String() + " := " + a.RHS.String() }

// BlockStatement is an ordered sequence of statements.
type BlockStatement struct {
	BaseNode
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return "block" }
func (b *BlockStatement) String() string       { return "begin...end" }

// ElsifBranch is one ELSIF arm of an IfStatement.
type ElsifBranch struct {
	Condition Expression
	Body      *BlockStatement
}

// IfStatement is IF/ELSIF.../ELSE.
type IfStatement struct {
	BaseNode
	Condition Expression
	Then      *BlockStatement
	Elsifs    []ElsifBranch
	Else      *BlockStatement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return "IF" }
func (s *IfStatement) String() string       { return "IF ... END_IF" }

// WhileStatement is WHILE condition DO body END_WHILE.
type WhileStatement struct {
	BaseNode
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return "WHILE" }
func (s *WhileStatement) String() string       { return "WHILE ... END_WHILE" }

// RepeatStatement is REPEAT body UNTIL condition END_REPEAT.
type RepeatStatement struct {
	BaseNode
	Body      *BlockStatement
	Condition Expression
}

func (s *RepeatStatement) statementNode()       {}
func (s *RepeatStatement) TokenLiteral() string { return "REPEAT" }
func (s *RepeatStatement) String() string       { return "REPEAT ... UNTIL ... END_REPEAT" }

// ForStatement is FOR ctrl := begin TO end [BY step] DO body END_FOR.
type ForStatement struct {
	BaseNode
	Control          *Identifier
	Begin, End, Step Expression // Step may be nil (BY omitted)
	Body             *BlockStatement
}

func (s *ForStatement) statementNode()       {}
func (s *ForStatement) TokenLiteral() string { return "FOR" }
func (s *ForStatement) String() string       { return "FOR ... END_FOR" }

// CaseElement is one label-list/statement-list arm of a CaseStatement.
// Labels themselves are candidate-preselected literals/subranges; the
// narrower only needs to see enough of each to propagate the scrutinee's
// chosen type into it for the equality check (spec §4.6).
type CaseElement struct {
	Labels []Expression
	Body   *BlockStatement
}

// CaseStatement is CASE selector OF ... END_CASE.
type CaseStatement struct {
	BaseNode
	Selector Expression
	Elements []CaseElement
	Else     *BlockStatement
}

func (s *CaseStatement) statementNode()       {}
func (s *CaseStatement) TokenLiteral() string { return "CASE" }
func (s *CaseStatement) String() string       { return "CASE ... END_CASE" }

// SubscriptExpr is `Array[Index]`; each Index demands an ANY_INT candidate
// per spec §4.6.
type SubscriptExpr struct {
	TypedExpr
	Array   Expression
	Indices []Expression
}

func (s *SubscriptExpr) TokenLiteral() string { return "[]" }
func (s *SubscriptExpr) String() string       { return s.Array.String() + "[...]" }

// SubrangeBounds is a derived subrange type's `Lo..Hi` limit pair. It is
// not a Statement or Expression and the narrowing pass has no case for it,
// so its limits are not narrowed.
type SubrangeBounds struct {
	BaseNode
	Lo, Hi   Expression
	Datatype *types.Ref
}

// FBInvocationStatement is a direct ST function-block call statement,
// distinct from a value-producing CallExpr: `fbInstance(IN := x, PT := t)`
// used as a statement. Grounded on matiec's fb_invocation_c, which (like
// a CallExpr) carries parallel formal/non-formal operand lists but, unlike
// a function call, produces no value of its own — only side effects on the
// FB instance's output variables.
type FBInvocationStatement struct {
	BaseNode
	Instance  string
	NonFormal []Expression
	Formal    []Param

	CalledFB             *FunctionBlockDecl
	ExtensibleParamCount int
}

func (s *FBInvocationStatement) statementNode()       {}
func (s *FBInvocationStatement) TokenLiteral() string { return "CAL" }
func (s *FBInvocationStatement) String() string       { return s.Instance + "(...)" }

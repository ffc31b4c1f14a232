package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// narrowExpr dispatches a demanded-type-already-set Expression to its
// children, per spec §4.2. The tagged-union type switch replaces the
// original visitor-pattern dispatch (spec.md §9's redesign note).
func (p *Pass) narrowExpr(ctx *context, e ast.Expression) {
	switch n := e.(type) {
	case *ast.Identifier, *ast.Literal:
		// Leaf nodes: nothing further to propagate.
	case *ast.BinaryExpr:
		p.narrowBinaryExpr(ctx, n)
	case *ast.UnaryExpr:
		p.narrowUnaryExpr(ctx, n)
	case *ast.GroupedExpr:
		setDatatype(n.Datatype(), n.Inner)
		p.narrowExpr(ctx, n.Inner)
	case *ast.SubscriptExpr:
		p.narrowSubscriptExpr(ctx, n)
	case *ast.CallExpr:
		p.narrowCallExpr(ctx, n)
	default:
		fail("narrowExpr", "unhandled expression node %T", e)
	}
}

func (p *Pass) narrowBinaryExpr(ctx *context, b *ast.BinaryExpr) {
	switch b.Op {
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		p.narrowLogicalExpr(ctx, b)
	case ast.OpEq, ast.OpNe:
		p.narrowEqualityExpr(ctx, b)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		p.narrowOrderingExpr(ctx, b)
	case ast.OpAdd:
		p.narrowArithmeticExpr(ctx, b, types.WidenADDTable)
	case ast.OpSub:
		p.narrowArithmeticExpr(ctx, b, types.WidenSUBTable)
	case ast.OpMul:
		p.narrowArithmeticExpr(ctx, b, types.WidenMULTable)
	case ast.OpDiv:
		p.narrowArithmeticExpr(ctx, b, types.WidenDIVTable)
	case ast.OpMod:
		p.narrowPassthroughBinary(ctx, b)
	case ast.OpPower:
		p.narrowPowerExpr(ctx, b)
	default:
		fail("narrowBinaryExpr", "unhandled operator %v", b.Op)
	}
}

// narrowLogicalExpr implements spec §4.2's AND/OR/XOR rule, preserving the
// documented equality-predicate asymmetry verbatim (spec §9: "AND uses a
// dynamic-type equality check while OR/XOR use the semantic is_type_equal;
// this asymmetry may be a bug" — we do NOT guess intent and reconcile it).
//
// Both forms choose the highest-index left candidate for which some right
// candidate matches (the source's outer loop has no early break), not
// simply the first one found.
func (p *Pass) narrowLogicalExpr(ctx *context, b *ast.BinaryExpr) {
	eq := types.IsTypeEqual
	if b.Op == ast.OpAnd {
		eq = isDynamicTypeEqual
	}

	var selected *types.Ref
	for _, lt := range b.Left.CandidateDatatypes() {
		for _, rt := range b.Right.CandidateDatatypes() {
			if eq(lt, rt) {
				selected = lt
				break
			}
		}
	}
	if selected == nil {
		fail("narrowLogicalExpr", "no common candidate type between operands of %v", b.Op)
	}

	setDatatype(selected, b.Left)
	setDatatype(selected, b.Right)
	p.narrowExpr(ctx, b.Left)
	p.narrowExpr(ctx, b.Right)
}

// isDynamicTypeEqual is matiec's `typeid`-style strict equality used only
// by AND (spec §9). Unlike types.IsTypeEqual, which compares elementary
// Refs by Kind alone, this requires the two Refs to be the exact same
// declared type (same Kind AND same Name, even for elementary types) —
// preserved as-is per the "do NOT guess intent" instruction.
func isDynamicTypeEqual(a, b *types.Ref) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == types.Invalid || b == types.Invalid {
		return false
	}
	return a.Kind == b.Kind && a.Name == b.Name
}

// narrowEqualityExpr implements spec §4.2's `=`/`<>` rule: symmetric, pick
// a type of the same kind on both sides, no ANY_ELEMENTARY guard needed.
func (p *Pass) narrowEqualityExpr(ctx *context, b *ast.BinaryExpr) {
	selected := commonCandidate(b.Left.CandidateDatatypes(), b.Right.CandidateDatatypes(), nil)
	if selected == nil {
		fail("narrowEqualityExpr", "no common candidate type between operands of %v", b.Op)
	}
	setDatatype(selected, b.Left)
	setDatatype(selected, b.Right)
	p.narrowExpr(ctx, b.Left)
	p.narrowExpr(ctx, b.Right)
}

// narrowOrderingExpr implements spec §4.2's `<`/`<=`/`>`/`>=` rule: same as
// equality, additionally restricted to ANY_ELEMENTARY.
func (p *Pass) narrowOrderingExpr(ctx *context, b *ast.BinaryExpr) {
	guard := types.IsANYElementaryType
	selected := commonCandidate(b.Left.CandidateDatatypes(), b.Right.CandidateDatatypes(), guard)
	if selected == nil {
		fail("narrowOrderingExpr", "no common ANY_ELEMENTARY candidate type between operands of %v", b.Op)
	}
	setDatatype(selected, b.Left)
	setDatatype(selected, b.Right)
	p.narrowExpr(ctx, b.Left)
	p.narrowExpr(ctx, b.Right)
}

// commonCandidate mirrors narrowLogicalExpr's selection rule: the source's
// outer loop (narrow_candidate_datatypes.cc:988+) has no early break, so
// selected_type keeps being overwritten down to the highest-index left
// candidate for which some right candidate matches, not the first one.
func commonCandidate(left, right []*types.Ref, guard func(*types.Ref) bool) *types.Ref {
	var selected *types.Ref
	for _, lt := range left {
		if guard != nil && !guard(lt) {
			continue
		}
		for _, rt := range right {
			if types.IsTypeEqual(lt, rt) {
				selected = lt
				break
			}
		}
	}
	return selected
}

// narrowArithmeticExpr implements spec §4.2's ADD/SUB/MUL/DIV rule.
func (p *Pass) narrowArithmeticExpr(ctx *context, b *ast.BinaryExpr, widenTable []types.WidenEntry) {
	demanded := b.Datatype()

	if types.IsANYNumCompatible(demanded) {
		setDatatype(demanded, b.Left)
		setDatatype(demanded, b.Right)
		p.narrowExpr(ctx, b.Left)
		p.narrowExpr(ctx, b.Right)
		return
	}

	matches := 0
	var leftType, rightType *types.Ref
	for _, lt := range b.Left.CandidateDatatypes() {
		for _, rt := range b.Right.CandidateDatatypes() {
			if types.IsWideningCompatible(lt, rt, demanded, widenTable) {
				matches++
				leftType, rightType = lt, rt
			}
		}
	}

	switch {
	case matches > 1:
		fail("narrowArithmeticExpr", "ambiguous widening-table match for %v", b.Op)
	case matches == 1:
		setDatatype(leftType, b.Left)
		setDatatype(rightType, b.Right)
	}
	// matches == 0: leave both operands undemanded (no set_datatype call)
	// and still recurse, matching matiec's actual behavior exactly — the
	// spec's "fatal upstream (should not happen)" wording describes an
	// expectation about the prior pass, not an assertion this pass makes.
	p.narrowExpr(ctx, b.Left)
	p.narrowExpr(ctx, b.Right)
}

// narrowPassthroughBinary implements spec §4.2's MOD rule: demanded type
// passes straight through to both operands unchanged.
func (p *Pass) narrowPassthroughBinary(ctx *context, b *ast.BinaryExpr) {
	demanded := b.Datatype()
	setDatatype(demanded, b.Left)
	setDatatype(demanded, b.Right)
	p.narrowExpr(ctx, b.Left)
	p.narrowExpr(ctx, b.Right)
}

// narrowPowerExpr implements spec §4.2's POWER rule: base type = demanded
// type; exponent type = its own single candidate. Per spec §9, the
// original source indexes candidates[0] only when the candidate list is
// (by an inverted guard) actually empty — an out-of-bounds bug. We
// implement the obviously-intended fix: take candidate[0] when the list is
// non-empty, else leave the exponent undemanded.
func (p *Pass) narrowPowerExpr(ctx *context, b *ast.BinaryExpr) {
	setDatatype(b.Datatype(), b.Left)
	p.narrowExpr(ctx, b.Left)

	if cands := b.Right.CandidateDatatypes(); len(cands) > 0 {
		setDatatype(cands[0], b.Right)
	}
	p.narrowExpr(ctx, b.Right)
}

func (p *Pass) narrowUnaryExpr(ctx *context, u *ast.UnaryExpr) {
	// NOT and NEG both pass the demanded type straight through to the
	// single operand (spec §4.2: "MOD, NOT, NEG: demanded type passes
	// straight through to the operand(s)").
	setDatatype(u.Datatype(), u.Operand)
	p.narrowExpr(ctx, u.Operand)
}

func (p *Pass) narrowSubscriptExpr(ctx *context, s *ast.SubscriptExpr) {
	p.narrowExpr(ctx, s.Array)
	for _, idx := range s.Indices {
		if t := firstCandidateOfCategory(idx.CandidateDatatypes(), types.IsANYIntType); t != nil {
			setDatatype(t, idx)
		}
		p.narrowExpr(ctx, idx)
	}
}

func firstCandidateOfCategory(cands []*types.Ref, pred func(*types.Ref) bool) *types.Ref {
	for _, t := range cands {
		if pred(t) {
			return t
		}
	}
	return nil
}

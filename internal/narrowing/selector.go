package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// datatyped is implemented by every node the Type Selector operates on:
// ast.Expression, *ast.ILInstruction, and *ast.FakePrevILInstruction all
// satisfy it structurally.
type datatyped interface {
	CandidateDatatypes() []*types.Ref
	Datatype() *types.Ref
	SetDatatype(*types.Ref)
}

// setDatatype is the pass's single primitive, spec §4.1's
// `set_datatype(desired, node)`:
//
//   - desired == nil, node already committed: fatal (internal misuse).
//   - desired == nil, node uncommitted: no-op.
//   - desired not in node's candidates: commit types.Invalid.
//   - node uncommitted: commit desired.
//   - node already equals desired: no-op.
//   - otherwise (conflicting second offer): commit types.Invalid.
func setDatatype(desired *types.Ref, node datatyped) {
	current := node.Datatype()

	if desired == nil {
		if current != nil {
			fail("setDatatype", "desired type is nil but node already has a committed datatype %v", current)
		}
		return
	}

	if types.SearchInCandidateDatatypeList(desired, node.CandidateDatatypes()) < 0 {
		node.SetDatatype(types.Invalid)
		return
	}

	switch {
	case current == nil:
		node.SetDatatype(desired)
	case types.IsTypeEqual(current, desired):
		// no-op: re-offering the same type is idempotent (spec P5).
	default:
		node.SetDatatype(types.Invalid)
	}
}

// setDatatypeInPrev is spec §4.1's broadcast helper: applies setDatatype to
// every back-edge predecessor of an IL instruction (real list predecessors
// via instr.PrevILInstruction, or the synthetic aggregate's shared list via
// fakePrev).
func setDatatypeInPrev(desired *types.Ref, prev []*ast.ILInstruction) {
	for _, p := range prev {
		setDatatype(desired, p)
	}
}

package narrowing

import "github.com/plctoolchain/narrow/pkg/ast"

// context carries the conceptually-global `fake_prev_il_instruction` slot
// spec §5/§9 describes as explicit, passed-by-value state instead of a
// mutable package global — the redesign spec.md §9 prescribes ("replace
// with an explicit context parameter carried through the recursion").
// `il_operand`, the source's other global slot, needs no equivalent field
// here: il.go already has the current instruction's operand in hand as a
// regular Go value (op.Operand) at every call site that would have read it.
//
// A context is cheap to copy: save-before-descend/restore-after-return is
// just "take a copy, recurse with the modified one, let the caller's copy
// be unaffected" — there is nothing to explicitly restore.
type context struct {
	resolver SymbolResolver

	// fakePrev is the synthetic aggregate predecessor in scope. nil at the
	// top of a fresh instruction list descent.
	fakePrev *ast.FakePrevILInstruction
}

func newContext(resolver SymbolResolver) *context {
	return &context{resolver: resolver}
}

// withFakePrev returns a copy of ctx with fakePrev replaced, for scoping a
// nested descent (parenthesized IL sub-lists, spec §4.4's "the
// fake_prev_il_instruction is saved and restored around the sub-list
// descent").
func (c *context) withFakePrev(f *ast.FakePrevILInstruction) *context {
	cp := *c
	cp.fakePrev = f
	return &cp
}


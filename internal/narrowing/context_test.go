package narrowing

import (
	"testing"

	"github.com/plctoolchain/narrow/pkg/ast"
)

func TestContext_WithFakePrev_DoesNotMutateOriginal(t *testing.T) {
	ctx := newContext(NewScopedResolver())
	if ctx.fakePrev != nil {
		t.Fatal("a fresh context should start with no fakePrev")
	}

	fake := &ast.FakePrevILInstruction{}
	ctx2 := ctx.withFakePrev(fake)

	if ctx.fakePrev != nil {
		t.Error("withFakePrev must not mutate the original context")
	}
	if ctx2.fakePrev != fake {
		t.Error("the copy should carry the new fakePrev")
	}
}

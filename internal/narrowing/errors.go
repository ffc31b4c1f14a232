package narrowing

import "fmt"

// InternalError marks an invariant violation in the narrowing pass itself
// (spec §7, class 2) — never a type error in the user's program, which is
// instead recorded in-band via the types.Invalid sentinel. Run recovers
// from these at the pass boundary and turns them into a returned error,
// per the teacher's Pass.Run(program, ctx) error shape.
type InternalError struct {
	Reason string
	Where  string // node kind / call site, for debugging
}

func (e *InternalError) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("narrowing: internal error in %s: %s", e.Where, e.Reason)
	}
	return fmt.Sprintf("narrowing: internal error: %s", e.Reason)
}

// fail aborts the current pass run immediately via panic/recover, mirroring
// spec §7's "aborts the pass immediately (fatal)" for class-2 errors. The
// panic is caught at Run's top level and converted back into a normal Go
// error — callers never see a panic escape this package.
func fail(where, reason string, args ...any) {
	panic(&InternalError{Where: where, Reason: fmt.Sprintf(reason, args...)})
}

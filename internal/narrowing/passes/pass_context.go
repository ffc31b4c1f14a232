// Package passes slots the narrowing pass into a declared multi-pass
// pipeline, mirroring the teacher's internal/semantic/passes package: a
// shared PassContext threaded across passes, and one Pass implementation
// per pipeline stage exposing Name()/Run(program, ctx) error.
//
// This repository only implements the narrowing stage itself
// (internal/narrowing); PassContext's other registries exist so narrowing
// can be slotted after a candidate-collection pass and before a
// diagnostics pass without changing its calling convention, exactly as the
// teacher's TypeResolutionPass sits between DeclarationPass and
// ContractPass.
package passes

import (
	"fmt"

	"github.com/plctoolchain/narrow/pkg/ast"
)

// PassContext is the communication medium between pipeline stages.
type PassContext struct {
	// FBTypes maps function-block type name (normalized) to its
	// declaration, populated once up front by ScanFBTypes. A candidate-
	// collection pass run earlier in a real pipeline would populate this
	// alongside the candidate-datatype annotations this pass consumes.
	FBTypes map[string]*ast.FunctionBlockDecl

	// Errors collects internal-error messages raised by pipeline passes,
	// including the narrowing pass's own internal error, in the teacher's
	// string-accumulation style.
	Errors []string
}

// NewPassContext creates an empty PassContext.
func NewPassContext() *PassContext {
	return &PassContext{FBTypes: make(map[string]*ast.FunctionBlockDecl)}
}

// AddError records a formatted error message.
func (ctx *PassContext) AddError(format string, args ...interface{}) {
	ctx.Errors = append(ctx.Errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any errors have been recorded.
func (ctx *PassContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

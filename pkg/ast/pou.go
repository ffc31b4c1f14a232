package ast

import "github.com/plctoolchain/narrow/pkg/types"

// VariableKind classifies a declared variable by its VAR.../END_VAR
// section, which matters for call-parameter resolution (IN/OUT/IN_OUT)
// and for identifying EN/ENO (skipped per spec §4.3).
type VariableKind int

const (
	VarInput VariableKind = iota
	VarOutput
	VarInOut
	VarLocal
	VarExternal
	VarGlobal
)

// Parameter is one formal parameter or local variable declaration.
type Parameter struct {
	BaseNode
	Name       string
	Kind       VariableKind
	Datatype   *types.Ref
	Extensible bool // true for the standard-function variadic tail marker
}

func (p *Parameter) statementNode()       {}
func (p *Parameter) TokenLiteral() string { return "var_decl" }
func (p *Parameter) String() string       { return p.Name }

// FunctionDecl is a Function Organization Unit: `FUNCTION name : retType ... END_FUNCTION`.
type FunctionDecl struct {
	BaseNode
	Name       string
	ReturnType *types.Ref
	Params     []*Parameter

	// FirstExtensibleParamIndex is -1 unless this is a standard extensible
	// function (e.g. ADD) accepting a variadic same-typed tail (spec §4.3,
	// GLOSSARY "Extensible function").
	FirstExtensibleParamIndex int

	Body *BlockStatement
}

func (d *FunctionDecl) statementNode()       {}
func (d *FunctionDecl) TokenLiteral() string { return "FUNCTION" }
func (d *FunctionDecl) String() string       { return "FUNCTION " + d.Name }

// ParamByName looks up a formal parameter by name, case-sensitively; IL
// mnemonic/ST-identifier case-folding is the caller's job (pkg/ident).
func (d *FunctionDecl) ParamByName(name string) *Parameter {
	for _, p := range d.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// FunctionBlockDecl is a Function Block Organization Unit.
type FunctionBlockDecl struct {
	BaseNode
	Name                      string
	Params                    []*Parameter
	FirstExtensibleParamIndex int
	Body                      *BlockStatement
}

func (d *FunctionBlockDecl) statementNode()       {}
func (d *FunctionBlockDecl) TokenLiteral() string { return "FUNCTION_BLOCK" }
func (d *FunctionBlockDecl) String() string       { return "FUNCTION_BLOCK " + d.Name }

func (d *FunctionBlockDecl) ParamByName(name string) *Parameter {
	for _, p := range d.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ProgramDecl is a PROGRAM Organization Unit.
type ProgramDecl struct {
	BaseNode
	Name   string
	Params []*Parameter
	Body   *BlockStatement
}

func (d *ProgramDecl) statementNode()       {}
func (d *ProgramDecl) TokenLiteral() string { return "PROGRAM" }
func (d *ProgramDecl) String() string       { return "PROGRAM " + d.Name }

// ConfigurationDecl is a CONFIGURATION block. Per spec §9 ("Configuration
// declarations are stubbed") its Raw subtree is intentionally left unnarrowed;
// the node exists so a Program containing one round-trips unchanged.
type ConfigurationDecl struct {
	BaseNode
	Name string
	Raw  Node // opaque subtree, never descended into by this pass
}

func (d *ConfigurationDecl) statementNode()       {}
func (d *ConfigurationDecl) TokenLiteral() string { return "CONFIGURATION" }
func (d *ConfigurationDecl) String() string       { return "CONFIGURATION " + d.Name }

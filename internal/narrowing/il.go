package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// narrowILInstructionList implements spec §4.4's instruction-list visit:
// strictly last-to-first, each element getting a freshly built synthetic
// predecessor aggregate.
func (p *Pass) narrowILInstructionList(ctx *context, list *ast.ILInstructionList) {
	p.narrowILElements(ctx, list.Elements)
}

// narrowILElements is shared by top-level instruction lists and
// parenthesized SimpleInstrLists (both are "a list of IL instructions
// visited in reverse").
func (p *Pass) narrowILElements(ctx *context, elements []*ast.ILInstruction) {
	for i := len(elements) - 1; i >= 0; i-- {
		p.narrowOneILInstruction(ctx, elements[i])
	}
}

func (p *Pass) narrowOneILInstruction(ctx *context, node *ast.ILInstruction) {
	if len(node.PrevILInstruction) > 1 && node.Label == "" {
		// matiec's il_simple_instruction_c asserts prev_il_instruction.size()
		// > 1 is fatal: labels (join points) are only legal on top-level,
		// labeled instructions, never inside a parenthesized sub-expression
		// (spec §7: "an il_simple_instruction with more than one
		// predecessor (labels inside IL expressions are disallowed)").
		fail("narrowOneILInstruction", "unlabeled IL instruction has more than one predecessor")
	}

	tmp := &ast.FakePrevILInstruction{
		PrevILInstruction: node.PrevILInstruction,
		Candidates:        intersectCandidateSets(node.PrevILInstruction),
	}
	ctx2 := ctx.withFakePrev(tmp)

	if node.Body != nil {
		p.narrowILBody(ctx2, node, node.Body)
		return
	}
	// An empty/label-only IL instruction (matiec's visit(il_instruction_c),
	// line 533-537): no operator to narrow, but the demand still has to
	// thread through this join point to whatever feeds it.
	setDatatypeInPrev(node.Datatype(), ctx2.fakePrev.PrevILInstruction)
}

func intersectCandidateSets(prev []*ast.ILInstruction) []*types.Ref {
	if len(prev) == 0 {
		return nil
	}
	result := prev[0].CandidateDatatypes()
	for _, p := range prev[1:] {
		result = intersectTypeSets(result, p.CandidateDatatypes())
	}
	return result
}

func intersectTypeSets(a, b []*types.Ref) []*types.Ref {
	var out []*types.Ref
	for _, t := range a {
		if types.SearchInCandidateDatatypeList(t, b) >= 0 {
			out = append(out, t)
		}
	}
	return out
}

// narrowILBody dispatches an IL instruction's body by tagged kind, mirroring
// matiec's per-operator visitor methods (spec §4.4/§4.5).
func (p *Pass) narrowILBody(ctx *context, node *ast.ILInstruction, body ast.ILBody) {
	switch b := body.(type) {
	case *ast.ILSimpleOperation:
		p.narrowILSimpleOperation(ctx, node, b)
	case *ast.ILExpression:
		p.narrowILParenExpression(ctx, node, b)
	case *ast.ILFunctionCall:
		p.narrowILFunctionCall(ctx, node, b)
	case *ast.ILFormalFunctCall:
		p.narrowILFormalFunctCall(ctx, node, b)
	case *ast.ILFBCall:
		p.narrowILFBCallBody(ctx, node, b)
	default:
		fail("narrowILBody", "unhandled IL body node %T", body)
	}
}

func (p *Pass) narrowILSimpleOperation(ctx *context, node *ast.ILInstruction, op *ast.ILSimpleOperation) {
	switch op.Operator {
	case ast.ILOpLD, ast.ILOpLDN:
		p.narrowILProducer(ctx, node, op)
	case ast.ILOpST, ast.ILOpSTN:
		p.narrowILConsumer(ctx, node, op)
	case ast.ILOpCAL:
		setDatatypeInPrev(node.Datatype(), ctx.fakePrev.PrevILInstruction)
	case ast.ILOpCALC, ast.ILOpCALCN, ast.ILOpRETC, ast.ILOpRETCN, ast.ILOpJMPC, ast.ILOpJMPCN:
		p.narrowILConditionalFlowControl(node, ctx)
	case ast.ILOpRET, ast.ILOpJMP:
		setDatatypeInPrev(node.Datatype(), ctx.fakePrev.PrevILInstruction)
	default:
		if op.Operator.IsImplicitFBCall() {
			p.narrowImplicitILFBCall(ctx, node, op)
			return
		}
		// AND/OR/XOR/ANDN/ORN/XORN/ADD/SUB/MUL/DIV/MOD/GT/GE/EQ/LT/LE/NE
		// all delegate uniformly to the generic transforming-operator
		// handler in matiec (they differ only in ST-expression context,
		// not in IL current-value propagation). NOT is included here too:
		// its visitor is an empty TODO in the source, and spec §9 directs
		// implementers to treat it as a passthrough like NEG. S/R are
		// also handled here per spec §9's "preserve this conservative
		// treatment" instruction.
		p.narrowILTransformingOperator(ctx, node, op)
	}
}

// narrowILProducer implements spec §4.4's LD/LDN rule: copies the demanded
// type to the operand; no demand flows upstream (LD has no predecessor
// whose value it derives from — it loads a fresh value).
func (p *Pass) narrowILProducer(ctx *context, node *ast.ILInstruction, op *ast.ILSimpleOperation) {
	demanded := node.Datatype()
	if op.Operand != nil {
		setDatatype(demanded, op.Operand)
		p.narrowExpr(ctx, op.Operand)
	}
}

// narrowILConsumer implements spec §4.4's ST/STN rule.
func (p *Pass) narrowILConsumer(ctx *context, node *ast.ILInstruction, op *ast.ILSimpleOperation) {
	if len(node.CandidateDatatypes()) != 1 {
		return
	}
	committed := node.CandidateDatatypes()[0]
	node.SetDatatype(committed)
	if op.Operand != nil {
		setDatatype(committed, op.Operand)
		p.narrowExpr(ctx, op.Operand)
	}
	setDatatypeInPrev(committed, ctx.fakePrev.PrevILInstruction)
}

// narrowILTransformingOperator implements the generic transforming-operator
// shape shared by AND/OR/XOR/ANDN/ORN/XORN/ADD/SUB/MUL/DIV/MOD/comparisons/
// NOT/S/R: the demanded result flows upstream to both the operand and the
// predecessor, unchanged. Predecessor is set first, matching matiec's
// ordering note (the prev's datatype must be set before descending into
// the operand, since that descent may itself need a stable fake-prev).
func (p *Pass) narrowILTransformingOperator(ctx *context, node *ast.ILInstruction, op *ast.ILSimpleOperation) {
	demanded := node.Datatype()
	if demanded == nil {
		// matiec's handle_il_instruction (line 723-725) returns immediately
		// here rather than broadcasting a null demand.
		return
	}
	setDatatypeInPrev(demanded, ctx.fakePrev.PrevILInstruction)
	if op.Operand != nil {
		setDatatype(demanded, op.Operand)
		p.narrowExpr(ctx, op.Operand)
	}
}

// narrowILConditionalFlowControl implements spec §4.4's
// CALC/CALCN/RETC/RETCN/JMPC/JMPCN rule.
func (p *Pass) narrowILConditionalFlowControl(node *ast.ILInstruction, ctx *context) {
	demanded := node.Datatype()
	if demanded != nil && !types.IsBoolType(demanded) {
		fail("narrowILConditionalFlowControl", "conditional flow-control instruction demanded non-BOOL type")
	}
	if len(node.CandidateDatatypes()) > 1 {
		fail("narrowILConditionalFlowControl", "conditional flow-control instruction has ambiguous candidate set")
	}

	var toBroadcast *types.Ref
	if len(node.CandidateDatatypes()) == 1 {
		toBroadcast = node.CandidateDatatypes()[0]
		if !types.IsBoolType(toBroadcast) {
			fail("narrowILConditionalFlowControl", "conditional flow-control instruction's sole candidate is not BOOL")
		}
		node.SetDatatype(toBroadcast)
	}
	setDatatypeInPrev(toBroadcast, ctx.fakePrev.PrevILInstruction)
}

// narrowILParenExpression implements spec §4.4's parenthesized
// sub-expression rule: the outer operator's demanded input type is pushed
// into the sub-list's last instruction, then the sub-list is traversed
// backward with its own saved/restored fake-prev scope. This is "not a
// bug" (per the original source's own comment) that il_operand ends up
// pointing at the sublist rather than a single expression.
func (p *Pass) narrowILParenExpression(ctx *context, node *ast.ILInstruction, expr *ast.ILExpression) {
	demanded := node.Datatype()
	setDatatypeInPrev(demanded, ctx.fakePrev.PrevILInstruction)

	elems := expr.Inner.Elements
	if len(elems) == 0 {
		return
	}
	last := elems[len(elems)-1]
	setDatatype(demanded, last)

	// Save/restore fake_prev_il_instruction around the sub-list descent
	// (spec §4.4): ctx here is the outer scope; narrowILElements installs
	// its own fresh fake-prev per element, so simply recursing with ctx
	// (not ctx2) already achieves the save/restore — the outer ctx's
	// fakePrev is untouched because context values are never mutated in
	// place, only copied.
	p.narrowILElements(ctx, elems)
}

// narrowImplicitILFBCall implements spec §4.5: rewrites CLK/CU/CD/PV/IN/PT/
// S1/R1 into a synthetic il_fb_call on the fly.
func (p *Pass) narrowImplicitILFBCall(ctx *context, node *ast.ILInstruction, op *ast.ILSimpleOperation) {
	paramName := op.Operator.ImplicitFBParamName()

	if op.Operand == nil {
		fail("narrowImplicitILFBCall", "%s operand missing", paramName)
	}

	fbDecl := ctx.resolver.ResolveFBInstance(operandName(op.Operand))
	setDatatype(fbDeclDatatype(fbDecl), op.Operand)
	p.narrowExpr(ctx, op.Operand)

	if op.Operand.Datatype() == nil || types.IsInvalid(op.Operand.Datatype()) || fbDecl == nil {
		// Step 2: not a valid FB instance — forward the outer demand
		// upstream and exit.
		setDatatypeInPrev(node.Datatype(), ctx.fakePrev.PrevILInstruction)
		return
	}

	prev := ctx.fakePrev.PrevILInstruction
	if len(prev) == 0 {
		// Step 3: no predecessor, nothing to type-check.
		return
	}

	// Step 4: build the synthetic parameter-value node, il_param_assignment,
	// and il_fb_call, all stack-scoped to this visit.
	paramValue := &ast.Identifier{
		TypedExpr: ast.TypedExpr{Candidates: ctx.fakePrev.CandidateDatatypes()},
		Name:      "<implicit current value>",
	}
	synthCall := &ast.ILFBCall{
		Instance: operandName(op.Operand),
		Params:   []ast.ILParamAssignment{{Name: paramName, Value: paramValue}},
		CalledFB: fbDecl,
	}
	p.narrowILFBCallBody(ctx, node, synthCall)

	// Step 5: reconcile the outer demand with the parameter demand.
	paramDemand := paramValue.Datatype()
	outerDemand := node.Datatype()

	var broadcast *types.Ref
	switch {
	case outerDemand == nil || types.IsTypeEqual(outerDemand, paramDemand):
		broadcast = paramDemand
	default:
		broadcast = types.Invalid
	}
	setDatatypeInPrev(broadcast, prev)
}

func operandName(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func fbDeclDatatype(fbDecl *ast.FunctionBlockDecl) *types.Ref {
	if fbDecl == nil {
		return nil
	}
	return types.NewDerived(fbDecl.Name, nil)
}

// narrowILFBCallBody narrows an explicit (or implicit-rewrite synthetic)
// CAL instruction: each named parameter demands its formal's declared
// type, per spec §4.3's formal-style propagation rule reused for FB calls.
func (p *Pass) narrowILFBCallBody(ctx *context, node *ast.ILInstruction, call *ast.ILFBCall) {
	highestExt := -1
	firstExt := -1
	if call.CalledFB != nil {
		firstExt = call.CalledFB.FirstExtensibleParamIndex
	}

	for i := range call.Params {
		pa := &call.Params[i]
		if call.CalledFB != nil {
			if formal := call.CalledFB.ParamByName(pa.Name); formal != nil {
				setDatatype(formal.Datatype, pa.Value)
				if idx := paramIndexIn(call.CalledFB.Params, formal); firstExt >= 0 && idx >= firstExt && idx > highestExt {
					highestExt = idx
				}
			}
		}
		p.narrowExpr(ctx, pa.Value)
	}

	if firstExt >= 0 && highestExt >= firstExt {
		call.ExtensibleParamCount = 1 + highestExt - firstExt
	} else {
		call.ExtensibleParamCount = -1
	}
}

// narrowILFunctionCall implements spec §4.4's non-formal IL function call
// rule: the first positional parameter is implicitly the current value.
func (p *Pass) narrowILFunctionCall(ctx *context, node *ast.ILInstruction, call *ast.ILFunctionCall) {
	clone := &ast.Identifier{
		TypedExpr: ast.TypedExpr{Candidates: ctx.fakePrev.CandidateDatatypes()},
		Name:      "<implicit current value>",
	}
	args := append([]ast.Expression{clone}, call.Args...)

	g := &genericCall{
		callee:         call.Callee,
		nonFormal:      args,
		candidates:     call.Candidates,
		candidateFuncs: call.CandidateFuncs,
		chosen:         call.Chosen,
		resolved:       &call.CalledFunction,
		extensible:     &call.ExtensibleParamCount,
	}
	p.resolveGenericCall(ctx, g)

	setDatatypeInPrev(clone.Datatype(), ctx.fakePrev.PrevILInstruction)
	// The clone (and the operand-list slot it occupied) is stack-scoped:
	// nothing further references args/clone after this point, so there is
	// nothing to explicitly pop — spec invariant P4 ("synthetic AST
	// modification is undone") holds by construction rather than by
	// mutating and restoring a shared list.
}

// narrowILFormalFunctCall is the formal-style counterpart; IL formal calls
// do not carry an implicit current-value parameter (the value, if needed,
// is one of the named parameters), so no clone-prepend is required.
func (p *Pass) narrowILFormalFunctCall(ctx *context, node *ast.ILInstruction, call *ast.ILFormalFunctCall) {
	g := &genericCall{
		callee:         call.Callee,
		formal:         call.Params,
		candidates:     call.Candidates,
		candidateFuncs: call.CandidateFuncs,
		chosen:         call.Chosen,
		resolved:       &call.CalledFunction,
		extensible:     &call.ExtensibleParamCount,
	}
	p.resolveGenericCall(ctx, g)
}

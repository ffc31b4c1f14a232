package narrowing

import (
	"github.com/plctoolchain/narrow/pkg/ast"
	"github.com/plctoolchain/narrow/pkg/types"
)

// narrowStatement dispatches a Statement by tagged kind (spec §4.6).
func (p *Pass) narrowStatement(ctx *context, s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		for _, stmt := range n.Statements {
			p.narrowStatement(ctx, stmt)
		}
	case *ast.AssignmentStatement:
		p.narrowAssignment(ctx, n)
	case *ast.IfStatement:
		p.narrowIf(ctx, n)
	case *ast.WhileStatement:
		p.narrowCondition(ctx, n.Condition)
		p.narrowStatement(ctx, n.Body)
	case *ast.RepeatStatement:
		p.narrowStatement(ctx, n.Body)
		p.narrowCondition(ctx, n.Condition)
	case *ast.ForStatement:
		p.narrowFor(ctx, n)
	case *ast.CaseStatement:
		p.narrowCase(ctx, n)
	case *ast.FBInvocationStatement:
		p.narrowFBInvocation(ctx, n)
	case *ast.ILInstructionList:
		p.narrowILInstructionList(ctx, n)
	case *ast.Parameter:
		// Variable declarations carry no expression to narrow.
	default:
		fail("narrowStatement", "unhandled statement node %T", s)
	}
}

// narrowAssignment implements spec §4.6: commit if single candidate; push
// the chosen type to both sides.
func (p *Pass) narrowAssignment(ctx *context, a *ast.AssignmentStatement) {
	if len(a.Candidates) == 1 {
		a.Chosen = a.Candidates[0]
		setDatatype(a.Chosen, a.LHS)
		setDatatype(a.Chosen, a.RHS)
	}
	p.narrowExpr(ctx, a.LHS)
	p.narrowExpr(ctx, a.RHS)
}

// narrowCondition implements spec §4.6's IF/ELSIF/WHILE/REPEAT rule:
// select the BOOL candidate if present, recurse.
func (p *Pass) narrowCondition(ctx *context, cond ast.Expression) {
	if t := firstCandidateOfCategory(cond.CandidateDatatypes(), types.IsBoolType); t != nil {
		setDatatype(t, cond)
	}
	p.narrowExpr(ctx, cond)
}

func (p *Pass) narrowIf(ctx *context, s *ast.IfStatement) {
	p.narrowCondition(ctx, s.Condition)
	p.narrowStatement(ctx, s.Then)
	for _, elsif := range s.Elsifs {
		p.narrowCondition(ctx, elsif.Condition)
		p.narrowStatement(ctx, elsif.Body)
	}
	if s.Else != nil {
		p.narrowStatement(ctx, s.Else)
	}
}

// narrowFor implements spec §4.6's FOR rule: select an ANY_INT candidate
// for the control variable; demand the same type from begin/end/by.
func (p *Pass) narrowFor(ctx *context, s *ast.ForStatement) {
	ctrlType := firstCandidateOfCategory(s.Control.CandidateDatatypes(), types.IsANYIntType)
	if ctrlType != nil {
		setDatatype(ctrlType, s.Control)
	}
	p.narrowExpr(ctx, s.Control)

	setDatatype(ctrlType, s.Begin)
	p.narrowExpr(ctx, s.Begin)
	setDatatype(ctrlType, s.End)
	p.narrowExpr(ctx, s.End)
	if s.Step != nil {
		setDatatype(ctrlType, s.Step)
		p.narrowExpr(ctx, s.Step)
	}
	p.narrowStatement(ctx, s.Body)
}

// narrowCase implements spec §4.6's CASE rule: select an integer or
// enumerated candidate for the scrutinee, propagate its datatype to the
// case-list arms, recurse into each arm's statement list.
func (p *Pass) narrowCase(ctx *context, s *ast.CaseStatement) {
	selType := firstCandidateOfCategory(s.Selector.CandidateDatatypes(), types.IsOrdinalType)
	if selType != nil {
		setDatatype(selType, s.Selector)
	}
	p.narrowExpr(ctx, s.Selector)

	for _, el := range s.Elements {
		for _, label := range el.Labels {
			if selType != nil {
				setDatatype(selType, label)
			}
			p.narrowExpr(ctx, label)
		}
		p.narrowStatement(ctx, el.Body)
	}
	if s.Else != nil {
		p.narrowStatement(ctx, s.Else)
	}
}

// narrowFBInvocation narrows a direct ST FB-call statement by adapting it
// to the same formal/non-formal parameter propagation the IL FB-call path
// uses (spec §4.3's rules, reused here since fb_invocation_c shares the
// parallel-operand-list shape of a function call but targets named FB
// inputs instead of a return value).
func (p *Pass) narrowFBInvocation(ctx *context, s *ast.FBInvocationStatement) {
	fbDecl := ctx.resolver.ResolveFBInstance(s.Instance)
	s.CalledFB = fbDecl
	s.ExtensibleParamCount = -1
	if fbDecl == nil {
		for _, a := range s.NonFormal {
			p.narrowExpr(ctx, a)
		}
		for _, pa := range s.Formal {
			p.narrowExpr(ctx, pa.Value)
		}
		return
	}

	highestExt := -1
	firstExt := fbDecl.FirstExtensibleParamIndex

	if s.Formal != nil {
		for _, pa := range s.Formal {
			if formal := fbDecl.ParamByName(pa.Name); formal != nil {
				setDatatype(formal.Datatype, pa.Value)
				if idx := paramIndexIn(fbDecl.Params, formal); firstExt >= 0 && idx >= firstExt && idx > highestExt {
					highestExt = idx
				}
			}
			p.narrowExpr(ctx, pa.Value)
		}
	} else {
		i := 0
		for _, formal := range fbDecl.Params {
			if isENENO(formal.Name) {
				continue
			}
			if i >= len(s.NonFormal) {
				break
			}
			setDatatype(formal.Datatype, s.NonFormal[i])
			p.narrowExpr(ctx, s.NonFormal[i])
			if firstExt >= 0 && i >= firstExt && i > highestExt {
				highestExt = i
			}
			i++
		}
	}

	if firstExt >= 0 && highestExt >= firstExt {
		s.ExtensibleParamCount = 1 + highestExt - firstExt
	}
}

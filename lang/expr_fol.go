package lang

import (
	"strconv"

	"github.com/senier/RecordFlux/fol"
)

// ToFOL implementations lower a validated, simplified expression into the
// first-order-logic representation a downstream solver consumes. Forms
// with no direct logical reading (message aggregates, quantifiers over
// message domains, comprehensions) lower to fol.Unsupported rather than
// panicking: lowering, like simplification, is total.

func (l *BoolLiteral) ToFOL() fol.Formula { return fol.Bool(l.Value) }

func (*UndefinedLiteral) ToFOL() fol.Formula { return fol.Const("undefined") }

func (l *IntLiteral) ToFOL() fol.Formula { return fol.Const(strconv.FormatInt(l.Value, 10)) }

func (l *StringLiteral) ToFOL() fol.Formula { return fol.Const(strconv.Quote(l.Value)) }

func (n *NameRef) ToFOL() fol.Formula { return fol.Var(n.Name()) }

func (b *BinaryArith) ToFOL() fol.Formula {
	return &fol.Pred{Name: "arith_" + arithName(b.Op), Args: []fol.Formula{b.LHS.ToFOL(), b.RHS.ToFOL()}}
}

func arithName(op ArithOp) string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Pow:
		return "pow"
	case Mod:
		return "mod"
	}
	return "unknown"
}

func (b *BinaryRelation) ToFOL() fol.Formula {
	lhs, rhs := b.LHS.ToFOL(), b.RHS.ToFOL()
	switch b.Op {
	case EqualOp:
		return &fol.Eq{LHS: lhs, RHS: rhs}
	case NotEqual:
		return &fol.Not{Operand: &fol.Eq{LHS: lhs, RHS: rhs}}
	case Less:
		return &fol.Lt{LHS: lhs, RHS: rhs}
	case LessEqual:
		return &fol.Or{Operands: []fol.Formula{&fol.Lt{LHS: lhs, RHS: rhs}, &fol.Eq{LHS: lhs, RHS: rhs}}}
	case Greater:
		return &fol.Lt{LHS: rhs, RHS: lhs}
	case GreaterEqual:
		return &fol.Or{Operands: []fol.Formula{&fol.Lt{LHS: rhs, RHS: lhs}, &fol.Eq{LHS: lhs, RHS: rhs}}}
	}
	return &fol.Unsupported{Reason: "unknown relational operator"}
}

func (u *UnaryNeg) ToFOL() fol.Formula {
	return &fol.Pred{Name: "neg", Args: []fol.Formula{u.Operand.ToFOL()}}
}

func (n *Not) ToFOL() fol.Formula { return &fol.Not{Operand: n.Operand.ToFOL()} }

func (l *Logical) ToFOL() fol.Formula {
	operands := make([]fol.Formula, len(l.Operands))
	for i, o := range l.Operands {
		operands[i] = o.ToFOL()
	}
	if l.Op == LogicalAnd {
		return &fol.And{Operands: operands}
	}
	return &fol.Or{Operands: operands}
}

func (s *SetMembership) ToFOL() fol.Formula {
	member := fol.Formula(&fol.Pred{Name: "member", Args: []fol.Formula{s.Elem.ToFOL(), s.Set.ToFOL()}})
	if s.Negate {
		return &fol.Not{Operand: member}
	}
	return member
}

func (a *Attribute) ToFOL() fol.Formula {
	return &fol.Pred{Name: string(a.Kind), Args: []fol.Formula{a.Operand.ToFOL()}}
}

func (f *FieldSelect) ToFOL() fol.Formula {
	return &fol.Pred{Name: "field_" + f.Field, Args: []fol.Formula{f.Object.ToFOL()}}
}

func (b *Binding) ToFOL() fol.Formula {
	return &fol.Unsupported{Reason: "where-binding has no direct first-order lowering"}
}

func (m *MessageAggregate) ToFOL() fol.Formula {
	return &fol.Unsupported{Reason: "message aggregate has no direct first-order lowering"}
}

func (c *Call) ToFOL() fol.Formula {
	args := make([]fol.Formula, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.ToFOL()
	}
	return &fol.Pred{Name: "call_" + c.Target, Args: args}
}

func (c *Conversion) ToFOL() fol.Formula {
	return &fol.Pred{Name: "convert_" + c.TypeName, Args: []fol.Formula{c.Operand.ToFOL()}}
}

func (q *Quantifier) ToFOL() fol.Formula {
	return &fol.Unsupported{Reason: "quantifier has no direct first-order lowering"}
}

func (c *Comprehension) ToFOL() fol.Formula {
	return &fol.Unsupported{Reason: "comprehension has no direct first-order lowering"}
}

package lang

// Equal implementations: two expressions are equal iff they are the same
// variant, with equal children in order and equal scalar payload. Used by
// simplification's fixed-point check and extensively by tests.

func exprSliceEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (l *BoolLiteral) Equal(other Expression) bool {
	o, ok := other.(*BoolLiteral)
	return ok && o.Value == l.Value
}

func (*UndefinedLiteral) Equal(other Expression) bool {
	_, ok := other.(*UndefinedLiteral)
	return ok
}

func (l *IntLiteral) Equal(other Expression) bool {
	o, ok := other.(*IntLiteral)
	return ok && o.Value == l.Value
}

func (l *StringLiteral) Equal(other Expression) bool {
	o, ok := other.(*StringLiteral)
	return ok && o.Value == l.Value
}

func (n *NameRef) Equal(other Expression) bool {
	o, ok := other.(*NameRef)
	if !ok || len(o.Parts) != len(n.Parts) {
		return false
	}
	for i := range n.Parts {
		if n.Parts[i] != o.Parts[i] {
			return false
		}
	}
	return true
}

func (b *BinaryArith) Equal(other Expression) bool {
	o, ok := other.(*BinaryArith)
	return ok && o.Op == b.Op && b.LHS.Equal(o.LHS) && b.RHS.Equal(o.RHS)
}

func (b *BinaryRelation) Equal(other Expression) bool {
	o, ok := other.(*BinaryRelation)
	return ok && o.Op == b.Op && b.LHS.Equal(o.LHS) && b.RHS.Equal(o.RHS)
}

func (u *UnaryNeg) Equal(other Expression) bool {
	o, ok := other.(*UnaryNeg)
	return ok && u.Operand.Equal(o.Operand)
}

func (n *Not) Equal(other Expression) bool {
	o, ok := other.(*Not)
	return ok && n.Operand.Equal(o.Operand)
}

func (l *Logical) Equal(other Expression) bool {
	o, ok := other.(*Logical)
	return ok && o.Op == l.Op && exprSliceEqual(l.Operands, o.Operands)
}

func (s *SetMembership) Equal(other Expression) bool {
	o, ok := other.(*SetMembership)
	return ok && o.Negate == s.Negate && s.Elem.Equal(o.Elem) && s.Set.Equal(o.Set)
}

func (a *Attribute) Equal(other Expression) bool {
	o, ok := other.(*Attribute)
	return ok && o.Kind == a.Kind && a.Operand.Equal(o.Operand)
}

func (f *FieldSelect) Equal(other Expression) bool {
	o, ok := other.(*FieldSelect)
	return ok && o.Field == f.Field && f.Object.Equal(o.Object)
}

func (b *Binding) Equal(other Expression) bool {
	o, ok := other.(*Binding)
	if !ok || !b.Base.Equal(o.Base) || len(b.Bindings) != len(o.Bindings) {
		return false
	}
	for i := range b.Bindings {
		if b.Bindings[i].Name != o.Bindings[i].Name || !b.Bindings[i].Value.Equal(o.Bindings[i].Value) {
			return false
		}
	}
	return true
}

func (m *MessageAggregate) Equal(other Expression) bool {
	o, ok := other.(*MessageAggregate)
	if !ok || o.TypeName != m.TypeName || o.Empty != m.Empty || len(m.Fields) != len(o.Fields) {
		return false
	}
	for i := range m.Fields {
		if m.Fields[i].Name != o.Fields[i].Name || !m.Fields[i].Value.Equal(o.Fields[i].Value) {
			return false
		}
	}
	return true
}

func (c *Call) Equal(other Expression) bool {
	o, ok := other.(*Call)
	return ok && o.Target == c.Target && exprSliceEqual(c.Args, o.Args)
}

func (c *Conversion) Equal(other Expression) bool {
	o, ok := other.(*Conversion)
	return ok && o.TypeName == c.TypeName && c.Operand.Equal(o.Operand)
}

func (q *Quantifier) Equal(other Expression) bool {
	o, ok := other.(*Quantifier)
	return ok && o.Kind == q.Kind && o.Var == q.Var && q.Domain.Equal(o.Domain) && q.Body.Equal(o.Body)
}

func (c *Comprehension) Equal(other Expression) bool {
	o, ok := other.(*Comprehension)
	return ok && o.Var == c.Var && c.Domain.Equal(o.Domain) && c.Selector.Equal(o.Selector) && c.Condition.Equal(o.Condition)
}

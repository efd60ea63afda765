package lang

// Simplify implementations: pure partial evaluation under env, to a fixed
// point. Every method first simplifies its children, then applies literal
// folding and identity/absorption rules at its own level. Name
// substitution immediately re-simplifies the substituted expression, so a
// chain of name -> name -> literal resolves within a single top-level
// call.

func (l *BoolLiteral) Simplify(SimplifyEnv) Expression      { return l }
func (*UndefinedLiteral) Simplify(SimplifyEnv) Expression   { return Undefined }
func (l *IntLiteral) Simplify(SimplifyEnv) Expression       { return l }
func (l *StringLiteral) Simplify(SimplifyEnv) Expression    { return l }

func (n *NameRef) Simplify(env SimplifyEnv) Expression {
	if env != nil {
		if repl, ok := env[n.Name()]; ok {
			return repl.Simplify(env)
		}
	}
	return n
}

func (b *BinaryArith) Simplify(env SimplifyEnv) Expression {
	lhs, rhs := b.LHS.Simplify(env), b.RHS.Simplify(env)
	li, lok := lhs.(*IntLiteral)
	ri, rok := rhs.(*IntLiteral)
	if lok && rok {
		switch b.Op {
		case Add:
			return &IntLiteral{Value: li.Value + ri.Value}
		case Sub:
			return &IntLiteral{Value: li.Value - ri.Value}
		case Mul:
			return &IntLiteral{Value: li.Value * ri.Value}
		case Div:
			if ri.Value != 0 {
				return &IntLiteral{Value: li.Value / ri.Value}
			}
		case Mod:
			if ri.Value != 0 {
				return &IntLiteral{Value: li.Value % ri.Value}
			}
		case Pow:
			v := int64(1)
			for i := int64(0); i < ri.Value; i++ {
				v *= li.Value
			}
			if ri.Value >= 0 {
				return &IntLiteral{Value: v}
			}
		}
	}
	if rok && ri.Value == 0 {
		if b.Op == Add || b.Op == Sub {
			return lhs
		}
		if b.Op == Mul {
			return &IntLiteral{Value: 0}
		}
	}
	if lok && li.Value == 0 && b.Op == Add {
		return rhs
	}
	if rok && ri.Value == 1 && b.Op == Mul {
		return lhs
	}
	if lok && li.Value == 1 && b.Op == Mul {
		return rhs
	}
	if lok && li.Value == 0 && b.Op == Mul {
		return &IntLiteral{Value: 0}
	}
	return &BinaryArith{Op: b.Op, LHS: lhs, RHS: rhs}
}

func boolOf(v bool) Expression {
	if v {
		return True
	}
	return False
}

func (b *BinaryRelation) Simplify(env SimplifyEnv) Expression {
	lhs, rhs := b.LHS.Simplify(env), b.RHS.Simplify(env)
	if li, ok := lhs.(*IntLiteral); ok {
		if ri, ok := rhs.(*IntLiteral); ok {
			return boolOf(relateInt(b.Op, li.Value, ri.Value))
		}
	}
	if ls, ok := lhs.(*StringLiteral); ok {
		if rs, ok := rhs.(*StringLiteral); ok {
			return boolOf(relateString(b.Op, ls.Value, rs.Value))
		}
	}
	if lb, ok := lhs.(*BoolLiteral); ok {
		if rb, ok := rhs.(*BoolLiteral); ok {
			switch b.Op {
			case EqualOp:
				return boolOf(lb.Value == rb.Value)
			case NotEqual:
				return boolOf(lb.Value != rb.Value)
			}
		}
	}
	if lhs.Equal(rhs) {
		switch b.Op {
		case EqualOp, LessEqual, GreaterEqual:
			return True
		case NotEqual, Less, Greater:
			return False
		}
	}
	return &BinaryRelation{Op: b.Op, LHS: lhs, RHS: rhs}
}

func relateInt(op RelOp, a, b int64) bool {
	switch op {
	case Less:
		return a < b
	case LessEqual:
		return a <= b
	case EqualOp:
		return a == b
	case NotEqual:
		return a != b
	case GreaterEqual:
		return a >= b
	case Greater:
		return a > b
	}
	return false
}

func relateString(op RelOp, a, b string) bool {
	switch op {
	case Less:
		return a < b
	case LessEqual:
		return a <= b
	case EqualOp:
		return a == b
	case NotEqual:
		return a != b
	case GreaterEqual:
		return a >= b
	case Greater:
		return a > b
	}
	return false
}

func (u *UnaryNeg) Simplify(env SimplifyEnv) Expression {
	operand := u.Operand.Simplify(env)
	if i, ok := operand.(*IntLiteral); ok {
		return &IntLiteral{Value: -i.Value}
	}
	if inner, ok := operand.(*UnaryNeg); ok {
		return inner.Operand
	}
	return &UnaryNeg{Operand: operand}
}

func (n *Not) Simplify(env SimplifyEnv) Expression {
	operand := n.Operand.Simplify(env)
	if b, ok := operand.(*BoolLiteral); ok {
		return boolOf(!b.Value)
	}
	if inner, ok := operand.(*Not); ok {
		return inner.Operand
	}
	return &Not{Operand: operand}
}

func (l *Logical) Simplify(env SimplifyEnv) Expression {
	dominant := False
	if l.Op == LogicalOr {
		dominant = True
	}
	var kept []Expression
	for _, o := range l.Operands {
		so := o.Simplify(env)
		if b, ok := so.(*BoolLiteral); ok {
			if b.Value == dominant.Value {
				return dominant
			}
			// identity element for this connective: drop it
			continue
		}
		kept = append(kept, so)
	}
	switch len(kept) {
	case 0:
		return boolOf(!dominant.Value)
	case 1:
		return kept[0]
	default:
		return &Logical{Op: l.Op, Operands: kept}
	}
}

func (s *SetMembership) Simplify(env SimplifyEnv) Expression {
	return &SetMembership{Negate: s.Negate, Elem: s.Elem.Simplify(env), Set: s.Set.Simplify(env)}
}

func (a *Attribute) Simplify(env SimplifyEnv) Expression {
	operand := a.Operand.Simplify(env)
	if n, ok := operand.(*NameRef); ok && env != nil {
		if repl, ok := env[attrKey(n.Name(), a.Kind)]; ok {
			return repl.Simplify(env)
		}
	}
	return &Attribute{Kind: a.Kind, Operand: operand}
}

func (f *FieldSelect) Simplify(env SimplifyEnv) Expression {
	return &FieldSelect{Object: f.Object.Simplify(env), Field: f.Field}
}

func (b *Binding) Simplify(env SimplifyEnv) Expression {
	inner := SimplifyEnv{}
	for k, v := range env {
		inner[k] = v
	}
	for _, nb := range b.Bindings {
		inner[nb.Name] = nb.Value.Simplify(env)
	}
	return b.Base.Simplify(inner)
}

func (m *MessageAggregate) Simplify(env SimplifyEnv) Expression {
	if m.Empty {
		return m
	}
	fields := make([]FieldInit, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = FieldInit{Name: f.Name, Value: f.Value.Simplify(env)}
	}
	return &MessageAggregate{TypeName: m.TypeName, Fields: fields}
}

func (c *Call) Simplify(env SimplifyEnv) Expression {
	args := make([]Expression, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Simplify(env)
	}
	return &Call{Target: c.Target, Args: args}
}

func (c *Conversion) Simplify(env SimplifyEnv) Expression {
	return &Conversion{TypeName: c.TypeName, Operand: c.Operand.Simplify(env)}
}

func (q *Quantifier) Simplify(env SimplifyEnv) Expression {
	return &Quantifier{Kind: q.Kind, Var: q.Var, Domain: q.Domain.Simplify(env), Body: q.Body.Simplify(env)}
}

func (c *Comprehension) Simplify(env SimplifyEnv) Expression {
	return &Comprehension{
		Var:       c.Var,
		Domain:    c.Domain.Simplify(env),
		Selector:  c.Selector.Simplify(env),
		Condition: c.Condition.Simplify(env),
	}
}

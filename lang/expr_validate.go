package lang

import "github.com/senier/RecordFlux/rflxerr"

// Validate implementations: each resolves its name references against env,
// marking the resolved Declaration as referenced, and recurses into child
// expressions. Literals have nothing to validate.

func (*BoolLiteral) Validate(*Env) error      { return nil }
func (*UndefinedLiteral) Validate(*Env) error { return nil }
func (*IntLiteral) Validate(*Env) error       { return nil }
func (*StringLiteral) Validate(*Env) error    { return nil }

func (n *NameRef) Validate(env *Env) error {
	d, ok := env.Lookup(n.Name())
	if !ok {
		return rflxerr.UnknownReference(n.Name())
	}
	d.MarkReferenced()
	return nil
}

func (b *BinaryArith) Validate(env *Env) error {
	if err := b.LHS.Validate(env); err != nil {
		return err
	}
	return b.RHS.Validate(env)
}

func (b *BinaryRelation) Validate(env *Env) error {
	if err := b.LHS.Validate(env); err != nil {
		return err
	}
	return b.RHS.Validate(env)
}

func (u *UnaryNeg) Validate(env *Env) error { return u.Operand.Validate(env) }

func (n *Not) Validate(env *Env) error { return n.Operand.Validate(env) }

func (l *Logical) Validate(env *Env) error {
	for _, o := range l.Operands {
		if err := o.Validate(env); err != nil {
			return err
		}
	}
	return nil
}

func (s *SetMembership) Validate(env *Env) error {
	if err := s.Elem.Validate(env); err != nil {
		return err
	}
	return s.Set.Validate(env)
}

func (a *Attribute) Validate(env *Env) error { return a.Operand.Validate(env) }

func (f *FieldSelect) Validate(env *Env) error { return f.Object.Validate(env) }

func (b *Binding) Validate(env *Env) error {
	for _, nb := range b.Bindings {
		if err := nb.Value.Validate(env); err != nil {
			return err
		}
	}
	// Base is validated against env extended with the bound names, each
	// resolving to an anonymous local declaration so that a reference
	// inside Base marks it resolved rather than failing unknown.
	child := env.Child()
	for _, nb := range b.Bindings {
		if err := child.Define(nb.Name, NewDeclaration(nb.Name, &VariableDecl{})); err != nil {
			return err
		}
	}
	return b.Base.Validate(child)
}

func (m *MessageAggregate) Validate(env *Env) error {
	for _, f := range m.Fields {
		if err := f.Value.Validate(env); err != nil {
			return err
		}
	}
	return nil
}

// Validate resolves Target, checking call arity against a SubprogramDecl.
// Per §4.4, a Call whose target resolves to a PrivateDecl with exactly one
// argument is semantically a type conversion rather than a subprogram call;
// such a target is accepted here regardless of argument count mismatch
// against any subprogram signature, since private declarations carry none.
func (c *Call) Validate(env *Env) error {
	for _, a := range c.Args {
		if err := a.Validate(env); err != nil {
			return err
		}
	}
	d, ok := env.Lookup(c.Target)
	if !ok {
		return rflxerr.UnknownReference(c.Target)
	}
	d.MarkReferenced()
	switch k := d.Kind.(type) {
	case *PrivateDecl:
		if len(c.Args) != 1 {
			return rflxerr.NewValidationError("bad_conversion_arity",
				"conversion to %q takes exactly one argument, got %d", c.Target, len(c.Args))
		}
		return nil
	case *SubprogramDecl:
		if len(c.Args) != len(k.Args) {
			return rflxerr.NewValidationError("bad_call_arity",
				"call to %q expects %d argument(s), got %d", c.Target, len(k.Args), len(c.Args))
		}
		return nil
	default:
		return rflxerr.NewValidationError("not_callable", "%q is not a subprogram or private type", c.Target)
	}
}

// IsConversion reports whether, once validated against env, this call
// reclassifies as a type conversion (target resolves to a private
// declaration with exactly one argument).
func (c *Call) IsConversion(env *Env) bool {
	d, ok := env.Lookup(c.Target)
	if !ok {
		return false
	}
	_, private := d.Kind.(*PrivateDecl)
	return private && len(c.Args) == 1
}

func (c *Conversion) Validate(env *Env) error { return c.Operand.Validate(env) }

func (q *Quantifier) Validate(env *Env) error {
	if err := q.Domain.Validate(env); err != nil {
		return err
	}
	child := env.Child()
	if err := child.Define(q.Var, NewDeclaration(q.Var, &VariableDecl{})); err != nil {
		return err
	}
	return q.Body.Validate(child)
}

func (c *Comprehension) Validate(env *Env) error {
	if err := c.Domain.Validate(env); err != nil {
		return err
	}
	child := env.Child()
	if err := child.Define(c.Var, NewDeclaration(c.Var, &VariableDecl{})); err != nil {
		return err
	}
	if err := c.Selector.Validate(child); err != nil {
		return err
	}
	return c.Condition.Validate(child)
}

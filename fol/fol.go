// Package fol is the first-order-logic representation that validated
// expressions lower into, for consumption by a downstream solver (not
// part of this module). It is a small closed variant with no behaviour
// beyond construction and pretty-printing: simplification and validation
// both happen upstream, in lang.Expression, before lowering.
//
// No third-party first-order-logic or SMT library appears anywhere in the
// retrieved example corpus (no go-z3 binding, no other solver frontend),
// so unlike the rest of this module this package is intentionally
// standard-library only rather than invent an unlisted dependency.
package fol

import "strings"

// Formula is a closed first-order-logic formula.
type Formula interface {
	isFormula()
	String() string
}

// Var is a free variable reference.
type Var string

func (Var) isFormula()      {}
func (v Var) String() string { return string(v) }

// Const is a literal constant, pre-rendered to its textual form.
type Const string

func (Const) isFormula()      {}
func (c Const) String() string { return string(c) }

// Pred is an uninterpreted predicate or function application, e.g. the
// lowering of a Length or Valid attribute application.
type Pred struct {
	Name string
	Args []Formula
}

func (*Pred) isFormula() {}
func (p *Pred) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return p.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Eq is equality between two formulas.
type Eq struct{ LHS, RHS Formula }

func (*Eq) isFormula()      {}
func (e *Eq) String() string { return "(" + e.LHS.String() + " = " + e.RHS.String() + ")" }

// Lt is strict less-than between two formulas.
type Lt struct{ LHS, RHS Formula }

func (*Lt) isFormula()      {}
func (l *Lt) String() string { return "(" + l.LHS.String() + " < " + l.RHS.String() + ")" }

// Not negates a formula.
type Not struct{ Operand Formula }

func (*Not) isFormula()      {}
func (n *Not) String() string { return "not " + n.Operand.String() }

// And is an n-ary conjunction.
type And struct{ Operands []Formula }

func (*And) isFormula() {}
func (a *And) String() string {
	parts := make([]string, len(a.Operands))
	for i, o := range a.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " and ") + ")"
}

// Or is an n-ary disjunction.
type Or struct{ Operands []Formula }

func (*Or) isFormula() {}
func (o *Or) String() string {
	parts := make([]string, len(o.Operands))
	for i, p := range o.Operands {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

// Bool is a literal boolean value, lowered from lang.True / lang.False.
type Bool bool

func (Bool) isFormula() {}
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Unsupported marks a construct that has no first-order-logic lowering
// (quantifiers over message fields, comprehensions, and similar forms that
// a downstream solver handles through its own expansion rules rather than
// through this seam).
type Unsupported struct{ Reason string }

func (*Unsupported) isFormula()      {}
func (u *Unsupported) String() string { return "<unsupported: " + u.Reason + ">" }

package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Pretty renders a deterministic textual form. Binary operators
// parenthesize a child whose precedence class is looser (numerically
// greater) than the operator itself, so that re-parsing the printed form
// reproduces the same tree.
func parenthesize(parent Expression, child Expression) string {
	s := child.Pretty()
	if child.Precedence() > parent.Precedence() {
		return "(" + s + ")"
	}
	return s
}

// parenthesizeRHS is parenthesize plus associativity awareness for the
// right-hand operand of a left-associative binary operator: a child at the
// *same* precedence class must still be parenthesized there, since
// `A - (B - C)` and `A - B - C` (== `(A - B) - C`) are different trees that
// would otherwise print identically.
func parenthesizeRHS(parent Expression, child Expression) string {
	s := child.Pretty()
	if child.Precedence() >= parent.Precedence() {
		return "(" + s + ")"
	}
	return s
}

func (l *BoolLiteral) Pretty() string {
	if l.Value {
		return "True"
	}
	return "False"
}

func (*UndefinedLiteral) Pretty() string { return "null" }

func (l *IntLiteral) Pretty() string {
	switch l.Base {
	case 16:
		return fmt.Sprintf("16#%X#", l.Value)
	case 8:
		return fmt.Sprintf("8#%o#", l.Value)
	case 2:
		return fmt.Sprintf("2#%b#", l.Value)
	default:
		return strconv.FormatInt(l.Value, 10)
	}
}

func (l *StringLiteral) Pretty() string { return `"` + l.Value + `"` }

func (n *NameRef) Pretty() string { return n.Name() }

func (b *BinaryArith) Pretty() string {
	op := string(b.Op)
	if b.Op == Mod {
		op = " mod "
	} else {
		op = " " + op + " "
	}
	return parenthesize(b, b.LHS) + op + parenthesizeRHS(b, b.RHS)
}

func (b *BinaryRelation) Pretty() string {
	return parenthesize(b, b.LHS) + " " + string(b.Op) + " " + parenthesizeRHS(b, b.RHS)
}

func (u *UnaryNeg) Pretty() string { return "-" + parenthesize(u, u.Operand) }

func (n *Not) Pretty() string { return "not " + parenthesize(n, n.Operand) }

func (l *Logical) Pretty() string {
	parts := make([]string, len(l.Operands))
	for i, o := range l.Operands {
		parts[i] = parenthesize(l, o)
	}
	sep := " and "
	if l.Op == LogicalOr {
		sep = " or "
	}
	return strings.Join(parts, sep)
}

func (s *SetMembership) Pretty() string {
	op := " in "
	if s.Negate {
		op = " not in "
	}
	return parenthesize(s, s.Elem) + op + parenthesize(s, s.Set)
}

func (a *Attribute) Pretty() string {
	return parenthesize(a, a.Operand) + "'" + string(a.Kind)
}

func (f *FieldSelect) Pretty() string {
	return parenthesize(f, f.Object) + "." + f.Field
}

func (b *Binding) Pretty() string {
	parts := make([]string, len(b.Bindings))
	for i, nb := range b.Bindings {
		parts[i] = nb.Name + " = " + nb.Value.Pretty()
	}
	return b.Base.Pretty() + " where " + strings.Join(parts, ", ")
}

func (m *MessageAggregate) Pretty() string {
	if m.Empty {
		return m.TypeName + "'(null message)"
	}
	parts := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		parts[i] = f.Name + " => " + f.Value.Pretty()
	}
	return m.TypeName + "'(" + strings.Join(parts, ", ") + ")"
}

func (c *Call) Pretty() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Pretty()
	}
	return c.Target + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Conversion) Pretty() string {
	return c.TypeName + " (" + c.Operand.Pretty() + ")"
}

func (q *Quantifier) Pretty() string {
	return fmt.Sprintf("for %s %s in %s => %s", q.Kind, q.Var, q.Domain.Pretty(), q.Body.Pretty())
}

func (c *Comprehension) Pretty() string {
	return fmt.Sprintf("[for %s in %s => %s when %s]", c.Var, c.Domain.Pretty(), c.Selector.Pretty(), c.Condition.Pretty())
}

// Package lang implements the embedded expression/statement/declaration
// algebra: a closed variant of expression and statement forms, each
// supporting pretty-printing, structural equality, simplification under an
// environment, and validation against a declaration environment. The three
// algebras share a package because they are mutually recursive: statements
// embed expressions, declaration initializers are expressions, and
// validation of all three walks the same Env.
package lang

import "github.com/senier/RecordFlux/fol"

// Expression is the closed interface implemented by every node of the
// expression algebra.
type Expression interface {
	isExpression()
	// Precedence reports the node's precedence class, used by Pretty to
	// decide whether a child needs parenthesizing.
	Precedence() Precedence
	// Pretty renders a deterministic textual form.
	Pretty() string
	// Equal reports structural equality: same variant, same children in
	// order, same scalar payload.
	Equal(other Expression) bool
	// Simplify performs pure partial evaluation under env, returning a new
	// expression. It never fails and reaches a fixed point internally.
	Simplify(env SimplifyEnv) Expression
	// Validate resolves every name reference against env, marking
	// referenced declarations, and fails with an UnknownReference or
	// ValidationError on any mismatch.
	Validate(env *Env) error
	// ToFOL lowers the expression into the first-order-logic
	// representation consumed by a downstream solver.
	ToFOL() fol.Formula
}

// SimplifyEnv maps a name (or a name+attribute key, see attrKey) to its
// replacement expression during simplification.
type SimplifyEnv map[string]Expression

func attrKey(name string, kind AttributeKind) string {
	return name + "'" + string(kind)
}

// ArithOp enumerates the binary arithmetic operators.
type ArithOp string

const (
	Add ArithOp = "+"
	Sub ArithOp = "-"
	Mul ArithOp = "*"
	Div ArithOp = "/"
	Pow ArithOp = "**"
	Mod ArithOp = "mod"
)

// RelOp enumerates the binary relational operators.
type RelOp string

const (
	Less           RelOp = "<"
	LessEqual      RelOp = "<="
	EqualOp        RelOp = "="
	NotEqual       RelOp = "/="
	GreaterEqual   RelOp = ">="
	Greater        RelOp = ">"
)

// LogicalOp enumerates the n-ary logical connectives.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
)

// AttributeKind enumerates the unary postfix attribute operators.
type AttributeKind string

const (
	AttrValid   AttributeKind = "Valid"
	AttrPresent AttributeKind = "Present"
	AttrLength  AttributeKind = "Length"
	AttrHead    AttributeKind = "Head"
	AttrOpaque  AttributeKind = "Opaque"
	AttrFirst   AttributeKind = "First"
	AttrLast    AttributeKind = "Last"
	AttrSize    AttributeKind = "Size"
)

// QuantifierKind distinguishes a universal from an existential quantifier.
type QuantifierKind string

const (
	QuantAll  QuantifierKind = "all"
	QuantSome QuantifierKind = "some"
)

// BoolLiteral is a boolean literal. True and False below are the
// canonical instances used as default values (e.g. a transition's
// default condition).
type BoolLiteral struct{ Value bool }

// True, False and Undefined are the distinguished singleton values of
// §3: the canonical TRUE/FALSE/UNDEFINED constants used as defaults
// (a transition's default condition, an Erase's assigned value).
var (
	True      = &BoolLiteral{Value: true}
	False     = &BoolLiteral{Value: false}
	Undefined = &UndefinedLiteral{}
)

func (*BoolLiteral) isExpression()        {}
func (*BoolLiteral) Precedence() Precedence { return PrecUndefined }

// UndefinedLiteral is the distinguished "no value" literal assigned by
// Erase and usable anywhere a null/nil expression is required.
type UndefinedLiteral struct{}

func (*UndefinedLiteral) isExpression()        {}
func (*UndefinedLiteral) Precedence() Precedence { return PrecUndefined }

// IntLiteral is an integer literal with an optional base annotation
// (0 means no annotation / decimal).
type IntLiteral struct {
	Value int64
	Base  int
}

func (*IntLiteral) isExpression()        {}
func (*IntLiteral) Precedence() Precedence { return PrecUndefined }

// StringLiteral is a double-quoted string literal; no escape processing
// is performed on its contents (per §4.4).
type StringLiteral struct{ Value string }

func (*StringLiteral) isExpression()        {}
func (*StringLiteral) Precedence() Precedence { return PrecUndefined }

// NameRef is a qualified or unqualified name reference, e.g. "X" or
// "Pkg.X".
type NameRef struct{ Parts []string }

func (*NameRef) isExpression()        {}
func (*NameRef) Precedence() Precedence { return PrecUndefined }

// Name returns the full dotted spelling of the reference.
func (n *NameRef) Name() string {
	out := n.Parts[0]
	for _, p := range n.Parts[1:] {
		out += "." + p
	}
	return out
}

// NewNameRef constructs a single-part NameRef, the common case for a bare
// identifier.
func NewNameRef(name string) *NameRef { return &NameRef{Parts: []string{name}} }

// BinaryArith applies one of Add/Sub/Mul/Div/Pow/Mod to two operands.
type BinaryArith struct {
	Op       ArithOp
	LHS, RHS Expression
}

func (*BinaryArith) isExpression() {}
func (b *BinaryArith) Precedence() Precedence {
	if b.Op == Mul || b.Op == Div || b.Op == Mod || b.Op == Pow {
		return PrecMultiplicative
	}
	return PrecAdditive
}

// BinaryRelation applies one of Less/LessEqual/Equal/NotEqual/
// GreaterEqual/Greater to two operands.
type BinaryRelation struct {
	Op       RelOp
	LHS, RHS Expression
}

func (*BinaryRelation) isExpression()        {}
func (*BinaryRelation) Precedence() Precedence { return PrecRelational }

// UnaryNeg negates a numeric expression.
type UnaryNeg struct{ Operand Expression }

func (*UnaryNeg) isExpression()        {}
func (*UnaryNeg) Precedence() Precedence { return PrecUnary }

// Not negates a boolean expression (the logical connective, distinct from
// UnaryNeg's arithmetic negation).
type Not struct{ Operand Expression }

func (*Not) isExpression()        {}
func (*Not) Precedence() Precedence { return PrecUnary }

// Logical is an n-ary And or Or of two or more operands.
type Logical struct {
	Op       LogicalOp
	Operands []Expression
}

func (*Logical) isExpression() {}
func (l *Logical) Precedence() Precedence {
	if l.Op == LogicalAnd {
		return PrecLogicalAnd
	}
	return PrecLogicalOr
}

// SetMembership is the `in` / `not in` set-operator relation.
type SetMembership struct {
	Negate   bool
	Elem     Expression
	Set      Expression
}

func (*SetMembership) isExpression()        {}
func (*SetMembership) Precedence() Precedence { return PrecSetOperator }

// Attribute applies a unary postfix attribute operator to an operand.
type Attribute struct {
	Kind    AttributeKind
	Operand Expression
}

func (*Attribute) isExpression()        {}
func (*Attribute) Precedence() Precedence { return PrecUndefined }

// FieldSelect is `expr.ident` field selection.
type FieldSelect struct {
	Object Expression
	Field  string
}

func (*FieldSelect) isExpression()        {}
func (*FieldSelect) Precedence() Precedence { return PrecUndefined }

// NamedBinding is one `ident = expr` pair inside a Binding's where clause.
type NamedBinding struct {
	Name  string
	Value Expression
}

// Binding is `expr where ident = expr, …`: local let-bindings scoped to
// Base.
type Binding struct {
	Base     Expression
	Bindings []NamedBinding
}

func (*Binding) isExpression()        {}
func (*Binding) Precedence() Precedence { return PrecUndefined }

// FieldInit is one `ident => expr` pair inside a MessageAggregate.
type FieldInit struct {
	Name  string
	Value Expression
}

// MessageAggregate is `typename'(field => expr, …)`, or the empty
// aggregate `typename'(null message)` when Empty is true.
type MessageAggregate struct {
	TypeName string
	Fields   []FieldInit
	Empty    bool
}

func (*MessageAggregate) isExpression()        {}
func (*MessageAggregate) Precedence() Precedence { return PrecUndefined }

// Call is a subprogram call (or, per §4.4, a type conversion reclassified
// during Validate — see the type's Validate method).
type Call struct {
	Target string
	Args   []Expression
}

func (*Call) isExpression()        {}
func (*Call) Precedence() Precedence { return PrecUndefined }

// Conversion is an explicit type conversion: a target type name applied to
// an operand expression.
type Conversion struct {
	TypeName string
	Operand  Expression
}

func (*Conversion) isExpression()        {}
func (*Conversion) Precedence() Precedence { return PrecUndefined }

// Quantifier is `for all|some ident in domain => body`.
type Quantifier struct {
	Kind   QuantifierKind
	Var    string
	Domain Expression
	Body   Expression
}

func (*Quantifier) isExpression()        {}
func (*Quantifier) Precedence() Precedence { return PrecUndefined }

// Comprehension is `[for ident in domain => selector when condition]`;
// Condition defaults to True when the source omits the `when` clause.
type Comprehension struct {
	Var       string
	Domain    Expression
	Selector  Expression
	Condition Expression
}

func (*Comprehension) isExpression()        {}
func (*Comprehension) Precedence() Precedence { return PrecUndefined }

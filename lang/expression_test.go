package lang

import (
	"testing"

	"github.com/senier/RecordFlux/rflxerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyParenthesizesByPrecedence(t *testing.T) {
	// (A or B) and C must keep its parens; A and B or C must not.
	aOrB := &Logical{Op: LogicalOr, Operands: []Expression{NewNameRef("A"), NewNameRef("B")}}
	aAndBorC := &Logical{Op: LogicalAnd, Operands: []Expression{aOrB, NewNameRef("C")}}
	assert.Equal(t, "(A or B) and C", aAndBorC.Pretty())

	aAndB := &Logical{Op: LogicalAnd, Operands: []Expression{NewNameRef("A"), NewNameRef("B")}}
	orC := &Logical{Op: LogicalOr, Operands: []Expression{aAndB, NewNameRef("C")}}
	assert.Equal(t, "A and B or C", orC.Pretty())
}

func TestPrettyIsAssociativityAwareOnRHS(t *testing.T) {
	// A - (B - C) must keep its parens: printing it as "A - B - C" would
	// re-parse as (A - B) - C, a different value.
	bMinusC := &BinaryArith{Op: Sub, LHS: NewNameRef("B"), RHS: NewNameRef("C")}
	aMinusBMinusC := &BinaryArith{Op: Sub, LHS: NewNameRef("A"), RHS: bMinusC}
	assert.Equal(t, "A - (B - C)", aMinusBMinusC.Pretty())

	// (A - B) - C, by contrast, is exactly what left-to-right evaluation
	// already does, so it may print without parens around the LHS.
	aMinusB := &BinaryArith{Op: Sub, LHS: NewNameRef("A"), RHS: NewNameRef("B")}
	aMinusBMinusCLeft := &BinaryArith{Op: Sub, LHS: aMinusB, RHS: NewNameRef("C")}
	assert.Equal(t, "A - B - C", aMinusBMinusCLeft.Pretty())
}

func TestIntLiteralPrettyBase(t *testing.T) {
	assert.Equal(t, "255", (&IntLiteral{Value: 255}).Pretty())
	assert.Equal(t, "16#FF#", (&IntLiteral{Value: 255, Base: 16}).Pretty())
}

func TestEqualStructural(t *testing.T) {
	a := &BinaryArith{Op: Add, LHS: &IntLiteral{Value: 1}, RHS: NewNameRef("X")}
	b := &BinaryArith{Op: Add, LHS: &IntLiteral{Value: 1}, RHS: NewNameRef("X")}
	c := &BinaryArith{Op: Sub, LHS: &IntLiteral{Value: 1}, RHS: NewNameRef("X")}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSimplifyIdentities(t *testing.T) {
	x := NewNameRef("X")
	plusZero := &BinaryArith{Op: Add, LHS: x, RHS: &IntLiteral{Value: 0}}
	assert.True(t, plusZero.Simplify(nil).Equal(x))

	mulZero := &BinaryArith{Op: Mul, LHS: x, RHS: &IntLiteral{Value: 0}}
	assert.True(t, mulZero.Simplify(nil).Equal(&IntLiteral{Value: 0}))

	andFalse := &Logical{Op: LogicalAnd, Operands: []Expression{x, False}}
	assert.True(t, andFalse.Simplify(nil).Equal(False))

	orTrue := &Logical{Op: LogicalOr, Operands: []Expression{x, True}}
	assert.True(t, orTrue.Simplify(nil).Equal(True))

	doubleNot := &Not{Operand: &Not{Operand: x}}
	assert.True(t, doubleNot.Simplify(nil).Equal(x))
}

func TestSimplifyLiteralFolding(t *testing.T) {
	add := &BinaryArith{Op: Add, LHS: &IntLiteral{Value: 2}, RHS: &IntLiteral{Value: 3}}
	assert.True(t, add.Simplify(nil).Equal(&IntLiteral{Value: 5}))

	rel := &BinaryRelation{Op: EqualOp, LHS: &IntLiteral{Value: 5}, RHS: &IntLiteral{Value: 5}}
	assert.True(t, rel.Simplify(nil).Equal(True))
}

func TestSimplifyNameSubstitutionToFixedPoint(t *testing.T) {
	env := SimplifyEnv{"X": &IntLiteral{Value: 2}}
	expr := &BinaryArith{Op: Add, LHS: NewNameRef("X"), RHS: &IntLiteral{Value: 3}}
	assert.True(t, expr.Simplify(env).Equal(&IntLiteral{Value: 5}))
}

func TestSimplifyIsIdempotent(t *testing.T) {
	env := SimplifyEnv{"X": &IntLiteral{Value: 2}}
	expr := &BinaryArith{
		Op:  Add,
		LHS: &BinaryArith{Op: Mul, LHS: NewNameRef("X"), RHS: &IntLiteral{Value: 1}},
		RHS: &IntLiteral{Value: 0},
	}
	once := expr.Simplify(env)
	twice := once.Simplify(env)
	assert.True(t, once.Equal(twice))
}

func TestValidateUnknownReference(t *testing.T) {
	env := NewGlobalEnv()
	err := NewNameRef("Missing").Validate(env)
	require.Error(t, err)
	var ve *rflxerr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unknown_reference", ve.Kind)
}

func TestValidateMarksReferenced(t *testing.T) {
	env := NewGlobalEnv()
	d := NewDeclaration("X", &VariableDecl{TypeName: "Integer"})
	require.NoError(t, env.Define("X", d))
	require.False(t, d.Referenced())
	require.NoError(t, NewNameRef("X").Validate(env))
	assert.True(t, d.Referenced())
}

package parse

import (
	"testing"

	"github.com/senier/RecordFlux/lang"
	"github.com/senier/RecordFlux/rflxerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionConjunctionOfRelations(t *testing.T) {
	e, err := Expression("Foo = Bar and Bar /= Baz")
	require.NoError(t, err)

	want := &lang.Logical{Op: lang.LogicalAnd, Operands: []lang.Expression{
		&lang.BinaryRelation{Op: lang.EqualOp, LHS: lang.NewNameRef("Foo"), RHS: lang.NewNameRef("Bar")},
		&lang.BinaryRelation{Op: lang.NotEqual, LHS: lang.NewNameRef("Bar"), RHS: lang.NewNameRef("Baz")},
	}}
	assert.True(t, e.Equal(want), "got %s", e.Pretty())
}

func TestExpressionSetOperator(t *testing.T) {
	e, err := Expression("Foo not in Bar")
	require.NoError(t, err)

	want := &lang.SetMembership{Negate: true, Elem: lang.NewNameRef("Foo"), Set: lang.NewNameRef("Bar")}
	assert.True(t, e.Equal(want), "got %s", e.Pretty())
}

func TestExpressionAttributeAndConjunction(t *testing.T) {
	e, err := Expression("Foo'Valid and Bar'Valid")
	require.NoError(t, err)

	want := &lang.Logical{Op: lang.LogicalAnd, Operands: []lang.Expression{
		&lang.Attribute{Kind: lang.AttrValid, Operand: lang.NewNameRef("Foo")},
		&lang.Attribute{Kind: lang.AttrValid, Operand: lang.NewNameRef("Bar")},
	}}
	assert.True(t, e.Equal(want), "got %s", e.Pretty())
}

func TestExpressionComplexPrecedence(t *testing.T) {
	// A = B or C = D and E = F parses as Or(Equal(A,B), And(Equal(C,D), Equal(E,F))).
	e, err := Expression("A = B or C = D and E = F")
	require.NoError(t, err)

	eq := func(l, r string) *lang.BinaryRelation {
		return &lang.BinaryRelation{Op: lang.EqualOp, LHS: lang.NewNameRef(l), RHS: lang.NewNameRef(r)}
	}
	want := &lang.Logical{Op: lang.LogicalOr, Operands: []lang.Expression{
		eq("A", "B"),
		&lang.Logical{Op: lang.LogicalAnd, Operands: []lang.Expression{eq("C", "D"), eq("E", "F")}},
	}}
	assert.True(t, e.Equal(want), "got %s", e.Pretty())
}

func TestExpressionMessageAggregate(t *testing.T) {
	e, err := Expression(`Msg'(Tag => 1, Value => "x")`)
	require.NoError(t, err)

	want := &lang.MessageAggregate{TypeName: "Msg", Fields: []lang.FieldInit{
		{Name: "Tag", Value: &lang.IntLiteral{Value: 1}},
		{Name: "Value", Value: &lang.StringLiteral{Value: "x"}},
	}}
	assert.True(t, e.Equal(want), "got %s", e.Pretty())
}

func TestExpressionEmptyMessageAggregate(t *testing.T) {
	e, err := Expression("Msg'(null message)")
	require.NoError(t, err)
	want := &lang.MessageAggregate{TypeName: "Msg", Empty: true}
	assert.True(t, e.Equal(want))
}

func TestExpressionQuantifier(t *testing.T) {
	e, err := Expression("for all X in List => X'Valid")
	require.NoError(t, err)
	q, ok := e.(*lang.Quantifier)
	require.True(t, ok)
	assert.Equal(t, lang.QuantAll, q.Kind)
	assert.Equal(t, "X", q.Var)
}

func TestExpressionComprehensionDefaultsWhenToTrue(t *testing.T) {
	e, err := Expression("[for X in List => X]")
	require.NoError(t, err)
	c, ok := e.(*lang.Comprehension)
	require.True(t, ok)
	assert.True(t, c.Condition.Equal(lang.True))
}

func TestExpressionCallEmittedUnconditionally(t *testing.T) {
	e, err := Expression("Convert(X)")
	require.NoError(t, err)
	call, ok := e.(*lang.Call)
	require.True(t, ok)
	assert.Equal(t, "Convert", call.Target)
	assert.Len(t, call.Args, 1)
}

func TestStatementForms(t *testing.T) {
	erase, err := Statement("X := null")
	require.NoError(t, err)
	assert.IsType(t, &lang.Erase{}, erase)

	assign, err := Statement("X := Y + 1")
	require.NoError(t, err)
	assert.IsType(t, &lang.Assignment{}, assign)

	listOp, err := Statement("X'Append(Y)")
	require.NoError(t, err)
	assert.IsType(t, &lang.ListOp{}, listOp)

	reset, err := Statement("X'Reset")
	require.NoError(t, err)
	assert.IsType(t, &lang.Reset{}, reset)

	call, err := Statement("Send(X)")
	require.NoError(t, err)
	assert.IsType(t, &lang.CallStatement{}, call)
}

func TestDeclarationForms(t *testing.T) {
	name, decl, err := Declaration("X : Integer")
	require.NoError(t, err)
	assert.Equal(t, "X", name)
	assert.IsType(t, &lang.VariableDecl{}, decl.Kind)

	name, decl, err = Declaration("X : Integer := 1")
	require.NoError(t, err)
	assert.Equal(t, "X", name)
	v := decl.Kind.(*lang.VariableDecl)
	require.NotNil(t, v.Init)

	name, decl, err = Declaration("X : Integer renames Y.Z")
	require.NoError(t, err)
	assert.Equal(t, "X", name)
	assert.IsType(t, &lang.RenamesDecl{}, decl.Kind)

	name, decl, err = Declaration("Opaque is private")
	require.NoError(t, err)
	assert.Equal(t, "Opaque", name)
	assert.IsType(t, &lang.PrivateDecl{}, decl.Kind)

	name, decl, err = Declaration("Add (X : Integer; Y : Integer) return Integer")
	require.NoError(t, err)
	assert.Equal(t, "Add", name)
	sub := decl.Kind.(*lang.SubprogramDecl)
	assert.Len(t, sub.Args, 2)
	assert.Equal(t, "Integer", sub.Return)
}

func TestParseErrorCarriesFragmentAndPosition(t *testing.T) {
	_, err := Expression("Foo and")
	require.Error(t, err)
	var pe *rflxerr.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Foo and", pe.Fragment)
	assert.Equal(t, rflxerr.Position{Line: 1, Column: 8}, pe.Pos)
}

package lang

import (
	"testing"

	"github.com/senier/RecordFlux/fol"
	"github.com/stretchr/testify/assert"
)

func TestToFOLRelationalLowering(t *testing.T) {
	rel := &BinaryRelation{Op: EqualOp, LHS: NewNameRef("X"), RHS: &IntLiteral{Value: 1}}
	assert.Equal(t, "(X = 1)", rel.ToFOL().String())
}

func TestToFOLLogicalLowering(t *testing.T) {
	expr := &Logical{Op: LogicalAnd, Operands: []Expression{
		&BinaryRelation{Op: EqualOp, LHS: NewNameRef("X"), RHS: &IntLiteral{Value: 1}},
		&Not{Operand: NewNameRef("Y")},
	}}
	got := expr.ToFOL()
	assert.Equal(t, "((X = 1) and not Y)", got.String())
}

func TestToFOLUnsupportedForms(t *testing.T) {
	agg := &MessageAggregate{TypeName: "Msg", Empty: true}
	assert.IsType(t, &fol.Unsupported{}, agg.ToFOL())

	comp := &Comprehension{Var: "X", Domain: NewNameRef("List"), Selector: NewNameRef("X"), Condition: True}
	assert.IsType(t, &fol.Unsupported{}, comp.ToFOL())
}

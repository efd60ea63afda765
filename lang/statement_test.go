package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentValidateRequiresVariableOrRenamesTarget(t *testing.T) {
	env := NewGlobalEnv()
	require.NoError(t, env.Define("X", NewDeclaration("X", &VariableDecl{TypeName: "Integer"})))
	require.NoError(t, env.Define("Chan", NewDeclaration("Chan", &ChannelDecl{Read: true})))

	assign := &Assignment{Target: "X", Value: &IntLiteral{Value: 1}}
	require.NoError(t, assign.Validate(env))

	bad := &Assignment{Target: "Chan", Value: &IntLiteral{Value: 1}}
	assert.Error(t, bad.Validate(env))
}

func TestEraseRequiresVariableTarget(t *testing.T) {
	env := NewGlobalEnv()
	require.NoError(t, env.Define("X", NewDeclaration("X", &VariableDecl{TypeName: "Integer"})))
	require.NoError(t, env.Define("R", NewDeclaration("R", &RenamesDecl{TypeName: "Integer", Expr: NewNameRef("X")})))

	require.NoError(t, (&Erase{Target: "X"}).Validate(env))
	assert.Error(t, (&Erase{Target: "R"}).Validate(env))
}

func TestListOpValidatesArgAndTarget(t *testing.T) {
	env := NewGlobalEnv()
	require.NoError(t, env.Define("Items", NewDeclaration("Items", &VariableDecl{TypeName: "List"})))
	op := &ListOp{Target: "Items", Kind: ListAppend, Arg: &IntLiteral{Value: 1}}
	require.NoError(t, op.Validate(env))
	assert.Equal(t, "Items'Append(1)", op.Pretty())
}

func TestResetAcceptsChannelListOrVariableTarget(t *testing.T) {
	env := NewGlobalEnv()
	require.NoError(t, env.Define("Chan", NewDeclaration("Chan", &ChannelDecl{Read: true})))
	require.NoError(t, env.Define("Items", NewDeclaration("Items", &VariableDecl{TypeName: "List"})))
	require.NoError(t, env.Define("Send", NewDeclaration("Send", mustSubprogram(t))))

	require.NoError(t, (&Reset{Target: "Chan"}).Validate(env))
	require.NoError(t, (&Reset{Target: "Items"}).Validate(env))
	assert.Equal(t, "Chan'Reset", (&Reset{Target: "Chan"}).Pretty())

	bad := &Reset{Target: "Send"}
	assert.Error(t, bad.Validate(env))
}

func mustSubprogram(t *testing.T) *SubprogramDecl {
	t.Helper()
	sub, err := NewSubprogramDecl(nil, "Integer")
	require.NoError(t, err)
	return sub
}

func TestCallStatementDelegatesToCall(t *testing.T) {
	env := NewGlobalEnv()
	sub, err := NewSubprogramDecl([]FormalArg{{Name: "X", TypeName: "Integer"}}, "Integer")
	require.NoError(t, err)
	require.NoError(t, env.Define("Send", NewDeclaration("Send", sub)))

	stmt := &CallStatement{Call: &Call{Target: "Send", Args: []Expression{&IntLiteral{Value: 1}}}}
	require.NoError(t, stmt.Validate(env))

	badArity := &CallStatement{Call: &Call{Target: "Send"}}
	assert.Error(t, badArity.Validate(env))
}

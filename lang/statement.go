package lang

import "github.com/senier/RecordFlux/rflxerr"

// Statement is the closed interface implemented by every node of the
// action-statement algebra (§4.2): Assignment, Erase, Reset, ListOp and
// CallStatement.
type Statement interface {
	isStatement()
	Pretty() string
	Validate(env *Env) error
}

func requireVariableOrRenames(env *Env, target string) (*Declaration, error) {
	d, ok := env.Lookup(target)
	if !ok {
		return nil, rflxerr.UnknownReference(target)
	}
	switch d.Kind.(type) {
	case *VariableDecl, *RenamesDecl:
		d.MarkReferenced()
		return d, nil
	default:
		return nil, rflxerr.NewValidationError("bad_assignment_target",
			"%q is not a variable or renames declaration", target)
	}
}

// Assignment is `target := value`.
type Assignment struct {
	Target string
	Value  Expression
}

func (*Assignment) isStatement() {}

func (a *Assignment) Pretty() string { return a.Target + " := " + a.Value.Pretty() }

// Validate requires Value to validate against env and Target to resolve to
// a Variable or Renames declaration (§4.2).
func (a *Assignment) Validate(env *Env) error {
	if err := a.Value.Validate(env); err != nil {
		return err
	}
	_, err := requireVariableOrRenames(env, a.Target)
	return err
}

// Erase clears a variable back to its undefined state; equivalent to
// `target := Undefined` semantically, but kept as its own statement form
// per §4.2 since it carries no expression payload.
type Erase struct{ Target string }

func (*Erase) isStatement() {}

func (e *Erase) Pretty() string { return e.Target + " := null" }

// Validate requires Target to resolve to a Variable declaration; Erase
// cannot target a Renames, since a renaming has no storage of its own to
// clear.
func (e *Erase) Validate(env *Env) error {
	d, ok := env.Lookup(e.Target)
	if !ok {
		return rflxerr.UnknownReference(e.Target)
	}
	if _, ok := d.Kind.(*VariableDecl); !ok {
		return rflxerr.NewValidationError("bad_erase_target", "%q is not a variable declaration", e.Target)
	}
	d.MarkReferenced()
	return nil
}

// Reset re-initializes a channel- or list-typed variable to its empty
// state. Unlike Assignment/Erase/ListOp, the target may also resolve to a
// channel declaration (§4.2), so it does not share requireVariableOrRenames.
type Reset struct{ Target string }

func (*Reset) isStatement() {}

func (r *Reset) Pretty() string { return r.Target + "'Reset" }

func (r *Reset) Validate(env *Env) error {
	d, ok := env.Lookup(r.Target)
	if !ok {
		return rflxerr.UnknownReference(r.Target)
	}
	switch d.Kind.(type) {
	case *VariableDecl, *RenamesDecl, *ChannelDecl:
		d.MarkReferenced()
		return nil
	default:
		return rflxerr.NewValidationError("bad_reset_target",
			"%q is not a channel or list-typed variable", r.Target)
	}
}

// ListOpKind distinguishes the two list-mutating operations.
type ListOpKind string

const (
	ListAppend ListOpKind = "Append"
	ListExtend ListOpKind = "Extend"
)

// ListOp is `target'Append(arg)` or `target'Extend(arg)`: semantically
// equivalent to `target := CALL(kind, target, arg)` per §4.2, but kept
// distinct so the statement's pretty-printed form matches the source
// syntax.
type ListOp struct {
	Target string
	Kind   ListOpKind
	Arg    Expression
}

func (*ListOp) isStatement() {}

func (l *ListOp) Pretty() string {
	return l.Target + "'" + string(l.Kind) + "(" + l.Arg.Pretty() + ")"
}

func (l *ListOp) Validate(env *Env) error {
	if err := l.Arg.Validate(env); err != nil {
		return err
	}
	_, err := requireVariableOrRenames(env, l.Target)
	return err
}

// CallStatement is a bare subprogram call used as a statement, e.g.
// `Send(Message)`.
type CallStatement struct{ Call *Call }

func (*CallStatement) isStatement() {}

func (c *CallStatement) Pretty() string { return c.Call.Pretty() }

func (c *CallStatement) Validate(env *Env) error { return c.Call.Validate(env) }

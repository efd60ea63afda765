package lang

import "github.com/senier/RecordFlux/rflxerr"

// Env is a declaration environment with chained (stacked) lookup: locals
// shadow globals at lookup time without copying the parent map, matching
// the re-architecture guidance that shared declaration environments across
// states must not require copying the global map per transition.
type Env struct {
	parent *Env
	decls  map[string]*Declaration
}

// NewGlobalEnv returns a fresh, parentless environment for global
// declarations.
func NewGlobalEnv() *Env {
	return &Env{decls: map[string]*Declaration{}}
}

// Child returns a new environment chained to e, suitable for a state's
// local declarations. Lookups against the child consult its own
// declarations first, falling back to e (and its ancestors) otherwise.
func (e *Env) Child() *Env {
	return &Env{parent: e, decls: map[string]*Declaration{}}
}

// Define inserts a new declaration at this level of the chain. It fails if
// a declaration of the same name already exists at this level (duplicate
// declarations within one section/scope), but does not consult parent
// levels — shadowing a parent declaration is a validator-level concern
// (invariant 7 of the FSM data model), not a parse-time error here.
func (e *Env) Define(name string, d *Declaration) error {
	if _, ok := e.decls[name]; ok {
		return rflxerr.NewValidationError("duplicate_declaration", "declaration %q already exists", name)
	}
	e.decls[name] = d
	return nil
}

// Lookup resolves name against this level, then each ancestor in turn.
func (e *Env) Lookup(name string) (*Declaration, bool) {
	for env := e; env != nil; env = env.parent {
		if d, ok := env.decls[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// LookupLocal resolves name only against this level, ignoring ancestors.
// Used by the validator to detect local-vs-global shadowing (invariant 7):
// a name is "local" if it is defined at this level, "global" if it
// resolves only through an ancestor.
func (e *Env) LookupLocal(name string) (*Declaration, bool) {
	d, ok := e.decls[name]
	return d, ok
}

// Names returns the declaration names defined at this level only, in
// insertion order is not guaranteed (map iteration); callers that need a
// deterministic order should sort the result.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.decls))
	for n := range e.decls {
		names = append(names, n)
	}
	return names
}

// All returns the declarations defined at this level only.
func (e *Env) All() map[string]*Declaration {
	return e.decls
}

// Parent returns the environment this one is chained to, or nil for a
// global (root) environment.
func (e *Env) Parent() *Env {
	return e.parent
}

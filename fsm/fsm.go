// Package fsm assembles and validates the state-machine data model
// (component F): State, Transition, StateMachine, and the validator
// enforcing the 11 invariants of SPEC_FULL.md §3, grounded on
// _examples/original_source/rflx/fsm.py's State/Transition/StateMachine
// classes and __validate_states/__validate_declarations methods, and on
// the teacher's validate.Issue/Issues pattern
// (google-gapid/gapil/validate/issues.go) for collecting diagnostics.
package fsm

import "github.com/senier/RecordFlux/lang"

// Transition has a target-state name and a guard condition, defaulting to
// lang.True when the source document omits it.
type Transition struct {
	Target    string
	Condition lang.Expression
}

// NewTransition builds a Transition with the default TRUE condition.
func NewTransition(target string) *Transition {
	return &Transition{Target: target, Condition: lang.True}
}

// State has a name, an ordered transition list, an ordered action list,
// and its own local declaration environment, chained to the owning
// StateMachine's globals.
type State struct {
	Name        string
	Transitions []*Transition
	Actions     []lang.Statement
	Locals      *lang.Env
}

// StateMachine has a name, initial/final state names, an ordered state
// list, and a global declaration environment.
type StateMachine struct {
	name    string
	initial string
	final   string
	states  []*State
	globals *lang.Env
}

// New assembles an unvalidated StateMachine. Call Validate before treating
// it as a trusted value.
func New(name, initial, final string, states []*State, globals *lang.Env) *StateMachine {
	return &StateMachine{name: name, initial: initial, final: final, states: states, globals: globals}
}

func (m *StateMachine) Name() string        { return m.name }
func (m *StateMachine) Initial() string     { return m.initial }
func (m *StateMachine) Final() string       { return m.final }
func (m *StateMachine) States() []*State    { return m.states }

// Declarations returns the global declaration map.
func (m *StateMachine) Declarations() map[string]*lang.Declaration {
	return m.globals.All()
}

func (m *StateMachine) state(name string) (*State, bool) {
	for _, s := range m.states {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

package fsm

import (
	"strconv"
	"strings"

	"github.com/senier/RecordFlux/lang"
	"github.com/senier/RecordFlux/rflxerr"
	"github.com/senier/RecordFlux/rlog"
)

// reservedBuiltins is the case-insensitive set of names a global
// declaration may never use (§3 invariant 10, §6).
var reservedBuiltins = map[string]bool{
	"READ": true, "WRITE": true, "CALL": true,
	"DATA_AVAILABLE": true, "APPEND": true, "EXTEND": true,
}

// Validate runs the six ordered checks of §4.6 against m, short-circuiting
// at the first failure. log defaults to a discard logger when nil.
func Validate(m *StateMachine, log *rlog.Logger) error {
	log = log.With("statemachine", m.name)

	if err := validateStateExistence(m); err != nil {
		return err
	}
	if err := validateNoDuplicateStates(m); err != nil {
		return err
	}
	if err := validateReachability(m); err != nil {
		return err
	}
	for _, s := range m.states {
		sl := log.With("state", s.Name)
		if err := validateConditions(s, sl); err != nil {
			return err
		}
		if err := validateActions(s, sl); err != nil {
			return err
		}
	}
	return validateDeclarations(m, log)
}

func validateStateExistence(m *StateMachine) error {
	if _, ok := m.state(m.initial); !ok {
		return rflxerr.NewModelError("missing_initial_state", "", "initial state %q does not exist", m.initial)
	}
	if _, ok := m.state(m.final); !ok {
		return rflxerr.NewModelError("missing_final_state", "", "final state %q does not exist", m.final)
	}
	if len(m.states) == 0 {
		return rflxerr.NewModelError("empty_statemachine", "", "state machine has no states")
	}
	for _, s := range m.states {
		for i, t := range s.Transitions {
			if _, ok := m.state(t.Target); !ok {
				return rflxerr.NewModelError("unknown_transition_target",
					stateLocation(s.Name, i), "transition target %q does not exist", t.Target)
			}
		}
	}
	return nil
}

func validateNoDuplicateStates(m *StateMachine) error {
	seen := map[string]bool{}
	for _, s := range m.states {
		if seen[s.Name] {
			return rflxerr.NewModelError("duplicate_state", "", "duplicate state %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// validateReachability computes the incoming-transition set in one pass
// and flags states with no inputs (other than the initial state, which
// needs none) as unreachable, and states with no outputs (other than the
// final state) as detached.
func validateReachability(m *StateMachine) error {
	hasIncoming := map[string]bool{}
	hasOutgoing := map[string]bool{}
	for _, s := range m.states {
		if len(s.Transitions) > 0 {
			hasOutgoing[s.Name] = true
		}
		for _, t := range s.Transitions {
			hasIncoming[t.Target] = true
		}
	}
	for _, s := range m.states {
		if s.Name != m.initial && !hasIncoming[s.Name] {
			return rflxerr.NewModelError("unreachable_state", "", "state %q is unreachable", s.Name)
		}
		if s.Name != m.final && !hasOutgoing[s.Name] {
			return rflxerr.NewModelError("detached_state", "", "state %q is detached (no outgoing transitions)", s.Name)
		}
	}
	return nil
}

func validateConditions(s *State, log *rlog.Logger) error {
	for i, t := range s.Transitions {
		log.Debugf("validating transition %d condition", i)
		if err := t.Condition.Validate(s.Locals); err != nil {
			return rflxerr.WrapModel(err, stateLocation(s.Name, i))
		}
	}
	return nil
}

func validateActions(s *State, log *rlog.Logger) error {
	for i, a := range s.Actions {
		log.Debugf("validating action %d", i)
		if err := a.Validate(s.Locals); err != nil {
			return rflxerr.WrapModel(err, actionLocation(s.Name, i))
		}
	}
	return nil
}

// validateDeclarations runs the final, multi-part check of §4.6 step 6.
// Per the fixed open question (SPEC_FULL.md §3, spec.md §9): a
// PrivateDecl is skipped for the "unused" check but validation continues
// to the next entry — it must NOT return from the whole loop the way the
// original `__validate_declarations` does.
func validateDeclarations(m *StateMachine, log *rlog.Logger) error {
	for _, s := range m.states {
		for _, name := range sortedNames(s.Locals.All()) {
			d := s.Locals.All()[name]
			if _, ok := m.globals.LookupLocal(name); ok {
				return rflxerr.NewModelError("shadowed_declaration", s.Name,
					"local declaration %q shadows a global declaration", name)
			}
			if !d.Referenced() {
				return rflxerr.NewModelError("unused_local", s.Name, "unused local variable %q", name)
			}
		}
	}

	globals := m.globals.All()
	for _, name := range sortedNames(globals) {
		d := globals[name]
		if reservedBuiltins[strings.ToUpper(name)] {
			return rflxerr.NewModelError("reserved_builtin", "", "global declaration %q shadows builtin", name)
		}
		if err := d.Validate(m.globals); err != nil {
			return rflxerr.WrapModel(err, "global declaration "+name)
		}
		if _, private := d.Kind.(*lang.PrivateDecl); private {
			log.Debugf("skipping unused-check for private declaration %q", name)
			continue
		}
		if !d.Referenced() {
			return rflxerr.NewModelError("unused_global", "", "unused global declaration %q", name)
		}
	}
	return nil
}

func sortedNames(m map[string]*lang.Declaration) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

func stateLocation(state string, transitionIndex int) string {
	return "state " + state + ", transition " + strconv.Itoa(transitionIndex)
}

func actionLocation(state string, actionIndex int) string {
	return "state " + state + ", action " + strconv.Itoa(actionIndex)
}

// Package session implements the document decoder adapter (component E):
// it walks an already-decoded *yaml.Node tree (YAML tokenization itself is
// an external collaborator, per SPEC_FULL.md §4.5) and assembles a
// fsm.StateMachine, handing every embedded expression/statement/
// declaration string to the parse package. Grounded on
// _examples/original_source/rflx/fsm.py's StateMachine.__parse_document
// family of methods, adapted from struct-unmarshal style (as
// aiseeq-glint's config loader does for its own YAML) to a generic
// tree-walk, since this adapter's whole point is to consume a pre-decoded
// tree rather than bind to Go structs. Decode also enforces config.Options'
// MaxTransitionsPerState soft guard while assembling each state.
package session

import (
	"github.com/senier/RecordFlux/config"
	"github.com/senier/RecordFlux/fsm"
	"github.com/senier/RecordFlux/lang"
	"github.com/senier/RecordFlux/parse"
	"github.com/senier/RecordFlux/rflxerr"
	"github.com/senier/RecordFlux/rlog"
	"gopkg.in/yaml.v3"
)

var topLevelKeys = map[string]bool{
	"initial": true, "final": true, "states": true,
	"channels": true, "variables": true, "functions": true,
	"types": true, "renames": true,
}

var stateKeys = map[string]bool{
	"name": true, "actions": true, "transitions": true, "variables": true, "doc": true,
}

var transitionKeys = map[string]bool{
	"target": true, "condition": true, "doc": true,
}

var channelKeys = map[string]bool{
	"name": true, "mode": true,
}

func position(n *yaml.Node) rflxerr.Position {
	return rflxerr.Position{Line: n.Line, Column: n.Column}
}

func unexpectedKey(n *yaml.Node, key, context string) error {
	return rflxerr.NewParseError(key, position(n), "unexpected key %q in %s", key, context)
}

// mapping walks a MappingNode's (key, value) pairs, checking each key
// against allowed and failing on the first unrecognized one.
func mapping(n *yaml.Node, allowed map[string]bool, context string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, rflxerr.NewParseError(context, position(n), "expected a mapping")
	}
	out := map[string]*yaml.Node{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if allowed != nil && !allowed[key.Value] {
			return nil, unexpectedKey(key, key.Value, context)
		}
		out[key.Value] = n.Content[i+1]
	}
	return out, nil
}

func sequence(n *yaml.Node, context string) ([]*yaml.Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, rflxerr.NewParseError(context, position(n), "expected a sequence")
	}
	return n.Content, nil
}

func scalarString(n *yaml.Node, context string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", rflxerr.NewParseError(context, position(n), "expected a scalar")
	}
	return n.Value, nil
}

// Decode assembles and validates a fsm.StateMachine from a pre-decoded
// document tree. root may be a DocumentNode (as produced by
// yaml.Unmarshal into a *yaml.Node) or the top-level MappingNode directly.
// opts.MaxTransitionsPerState, if non-zero, is enforced as a soft guard: a
// state with more transitions than the limit is logged as a warning but
// still fully validated (§4.5/§8.2 — the guard never rejects a document).
func Decode(name string, root *yaml.Node, opts config.Options, log *rlog.Logger) (*fsm.StateMachine, error) {
	log = log.With("document", name)
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}

	top, err := mapping(root, topLevelKeys, "document")
	if err != nil {
		return nil, err
	}

	initial, err := requiredScalarField(top, "initial", "document")
	if err != nil {
		return nil, err
	}
	final, err := requiredScalarField(top, "final", "document")
	if err != nil {
		return nil, err
	}

	globals := lang.NewGlobalEnv()
	for _, section := range []string{"variables", "functions", "types", "renames"} {
		if err := decodeDeclarationSection(top[section], section, globals); err != nil {
			return nil, err
		}
	}
	if err := decodeChannels(top["channels"], globals); err != nil {
		return nil, err
	}

	statesNode, err := sequence(top["states"], "states")
	if err != nil {
		return nil, err
	}
	states := make([]*fsm.State, 0, len(statesNode))
	for _, sn := range statesNode {
		s, err := decodeState(sn, globals, opts, log)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}

	sm := fsm.New(name, initial, final, states, globals)
	if err := fsm.Validate(sm, log); err != nil {
		return nil, err
	}
	return sm, nil
}

func requiredScalarField(top map[string]*yaml.Node, key, context string) (string, error) {
	n, ok := top[key]
	if !ok {
		return "", rflxerr.NewModelError("missing_"+key, "", "document is missing required key %q", key)
	}
	return scalarString(n, context+"."+key)
}

func decodeDeclarationSection(n *yaml.Node, section string, globals *lang.Env) error {
	entries, err := sequence(n, section)
	if err != nil {
		return err
	}
	for _, e := range entries {
		text, err := scalarString(e, section)
		if err != nil {
			return err
		}
		name, decl, err := parse.Declaration(text)
		if err != nil {
			return rflxerr.WrapModel(err, section)
		}
		if err := globals.Define(name, decl); err != nil {
			return rflxerr.WrapModel(err, section)
		}
	}
	return nil
}

func decodeChannels(n *yaml.Node, globals *lang.Env) error {
	entries, err := sequence(n, "channels")
	if err != nil {
		return err
	}
	for _, e := range entries {
		fields, err := mapping(e, channelKeys, "channel")
		if err != nil {
			return err
		}
		nameNode, ok := fields["name"]
		if !ok {
			return rflxerr.NewModelError("missing_channel_name", "", "channel entry missing %q", "name")
		}
		modeNode, ok := fields["mode"]
		if !ok {
			return rflxerr.NewModelError("missing_channel_mode", "", "channel entry missing %q", "mode")
		}
		name, err := scalarString(nameNode, "channel.name")
		if err != nil {
			return err
		}
		mode, err := scalarString(modeNode, "channel.mode")
		if err != nil {
			return err
		}
		kind, err := lang.NewChannelDecl(mode)
		if err != nil {
			return err
		}
		if err := globals.Define(name, lang.NewDeclaration(name, kind)); err != nil {
			return err
		}
	}
	return nil
}

func decodeState(n *yaml.Node, globals *lang.Env, opts config.Options, log *rlog.Logger) (*fsm.State, error) {
	fields, err := mapping(n, stateKeys, "state")
	if err != nil {
		return nil, err
	}
	nameNode, ok := fields["name"]
	if !ok {
		return nil, rflxerr.NewModelError("missing_state_name", "", "state entry missing %q", "name")
	}
	name, err := scalarString(nameNode, "state.name")
	if err != nil {
		return nil, err
	}
	log.Debugf("decoding state %q", name)

	locals := globals.Child()
	varEntries, err := sequence(fields["variables"], "state.variables")
	if err != nil {
		return nil, err
	}
	for _, e := range varEntries {
		text, err := scalarString(e, "state.variables")
		if err != nil {
			return nil, err
		}
		vname, decl, err := parse.Declaration(text)
		if err != nil {
			return nil, rflxerr.WrapModel(err, "state "+name+" variables")
		}
		if err := locals.Define(vname, decl); err != nil {
			return nil, rflxerr.WrapModel(err, "state "+name+" variables")
		}
	}

	var actions []lang.Statement
	actionEntries, err := sequence(fields["actions"], "state.actions")
	if err != nil {
		return nil, err
	}
	for _, e := range actionEntries {
		text, err := scalarString(e, "state.actions")
		if err != nil {
			return nil, err
		}
		stmt, err := parse.Statement(text)
		if err != nil {
			return nil, rflxerr.WrapModel(err, "state "+name+" actions")
		}
		actions = append(actions, stmt)
	}

	var transitions []*fsm.Transition
	transitionEntries, err := sequence(fields["transitions"], "state.transitions")
	if err != nil {
		return nil, err
	}
	for _, e := range transitionEntries {
		t, err := decodeTransition(e, name)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	if opts.MaxTransitionsPerState > 0 && len(transitions) > opts.MaxTransitionsPerState {
		log.With("state", name).Warnf("state %q has %d transitions, exceeding the configured guard of %d",
			name, len(transitions), opts.MaxTransitionsPerState)
	}

	return &fsm.State{Name: name, Transitions: transitions, Actions: actions, Locals: locals}, nil
}

func decodeTransition(n *yaml.Node, stateName string) (*fsm.Transition, error) {
	fields, err := mapping(n, transitionKeys, "transition")
	if err != nil {
		return nil, err
	}
	targetNode, ok := fields["target"]
	if !ok {
		return nil, rflxerr.NewModelError("missing_transition_target", stateName, "transition missing %q", "target")
	}
	target, err := scalarString(targetNode, "transition.target")
	if err != nil {
		return nil, err
	}
	t := fsm.NewTransition(target)
	if condNode, ok := fields["condition"]; ok {
		text, err := scalarString(condNode, "transition.condition")
		if err != nil {
			return nil, err
		}
		cond, err := parse.Expression(text)
		if err != nil {
			return nil, rflxerr.WrapModel(err, "state "+stateName+" transition to "+target)
		}
		t.Condition = cond
	}
	return t, nil
}

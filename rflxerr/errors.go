// Package rflxerr defines the closed error taxonomy shared by the parser,
// the expression algebra and the FSM validator: ParseError for surface
// syntax failures, ValidationError for semantic failures resolving a
// declaration environment, and ModelError for structural FSM failures.
package rflxerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Position is a 1-based line/column into a parsed fragment.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a surface-syntax failure in an embedded expression,
// statement or declaration string, or in a document key.
type ParseError struct {
	Fragment string
	Pos      Position
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (at %q)", e.Pos, e.Message, e.Fragment)
}

// NewParseError constructs a ParseError.
func NewParseError(fragment string, pos Position, format string, args ...interface{}) error {
	return &ParseError{Fragment: fragment, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ValidationError is a semantic failure raised while building or
// validating expressions, statements and declarations: an unknown name, an
// arity mismatch, a duplicate declaration or formal argument, or a target
// of the wrong declaration kind.
type ValidationError struct {
	Kind   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewValidationError constructs a ValidationError.
func NewValidationError(kind, format string, args ...interface{}) error {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// UnknownReference builds the ValidationError raised when a name reference
// fails to resolve against a declaration environment.
func UnknownReference(name string) error {
	return NewValidationError("unknown_reference", "unknown reference %q", name)
}

// ModelError is a structural FSM failure: duplicate states, unreachable or
// detached states, a missing initial/final state or required document key,
// a nonexistent transition target, a bad channel mode, a local declaration
// shadowing a global one, an unused declaration, or a global name that
// collides with a reserved builtin. An unexpected document key is reported
// as a ParseError.
type ModelError struct {
	Rule     string
	Location string
	Message  string
}

func (e *ModelError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Rule, e.Message, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// NewModelError constructs a ModelError.
func NewModelError(rule, location, format string, args ...interface{}) error {
	return &ModelError{Rule: rule, Location: location, Message: fmt.Sprintf(format, args...)}
}

// WrapModel wraps err with additional location context, preserving the
// original as the error's cause.
func WrapModel(err error, location string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "in %s", location)
}

// Cause unwraps a wrapped error down to its root cause.
func Cause(err error) error {
	return errors.Cause(err)
}

package lang

import "github.com/senier/RecordFlux/rflxerr"

// DeclKind is the closed variant of declaration payloads: a Variable,
// Renames, Channel, Subprogram, or Private type declaration.
type DeclKind interface {
	isDeclKind()
	kindName() string
}

// VariableDecl declares a variable of a given type, with an optional
// initializer expression.
type VariableDecl struct {
	TypeName string
	Init     Expression // nil if undeclared
}

func (*VariableDecl) isDeclKind()        {}
func (*VariableDecl) kindName() string   { return "variable" }

// RenamesDecl declares a name as an alias for an underlying expression
// (typically a name path into a message).
type RenamesDecl struct {
	TypeName string
	Expr     Expression
}

func (*RenamesDecl) isDeclKind()      {}
func (*RenamesDecl) kindName() string { return "renames" }

// ChannelDecl declares a named communication endpoint; at least one of
// Read, Write must be true.
type ChannelDecl struct {
	Read, Write bool
}

func (*ChannelDecl) isDeclKind()      {}
func (*ChannelDecl) kindName() string { return "channel" }

// ChannelMode is the surface spelling of a channel's capability.
type ChannelMode string

const (
	ChannelRead      ChannelMode = "Read"
	ChannelWrite     ChannelMode = "Write"
	ChannelReadWrite ChannelMode = "Read_Write"
)

// NewChannelDecl expands a mode symbol into a ChannelDecl, failing on any
// mode spelling outside {Read, Write, Read_Write}.
func NewChannelDecl(mode string) (*ChannelDecl, error) {
	switch ChannelMode(mode) {
	case ChannelRead:
		return &ChannelDecl{Read: true}, nil
	case ChannelWrite:
		return &ChannelDecl{Write: true}, nil
	case ChannelReadWrite:
		return &ChannelDecl{Read: true, Write: true}, nil
	default:
		return nil, rflxerr.NewModelError("bad_channel_mode", "", "invalid channel mode %q", mode)
	}
}

// FormalArg is one (name, type-name) pair in a Subprogram's argument list.
type FormalArg struct {
	Name     string
	TypeName string
}

// SubprogramDecl declares a callable with an ordered list of formal
// arguments and a return type.
type SubprogramDecl struct {
	Args   []FormalArg
	Return string
}

func (*SubprogramDecl) isDeclKind()      {}
func (*SubprogramDecl) kindName() string { return "subprogram" }

// NewSubprogramDecl validates that formal argument names are unique before
// constructing the declaration, per §4.3.
func NewSubprogramDecl(args []FormalArg, ret string) (*SubprogramDecl, error) {
	seen := map[string]bool{}
	for _, a := range args {
		if seen[a.Name] {
			return nil, rflxerr.NewValidationError("duplicate_argument", "duplicate formal argument %q", a.Name)
		}
		seen[a.Name] = true
	}
	return &SubprogramDecl{Args: args, Return: ret}, nil
}

// PrivateDecl declares an opaque type with no visible structure.
type PrivateDecl struct{}

func (*PrivateDecl) isDeclKind()      {}
func (*PrivateDecl) kindName() string { return "private declaration" }

// Declaration is a named binding in an FSM's environment. The referenced
// bit is the sole mutable field: every other field is fixed at
// construction. It is flipped only by MarkReferenced, during validation of
// an expression or statement that resolves a name to this declaration.
type Declaration struct {
	Name       string
	Kind       DeclKind
	referenced bool
}

// NewDeclaration constructs a Declaration. name and kind are fixed for the
// declaration's lifetime.
func NewDeclaration(name string, kind DeclKind) *Declaration {
	return &Declaration{Name: name, Kind: kind}
}

// MarkReferenced sets the referenced bit. It is monotonic: once set, it is
// never cleared.
func (d *Declaration) MarkReferenced() {
	d.referenced = true
}

// Referenced reports whether validation has ever resolved a name to this
// declaration.
func (d *Declaration) Referenced() bool {
	return d.referenced
}

// KindName returns a human-readable label for the declaration's kind, used
// in diagnostic messages ("unused variable X", "unused subprogram Y", …).
func (d *Declaration) KindName() string {
	return d.Kind.kindName()
}

// Validate validates a declaration's embedded expressions against env.
// VariableDecl validates its optional initializer; RenamesDecl validates
// its underlying expression; Channel, Subprogram (argument/return types are
// plain type-name strings, not looked up) and Private declarations carry
// no embedded expressions to validate.
func (d *Declaration) Validate(env *Env) error {
	switch k := d.Kind.(type) {
	case *VariableDecl:
		if k.Init != nil {
			return k.Init.Validate(env)
		}
		return nil
	case *RenamesDecl:
		return k.Expr.Validate(env)
	case *ChannelDecl, *SubprogramDecl, *PrivateDecl:
		return nil
	default:
		return rflxerr.NewValidationError("unsupported_declaration", "unsupported declaration kind %T", k)
	}
}

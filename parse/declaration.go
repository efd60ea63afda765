package parse

import "github.com/senier/RecordFlux/lang"

// parseDeclaration is the public entry point for D's declaration grammar
// (§4.4): Subprogram, VariableDeclaration, Renames, or PrivateDeclaration,
// one per input string. It returns the declared name separately from the
// lang.DeclKind, matching the (name, Declaration) pair §6 specifies.
func parseDeclaration(src string) (string, lang.DeclKind, error) {
	p, err := newExprParser(src)
	if err != nil {
		return "", nil, err
	}
	name, kind, err := p.parseDeclarationBody()
	if err != nil {
		return "", nil, err
	}
	if !p.atEOF() {
		return "", nil, p.fail("unexpected trailing input %q", p.peek().text)
	}
	return name, kind, nil
}

func (p *exprParser) parseDeclarationBody() (string, lang.DeclKind, error) {
	name, err := p.expectIdent()
	if err != nil {
		return "", nil, err
	}

	// `IDENT is private` — PrivateDeclaration.
	if p.peek().kind == tokKeyword && p.peek().text == "is" {
		p.advance()
		if err := p.expectKeyword("private"); err != nil {
			return "", nil, err
		}
		return name, &lang.PrivateDecl{}, nil
	}

	// `IDENT (args) return TYPE` — Subprogram.
	if p.peek().kind == tokSymbol && p.peek().text == "(" {
		p.advance()
		var args []lang.FormalArg
		for {
			argName, err := p.expectIdent()
			if err != nil {
				return "", nil, err
			}
			if err := p.expectSymbol(":"); err != nil {
				return "", nil, err
			}
			argType, err := p.parseQualifiedName()
			if err != nil {
				return "", nil, err
			}
			args = append(args, lang.FormalArg{Name: argName, TypeName: argType})
			if p.peek().kind == tokSymbol && p.peek().text == ";" {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectSymbol(")"); err != nil {
			return "", nil, err
		}
		if err := p.expectKeyword("return"); err != nil {
			return "", nil, err
		}
		ret, err := p.parseQualifiedName()
		if err != nil {
			return "", nil, err
		}
		decl, err := lang.NewSubprogramDecl(args, ret)
		if err != nil {
			return "", nil, err
		}
		return name, decl, nil
	}

	// `IDENT : TYPE [:= EXPR | renames EXPR]` — VariableDeclaration or
	// Renames. A bare `IDENT return TYPE` (no argument list) is also a
	// valid Subprogram per §4.4; handle it before falling into the `:`
	// branch.
	if p.peek().kind == tokKeyword && p.peek().text == "return" {
		p.advance()
		ret, err := p.parseQualifiedName()
		if err != nil {
			return "", nil, err
		}
		decl, err := lang.NewSubprogramDecl(nil, ret)
		if err != nil {
			return "", nil, err
		}
		return name, decl, nil
	}

	if err := p.expectSymbol(":"); err != nil {
		return "", nil, err
	}
	typeName, err := p.parseQualifiedName()
	if err != nil {
		return "", nil, err
	}

	switch {
	case p.peek().kind == tokKeyword && p.peek().text == "renames":
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return "", nil, err
		}
		return name, &lang.RenamesDecl{TypeName: typeName, Expr: expr}, nil

	case p.peek().kind == tokSymbol && p.peek().text == ":=":
		p.advance()
		init, err := p.parseOr()
		if err != nil {
			return "", nil, err
		}
		return name, &lang.VariableDecl{TypeName: typeName, Init: init}, nil

	default:
		return name, &lang.VariableDecl{TypeName: typeName}, nil
	}
}

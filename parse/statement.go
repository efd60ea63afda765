package parse

import "github.com/senier/RecordFlux/lang"

// parseQualifiedName reads a dot-separated identifier chain and returns its
// full dotted spelling, used wherever the grammar calls for a bare type
// name rather than a full expression atom.
func (p *exprParser) parseQualifiedName() (string, error) {
	first, err := p.expectIdent()
	if err != nil {
		return "", err
	}
	name := first
	for p.peek().kind == tokSymbol && p.peek().text == "." {
		p.advance()
		next, err := p.expectIdent()
		if err != nil {
			return "", err
		}
		name += "." + next
	}
	return name, nil
}

// parseStatement is the public entry point for D's action grammar (§4.4):
// Erase, Assignment, ListOperation, Reset, or a bare call statement.
func parseStatement(src string) (lang.Statement, error) {
	p, err := newExprParser(src)
	if err != nil {
		return nil, err
	}
	s, err := p.parseStatementBody()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.fail("unexpected trailing input %q", p.peek().text)
	}
	return s, nil
}

func (p *exprParser) parseStatementBody() (lang.Statement, error) {
	target, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	switch {
	case p.peek().kind == tokSymbol && p.peek().text == ":=":
		p.advance()
		if p.peek().kind == tokKeyword && p.peek().text == "null" {
			p.advance()
			return &lang.Erase{Target: target}, nil
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &lang.Assignment{Target: target, Value: value}, nil

	case p.peek().kind == tokSymbol && p.peek().text == "'":
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		switch name {
		case string(lang.ListAppend), string(lang.ListExtend):
			if err := p.expectSymbol("("); err != nil {
				return nil, err
			}
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return &lang.ListOp{Target: target, Kind: lang.ListOpKind(name), Arg: arg}, nil
		case "Reset":
			return &lang.Reset{Target: target}, nil
		default:
			return nil, p.fail("unknown action suffix %q", name)
		}

	case p.peek().kind == tokSymbol && p.peek().text == "(":
		p.advance()
		var args []lang.Expression
		if !(p.peek().kind == tokSymbol && p.peek().text == ")") {
			for {
				arg, err := p.parseOr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.peek().kind == tokSymbol && p.peek().text == "," {
					p.advance()
					continue
				}
				break
			}
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &lang.CallStatement{Call: &lang.Call{Target: target, Args: args}}, nil

	default:
		return nil, p.fail("unrecognized action starting at %q", p.peek().text)
	}
}

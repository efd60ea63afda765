package parse

import (
	"github.com/senier/RecordFlux/lang"
	"github.com/senier/RecordFlux/rflxerr"
)

func init() {
	keywords["when"] = true
}

// exprParser walks a token stream produced by lex, building lang.Expression
// trees through a cascade of one parse method per precedence level —
// tightest (set membership) down to loosest (logical or) — each falling
// through to the next tighter level when its own operator is absent. This
// is the "explicit precedence array, not a combinator DSL" design note
// from SPEC_FULL.md §4.4.
type exprParser struct {
	src    string
	tokens []token
	pos    int
}

func newExprParser(src string) (*exprParser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &exprParser{src: src, tokens: toks}, nil
}

func (p *exprParser) peek() token { return p.tokens[p.pos] }

func (p *exprParser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *exprParser) fail(format string, args ...interface{}) error {
	return rflxerr.NewParseError(p.src, offsetToPosition(p.src, p.peek().offset), format, args...)
}

func (p *exprParser) expectSymbol(sym string) error {
	if p.peek().kind != tokSymbol || p.peek().text != sym {
		return p.fail("expected %q, found %q", sym, p.peek().text)
	}
	p.advance()
	return nil
}

func (p *exprParser) expectKeyword(kw string) error {
	if p.peek().kind != tokKeyword || p.peek().text != kw {
		return p.fail("expected %q, found %q", kw, p.peek().text)
	}
	p.advance()
	return nil
}

func (p *exprParser) expectIdent() (string, error) {
	if p.peek().kind != tokIdent {
		return "", p.fail("expected identifier, found %q", p.peek().text)
	}
	return p.advance().text, nil
}

func (p *exprParser) atEOF() bool { return p.peek().kind == tokEOF }

// parseExpression is the public entry point for a standalone expression
// string (D's `condition` / embedded-string entry point).
func parseExpression(src string) (lang.Expression, error) {
	p, err := newExprParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.fail("unexpected trailing input %q", p.peek().text)
	}
	return e, nil
}

// --- infix cascade, loosest first ---

func (p *exprParser) parseOr() (lang.Expression, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []lang.Expression{lhs}
	for p.peek().kind == tokKeyword && p.peek().text == "or" {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, rhs)
	}
	if len(operands) == 1 {
		return lhs, nil
	}
	return &lang.Logical{Op: lang.LogicalOr, Operands: operands}, nil
}

func (p *exprParser) parseAnd() (lang.Expression, error) {
	lhs, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	operands := []lang.Expression{lhs}
	for p.peek().kind == tokKeyword && p.peek().text == "and" {
		p.advance()
		rhs, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		operands = append(operands, rhs)
	}
	if len(operands) == 1 {
		return lhs, nil
	}
	return &lang.Logical{Op: lang.LogicalAnd, Operands: operands}, nil
}

var relOps = map[string]lang.RelOp{
	"<": lang.Less, ">": lang.Greater, "=": lang.EqualOp, "/=": lang.NotEqual,
	"<=": lang.LessEqual, ">=": lang.GreaterEqual,
}

func (p *exprParser) parseRelational() (lang.Expression, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokSymbol {
		op, ok := relOps[p.peek().text]
		if !ok {
			break
		}
		p.advance()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &lang.BinaryRelation{Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *exprParser) parseAdditive() (lang.Expression, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokSymbol && (p.peek().text == "+" || p.peek().text == "-") {
		op := lang.Add
		if p.peek().text == "-" {
			op = lang.Sub
		}
		p.advance()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = &lang.BinaryArith{Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *exprParser) parseMultiplicative() (lang.Expression, error) {
	lhs, err := p.parseSet()
	if err != nil {
		return nil, err
	}
	for {
		var op lang.ArithOp
		switch {
		case p.peek().kind == tokSymbol && p.peek().text == "*":
			op = lang.Mul
		case p.peek().kind == tokSymbol && p.peek().text == "/":
			op = lang.Div
		case p.peek().kind == tokSymbol && p.peek().text == "**":
			op = lang.Pow
		case p.peek().kind == tokKeyword && p.peek().text == "mod":
			op = lang.Mod
		default:
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseSet()
		if err != nil {
			return nil, err
		}
		lhs = &lang.BinaryArith{Op: op, LHS: lhs, RHS: rhs}
	}
}

// parseSet handles the tightest infix level, `in` / `not in`; per §4.4 it
// is non-chainable, so at most one occurrence attaches to its left operand.
func (p *exprParser) parseSet() (lang.Expression, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	negate := false
	if p.peek().kind == tokKeyword && p.peek().text == "not" {
		save := p.pos
		p.advance()
		if p.peek().kind == tokKeyword && p.peek().text == "in" {
			negate = true
		} else {
			p.pos = save
			return lhs, nil
		}
	}
	if p.peek().kind == tokKeyword && p.peek().text == "in" {
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &lang.SetMembership{Negate: negate, Elem: lhs, Set: rhs}, nil
	}
	if negate {
		return nil, p.fail("expected \"in\" after \"not\"")
	}
	return lhs, nil
}

func (p *exprParser) parseUnary() (lang.Expression, error) {
	if p.peek().kind == tokSymbol && p.peek().text == "-" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &lang.UnaryNeg{Operand: operand}, nil
	}
	if p.peek().kind == tokKeyword && p.peek().text == "not" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &lang.Not{Operand: operand}, nil
	}
	return p.parseSuffixed()
}

// parseSuffixed parses one atom and then applies the suffix operators
// (attribute, field select, where-binding, message aggregate) repeatedly,
// tightest-binding and left-associative per §4.4.
func (p *exprParser) parseSuffixed() (lang.Expression, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peek().kind == tokSymbol && p.peek().text == "'":
			atom, err = p.parseTick(atom)
		case p.peek().kind == tokSymbol && p.peek().text == ".":
			p.advance()
			var field string
			field, err = p.expectIdent()
			if err == nil {
				atom = &lang.FieldSelect{Object: atom, Field: field}
			}
		case p.peek().kind == tokKeyword && p.peek().text == "where":
			atom, err = p.parseWhere(atom)
		default:
			return atom, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

var attributeKinds = map[string]lang.AttributeKind{
	"Valid": lang.AttrValid, "Present": lang.AttrPresent, "Length": lang.AttrLength,
	"Head": lang.AttrHead, "Opaque": lang.AttrOpaque, "First": lang.AttrFirst,
	"Last": lang.AttrLast, "Size": lang.AttrSize,
}

// parseTick handles the two forms introduced by `'`: an attribute
// application (`X'Valid`) or a message aggregate (`X'(field => expr, …)` /
// `X'(null message)`), distinguished by whether `(` follows.
func (p *exprParser) parseTick(operand lang.Expression) (lang.Expression, error) {
	p.advance() // '
	if p.peek().kind == tokSymbol && p.peek().text == "(" {
		return p.parseAggregate(operand)
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	kind, ok := attributeKinds[name]
	if !ok {
		return nil, p.fail("unknown attribute %q", name)
	}
	return &lang.Attribute{Kind: kind, Operand: operand}, nil
}

func (p *exprParser) aggregateTypeName(operand lang.Expression) (string, error) {
	n, ok := operand.(*lang.NameRef)
	if !ok {
		return "", p.fail("message aggregate requires a type name")
	}
	return n.Name(), nil
}

func (p *exprParser) parseAggregate(operand lang.Expression) (lang.Expression, error) {
	typeName, err := p.aggregateTypeName(operand)
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	if p.peek().kind == tokKeyword && p.peek().text == "null" {
		p.advance()
		if err := p.expectKeyword("message"); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &lang.MessageAggregate{TypeName: typeName, Empty: true}, nil
	}
	var fields []lang.FieldInit
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("=>"); err != nil {
			return nil, err
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, lang.FieldInit{Name: name, Value: value})
		if p.peek().kind == tokSymbol && p.peek().text == "," {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return &lang.MessageAggregate{TypeName: typeName, Fields: fields}, nil
}

func (p *exprParser) parseWhere(base lang.Expression) (lang.Expression, error) {
	p.advance() // where
	var bindings []lang.NamedBinding
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, lang.NamedBinding{Name: name, Value: value})
		if p.peek().kind == tokSymbol && p.peek().text == "," {
			p.advance()
			continue
		}
		break
	}
	return &lang.Binding{Base: base, Bindings: bindings}, nil
}

// parseAtom parses one primary form: a literal, a quantifier, a
// comprehension, a parenthesized group, or a (possibly qualified, possibly
// called) identifier.
func (p *exprParser) parseAtom() (lang.Expression, error) {
	t := p.peek()
	switch {
	case t.kind == tokInt:
		p.advance()
		v, base, err := parseIntLiteral(t.text)
		if err != nil {
			return nil, err
		}
		return &lang.IntLiteral{Value: v, Base: base}, nil

	case t.kind == tokString:
		p.advance()
		return &lang.StringLiteral{Value: t.text}, nil

	case t.kind == tokKeyword && t.text == "True":
		p.advance()
		return lang.True, nil

	case t.kind == tokKeyword && t.text == "False":
		p.advance()
		return lang.False, nil

	case t.kind == tokKeyword && t.text == "for":
		return p.parseQuantifier()

	case t.kind == tokSymbol && t.text == "[":
		return p.parseComprehension()

	case t.kind == tokSymbol && t.text == "(":
		p.advance()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return e, nil

	case t.kind == tokIdent:
		return p.parseIdentOrCall()

	default:
		return nil, p.fail("unexpected token %q", t.text)
	}
}

func (p *exprParser) parseQuantifier() (lang.Expression, error) {
	p.advance() // for
	var kind lang.QuantifierKind
	switch {
	case p.peek().kind == tokKeyword && p.peek().text == "all":
		kind = lang.QuantAll
	case p.peek().kind == tokKeyword && p.peek().text == "some":
		kind = lang.QuantSome
	default:
		return nil, p.fail("expected \"all\" or \"some\", found %q", p.peek().text)
	}
	p.advance()
	v, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	domain, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("=>"); err != nil {
		return nil, err
	}
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return &lang.Quantifier{Kind: kind, Var: v, Domain: domain, Body: body}, nil
}

func (p *exprParser) parseComprehension() (lang.Expression, error) {
	p.advance() // [
	if err := p.expectKeyword("for"); err != nil {
		return nil, err
	}
	v, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	domain, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("=>"); err != nil {
		return nil, err
	}
	selector, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	condition := lang.Expression(lang.True)
	if p.peek().kind == tokKeyword && p.peek().text == "when" {
		p.advance()
		condition, err = p.parseOr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	return &lang.Comprehension{Var: v, Domain: domain, Selector: selector, Condition: condition}, nil
}

// parseIdentOrCall parses a (possibly dotted) identifier chain, then either
// a call's argument list or nothing. Per §4.4, the parser always emits a
// Call node for `NAME(EXPR,…)`; reclassification to a type conversion
// happens during Call.Validate.
func (p *exprParser) parseIdentOrCall() (lang.Expression, error) {
	first, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	parts := []string{first}
	for p.peek().kind == tokSymbol && p.peek().text == "." &&
		p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].kind == tokIdent {
		p.advance()
		next, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	name := parts[0]
	for _, part := range parts[1:] {
		name += "." + part
	}
	if p.peek().kind == tokSymbol && p.peek().text == "(" {
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
		return &lang.Call{Target: name, Args: args}, nil
	}
	return &lang.NameRef{Parts: parts}, nil
}

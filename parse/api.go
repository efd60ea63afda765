package parse

import "github.com/senier/RecordFlux/lang"

// Expression parses a standalone embedded expression string, e.g. a
// transition's condition or a declaration's initializer.
func Expression(text string) (lang.Expression, error) {
	return parseExpression(text)
}

// Statement parses a single action-statement string (§4.4's action
// grammar): Erase, Assignment, ListOperation, Reset, or a bare call.
func Statement(text string) (lang.Statement, error) {
	return parseStatement(text)
}

// Declaration parses a single declaration string (§4.4's declaration
// grammar) and returns its name alongside the constructed declaration.
func Declaration(text string) (string, *lang.Declaration, error) {
	name, kind, err := parseDeclaration(text)
	if err != nil {
		return "", nil, err
	}
	return name, lang.NewDeclaration(name, kind), nil
}

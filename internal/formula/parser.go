package formula

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

type lexer struct {
	input  string
	offset int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() (token, error) {
	for l.offset < len(l.input) && isSpace(l.input[l.offset]) {
		l.offset++
	}
	if l.offset >= len(l.input) {
		return token{kind: tokenEOF, offset: l.offset}, nil
	}

	start := l.offset
	char := l.input[start]
	switch {
	case char == '+' || char == '-' || char == '*' || char == '/':
		l.offset++
		return token{kind: tokenOperator, text: string(char), offset: start}, nil
	case char == '(':
		l.offset++
		return token{kind: tokenLeftParen, text: "(", offset: start}, nil
	case char == ')':
		l.offset++
		return token{kind: tokenRightParen, text: ")", offset: start}, nil
	case isDigit(char) || char == '.':
		return l.number()
	case isIdentStart(char):
		for l.offset < len(l.input) && isIdentPart(l.input[l.offset]) {
			l.offset++
		}
		return token{kind: tokenIdent, text: l.input[start:l.offset], offset: start}, nil
	default:
		return token{}, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, char, start)
	}
}

func (l *lexer) number() (token, error) {
	start := l.offset
	digits := l.digits()
	if l.offset < len(l.input) && l.input[l.offset] == '.' {
		l.offset++
		digits += l.digits()
	}
	if digits == 0 {
		return token{}, fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, start)
	}
	if l.offset < len(l.input) && (l.input[l.offset] == 'e' || l.input[l.offset] == 'E') {
		l.offset++
		if l.offset < len(l.input) && (l.input[l.offset] == '+' || l.input[l.offset] == '-') {
			l.offset++
		}
		if l.digits() == 0 {
			return token{}, fmt.Errorf("%w: malformed exponent at offset %d", ErrSyntax, start)
		}
	}
	if l.offset < len(l.input) && (isIdentStart(l.input[l.offset]) || l.input[l.offset] == '.') {
		return token{}, fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, start)
	}
	return token{kind: tokenNumber, text: l.input[start:l.offset], offset: start}, nil
}

func (l *lexer) digits() int {
	count := 0
	for l.offset < len(l.input) && isDigit(l.input[l.offset]) {
		l.offset++
		count++
	}
	return count
}

type parser struct {
	lexer   *lexer
	current token
	depth   int
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrSyntax, MaxDepth, p.current.offset)
	}
	return nil
}

func (p *parser) advance() error {
	next, err := p.lexer.next()
	if err != nil {
		return err
	}
	p.current = next
	return nil
}

func (p *parser) unexpected() error {
	if p.current.kind == tokenEOF {
		return fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, p.current.text, p.current.offset)
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.current.kind == tokenOperator && (p.current.text == "+" || p.current.text == "-") {
		operator := p.current.text[0]
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{operator: operator, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.kind == tokenOperator && (p.current.text == "*" || p.current.text == "/") {
		operator := p.current.text[0]
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{operator: operator, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.current.kind == tokenOperator && (p.current.text == "+" || p.current.text == "-") {
		operator := p.current.text[0]
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer func() { p.depth-- }()
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{operator: operator, operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	switch p.current.kind {
	case tokenNumber:
		value, err := strconv.ParseFloat(p.current.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, p.current.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return numberNode{value: value}, nil
	case tokenIdent:
		name := p.current.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.current.kind == tokenLeftParen {
			return nil, fmt.Errorf("%w: function calls are not allowed (%s)", ErrSyntax, name)
		}
		return variableNode{name: name}, nil
	case tokenLeftParen:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer func() { p.depth-- }()
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.current.kind != tokenRightParen {
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.unexpected()
	}
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isIdentStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isIdentPart(char byte) bool {
	return isIdentStart(char) || isDigit(char)
}

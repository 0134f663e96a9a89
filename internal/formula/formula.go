// Package formula parses and evaluates unit conversion formulas.
//
// A formula is a closed arithmetic expression over decimal literals, the
// operators + - * /, unary signs, parentheses and named variables. Nothing
// else is accepted, so evaluating a stored formula can never run code.
package formula

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Variable is the name conversion formulas use for the input value.
const Variable = "x"

const (
	// MaxLength bounds the formula text in bytes.
	MaxLength = 1024
	// MaxDepth bounds nesting of parentheses and unary signs.
	MaxDepth = 64
)

var (
	ErrSyntax          = errors.New("formula syntax error")
	ErrUnboundVariable = errors.New("unbound variable")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNonFinite       = errors.New("non-finite result")
)

// Bindings maps variable names to values.
type Bindings map[string]float64

type Expression struct {
	source string
	root   node
}

func Parse(text string) (*Expression, error) {
	if len(text) > MaxLength {
		return nil, fmt.Errorf("%w: formula longer than %d bytes", ErrSyntax, MaxLength)
	}
	p := &parser{lexer: newLexer(text)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.kind != tokenEOF {
		return nil, p.unexpected()
	}
	return &Expression{source: text, root: root}, nil
}

func (expression *Expression) String() string {
	return expression.source
}

// Variables returns the distinct variable names referenced by the expression.
func (expression *Expression) Variables() []string {
	seen := map[string]struct{}{}
	collectVariables(expression.root, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (expression *Expression) Eval(vars Bindings) (float64, error) {
	value, err := expression.root.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrNonFinite
	}
	return value, nil
}

// Evaluate parses text and evaluates it with variable bound to value.
func Evaluate(text string, variable string, value float64) (float64, error) {
	expression, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return expression.Eval(Bindings{variable: value})
}

// Validate checks that text parses and references no variable except allowed.
func Validate(text string, allowed string) error {
	expression, err := Parse(text)
	if err != nil {
		return err
	}
	for _, name := range expression.Variables() {
		if name != allowed {
			return fmt.Errorf("%w: %s", ErrUnboundVariable, name)
		}
	}
	return nil
}

func collectVariables(current node, seen map[string]struct{}) {
	switch typed := current.(type) {
	case variableNode:
		seen[typed.name] = struct{}{}
	case unaryNode:
		collectVariables(typed.operand, seen)
	case binaryNode:
		collectVariables(typed.left, seen)
		collectVariables(typed.right, seen)
	}
}

package formula

import "fmt"

type node interface {
	eval(vars Bindings) (float64, error)
}

type numberNode struct {
	value float64
}

func (n numberNode) eval(Bindings) (float64, error) {
	return n.value, nil
}

type variableNode struct {
	name string
}

func (n variableNode) eval(vars Bindings) (float64, error) {
	value, ok := vars[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, n.name)
	}
	return value, nil
}

type unaryNode struct {
	operator byte
	operand  node
}

func (n unaryNode) eval(vars Bindings) (float64, error) {
	value, err := n.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	if n.operator == '-' {
		return -value, nil
	}
	return value, nil
}

type binaryNode struct {
	operator byte
	left     node
	right    node
}

func (n binaryNode) eval(vars Bindings) (float64, error) {
	left, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	right, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}

	switch n.operator {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrSyntax, n.operator)
	}
}

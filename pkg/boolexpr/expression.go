package boolexpr

import (
	"fmt"
	"strconv"
)

// Expression is a node in a boolean expression tree.
//
// Implementations are immutable. Evaluate recurses into children and
// must not modify the tree or the Environment.
type Expression interface {
	// Evaluate computes the node's value against env.
	// The only failure is an *UndefinedVariableError from a Variable.
	Evaluate(env Environment) (bool, error)

	// String returns a fully parenthesized display form of the tree.
	String() string
}

// Compile-time interface checks.
var (
	_ Expression = Constant{}
	_ Expression = Variable{}
	_ Expression = Not{}
	_ Expression = And{}
	_ Expression = Or{}
	_ Expression = Xor{}
)

// Evaluate evaluates expr against env.
// It is the entry point for callers that need no logging or telemetry;
// see Evaluator for the instrumented form.
func Evaluate(expr Expression, env Environment) (bool, error) {
	if expr == nil {
		return false, ErrNilExpression
	}
	return expr.Evaluate(env)
}

// Constant is a terminal holding a fixed value.
type Constant struct {
	value bool
}

// Convenience constants.
var (
	True  = Const(true)
	False = Const(false)
)

// Const creates a Constant terminal.
func Const(v bool) Constant {
	return Constant{value: v}
}

// Value returns the constant's value.
func (c Constant) Value() bool { return c.value }

// Evaluate returns the constant's value; env is not consulted.
func (c Constant) Evaluate(Environment) (bool, error) {
	return c.value, nil
}

func (c Constant) String() string {
	return strconv.FormatBool(c.value)
}

// Variable is a terminal resolved from the Environment at evaluation time.
type Variable struct {
	name string
}

// Var creates a Variable terminal.
func Var(name string) Variable {
	return Variable{name: name}
}

// Name returns the variable name.
func (v Variable) Name() string { return v.name }

// Evaluate looks the variable up in env.
func (v Variable) Evaluate(env Environment) (bool, error) {
	return env.Lookup(v.name)
}

func (v Variable) String() string {
	return v.name
}

// Not negates a single operand.
//
// Build Not values with NewNot. The zero value has no operand; evaluating
// it returns ErrNilExpression.
type Not struct {
	operand Expression
}

// NewNot creates a negation of x. Panics if x is nil.
func NewNot(x Expression) Not {
	mustOperand("not", x)
	return Not{operand: x}
}

// Operand returns the negated expression.
func (n Not) Operand() Expression { return n.operand }

// Evaluate returns the negation of the operand's value.
func (n Not) Evaluate(env Environment) (bool, error) {
	if n.operand == nil {
		return false, ErrNilExpression
	}
	v, err := n.operand.Evaluate(env)
	if err != nil {
		return false, err
	}
	return !v, nil
}

func (n Not) String() string {
	return "!" + operandString(n.operand)
}

// binary holds the two operands shared by And, Or and Xor.
type binary struct {
	left  Expression
	right Expression
}

func newBinary(op string, l, r Expression) binary {
	mustOperand(op, l)
	mustOperand(op, r)
	return binary{left: l, right: r}
}

// Left returns the left operand.
func (b binary) Left() Expression { return b.left }

// Right returns the right operand.
func (b binary) Right() Expression { return b.right }

// evaluateBoth evaluates the left operand, then the right one, regardless
// of the left result. The left error wins when both sides fail.
func (b binary) evaluateBoth(env Environment) (bool, bool, error) {
	if b.left == nil || b.right == nil {
		return false, false, ErrNilExpression
	}
	l, errL := b.left.Evaluate(env)
	r, errR := b.right.Evaluate(env)
	if errL != nil {
		return false, false, errL
	}
	if errR != nil {
		return false, false, errR
	}
	return l, r, nil
}

func (b binary) format(sym string) string {
	return "(" + operandString(b.left) + " " + sym + " " + operandString(b.right) + ")"
}

// And is the logical conjunction of two operands.
//
// Build And, Or and Xor values with NewAnd, NewOr and NewXor. Their zero
// values have no operands; evaluating one returns ErrNilExpression.
type And struct {
	binary
}

// NewAnd creates l AND r. Panics if either operand is nil.
func NewAnd(l, r Expression) And {
	return And{newBinary("and", l, r)}
}

// Evaluate evaluates both operands and returns their conjunction.
func (a And) Evaluate(env Environment) (bool, error) {
	l, r, err := a.evaluateBoth(env)
	if err != nil {
		return false, err
	}
	return l && r, nil
}

func (a And) String() string { return a.format("&") }

// Or is the logical disjunction of two operands.
type Or struct {
	binary
}

// NewOr creates l OR r. Panics if either operand is nil.
func NewOr(l, r Expression) Or {
	return Or{newBinary("or", l, r)}
}

// Evaluate evaluates both operands and returns their disjunction.
func (o Or) Evaluate(env Environment) (bool, error) {
	l, r, err := o.evaluateBoth(env)
	if err != nil {
		return false, err
	}
	return l || r, nil
}

func (o Or) String() string { return o.format("|") }

// Xor is true iff its two operands differ.
type Xor struct {
	binary
}

// NewXor creates l XOR r. Panics if either operand is nil.
func NewXor(l, r Expression) Xor {
	return Xor{newBinary("xor", l, r)}
}

// Evaluate evaluates both operands and returns whether they differ.
func (x Xor) Evaluate(env Environment) (bool, error) {
	l, r, err := x.evaluateBoth(env)
	if err != nil {
		return false, err
	}
	return l != r, nil
}

func (x Xor) String() string { return x.format("^") }

func operandString(x Expression) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}

func mustOperand(op string, x Expression) {
	if x == nil {
		panic(fmt.Sprintf("boolexpr: nil operand for %s", op))
	}
}

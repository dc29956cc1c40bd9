package boolexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors for evaluation.
var (
	// ErrUndefinedVariable indicates a variable has no binding in the Environment.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrNilExpression indicates a nil tree was passed to an Evaluator.
	ErrNilExpression = errors.New("expression cannot be nil")

	// ErrNilContext indicates Evaluate was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// Sentinel errors for tree analysis.
var (
	// ErrTooManyVariables indicates a truth table would be too large to enumerate.
	ErrTooManyVariables = errors.New("too many variables for truth table")
)

// UndefinedVariableError is returned when a Variable is evaluated against an
// Environment that has no binding for its name.
type UndefinedVariableError struct {
	// Name is the variable that could not be resolved.
	Name string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// Unwrap returns ErrUndefinedVariable for errors.Is support.
func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// EvaluationError wraps a failure surfaced by an Evaluator with the
// evaluation it belongs to.
type EvaluationError struct {
	// EvalID identifies the evaluation in logs and traces.
	EvalID string
	// Expr is the display form of the evaluated tree.
	Expr string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %s [%s]: %v", e.Expr, e.EvalID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}

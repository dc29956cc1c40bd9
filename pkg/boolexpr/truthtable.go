package boolexpr

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// MaxTruthTableVariables bounds the number of variables TruthTable will
// enumerate (2^16 rows).
const MaxTruthTableVariables = 16

// Row is one assignment of a truth table and the resulting value.
type Row struct {
	Bindings map[string]bool
	Value    bool
}

// TruthTable evaluates expr under every assignment of its variables.
//
// Variables are ordered as returned by Variables; rows are ordered by
// counting in binary with the first variable as the most significant bit,
// starting from all-false. A tree with no variables yields a single row.
func TruthTable(expr Expression) ([]Row, error) {
	if expr == nil {
		return nil, ErrNilExpression
	}
	return truthTable(expr, Variables(expr))
}

func truthTable(expr Expression, names []string) ([]Row, error) {
	if len(names) > MaxTruthTableVariables {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyVariables, len(names), MaxTruthTableVariables)
	}

	total := 1 << len(names)
	rows := make([]Row, 0, total)
	for i := range total {
		bindings := make(map[string]bool, len(names))
		for j, name := range names {
			bit := len(names) - 1 - j
			bindings[name] = i&(1<<bit) != 0
		}
		v, err := expr.Evaluate(NewEnvironment(bindings))
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Bindings: bindings, Value: v})
	}
	return rows, nil
}

// Equivalent reports whether a and b evaluate to the same value under
// every assignment of the union of their variables.
func Equivalent(a, b Expression) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilExpression
	}
	names := lo.Union(Variables(a), Variables(b))
	slices.Sort(names)

	left, err := truthTable(a, names)
	if err != nil {
		return false, err
	}
	right, err := truthTable(b, names)
	if err != nil {
		return false, err
	}
	for i := range left {
		if left[i].Value != right[i].Value {
			return false, nil
		}
	}
	return true, nil
}

package boolexpr

import (
	"slices"

	"github.com/samber/lo"
)

// Operands returns the direct children of expr, left to right.
// Terminals have no children and return nil.
func Operands(expr Expression) []Expression {
	switch n := expr.(type) {
	case Not:
		return []Expression{n.operand}
	case And:
		return []Expression{n.left, n.right}
	case Or:
		return []Expression{n.left, n.right}
	case Xor:
		return []Expression{n.left, n.right}
	default:
		return nil
	}
}

// Walk visits expr and its descendants depth-first, parents before
// children. If fn returns false, the children of that node are skipped.
func Walk(expr Expression, fn func(Expression) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	for _, child := range Operands(expr) {
		Walk(child, fn)
	}
}

// Variables returns the distinct variable names referenced by expr, sorted.
func Variables(expr Expression) []string {
	var names []string
	Walk(expr, func(e Expression) bool {
		if v, ok := e.(Variable); ok {
			names = append(names, v.name)
		}
		return true
	})
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}

// Depth returns the number of nodes on the longest root-to-leaf path.
// A terminal has depth 1; a nil tree has depth 0.
func Depth(expr Expression) int {
	if expr == nil {
		return 0
	}
	deepest := 0
	for _, child := range Operands(expr) {
		deepest = max(deepest, Depth(child))
	}
	return deepest + 1
}

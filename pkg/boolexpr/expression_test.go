package boolexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bools = []bool{false, true}

func abEnv(a, b bool) Environment {
	return NewEnvironment(map[string]bool{"a": a, "b": b})
}

func TestEvaluate_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		env  Environment
		want bool
	}{
		{
			name: "true and true over empty environment",
			expr: NewAnd(Const(true), Const(true)),
			env:  EmptyEnvironment(),
			want: true,
		},
		{
			name: "a or b",
			expr: NewOr(Var("a"), Var("b")),
			env:  abEnv(false, true),
			want: true,
		},
		{
			name: "true xor a",
			expr: NewXor(Const(true), Var("a")),
			env:  NewEnvironment(map[string]bool{"a": true}),
			want: false,
		},
		{
			name: "a and not b",
			expr: NewAnd(Var("a"), NewNot(Var("b"))),
			env:  abEnv(false, true),
			want: false,
		},
		{
			name: "a xor b",
			expr: NewXor(Var("a"), Var("b")),
			env:  abEnv(false, true),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "Evaluate(%s)", tt.expr)
		})
	}
}

func TestEvaluate_UndefinedVariable(t *testing.T) {
	_, err := Evaluate(Var("z"), EmptyEnvironment())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndefinedVariable)

	var undef *UndefinedVariableError
	require.True(t, errors.As(err, &undef))
	assert.Equal(t, "z", undef.Name)
	assert.Equal(t, `undefined variable "z"`, err.Error())
}

func TestEvaluate_NilExpression(t *testing.T) {
	_, err := Evaluate(nil, EmptyEnvironment())
	assert.ErrorIs(t, err, ErrNilExpression)
}

func TestNot(t *testing.T) {
	for _, v := range bools {
		got, err := NewNot(Const(v)).Evaluate(EmptyEnvironment())
		require.NoError(t, err)
		assert.Equal(t, !v, got, "!%v", v)
	}

	t.Run("variable", func(t *testing.T) {
		env := abEnv(false, true)

		got, err := NewNot(Var("a")).Evaluate(env)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = NewNot(Var("b")).Evaluate(env)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestBinaryOperators_TruthTables(t *testing.T) {
	ops := []struct {
		name  string
		build func(l, r Expression) Expression
		want  func(a, b bool) bool
	}{
		{"and", func(l, r Expression) Expression { return NewAnd(l, r) }, func(a, b bool) bool { return a && b }},
		{"or", func(l, r Expression) Expression { return NewOr(l, r) }, func(a, b bool) bool { return a || b }},
		{"xor", func(l, r Expression) Expression { return NewXor(l, r) }, func(a, b bool) bool { return a != b }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			for _, a := range bools {
				for _, b := range bools {
					want := op.want(a, b)

					got, err := op.build(Const(a), Const(b)).Evaluate(EmptyEnvironment())
					require.NoError(t, err)
					assert.Equal(t, want, got, "constants %v %s %v", a, op.name, b)

					got, err = op.build(Var("a"), Var("b")).Evaluate(abEnv(a, b))
					require.NoError(t, err)
					assert.Equal(t, want, got, "variables %v %s %v", a, op.name, b)

					got, err = op.build(Const(a), Var("b")).Evaluate(abEnv(!a, b))
					require.NoError(t, err)
					assert.Equal(t, want, got, "mixed %v %s %v", a, op.name, b)
				}
			}
		})
	}
}

func TestBinaryOperators_Commutative(t *testing.T) {
	builders := map[string]func(l, r Expression) Expression{
		"and": func(l, r Expression) Expression { return NewAnd(l, r) },
		"or":  func(l, r Expression) Expression { return NewOr(l, r) },
		"xor": func(l, r Expression) Expression { return NewXor(l, r) },
	}
	terminals := []Expression{True, False, Var("a"), Var("b")}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			for _, x := range terminals {
				for _, y := range terminals {
					for _, a := range bools {
						for _, b := range bools {
							env := abEnv(a, b)
							xy, err := build(x, y).Evaluate(env)
							require.NoError(t, err)
							yx, err := build(y, x).Evaluate(env)
							require.NoError(t, err)
							assert.Equal(t, xy, yx, "%s vs %s", build(x, y), build(y, x))
						}
					}
				}
			}
		})
	}
}

func TestNot_DoubleNegation(t *testing.T) {
	trees := []Expression{
		True,
		False,
		Var("a"),
		NewAnd(Var("a"), NewNot(Var("b"))),
		NewXor(NewOr(Var("a"), False), Var("b")),
	}
	for _, tree := range trees {
		for _, a := range bools {
			for _, b := range bools {
				env := abEnv(a, b)
				want, err := tree.Evaluate(env)
				require.NoError(t, err)
				got, err := NewNot(NewNot(tree)).Evaluate(env)
				require.NoError(t, err)
				assert.Equal(t, want, got, "!!%s", tree)
			}
		}
	}
}

func TestVariable_Substitution(t *testing.T) {
	for _, v := range bools {
		env := NewEnvironment(map[string]bool{"x": v, "y": !v})
		got, err := Var("x").Evaluate(env)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUndefinedVariable_Propagates(t *testing.T) {
	// Each tree's other operand alone would decide the result.
	env := NewEnvironment(map[string]bool{"a": true})
	trees := []Expression{
		NewNot(Var("z")),
		NewAnd(False, Var("z")),
		NewAnd(Var("z"), False),
		NewOr(True, Var("z")),
		NewOr(Var("a"), Var("z")),
		NewXor(Var("z"), Var("a")),
		NewNot(NewOr(True, NewAnd(False, Var("z")))),
	}

	for _, tree := range trees {
		t.Run(tree.String(), func(t *testing.T) {
			_, err := tree.Evaluate(env)
			var undef *UndefinedVariableError
			require.ErrorAs(t, err, &undef)
			assert.Equal(t, "z", undef.Name)
		})
	}
}

func TestBinary_LeftErrorWins(t *testing.T) {
	_, err := NewAnd(Var("left"), Var("right")).Evaluate(EmptyEnvironment())
	var undef *UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "left", undef.Name)
}

// countingExpr records how often it is evaluated.
type countingExpr struct {
	value bool
	calls *int
}

func (c countingExpr) Evaluate(Environment) (bool, error) {
	*c.calls++
	return c.value, nil
}

func (c countingExpr) String() string { return "count" }

func TestBinary_EvaluatesBothOperands(t *testing.T) {
	tests := []struct {
		name  string
		build func(l, r Expression) Expression
		left  bool
	}{
		{"and with false left", func(l, r Expression) Expression { return NewAnd(l, r) }, false},
		{"or with true left", func(l, r Expression) Expression { return NewOr(l, r) }, true},
		{"xor", func(l, r Expression) Expression { return NewXor(l, r) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			tree := tt.build(Const(tt.left), countingExpr{value: true, calls: &calls})
			_, err := tree.Evaluate(EmptyEnvironment())
			require.NoError(t, err)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	tree := NewXor(NewAnd(Var("a"), Var("b")), NewNot(Var("a")))
	env := abEnv(true, false)

	first, err := tree.Evaluate(env)
	require.NoError(t, err)
	for range 10 {
		got, err := tree.Evaluate(env)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{True, "true"},
		{False, "false"},
		{Var("ready"), "ready"},
		{NewNot(Var("a")), "!a"},
		{NewAnd(Var("a"), Var("b")), "(a & b)"},
		{NewOr(Var("a"), False), "(a | false)"},
		{NewXor(Var("b"), Var("a")), "(b ^ a)"},
		{NewNot(NewAnd(Var("a"), NewOr(Var("b"), True))), "!(a & (b | true))"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.expr.String())
	}
}

func TestAccessors(t *testing.T) {
	assert.True(t, Const(true).Value())
	assert.Equal(t, "x", Var("x").Name())

	a, b := Var("a"), Var("b")
	assert.Equal(t, a, NewNot(a).Operand())

	and := NewAnd(a, b)
	assert.Equal(t, a, and.Left())
	assert.Equal(t, b, and.Right())

	xor := NewXor(b, a)
	assert.Equal(t, b, xor.Left())
	assert.Equal(t, a, xor.Right())
}

func TestConstructors_PanicOnNilOperand(t *testing.T) {
	assert.Panics(t, func() { NewNot(nil) })
	assert.Panics(t, func() { NewAnd(nil, True) })
	assert.Panics(t, func() { NewOr(True, nil) })
	assert.Panics(t, func() { NewXor(nil, nil) })
}

func TestZeroValueOperators(t *testing.T) {
	trees := []Expression{Not{}, And{}, Or{}, Xor{}, NewAnd(True, Not{}), NewNot(Xor{})}
	for _, tree := range trees {
		t.Run(tree.String(), func(t *testing.T) {
			var got bool
			var err error
			assert.NotPanics(t, func() {
				got, err = tree.Evaluate(EmptyEnvironment())
			})
			assert.ErrorIs(t, err, ErrNilExpression)
			assert.False(t, got)
		})
	}

	assert.Equal(t, "!<nil>", Not{}.String())
	assert.Equal(t, "(<nil> & <nil>)", And{}.String())
	assert.Equal(t, "(true & !<nil>)", NewAnd(True, Not{}).String())
}

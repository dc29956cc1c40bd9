/*
Package boolexpr provides composable boolean expression trees.

# Overview

An expression is a tree built from terminals (constants and named
variables) and logical operators (NOT, AND, OR, XOR). Trees are built by
direct composition; there is no parser. A tree evaluates to a single
boolean given an Environment that binds variable names to values.

# Basic Usage

Build a tree bottom-up, then evaluate it:

	tree := boolexpr.NewAnd(
	    boolexpr.Var("a"),
	    boolexpr.NewNot(boolexpr.Var("b")),
	)

	env := boolexpr.NewEnvironment(map[string]bool{"a": true, "b": false})
	result, err := boolexpr.Evaluate(tree, env)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(tree, "=", result) // (a & !b) = true

# Evaluation Order

Binary operators evaluate both operands, left then right, even when one
side alone decides the result. A lookup failure on either side therefore
always reaches the caller:

	tree := boolexpr.NewOr(boolexpr.True, boolexpr.Var("missing"))
	_, err := boolexpr.Evaluate(tree, boolexpr.EmptyEnvironment())
	// errors.Is(err, boolexpr.ErrUndefinedVariable) == true

When both operands fail, the left error is returned.

# Undefined Variables

A variable with no binding fails with *UndefinedVariableError. Defaulting
missing variables is an explicit opt-in, either on the Environment:

	env = env.WithDefault(false)

or on an Evaluator:

	ev := boolexpr.New(boolexpr.WithUndefinedPolicy(boolexpr.UndefinedFalse))

# Evaluator

Evaluate is a pure function. The Evaluator type wraps it with logging,
OpenTelemetry metrics and tracing:

	ev := boolexpr.New(
	    boolexpr.WithLogger(slog.Default()),
	    boolexpr.WithMetrics(observability.NewMetricsRecorder()),
	    boolexpr.WithSpanManager(observability.NewSpanManager()),
	)
	result, err := ev.Evaluate(ctx, tree, env)

# Concurrency

Trees and Environments are immutable once constructed. Any number of
goroutines may evaluate the same tree, against the same or different
Environments, without locking.
*/
package boolexpr

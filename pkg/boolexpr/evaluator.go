package boolexpr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/observability"
	"go.opentelemetry.io/otel/attribute"
)

// UndefinedPolicy decides what an Evaluator does when a variable has no binding.
type UndefinedPolicy int

const (
	// UndefinedError fails the evaluation with *UndefinedVariableError.
	UndefinedError UndefinedPolicy = iota

	// UndefinedFalse resolves unbound variables to false.
	UndefinedFalse

	// UndefinedTrue resolves unbound variables to true.
	UndefinedTrue
)

// String returns the policy name.
func (p UndefinedPolicy) String() string {
	switch p {
	case UndefinedError:
		return "error"
	case UndefinedFalse:
		return "false"
	case UndefinedTrue:
		return "true"
	default:
		return "unknown"
	}
}

// ParseUndefinedPolicy parses a policy name as returned by String.
// The empty string selects UndefinedError.
func ParseUndefinedPolicy(s string) (UndefinedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return UndefinedError, nil
	case "false":
		return UndefinedFalse, nil
	case "true":
		return UndefinedTrue, nil
	default:
		return UndefinedError, fmt.Errorf("unknown undefined-variable policy: %q", s)
	}
}

// Evaluator evaluates expression trees with logging and telemetry.
// It holds no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	undefined UndefinedPolicy
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for evaluation events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Evaluator) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used for tracing.
func WithSpanManager(s observability.SpanManager) Option {
	return func(e *Evaluator) {
		if s != nil {
			e.spans = s
		}
	}
}

// WithUndefinedPolicy sets how unbound variables are handled.
func WithUndefinedPolicy(p UndefinedPolicy) Option {
	return func(e *Evaluator) {
		e.undefined = p
	}
}

// New creates a new Evaluator with the given options.
// Without options it logs nothing, records no telemetry and fails on
// unbound variables.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the Evaluator's undefined-variable policy.
func (e *Evaluator) Policy() UndefinedPolicy {
	return e.undefined
}

// Evaluate evaluates expr against env.
//
// Evaluation failures are returned as *EvaluationError wrapping the cause, so
// errors.Is(err, ErrUndefinedVariable) and errors.As with
// *UndefinedVariableError both work.
func (e *Evaluator) Evaluate(ctx context.Context, expr Expression, env Environment) (bool, error) {
	if ctx == nil {
		return false, ErrNilContext
	}
	if expr == nil {
		return false, ErrNilExpression
	}

	evalID := uuid.NewString()
	text := expr.String()
	logger := observability.EnrichLogger(e.logger, evalID)

	ctx, span := e.spans.StartEvaluationSpan(ctx, evalID, text)
	elapsed := observability.TimedOperation()

	observability.LogEvaluationStart(logger, text, env.Len())

	result, err := expr.Evaluate(e.applyPolicy(env))
	duration := elapsed()

	if err != nil {
		var undef *UndefinedVariableError
		if errors.As(err, &undef) {
			observability.LogUndefinedVariable(logger, undef.Name)
			e.metrics.RecordUndefinedVariable(ctx, undef.Name)
			e.spans.AddSpanEvent(ctx, "undefined_variable", attribute.String("variable", undef.Name))
		}
		err = &EvaluationError{EvalID: evalID, Expr: text, Err: err}
		observability.LogEvaluationError(logger, err, observability.Milliseconds(duration))
		e.metrics.RecordEvaluation(ctx, duration, false, err)
		e.spans.EndSpanWithError(span, err)
		return false, err
	}

	observability.LogEvaluationComplete(logger, result, observability.Milliseconds(duration))
	e.metrics.RecordEvaluation(ctx, duration, result, nil)
	e.spans.EndSpanWithError(span, nil)
	return result, nil
}

func (e *Evaluator) applyPolicy(env Environment) Environment {
	switch e.undefined {
	case UndefinedFalse:
		return env.WithDefault(false)
	case UndefinedTrue:
		return env.WithDefault(true)
	default:
		return env
	}
}

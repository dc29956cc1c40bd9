// Package observability provides structured logging, metrics and tracing
// for boolexpr evaluations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the evaluation ID to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "6f1c...")
//	enriched.Info("evaluating") // includes eval_id
func EnrichLogger(logger *slog.Logger, evalID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("eval_id", evalID))
}

// LogEvaluationStart logs the start of an evaluation.
func LogEvaluationStart(logger *slog.Logger, expr string, bindings int) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("expr", expr),
		slog.Int("bindings", bindings),
	)
}

// LogEvaluationComplete logs a successful evaluation.
func LogEvaluationComplete(logger *slog.Logger, result bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.Bool("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluationError logs a failed evaluation.
func LogEvaluationError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogUndefinedVariable logs a variable lookup that found no binding.
func LogUndefinedVariable(logger *slog.Logger, name string) {
	if logger == nil {
		return
	}
	logger.Warn("undefined variable",
		slog.String("variable", name),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	elapsed := TimedOperation()
//	// ... do work ...
//	LogEvaluationComplete(logger, result, Milliseconds(elapsed()))
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

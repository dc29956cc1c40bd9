package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records a completed evaluation with its duration and outcome.
	RecordEvaluation(ctx context.Context, duration time.Duration, result bool, err error)

	// RecordUndefinedVariable records a lookup of an unbound variable.
	RecordUndefinedVariable(ctx context.Context, name string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations        metric.Int64Counter
	evaluationLatency  metric.Float64Histogram
	evaluationErrors   metric.Int64Counter
	undefinedVariables metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("boolexpr")

	evaluations, err := meter.Int64Counter("boolexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evaluationLatency, err := meter.Float64Histogram("boolexpr.evaluation.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evaluationErrors, err := meter.Int64Counter("boolexpr.evaluation.errors",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	undefinedVariables, err := meter.Int64Counter("boolexpr.undefined_variables",
		metric.WithDescription("Number of lookups of unbound variables"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:        evaluations,
		evaluationLatency:  evaluationLatency,
		evaluationErrors:   evaluationErrors,
		undefinedVariables: undefinedVariables,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records an evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, result bool, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	if err == nil {
		attrs = append(attrs, attribute.Bool("result", result))
	}

	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evaluationLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))

	if err != nil {
		m.evaluationErrors.Add(ctx, 1)
	}
}

// RecordUndefinedVariable records an unbound variable lookup.
func (m *otelMetrics) RecordUndefinedVariable(ctx context.Context, name string) {
	m.undefinedVariables.Add(ctx, 1, metric.WithAttributes(
		attribute.String("variable", name),
	))
}

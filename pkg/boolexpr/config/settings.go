package config

import (
	"fmt"
	"strconv"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr"
	"github.com/randalmurphal/boolexpr/pkg/boolexpr/observability"
)

// Section names.
const (
	SectionEvaluator = "evaluator"
	SectionBindings  = "bindings"
)

// Validate checks the bindings and evaluator sections.
// FromYAML, FromJSON and FromFile call it after decoding.
func (c Config) Validate() error {
	if _, err := c.Bindings(); err != nil {
		return err
	}
	if _, err := c.evaluatorSettings(); err != nil {
		return err
	}
	return nil
}

// Bindings returns the bindings section as a name to value map.
// Every key must be a string and every value a boolean. A missing or
// empty section yields an empty map; any other non-mapping value is an error.
func (c Config) Bindings() (map[string]bool, error) {
	raw, err := c.section(SectionBindings)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(raw))
	for name, v := range raw {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: binding %q: expected bool, got %T", SectionBindings, name, v)
		}
		out[name] = b
	}
	return out, nil
}

// Environment builds an Environment from the bindings section.
func (c Config) Environment() (boolexpr.Environment, error) {
	bindings, err := c.Bindings()
	if err != nil {
		return boolexpr.Environment{}, err
	}
	return boolexpr.NewEnvironment(bindings), nil
}

// evaluatorSettings is the decoded evaluator section.
type evaluatorSettings struct {
	policy  boolexpr.UndefinedPolicy
	metrics bool
	tracing bool
}

func (c Config) evaluatorSettings() (evaluatorSettings, error) {
	raw, err := c.section(SectionEvaluator)
	if err != nil {
		return evaluatorSettings{}, err
	}

	var s evaluatorSettings
	switch v := raw["undefined"].(type) {
	case nil:
	case bool:
		// YAML decodes bare true/false as booleans.
		s.policy, err = boolexpr.ParseUndefinedPolicy(strconv.FormatBool(v))
	case string:
		s.policy, err = boolexpr.ParseUndefinedPolicy(v)
	default:
		err = fmt.Errorf("expected string, got %T", v)
	}
	if err != nil {
		return evaluatorSettings{}, fmt.Errorf("%s.undefined: %w", SectionEvaluator, err)
	}

	for key, dst := range map[string]*bool{"metrics": &s.metrics, "tracing": &s.tracing} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return evaluatorSettings{}, fmt.Errorf("%s.%s: expected bool, got %T", SectionEvaluator, key, v)
		}
		*dst = b
	}
	return s, nil
}

// EvaluatorOptions translates the evaluator section into Evaluator options.
//
// Keys:
//   - undefined: "error" (default), "false" or "true"
//   - metrics: bool, enables OpenTelemetry metrics
//   - tracing: bool, enables OpenTelemetry spans
func (c Config) EvaluatorOptions() ([]boolexpr.Option, error) {
	s, err := c.evaluatorSettings()
	if err != nil {
		return nil, err
	}

	opts := []boolexpr.Option{boolexpr.WithUndefinedPolicy(s.policy)}
	if s.metrics {
		opts = append(opts, boolexpr.WithMetrics(observability.NewMetricsRecorder()))
	}
	if s.tracing {
		opts = append(opts, boolexpr.WithSpanManager(observability.NewSpanManager()))
	}
	return opts, nil
}

// section returns the mapping stored under key with string keys.
// Unlike Sub, a present value that is not a mapping, or a mapping with a
// non-string key, is an error naming the section.
func (c Config) section(key string) (map[string]any, error) {
	switch v := c.data[key].(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case map[any]any:
		// yaml.v3 uses this type when any key in the mapping is not a string.
		out := make(map[string]any, len(v))
		for k, val := range v {
			name, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%s: key %v: expected string, got %T", key, k, k)
			}
			out[name] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: expected mapping, got %T", key, v)
	}
}

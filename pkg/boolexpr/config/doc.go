/*
Package config loads evaluator settings and variable bindings from YAML or
JSON files.

# File Format

	evaluator:
	  undefined: error   # error | false | true
	  metrics: true      # record OpenTelemetry metrics
	  tracing: false     # emit OpenTelemetry spans
	bindings:
	  approved: true
	  archived: false

# Usage

	cfg, err := config.FromFile("rules.yaml")
	if err != nil {
	    return err
	}
	env, err := cfg.Environment()
	if err != nil {
	    return err
	}
	opts, err := cfg.EvaluatorOptions()
	if err != nil {
	    return err
	}
	ev := boolexpr.New(opts...)

Accessors never fail: String, Bool and Sub return the supplied default (or
an empty Config) when a key is missing or has the wrong type. The
bindings and evaluator sections are validated when loading: a section
that is not a mapping, a non-string key, a non-bool binding or an unknown
policy fails FromYAML, FromJSON and FromFile with an error naming the
section.
*/
package config

// Package catalog keeps named expression trees and evaluates them together.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/randalmurphal/boolexpr/pkg/boolexpr"
	"github.com/samber/lo"
)

// Sentinel errors for catalog operations.
var (
	// ErrEmptyName indicates Register was called without a rule name.
	ErrEmptyName = errors.New("rule name required")

	// ErrDuplicateRule indicates a rule with the same name is already registered.
	ErrDuplicateRule = errors.New("rule already registered")
)

// Result is the outcome of evaluating one rule.
type Result struct {
	Value bool
	Err   error
}

// Catalog is a thread-safe set of named expression trees.
// It uses sync.RWMutex since rules are read far more often than registered.
type Catalog struct {
	mu    sync.RWMutex
	rules map[string]boolexpr.Expression
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		rules: make(map[string]boolexpr.Expression),
	}
}

// Register adds a rule. Names are unique; use Replace to overwrite.
func (c *Catalog) Register(name string, expr boolexpr.Expression) error {
	if name == "" {
		return ErrEmptyName
	}
	if expr == nil {
		return fmt.Errorf("rule %q: %w", name, boolexpr.ErrNilExpression)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rules[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, name)
	}
	c.rules[name] = expr
	return nil
}

// Replace adds or overwrites a rule.
func (c *Catalog) Replace(name string, expr boolexpr.Expression) error {
	if name == "" {
		return ErrEmptyName
	}
	if expr == nil {
		return fmt.Errorf("rule %q: %w", name, boolexpr.ErrNilExpression)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules[name] = expr
	return nil
}

// Get returns the rule registered under name and whether it exists.
func (c *Catalog) Get(name string) (boolexpr.Expression, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	expr, ok := c.rules[name]
	return expr, ok
}

// Has returns true if a rule is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Delete removes a rule. Deleting a missing rule is a no-op.
func (c *Catalog) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rules, name)
}

// Names returns the registered rule names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := lo.Keys(c.rules)
	c.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered rules.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

// Variables returns every variable name referenced by any rule, sorted.
// Useful for checking an Environment covers the whole catalog.
func (c *Catalog) Variables() []string {
	var names []string
	for _, expr := range c.snapshot() {
		names = append(names, boolexpr.Variables(expr)...)
	}
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}

// EvaluateAll evaluates every rule against env, one goroutine per rule.
//
// Rules and the Environment are immutable, so no locking is needed while
// evaluating. A failing rule does not stop the others; its error is
// reported in its Result. A nil ev uses boolexpr.New().
func (c *Catalog) EvaluateAll(ctx context.Context, ev *boolexpr.Evaluator, env boolexpr.Environment) map[string]Result {
	if ev == nil {
		ev = boolexpr.New()
	}

	rules := c.snapshot()
	results := make(map[string]Result, len(rules))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, expr := range rules {
		wg.Add(1)
		go func(name string, expr boolexpr.Expression) {
			defer wg.Done()
			v, err := ev.Evaluate(ctx, expr, env)

			mu.Lock()
			results[name] = Result{Value: v, Err: err}
			mu.Unlock()
		}(name, expr)
	}
	wg.Wait()

	return results
}

// Matching returns the sorted names of rules that evaluate to true
// against env, along with the first error encountered in name order.
func (c *Catalog) Matching(ctx context.Context, ev *boolexpr.Evaluator, env boolexpr.Environment) ([]string, error) {
	results := c.EvaluateAll(ctx, ev, env)

	names := lo.Keys(results)
	slices.Sort(names)

	var matched []string
	for _, name := range names {
		r := results[name]
		if r.Err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, r.Err)
		}
		if r.Value {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// snapshot copies the rule map under read lock so evaluation runs unlocked.
func (c *Catalog) snapshot() map[string]boolexpr.Expression {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]boolexpr.Expression, len(c.rules))
	for k, v := range c.rules {
		out[k] = v
	}
	return out
}

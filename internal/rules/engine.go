package rules

import (
	"context"

	"github.com/dohr-michael/hausgeist/internal/store"
)

// Engine evaluates a fixed rule set. Rules are deep-copied in and out, so
// the set cannot change after construction and an Engine can be shared.
type Engine struct {
	rules     []Rule
	evaluator *Evaluator
}

// NewEngine creates an engine over rules, reading data from s.
func NewEngine(s store.Store, rules []Rule) *Engine {
	return &Engine{rules: cloneRules(rules), evaluator: NewEvaluator(s)}
}

// LoadEngine loads the rule document at path and builds an engine from it.
func LoadEngine(s store.Store, path string) (*Engine, error) {
	rules, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewEngine(s, rules), nil
}

// Rules returns a copy of the loaded rules in load order.
func (e *Engine) Rules() []Rule {
	return cloneRules(e.rules)
}

// EvaluateAll evaluates every rule and returns the triggered ones.
func (e *Engine) EvaluateAll(ctx context.Context) ([]Result, error) {
	return e.evaluate(ctx, func(Rule) bool { return true })
}

// EvaluateByCategory evaluates the rules of one section.
func (e *Engine) EvaluateByCategory(ctx context.Context, c Category) ([]Result, error) {
	return e.evaluate(ctx, func(r Rule) bool { return r.Category == c })
}

// EvaluateBySchedule evaluates the rules carrying the given schedule tag.
func (e *Engine) EvaluateBySchedule(ctx context.Context, schedule string) ([]Result, error) {
	return e.evaluate(ctx, func(r Rule) bool { return r.Schedule == schedule })
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = r.clone()
	}
	return out
}

func (e *Engine) evaluate(ctx context.Context, keep func(Rule) bool) ([]Result, error) {
	var results []Result
	for _, r := range e.rules {
		if !keep(r) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := e.evaluator.Evaluate(ctx, r)
		if err != nil {
			return nil, err
		}
		if res.Triggered {
			results = append(results, res)
		}
	}
	return results, nil
}

// Package scheduler exposes the entry points an external clock calls: the
// evening chore check, the weekly heartbeat and full rule runs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dohr-michael/hausgeist/internal/heartbeat"
	"github.com/dohr-michael/hausgeist/internal/rules"
	"github.com/dohr-michael/hausgeist/internal/store"
)

// Runner holds what each entry point needs. Rules are reloaded on every call.
type Runner struct {
	Store     store.Store
	RulesPath string
	Now       func() time.Time // nil means time.Now
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) engine() (*rules.Engine, error) {
	engine, err := rules.LoadEngine(r.Store, r.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return engine, nil
}

// RunDailyCheck evaluates the chore rules and returns the alert messages of
// those that triggered. No alerts yields an empty slice.
func (r *Runner) RunDailyCheck(ctx context.Context) ([]string, error) {
	engine, err := r.engine()
	if err != nil {
		return nil, err
	}
	results, err := engine.EvaluateByCategory(ctx, rules.CategoryChores)
	if err != nil {
		return nil, fmt.Errorf("daily check: %w", err)
	}

	alerts := messages(results)
	slog.Info("scheduler: daily check done", "alerts", len(alerts))
	return alerts, nil
}

// RunWeeklyHeartbeat generates and formats the weekly report.
func (r *Runner) RunWeeklyHeartbeat(ctx context.Context) (string, error) {
	report, err := heartbeat.NewGenerator(r.Store, heartbeat.WithClock(r.now)).Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("weekly heartbeat: %w", err)
	}
	slog.Info("scheduler: heartbeat generated", "completed", report.Chores.Completed)
	return heartbeat.Format(report), nil
}

// RunAllRules evaluates every rule and returns the triggered results.
func (r *Runner) RunAllRules(ctx context.Context) ([]rules.Result, error) {
	engine, err := r.engine()
	if err != nil {
		return nil, err
	}
	results, err := engine.EvaluateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("run all rules: %w", err)
	}
	return results, nil
}

// RunScheduled evaluates the rules whose cron schedule tag fires in the
// minute of at. Rules with free-form tags are only reachable through
// rules.Engine.EvaluateBySchedule.
func (r *Runner) RunScheduled(ctx context.Context, at time.Time) ([]rules.Result, error) {
	engine, err := r.engine()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var results []rules.Result
	for _, rule := range engine.Rules() {
		tag := rule.Schedule
		if seen[tag] || !IsCron(tag) {
			continue
		}
		seen[tag] = true

		expr, err := ParseCron(tag)
		if err != nil {
			slog.Warn("scheduler: invalid schedule", "rule", rule.Name, "schedule", tag, "error", err)
			continue
		}
		if !expr.Matches(at) {
			continue
		}
		res, err := engine.EvaluateBySchedule(ctx, tag)
		if err != nil {
			return nil, fmt.Errorf("run schedule %q: %w", tag, err)
		}
		results = append(results, res...)
	}
	return results, nil
}

func messages(results []rules.Result) []string {
	out := make([]string, 0, len(results))
	for _, res := range results {
		if res.Triggered && res.Message != "" {
			out = append(out, res.Message)
		}
	}
	return out
}

package rules

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dohr-michael/hausgeist/internal/store"
)

// Evaluator checks rule conditions against live store data. It never writes.
type Evaluator struct {
	store store.Store
}

// NewEvaluator creates an Evaluator reading from s.
func NewEvaluator(s store.Store) *Evaluator {
	return &Evaluator{store: s}
}

// Evaluate checks one rule against each of its conditions in order; the first
// that matches data triggers the rule. A store failure is returned as an
// error rather than a non-triggered result.
func (e *Evaluator) Evaluate(ctx context.Context, rule Rule) (Result, error) {
	for _, cond := range Conditions(rule) {
		var (
			res Result
			err error
		)
		switch cond {
		case ConditionDailyDueToday:
			res, err = e.dailyDueToday(ctx, rule)
		case ConditionRecurringOverdue:
			res, err = e.recurringOverdue(ctx, rule)
		default:
			// Summary actions are rendered by the heartbeat; the rest never fire.
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("evaluate rule %q: %w", rule.Name, err)
		}
		if res.Triggered {
			slog.Debug("rules: triggered", "rule", rule.Name, "condition", cond, "tasks", len(res.Data))
			return res, nil
		}
	}
	return Result{Rule: rule}, nil
}

func (e *Evaluator) dailyDueToday(ctx context.Context, rule Rule) (Result, error) {
	tasks, err := e.store.TasksDueToday(ctx)
	if err != nil || len(tasks) == 0 {
		return Result{Rule: rule}, err
	}

	owners, groups := store.GroupByOwner(tasks)
	messages := make([]string, 0, len(owners))
	for _, owner := range owners {
		group := groups[owner]
		titles := make([]string, len(group))
		for i, task := range group {
			titles[i] = task.Title
		}
		messages = append(messages, Render(rule.Action.Message, map[string]string{
			"owner":  owner,
			"count":  strconv.Itoa(len(group)),
			"titles": strings.Join(titles, ", "),
		}))
	}
	return Result{Triggered: true, Rule: rule, Data: tasks, Message: strings.Join(messages, "\n")}, nil
}

func (e *Evaluator) recurringOverdue(ctx context.Context, rule Rule) (Result, error) {
	overdue, err := e.store.TasksOverdue(ctx, "")
	if err != nil {
		return Result{Rule: rule}, err
	}
	var recurring []*store.Item
	for _, task := range overdue {
		if task.Recurring {
			recurring = append(recurring, task)
		}
	}
	if len(recurring) == 0 {
		return Result{Rule: rule}, nil
	}

	messages := make([]string, len(recurring))
	for i, task := range recurring {
		messages[i] = Render(rule.Action.Message, map[string]string{
			"owner": task.OwnerOrDefault(),
			"title": task.Title,
		})
	}
	return Result{Triggered: true, Rule: rule, Data: recurring, Message: strings.Join(messages, "\n")}, nil
}

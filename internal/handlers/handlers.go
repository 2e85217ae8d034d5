// Package handlers executes parsed commands against the task store and
// renders chat responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dohr-michael/hausgeist/internal/matcher"
	"github.com/dohr-michael/hausgeist/internal/parser"
	"github.com/dohr-michael/hausgeist/internal/store"
)

// HelpText lists example phrasings understood by the parser.
const HelpText = "I can help with tasks! Try:\n" +
	"- \"Add task for Ira: brush teeth\"\n" +
	"- \"Ira finished brushing teeth\"\n" +
	"- \"What's left for today?\"\n" +
	"- \"How did Ira do this week?\""

// maxOverdueShown caps the overdue list in summaries.
const maxOverdueShown = 3

// Handler routes commands to store operations.
type Handler struct {
	store store.Store
	now   func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the clock used for relative due dates and week windows.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New creates a Handler on top of s.
func New(s store.Store, opts ...Option) *Handler {
	h := &Handler{store: s, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleMessage parses and executes one chat message. It always returns a
// user-facing response: unknown phrasing yields help text and store failures
// a generic apology.
func (h *Handler) HandleMessage(ctx context.Context, message string) string {
	cmd, err := parser.Parse(message)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			slog.Debug("handlers: unrecognized message", "message", message)
			return "I didn't quite get that. " + HelpText
		}
		return somethingWentWrong(err)
	}

	slog.Debug("handlers: parsed", "intent", cmd.Intent, "owner", cmd.Owner)

	resp, err := h.Handle(ctx, cmd)
	if err != nil {
		slog.Error("handlers: command failed", "intent", cmd.Intent, "error", err)
		return somethingWentWrong(err)
	}
	return resp
}

func somethingWentWrong(err error) string {
	return fmt.Sprintf("Something went wrong: %s\n\nPlease try again. 👻", err)
}

// Handle dispatches a parsed command to its handler.
func (h *Handler) Handle(ctx context.Context, cmd *parser.Command) (string, error) {
	switch cmd.Intent {
	case parser.IntentAddTask:
		return h.AddTask(ctx, cmd)
	case parser.IntentCompleteTask:
		return h.CompleteTask(ctx, cmd)
	case parser.IntentListTasks:
		return h.ListTasks(ctx, cmd)
	case parser.IntentSummary:
		return h.Summary(ctx, cmd)
	default:
		return "", fmt.Errorf("unknown intent %q", cmd.Intent)
	}
}

// AddTask creates a chore from the command's title and owner.
func (h *Handler) AddTask(ctx context.Context, cmd *parser.Command) (string, error) {
	if cmd.Title == "" {
		return "What's the task? Try something like: \"Add task for Ira: brush teeth\"", nil
	}

	owner := cmd.Owner
	if owner == "" {
		owner = store.DefaultOwner
	}

	task, err := h.store.Create(ctx, store.NewItem{
		Title:     cmd.Title,
		Owner:     owner,
		Recurring: cmd.Recurring,
		Frequency: store.Frequency(cmd.Frequency),
	})
	if err != nil {
		return "", fmt.Errorf("add task: %w", err)
	}

	slog.Info("handlers: task added", "id", task.ID, "title", task.Title, "owner", task.Owner)

	resp := fmt.Sprintf("Got it! Added %q for %s.", task.Title, task.Owner)
	if task.Recurring && task.Frequency != "" {
		resp += fmt.Sprintf(" It'll repeat %s.", task.Frequency)
	}
	return resp + " 👻", nil
}

// CompleteTask fuzzy-matches the identifier against open chores and marks
// the best match done.
func (h *Handler) CompleteTask(ctx context.Context, cmd *parser.Command) (string, error) {
	if cmd.TaskIdentifier == "" {
		return "Which task was finished? Try: \"Ira finished brushing teeth\"", nil
	}

	var (
		candidates []*store.Item
		err        error
	)
	if cmd.Owner != "" {
		candidates, err = h.store.TasksForOwner(ctx, cmd.Owner)
	} else {
		candidates, err = h.store.OpenTasks(ctx, "")
	}
	if err != nil {
		return "", fmt.Errorf("complete task: %w", err)
	}

	match := matcher.FindBestMatch(cmd.TaskIdentifier, notDone(candidates))
	if match == nil {
		hint := ""
		if cmd.Owner != "" {
			hint = " for " + cmd.Owner
		}
		return fmt.Sprintf("Couldn't find an open task matching %q%s. Try \"What's left?\" to see open tasks.",
			cmd.TaskIdentifier, hint), nil
	}

	done, err := h.store.SetStatus(ctx, match.ID, store.StatusDone)
	if err != nil {
		return "", fmt.Errorf("complete task: %w", err)
	}

	points := done.PointsOr(store.DefaultPoints)
	slog.Info("handlers: task completed", "id", done.ID, "title", done.Title, "points", points)

	return fmt.Sprintf("Nice! ✅ %q is done. %s earned %d points! ⭐", done.Title, done.OwnerOrDefault(), points), nil
}

// ListTasks shows open chores, grouped by owner.
func (h *Handler) ListTasks(ctx context.Context, cmd *parser.Command) (string, error) {
	var (
		tasks []*store.Item
		err   error
	)
	switch {
	case cmd.Timeframe == parser.TimeframeToday:
		tasks, err = h.store.TasksDueToday(ctx)
		if err == nil && cmd.Owner != "" {
			tasks = ownedBy(tasks, cmd.Owner)
		}
	case cmd.Owner != "":
		tasks, err = h.store.TasksForOwner(ctx, cmd.Owner)
		tasks = notDone(tasks)
	default:
		tasks, err = h.store.OpenTasks(ctx, "")
	}
	if err != nil {
		return "", fmt.Errorf("list tasks: %w", err)
	}

	if len(tasks) == 0 {
		if cmd.Owner != "" {
			return fmt.Sprintf("%s has no open tasks. All done! 🎉", cmd.Owner), nil
		}
		return "No open tasks. The house spirit is pleased. 👻", nil
	}

	var b strings.Builder
	if cmd.Timeframe == parser.TimeframeToday {
		b.WriteString("Here's what's on for today:\n\n")
	} else {
		b.WriteString("Here's what's open:\n\n")
	}

	now := h.now()
	owners, groups := store.GroupByOwner(tasks)
	for _, owner := range owners {
		fmt.Fprintf(&b, "**%s:**\n", owner)
		for _, t := range groups[owner] {
			b.WriteString("- " + t.Title)
			if t.DueDate != nil {
				fmt.Fprintf(&b, " (due %s)", RelativeDate(*t.DueDate, now))
			}
			if t.Status == store.StatusDoing {
				b.WriteString(" 🔄")
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s total.", plural(len(tasks), "task"))
	return b.String(), nil
}

// Summary reports this week's completions and the overdue backlog.
func (h *Handler) Summary(ctx context.Context, cmd *parser.Command) (string, error) {
	stats, err := store.WeeklyStats(ctx, h.store, h.now(), cmd.Owner)
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}
	overdue, err := h.store.TasksOverdue(ctx, cmd.Owner)
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}

	if stats.Completed == 0 && len(overdue) == 0 {
		who := cmd.Owner
		if who == "" {
			who = "everyone"
		}
		return fmt.Sprintf("No completed tasks this week for %s yet. Time to get going! 👻", who), nil
	}

	var b strings.Builder
	b.WriteString("👻 **Weekly Report**\n\n")

	if cmd.Owner != "" {
		fmt.Fprintf(&b, "**%s:**\n", cmd.Owner)
		fmt.Fprintf(&b, "- Completed: %s\n", plural(stats.Completed, "task"))
		fmt.Fprintf(&b, "- Points earned: %d ⭐\n", stats.TotalPoints)
	} else {
		fmt.Fprintf(&b, "**Completed:** %s\n", plural(stats.Completed, "task"))
		fmt.Fprintf(&b, "**Points earned:** %d ⭐\n", stats.TotalPoints)

		if len(stats.Tasks) > 0 {
			b.WriteString("\n")
			owners, groups := store.GroupByOwner(stats.Tasks)
			for _, owner := range owners {
				points := 0
				for _, t := range groups[owner] {
					points += t.PointsOr(store.DefaultPoints)
				}
				fmt.Fprintf(&b, "**%s:** %s (%d pts)\n", owner, plural(len(groups[owner]), "task"), points)
			}
		}
	}

	if len(overdue) > 0 {
		fmt.Fprintf(&b, "\n⚠️ **Overdue:** %s\n", plural(len(overdue), "task"))
		for i, t := range overdue {
			if i == maxOverdueShown {
				fmt.Fprintf(&b, "- ...and %d more\n", len(overdue)-maxOverdueShown)
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", t.Title, t.OwnerOrDefault())
		}
	}

	return b.String(), nil
}

func notDone(items []*store.Item) []*store.Item {
	out := make([]*store.Item, 0, len(items))
	for _, it := range items {
		if it.Status != store.StatusDone {
			out = append(out, it)
		}
	}
	return out
}

func ownedBy(items []*store.Item, owner string) []*store.Item {
	out := make([]*store.Item, 0, len(items))
	for _, it := range items {
		if it.Owner == owner {
			out = append(out, it)
		}
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

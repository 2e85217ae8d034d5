// Package heartbeat builds the weekly household report.
package heartbeat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dohr-michael/hausgeist/internal/store"
)

// OwnerStats is one owner's share of the week's completed chores.
type OwnerStats struct {
	Owner  string `json:"owner"`
	Count  int    `json:"count"`
	Points int    `json:"points"`
}

// OwnerCount is one owner's number of open chores.
type OwnerCount struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

// ChoreSummary covers chores completed since the start of the week.
type ChoreSummary struct {
	Completed   int          `json:"completed"`
	TotalPoints int          `json:"total_points"`
	ByOwner     []OwnerStats `json:"by_owner"` // first-seen order
	// TopPerformer has the strictly highest count; empty when nothing was completed.
	TopPerformer string `json:"top_performer,omitempty"`
}

// OpenSummary covers chores not yet done.
type OpenSummary struct {
	Total   int          `json:"total"`
	Overdue int          `json:"overdue"`
	ByOwner []OwnerCount `json:"by_owner"`
}

// Report is the weekly heartbeat content.
type Report struct {
	Chores          ChoreSummary `json:"chores"`
	Open            OpenSummary  `json:"open"`
	InventoryAlerts []string     `json:"inventory_alerts"`
	DocumentAlerts  []string     `json:"document_alerts"`
	Suggestions     []string     `json:"suggestions"`
}

// Generator assembles reports from the store.
type Generator struct {
	store store.Store
	now   func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for the week window.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator reading from s.
func NewGenerator(s store.Store, opts ...Option) *Generator {
	g := &Generator{store: s, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the weekly, open and overdue queries concurrently and
// aggregates them. Any query failure fails the whole report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	var (
		stats   *store.Stats
		open    []*store.Item
		overdue []*store.Item
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		stats, err = store.WeeklyStats(ctx, g.store, g.now(), "")
		return err
	})
	eg.Go(func() error {
		var err error
		open, err = g.store.OpenTasks(ctx, "")
		return err
	})
	eg.Go(func() error {
		var err error
		overdue, err = g.store.TasksOverdue(ctx, "")
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generate heartbeat: %w", err)
	}

	report := &Report{
		Chores: ChoreSummary{
			Completed:   stats.Completed,
			TotalPoints: stats.TotalPoints,
		},
		Open: OpenSummary{
			Total:   len(open),
			Overdue: len(overdue),
		},
		InventoryAlerts: []string{},
		DocumentAlerts:  []string{},
		Suggestions:     []string{},
	}

	owners, groups := store.GroupByOwner(stats.Tasks)
	top := 0
	for _, owner := range owners {
		entry := OwnerStats{Owner: owner, Count: len(groups[owner])}
		for _, t := range groups[owner] {
			entry.Points += t.PointsOr(store.DefaultPoints)
		}
		report.Chores.ByOwner = append(report.Chores.ByOwner, entry)
		if entry.Count > top {
			top = entry.Count
			report.Chores.TopPerformer = owner
		}
	}

	owners, groups = store.GroupByOwner(open)
	for _, owner := range owners {
		report.Open.ByOwner = append(report.Open.ByOwner, OwnerCount{Owner: owner, Count: len(groups[owner])})
	}

	slog.Debug("heartbeat: generated",
		"completed", report.Chores.Completed,
		"open", report.Open.Total,
		"overdue", report.Open.Overdue)
	return report, nil
}

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by mutations that target a missing item.
var ErrNotFound = errors.New("item not found")

// Operation labels carried by Error.
const (
	OpCreate  = "create-failed"
	OpGet     = "get-failed"
	OpUpdate  = "update-failed"
	OpArchive = "archive-failed"
	OpQuery   = "query-failed"
)

// Error wraps a failed store operation with its label.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// Store is the task database consumed by handlers, rules and the heartbeat.
// Queries only return chores; open, today and overdue queries exclude done items.
type Store interface {
	Create(ctx context.Context, in NewItem) (*Item, error)
	// Get returns (nil, nil) when the item does not exist.
	Get(ctx context.Context, id string) (*Item, error)
	SetStatus(ctx context.Context, id string, status Status) (*Item, error)
	Archive(ctx context.Context, id string) error

	// OpenTasks returns chores not done; an empty owner means everyone.
	OpenTasks(ctx context.Context, owner string) ([]*Item, error)
	TasksForOwner(ctx context.Context, owner string) ([]*Item, error)
	TasksDueToday(ctx context.Context) ([]*Item, error)
	TasksCompletedSince(ctx context.Context, since time.Time, owner string) ([]*Item, error)
	TasksOverdue(ctx context.Context, owner string) ([]*Item, error)
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Stats summarizes chores completed in a window.
type Stats struct {
	Completed   int
	TotalPoints int
	Tasks       []*Item
}

// WeeklyStats returns the chores completed since the start of now's week.
func WeeklyStats(ctx context.Context, s Store, now time.Time, owner string) (*Stats, error) {
	done, err := s.TasksCompletedSince(ctx, WeekStart(now), owner)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Completed: len(done), Tasks: done}
	for _, t := range done {
		stats.TotalPoints += t.PointsOr(DefaultPoints)
	}
	return stats, nil
}

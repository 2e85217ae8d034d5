package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// CronExpr wraps a parsed cron schedule tag.
type CronExpr struct {
	raw      string
	schedule cron.Schedule
}

// ParseCron parses a standard 5-field cron expression.
func ParseCron(expr string) (*CronExpr, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron %q: %w", expr, err)
	}
	return &CronExpr{raw: expr, schedule: schedule}, nil
}

// IsCron reports whether a schedule tag looks like a cron expression rather
// than a free-form label such as "weekly".
func IsCron(tag string) bool {
	return len(strings.Fields(tag)) == 5
}

// Next returns the next activation time after t.
func (c *CronExpr) Next(t time.Time) time.Time {
	return c.schedule.Next(t)
}

// Matches reports whether t falls within the minute of an activation.
func (c *CronExpr) Matches(t time.Time) bool {
	truncated := t.Truncate(time.Minute)
	return c.schedule.Next(truncated.Add(-time.Minute)).Equal(truncated)
}

// String returns the raw expression.
func (c *CronExpr) String() string {
	return c.raw
}

// NextRun returns the next activation of a schedule tag after t. Free-form
// tags have no activation time and report ok=false.
func NextRun(tag string, after time.Time) (next time.Time, ok bool, err error) {
	if !IsCron(tag) {
		return time.Time{}, false, nil
	}
	expr, err := ParseCron(tag)
	if err != nil {
		return time.Time{}, false, err
	}
	return expr.Next(after), true, nil
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/hausgeist/internal/scheduler"
)

const (
	HeartbeatToolName  = "hausgeist_heartbeat"
	DailyCheckToolName = "hausgeist_daily_check"
)

// NoAlertsMessage is returned by the daily check when nothing triggered.
const NoAlertsMessage = "No alerts — everything looks good! 👻"

// HeartbeatTool produces the weekly report.
type HeartbeatTool struct {
	runner *scheduler.Runner
}

// NewHeartbeatTool creates a hausgeist_heartbeat tool.
func NewHeartbeatTool(r *scheduler.Runner) *HeartbeatTool {
	return &HeartbeatTool{runner: r}
}

// HeartbeatSpec describes hausgeist_heartbeat.
func HeartbeatSpec() *ToolSpec {
	return &ToolSpec{
		Name: HeartbeatToolName,
		Description: "Generate the weekly Hausgeist family report. Shows completed tasks, " +
			"points, open items, and overdue alerts. Use when the user asks for " +
			"a weekly report or family summary.",
	}
}

// Info returns the tool info for Eino registration.
func (t *HeartbeatTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return specToToolInfo(HeartbeatSpec()), nil
}

// InvokableRun ignores its arguments and returns the formatted report.
func (t *HeartbeatTool) InvokableRun(ctx context.Context, _ string, _ ...tool.Option) (string, error) {
	report, err := t.runner.RunWeeklyHeartbeat(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", HeartbeatToolName, err)
	}
	return report, nil
}

// DailyCheckTool evaluates the chore rules.
type DailyCheckTool struct {
	runner *scheduler.Runner
}

// NewDailyCheckTool creates a hausgeist_daily_check tool.
func NewDailyCheckTool(r *scheduler.Runner) *DailyCheckTool {
	return &DailyCheckTool{runner: r}
}

// DailyCheckSpec describes hausgeist_daily_check.
func DailyCheckSpec() *ToolSpec {
	return &ToolSpec{
		Name: DailyCheckToolName,
		Description: "Run the daily rules check. Returns any alerts about incomplete " +
			"daily tasks or overdue recurring chores.",
	}
}

// Info returns the tool info for Eino registration.
func (t *DailyCheckTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return specToToolInfo(DailyCheckSpec()), nil
}

// InvokableRun returns the alerts separated by blank lines, or NoAlertsMessage.
func (t *DailyCheckTool) InvokableRun(ctx context.Context, _ string, _ ...tool.Option) (string, error) {
	alerts, err := t.runner.RunDailyCheck(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", DailyCheckToolName, err)
	}
	return JoinAlerts(alerts), nil
}

// JoinAlerts renders daily check alerts for display.
func JoinAlerts(alerts []string) string {
	if len(alerts) == 0 {
		return NoAlertsMessage
	}
	return strings.Join(alerts, "\n\n")
}

var (
	_ tool.InvokableTool = (*HeartbeatTool)(nil)
	_ tool.InvokableTool = (*DailyCheckTool)(nil)
)

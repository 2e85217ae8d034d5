package tools

import (
	"github.com/cloudwego/eino/components/tool"

	"github.com/dohr-michael/hausgeist/internal/handlers"
	"github.com/dohr-michael/hausgeist/internal/scheduler"
)

// NewDefaultRegistry registers the three Hausgeist tools.
func NewDefaultRegistry(h *handlers.Handler, r *scheduler.Runner) (*Registry, error) {
	registry := NewRegistry()
	entries := []struct {
		tool tool.InvokableTool
		spec *ToolSpec
	}{
		{NewTaskTool(h), TaskSpec()},
		{NewHeartbeatTool(r), HeartbeatSpec()},
		{NewDailyCheckTool(r), DailyCheckSpec()},
	}
	for _, e := range entries {
		if err := registry.Register(e.tool, e.spec); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/hausgeist/internal/handlers"
)

// TaskToolName is the name of the chat command tool.
const TaskToolName = "hausgeist_task"

// TaskTool passes a user message to the command handlers.
type TaskTool struct {
	handler *handlers.Handler
}

// NewTaskTool creates a hausgeist_task tool.
func NewTaskTool(h *handlers.Handler) *TaskTool {
	return &TaskTool{handler: h}
}

// TaskSpec describes hausgeist_task.
func TaskSpec() *ToolSpec {
	return &ToolSpec{
		Name: TaskToolName,
		Description: "Manage family tasks and chores. Use this tool for any request about " +
			"adding tasks, completing tasks, listing open tasks, or getting a summary. " +
			"Pass the user's message as-is in the \"message\" parameter.",
		Parameters: map[string]ParamSpec{
			"message": {
				Type:        "string",
				Description: "The user's natural language message about tasks",
				Required:    true,
			},
		},
	}
}

type taskInput struct {
	Message string `json:"message"`
}

// Info returns the tool info for Eino registration.
func (t *TaskTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return specToToolInfo(TaskSpec()), nil
}

// InvokableRun handles one message and returns the chat response.
func (t *TaskTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input taskInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("%s: parse input: %w", TaskToolName, err)
	}
	if strings.TrimSpace(input.Message) == "" {
		return "", errors.New(TaskToolName + ": message is required")
	}
	return t.handler.HandleMessage(ctx, input.Message), nil
}

var _ tool.InvokableTool = (*TaskTool)(nil)

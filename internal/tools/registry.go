package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cloudwego/eino/components/tool"
)

// ErrUnknownTool is returned by Invoke for unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds the tools exposed to agents.
type Registry struct {
	tools map[string]tool.InvokableTool
	specs map[string]*ToolSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]tool.InvokableTool),
		specs: make(map[string]*ToolSpec),
	}
}

// Register adds a tool under spec.Name.
func (r *Registry) Register(t tool.InvokableTool, spec *ToolSpec) error {
	if _, exists := r.tools[spec.Name]; exists {
		return fmt.Errorf("tool %q already registered", spec.Name)
	}
	r.tools[spec.Name] = t
	r.specs[spec.Name] = spec
	return nil
}

// Tool returns the tool registered under name, or nil.
func (r *Registry) Tool(name string) tool.InvokableTool {
	return r.tools[name]
}

// Spec returns the spec registered under name, or nil.
func (r *Registry) Spec(name string) *ToolSpec {
	return r.specs[name]
}

// Names returns registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Specs returns every spec in name order.
func (r *Registry) Specs() []*ToolSpec {
	names := r.Names()
	out := make([]*ToolSpec, len(names))
	for i, name := range names {
		out[i] = r.specs[name]
	}
	return out
}

// Tools returns every tool in name order.
func (r *Registry) Tools() []tool.InvokableTool {
	names := r.Names()
	out := make([]tool.InvokableTool, len(names))
	for i, name := range names {
		out[i] = r.tools[name]
	}
	return out
}

// Invoke runs the named tool with JSON arguments.
func (r *Registry) Invoke(ctx context.Context, name, argumentsInJSON string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if argumentsInJSON == "" {
		argumentsInJSON = "{}"
	}
	return t.InvokableRun(ctx, argumentsInJSON)
}

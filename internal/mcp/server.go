package mcp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/hausgeist/internal/tools"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// NewMCPServer creates an MCP server exposing tools from the registry.
// filter is an optional comma-separated list of tool names to expose.
func NewMCPServer(ctx context.Context, registry *tools.Registry, filter string) (*mcpsdk.Server, error) {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "hausgeist",
		Version: Version,
	}, nil)

	for _, name := range exposedTools(registry, filter) {
		invokable := registry.Tool(name)
		def, err := describeTool(ctx, name, invokable)
		if err != nil {
			return nil, err
		}
		server.AddTool(def, toolHandler(name, invokable))
		slog.Debug("mcp: tool registered", "tool", name)
	}

	return server, nil
}

// exposedTools returns the registry names selected by filter, in name order.
func exposedTools(registry *tools.Registry, filter string) []string {
	var wanted map[string]bool
	if filter = strings.TrimSpace(filter); filter != "" {
		wanted = make(map[string]bool)
		for _, name := range strings.Split(filter, ",") {
			wanted[strings.TrimSpace(name)] = true
		}
	}

	var names []string
	for _, name := range registry.Names() {
		if wanted != nil && !wanted[name] {
			continue
		}
		names = append(names, name)
	}
	return names
}

// toolHandler adapts an Eino tool to an MCP tool handler. Tool failures are
// reported as error results rather than protocol errors.
func toolHandler(name string, invokable tool.InvokableTool) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		args := "{}"
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			args = string(req.Params.Arguments)
		}
		result, err := invokable.InvokableRun(ctx, args)
		if err != nil {
			slog.Debug("mcp: tool error", "tool", name, "error", err)
			return &mcpsdk.CallToolResult{
				IsError: true,
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
			}, nil
		}
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: result}},
		}, nil
	}
}

// Serve runs the server over stdio until ctx is cancelled or the client
// disconnects.
func Serve(ctx context.Context, server *mcpsdk.Server) error {
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

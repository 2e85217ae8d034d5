// Package mcp provides an MCP server that exposes Hausgeist tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// describeTool builds the MCP tool definition for name from the tool's own
// Eino info, so agents see the same schema over MCP and in-process.
func describeTool(ctx context.Context, name string, t tool.BaseTool) (*mcpsdk.Tool, error) {
	info, err := t.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("tool %s info: %w", name, err)
	}
	input, err := inputSchema(info)
	if err != nil {
		return nil, fmt.Errorf("tool %s schema: %w", name, err)
	}
	return &mcpsdk.Tool{
		Name:        name,
		Description: info.Desc,
		InputSchema: input,
	}, nil
}

// inputSchema returns the JSON Schema object for the tool's parameters.
// MCP requires an object schema even for tools without parameters.
func inputSchema(info *schema.ToolInfo) (map[string]any, error) {
	out := map[string]any{}
	if info.ParamsOneOf != nil {
		js, err := info.ParamsOneOf.ToJSONSchema()
		if err != nil {
			return nil, err
		}
		if js != nil {
			raw, err := json.Marshal(js)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				return nil, err
			}
		}
	}
	out["type"] = "object"
	if _, ok := out["properties"]; !ok {
		out["properties"] = map[string]any{}
	}
	return out, nil
}

package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	hgmcp "github.com/dohr-michael/hausgeist/internal/mcp"
	"github.com/dohr-michael/hausgeist/internal/tools"
)

// NewMCPServeCommand returns the mcp-serve subcommand.
func NewMCPServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp-serve",
		Usage: "Expose Hausgeist tools as an MCP server (stdio)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "filter",
				UsageText: "Comma-separated tool names to expose (empty = all)",
			},
		},
		Action: runMCPServe,
	}
}

func runMCPServe(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the MCP stdio transport, logs stay on stderr
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	registry, err := tools.NewDefaultRegistry(a.handler, a.runner)
	if err != nil {
		return err
	}

	filter := cmd.StringArg("filter")
	slog.Debug("starting MCP server", "filter", filter, "tools", len(registry.Names()))

	server, err := hgmcp.NewMCPServer(ctx, registry, filter)
	if err != nil {
		return err
	}
	return hgmcp.Serve(ctx, server)
}

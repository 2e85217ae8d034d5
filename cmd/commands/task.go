package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// NewTaskCommand returns the task subcommand.
func NewTaskCommand() *cli.Command {
	return &cli.Command{
		Name:      "task",
		Usage:     "Handle one chat message, e.g. \"Add task for Ira: brush teeth\"",
		ArgsUsage: "<message...>",
		Action:    runTask,
	}
}

func runTask(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if message == "" {
		return fmt.Errorf("usage: hausgeist task <message>")
	}

	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	printResponse(os.Stdout, a.handler.HandleMessage(ctx, message))
	return nil
}

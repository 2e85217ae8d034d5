package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/hausgeist/internal/tools"
)

// NewHeartbeatCommand returns the heartbeat subcommand.
func NewHeartbeatCommand() *cli.Command {
	return &cli.Command{
		Name:  "heartbeat",
		Usage: "Print the weekly family report",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.runner.RunWeeklyHeartbeat(ctx)
			if err != nil {
				return err
			}
			printResponse(os.Stdout, report)
			return nil
		},
	}
}

// NewDailyCheckCommand returns the daily-check subcommand.
func NewDailyCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "daily-check",
		Usage: "Evaluate the chore rules and print any alerts",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			alerts, err := a.runner.RunDailyCheck(ctx)
			if err != nil {
				return err
			}
			printResponse(os.Stdout, tools.JoinAlerts(alerts))
			return nil
		},
	}
}

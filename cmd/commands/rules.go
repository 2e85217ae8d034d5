package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/hausgeist/internal/rules"
	"github.com/dohr-michael/hausgeist/internal/scheduler"
)

// NewRulesCommand returns the rules subcommand.
func NewRulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "List the loaded rules with their condition and next run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only show one category (chores, inventory, documents, suggestions)",
			},
		},
		Action: runRules,
	}
}

func runRules(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd, slog.LevelWarn)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loaded, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		return err
	}

	category := rules.Category(cmd.String("category"))
	var filtered []rules.Rule
	for _, r := range loaded {
		if category == "" || r.Category == category {
			filtered = append(filtered, r)
		}
	}

	printResponse(os.Stdout, formatRules(filtered, time.Now()))
	return nil
}

// formatRules renders one markdown line per rule.
func formatRules(list []rules.Rule, now time.Time) string {
	if len(list) == 0 {
		return "No rules loaded. Run `hausgeist seed` to install the defaults."
	}

	lines := make([]string, 0, len(list))
	for _, r := range list {
		lines = append(lines, fmt.Sprintf("- **%s** (%s, %s) %s",
			r.Name, r.Category, rules.Classify(r), describeSchedule(r.Schedule, now)))
	}
	return strings.Join(lines, "\n")
}

func describeSchedule(tag string, now time.Time) string {
	if tag == "" {
		return "unscheduled"
	}
	next, ok, err := scheduler.NextRun(tag, now)
	switch {
	case err != nil:
		return fmt.Sprintf("schedule %q invalid", tag)
	case !ok:
		return "schedule: " + tag
	default:
		return "next run " + next.Format("Mon 2 Jan 15:04")
	}
}

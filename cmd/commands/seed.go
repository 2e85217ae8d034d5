package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/hausgeist/internal/rules"
	"github.com/dohr-michael/hausgeist/internal/store"
)

// NewSeedCommand returns the seed subcommand.
func NewSeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Create the database, sample chores and default rules",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := store.Seed(ctx, a.store, store.SampleChores())
			if err != nil {
				return err
			}
			fmt.Printf("Store ready at %s (%d sample chore(s) added)\n", a.store.Path(), n)

			written, err := rules.WriteDefault(a.cfg.Rules.Path)
			if err != nil {
				return err
			}
			if written {
				fmt.Printf("Default rules written to %s\n", a.cfg.Rules.Path)
			} else {
				fmt.Printf("Rules already present at %s\n", a.cfg.Rules.Path)
			}
			return nil
		},
	}
}

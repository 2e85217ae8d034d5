package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// NewChatCommand returns the chat subcommand.
func NewChatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to Hausgeist interactively",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			interactive := stdoutIsTerminal()
			respond := func(ctx context.Context, msg string) string {
				reply := a.handler.HandleMessage(ctx, msg)
				if interactive {
					reply = renderMarkdown(reply)
				}
				return reply
			}
			return chatLoop(ctx, os.Stdin, os.Stdout, respond)
		},
	}
}

// chatLoop reads one message per line until an empty line, "quit", "exit",
// EOF or context cancellation.
func chatLoop(ctx context.Context, r io.Reader, w io.Writer, respond func(context.Context, string) string) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "👻 Hausgeist")
	fmt.Fprintln(w, mutedStyle.Render(`Type a message, or "quit" to exit.`))
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, promptStyle.Render("You: "))
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" || input == "quit" || input == "exit" {
			break
		}

		fmt.Fprintf(w, "\n%s %s\n\n", nameStyle.Render("Hausgeist:"), respond(ctx, input))
	}

	fmt.Fprintln(w, "\nBye! 👻")
	return scanner.Err()
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/hausgeist/internal/config"
	"github.com/dohr-michael/hausgeist/internal/handlers"
	"github.com/dohr-michael/hausgeist/internal/scheduler"
	"github.com/dohr-michael/hausgeist/internal/store"
)

const defaultRenderWidth = 80

// setupLogging installs a stderr text handler at level, or debug with --debug.
func setupLogging(cmd *cli.Command, level slog.Level) {
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the --config file, falling back to defaults when absent.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// app bundles the objects every command builds from the config.
type app struct {
	cfg     *config.Config
	store   *store.SQLiteStore
	handler *handlers.Handler
	runner  *scheduler.Runner
}

// openApp loads the config and opens the store. Quiet commands log at warn
// level, the others at the configured level. Callers must Close it.
func openApp(cmd *cli.Command, quiet bool) (*app, error) {
	setupLogging(cmd, slog.LevelWarn)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !quiet {
		setupLogging(cmd, cfg.SlogLevel())
	}

	s, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   s,
		handler: handlers.New(s),
		runner:  &scheduler.Runner{Store: s, RulesPath: cfg.Rules.Path},
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printResponse writes text to w, rendered as terminal markdown when
// stdout is a TTY.
func printResponse(w io.Writer, text string) {
	if stdoutIsTerminal() {
		text = renderMarkdown(text)
	}
	fmt.Fprintln(w, text)
}

// renderMarkdown renders text for the terminal. On failure the input is
// returned unchanged.
func renderMarkdown(text string) string {
	if text == "" {
		return ""
	}

	width := defaultRenderWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

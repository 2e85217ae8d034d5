package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dohr-michael/hausgeist/internal/rules"
)

func TestChatLoop(t *testing.T) {
	var got []string
	respond := func(_ context.Context, msg string) string {
		got = append(got, msg)
		return "ok:" + msg
	}

	in := strings.NewReader("  Add task for Ira: tidy toys  \nWhat's left?\nquit\nnever read\n")
	var out bytes.Buffer
	if err := chatLoop(context.Background(), in, &out, respond); err != nil {
		t.Fatalf("chatLoop: %v", err)
	}

	want := []string{"Add task for Ira: tidy toys", "What's left?"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got messages %q, want %q", got, want)
	}
	text := out.String()
	if !strings.Contains(text, "ok:What's left?") {
		t.Errorf("missing response in output:\n%s", text)
	}
	if !strings.HasSuffix(text, "Bye! 👻\n") {
		t.Errorf("expected goodbye at the end, got:\n%s", text)
	}
}

func TestChatLoopStopsOnEmptyLineOrEOF(t *testing.T) {
	for _, input := range []string{"\nhello\n", ""} {
		calls := 0
		respond := func(context.Context, string) string { calls++; return "" }
		var out bytes.Buffer
		if err := chatLoop(context.Background(), strings.NewReader(input), &out, respond); err != nil {
			t.Fatalf("chatLoop(%q): %v", input, err)
		}
		if calls != 0 {
			t.Errorf("chatLoop(%q): expected no messages handled, got %d", input, calls)
		}
	}
}

func TestFormatRules(t *testing.T) {
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)
	list := []rules.Rule{
		{
			Name:     "Daily chores incomplete",
			Schedule: "0 18 * * *",
			Category: rules.CategoryChores,
			Trigger:  &rules.Trigger{Frequency: "daily", Status: "todo", DueDate: "today"},
		},
		{Name: "Weekly chore summary", Schedule: "weekly", Category: rules.CategoryChores},
		{Name: "Clothes outgrown", Category: rules.CategoryInventory},
	}

	got := formatRules(list, now)
	want := strings.Join([]string{
		"- **Daily chores incomplete** (chores, daily-due-today) next run Wed 14 Oct 18:00",
		"- **Weekly chore summary** (chores, none) schedule: weekly",
		"- **Clothes outgrown** (inventory, not-implemented) unscheduled",
	}, "\n")
	if got != want {
		t.Errorf("formatRules:\ngot:\n%s\nwant:\n%s", got, want)
	}

	if got := formatRules(nil, now); !strings.Contains(got, "hausgeist seed") {
		t.Errorf("expected seed hint for empty rules, got %q", got)
	}
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	want := []string{"task", "heartbeat", "daily-check", "chat", "rules", "seed", "mcp-serve", "gateway"}
	var got []string
	for _, c := range root.Commands {
		got = append(got, c.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got commands %v, want %v", got, want)
	}
}

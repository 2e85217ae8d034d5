package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dohr-michael/hausgeist/internal/store"
)

// Wednesday 14 Oct 2026.
var wednesday = time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)

func clock() time.Time { return wednesday }

func newTestHandler(t *testing.T) (*Handler, *store.SQLiteStore) {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "hausgeist.db"), store.WithClock(clock))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, WithClock(clock)), s
}

func day(offset int) *time.Time {
	d := wednesday.AddDate(0, 0, offset)
	return &d
}

func intPtr(n int) *int { return &n }

func seed(t *testing.T, s store.Store, items ...store.NewItem) {
	t.Helper()
	for _, in := range items {
		if _, err := s.Create(context.Background(), in); err != nil {
			t.Fatalf("Create(%q): %v", in.Title, err)
		}
	}
}

func TestAddCompleteFlow(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	steps := []struct {
		message string
		want    string
	}{
		{"Add task for Ira: clean room", `Got it! Added "clean room" for Ira. 👻`},
		{"Ira finished clean room", `Nice! ✅ "clean room" is done. Ira earned 5 points! ⭐`},
		// A second completion finds nothing open, so no points are credited twice.
		{"Ira finished clean room", `Couldn't find an open task matching "clean room" for Ira. Try "What's left?" to see open tasks.`},
		{"How did Ira do this week?", "👻 **Weekly Report**\n\n**Ira:**\n- Completed: 1 task\n- Points earned: 5 ⭐\n"},
	}
	for _, step := range steps {
		if got := h.HandleMessage(ctx, step.message); got != step.want {
			t.Errorf("HandleMessage(%q):\nexpected %q\ngot      %q", step.message, step.want, got)
		}
	}
}

func TestAddCompleteFlow_WordOverlap(t *testing.T) {
	h, s := newTestHandler(t)
	ctx := context.Background()

	if got, want := h.HandleMessage(ctx, "Add task for Ira: water the plants"),
		`Got it! Added "water the plants" for Ira. 👻`; got != want {
		t.Fatalf("add: expected %q, got %q", want, got)
	}

	open, err := s.OpenTasks(ctx, "Ira")
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open task, got %d", len(open))
	}

	// "the" is dropped from the identifier, so only word overlap finds the task.
	got := h.HandleMessage(ctx, "Ira finished water the plants")
	want := `Nice! ✅ "water the plants" is done. Ira earned 5 points! ⭐`
	if got != want {
		t.Errorf("complete: expected %q, got %q", want, got)
	}

	open, err = s.OpenTasks(ctx, "Ira")
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 0 {
		t.Errorf("expected no open tasks, got %d", len(open))
	}

	stats, err := store.WeeklyStats(ctx, s, wednesday, "Ira")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Completed != 1 || stats.TotalPoints != 5 {
		t.Errorf("expected 1 completion worth 5 points, got %d / %d", stats.Completed, stats.TotalPoints)
	}
}

func TestAddTask(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	tests := []struct {
		message string
		want    string
	}{
		{"Ira needs to brush teeth every day", `Got it! Added "brush teeth every day" for Ira. It'll repeat daily. 👻`},
		{"Add task for Ira", `What's the task? Try something like: "Add task for Ira: brush teeth"`},
		{"Add task: water plants", `Got it! Added "water plants" for Family. 👻`},
	}
	for _, tt := range tests {
		if got := h.HandleMessage(ctx, tt.message); got != tt.want {
			t.Errorf("HandleMessage(%q):\nexpected %q\ngot      %q", tt.message, tt.want, got)
		}
	}
}

func TestCompleteTask_MissingIdentifier(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.HandleMessage(context.Background(), "Mark as done")
	want := `Which task was finished? Try: "Ira finished brushing teeth"`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestListTasks(t *testing.T) {
	h, s := newTestHandler(t)
	ctx := context.Background()

	seed(t, s,
		store.NewItem{Title: "Brush teeth", Owner: "Ira", DueDate: day(0), Points: intPtr(1)},
		store.NewItem{Title: "Tidy toys", Owner: "Ira"},
		store.NewItem{Title: "Mow lawn", Owner: "Papa", DueDate: day(-1)},
		store.NewItem{Title: "Pay rent", Owner: "Papa", DueDate: day(5)},
	)

	got := h.HandleMessage(ctx, "What's left?")
	want := "Here's what's open:\n\n" +
		"**Papa:**\n- Mow lawn (due yesterday)\n- Pay rent (due 19 Oct)\n\n" +
		"**Ira:**\n- Brush teeth (due today)\n- Tidy toys\n\n" +
		"4 tasks total."
	if got != want {
		t.Errorf("list all:\nexpected %q\ngot      %q", want, got)
	}

	got = h.HandleMessage(ctx, "What's left for today?")
	want = "Here's what's on for today:\n\n**Ira:**\n- Brush teeth (due today)\n\n1 task total."
	if got != want {
		t.Errorf("list today:\nexpected %q\ngot      %q", want, got)
	}

	got = h.HandleMessage(ctx, "Show open tasks for Isha")
	want = "Isha has no open tasks. All done! 🎉"
	if got != want {
		t.Errorf("list empty owner:\nexpected %q\ngot      %q", want, got)
	}
}

func TestListTasks_Empty(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.HandleMessage(context.Background(), "What's left?")
	if got != "No open tasks. The house spirit is pleased. 👻" {
		t.Errorf("unexpected response %q", got)
	}
}

func TestSummary(t *testing.T) {
	h, s := newTestHandler(t)
	ctx := context.Background()

	if got := h.HandleMessage(ctx, "Give me a report"); got != "No completed tasks this week for everyone yet. Time to get going! 👻" {
		t.Errorf("empty summary: got %q", got)
	}

	seed(t, s,
		store.NewItem{Title: "Brush teeth", Owner: "Ira", DueDate: day(0), Points: intPtr(1)},
		store.NewItem{Title: "Tidy toys", Owner: "Ira"},
		store.NewItem{Title: "Mow lawn", Owner: "Papa", DueDate: day(-1)},
	)

	if got := h.HandleMessage(ctx, "Ira finished brushing teeth"); got != `Nice! ✅ "Brush teeth" is done. Ira earned 1 points! ⭐` {
		t.Fatalf("complete: got %q", got)
	}

	got := h.HandleMessage(ctx, "Give me a report")
	want := "👻 **Weekly Report**\n\n" +
		"**Completed:** 1 task\n**Points earned:** 1 ⭐\n\n" +
		"**Ira:** 1 task (1 pts)\n" +
		"\n⚠️ **Overdue:** 1 task\n- Mow lawn (Papa)\n"
	if got != want {
		t.Errorf("summary:\nexpected %q\ngot      %q", want, got)
	}
}

func TestSummary_TruncatesOverdue(t *testing.T) {
	h, s := newTestHandler(t)
	for i := 1; i <= 5; i++ {
		seed(t, s, store.NewItem{Title: "Old chore " + string(rune('A'+i-1)), Owner: "Mama", DueDate: day(-i)})
	}

	got := h.HandleMessage(context.Background(), "Give me a report")
	if !strings.Contains(got, "⚠️ **Overdue:** 5 tasks\n") {
		t.Errorf("expected overdue count, got %q", got)
	}
	if !strings.HasSuffix(got, "- ...and 2 more\n") {
		t.Errorf("expected truncation line, got %q", got)
	}
	if n := strings.Count(got, "(Mama)"); n != maxOverdueShown {
		t.Errorf("expected %d overdue lines, got %d", maxOverdueShown, n)
	}
}

func TestHandleMessage_Unrecognized(t *testing.T) {
	h, _ := newTestHandler(t)
	got := h.HandleMessage(context.Background(), "Hello how are you")
	if !strings.HasPrefix(got, "I didn't quite get that. I can help with tasks! Try:\n") {
		t.Errorf("expected help text, got %q", got)
	}
}

type failingStore struct {
	store.Store
}

func (failingStore) OpenTasks(context.Context, string) ([]*store.Item, error) {
	return nil, errors.New("boom")
}

func TestHandleMessage_StoreFailure(t *testing.T) {
	h := New(failingStore{}, WithClock(clock))
	got := h.HandleMessage(context.Background(), "What's left?")
	want := "Something went wrong: list tasks: boom\n\nPlease try again. 👻"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRelativeDate(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "today"},
		{1, "tomorrow"},
		{-1, "yesterday"},
		{-3, "3 days ago"},
		{5, "19 Oct"},
	}
	for _, tt := range tests {
		if got := RelativeDate(*day(tt.offset), wednesday); got != tt.want {
			t.Errorf("RelativeDate(%+d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

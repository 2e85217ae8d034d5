package heartbeat

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dohr-michael/hausgeist/internal/store"
)

var wednesday = time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)

func clock() time.Time { return wednesday }

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "hausgeist.db"), store.WithClock(clock))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(n int) *int { return &n }

func create(t *testing.T, s store.Store, in store.NewItem, done bool) {
	t.Helper()
	ctx := context.Background()
	item, err := s.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create(%q): %v", in.Title, err)
	}
	if done {
		if _, err := s.SetStatus(ctx, item.ID, store.StatusDone); err != nil {
			t.Fatalf("SetStatus(%q): %v", in.Title, err)
		}
	}
}

func seedWeek(t *testing.T, s store.Store) {
	t.Helper()
	yesterday := wednesday.AddDate(0, 0, -1)
	create(t, s, store.NewItem{Title: "Brush teeth", Owner: "Ira", Points: intPtr(1)}, true)
	create(t, s, store.NewItem{Title: "Tidy toys", Owner: "Ira", Points: intPtr(2)}, true)
	create(t, s, store.NewItem{Title: "Mow lawn", Owner: "Papa"}, true)
	create(t, s, store.NewItem{Title: "Fix bike", Owner: "Papa"}, true)
	create(t, s, store.NewItem{Title: "Water plants", Owner: "Mama", DueDate: &yesterday}, false)
	create(t, s, store.NewItem{Title: "Someday", Owner: "Papa"}, false)
}

func TestGenerate(t *testing.T) {
	s := newTestStore(t)
	seedWeek(t, s)

	report, err := NewGenerator(s, WithClock(clock)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := &Report{
		Chores: ChoreSummary{
			Completed:   4,
			TotalPoints: 13,
			ByOwner: []OwnerStats{
				{Owner: "Ira", Count: 2, Points: 3},
				{Owner: "Papa", Count: 2, Points: 10},
			},
			// Ira and Papa tie; the first-seen owner keeps the title.
			TopPerformer: "Ira",
		},
		Open: OpenSummary{
			Total:   2,
			Overdue: 1,
			ByOwner: []OwnerCount{{Owner: "Mama", Count: 1}, {Owner: "Papa", Count: 1}},
		},
		InventoryAlerts: []string{},
		DocumentAlerts:  []string{},
		Suggestions:     []string{},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_OwnerBreakdownSumsToTotals(t *testing.T) {
	s := newTestStore(t)
	seedWeek(t, s)

	report, err := NewGenerator(s, WithClock(clock)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	count, points := 0, 0
	for _, o := range report.Chores.ByOwner {
		count += o.Count
		points += o.Points
	}
	if count != report.Chores.Completed {
		t.Errorf("owner counts sum to %d, completed is %d", count, report.Chores.Completed)
	}
	if points != report.Chores.TotalPoints {
		t.Errorf("owner points sum to %d, total is %d", points, report.Chores.TotalPoints)
	}
}

func TestGenerate_Empty(t *testing.T) {
	report, err := NewGenerator(newTestStore(t), WithClock(clock)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.Chores.TopPerformer != "" {
		t.Errorf("expected no top performer, got %q", report.Chores.TopPerformer)
	}

	want := "👻 **Hausgeist Weekly Report**\n\n" +
		"📋 **Chores**\nNo tasks completed this week.\n\n" +
		"📌 **Still Open**\nAll clear! 🎉\n\n" +
		"Have a great week! 👻"
	if got := Format(report); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

type failingStore struct {
	store.Store
}

var errBoom = errors.New("boom")

func (failingStore) TasksCompletedSince(context.Context, time.Time, string) ([]*store.Item, error) {
	return nil, nil
}

func (failingStore) OpenTasks(context.Context, string) ([]*store.Item, error) {
	return nil, nil
}

func (failingStore) TasksOverdue(context.Context, string) ([]*store.Item, error) {
	return nil, errBoom
}

func TestGenerate_QueryFailure(t *testing.T) {
	_, err := NewGenerator(failingStore{}, WithClock(clock)).Generate(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	s := newTestStore(t)
	seedWeek(t, s)

	report, err := NewGenerator(s, WithClock(clock)).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := strings.Join([]string{
		"👻 **Hausgeist Weekly Report**",
		"",
		"📋 **Chores**",
		"Completed this week: 4",
		"Points earned: 13 ⭐",
		"Top performer: Ira 🏆",
		"",
		"  Ira: 2 tasks (3 pts)",
		"  Papa: 2 tasks (10 pts)",
		"",
		"📌 **Still Open**",
		"2 open tasks",
		"⚠️ 1 overdue!",
		"  Mama: 1",
		"  Papa: 1",
		"",
		"Have a great week! 👻",
	}, "\n")
	if diff := cmp.Diff(want, Format(report)); diff != "" {
		t.Errorf("format mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_OptionalSections(t *testing.T) {
	r := &Report{
		InventoryAlerts: []string{"Winter boots outgrown"},
		DocumentAlerts:  []string{"Passport expires in May"},
		Suggestions:     []string{"Plan a birthday party"},
	}
	got := Format(r)
	for _, want := range []string{
		"\n\n👕 **Inventory**\n- Winter boots outgrown",
		"\n\n📄 **Documents**\n- Passport expires in May",
		"\n\n💡 **Suggestions**\n- Plan a birthday party",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in report:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n\nHave a great week! 👻") {
		t.Errorf("missing closing line:\n%s", got)
	}
}

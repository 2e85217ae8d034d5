package store

import (
	"context"
	"testing"
)

func TestSeed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	n, err := Seed(ctx, s, SampleChores())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 chores created, got %d", n)
	}

	tasks, err := s.TasksForOwner(ctx, "Ira")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"Brush teeth (morning)": 1, "Tidy toys": 2, "Help set table": 2}
	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for _, task := range tasks {
		if got := task.PointsOr(0); got != want[task.Title] {
			t.Errorf("%s: got %d points, want %d", task.Title, got, want[task.Title])
		}
		if !task.Recurring || task.Frequency != FrequencyDaily {
			t.Errorf("%s: expected daily recurring chore", task.Title)
		}
	}

	// Second run creates nothing, even once a chore is done.
	if _, err := s.SetStatus(ctx, tasks[0].ID, StatusDone); err != nil {
		t.Fatal(err)
	}
	n, err = Seed(ctx, s, SampleChores())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected idempotent seed, created %d", n)
	}
}

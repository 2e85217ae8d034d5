package store

import (
	"context"
	"fmt"
	"log/slog"
)

// SampleChores are the starter chores provisioned by Seed.
func SampleChores() []NewItem {
	chore := func(title string, points int) NewItem {
		return NewItem{
			Title:     title,
			Owner:     "Ira",
			Points:    &points,
			Recurring: true,
			Frequency: FrequencyDaily,
		}
	}
	return []NewItem{
		chore("Brush teeth (morning)", 1),
		chore("Tidy toys", 2),
		chore("Help set table", 2),
	}
}

// Seed creates the items whose title is not already used by a chore of the
// same owner. It returns the number of items created.
func Seed(ctx context.Context, s Store, items []NewItem) (int, error) {
	existing := make(map[string]map[string]bool)
	created := 0
	for _, in := range items {
		owner := in.Owner
		if owner == "" {
			owner = DefaultOwner
		}
		titles, ok := existing[owner]
		if !ok {
			tasks, err := s.TasksForOwner(ctx, owner)
			if err != nil {
				return created, fmt.Errorf("seed: %w", err)
			}
			titles = make(map[string]bool, len(tasks))
			for _, t := range tasks {
				titles[t.Title] = true
			}
			existing[owner] = titles
		}
		if titles[in.Title] {
			slog.Debug("store: seed skipped", "title", in.Title, "owner", owner)
			continue
		}
		if _, err := s.Create(ctx, in); err != nil {
			return created, fmt.Errorf("seed %q: %w", in.Title, err)
		}
		titles[in.Title] = true
		created++
	}
	return created, nil
}

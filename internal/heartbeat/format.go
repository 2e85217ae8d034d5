package heartbeat

import (
	"fmt"
	"strings"
)

// Format renders the report as chat markdown.
func Format(r *Report) string {
	lines := []string{
		"👻 **Hausgeist Weekly Report**",
		"",
		"📋 **Chores**",
	}

	if r.Chores.Completed > 0 {
		lines = append(lines,
			fmt.Sprintf("Completed this week: %d", r.Chores.Completed),
			fmt.Sprintf("Points earned: %d ⭐", r.Chores.TotalPoints),
		)
		if r.Chores.TopPerformer != "" {
			lines = append(lines, fmt.Sprintf("Top performer: %s 🏆", r.Chores.TopPerformer))
		}
		lines = append(lines, "")
		for _, o := range r.Chores.ByOwner {
			lines = append(lines, fmt.Sprintf("  %s: %s (%d pts)", o.Owner, plural(o.Count, "task"), o.Points))
		}
	} else {
		lines = append(lines, "No tasks completed this week.")
	}

	lines = append(lines, "", "📌 **Still Open**")
	if r.Open.Total > 0 {
		lines = append(lines, plural(r.Open.Total, "open task"))
		if r.Open.Overdue > 0 {
			lines = append(lines, fmt.Sprintf("⚠️ %d overdue!", r.Open.Overdue))
		}
		for _, o := range r.Open.ByOwner {
			lines = append(lines, fmt.Sprintf("  %s: %d", o.Owner, o.Count))
		}
	} else {
		lines = append(lines, "All clear! 🎉")
	}

	lines = appendSection(lines, "👕 **Inventory**", r.InventoryAlerts)
	lines = appendSection(lines, "📄 **Documents**", r.DocumentAlerts)
	lines = appendSection(lines, "💡 **Suggestions**", r.Suggestions)

	lines = append(lines, "", "Have a great week! 👻")
	return strings.Join(lines, "\n")
}

func appendSection(lines []string, title string, entries []string) []string {
	if len(entries) == 0 {
		return lines
	}
	lines = append(lines, "", title)
	for _, e := range entries {
		lines = append(lines, "- "+e)
	}
	return lines
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package handlers

import (
	"fmt"
	"math"
	"time"
)

// RelativeDate renders due relative to now's calendar day: "today",
// "tomorrow", "yesterday", "N days ago", or a short date such as "2 Jan".
func RelativeDate(due, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Round(day.Sub(today).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return due.Format("2 Jan")
	}
}

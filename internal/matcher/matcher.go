// Package matcher resolves a loosely worded task reference to a stored item.
package matcher

import (
	"strings"

	"github.com/dohr-michael/hausgeist/internal/store"
)

// FindBestMatch returns the candidate whose title best matches identifier,
// or nil. Resolution order: exact title (case-insensitive), title contains
// identifier, identifier contains title, then word-overlap scoring. Ties keep
// the earliest candidate.
func FindBestMatch(identifier string, candidates []*store.Item) *store.Item {
	if identifier == "" || len(candidates) == 0 {
		return nil
	}
	needle := strings.ToLower(identifier)

	for _, c := range candidates {
		if strings.ToLower(c.Title) == needle {
			return c
		}
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			return c
		}
	}
	for _, c := range candidates {
		if strings.Contains(needle, strings.ToLower(c.Title)) {
			return c
		}
	}

	needleWords := strings.Fields(needle)
	var best *store.Item
	bestScore := 0
	for _, c := range candidates {
		if score := overlap(needleWords, strings.Fields(strings.ToLower(c.Title))); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// overlap counts needle words that partially match any title word.
func overlap(needleWords, titleWords []string) int {
	score := 0
	for _, w := range needleWords {
		for _, tw := range titleWords {
			if strings.Contains(tw, w) || strings.Contains(w, tw) {
				score++
				break
			}
		}
	}
	return score
}

// Package parser turns free-text household messages into structured commands.
//
// Matching is pattern based and order sensitive: intents are tried in
// IntentPriority order and the first matching pattern decides. Owners come
// from a closed family vocabulary and slots are extracted per intent.
package parser

import (
	"fmt"
	"strings"
)

// Intent is the action a message expresses.
type Intent string

const (
	IntentAddTask      Intent = "add_task"
	IntentCompleteTask Intent = "complete_task"
	IntentListTasks    Intent = "list_tasks"
	IntentSummary      Intent = "summary"
)

// Timeframe scopes list and summary queries.
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

// Command is the structured form of one message.
type Command struct {
	Intent Intent `json:"intent"`
	// Owner is the capitalized family member, empty when none was named.
	Owner          string    `json:"owner,omitempty"`
	Title          string    `json:"title,omitempty"`
	TaskIdentifier string    `json:"task_identifier,omitempty"`
	Timeframe      Timeframe `json:"timeframe,omitempty"`
	Recurring      bool      `json:"recurring,omitempty"`
	// Frequency is daily, weekly or monthly; empty for one-off or unknown interval.
	Frequency string `json:"frequency,omitempty"`
}

// ParseError reports a message that matched no intent.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand: %q", e.Message)
}

// Parse detects the intent of message and extracts its owner and slots.
func Parse(message string) (*Command, error) {
	intent, ok := DetectIntent(message)
	if !ok {
		return nil, &ParseError{Message: message}
	}

	cmd := &Command{
		Intent: intent,
		Owner:  capitalize(ExtractOwner(message)),
	}

	switch intent {
	case IntentAddTask:
		cmd.Title = extractTitle(message)
		cmd.Recurring, cmd.Frequency = extractRecurrence(message)
	case IntentCompleteTask:
		cmd.TaskIdentifier = extractIdentifier(message)
	case IntentListTasks:
		cmd.Timeframe = extractTimeframe(message, TimeframeAll)
	case IntentSummary:
		cmd.Timeframe = extractTimeframe(message, TimeframeWeek)
	}
	return cmd, nil
}

// DetectIntent returns the first intent, in priority order, with a pattern
// matching message.
func DetectIntent(message string) (Intent, bool) {
	for _, intent := range IntentPriority {
		for _, re := range intentPatterns[intent] {
			if re.MatchString(message) {
				return intent, true
			}
		}
	}
	return "", false
}

// ExtractOwner returns the lower-case family member named in message, or "".
func ExtractOwner(message string) string {
	lower := strings.ToLower(message)

	// Possessives: "ira's tasks", "iras chores".
	for _, m := range FamilyMembers {
		if strings.Contains(lower, m+"'s") || strings.Contains(lower, m+"s ") {
			return m
		}
	}

	if m := forOwnerRe.FindStringSubmatch(lower); m != nil && isMember(m[1]) {
		return m[1]
	}

	if m := subjectRe.FindStringSubmatch(lower); m != nil && isMember(m[1]) {
		return m[1]
	}

	for _, m := range FamilyMembers {
		if strings.Contains(lower, m) {
			return m
		}
	}
	return ""
}

func isMember(word string) bool {
	for _, m := range FamilyMembers {
		if m == word {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func extractTitle(message string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func extractIdentifier(message string) string {
	if m := finishedRe.FindStringSubmatch(message); m != nil {
		stripped := pronounRe.ReplaceAllString(m[1], "")
		return strings.Join(strings.Fields(stripped), " ")
	}
	if m := markRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := doneWithRe.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractTimeframe(message string, def Timeframe) Timeframe {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "today"):
		return TimeframeToday
	case strings.Contains(lower, "week"):
		return TimeframeWeek
	case strings.Contains(lower, "month"):
		return TimeframeMonth
	}
	return def
}

func extractRecurrence(message string) (bool, string) {
	lower := strings.ToLower(message)
	for _, rule := range recurrenceRules {
		for _, p := range rule.phrases {
			if strings.Contains(lower, p) {
				return true, rule.frequency
			}
		}
	}
	return false, ""
}

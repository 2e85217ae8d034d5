package parser

import "regexp"

// IntentPriority is the order in which intent tables are consulted.
// add_task and summary come before complete_task and list_tasks because their
// phrases overlap ("how did Ira do" also reads like a list query).
var IntentPriority = []Intent{
	IntentAddTask,
	IntentSummary,
	IntentCompleteTask,
	IntentListTasks,
}

// intentPatterns maps each intent to its ordered pattern list.
var intentPatterns = map[Intent][]*regexp.Regexp{
	IntentAddTask: {
		regexp.MustCompile(`(?i)\b(add|create|new)\b.*\b(task|chore)\b`),
		regexp.MustCompile(`(?i)\b(add|create)\b`),
		regexp.MustCompile(`(?i)\bneeds?\s+to\b`),
		regexp.MustCompile(`(?i)\bshould\b`),
		regexp.MustCompile(`(?i)\bassign\b`),
	},
	IntentSummary: {
		regexp.MustCompile(`(?i)\bhow\s+did\b`),
		regexp.MustCompile(`(?i)\b(summary|report|stats)\b`),
		regexp.MustCompile(`(?i)\bhow\b.*\b(do|doing|week)\b`),
	},
	IntentCompleteTask: {
		regexp.MustCompile(`(?i)\b(finished|completed|done\s+with)\b`),
		regexp.MustCompile(`(?i)\bmark\b.*\b(done|complete|finished)\b`),
		regexp.MustCompile(`(?i)^(\w+)\s+did\b`),
	},
	IntentListTasks: {
		regexp.MustCompile(`(?i)\bwhat'?s?\s+left\b`),
		regexp.MustCompile(`(?i)\b(show|list|get)\b.*\b(task|chore|open)\b`),
		regexp.MustCompile(`(?i)\btasks?\s+(for|today|this)\b`),
		regexp.MustCompile(`(?i)\bopen\s+(task|chore)s?\b`),
		regexp.MustCompile(`(?i)\boverdue\b`),
		regexp.MustCompile(`(?i)\bwhat\b.*\b(task|chore|to\s*do|left|open|pending)\b`),
		regexp.MustCompile(`(?i)\bwhat\s+are\b`),
	},
}

// FamilyMembers is the owner vocabulary, lower-case, in match priority order.
var FamilyMembers = []string{"ira", "isha", "papa", "mama", "family"}

var (
	forOwnerRe = regexp.MustCompile(`\bfor\s+(\w+)`)
	subjectRe  = regexp.MustCompile(`^(\w+)\s+(finished|completed|needs|should|did)\b`)
)

// Title extractors for add_task, tried in order.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`:\s*(.+)$`),
	regexp.MustCompile(`(?i)needs?\s+to\s+(.+)`),
	regexp.MustCompile(`(?i)should\s+(.+)`),
	regexp.MustCompile(`(?i)(?:add|create)\s+(?:task|chore)\s+(.+?)\s+for\s+`),
}

var (
	finishedRe = regexp.MustCompile(`(?i)(?:finished|completed|did)\s+(.+)`)
	markRe     = regexp.MustCompile(`(?i)mark\s+(.+?)\s+as\s+(?:done|complete|finished)`)
	doneWithRe = regexp.MustCompile(`(?i)done\s+with\s+(.+)`)
	pronounRe  = regexp.MustCompile(`(?i)\b(his|her|their|the)\b`)
)

// recurrenceRules map phrases to a frequency; an empty frequency means
// "recurring, interval unknown".
var recurrenceRules = []struct {
	phrases   []string
	frequency string
}{
	{[]string{"every day", "daily", "each day", "every morning", "every evening"}, "daily"},
	{[]string{"every week", "weekly"}, "weekly"},
	{[]string{"every month", "monthly"}, "monthly"},
	{[]string{"recurring", "repeat"}, ""},
}

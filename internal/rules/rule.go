// Package rules loads declarative household rules from YAML and evaluates
// them against the task store.
package rules

import "github.com/dohr-michael/hausgeist/internal/store"

// Category is the config section a rule was declared in.
type Category string

const (
	CategoryChores      Category = "chores"
	CategoryInventory   Category = "inventory"
	CategoryDocuments   Category = "documents"
	CategorySuggestions Category = "suggestions"
)

// Categories lists sections in load order.
var Categories = []Category{CategoryChores, CategoryInventory, CategoryDocuments, CategorySuggestions}

// ActionType is what a triggered rule asks for.
type ActionType string

const (
	ActionRemind  ActionType = "remind"
	ActionSuggest ActionType = "suggest"
	ActionAlert   ActionType = "alert"
	ActionSummary ActionType = "summary"
)

// Rule is one declared rule.
type Rule struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Schedule    string   `yaml:"schedule,omitempty"` // free-form tag or 5-field cron expression
	Trigger     *Trigger `yaml:"trigger,omitempty"`
	Action      Action   `yaml:"action"`
	Category    Category `yaml:"-"` // set from the section at load time
}

// clone returns a copy of r that shares no pointers or slices with it.
func (r Rule) clone() Rule {
	if r.Trigger != nil {
		t := *r.Trigger
		r.Trigger = &t
	}
	if r.Action.Tasks != nil {
		r.Action.Tasks = append([]string(nil), r.Action.Tasks...)
	}
	return r
}

// Trigger holds the optional condition fields of a rule. Only a few
// combinations are evaluated; the rest are carried for display.
type Trigger struct {
	Type           string `yaml:"type,omitempty"`
	Status         string `yaml:"status,omitempty"`
	Recurring      bool   `yaml:"recurring,omitempty"`
	Frequency      string `yaml:"frequency,omitempty"`
	Category       string `yaml:"category,omitempty"`
	LastCompleted  string `yaml:"last_completed,omitempty"`
	DueDate        string `yaml:"due_date,omitempty"`
	Age            string `yaml:"age,omitempty"`
	AgeInStatus    string `yaml:"age_in_status,omitempty"`
	Event          string `yaml:"event,omitempty"`
	PersonBirthday string `yaml:"person_birthday,omitempty"`
}

// Action describes the outcome of a triggered rule.
type Action struct {
	Type       ActionType `yaml:"type"`
	Priority   string     `yaml:"priority,omitempty"` // normal or high
	Message    string     `yaml:"message"`
	AutoAction string     `yaml:"auto_action,omitempty"`
	Tasks      []string   `yaml:"tasks,omitempty"`
}

// Result is the outcome of evaluating one rule.
type Result struct {
	Triggered bool          `json:"triggered"`
	Rule      Rule          `json:"rule"`
	Data      []*store.Item `json:"data,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// Condition is the evaluable shape of a rule's trigger.
type Condition string

const (
	// ConditionDailyDueToday: frequency daily, status todo, due_date today.
	ConditionDailyDueToday Condition = "daily-due-today"
	// ConditionRecurringOverdue: recurring with a last_completed bound.
	ConditionRecurringOverdue Condition = "recurring-overdue"
	// ConditionSummaryOnly: summary actions are produced by the heartbeat.
	ConditionSummaryOnly Condition = "summary-only"
	// ConditionNone: the rule declares no trigger.
	ConditionNone Condition = "none"
	// ConditionUnhandled: a chore trigger with no evaluable shape.
	ConditionUnhandled Condition = "unhandled"
	// ConditionNotImplemented: inventory, documents and suggestions.
	ConditionNotImplemented Condition = "not-implemented"
)

// Classify returns the first condition the rule satisfies, in evaluation order.
func Classify(r Rule) Condition {
	return Conditions(r)[0]
}

// Conditions returns every condition kind the rule satisfies, in evaluation
// order. The result is never empty. Only daily-due-today and
// recurring-overdue can appear together; evaluation tries them in turn.
func Conditions(r Rule) []Condition {
	if r.Category != CategoryChores {
		return []Condition{ConditionNotImplemented}
	}
	t := r.Trigger
	if t == nil {
		return []Condition{ConditionNone}
	}

	var out []Condition
	if t.isDailyDueToday() {
		out = append(out, ConditionDailyDueToday)
	}
	if t.isRecurringOverdue() {
		out = append(out, ConditionRecurringOverdue)
	}
	switch {
	case len(out) > 0:
		return out
	case r.Action.Type == ActionSummary:
		return []Condition{ConditionSummaryOnly}
	default:
		return []Condition{ConditionUnhandled}
	}
}

func (t *Trigger) isDailyDueToday() bool {
	return t.Frequency == string(store.FrequencyDaily) &&
		t.Status == string(store.StatusTodo) &&
		t.DueDate == "today"
}

func (t *Trigger) isRecurringOverdue() bool {
	return t.Recurring && t.LastCompleted != ""
}

// Package store provides the family item database: chores, inventory and
// documents, queried by owner, due date and completion window.
package store

import "time"

// Kind is the type of a stored item.
type Kind string

const (
	KindChore     Kind = "chore"
	KindInventory Kind = "inventory"
	KindDocument  Kind = "document"
)

// Status is the lifecycle state of an item.
type Status string

// Chore statuses. A chore only moves forward: todo → doing → done.
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Inventory statuses.
const (
	StatusHave     Status = "have"
	StatusOutgrown Status = "outgrown"
	StatusBroken   Status = "broken"
	StatusToBuy    Status = "to-buy"
	StatusBought   Status = "bought"
)

// Document statuses.
const (
	StatusValid        Status = "valid"
	StatusExpiringSoon Status = "expiring-soon"
	StatusExpired      Status = "expired"
	StatusRenewed      Status = "renewed"
)

// Frequency is the repeat interval of a recurring chore.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// DefaultOwner is the shared pseudo-owner used when nobody is named.
const DefaultOwner = "Family"

// DefaultPoints is the reward credited for a chore without explicit points.
const DefaultPoints = 5

// dateLayout is the storage format for due dates.
const dateLayout = "2006-01-02"

// Item is a single stored record.
type Item struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Kind      Kind       `json:"kind"`
	Status    Status     `json:"status"`
	Owner     string     `json:"owner"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Points    *int       `json:"points,omitempty"`
	Recurring bool       `json:"recurring"`
	Frequency Frequency  `json:"frequency,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// PointsOr returns the item's points, or def when unset.
func (i *Item) PointsOr(def int) int {
	if i.Points == nil {
		return def
	}
	return *i.Points
}

// OwnerOrDefault returns the owner, falling back to DefaultOwner.
func (i *Item) OwnerOrDefault() string {
	if i.Owner == "" {
		return DefaultOwner
	}
	return i.Owner
}

// NewItem holds the fields accepted when creating a chore.
type NewItem struct {
	Title     string
	Owner     string
	DueDate   *time.Time
	Points    *int
	Recurring bool
	Frequency Frequency
	Notes     string
}

// GroupByOwner buckets items by owner, keeping owners in first-seen order.
func GroupByOwner(items []*Item) ([]string, map[string][]*Item) {
	var owners []string
	groups := make(map[string][]*Item)
	for _, it := range items {
		owner := it.OwnerOrDefault()
		if _, ok := groups[owner]; !ok {
			owners = append(owners, owner)
		}
		groups[owner] = append(groups[owner], it)
	}
	return owners, groups
}

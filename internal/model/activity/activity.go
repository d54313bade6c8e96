package activity

import "time"

// Category identifies which tracked habit produced a record.
type Category string

const (
	Mood    Category = "mood"
	Journal Category = "journal"
	Chat    Category = "chat"
	// Overall is the union of all tracked categories. It never appears on a
	// stored record; it only labels derived streak results.
	Overall Category = "overall"
)

// Tracked lists the categories that carry persisted records.
func Tracked() []Category {
	return []Category{Mood, Journal, Chat}
}

// Record is one timestamped user action in a category. Records are written by
// the CRUD handlers and only ever read here.
type Record struct {
	UserID     string    `json:"userId" db:"user_id"`
	Category   Category  `json:"category" db:"category"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

package journal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an entry does not exist or belongs to
// another user.
var ErrNotFound = errors.New("journal entry not found")

// Entry is a free-form journal entry with an optional mood tag.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Mood      string    `json:"mood,omitempty" db:"mood"`
	Tags      []string  `json:"tags" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ListFilter narrows ListByUser results. Zero values mean "no constraint".
type ListFilter struct {
	Search string
	Mood   string
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}

// Store exposes journal persistence for handlers and services.
type Store interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, userID, id string) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Entry, int, error)
	// ActivityDates returns creation timestamps since the given instant,
	// newest first, for streak computation.
	ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
}

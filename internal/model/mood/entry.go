package mood

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an entry does not exist or belongs to
// another user.
var ErrNotFound = errors.New("mood entry not found")

// Entry is a single daily mood check-in. Scores run 1-10; the optional
// factors (sleep, energy, stress) feed the correlation analytics.
type Entry struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"userId" db:"user_id"`
	MoodScore          int       `json:"moodScore" db:"mood_score"`
	Emotions           []string  `json:"emotions" db:"-"`
	Notes              string    `json:"notes,omitempty" db:"notes"`
	Activities         []string  `json:"activities" db:"-"`
	SleepHours         *float64  `json:"sleepHours,omitempty" db:"sleep_hours"`
	EnergyLevel        *int      `json:"energyLevel,omitempty" db:"energy_level"`
	StressLevel        *int      `json:"stressLevel,omitempty" db:"stress_level"`
	SocialInteractions *int      `json:"socialInteractions,omitempty" db:"social_interactions"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// ListFilter narrows ListByUser results. Zero values mean "no constraint".
type ListFilter struct {
	Start    time.Time
	End      time.Time
	MinScore int
	MaxScore int
	Limit    int
	Offset   int
}

// Store exposes mood entry persistence for handlers and services.
type Store interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, userID, id string) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, userID, id string) error
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Entry, int, error)
	// ListBetween returns entries ordered ascending by creation time,
	// without pagination, for the analytics window.
	ListBetween(ctx context.Context, userID string, start, end time.Time) ([]Entry, error)
	// ActivityDates returns creation timestamps since the given instant,
	// newest first, for streak computation.
	ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
}

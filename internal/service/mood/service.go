// Package mood validates and persists mood check-ins and derives the
// analytics overview from a queried window.
package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindhaven/backend/internal/analysis/moodstats"
	"github.com/mindhaven/backend/internal/model/mood"
)

var (
	ErrInvalidScore   = errors.New("mood score must be between 1 and 10")
	ErrDuplicateToday = errors.New("mood entry already exists for today")
	ErrInvalidPeriod  = errors.New("period must be one of 7d, 30d, 90d, 1y")
	ErrInvalidFactor  = errors.New("optional factor out of range")
)

const maxNotesLength = 1000

// knownEmotions is the closed vocabulary accepted on check-ins.
var knownEmotions = map[string]struct{}{
	"happy": {}, "sad": {}, "angry": {}, "anxious": {}, "excited": {},
	"calm": {}, "frustrated": {}, "grateful": {}, "lonely": {},
	"confident": {}, "overwhelmed": {}, "content": {},
}

// Service owns mood entry validation rules and the analytics window math.
type Service struct {
	store mood.Store
	now   func() time.Time
}

func NewService(store mood.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create validates and stores a check-in. At most one entry is accepted per
// UTC calendar day per user; a second attempt returns ErrDuplicateToday so
// the caller can suggest updating the existing entry instead.
func (s *Service) Create(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	if err := validate(entry); err != nil {
		return mood.Entry{}, err
	}

	dayStart := s.now().UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	existing, err := s.store.ListBetween(ctx, entry.UserID, dayStart, dayEnd)
	if err != nil {
		return mood.Entry{}, fmt.Errorf("check for existing entry: %w", err)
	}
	if len(existing) > 0 {
		return mood.Entry{}, ErrDuplicateToday
	}

	entry.Notes = strings.TrimSpace(entry.Notes)
	if entry.Emotions == nil {
		entry.Emotions = []string{}
	}
	if entry.Activities == nil {
		entry.Activities = []string{}
	}
	return s.store.Create(ctx, entry)
}

// Get returns one entry owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (mood.Entry, error) {
	return s.store.GetByID(ctx, userID, id)
}

// Update applies changes to an existing entry after revalidating it.
func (s *Service) Update(ctx context.Context, entry mood.Entry) (mood.Entry, error) {
	if err := validate(entry); err != nil {
		return mood.Entry{}, err
	}
	entry.Notes = strings.TrimSpace(entry.Notes)
	return s.store.Update(ctx, entry)
}

// Delete removes one entry owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}

// List returns a page of entries plus the total count for pagination.
func (s *Service) List(ctx context.Context, userID string, filter mood.ListFilter) ([]mood.Entry, int, error) {
	return s.store.ListByUser(ctx, userID, filter)
}

// Overview is the analytics payload for one period.
type Overview struct {
	Period      string             `json:"period"`
	Statistics  moodstats.Snapshot `json:"statistics"`
	Trends      []moodstats.Bucket `json:"trends"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// Analytics summarizes the user's entries over a trailing period. Period is
// one of 7d, 30d, 90d, 1y (default 30d); groupBy defaults to day.
func (s *Service) Analytics(ctx context.Context, userID, period string, groupBy moodstats.Granularity) (Overview, error) {
	end := s.now().UTC()
	start, normalized, err := periodStart(end, period)
	if err != nil {
		return Overview{}, err
	}
	if groupBy == "" {
		groupBy = moodstats.ByDay
	}

	entries, err := s.store.ListBetween(ctx, userID, start, end)
	if err != nil {
		return Overview{}, fmt.Errorf("fetch analytics window: %w", err)
	}

	return Overview{
		Period:      normalized,
		Statistics:  moodstats.Summarize(entries),
		Trends:      moodstats.Group(entries, groupBy),
		GeneratedAt: s.now().UTC(),
	}, nil
}

func periodStart(end time.Time, period string) (time.Time, string, error) {
	switch period {
	case "", "30d":
		return end.AddDate(0, 0, -30), "30d", nil
	case "7d":
		return end.AddDate(0, 0, -7), "7d", nil
	case "90d":
		return end.AddDate(0, 0, -90), "90d", nil
	case "1y":
		return end.AddDate(-1, 0, 0), "1y", nil
	default:
		return time.Time{}, "", ErrInvalidPeriod
	}
}

func validate(entry mood.Entry) error {
	if entry.MoodScore < 1 || entry.MoodScore > 10 {
		return ErrInvalidScore
	}
	if len(entry.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidFactor, maxNotesLength)
	}
	for _, emotion := range entry.Emotions {
		if _, ok := knownEmotions[emotion]; !ok {
			return fmt.Errorf("%w: unknown emotion %q", ErrInvalidFactor, emotion)
		}
	}
	for _, act := range entry.Activities {
		if len(act) > 100 {
			return fmt.Errorf("%w: activity name too long", ErrInvalidFactor)
		}
	}
	if entry.SleepHours != nil && (*entry.SleepHours < 0 || *entry.SleepHours > 24) {
		return fmt.Errorf("%w: sleep hours must be within 0-24", ErrInvalidFactor)
	}
	if entry.EnergyLevel != nil && (*entry.EnergyLevel < 1 || *entry.EnergyLevel > 10) {
		return fmt.Errorf("%w: energy level must be within 1-10", ErrInvalidFactor)
	}
	if entry.StressLevel != nil && (*entry.StressLevel < 1 || *entry.StressLevel > 10) {
		return fmt.Errorf("%w: stress level must be within 1-10", ErrInvalidFactor)
	}
	if entry.SocialInteractions != nil && (*entry.SocialInteractions < 0 || *entry.SocialInteractions > 20) {
		return fmt.Errorf("%w: social interactions must be within 0-20", ErrInvalidFactor)
	}
	return nil
}

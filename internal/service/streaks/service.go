// Package streaks assembles the per-category streak report from the activity
// stores. Streaks are recomputed on demand and never persisted.
package streaks

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mindhaven/backend/internal/analysis/streak"
	"github.com/mindhaven/backend/internal/model/activity"
	"github.com/mindhaven/backend/internal/model/chat"
	"github.com/mindhaven/backend/internal/model/journal"
	"github.com/mindhaven/backend/internal/model/mood"
)

// lookbackDays bounds the activity fetch. Wide enough that the largest
// milestone in the table can still be observed as unbroken.
const lookbackDays = 120

// Stats summarizes raw activity volume behind the streaks.
type Stats struct {
	TotalActiveDays     int `json:"totalActiveDays"`
	MoodEntriesCount    int `json:"moodEntriesCount"`
	JournalEntriesCount int `json:"journalEntriesCount"`
	ChatSessionsCount   int `json:"chatSessionsCount"`
	LongestStreak       int `json:"longestStreak"`
}

// Report is the full streak payload for one user.
type Report struct {
	Overall    streak.Result      `json:"overall"`
	Mood       streak.Result      `json:"mood"`
	Journal    streak.Result      `json:"journal"`
	Chat       streak.Result      `json:"chat"`
	Stats      Stats              `json:"stats"`
	Milestones []streak.Milestone `json:"milestones"`
}

// Service computes streak reports across the three activity sources.
type Service struct {
	moodStore    mood.Store
	journalStore journal.Store
	chatStore    chat.Store
	now          func() time.Time
}

func NewService(moodStore mood.Store, journalStore journal.Store, chatStore chat.Store) *Service {
	return &Service{
		moodStore:    moodStore,
		journalStore: journalStore,
		chatStore:    chatStore,
		now:          time.Now,
	}
}

// Report fetches activity timestamps from all three stores concurrently and
// computes the four streaks. A failure in any store fails the whole report;
// streaks are never computed over partial data.
func (s *Service) Report(ctx context.Context, userID string) (Report, error) {
	reference := s.now()
	since := reference.UTC().AddDate(0, 0, -lookbackDays)

	var moodDates, journalDates, chatDates []time.Time
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moodDates, err = s.moodStore.ActivityDates(gctx, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		journalDates, err = s.journalStore.ActivityDates(gctx, userID, since)
		return err
	})
	g.Go(func() error {
		var err error
		chatDates, err = s.chatStore.ActivityDates(gctx, userID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	moodDays := streak.NewDaySet(moodDates)
	journalDays := streak.NewDaySet(journalDates)
	chatDays := streak.NewDaySet(chatDates)
	overallDays := moodDays.Union(journalDays).Union(chatDays)

	report := Report{
		Overall:    resultFor(activity.Overall, overallDays, reference),
		Mood:       resultFor(activity.Mood, moodDays, reference),
		Journal:    resultFor(activity.Journal, journalDays, reference),
		Chat:       resultFor(activity.Chat, chatDays, reference),
		Milestones: streak.Milestones,
	}
	report.Stats = Stats{
		TotalActiveDays:     len(overallDays),
		MoodEntriesCount:    len(moodDates),
		JournalEntriesCount: len(journalDates),
		ChatSessionsCount:   len(chatDates),
		LongestStreak: maxInt(
			report.Overall.Current,
			report.Mood.Current,
			report.Journal.Current,
			report.Chat.Current,
		),
	}
	return report, nil
}

// Acknowledgement is the response to an activity ping. The ping carries no
// state; streaks are derived from the stores at read time.
type Acknowledgement struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordActivity acknowledges that a tracked activity happened. The record
// itself is written by the mood, journal, and chat services.
func (s *Service) RecordActivity(category activity.Category) Acknowledgement {
	return Acknowledgement{
		Success:   true,
		Message:   string(category) + " activity recorded for streak tracking",
		Timestamp: s.now().UTC(),
	}
}

func resultFor(category activity.Category, days streak.DaySet, reference time.Time) streak.Result {
	current := streak.Count(days, reference)
	return streak.Result{
		Category:      category,
		Current:       current,
		Best:          current,
		Milestone:     streak.CurrentMilestone(current),
		NextMilestone: streak.NextMilestone(current),
	}
}

func maxInt(values ...int) int {
	best := 0
	for _, v := range values {
		if v > best {
			best = v
		}
	}
	return best
}

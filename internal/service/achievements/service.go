// Package achievements tracks gamified wellness goals. Progress comes from
// two sources: rows the client reports through the progress endpoint, and
// counts derived from the user's actual activity records. The overview shows
// whichever is further along.
package achievements

import (
	"context"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mindhaven/backend/internal/analysis/streak"
	"github.com/mindhaven/backend/internal/model/achievement"
	"github.com/mindhaven/backend/internal/model/activity"
	"github.com/mindhaven/backend/internal/model/chat"
	"github.com/mindhaven/backend/internal/model/journal"
	"github.com/mindhaven/backend/internal/model/mood"
)

// ErrUnknownAchievement is returned for a progress update against an ID that
// is not in the definition table.
var ErrUnknownAchievement = errors.New("achievement not found")

// lookbackDays bounds the activity fetch behind derived progress.
const lookbackDays = 120

// xpPerLevel converts accumulated XP into a user level.
const xpPerLevel = 100

// Rewards is what unlocking an achievement grants.
type Rewards struct {
	XP    int    `json:"xp"`
	Badge string `json:"badge"`
}

// Definition is one entry in the fixed achievement table.
type Definition struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category"`
	MaxProgress int     `json:"maxProgress"`
	Rewards     Rewards `json:"rewards"`
}

// Achievement IDs referenced by the derived-progress rules.
const (
	FirstSteps          = "first_steps"
	BreathingMaster     = "breathing_master"
	GratitudeGuru       = "gratitude_guru"
	ConsistencyChampion = "consistency_champion"
	CommunityConnector  = "community_connector"
	AICompanion         = "ai_companion"
)

// Definitions is the fixed achievement table.
var Definitions = []Definition{
	{
		ID:          FirstSteps,
		Title:       "First Steps",
		Description: "Complete your first wellness activity",
		Icon:        "🎯",
		Category:    "getting_started",
		MaxProgress: 1,
		Rewards:     Rewards{XP: 50, Badge: "Beginner"},
	},
	{
		ID:          BreathingMaster,
		Title:       "Breathing Master",
		Description: "Complete 10 breathing exercises",
		Icon:        "🫁",
		Category:    "mindfulness",
		MaxProgress: 10,
		Rewards:     Rewards{XP: 200, Badge: "Zen Master"},
	},
	{
		ID:          GratitudeGuru,
		Title:       "Gratitude Guru",
		Description: "Write 5 gratitude journal entries",
		Icon:        "🙏",
		Category:    "journaling",
		MaxProgress: 5,
		Rewards:     Rewards{XP: 150, Badge: "Grateful Heart"},
	},
	{
		ID:          ConsistencyChampion,
		Title:       "Consistency Champion",
		Description: "Log mood for 7 consecutive days",
		Icon:        "📈",
		Category:    "tracking",
		MaxProgress: 7,
		Rewards:     Rewards{XP: 300, Badge: "Consistent"},
	},
	{
		ID:          CommunityConnector,
		Title:       "Community Connector",
		Description: "Add 3 trusted connections",
		Icon:        "🤝",
		Category:    "social",
		MaxProgress: 3,
		Rewards:     Rewards{XP: 100, Badge: "Connected"},
	},
	{
		ID:          AICompanion,
		Title:       "AI Companion",
		Description: "Have 5 AI chat conversations",
		Icon:        "🤖",
		Category:    "support",
		MaxProgress: 5,
		Rewards:     Rewards{XP: 125, Badge: "Tech Savvy"},
	},
}

// Status is one achievement with the user's effective progress folded in.
type Status struct {
	Definition
	Progress   int        `json:"progress"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt"`
	Percentage float64    `json:"percentage"`
}

// Summary aggregates unlocks into the XP and level shown on the profile.
type Summary struct {
	TotalAchievements    int `json:"totalAchievements"`
	UnlockedCount        int `json:"unlockedCount"`
	CompletionPercentage int `json:"completionPercentage"`
	TotalXP              int `json:"totalXP"`
	Level                int `json:"level"`
}

// Overview is the full achievements payload for one user.
type Overview struct {
	Achievements []Status `json:"achievements"`
	Stats        Summary  `json:"stats"`
}

// ProgressUpdate is the response to a reported progress increment.
type ProgressUpdate struct {
	AchievementID string     `json:"achievementId"`
	Progress      int        `json:"progress"`
	MaxProgress   int        `json:"maxProgress"`
	Unlocked      bool       `json:"unlocked"`
	JustUnlocked  bool       `json:"justUnlocked"`
	Achievement   Definition `json:"achievement"`
}

// Service computes achievement overviews and records reported progress.
type Service struct {
	store        achievement.Store
	moodStore    mood.Store
	journalStore journal.Store
	chatStore    chat.Store
	now          func() time.Time
}

func NewService(store achievement.Store, moodStore mood.Store, journalStore journal.Store, chatStore chat.Store) *Service {
	return &Service{
		store:        store,
		moodStore:    moodStore,
		journalStore: journalStore,
		chatStore:    chatStore,
		now:          time.Now,
	}
}

// Overview merges stored progress rows with progress derived from the user's
// activity records and computes the unlock stats.
func (s *Service) Overview(ctx context.Context, userID string) (Overview, error) {
	stored, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return Overview{}, err
	}
	byID := make(map[string]achievement.Progress, len(stored))
	for _, row := range stored {
		byID[row.AchievementID] = row
	}

	reference := s.now()
	records, err := s.fetchRecords(ctx, userID, reference)
	if err != nil {
		return Overview{}, err
	}
	derived := deriveProgress(records, reference)

	overview := Overview{Achievements: make([]Status, 0, len(Definitions))}
	for _, def := range Definitions {
		row := byID[def.ID]
		progress := row.Progress
		if derived[def.ID] > progress {
			progress = derived[def.ID]
		}
		if progress > def.MaxProgress {
			progress = def.MaxProgress
		}

		status := Status{
			Definition: def,
			Progress:   progress,
			Unlocked:   row.Unlocked || progress >= def.MaxProgress,
			UnlockedAt: row.UnlockedAt,
			Percentage: math.Min(100, float64(progress)/float64(def.MaxProgress)*100),
		}
		overview.Achievements = append(overview.Achievements, status)

		if status.Unlocked {
			overview.Stats.UnlockedCount++
			overview.Stats.TotalXP += def.Rewards.XP
		}
	}

	overview.Stats.TotalAchievements = len(Definitions)
	overview.Stats.CompletionPercentage = int(math.Round(
		float64(overview.Stats.UnlockedCount) / float64(len(Definitions)) * 100))
	overview.Stats.Level = overview.Stats.TotalXP/xpPerLevel + 1
	return overview, nil
}

// UpdateProgress records a client-reported increment. Progress is capped at
// the definition's maximum; crossing it unlocks the achievement once.
func (s *Service) UpdateProgress(ctx context.Context, userID, achievementID string, increment int) (ProgressUpdate, error) {
	def, ok := findDefinition(achievementID)
	if !ok {
		return ProgressUpdate{}, ErrUnknownAchievement
	}
	if increment < 1 {
		increment = 1
	}

	row, err := s.store.Get(ctx, userID, achievementID)
	if err != nil && !errors.Is(err, achievement.ErrNotFound) {
		return ProgressUpdate{}, err
	}

	progress := row.Progress + increment
	if progress > def.MaxProgress {
		progress = def.MaxProgress
	}
	unlocked := progress >= def.MaxProgress
	justUnlocked := unlocked && !row.Unlocked

	updated := achievement.Progress{
		UserID:        userID,
		AchievementID: achievementID,
		Progress:      progress,
		Unlocked:      unlocked,
		UnlockedAt:    row.UnlockedAt,
	}
	if justUnlocked {
		unlockedAt := s.now().UTC()
		updated.UnlockedAt = &unlockedAt
	}
	if _, err := s.store.Upsert(ctx, updated); err != nil {
		return ProgressUpdate{}, err
	}

	return ProgressUpdate{
		AchievementID: achievementID,
		Progress:      progress,
		MaxProgress:   def.MaxProgress,
		Unlocked:      unlocked,
		JustUnlocked:  justUnlocked,
		Achievement:   def,
	}, nil
}

// fetchRecords gathers the user's recent activity as category-tagged records,
// fanning out to the three stores concurrently.
func (s *Service) fetchRecords(ctx context.Context, userID string, reference time.Time) ([]activity.Record, error) {
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
		return nil, err
	}

	records := make([]activity.Record, 0, len(moodDates)+len(journalDates)+len(chatDates))
	for _, t := range moodDates {
		records = append(records, activity.Record{UserID: userID, Category: activity.Mood, OccurredAt: t})
	}
	for _, t := range journalDates {
		records = append(records, activity.Record{UserID: userID, Category: activity.Journal, OccurredAt: t})
	}
	for _, t := range chatDates {
		records = append(records, activity.Record{UserID: userID, Category: activity.Chat, OccurredAt: t})
	}
	return records, nil
}

// deriveProgress maps activity records onto the achievements that can be
// measured without client reports. Breathing exercises and trusted
// connections happen outside the tracked stores, so those two stay
// report-only.
func deriveProgress(records []activity.Record, reference time.Time) map[string]int {
	counts := make(map[activity.Category]int)
	var moodTimes []time.Time
	for _, rec := range records {
		counts[rec.Category]++
		if rec.Category == activity.Mood {
			moodTimes = append(moodTimes, rec.OccurredAt)
		}
	}

	derived := make(map[string]int)
	if len(records) > 0 {
		derived[FirstSteps] = 1
	}
	derived[GratitudeGuru] = counts[activity.Journal]
	derived[AICompanion] = counts[activity.Chat]
	derived[ConsistencyChampion] = streak.Count(streak.NewDaySet(moodTimes), reference)
	return derived
}

func findDefinition(id string) (Definition, bool) {
	for _, def := range Definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

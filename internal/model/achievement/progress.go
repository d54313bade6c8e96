package achievement

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a user has no stored progress row for an
// achievement. Callers treat it as zero progress, not a failure.
var ErrNotFound = errors.New("achievement progress not found")

// Progress is one user's stored progress toward one achievement. Rows exist
// only for achievements the client has reported progress on; derived
// achievements may unlock without a row.
type Progress struct {
	UserID        string     `json:"userId" db:"user_id"`
	AchievementID string     `json:"achievementId" db:"achievement_id"`
	Progress      int        `json:"progress" db:"progress"`
	Unlocked      bool       `json:"unlocked" db:"unlocked"`
	UnlockedAt    *time.Time `json:"unlockedAt" db:"unlocked_at"`
}

// Store persists per-user achievement progress.
type Store interface {
	Get(ctx context.Context, userID, achievementID string) (Progress, error)
	ListByUser(ctx context.Context, userID string) ([]Progress, error)
	Upsert(ctx context.Context, progress Progress) (Progress, error)
}

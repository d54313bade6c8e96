package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/mindhaven/backend/internal/model/achievement"
)

// AchievementStore implements achievement.Store over SQL. Progress rows are
// keyed by (user, achievement) and written with delete-then-insert so the
// upsert stays portable across both drivers.
type AchievementStore struct {
	db *sqlx.DB
}

// NewAchievementStore returns a SQL-backed achievement progress store.
func NewAchievementStore(db *sqlx.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

func (s *AchievementStore) Get(ctx context.Context, userID, achievementID string) (achievement.Progress, error) {
	var row achievement.Progress
	query := s.db.Rebind(`
		SELECT user_id, achievement_id, progress, unlocked, unlocked_at
		FROM user_achievements
		WHERE user_id = ? AND achievement_id = ?`)
	if err := s.db.GetContext(ctx, &row, query, userID, achievementID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return achievement.Progress{}, achievement.ErrNotFound
		}
		return achievement.Progress{}, err
	}
	return row, nil
}

func (s *AchievementStore) ListByUser(ctx context.Context, userID string) ([]achievement.Progress, error) {
	var rows []achievement.Progress
	query := s.db.Rebind(`
		SELECT user_id, achievement_id, progress, unlocked, unlocked_at
		FROM user_achievements
		WHERE user_id = ?
		ORDER BY achievement_id ASC`)
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AchievementStore) Upsert(ctx context.Context, progress achievement.Progress) (achievement.Progress, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return achievement.Progress{}, err
	}
	defer tx.Rollback()

	del := tx.Rebind(`DELETE FROM user_achievements WHERE user_id = ? AND achievement_id = ?`)
	if _, err := tx.ExecContext(ctx, del, progress.UserID, progress.AchievementID); err != nil {
		return achievement.Progress{}, err
	}

	ins := tx.Rebind(`
		INSERT INTO user_achievements (user_id, achievement_id, progress, unlocked, unlocked_at)
		VALUES (?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, ins,
		progress.UserID, progress.AchievementID, progress.Progress,
		progress.Unlocked, progress.UnlockedAt); err != nil {
		return achievement.Progress{}, err
	}

	if err := tx.Commit(); err != nil {
		return achievement.Progress{}, err
	}
	return progress, nil
}

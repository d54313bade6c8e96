package memstore

import (
	"context"
	"sync"

	"github.com/mindhaven/backend/internal/model/achievement"
)

// AchievementStore implements achievement.Store in memory.
type AchievementStore struct {
	mu       sync.RWMutex
	progress map[string]map[string]achievement.Progress // user ID -> achievement ID
}

// NewAchievementStore returns an empty in-memory achievement progress store.
func NewAchievementStore() *AchievementStore {
	return &AchievementStore{progress: make(map[string]map[string]achievement.Progress)}
}

func (s *AchievementStore) Get(_ context.Context, userID, achievementID string) (achievement.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.progress[userID][achievementID]
	if !ok {
		return achievement.Progress{}, achievement.ErrNotFound
	}
	return row, nil
}

func (s *AchievementStore) ListByUser(_ context.Context, userID string) ([]achievement.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]achievement.Progress, 0, len(s.progress[userID]))
	for _, row := range s.progress[userID] {
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *AchievementStore) Upsert(_ context.Context, progress achievement.Progress) (achievement.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress[progress.UserID] == nil {
		s.progress[progress.UserID] = make(map[string]achievement.Progress)
	}
	s.progress[progress.UserID][progress.AchievementID] = progress
	return progress, nil
}

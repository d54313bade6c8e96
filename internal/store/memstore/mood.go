// Package memstore provides map-backed Store implementations. They serve
// tests and local development when no database is configured.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/model/mood"
)

// MoodStore implements mood.Store in memory.
type MoodStore struct {
	mu      sync.RWMutex
	entries map[string]mood.Entry // keyed by entry ID
}

// NewMoodStore returns an empty in-memory mood store.
func NewMoodStore() *MoodStore {
	return &MoodStore{entries: make(map[string]mood.Entry)}
}

func (s *MoodStore) Create(_ context.Context, entry mood.Entry) (mood.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.UpdatedAt = entry.CreatedAt
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *MoodStore) GetByID(_ context.Context, userID, id string) (mood.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return mood.Entry{}, mood.ErrNotFound
	}
	return entry, nil
}

func (s *MoodStore) Update(_ context.Context, entry mood.Entry) (mood.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return mood.Entry{}, mood.ErrNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *MoodStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return mood.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *MoodStore) ListByUser(_ context.Context, userID string, filter mood.ListFilter) ([]mood.Entry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []mood.Entry
	for _, entry := range s.entries {
		if entry.UserID != userID {
			continue
		}
		if !filter.Start.IsZero() && entry.CreatedAt.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && entry.CreatedAt.After(filter.End) {
			continue
		}
		if filter.MinScore > 0 && entry.MoodScore < filter.MinScore {
			continue
		}
		if filter.MaxScore > 0 && entry.MoodScore > filter.MaxScore {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	matched = paginate(matched, filter.Limit, filter.Offset)
	return matched, total, nil
}

func (s *MoodStore) ListBetween(_ context.Context, userID string, start, end time.Time) ([]mood.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []mood.Entry
	for _, entry := range s.entries {
		if entry.UserID != userID || entry.CreatedAt.Before(start) || entry.CreatedAt.After(end) {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched, nil
}

func (s *MoodStore) ActivityDates(_ context.Context, userID string, since time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dates []time.Time
	for _, entry := range s.entries {
		if entry.UserID == userID && !entry.CreatedAt.Before(since) {
			dates = append(dates, entry.CreatedAt)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/model/journal"
)

// JournalStore implements journal.Store in memory.
type JournalStore struct {
	mu      sync.RWMutex
	entries map[string]journal.Entry
}

// NewJournalStore returns an empty in-memory journal store.
func NewJournalStore() *JournalStore {
	return &JournalStore{entries: make(map[string]journal.Entry)}
}

func (s *JournalStore) Create(_ context.Context, entry journal.Entry) (journal.Entry, error) {
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

func (s *JournalStore) GetByID(_ context.Context, userID, id string) (journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return journal.Entry{}, journal.ErrNotFound
	}
	return entry, nil
}

func (s *JournalStore) Update(_ context.Context, entry journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return journal.Entry{}, journal.ErrNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now().UTC()
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *JournalStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || entry.UserID != userID {
		return journal.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *JournalStore) ListByUser(_ context.Context, userID string, filter journal.ListFilter) ([]journal.Entry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var matched []journal.Entry
	for _, entry := range s.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.Mood != "" && entry.Mood != filter.Mood {
			continue
		}
		if !filter.Start.IsZero() && entry.CreatedAt.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && entry.CreatedAt.After(filter.End) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Title), search) &&
			!strings.Contains(strings.ToLower(entry.Content), search) {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	matched = paginate(matched, filter.Limit, filter.Offset)
	return matched, total, nil
}

func (s *JournalStore) ActivityDates(_ context.Context, userID string, since time.Time) ([]time.Time, error) {
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

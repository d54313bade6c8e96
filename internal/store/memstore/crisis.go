package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/model/crisis"
)

// CrisisStore implements crisis.Store in memory. Events are append-only.
type CrisisStore struct {
	mu     sync.RWMutex
	events map[string][]crisis.Event // keyed by user ID, insertion order
}

// NewCrisisStore returns an empty in-memory crisis event store.
func NewCrisisStore() *CrisisStore {
	return &CrisisStore{events: make(map[string][]crisis.Event)}
}

func (s *CrisisStore) Append(_ context.Context, event crisis.Event) (crisis.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = uuid.NewString()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	s.events[event.UserID] = append(s.events[event.UserID], event)
	return event, nil
}

func (s *CrisisStore) ListByUser(_ context.Context, userID string) ([]crisis.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[userID]
	copied := make([]crisis.Event, len(events))
	copy(copied, events)
	return copied, nil
}

package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/model/chat"
)

// ChatStore implements chat.Store in memory.
type ChatStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message // keyed by session ID, insertion order
}

// NewChatStore returns an empty in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
	}
}

func (s *ChatStore) CreateSession(_ context.Context, session chat.Session) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	s.sessions[session.ID] = session
	s.messages[session.ID] = make([]chat.Message, 0, 16)
	return session, nil
}

func (s *ChatStore) GetSession(_ context.Context, sessionID string) (chat.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	return session, ok, nil
}

func (s *ChatStore) SaveMessage(_ context.Context, message chat.Message) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return chat.Message{}, chat.ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return message, nil
}

func (s *ChatStore) ListMessages(_ context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []chat.Message
	for _, msgs := range s.messages {
		for _, msg := range msgs {
			if msg.UserID == userID {
				all = append(all, msg)
			}
		}
	}
	// Newest first for pagination, then flipped back to chronological order.
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	all = paginate(all, limit, offset)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (s *ChatStore) ListSessionMessages(_ context.Context, userID, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.UserID != userID {
		return nil, chat.ErrSessionNotFound
	}

	msgs := s.messages[sessionID]
	copied := make([]chat.Message, len(msgs))
	copy(copied, msgs)
	return copied, nil
}

func (s *ChatStore) ActivityDates(_ context.Context, userID string, since time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var dates []time.Time
	for _, session := range s.sessions {
		if session.UserID == userID && !session.CreatedAt.Before(since) {
			dates = append(dates, session.CreatedAt)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, nil
}

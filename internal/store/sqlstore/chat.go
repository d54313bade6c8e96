package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mindhaven/backend/internal/model/chat"
)

// ChatStore implements chat.Store over SQL.
type ChatStore struct {
	db *sqlx.DB
}

// NewChatStore returns a SQL-backed chat store.
func NewChatStore(db *sqlx.DB) *ChatStore {
	return &ChatStore{db: db}
}

type messageRow struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	SessionID      string    `db:"session_id"`
	Role           string    `db:"role"`
	Content        string    `db:"content"`
	Model          string    `db:"model"`
	CrisisDetected bool      `db:"crisis_detected"`
	Fallback       bool      `db:"fallback"`
	InputTokens    int       `db:"input_tokens"`
	OutputTokens   int       `db:"output_tokens"`
	TotalTokens    int       `db:"total_tokens"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r messageRow) toMessage() chat.Message {
	return chat.Message{
		ID:        r.ID,
		UserID:    r.UserID,
		SessionID: r.SessionID,
		Role:      r.Role,
		Content:   r.Content,
		Metadata: chat.Metadata{
			Model:          r.Model,
			CrisisDetected: r.CrisisDetected,
			Fallback:       r.Fallback,
			TokenUsage: chat.TokenUsage{
				InputTokens:  r.InputTokens,
				OutputTokens: r.OutputTokens,
				TotalTokens:  r.TotalTokens,
			},
		},
		CreatedAt: r.CreatedAt,
	}
}

func (s *ChatStore) CreateSession(ctx context.Context, session chat.Session) (chat.Session, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind(`INSERT INTO chat_sessions (id, user_id, created_at) VALUES (?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, session.ID, session.UserID, session.CreatedAt); err != nil {
		return chat.Session{}, err
	}
	return session, nil
}

type sessionRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *ChatStore) GetSession(ctx context.Context, sessionID string) (chat.Session, bool, error) {
	var row sessionRow
	query := s.db.Rebind(`SELECT * FROM chat_sessions WHERE id = ?`)
	err := s.db.GetContext(ctx, &row, query, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Session{}, false, nil
	}
	if err != nil {
		return chat.Session{}, false, err
	}
	return chat.Session{ID: row.ID, UserID: row.UserID, CreatedAt: row.CreatedAt}, true, nil
}

func (s *ChatStore) SaveMessage(ctx context.Context, message chat.Message) (chat.Message, error) {
	if _, ok, err := s.GetSession(ctx, message.SessionID); err != nil {
		return chat.Message{}, err
	} else if !ok {
		return chat.Message{}, chat.ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind(`
		INSERT INTO chat_messages (
			id, user_id, session_id, role, content, model,
			crisis_detected, fallback, input_tokens, output_tokens, total_tokens, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		message.ID, message.UserID, message.SessionID, message.Role, message.Content,
		message.Metadata.Model, message.Metadata.CrisisDetected, message.Metadata.Fallback,
		message.Metadata.TokenUsage.InputTokens, message.Metadata.TokenUsage.OutputTokens,
		message.Metadata.TokenUsage.TotalTokens, message.CreatedAt)
	if err != nil {
		return chat.Message{}, err
	}
	return message, nil
}

func (s *ChatStore) ListMessages(ctx context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []messageRow
	query := s.db.Rebind(`
		SELECT * FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, err
	}

	// Flip the page back to chronological order.
	messages := make([]chat.Message, len(rows))
	for i, row := range rows {
		messages[len(rows)-1-i] = row.toMessage()
	}
	return messages, nil
}

func (s *ChatStore) ListSessionMessages(ctx context.Context, userID, sessionID string) ([]chat.Message, error) {
	session, ok, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok || session.UserID != userID {
		return nil, chat.ErrSessionNotFound
	}

	var rows []messageRow
	query := s.db.Rebind(`
		SELECT * FROM chat_messages
		WHERE session_id = ?
		ORDER BY created_at ASC`)
	if err := s.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, err
	}

	messages := make([]chat.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toMessage()
	}
	return messages, nil
}

func (s *ChatStore) ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	query := s.db.Rebind(`
		SELECT created_at FROM chat_sessions
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC`)
	if err := s.db.SelectContext(ctx, &dates, query, userID, since); err != nil {
		return nil, err
	}
	return dates, nil
}

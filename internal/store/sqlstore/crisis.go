package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mindhaven/backend/internal/model/crisis"
)

// CrisisStore implements crisis.Store over SQL. Events are append-only.
type CrisisStore struct {
	db *sqlx.DB
}

// NewCrisisStore returns a SQL-backed crisis event store.
func NewCrisisStore(db *sqlx.DB) *CrisisStore {
	return &CrisisStore{db: db}
}

type crisisRow struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	SessionID        string    `db:"session_id"`
	MessageContent   string    `db:"message_content"`
	KeywordsDetected string    `db:"keywords_detected"`
	CreatedAt        time.Time `db:"created_at"`
}

func (s *CrisisStore) Append(ctx context.Context, event crisis.Event) (crisis.Event, error) {
	event.ID = uuid.NewString()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind(`
		INSERT INTO crisis_events (id, user_id, session_id, message_content, keywords_detected, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.SessionID, event.MessageContent,
		marshalTags(event.KeywordsDetected), event.CreatedAt)
	if err != nil {
		return crisis.Event{}, err
	}
	return event, nil
}

func (s *CrisisStore) ListByUser(ctx context.Context, userID string) ([]crisis.Event, error) {
	var rows []crisisRow
	query := s.db.Rebind(`
		SELECT * FROM crisis_events
		WHERE user_id = ?
		ORDER BY created_at ASC`)
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	events := make([]crisis.Event, len(rows))
	for i, row := range rows {
		events[i] = crisis.Event{
			ID:               row.ID,
			UserID:           row.UserID,
			SessionID:        row.SessionID,
			MessageContent:   row.MessageContent,
			KeywordsDetected: unmarshalTags(row.KeywordsDetected),
			CreatedAt:        row.CreatedAt,
		}
	}
	return events, nil
}

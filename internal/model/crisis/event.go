package crisis

import (
	"context"
	"time"
)

// Event records one detected crisis-risk signal for later review. Events are
// append-only; retention is an operational policy outside this service.
type Event struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"userId" db:"user_id"`
	SessionID        string    `json:"sessionId" db:"session_id"`
	MessageContent   string    `json:"messageContent" db:"message_content"`
	KeywordsDetected []string  `json:"keywordsDetected" db:"-"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Store appends and lists crisis events.
type Store interface {
	Append(ctx context.Context, event Event) (Event, error)
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}

package chat

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id resolves to nothing or to
// another user's session.
var ErrSessionNotFound = errors.New("session not found")

// Session groups the messages of one support conversation.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store exposes chat persistence for handlers and services.
type Store interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, sessionID string) (Session, bool, error)
	SaveMessage(ctx context.Context, message Message) (Message, error)
	// ListMessages returns a user's messages across sessions, oldest first,
	// honoring limit/offset against the newest ones.
	ListMessages(ctx context.Context, userID string, limit, offset int) ([]Message, error)
	// ListSessionMessages returns every turn of one session, oldest first.
	ListSessionMessages(ctx context.Context, userID, sessionID string) ([]Message, error)
	// ActivityDates returns session creation timestamps since the given
	// instant, newest first, for streak computation.
	ActivityDates(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
}

// Package chat orchestrates support conversations: screening, persistence,
// provider calls and the crisis fallback path.
package chat

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cloudwego/eino/schema"

	crisisanalysis "github.com/mindhaven/backend/internal/analysis/crisis"
	"github.com/mindhaven/backend/internal/model/chat"
	"github.com/mindhaven/backend/internal/model/crisis"
	"github.com/mindhaven/backend/internal/service/ai"
)

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message exceeds maximum length")
	ErrSessionNotFound = errors.New("session not found")
)

// maxMessageLength bounds inbound messages, mirroring the API contract.
const maxMessageLength = 4000

// crisisFallback is returned when the provider fails after a crisis match.
// The crisis path never degrades to a bare error: hotline text always goes
// back to the user.
const crisisFallback = `I understand you're going through a difficult time. While I'm having technical difficulties, please know that help is available:

🚨 Crisis Resources:
• National Suicide Prevention Lifeline: 988
• Crisis Text Line: Text HOME to 741741
• Emergency Services: 911

You are not alone, and your life has value. Please reach out to one of these resources right away.`

// genericFallback is returned when the provider fails on a normal message.
const genericFallback = "I apologize, but I'm experiencing technical difficulties right now. Please try again in a moment."

// Generator is the slice of the AI service the chat flow needs.
type Generator interface {
	Generate(ctx context.Context, history []chat.Message, prompt string) (*schema.Message, error)
	ModelName() string
}

// Service encapsulates conversation state management and the message flow.
type Service struct {
	store       chat.Store
	crisisStore crisis.Store
	generator   Generator
}

// NewService wires the chat flow. generator may be nil, in which case every
// response takes the fallback path (the service still answers).
func NewService(store chat.Store, crisisStore crisis.Store, generator Generator) *Service {
	return &Service{store: store, crisisStore: crisisStore, generator: generator}
}

// Reply is the outcome of one inbound message.
type Reply struct {
	Message        chat.Message    `json:"message"`
	CrisisDetected bool            `json:"crisisDetected"`
	Usage          chat.TokenUsage `json:"usage"`
}

// CreateSession provisions a conversation for the user.
func (s *Service) CreateSession(ctx context.Context, userID string) (chat.Session, error) {
	return s.store.CreateSession(ctx, chat.Session{UserID: userID, CreatedAt: time.Now().UTC()})
}

// History returns the user's messages across sessions, oldest first.
func (s *Service) History(ctx context.Context, userID string, limit, offset int) ([]chat.Message, error) {
	return s.store.ListMessages(ctx, userID, limit, offset)
}

// Transcript returns every turn of one session, oldest first.
func (s *Service) Transcript(ctx context.Context, userID, sessionID string) ([]chat.Message, error) {
	messages, err := s.store.ListSessionMessages(ctx, userID, sessionID)
	if errors.Is(err, chat.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	return messages, err
}

// Turn is one validated inbound message with everything the provider call
// needs: the resolved session, prior history and the (possibly
// crisis-prefixed) prompt. The user turn is already persisted.
type Turn struct {
	Session chat.Session
	History []chat.Message
	Prompt  string
	Message string
	Screen  crisisanalysis.Result
}

// SendMessage runs the full flow for one inbound message:
// screen → persist user turn → prompt (crisis-prefixed on match) → provider
// call → persist assistant turn, with the crisis event written on match and
// fallback text substituted when the provider fails. Both branches always
// produce a response.
func (s *Service) SendMessage(ctx context.Context, userID, sessionID, message string) (Reply, error) {
	turn, err := s.PrepareTurn(ctx, userID, sessionID, message)
	if err != nil {
		return Reply{}, err
	}

	assistant := s.generate(ctx, turn.History, turn.Prompt, turn.Screen)
	saved := s.CompleteTurn(ctx, turn, assistant)

	return Reply{
		Message:        saved,
		CrisisDetected: turn.Screen.IsCrisis,
		Usage:          saved.Metadata.TokenUsage,
	}, nil
}

// PrepareTurn validates the message, screens it, resolves the session and
// persists the user turn. The returned history excludes the message itself,
// which becomes the query.
func (s *Service) PrepareTurn(ctx context.Context, userID, sessionID, message string) (Turn, error) {
	if message == "" {
		return Turn{}, ErrEmptyMessage
	}
	if len([]rune(message)) > maxMessageLength {
		return Turn{}, ErrMessageTooLong
	}

	screen := crisisanalysis.Screen(message)

	session, err := s.resolveSession(ctx, userID, sessionID)
	if err != nil {
		return Turn{}, err
	}

	if _, err := s.store.SaveMessage(ctx, chat.Message{
		UserID:    userID,
		SessionID: session.ID,
		Role:      chat.RoleUser,
		Content:   message,
	}); err != nil {
		return Turn{}, err
	}

	history, err := s.store.ListSessionMessages(ctx, userID, session.ID)
	if err != nil {
		return Turn{}, err
	}
	// The just-saved user turn becomes the query, not part of the history.
	if n := len(history); n > 0 && history[n-1].Role == chat.RoleUser {
		history = history[:n-1]
	}

	prompt := message
	if screen.IsCrisis {
		prompt = ai.CrisisPrompt(message)
	}

	return Turn{
		Session: session,
		History: history,
		Prompt:  prompt,
		Message: message,
		Screen:  screen,
	}, nil
}

// CompleteTurn records the crisis event when the turn matched and persists
// the assistant response. Persistence failures are logged, never surfaced:
// the user still gets the generated text.
func (s *Service) CompleteTurn(ctx context.Context, turn Turn, assistant chat.Message) chat.Message {
	assistant.UserID = turn.Session.UserID
	assistant.SessionID = turn.Session.ID

	if turn.Screen.IsCrisis {
		log.Printf("[chat] crisis keywords detected for user=%s session=%s", turn.Session.UserID, turn.Session.ID)
		if _, err := s.crisisStore.Append(ctx, crisis.Event{
			UserID:           turn.Session.UserID,
			SessionID:        turn.Session.ID,
			MessageContent:   turn.Message,
			KeywordsDetected: turn.Screen.MatchedKeywords,
		}); err != nil {
			log.Printf("[chat] failed to record crisis event: %v", err)
		}
	}

	saved, err := s.store.SaveMessage(ctx, assistant)
	if err != nil {
		log.Printf("[chat] failed to save assistant message: %v", err)
		return assistant
	}
	return saved
}

// FallbackMessage builds the canned assistant response for a failed provider
// call. Crisis turns always carry hotline resources.
func (s *Service) FallbackMessage(isCrisis bool) chat.Message {
	content := genericFallback
	if isCrisis {
		content = crisisFallback
	}
	return chat.Message{
		Role:    chat.RoleAssistant,
		Content: content,
		Metadata: chat.Metadata{
			Model:          "fallback",
			CrisisDetected: isCrisis,
			Fallback:       true,
		},
	}
}

// ModelMessage wraps provider output as an assistant turn.
func (s *Service) ModelMessage(content string, usage chat.TokenUsage, isCrisis bool) chat.Message {
	model := "fallback"
	if s.generator != nil {
		model = s.generator.ModelName()
	}
	return chat.Message{
		Role:    chat.RoleAssistant,
		Content: content,
		Metadata: chat.Metadata{
			Model:          model,
			CrisisDetected: isCrisis,
			TokenUsage:     usage,
		},
	}
}

// generate calls the provider and substitutes fallback text on any failure.
func (s *Service) generate(ctx context.Context, history []chat.Message, prompt string, screen crisisanalysis.Result) chat.Message {
	if s.generator != nil {
		response, err := s.generator.Generate(ctx, history, prompt)
		if err == nil {
			return s.ModelMessage(response.Content, ai.Usage(response), screen.IsCrisis)
		}
		log.Printf("[chat] provider call failed: %v", err)
	}
	return s.FallbackMessage(screen.IsCrisis)
}

// resolveSession loads an existing session or provisions one when no id was
// supplied. A session owned by another user is reported as not found.
func (s *Service) resolveSession(ctx context.Context, userID, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return s.CreateSession(ctx, userID)
	}

	session, ok, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	if !ok || session.UserID != userID {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

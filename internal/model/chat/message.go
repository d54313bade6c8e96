package chat

import "time"

// Roles for persisted chat turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TokenUsage mirrors the provider's usage metadata for one generation.
type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
	TotalTokens  int `json:"totalTokens"`
}

// Metadata records how an assistant turn was produced, for audit/debug.
type Metadata struct {
	Model          string     `json:"model,omitempty"`
	CrisisDetected bool       `json:"crisisDetected,omitempty"`
	Fallback       bool       `json:"fallback,omitempty"`
	TokenUsage     TokenUsage `json:"tokenUsage"`
}

// Message persists individual turns for audit/debug.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mindhaven/backend/internal/config"
	"github.com/mindhaven/backend/internal/model/chat"
)

// historyLimit caps how many prior turns are replayed to the provider.
const historyLimit = 20

// Service wraps the generative-text provider behind a compiled eino chain.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the provider-backed AI service.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// ModelName reports the configured provider model identifier.
func (s *Service) ModelName() string {
	return s.cfg.Model
}

// StreamingEnabled reports whether SSE streaming is switched on.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Generate produces one assistant response for the conversation. The prompt
// is the (possibly crisis-prefixed) user turn; history carries prior turns.
func (s *Service) Generate(ctx context.Context, history []chat.Message, promptText string) (*schema.Message, error) {
	response, err := s.chain.Invoke(ctx, s.buildChainInput(history, promptText))
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated response, model=%s, length=%d", s.cfg.Model, len(response.Content))
	return response, nil
}

// Stream produces assistant response chunks via the configured chain.
func (s *Service) Stream(ctx context.Context, history []chat.Message, promptText string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(history, promptText))
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	return stream, nil
}

func (s *Service) buildChainInput(history []chat.Message, promptText string) map[string]any {
	return map[string]any{
		"system":  SystemPrompt,
		"history": buildHistoryMessages(history),
		"query":   promptText,
	}
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}

// Usage extracts token accounting from a provider response, tolerating
// providers that omit usage metadata.
func Usage(response *schema.Message) chat.TokenUsage {
	if response == nil || response.ResponseMeta == nil || response.ResponseMeta.Usage == nil {
		return chat.TokenUsage{}
	}
	usage := response.ResponseMeta.Usage
	return chat.TokenUsage{
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
		TotalTokens:  usage.TotalTokens,
	}
}

// Package stream delivers assistant responses over Server-Sent Events,
// token by token when the provider supports it.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/mindhaven/backend/internal/model/chat"
	aiService "github.com/mindhaven/backend/internal/service/ai"
	chatService "github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler manages streaming AI responses via Server-Sent Events.
type Handler struct {
	aiSvc   *aiService.Service
	chatSvc *chatService.Service
}

// New creates a new stream handler.
func New(aiSvc *aiService.Service, chatSvc *chatService.Service) *Handler {
	return &Handler{aiSvc: aiSvc, chatSvc: chatSvc}
}

// Response is one streaming response chunk.
type Response struct {
	Event          string `json:"event"`
	Content        string `json:"content,omitempty"`
	SessionID      string `json:"sessionId,omitempty"`
	CrisisDetected bool   `json:"crisisDetected,omitempty"`
	Finished       bool   `json:"finished,omitempty"`
	Error          string `json:"error,omitempty"`
}

// HandleStreamRequest runs the message flow for one inbound message and
// streams the assistant response. The crisis pipeline is identical to the
// REST path: the turn is screened and the event recorded before the final
// message goes out.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, userID, sessionID, message string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	turn, err := h.chatSvc.PrepareTurn(ctx, userID, sessionID, message)
	if err != nil {
		h.sendError(w, flusher, err.Error())
		return err
	}

	h.send(w, flusher, Response{
		Event:          "start",
		SessionID:      turn.Session.ID,
		CrisisDetected: turn.Screen.IsCrisis,
	})

	assistant := h.dispatch(ctx, w, flusher, turn)
	saved := h.chatSvc.CompleteTurn(ctx, turn, assistant)

	h.send(w, flusher, Response{
		Event:     "message",
		SessionID: turn.Session.ID,
		Content:   saved.Content,
	})
	h.send(w, flusher, Response{
		Event:     "end",
		SessionID: turn.Session.ID,
		Finished:  true,
	})

	log.Printf("[stream] completed response for session=%s user=%s", turn.Session.ID, userID)
	return nil
}

// dispatch produces the assistant message, streaming deltas when the
// provider supports it and falling back to canned text on any failure.
func (h *Handler) dispatch(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, turn chatService.Turn) chat.Message {
	if h.aiSvc == nil {
		return h.chatSvc.FallbackMessage(turn.Screen.IsCrisis)
	}

	if h.aiSvc.StreamingEnabled() {
		response, err := h.streamResponse(ctx, w, flusher, turn)
		if err != nil {
			log.Printf("[stream] provider stream failed: %v", err)
			return h.chatSvc.FallbackMessage(turn.Screen.IsCrisis)
		}
		return h.chatSvc.ModelMessage(response.Content, aiService.Usage(response), turn.Screen.IsCrisis)
	}

	response, err := h.aiSvc.Generate(ctx, turn.History, turn.Prompt)
	if err != nil {
		log.Printf("[stream] provider call failed: %v", err)
		return h.chatSvc.FallbackMessage(turn.Screen.IsCrisis)
	}
	return h.chatSvc.ModelMessage(response.Content, aiService.Usage(response), turn.Screen.IsCrisis)
}

func (h *Handler) streamResponse(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, turn chatService.Turn) (*schema.Message, error) {
	reader, err := h.aiSvc.Stream(ctx, turn.History, turn.Prompt)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := reader.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return nil, recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			h.send(w, flusher, Response{
				Event:     "delta",
				SessionID: turn.Session.ID,
				Content:   chunk.Content,
			})
		}
	}

	return schema.ConcatMessages(chunks)
}

func (h *Handler) send(w http.ResponseWriter, flusher http.Flusher, response Response) {
	utils.SendSSEChunk(w, flusher, response)
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	h.send(w, flusher, Response{Event: "error", Error: message})
}

package chat

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mindhaven/backend/internal/middleware"
	chatService "github.com/mindhaven/backend/internal/service/chat"
)

// WSHandler runs live conversations over a websocket. Each inbound message
// goes through the same flow as the REST endpoint, crisis screening
// included.
type WSHandler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// NewWSHandler creates the websocket handler.
func NewWSHandler(chatSvc *chatService.Service) *WSHandler {
	return &WSHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *WSHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

func (h *WSHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	userID := middleware.UserID(r.Context())
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	// Validate ownership before upgrading.
	if _, err := h.chatSvc.Transcript(r.Context(), userID, sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[websocket] new connection for session: %s", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	h.send(conn, outgoingMessage{
		Type:      "connected",
		SessionID: sessionID,
		Timestamp: time.Now().UnixMilli(),
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[websocket] read error: %v", err)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))
			h.handleMessage(ctx, conn, userID, sessionID, &msg)
		}
	}
}

func (h *WSHandler) handleMessage(ctx context.Context, conn *websocket.Conn, userID, sessionID string, msg *inboundMessage) {
	switch msg.Type {
	case "message":
		reply, err := h.chatSvc.SendMessage(ctx, userID, sessionID, msg.Message)
		if err != nil {
			h.sendError(conn, sessionID, err.Error())
			return
		}
		h.send(conn, outgoingMessage{
			Type:      "reply",
			SessionID: sessionID,
			Data:      reply,
			Timestamp: time.Now().UnixMilli(),
		})
	case "ping":
		h.send(conn, outgoingMessage{
			Type:      "pong",
			SessionID: sessionID,
			Timestamp: time.Now().UnixMilli(),
		})
	default:
		h.sendError(conn, sessionID, "unsupported message type: "+msg.Type)
	}
}

func (h *WSHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msg outgoingMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[websocket] write failed: %v", err)
	}
}

func (h *WSHandler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, outgoingMessage{
		Type:      "error",
		SessionID: sessionID,
		Error:     message,
		Timestamp: time.Now().UnixMilli(),
	})
}

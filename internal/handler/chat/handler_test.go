package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	chatservice "github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/internal/store/memstore"
)

func setupRouter() (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService(memstore.NewChatStore(), memstore.NewCrisisStore(), nil)
	handler := New(chatSvc)

	r := chi.NewRouter()
	r.Use(middleware.Auth(""))
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func doJSON(r http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/chat/session", "user-1", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var session struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if session.ID == "" || session.UserID != "user-1" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestSendMessageCreatesSessionOnDemand(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/chat/message", "user-1", map[string]string{"message": "hello"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var reply struct {
		Message struct {
			SessionID string `json:"sessionId"`
			Role      string `json:"role"`
			Content   string `json:"content"`
		} `json:"message"`
		CrisisDetected bool `json:"crisisDetected"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.Message.SessionID == "" || reply.Message.Role != "assistant" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.CrisisDetected {
		t.Fatal("benign message flagged as crisis")
	}
}

func TestSendMessageCrisisResponseReachesClient(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/chat/message", "user-1", map[string]string{"message": "I feel hopeless"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "988") {
		t.Fatalf("crisis response missing hotline: %s", resp.Body.String())
	}
}

func TestSendMessageEmptyBody(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/chat/message", "user-1", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestTranscriptUnknownSession(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodGet, "/chat/session/no-such-session/messages", "user-1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHistoryEmpty(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodGet, "/chat/history", "user-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRoutesRequireIdentity(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}

package mood

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	moodservice "github.com/mindhaven/backend/internal/service/mood"
	"github.com/mindhaven/backend/internal/store/memstore"
)

func setupRouter() *chi.Mux {
	handler := New(moodservice.NewService(memstore.NewMoodStore()))

	r := chi.NewRouter()
	r.Use(middleware.Auth(""))
	handler.RegisterRoutes(r)
	return r
}

func doJSON(r http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateEntry(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodPost, "/mood", "user-1", map[string]any{
		"moodScore": 7,
		"emotions":  []string{"happy"},
		"notes":     "good day",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Entry struct {
			ID        string `json:"id"`
			MoodScore int    `json:"moodScore"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Entry.ID == "" || created.Entry.MoodScore != 7 {
		t.Fatalf("unexpected entry: %+v", created.Entry)
	}
}

func TestCreateEntryInvalidScore(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodPost, "/mood", "user-1", map[string]any{"moodScore": 11})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateEntryDuplicateDay(t *testing.T) {
	r := setupRouter()

	first := doJSON(r, http.MethodPost, "/mood", "user-1", map[string]any{"moodScore": 6})
	if first.Code != http.StatusCreated {
		t.Fatalf("first create: %d", first.Code)
	}

	second := doJSON(r, http.MethodPost, "/mood", "user-1", map[string]any{"moodScore": 8})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate day, got %d", second.Code)
	}
}

func TestGetUnknownEntry(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/mood/missing-id", "user-1", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestListWithPagination(t *testing.T) {
	r := setupRouter()

	if resp := doJSON(r, http.MethodPost, "/mood", "user-1", map[string]any{"moodScore": 6}); resp.Code != http.StatusCreated {
		t.Fatalf("seed create: %d", resp.Code)
	}

	resp := doJSON(r, http.MethodGet, "/mood?page=1&limit=10", "user-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listing struct {
		Entries    []json.RawMessage `json:"entries"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listing.Entries) != 1 || listing.Pagination.Total != 1 {
		t.Fatalf("unexpected listing: %s", resp.Body.String())
	}
}

func TestAnalyticsOverview(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/mood/analytics/overview?period=7d", "user-1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var overview struct {
		Period     string `json:"period"`
		Statistics struct {
			TotalEntries int `json:"totalEntries"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if overview.Period != "7d" || overview.Statistics.TotalEntries != 0 {
		t.Fatalf("unexpected overview: %s", resp.Body.String())
	}
}

func TestAnalyticsRejectsBadPeriod(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/mood/analytics/overview?period=14d", "user-1", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

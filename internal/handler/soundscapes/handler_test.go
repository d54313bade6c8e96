package soundscapes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	soundscapesservice "github.com/mindhaven/backend/internal/service/soundscapes"
)

func setupRouter() *chi.Mux {
	handler := New(soundscapesservice.NewLibrary())

	r := chi.NewRouter()
	r.Use(middleware.Auth(""))
	handler.RegisterRoutes(r)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRecommendByMood(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/soundscapes/recommend/anxious", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var rec struct {
		Mood            string `json:"mood"`
		Recommendations []struct {
			ID string `json:"id"`
		} `json:"recommendations"`
		TotalFound   int  `json:"totalFound"`
		Personalized bool `json:"personalized"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.Mood != "anxious" || rec.TotalFound != 2 {
		t.Fatalf("unexpected recommendation: %s", resp.Body.String())
	}
	if !rec.Personalized {
		t.Fatalf("expected personalized response for authenticated user")
	}
}

func TestAllWithTagFilter(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/soundscapes/all?tag=meditation", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var catalog struct {
		Soundscapes []struct {
			ID string `json:"id"`
		} `json:"soundscapes"`
		Categories []string `json:"categories"`
		TotalCount int      `json:"totalCount"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if catalog.TotalCount != 2 {
		t.Fatalf("meditation tag count = %d, want bells and zen garden", catalog.TotalCount)
	}
	if len(catalog.Categories) != 5 {
		t.Fatalf("categories = %v", catalog.Categories)
	}
}

func TestPlayedLogsUsage(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodPost, "/soundscapes/played",
		map[string]any{"soundscapeId": "calm_ocean", "duration": 300, "mood": "anxious", "completed": true})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var ack struct {
		Success bool `json:"success"`
		Data    struct {
			UserID       string `json:"userId"`
			SoundscapeID string `json:"soundscapeId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !ack.Success || ack.Data.UserID != "user-1" || ack.Data.SoundscapeID != "calm_ocean" {
		t.Fatalf("unexpected ack: %s", resp.Body.String())
	}
}

func TestPlayedRequiresSoundscapeID(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodPost, "/soundscapes/played", map[string]any{"duration": 300})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHistoryPlaceholder(t *testing.T) {
	r := setupRouter()

	resp := doJSON(r, http.MethodGet, "/soundscapes/history", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var history struct {
		RecentlyPlayed []any    `json:"recentlyPlayed"`
		PreferredMoods []string `json:"preferredMoods"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(history.RecentlyPlayed) != 0 || len(history.PreferredMoods) != 2 {
		t.Fatalf("unexpected history: %s", resp.Body.String())
	}
}

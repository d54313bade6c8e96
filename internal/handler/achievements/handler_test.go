package achievements

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	"github.com/mindhaven/backend/internal/model/mood"
	achievementsservice "github.com/mindhaven/backend/internal/service/achievements"
	"github.com/mindhaven/backend/internal/store/memstore"
)

func setupRouter() (*chi.Mux, *memstore.MoodStore) {
	moodStore := memstore.NewMoodStore()
	svc := achievementsservice.NewService(
		memstore.NewAchievementStore(), moodStore,
		memstore.NewJournalStore(), memstore.NewChatStore())
	handler := New(svc)

	r := chi.NewRouter()
	r.Use(middleware.Auth(""))
	handler.RegisterRoutes(r)
	return r, moodStore
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

func TestOverviewShape(t *testing.T) {
	r, moodStore := setupRouter()

	entry := mood.Entry{UserID: "user-1", MoodScore: 6, CreatedAt: time.Now().UTC()}
	if _, err := moodStore.Create(context.Background(), entry); err != nil {
		t.Fatalf("seed mood: %v", err)
	}

	resp := doJSON(r, http.MethodGet, "/achievements/me", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var overview struct {
		Achievements []struct {
			ID       string `json:"id"`
			Progress int    `json:"progress"`
			Unlocked bool   `json:"unlocked"`
		} `json:"achievements"`
		Stats struct {
			TotalAchievements int `json:"totalAchievements"`
			UnlockedCount     int `json:"unlockedCount"`
			Level             int `json:"level"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(overview.Achievements) != 6 || overview.Stats.TotalAchievements != 6 {
		t.Fatalf("unexpected overview: %s", resp.Body.String())
	}

	// The single mood entry unlocks first_steps by itself.
	var firstSteps *struct {
		ID       string `json:"id"`
		Progress int    `json:"progress"`
		Unlocked bool   `json:"unlocked"`
	}
	for i := range overview.Achievements {
		if overview.Achievements[i].ID == "first_steps" {
			firstSteps = &overview.Achievements[i]
		}
	}
	if firstSteps == nil || !firstSteps.Unlocked {
		t.Fatalf("first_steps not unlocked: %s", resp.Body.String())
	}
	if overview.Stats.UnlockedCount != 1 {
		t.Fatalf("unlockedCount = %d, want 1", overview.Stats.UnlockedCount)
	}
}

func TestProgressUpdate(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/achievements/progress",
		map[string]any{"achievementId": "breathing_master", "increment": 10})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var update struct {
		AchievementID string `json:"achievementId"`
		Progress      int    `json:"progress"`
		Unlocked      bool   `json:"unlocked"`
		JustUnlocked  bool   `json:"justUnlocked"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &update); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if update.Progress != 10 || !update.Unlocked || !update.JustUnlocked {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestProgressUnknownAchievement(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/achievements/progress",
		map[string]any{"achievementId": "speed_runner"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProgressMissingID(t *testing.T) {
	r, _ := setupRouter()

	resp := doJSON(r, http.MethodPost, "/achievements/progress", map[string]any{"increment": 1})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

package models

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	modelsservice "github.com/mindhaven/backend/internal/service/models"
)

func setupRouter() *chi.Mux {
	handler := New(modelsservice.NewCatalog())

	r := chi.NewRouter()
	r.Use(middleware.Auth(""))
	handler.RegisterRoutes(r)
	return r
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-ID", "user-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestListModels(t *testing.T) {
	r := setupRouter()

	resp := do(r, "/models")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listing struct {
		Models []struct {
			ID string `json:"id"`
		} `json:"models"`
		Total    int    `json:"total"`
		Provider string `json:"provider"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if listing.Total != 3 || listing.Provider == "" {
		t.Fatalf("unexpected listing: %s", resp.Body.String())
	}
}

func TestListModelsByCategory(t *testing.T) {
	r := setupRouter()

	resp := do(r, "/models?category=premium&limit=10")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listing struct {
		Models []struct {
			Category string `json:"category"`
		} `json:"models"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listing.Models) != 1 || listing.Models[0].Category != "premium" {
		t.Fatalf("unexpected filtered listing: %s", resp.Body.String())
	}
}

func TestListModelsRejectsBadCategory(t *testing.T) {
	r := setupRouter()

	if resp := do(r, "/models?category=turbo"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetModelDetail(t *testing.T) {
	r := setupRouter()

	resp := do(r, "/models/gemini-1.5-flash")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var detail struct {
		Model struct {
			ID             string   `json:"id"`
			SafetyFeatures []string `json:"safetyFeatures"`
		} `json:"model"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if detail.Model.ID != "gemini-1.5-flash" || len(detail.Model.SafetyFeatures) == 0 {
		t.Fatalf("unexpected detail: %s", resp.Body.String())
	}
}

func TestGetUnknownModel(t *testing.T) {
	r := setupRouter()

	if resp := do(r, "/models/gpt-99"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

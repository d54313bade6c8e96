package models

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	modelsService "github.com/mindhaven/backend/internal/service/models"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler exposes the model catalog endpoints.
type Handler struct {
	catalog *modelsService.Catalog
}

// New creates the models handler.
func New(catalog *modelsService.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes mounts the model catalog routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/models", h.handleList)
	r.Get("/models/{modelID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	switch category {
	case "", modelsService.CategoryAll, modelsService.CategoryStandard, modelsService.CategoryPremium:
	default:
		utils.RespondError(w, http.StatusBadRequest, "category must be standard, premium or all")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 50 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = value
	}

	utils.RespondJSON(w, http.StatusOK, h.catalog.List(category, limit))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.Get(chi.URLParam(r, "modelID"))
	if err != nil {
		if errors.Is(err, modelsService.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "model not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch model")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"model": detail})
}

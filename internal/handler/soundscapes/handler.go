package soundscapes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	soundscapesService "github.com/mindhaven/backend/internal/service/soundscapes"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler exposes the soundscape library endpoints.
type Handler struct {
	library *soundscapesService.Library
}

// New creates the soundscapes handler.
func New(library *soundscapesService.Library) *Handler {
	return &Handler{library: library}
}

// RegisterRoutes mounts the soundscape routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/soundscapes/recommend/{mood}", h.handleRecommend)
	r.Get("/soundscapes/all", h.handleAll)
	r.Post("/soundscapes/played", h.handlePlayed)
	r.Get("/soundscapes/history", h.handleHistory)
}

func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	mood := chi.URLParam(r, "mood")
	personalized := middleware.UserID(r.Context()) != ""
	utils.RespondJSON(w, http.StatusOK, h.library.Recommend(mood, personalized))
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	tag := r.URL.Query().Get("tag")
	utils.RespondJSON(w, http.StatusOK, h.library.All(category, tag))
}

func (h *Handler) handlePlayed(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SoundscapeID string `json:"soundscapeId"`
		Duration     int    `json:"duration"`
		Mood         string `json:"mood"`
		Completed    bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SoundscapeID == "" {
		utils.RespondError(w, http.StatusBadRequest, "soundscapeId is required")
		return
	}

	logEntry := h.library.LogPlayback(
		middleware.UserID(r.Context()), payload.SoundscapeID,
		payload.Mood, payload.Duration, payload.Completed)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Soundscape usage logged",
		"data":    logEntry,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.library.UserHistory(middleware.UserID(r.Context())))
}

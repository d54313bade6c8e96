package achievements

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	achievementsService "github.com/mindhaven/backend/internal/service/achievements"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler exposes the achievement endpoints.
type Handler struct {
	achievementsSvc *achievementsService.Service
}

// New creates the achievements handler.
func New(achievementsSvc *achievementsService.Service) *Handler {
	return &Handler{achievementsSvc: achievementsSvc}
}

// RegisterRoutes mounts the achievement routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/achievements/me", h.handleOverview)
	r.Post("/achievements/progress", h.handleProgress)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.achievementsSvc.Overview(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch achievements")
		return
	}
	utils.RespondJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		AchievementID string `json:"achievementId"`
		Increment     int    `json:"increment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.AchievementID == "" {
		utils.RespondError(w, http.StatusBadRequest, "achievementId is required")
		return
	}

	update, err := h.achievementsSvc.UpdateProgress(
		r.Context(), middleware.UserID(r.Context()), payload.AchievementID, payload.Increment)
	if err != nil {
		if errors.Is(err, achievementsService.ErrUnknownAchievement) {
			utils.RespondError(w, http.StatusNotFound, "achievement not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to update achievement")
		return
	}
	utils.RespondJSON(w, http.StatusOK, update)
}

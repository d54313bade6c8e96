package streaks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	"github.com/mindhaven/backend/internal/model/activity"
	streaksService "github.com/mindhaven/backend/internal/service/streaks"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler exposes the streak report endpoints.
type Handler struct {
	streaksSvc *streaksService.Service
}

// New creates the streaks handler.
func New(streaksSvc *streaksService.Service) *Handler {
	return &Handler{streaksSvc: streaksSvc}
}

// RegisterRoutes mounts the streak routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/streaks/me", h.handleReport)
	r.Post("/streaks/update", h.handleUpdate)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.streaksSvc.Report(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to compute streaks")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"streaks": map[string]any{
			"overall": report.Overall,
			"mood":    report.Mood,
			"journal": report.Journal,
			"chat":    report.Chat,
		},
		"stats":      report.Stats,
		"milestones": report.Milestones,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ActivityType string `json:"activityType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := activity.Category(payload.ActivityType)
	if !isTracked(category) {
		utils.RespondError(w, http.StatusBadRequest, "activityType must be mood, journal or chat")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.streaksSvc.RecordActivity(category))
}

func isTracked(category activity.Category) bool {
	for _, tracked := range activity.Tracked() {
		if category == tracked {
			return true
		}
	}
	return false
}

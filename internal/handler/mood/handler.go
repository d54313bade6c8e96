package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/analysis/moodstats"
	"github.com/mindhaven/backend/internal/middleware"
	moodModel "github.com/mindhaven/backend/internal/model/mood"
	moodService "github.com/mindhaven/backend/internal/service/mood"
	"github.com/mindhaven/backend/pkg/utils"
)

// Handler exposes the mood check-in CRUD and analytics endpoints.
type Handler struct {
	moodSvc *moodService.Service
}

// New creates the mood handler.
func New(moodSvc *moodService.Service) *Handler {
	return &Handler{moodSvc: moodSvc}
}

// RegisterRoutes mounts the mood routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood", h.handleList)
	r.Post("/mood", h.handleCreate)
	r.Get("/mood/analytics/overview", h.handleAnalytics)
	r.Get("/mood/{id}", h.handleGet)
	r.Put("/mood/{id}", h.handleUpdate)
	r.Delete("/mood/{id}", h.handleDelete)
}

type entryPayload struct {
	MoodScore          int      `json:"moodScore"`
	Emotions           []string `json:"emotions"`
	Notes              string   `json:"notes"`
	Activities         []string `json:"activities"`
	SleepHours         *float64 `json:"sleepHours"`
	EnergyLevel        *int     `json:"energyLevel"`
	StressLevel        *int     `json:"stressLevel"`
	SocialInteractions *int     `json:"socialInteractions"`
}

func (p entryPayload) toEntry(userID string) moodModel.Entry {
	return moodModel.Entry{
		UserID:             userID,
		MoodScore:          p.MoodScore,
		Emotions:           p.Emotions,
		Notes:              p.Notes,
		Activities:         p.Activities,
		SleepHours:         p.SleepHours,
		EnergyLevel:        p.EnergyLevel,
		StressLevel:        p.StressLevel,
		SocialInteractions: p.SocialInteractions,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.moodSvc.Create(r.Context(), payload.toEntry(middleware.UserID(r.Context())))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.moodSvc.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := payload.toEntry(middleware.UserID(r.Context()))
	entry.ID = chi.URLParam(r, "id")

	updated, err := h.moodSvc.Update(r.Context(), entry)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"entry": updated})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.moodSvc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)
	if limit > 100 {
		limit = 100
	}

	filter := moodModel.ListFilter{
		MinScore: queryInt(r, "minScore", 0),
		MaxScore: queryInt(r, "maxScore", 0),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	if start, ok := queryTime(r, "startDate"); ok {
		filter.Start = start
	}
	if end, ok := queryTime(r, "endDate"); ok {
		filter.End = end
	}

	entries, total, err := h.moodSvc.List(r.Context(), middleware.UserID(r.Context()), filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch mood entries")
		return
	}

	totalPages := (total + limit - 1) / limit
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"pagination": map[string]any{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
			"hasNext":    page < totalPages,
			"hasPrev":    page > 1,
		},
	})
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	groupBy := moodstats.Granularity(r.URL.Query().Get("groupBy"))

	overview, err := h.moodSvc.Analytics(r.Context(), middleware.UserID(r.Context()), period, groupBy)
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, overview)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, moodModel.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, moodService.ErrInvalidScore),
		errors.Is(err, moodService.ErrInvalidFactor),
		errors.Is(err, moodService.ErrInvalidPeriod),
		errors.Is(err, moodService.ErrDuplicateToday):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func queryTime(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return value, true
}

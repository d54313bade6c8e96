package journal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mindhaven/backend/internal/middleware"
	journalModel "github.com/mindhaven/backend/internal/model/journal"
	"github.com/mindhaven/backend/pkg/utils"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// Handler exposes the journal CRUD endpoints.
type Handler struct {
	store journalModel.Store
}

// New creates the journal handler.
func New(store journalModel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the journal routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/journal", h.handleList)
	r.Post("/journal", h.handleCreate)
	r.Get("/journal/{id}", h.handleGet)
	r.Put("/journal/{id}", h.handleUpdate)
	r.Delete("/journal/{id}", h.handleDelete)
}

type entryPayload struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    string   `json:"mood"`
	Tags    []string `json:"tags"`
}

func (p entryPayload) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content is required")
	}
	if len([]rune(p.Title)) > maxTitleLength {
		return errors.New("title too long")
	}
	if len([]rune(p.Content)) > maxContentLength {
		return errors.New("content too long")
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.store.Create(r.Context(), journalModel.Entry{
		UserID:  middleware.UserID(r.Context()),
		Title:   strings.TrimSpace(payload.Title),
		Content: payload.Content,
		Mood:    payload.Mood,
		Tags:    payload.Tags,
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create journal entry")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.GetByID(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
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
	if err := payload.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.Update(r.Context(), journalModel.Entry{
		ID:      chi.URLParam(r, "id"),
		UserID:  middleware.UserID(r.Context()),
		Title:   strings.TrimSpace(payload.Title),
		Content: payload.Content,
		Mood:    payload.Mood,
		Tags:    payload.Tags,
	})
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"entry": updated})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	filter := journalModel.ListFilter{
		Search: r.URL.Query().Get("search"),
		Mood:   r.URL.Query().Get("mood"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	entries, total, err := h.store.ListByUser(r.Context(), middleware.UserID(r.Context()), filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch journal entries")
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

func statusFor(err error) int {
	if errors.Is(err, journalModel.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

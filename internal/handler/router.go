package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	achievementsHandler "github.com/mindhaven/backend/internal/handler/achievements"
	chatHandler "github.com/mindhaven/backend/internal/handler/chat"
	journalHandler "github.com/mindhaven/backend/internal/handler/journal"
	modelsHandler "github.com/mindhaven/backend/internal/handler/models"
	moodHandler "github.com/mindhaven/backend/internal/handler/mood"
	soundscapesHandler "github.com/mindhaven/backend/internal/handler/soundscapes"
	streamHandler "github.com/mindhaven/backend/internal/handler/stream"
	streaksHandler "github.com/mindhaven/backend/internal/handler/streaks"
	"github.com/mindhaven/backend/internal/middleware"
	journalModel "github.com/mindhaven/backend/internal/model/journal"
	achievementsService "github.com/mindhaven/backend/internal/service/achievements"
	aiService "github.com/mindhaven/backend/internal/service/ai"
	chatService "github.com/mindhaven/backend/internal/service/chat"
	modelsService "github.com/mindhaven/backend/internal/service/models"
	moodService "github.com/mindhaven/backend/internal/service/mood"
	soundscapesService "github.com/mindhaven/backend/internal/service/soundscapes"
	streaksService "github.com/mindhaven/backend/internal/service/streaks"
	"github.com/mindhaven/backend/pkg/utils"
)

// Deps bundles everything the router wires together.
type Deps struct {
	JWTSecret       string
	MoodSvc         *moodService.Service
	JournalStore    journalModel.Store
	ChatSvc         *chatService.Service
	AISvc           *aiService.Service
	StreaksSvc      *streaksService.Service
	AchievementsSvc *achievementsService.Service
	Catalog         *modelsService.Catalog
	Soundscapes     *soundscapesService.Library
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Streaming endpoint with AI integration, available when the provider
	// is configured.
	var sse *streamHandler.Handler
	if deps.AISvc != nil {
		sse = streamHandler.New(deps.AISvc, deps.ChatSvc)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Auth(deps.JWTSecret))

		moodHandler.New(deps.MoodSvc).RegisterRoutes(api)
		journalHandler.New(deps.JournalStore).RegisterRoutes(api)
		chatHandler.New(deps.ChatSvc).RegisterRoutes(api)
		chatHandler.NewWSHandler(deps.ChatSvc).RegisterRoutes(api)
		streaksHandler.New(deps.StreaksSvc).RegisterRoutes(api)
		achievementsHandler.New(deps.AchievementsSvc).RegisterRoutes(api)
		modelsHandler.New(deps.Catalog).RegisterRoutes(api)
		soundscapesHandler.New(deps.Soundscapes).RegisterRoutes(api)

		api.Get("/chat/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if sse == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
				return
			}
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			userID := middleware.UserID(r.Context())
			if err := sse.HandleStreamRequest(r.Context(), w, userID, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}

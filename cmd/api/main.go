package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindhaven/backend/internal/config"
	"github.com/mindhaven/backend/internal/handler"
	achievementModel "github.com/mindhaven/backend/internal/model/achievement"
	chatModel "github.com/mindhaven/backend/internal/model/chat"
	crisisModel "github.com/mindhaven/backend/internal/model/crisis"
	journalModel "github.com/mindhaven/backend/internal/model/journal"
	moodModel "github.com/mindhaven/backend/internal/model/mood"
	"github.com/mindhaven/backend/internal/service/achievements"
	"github.com/mindhaven/backend/internal/service/ai"
	"github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/internal/service/models"
	"github.com/mindhaven/backend/internal/service/mood"
	"github.com/mindhaven/backend/internal/service/soundscapes"
	"github.com/mindhaven/backend/internal/service/streaks"
	"github.com/mindhaven/backend/internal/store/memstore"
	"github.com/mindhaven/backend/internal/store/sqlstore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	moodStore, journalStore, chatStore, crisisStore, achievementStore := buildStores(cfg)

	// Initialize AI service
	var aiService *ai.Service
	if cfg.AI.Enabled() {
		aiService, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with fallback responses only")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("AI provider credentials not configured, responses use the fallback path")
	}

	chatService := chat.NewService(chatStore, crisisStore, generatorOrNil(aiService))
	moodService := mood.NewService(moodStore)
	streaksService := streaks.NewService(moodStore, journalStore, chatStore)
	achievementsService := achievements.NewService(achievementStore, moodStore, journalStore, chatStore)
	catalog := models.NewCatalog()
	library := soundscapes.NewLibrary()

	router := handler.NewRouter(handler.Deps{
		JWTSecret:       cfg.Auth.JWTSecret,
		MoodSvc:         moodService,
		JournalStore:    journalStore,
		ChatSvc:         chatService,
		AISvc:           aiService,
		StreaksSvc:      streaksService,
		AchievementsSvc: achievementsService,
		Catalog:         catalog,
		Soundscapes:     library,
	})

	startServer(ctx, cfg.Server, router)
}

// buildStores opens the configured database, falling back to in-memory
// stores when no driver is set.
func buildStores(cfg *config.Config) (moodModel.Store, journalModel.Store, chatModel.Store, crisisModel.Store, achievementModel.Store) {
	if !cfg.Database.Enabled() {
		log.Println("no database configured, using in-memory stores")
		return memstore.NewMoodStore(), memstore.NewJournalStore(), memstore.NewChatStore(),
			memstore.NewCrisisStore(), memstore.NewAchievementStore()
	}

	db, err := sqlstore.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	log.Printf("connected to %s database", cfg.Database.Driver)
	return sqlstore.NewMoodStore(db), sqlstore.NewJournalStore(db), sqlstore.NewChatStore(db),
		sqlstore.NewCrisisStore(db), sqlstore.NewAchievementStore(db)
}

// generatorOrNil avoids handing the chat service a non-nil interface that
// wraps a nil pointer.
func generatorOrNil(aiService *ai.Service) chat.Generator {
	if aiService == nil {
		return nil
	}
	return aiService
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MindHaven backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

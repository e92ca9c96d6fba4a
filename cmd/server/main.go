package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/auth"
	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/anonto42/gif-feed/backend/internal/router"
	"github.com/anonto42/gif-feed/backend/pkg/config"
	"github.com/anonto42/gif-feed/backend/pkg/firebase"
	"github.com/anonto42/gif-feed/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.New("gif-feed", cfg.Env)

	ctx := context.Background()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	verifier, err := buildVerifier(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize identity verification: %v", err)
	}

	users, err := buildUserRepository(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize user store: %v", err)
	}
	prompts, err := buildPromptRepository(db, log)
	if err != nil {
		log.Fatalf("Failed to initialize prompt store: %v", err)
	}

	var sessions repositories.SessionStore = repositories.NewMemorySessionStore(cfg.SessionTTL)
	if db.Redis != nil {
		sessions = repositories.NewRedisSessionStore(db.Redis, cfg.SessionTTL)
	}

	chain := providers.NewChain(log,
		providers.NewTenorProvider(cfg.TenorAPIKey, cfg.TenorClientKey, cfg.ProviderTimeout),
		providers.NewGiphyProvider(cfg.GiphyAPIKey, cfg.ProviderTimeout),
	)
	if !chain.Configured() {
		log.Warn("No GIF provider key configured, search and acquisition will answer 503")
	}

	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, cfg, log)
	router.SetupRoutes(e, router.Dependencies{
		Verifier: verifier,
		Users:    users,
		Prompts:  prompts,
		Sessions: sessions,
		Provider: chain,
		Logger:   log,
	})

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
}

// buildVerifier prefers Firebase and falls back to locally signed tokens.
func buildVerifier(ctx context.Context, cfg *config.Config, log *logrus.Logger) (auth.Verifier, error) {
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			return nil, err
		}
		return auth.NewFirebaseVerifier(app.AuthClient), nil
	}
	log.Warn("FIREBASE_CREDENTIALS_PATH not set, verifying HS256 tokens signed with JWT_SECRET")
	return auth.NewJWTVerifier(cfg.JWTSecret), nil
}

func buildUserRepository(ctx context.Context, cfg *config.Config, db *config.DB) (repositories.UserRepository, error) {
	if db.Mongo == nil {
		return repositories.NewMemoryUserRepository(), nil
	}
	repo := repositories.NewMongoUserRepository(db.Mongo.Database(cfg.MongoDB))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func buildPromptRepository(db *config.DB, log *logrus.Logger) (repositories.PromptRepository, error) {
	if db.Postgres == nil {
		return repositories.NewMemoryPromptRepository(), nil
	}
	if err := db.Postgres.AutoMigrate(&models.Prompt{}); err != nil {
		return nil, err
	}
	log.Info("PostgreSQL auto-migrations completed")
	return repositories.NewPostgresPromptRepository(db.Postgres), nil
}

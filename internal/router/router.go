package router

import (
	"github.com/anonto42/gif-feed/backend/internal/auth"
	"github.com/anonto42/gif-feed/backend/internal/handlers"
	"github.com/anonto42/gif-feed/backend/internal/middleware"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/anonto42/gif-feed/backend/internal/services"
	"github.com/anonto42/gif-feed/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Verifier auth.Verifier
	Users    repositories.UserRepository
	Prompts  repositories.PromptRepository
	Sessions repositories.SessionStore
	Provider providers.Provider
	Rand     services.RandSource // nil uses math/rand
	Logger   *logrus.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Logger
	e.Validator = validators.NewValidator()

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	acquirer := services.NewAcquirer(deps.Provider, deps.Rand, log)
	userService := services.NewUserService(deps.Users)
	gifService := services.NewGifService(deps.Users, deps.Sessions, deps.Provider, acquirer, log)
	feedService := services.NewFeedService(deps.Users)
	followService := services.NewFollowService(deps.Users)
	promptService := services.NewPromptService(deps.Prompts)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.Authenticate(deps.Verifier))
	log.Info("Bearer authentication applied to /api/v1 group")

	handlers.NewUserHandler(userService).RegisterUserRoutes(api)
	log.Info("User routes configured")

	handlers.NewGifHandler(gifService, log).RegisterGifRoutes(api)
	log.Info("GIF routes configured")

	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	log.Info("Feed routes configured")

	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	log.Info("Follow routes configured")

	handlers.NewPromptHandler(promptService).RegisterPromptRoutes(api)
	log.Info("Prompt routes configured")
}

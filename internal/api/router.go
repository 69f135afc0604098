package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/kheti-ai/kheti/internal/agent"
	"github.com/kheti-ai/kheti/internal/api/handler"
	customMiddleware "github.com/kheti-ai/kheti/internal/api/middleware"
	"github.com/kheti-ai/kheti/internal/config"
	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/llm/gemini"
	"github.com/kheti-ai/kheti/internal/llm/ollama"
	"github.com/kheti-ai/kheti/internal/repository/postgres"
	"github.com/kheti-ai/kheti/internal/repository/redis"
	"github.com/kheti-ai/kheti/internal/security"
	"github.com/kheti-ai/kheti/internal/service"
	"github.com/kheti-ai/kheti/internal/session"
	"github.com/kheti-ai/kheti/internal/tools"
)

// NewRouter creates and configures the HTTP router. The returned
// registry is shared with the sweeper owned by main.
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, registry *session.Registry) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	sessionRepo := postgres.NewSessionRepository(db.Pool)
	messageRepo := postgres.NewMessageRepository(db.Pool)

	// Initialize rate limiter and weather cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	weatherCache := redis.NewWeatherCache(redisClient, cfg.Tools.WeatherCacheTTL)

	// Initialize LLM router with providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	var summarizer llm.Summarizer
	if cfg.LLM.Gemini.APIKey != "" {
		geminiProvider := gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model, cfg.LLM.Gemini.TitleModel)
		llmRouter.RegisterProvider(geminiProvider)
		summarizer = geminiProvider
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}

	// Register agent tools
	toolRegistry := tools.NewRegistry()
	toolRegistry.Register(tools.NewWeatherTool(cfg.Tools.WeatherAPIKey, weatherCache))
	toolRegistry.Register(tools.NewMandiTool(cfg.Tools.ENAMURL))
	toolRegistry.Register(tools.NewPlantInfoTool())
	toolRegistry.Register(&tools.CalendarTool{})
	toolRegistry.Register(&tools.FertilizerTool{})
	toolRegistry.Register(&tools.IrrigationTool{})
	toolRegistry.Register(&tools.SeedTool{})
	toolRegistry.Register(&tools.PesticideTool{})
	toolRegistry.Register(&tools.ProfitabilityTool{})
	toolRegistry.Register(&tools.SchemeInfoTool{})
	toolRegistry.Register(&tools.SchemeListTool{})
	toolRegistry.Register(&tools.HelplineTool{})
	toolRegistry.Register(&tools.OfficesTool{})
	log.Info().Int("count", len(toolRegistry.Names())).Msg("Registered agent tools")

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	sessionService := service.NewSessionService(sessionRepo, messageRepo, summarizer, cfg.Session.MemoryWindow)
	chatService := service.NewChatService(registry, sessionService, llmRouter, agent.New(toolRegistry))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Chat and public session reads work with or without a token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuthenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/chat", chatHandler.Chat)
			r.Get("/sessions/{sessionID}", sessionHandler.Get)
			r.Get("/sessions/{sessionID}/messages", sessionHandler.GetMessages)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)

			r.Get("/tools", handler.ListTools(toolRegistry))
			r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.List)
				r.Post("/", sessionHandler.Create)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Patch("/", sessionHandler.Update)
					r.Delete("/", sessionHandler.Delete)
				})
			})
		})
	})

	return r
}

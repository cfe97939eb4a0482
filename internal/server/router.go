package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/handlers"
	"github.com/fagame/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	GameHandler      *handlers.GameHandler
	SessionHandler   *handlers.SessionHandler
	AssistantHandler *handlers.AssistantHandler
	VoiceHandler     *handlers.VoiceHandler
	TemplatesHandler *handlers.TemplatesHandler

	AllowOrigins []string
	MediaDir     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)

		api.GET("/templates", cfg.TemplatesHandler.List)
		api.GET("/templates/vocabulary", cfg.TemplatesHandler.Vocabulary)

		api.GET("/games", cfg.GameHandler.List)
		api.GET("/games/trending", cfg.GameHandler.Trending)
		// Owners see their private games here too.
		api.GET("/games/:id", cfg.AuthMiddleware.OptionalAuth(), cfg.GameHandler.Get)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	// User
	protected.GET("/user", cfg.UserHandler.GetMe)

	// Games
	protected.GET("/my/games", cfg.GameHandler.ListMine)
	protected.POST("/games", cfg.GameHandler.Create)
	protected.PUT("/games/:id", cfg.GameHandler.Update)
	protected.DELETE("/games/:id", cfg.GameHandler.Delete)
	protected.POST("/games/:id/like", cfg.GameHandler.ToggleLike)
	protected.POST("/games/:id/play", cfg.GameHandler.StartPlay)

	// Play sessions
	protected.PATCH("/sessions/:id", cfg.SessionHandler.Update)
	protected.POST("/sessions/:id/complete", cfg.SessionHandler.Complete)

	// Voice
	protected.POST("/voice/transcribe", cfg.VoiceHandler.Transcribe)

	// Assistant
	protected.GET("/assistant/config", cfg.AssistantHandler.GetConfig)
	protected.PUT("/assistant/config", cfg.AssistantHandler.UpdateConfig)
	protected.POST("/assistant/hint", cfg.AssistantHandler.Hint)
	protected.POST("/assistant/encouragement", cfg.AssistantHandler.Encouragement)
	protected.POST("/assistant/difficulty", cfg.AssistantHandler.Difficulty)
	protected.POST("/assistant/progress", cfg.AssistantHandler.Analyze)

	return router
}

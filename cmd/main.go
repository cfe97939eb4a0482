package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fagame/backend/internal/db"
	"github.com/fagame/backend/internal/handlers"
	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/middleware"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/server"
	"github.com/fagame/backend/internal/services"
	"github.com/fagame/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	listenAddr := utils.GetEnv("LISTEN_ADDR", ":8080", log)
	allowOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	gameRepo := repos.NewGameRepo(thePG, log)
	gameLikeRepo := repos.NewGameLikeRepo(thePG, log)
	playSessionRepo := repos.NewPlaySessionRepo(thePG, log)
	assistantPrefsRepo := repos.NewAssistantPrefsRepo(thePG, log)
	aiCallLogRepo := repos.NewAICallLogRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	ctx := context.Background()

	geminiClient, err := services.NewGeminiClient(ctx, log, aiCallLogRepo)
	if err != nil {
		log.Error("Could not init GeminiClient", "error", err)
		os.Exit(1)
	}
	defer geminiClient.Close()

	synthesizerService, err := services.NewSynthesizerService(log, geminiClient)
	if err != nil {
		log.Error("Could not init SynthesizerService", "error", err)
		os.Exit(1)
	}
	assistantService, err := services.NewAssistantService(log, geminiClient)
	if err != nil {
		log.Error("Could not init AssistantService", "error", err)
		os.Exit(1)
	}

	speechService, err := services.NewSpeechService(ctx, log)
	if err != nil {
		log.Error("Could not init SpeechService", "error", err)
		os.Exit(1)
	}
	defer speechService.Close()

	thumbnailService, err := services.NewThumbnailService(log)
	if err != nil {
		log.Error("Could not init ThumbnailService", "error", err)
		os.Exit(1)
	}

	trendingService := services.NewTrendingService(log, gameRepo)
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(log, userRepo, assistantPrefsRepo)
	gameService := services.NewGameService(
		thePG,
		log,
		gameRepo,
		gameLikeRepo,
		playSessionRepo,
		thumbnailService,
		trendingService,
	)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	gameHandler := handlers.NewGameHandler(gameService, synthesizerService, trendingService)
	sessionHandler := handlers.NewSessionHandler(gameService)
	assistantHandler := handlers.NewAssistantHandler(assistantService, userService)
	voiceHandler := handlers.NewVoiceHandler(speechService)
	templatesHandler := handlers.NewTemplatesHandler()

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	var origins []string
	if allowOrigins != "" {
		origins = strings.Split(allowOrigins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UserHandler:      userHandler,
		GameHandler:      gameHandler,
		SessionHandler:   sessionHandler,
		AssistantHandler: assistantHandler,
		VoiceHandler:     voiceHandler,
		TemplatesHandler: templatesHandler,
		AllowOrigins:     origins,
		MediaDir:         thumbnailService.MediaDir(),
	})

	log.Info("Starting server from main...", "addr", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}

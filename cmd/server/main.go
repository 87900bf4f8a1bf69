package main

import (
	"log"
	"net/http"

	_ "counsellor/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"counsellor/internal/auth"
	"counsellor/internal/cache"
	"counsellor/internal/config"
	"counsellor/internal/db"
	"counsellor/internal/gemini"
	"counsellor/internal/handler"
	"counsellor/internal/model"
	"counsellor/internal/repository"
	"counsellor/internal/router"
	"counsellor/internal/service"
)

// @title Study Abroad Counsellor API
// @version 1.0
// @description REST backend for study abroad counselling with AI guidance, university discovery, and application tracking.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.University{},
		&model.ShortlistEntry{},
		&model.Conversation{},
		&model.Task{},
		&model.Document{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	universityRepo := repository.NewUniversityRepository(gormDB)
	shortlistRepo := repository.NewShortlistRepository(gormDB)
	conversationRepo := repository.NewConversationRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize AI client. With no API key the counsellor degrades to
	// deterministic fallback replies; everything else keeps working.
	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if !geminiClient.Available() {
		log.Println("GEMINI_API_KEY not set, AI counsellor running with fallback responses")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, profileRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, profileRepo, shortlistRepo, taskRepo)
	universityService := service.NewUniversityService(universityRepo, profileRepo, shortlistRepo, taskRepo, userRepo, cacheClient)
	counsellorService := service.NewCounsellorService(userRepo, profileRepo, shortlistRepo, taskRepo, conversationRepo, geminiClient)
	taskService := service.NewTaskService(taskRepo)
	documentService := service.NewDocumentService(documentRepo, cfg.UploadDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	universityHandler := handler.NewUniversityHandler(universityService)
	counsellorHandler := handler.NewCounsellorHandler(counsellorService)
	taskHandler := handler.NewTaskHandler(taskService)
	documentHandler := handler.NewDocumentHandler(documentService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		profileHandler,
		universityHandler,
		counsellorHandler,
		taskHandler,
		documentHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-screening-backend/config"
	_ "go-screening-backend/docs" // Important for Swagger
	v1 "go-screening-backend/internal/delivery/http/v1"
	"go-screening-backend/internal/repository/memory"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/questions"
	"go-screening-backend/pkg/redis"
	"go-screening-backend/pkg/secrets"
	"go-screening-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// @title           TalentScout Screening API
// @version         1.0
// @description     Backend for the guided candidate screening flow.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Env == "production" {
		// Release mode also switches session and CSRF cookies to Secure
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting screening backend", "port", cfg.Port)

	// 3. Setup Redis (optional, backs the rate limiter only)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory counters", "error", err)
	}
	defer redis.Close()

	// 4. Resolve the OpenAI credential: explicit value, secrets file, then
	// environment. Absence is not an error; it selects fallback-only mode.
	var generator questions.Generator
	if apiKey := secrets.ResolveAPIKey("", cfg.SecretsFile); apiKey != "" {
		generator = questions.NewOpenAIGenerator(
			apiKey,
			cfg.OpenAIModel,
			time.Duration(cfg.OpenAITimeoutSeconds)*time.Second,
		)
	} else {
		logger.Log.Warn("OPENAI_API_KEY not configured - serving fallback questions only")
	}
	questionService := questions.NewService(generator, logger.Log)

	// 5. Setup Session Store
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.SessionIdleMinutes) * time.Minute)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	screeningUC := usecase.NewScreeningUsecase(sessionRepo, questionService, validate)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ScreeningUC: screeningUC,
		Sessions:    sessionRepo,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

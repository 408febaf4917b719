package v1

import (
	"net/http"
	"time"

	"go-screening-backend/config"
	"go-screening-backend/internal/delivery/http/middleware"
	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ScreeningUC domain.ScreeningUsecase
	Sessions    domain.SessionRepository
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.CSRFMiddleware())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		var data gin.H
		if counter, ok := deps.Sessions.(interface{ Len() int }); ok {
			data = gin.H{"active_sessions": counter.Len()}
		}
		response.Success(c, http.StatusOK, "System operational", data)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Screening flow: one anonymous session per browser, resolved by cookie
	screening := v1.Group("/screening")
	screening.Use(middleware.SessionMiddleware(deps.Sessions))
	{
		generationLimiter := middleware.RateLimitMiddleware(
			middleware.GenerationRateLimitConfig(deps.Config.RateLimitGenerationThreshold, window))
		NewScreeningHandler(screening, deps.ScreeningUC, generationLimiter)
	}

	return r
}

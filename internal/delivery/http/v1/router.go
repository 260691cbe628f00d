package v1

import (
	"net/http"
	"time"

	"go-applytrack-backend/config"
	"go-applytrack-backend/internal/delivery/http/middleware"
	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/auth"
	"go-applytrack-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	Store         *storage.Store
	Audit         *audit.Logger
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global middlewares. CORS must run first.
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg))
	{
		NewJobHandler(v1, protected, deps.JobUC)
		NewProfileHandler(protected, deps.ProfileUC)
		NewApplicationHandler(protected, deps.ApplicationUC)

		uploads := protected.Group("")
		uploads.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold, window)))
		NewUploadHandler(uploads, deps.Store, deps.ProfileUC, deps.Audit)
	}

	return r
}

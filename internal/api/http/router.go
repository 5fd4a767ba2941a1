package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiraOS/internal/api/middleware"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/tracing"
)

// RouterConfig holds the router dependencies besides the handlers
type RouterConfig struct {
	HTTP        config.HTTPConfig
	RateLimit   config.RateLimitConfig
	Development bool
	Metrics     *monitoring.Metrics
	Logger      *logging.Logger
}

// NewRouter creates the admin API router
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(logger))
	router.Use(monitoring.Middleware(cfg.Metrics))
	if len(cfg.HTTP.CORSOrigins) > 0 {
		logger.Info("CORS enabled", zap.Strings("origins", cfg.HTTP.CORSOrigins))
		router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSOrigins...)))
	}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))

		if global := cfg.RateLimit.GlobalRequestsPerSecond; global > 0 {
			logger.Info("Global rate limit enabled", zap.Int("rps", global))
			router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
				RequestsPerSecond: global,
				Burst:             global * 2,
			}))
		}
	}

	router.GET("/health", h.Health)

	// Catalog
	router.GET("/apps", h.ListApps)
	router.POST("/apps/scan", h.ScanApps)
	router.POST("/apps/:name/run", h.RunApp)

	// Processes
	router.GET("/processes", h.ListProcesses)
	router.DELETE("/processes/:name", h.CloseProcess)
	router.GET("/processes/:name/output", h.ProcessOutput)

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	return router
}

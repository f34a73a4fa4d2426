package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"video-seo-backend/internal/analyses"
	"video-seo-backend/internal/history"
	"video-seo-backend/internal/services/health"
	"video-seo-backend/internal/shared/config"
	"video-seo-backend/internal/shared/metrics"
	"video-seo-backend/internal/shared/server/middleware"
	"video-seo-backend/internal/shared/server/respond"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupAnalyze = "ANALYZE"
	// defaultRateFactor scales the analyze rule for cheap read-only routes.
	defaultRateFactor = 5
)

// RouterDeps lists the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	HistoryHandler  *history.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	root := r.Group("")
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(root)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(root)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		Limiter:      deps.RateLimiter,
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/analyze", "/analyze-custom":
				return rateGroupAnalyze
			case "/health", "/metrics":
				return "UNLIMITED"
			}
			return rateGroupDefault
		},
		Rules: map[string]middleware.RateLimitRule{
			rateGroupAnalyze: {Rate: rps, Burst: burst},
			rateGroupDefault: {Rate: rps * defaultRateFactor, Burst: burst * defaultRateFactor},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/shopizer/backend/internal/infrastructure/logger"
	"github.com/shopizer/backend/internal/infrastructure/telemetry"
	"github.com/shopizer/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig configures the global middleware chain
type EngineConfig struct {
	HTTP    config.HTTPConfig
	Tracing middleware.TracingConfig
	Metrics *telemetry.ShopMetrics
	Logger  *zap.Logger

	// ProfilingLabels tags profiles with the request route
	ProfilingLabels bool
}

// NewEngine creates a gin engine with the global middleware chain:
// request id, recovery, tracing, profiling labels, access log, metrics,
// security headers, CORS and body limit.
func NewEngine(cfg EngineConfig) *gin.Engine {
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			cfg.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanEnricher(),
		middleware.ProfilingLabels(cfg.ProfilingLabels),
		logger.GinMiddleware(cfg.Logger),
		middleware.Metrics(cfg.Metrics),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
	)
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	return engine
}

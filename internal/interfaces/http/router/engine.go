package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/repairdesk/backend/internal/infrastructure/config"
	"github.com/repairdesk/backend/internal/infrastructure/logger"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"github.com/repairdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig selects the middleware stack
type EngineConfig struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	ServiceName string
	Tracing     bool
	Meters      *telemetry.MeterProvider
	Profiling   bool
	// RateLimiter is owned by the caller, which stops it on shutdown.
	// Nil disables rate limiting.
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
}

// NewEngine returns a gin engine with the middleware stack applied in order:
// recovery, request id, tracing, request logging, metrics, profiling,
// security headers, CORS, body limit, rate limit, request timeout.
func NewEngine(cfg EngineConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	if cfg.Tracing {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: cfg.Meters,
		Enabled:       cfg.Meters != nil,
	}))
	if cfg.Profiling {
		engine.Use(middleware.Profiling(middleware.DefaultProfilingConfig()))
	}
	engine.Use(middleware.Secure(middleware.SecurityHeaders{
		HSTSMaxAge:            cfg.HTTP.HSTSMaxAge,
		HSTSIncludeSubdomains: true,
	}))

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	engine.Use(middleware.Timeout(cfg.RequestTimeout))
	return engine
}

// New builds the engine, mounts /health and the versioned API, and returns
// the engine ready to serve.
func New(cfg EngineConfig, h Handlers) *gin.Engine {
	engine := NewEngine(cfg)
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))
	RegisterAPI(r, h)
	r.Setup()
	return engine
}

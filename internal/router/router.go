package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/AndyMuloki/zen-spa/internal/handler/admin"
	"github.com/AndyMuloki/zen-spa/internal/handler/auth"
	"github.com/AndyMuloki/zen-spa/internal/handler/booking"
	"github.com/AndyMuloki/zen-spa/internal/handler/catalog"
	"github.com/AndyMuloki/zen-spa/internal/handler/health"
	"github.com/AndyMuloki/zen-spa/internal/handler/prometheus"
	"github.com/AndyMuloki/zen-spa/internal/middleware"
)

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	RequestTimeout   time.Duration
	MaxBodySize      int64
	CORSConfig       middleware.CORSConfig
	CookieSecure     bool
}

// Handlers are the route groups mounted by Setup.
type Handlers struct {
	Catalog *catalog.Handler
	Booking *booking.Handler
	Auth    *auth.Handler
	Admin   *admin.Handler
	Health  *health.Handler
	Metrics *prometheus.Handler
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   Config
}

func NewRouter(authMiddleware *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	engine := gin.New()

	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultMaxBodySize
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		handlers.Metrics.Middleware(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.MaxBodySize),
		middleware.Timeout(config.RequestTimeout),
	)

	return &Router{
		engine:   engine,
		auth:     authMiddleware,
		handlers: handlers,
		config:   config,
	}
}

func (r *Router) Setup() {
	r.handlers.Health.RegisterRoutes(&r.engine.RouterGroup)
	r.engine.GET("/metrics", r.handlers.Metrics.Handler())

	// Booking create and admin login share one per-client budget.
	var limited []gin.HandlerFunc
	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		limited = append(limited, limiter.RateLimit())
	}

	api := r.engine.Group("/api/v1")
	api.Use(middleware.Session(r.config.CookieSecure))
	{
		r.handlers.Catalog.RegisterRoutes(api)
		r.handlers.Booking.RegisterRoutes(api, limited...)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(r.auth.Authenticate())
	{
		r.handlers.Auth.RegisterRoutes(adminGroup, limited...)

		gated := adminGroup.Group("")
		gated.Use(r.auth.RequireAdmin())
		r.handlers.Admin.RegisterRoutes(gated)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

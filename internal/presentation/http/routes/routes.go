package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/mobilehub-pos/internal/config"
	domainRepo "github.com/sangkips/mobilehub-pos/internal/domain/repository"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/handler"
	"github.com/sangkips/mobilehub-pos/internal/presentation/http/middleware"
	"github.com/sangkips/mobilehub-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Record    *handler.RecordHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Router is the configured engine plus the limiters whose cleanup loops
// must be stopped on shutdown.
type Router struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops background work started by Setup.
func (r *Router) Close() {
	for _, l := range r.limiters {
		l.Close()
	}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.LoggerMiddleware())
	engine.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	}
	engine.GET("/health", health)

	window := time.Duration(deps.Cfg.RateLimit.Duration) * time.Second
	loginLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Requests: deps.Cfg.RateLimit.LoginRequests,
		Window:   window,
	})
	apiLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Requests: deps.Cfg.RateLimit.Requests,
		Window:   window,
	})

	api := engine.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/auth/login", loginLimiter.Middleware(), h.Auth.Login)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(apiLimiter.Middleware())
		registerProtectedRoutes(protected, h, deps)
	}

	return &Router{Engine: engine, limiters: []*middleware.RateLimiter{loginLimiter, apiLimiter}}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/profile", h.Auth.GetProfile)

	protected.GET("/dashboard", h.Dashboard.GetSummary)

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Ledger.IdempotencyTTL,
	})
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Record.List)
		customers.POST("", idempotency, h.Record.Create)
		customers.GET("/:id", h.Record.Get)
		customers.PUT("/:id", idempotency, h.Record.Update)
		customers.DELETE("/:id", h.Record.Delete)
		customers.GET("/:id/receipt", h.Printer.GetReceipt)
	}

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/receipt", h.Printer.PrintReceipt)
	}
}

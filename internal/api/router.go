package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/postable/content-api/internal/api/handler"
	"github.com/postable/content-api/internal/api/middleware"
	"github.com/postable/content-api/internal/core/ports"
	"github.com/postable/content-api/internal/core/service"
	"github.com/postable/content-api/internal/core/token"
	"github.com/postable/content-api/internal/infrastructure/config"
	healthhandlers "github.com/postable/content-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the externally constructed collaborators of the
// router: the repositories, the optional login throttle, and the raw
// connections used only by the readiness probe. Tests substitute in-memory
// implementations and leave the probe connections nil.
type Dependencies struct {
	Users   ports.UserRepository
	Posts   ports.PostRepository
	Votes   ports.VoteRepository
	Limiter ports.LoginLimiter

	DB    *gorm.DB
	Redis *redis.Client
}

// The echoprometheus middleware registers its collectors with the default
// registry; building it once lets tests construct multiple routers.
var (
	promOnce       sync.Once
	promMiddleware echo.MiddlewareFunc
)

func prometheusMiddleware() echo.MiddlewareFunc {
	promOnce.Do(func() {
		promMiddleware = echoprometheus.NewMiddleware("content_api")
	})
	return promMiddleware
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(prometheusMiddleware())

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret)
	authService := service.NewAuthService(deps.Users, codec, deps.Limiter, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	postService := service.NewPostService(deps.Posts, log)
	voteService := service.NewVoteService(deps.Posts, deps.Votes, log)

	// Cookie lifetimes come from the service, not cfg, so they stay in step
	// with the minted token TTLs even when the config carries zero values and
	// the service falls back to its defaults.
	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		AccessMaxAge:  authService.AccessTTL(),
		RefreshMaxAge: authService.RefreshTTL(),
		Secure:        cfg.CookieSecure,
	})
	userHandler := handler.NewUserHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	voteHandler := handler.NewVoteHandler(voteService)
	authRequired := middleware.Auth(codec, deps.Users)

	// --- Auth & user routes ---
	e.POST("/users", userHandler.Register)
	e.GET("/users/:id", userHandler.Get)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, authRequired)

	// --- Post routes ---
	posts := e.Group("/posts", authRequired)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Vote routes ---
	e.POST("/votes", voteHandler.Cast, authRequired)

	// --- Observability & health probes (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := healthhandlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if deps.DB != nil && deps.Redis != nil {
		readiness := healthhandlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}

	return e
}

package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Lorenacollante/sprintfinal-nodo-cine-backend/docs"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/api/handler"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/api/middleware"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers. Optional
// collaborators are nil when disabled.
type Deps struct {
	Logger  zerolog.Logger
	Origins []string

	Tokens   ports.TokenVerifier
	Users    ports.IdentityLookup
	Auth     ports.AuthService
	Movies   ports.MovieService
	Profiles ports.ProfileService

	Trailers ports.TrailerProvider  // nil: /external/trailer answers 503
	Limiter  middleware.RateLimiter // nil: /auth/* is not throttled
	Mongo    handlers.MongoPinger   // nil: no readiness probe
	Redis    handlers.RedisPinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(middleware.Metrics())
	e.Use(middleware.CORS(d.Origins))
	e.Use(echomiddleware.BodyLimit("1M"))

	authenticated := middleware.Auth(d.Tokens, d.Users)
	editors := middleware.RequireRoles(domain.RoleOwner, domain.RoleAdmin)
	owners := middleware.RequireRoles(domain.RoleOwner)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	var throttle []echo.MiddlewareFunc
	if d.Limiter != nil {
		throttle = append(throttle, middleware.RateLimit(d.Limiter, d.Logger))
	}
	auth := e.Group("/auth", throttle...)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Movies: public reads, owner/admin writes ---
	movieHandler := handler.NewMovieHandler(d.Movies)
	movies := e.Group("/movies")
	movies.GET("", movieHandler.List)
	movies.GET("/:id", movieHandler.Get)
	movies.POST("", movieHandler.Create, authenticated, editors)
	movies.PUT("/:id", movieHandler.Update, authenticated, editors)
	movies.DELETE("/:id", movieHandler.Delete, authenticated, editors)

	// --- Profiles: scoped to the caller ---
	profileHandler := handler.NewProfileHandler(d.Profiles)
	profiles := e.Group("/profiles", authenticated)
	profiles.GET("", profileHandler.List)
	profiles.POST("", profileHandler.Create, owners)
	profiles.PUT("/:id", profileHandler.Update, owners)
	profiles.DELETE("/:id", profileHandler.Delete, owners)

	// --- External lookups ---
	externalHandler := handler.NewExternalHandler(d.Trailers, d.Logger)
	e.GET("/external/trailer/:tmdbId", externalHandler.Trailer)

	e.GET("/debug/movies-count", movieHandler.Count)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if d.Mongo != nil {
		healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/goals-course/authenticator/internal/api/handler"
	"github.com/goals-course/authenticator/internal/api/middleware"
	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// Dependencies bundles everything the router needs to register routes.
type Dependencies struct {
	Users    ports.UserRepository
	Tokens   ports.TokenService
	Sessions ports.SessionService
	Accounts ports.UserService

	// DB and Redis feed the readiness probe; Redis may be nil.
	DB    *gorm.DB
	Redis *redis.Client

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Route policy:
//   - public: signup, login, refresh, health probes, metrics
//   - authenticated: logout, users/current, users/:userId
//   - ADMIN: users/:userId/roles, roles
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authenticator"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	userHandler := handler.NewUserHandler(deps.Accounts)
	roleHandler := handler.NewRoleHandler(deps.Accounts)

	// --- Auth guard: resolves a principal when a valid bearer token is present,
	// passes through unauthenticated otherwise. Route rules below reject.
	guard := middleware.Guard(deps.Tokens, deps.Users, deps.Log)

	g := e.Group("/api/authenticator", guard)

	// Public endpoints.
	g.POST("/signup", authHandler.SignUp)
	g.POST("/login", authHandler.Login)
	g.POST("/refresh", authHandler.Refresh)

	// Authenticated endpoints.
	g.POST("/logout", authHandler.Logout, middleware.RequireAuth())
	g.GET("/users/current", userHandler.CurrentUser, middleware.RequireAuth())
	g.GET("/users/:userId", userHandler.UserByID, middleware.RequireAuth())

	// Admin endpoints.
	g.POST("/users/:userId/roles", userHandler.ChangeUserRoles, middleware.RequireRole(domain.RoleAdmin))
	g.GET("/roles", roleHandler.AllRoles, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/accesshub/accounts-api/docs"
	"github.com/accesshub/accounts-api/internal/api/handler"
	"github.com/accesshub/accounts-api/internal/api/middleware"
	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

const bodyLimit = "64K"

// Deps carries everything the router needs. Services are built by the caller.
type Deps struct {
	Log         zerolog.Logger
	Credentials ports.Credentials
	Auth        ports.AuthService
	Users       ports.UserService
	Roles       ports.RoleService
	Assignments ports.AssignmentService
	Store       ports.RecordStore
	StoreDriver string

	Production    bool
	EnableMetrics bool
	SigninRate    float64 // requests per second per client IP; 0 disables
	SigninBurst   int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.SecureHeaders(d.Production))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	if d.EnableMetrics {
		e.Use(echoprometheus.NewMiddleware("accounts"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	roleHandler := handler.NewRoleHandler(d.Roles, d.Assignments)
	healthHandler := handler.NewHealthHandler(d.Store, d.StoreDriver)

	authn := middleware.Auth(d.Credentials)
	can := middleware.RBAC

	// --- Auth routes ---
	e.POST("/auth/signin", authHandler.Signin, signinLimiter(d.SigninRate, d.SigninBurst)...)

	// --- User directory ---
	users := e.Group("/users")
	users.POST("", userHandler.Register)
	users.GET("", userHandler.List, authn, can(domain.ActionListUsers))
	users.GET("/:id", userHandler.Get, authn, can(domain.ActionReadUser))
	users.PUT("/:id", userHandler.Update, authn, can(domain.ActionUpdateUser))
	users.DELETE("/:id", userHandler.Delete, authn, can(domain.ActionDeleteUser))

	// --- Role directory and assignment ---
	roles := e.Group("/roles", authn)
	roles.GET("", roleHandler.List, can(domain.ActionListRoles))
	roles.POST("", roleHandler.Create, can(domain.ActionCreateRole))
	roles.GET("/user/:userId", roleHandler.UserRole, can(domain.ActionReadUserRole))
	roles.POST("/assign/:userId", roleHandler.Assign, can(domain.ActionAssignRole))
	roles.GET("/:id", roleHandler.Get, can(domain.ActionReadRole))
	roles.PUT("/:id", roleHandler.Update, can(domain.ActionUpdateRole))
	roles.DELETE("/:id", roleHandler.Delete, can(domain.ActionDeleteRole))

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – can we reach the store?

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// signinLimiter throttles sign-in attempts per client IP.
func signinLimiter(perSecond float64, burst int) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(perSecond),
		Burst: burst,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many sign-in attempts")
		},
	})}
}

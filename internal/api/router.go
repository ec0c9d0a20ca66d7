package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/prepwise/interview-portal/docs"
	"github.com/prepwise/interview-portal/internal/api/handler"
	"github.com/prepwise/interview-portal/internal/api/middleware"
	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the portal router needs.
type Deps struct {
	Session ports.SessionService
	Portal  ports.PortalService
	// Ready holds the readiness checks served on /health/ready.
	Ready map[string]handlers.Check
	Log   zerolog.Logger
	// Registry receives the HTTP request metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Registerer: registerer,
	}))

	sessionHandler := handler.NewSessionHandler(d.Session)
	portalHandler := handler.NewPortalHandler(d.Session, d.Portal)

	// --- Public views and session actions ---
	e.GET("/", portalHandler.Landing)
	e.GET("/login", portalHandler.LoginView)
	e.GET("/session", sessionHandler.Get)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)
	e.POST("/session/logout", sessionHandler.Logout)
	e.POST("/session/refresh", sessionHandler.Refresh)

	// --- Candidate views ---
	candidate := e.Group("/candidate", middleware.RequireRoles(d.Session, domain.RoleCandidate))
	candidate.GET("/dashboard", portalHandler.CandidateDashboard)
	candidate.GET("/jobs", portalHandler.CandidateJobs)
	candidate.GET("/applications", portalHandler.ListApplications)
	candidate.POST("/applications", portalHandler.Apply)

	// --- HR views ---
	hr := e.Group("/hr", middleware.RequireRoles(d.Session, domain.RoleHR))
	hr.GET("/dashboard", portalHandler.HRDashboard)
	hr.GET("/jobs", portalHandler.ListJobs)
	hr.POST("/jobs", portalHandler.CreateJob)
	hr.GET("/jobs/:id", portalHandler.GetJob)
	hr.PUT("/jobs/:id", portalHandler.UpdateJob)
	hr.DELETE("/jobs/:id", portalHandler.DeleteJob)

	// --- Any signed-in role ---
	e.GET("/profile", portalHandler.Profile, middleware.RequireAuth(d.Session))
	e.PUT("/profile", portalHandler.UpdateProfile, middleware.RequireAuth(d.Session))

	// --- Ops ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Ready).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

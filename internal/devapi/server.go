// Package devapi is a small in-process implementation of the interview-prep
// REST API. It exists so the portal can be run and tested end to end without
// the real backend: accounts with bcrypt passwords, HS256 bearer tokens, and
// in-memory job positions and applications.
package devapi

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

// Config captures the dev API settings.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewServer builds the dev API router. accounts may be nil, in which case an
// in-memory repository is used.
func NewServer(cfg Config, accounts ports.AccountRepository, log zerolog.Logger) *echo.Echo {
	if accounts == nil {
		accounts = NewMemoryAccounts()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	auth := NewAuthService(accounts, cfg.JWTSecret, cfg.TokenTTL)
	h := &handlers{auth: auth, accounts: accounts, board: NewBoard(), log: log}
	authed := Auth(auth)
	hrOnly := RequireRole(domain.RoleHR, domain.RoleAdmin)
	candidateOnly := RequireRole(domain.RoleCandidate)

	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/logout", h.logout, authed)
	e.GET("/auth/me", h.me, authed)

	e.PUT("/users/profile", h.updateProfile, authed)
	e.GET("/dashboard/metrics", h.metrics, authed)

	e.GET("/jobs", h.listJobs, authed)
	e.GET("/jobs/:id", h.getJob, authed)
	e.POST("/jobs", h.createJob, authed, hrOnly)
	e.PUT("/jobs/:id", h.updateJob, authed, hrOnly)
	e.DELETE("/jobs/:id", h.deleteJob, authed, hrOnly)

	e.GET("/applications", h.listApplications, authed)
	e.POST("/applications", h.apply, authed, candidateOnly)

	return e
}

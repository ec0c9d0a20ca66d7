package ports

import (
	"context"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

// SessionReader exposes read-only session state to the route guard and views.
type SessionReader interface {
	CurrentUser() *domain.User
	State() domain.SessionState
}

// SessionService owns the process-wide signed-in session.
type SessionService interface {
	SessionReader
	Bootstrap(ctx context.Context)
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) (*domain.User, error)
}

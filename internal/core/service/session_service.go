package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/pkg/metrics"
)

// Remote endpoints used by the session.
const (
	EndpointLogin    = "/auth/login"
	EndpointRegister = "/auth/register"
	EndpointLogout   = "/auth/logout"
	EndpointMe       = "/auth/me"
)

type credentialsRequest struct {
	Name     string      `json:"name,omitempty"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// SessionService holds the signed-in user for the lifetime of the process.
// The user is only ever set from a successful current-user fetch; tokens
// returned by login or registration are never trusted on their own.
type SessionService struct {
	api    ports.APIClient
	tokens ports.TokenStore
	log    zerolog.Logger

	mu    sync.RWMutex
	user  *domain.User
	state domain.SessionState
}

// NewSessionService wires the session to api and subscribes it to the
// client's unauthorized notifications for the rest of the process lifetime.
func NewSessionService(api ports.APIClient, tokens ports.TokenStore, log zerolog.Logger) *SessionService {
	s := &SessionService{
		api:    api,
		tokens: tokens,
		log:    log,
		state:  domain.StateUnauthenticated,
	}
	api.OnUnauthorized(s.handleUnauthorized)
	return s
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionService) IsAuthenticated() bool {
	return s.State() == domain.StateAuthenticated
}

// Bootstrap re-establishes a session from a stored token. Without a token it
// returns immediately and makes no network call. An unreadable store is
// cleared.
func (s *SessionService) Bootstrap(ctx context.Context) {
	if _, err := s.tokens.Get(ctx); err != nil {
		if !errors.Is(err, domain.ErrNoToken) {
			s.log.Warn().Err(err).Msg("session bootstrap: token store unreadable, clearing it")
			s.invalidate(ctx, "bootstrap_failed")
		}
		return
	}

	s.transition(domain.StateBootstrapping, nil, "bootstrap")

	user, err := s.fetchCurrentUser(ctx)
	if err != nil {
		s.log.Info().Err(err).Msg("session bootstrap failed, discarding stored token")
		s.invalidate(ctx, "bootstrap_failed")
		return
	}

	s.transition(domain.StateAuthenticated, user, "bootstrap")
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
}

// Login signs in and then loads the current user. Any failure leaves the
// session signed out and no token stored.
func (s *SessionService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	return s.authenticate(ctx, EndpointLogin, credentialsRequest{
		Email:    email,
		Password: password,
		Role:     role,
	}, domain.ErrLoginFailed, "login")
}

// Register creates an account with the same contract as Login.
func (s *SessionService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	return s.authenticate(ctx, EndpointRegister, credentialsRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}, domain.ErrRegisterFailed, "register")
}

func (s *SessionService) authenticate(ctx context.Context, endpoint string, body credentialsRequest, failure error, cause string) (*domain.User, error) {
	payload, err := ports.Call[tokenPayload](ctx, s.api, endpoint, ports.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		s.log.Info().Err(err).Str("email", body.Email).Msg(cause + " rejected")
		return nil, fmt.Errorf("%w: %w", failure, err)
	}
	if payload.Token == "" {
		s.log.Warn().Str("email", body.Email).Msg(cause + " response carried no token")
		return nil, fmt.Errorf("%w: no token in response", failure)
	}

	if err := s.tokens.Set(ctx, payload.Token); err != nil {
		return nil, fmt.Errorf("%w: store token: %w", failure, err)
	}

	user, err := s.fetchCurrentUser(ctx)
	if err != nil {
		s.invalidate(ctx, cause+"_failed")
		return nil, fmt.Errorf("%w: %w", failure, err)
	}

	s.transition(domain.StateAuthenticated, user, cause)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg(cause + " succeeded")
	return s.CurrentUser(), nil
}

// Logout tells the API the session is over. The remote call is best-effort;
// local state is always cleared.
func (s *SessionService) Logout(ctx context.Context) {
	if _, err := s.api.Do(ctx, EndpointLogout, ports.RequestOptions{Method: http.MethodPost}); err != nil {
		s.log.Warn().Err(err).Msg("logout call failed, clearing local session anyway")
	}
	s.invalidate(ctx, "logout")
}

// Refresh reloads the current user. Any failure ends the session.
func (s *SessionService) Refresh(ctx context.Context) (*domain.User, error) {
	user, err := s.fetchCurrentUser(ctx)
	if err != nil {
		s.invalidate(ctx, "refresh_failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionInvalid, err)
	}

	s.transition(domain.StateAuthenticated, user, "refresh")
	return s.CurrentUser(), nil
}

func (s *SessionService) fetchCurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := ports.Call[domain.User](ctx, s.api, EndpointMe, ports.RequestOptions{})
	if err != nil {
		return nil, err
	}
	if user.ID == "" || !user.Role.Valid() {
		return nil, fmt.Errorf("current user: %w", domain.ErrSessionInvalid)
	}
	return &user, nil
}

// handleUnauthorized runs synchronously inside the API client after a 401.
// The client has already cleared the token; clearing again keeps the store
// consistent even if that write failed.
func (s *SessionService) handleUnauthorized() {
	s.invalidate(context.Background(), "unauthorized")
}

func (s *SessionService) invalidate(ctx context.Context, cause string) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Str("cause", cause).Msg("failed to clear token")
	}
	s.transition(domain.StateUnauthenticated, nil, cause)
}

func (s *SessionService) transition(to domain.SessionState, user *domain.User, cause string) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.user = user
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(to), cause).Inc()
	s.log.Debug().
		Str("from", string(from)).
		Str("to", string(to)).
		Str("cause", cause).
		Msg("session transition")
}

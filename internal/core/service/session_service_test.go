package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/infrastructure/tokenstore"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubCall struct {
	endpoint string
	opts     ports.RequestOptions
}

// stubAPI answers by endpoint. A 401 error mimics the real client: the token
// is cleared and listeners fire before the error is returned.
type stubAPI struct {
	tokens    ports.TokenStore
	responses map[string]func() (*ports.APIResponse, error)
	calls     []stubCall
	listeners []func()
}

func newStubAPI(tokens ports.TokenStore) *stubAPI {
	return &stubAPI{tokens: tokens, responses: make(map[string]func() (*ports.APIResponse, error))}
}

func (a *stubAPI) Do(ctx context.Context, endpoint string, opts ports.RequestOptions) (*ports.APIResponse, error) {
	a.calls = append(a.calls, stubCall{endpoint: endpoint, opts: opts})
	fn, ok := a.responses[endpoint]
	if !ok {
		return nil, &domain.APIError{Kind: domain.KindHTTP, StatusCode: http.StatusNotFound, Message: "not found"}
	}
	resp, err := fn()
	if domain.IsUnauthorized(err) {
		_ = a.tokens.Clear(ctx)
		for _, l := range a.listeners {
			l()
		}
	}
	return resp, err
}

func (a *stubAPI) OnUnauthorized(fn func()) func() {
	a.listeners = append(a.listeners, fn)
	return func() {}
}

func (a *stubAPI) ok(endpoint, data string) {
	a.responses[endpoint] = func() (*ports.APIResponse, error) {
		return &ports.APIResponse{StatusCode: http.StatusOK, Data: json.RawMessage(data)}, nil
	}
}

func (a *stubAPI) fail(endpoint string, err error) {
	a.responses[endpoint] = func() (*ports.APIResponse, error) { return nil, err }
}

func (a *stubAPI) called(endpoint string) int {
	n := 0
	for _, c := range a.calls {
		if c.endpoint == endpoint {
			n++
		}
	}
	return n
}

var (
	errNetwork      = &domain.APIError{Kind: domain.KindNetwork, Message: "network error"}
	errUnauthorized = &domain.APIError{Kind: domain.KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: "token expired"}
	errRejected     = &domain.APIError{Kind: domain.KindRejected, StatusCode: http.StatusOK, Message: "invalid credentials"}
)

const hrUser = `{"id":"1","name":"Hana","email":"hana@example.com","role":"hr"}`

func newSession(t *testing.T) (*SessionService, *stubAPI, ports.TokenStore) {
	t.Helper()
	tokens := tokenstore.NewMemory()
	api := newStubAPI(tokens)
	return NewSessionService(api, tokens, zerolog.Nop()), api, tokens
}

func assertSignedOut(t *testing.T, s *SessionService, tokens ports.TokenStore) {
	t.Helper()
	if u := s.CurrentUser(); u != nil {
		t.Fatalf("expected no user, got %+v", u)
	}
	if st := s.State(); st != domain.StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", st)
	}
	if tok, err := tokens.Get(context.Background()); !errors.Is(err, domain.ErrNoToken) {
		t.Fatalf("expected empty token store, got %q (%v)", tok, err)
	}
}

// ---------------------------------------------------------------------------
// Bootstrap
// ---------------------------------------------------------------------------

func TestSession_Bootstrap_NoTokenMakesNoCall(t *testing.T) {
	s, api, tokens := newSession(t)

	s.Bootstrap(context.Background())

	if len(api.calls) != 0 {
		t.Fatalf("expected no network calls, got %d", len(api.calls))
	}
	assertSignedOut(t, s, tokens)
}

func TestSession_Bootstrap_UnreadableStoreIsCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	tokens, err := tokenstore.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	api := newStubAPI(tokens)
	s := NewSessionService(api, tokens, zerolog.Nop())

	s.Bootstrap(context.Background())

	if len(api.calls) != 0 {
		t.Fatalf("expected no network calls, got %d", len(api.calls))
	}
	assertSignedOut(t, s, tokens)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected corrupt token file to be removed, got %v", err)
	}
}

func TestSession_Bootstrap_RestoresUser(t *testing.T) {
	s, api, tokens := newSession(t)
	_ = tokens.Set(context.Background(), "stored")
	api.ok(EndpointMe, hrUser)

	s.Bootstrap(context.Background())

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated, got %s", s.State())
	}
	if u := s.CurrentUser(); u == nil || u.ID != "1" || u.Role != domain.RoleHR {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestSession_Bootstrap_FailureClearsEverything(t *testing.T) {
	failures := map[string]error{
		"network":      errNetwork,
		"unauthorized": errUnauthorized,
		"rejected":     errRejected,
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			s, api, tokens := newSession(t)
			_ = tokens.Set(context.Background(), "stored")
			api.fail(EndpointMe, failure)

			s.Bootstrap(context.Background())
			assertSignedOut(t, s, tokens)

			// Running it again is a no-op: no token, no call.
			s.Bootstrap(context.Background())
			assertSignedOut(t, s, tokens)
			if n := api.called(EndpointMe); n != 1 {
				t.Fatalf("expected a single current-user fetch, got %d", n)
			}
		})
	}
}

func TestSession_Bootstrap_IncompleteUserIsRejected(t *testing.T) {
	s, api, tokens := newSession(t)
	_ = tokens.Set(context.Background(), "stored")
	api.ok(EndpointMe, `{"success":true}`)

	s.Bootstrap(context.Background())
	assertSignedOut(t, s, tokens)
}

// ---------------------------------------------------------------------------
// Login / Register
// ---------------------------------------------------------------------------

func TestSession_Login_Success(t *testing.T) {
	s, api, tokens := newSession(t)
	api.ok(EndpointLogin, `{"token":"abc"}`)
	api.ok(EndpointMe, hrUser)

	user, err := s.Login(context.Background(), "hana@example.com", "secret1", domain.RoleHR)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	want := domain.User{ID: "1", Name: "Hana", Email: "hana@example.com", Role: domain.RoleHR}
	if *user != want {
		t.Fatalf("expected %+v, got %+v", want, *user)
	}
	if s.State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.State())
	}
	if tok, _ := tokens.Get(context.Background()); tok != "abc" {
		t.Fatalf("expected token abc, got %q", tok)
	}

	body, ok := api.calls[0].opts.Body.(credentialsRequest)
	if !ok || body.Email != "hana@example.com" || body.Password != "secret1" || body.Role != domain.RoleHR {
		t.Fatalf("unexpected login body %+v", api.calls[0].opts.Body)
	}
	if api.calls[0].opts.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", api.calls[0].opts.Method)
	}
	if api.calls[1].endpoint != EndpointMe {
		t.Fatalf("expected follow-up current-user fetch, got %s", api.calls[1].endpoint)
	}
}

func TestSession_Login_IgnoresInlineUser(t *testing.T) {
	s, api, _ := newSession(t)
	api.ok(EndpointLogin, `{"token":"abc","user":{"id":"999","role":"candidate"}}`)
	api.ok(EndpointMe, hrUser)

	user, err := s.Login(context.Background(), "hana@example.com", "secret1", domain.RoleHR)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "1" || user.Role != domain.RoleHR {
		t.Fatalf("expected server-side user, got %+v", user)
	}
}

func TestSession_Login_FailsClosed(t *testing.T) {
	cases := map[string]func(*stubAPI){
		"rejected envelope": func(a *stubAPI) { a.fail(EndpointLogin, errRejected) },
		"network":           func(a *stubAPI) { a.fail(EndpointLogin, errNetwork) },
		"http 400": func(a *stubAPI) {
			a.fail(EndpointLogin, &domain.APIError{Kind: domain.KindHTTP, StatusCode: 400, Message: "bad"})
		},
		"no token":           func(a *stubAPI) { a.ok(EndpointLogin, `{"success":false}`) },
		"empty token":        func(a *stubAPI) { a.ok(EndpointLogin, `{"token":""}`) },
		"current user fails": func(a *stubAPI) { a.ok(EndpointLogin, `{"token":"abc"}`); a.fail(EndpointMe, errNetwork) },
		"current user 401": func(a *stubAPI) {
			a.ok(EndpointLogin, `{"token":"abc"}`)
			a.fail(EndpointMe, errUnauthorized)
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			s, api, tokens := newSession(t)
			setup(api)

			user, err := s.Login(context.Background(), "a@example.com", "secret1", domain.RoleCandidate)
			if !errors.Is(err, domain.ErrLoginFailed) {
				t.Fatalf("expected ErrLoginFailed, got %v", err)
			}
			if user != nil {
				t.Fatalf("expected no user, got %+v", user)
			}
			assertSignedOut(t, s, tokens)
		})
	}
}

func TestSession_Login_PreservesAPIError(t *testing.T) {
	s, api, _ := newSession(t)
	api.fail(EndpointLogin, errRejected)

	_, err := s.Login(context.Background(), "a@example.com", "x", domain.RoleCandidate)
	ae, ok := domain.AsAPIError(err)
	if !ok || ae.Message != "invalid credentials" {
		t.Fatalf("expected wrapped API error, got %v", err)
	}
}

func TestSession_Register(t *testing.T) {
	s, api, tokens := newSession(t)
	api.ok(EndpointRegister, `{"token":"new"}`)
	api.ok(EndpointMe, `{"id":"2","name":"Cai","email":"cai@example.com","role":"candidate"}`)

	user, err := s.Register(context.Background(), "Cai", "cai@example.com", "secret1", domain.RoleCandidate)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleCandidate || !s.IsAuthenticated() {
		t.Fatalf("unexpected state %s / %+v", s.State(), user)
	}
	if tok, _ := tokens.Get(context.Background()); tok != "new" {
		t.Fatalf("expected stored token, got %q", tok)
	}
	if body := api.calls[0].opts.Body.(credentialsRequest); body.Name != "Cai" {
		t.Fatalf("expected name in body, got %+v", body)
	}
}

func TestSession_Register_FailsClosed(t *testing.T) {
	s, api, tokens := newSession(t)
	api.fail(EndpointRegister, &domain.APIError{Kind: domain.KindHTTP, StatusCode: 409, Message: "email taken"})

	if _, err := s.Register(context.Background(), "Cai", "cai@example.com", "secret1", domain.RoleCandidate); !errors.Is(err, domain.ErrRegisterFailed) {
		t.Fatalf("expected ErrRegisterFailed, got %v", err)
	}
	assertSignedOut(t, s, tokens)
}

// ---------------------------------------------------------------------------
// Logout / Refresh / unauthorized
// ---------------------------------------------------------------------------

func signedIn(t *testing.T) (*SessionService, *stubAPI, ports.TokenStore) {
	t.Helper()
	s, api, tokens := newSession(t)
	api.ok(EndpointLogin, `{"token":"abc"}`)
	api.ok(EndpointMe, hrUser)
	if _, err := s.Login(context.Background(), "hana@example.com", "secret1", domain.RoleHR); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return s, api, tokens
}

func TestSession_Logout_AlwaysClears(t *testing.T) {
	cases := map[string]func(*stubAPI){
		"ok":      func(a *stubAPI) { a.ok(EndpointLogout, `{}`) },
		"network": func(a *stubAPI) { a.fail(EndpointLogout, errNetwork) },
		"500": func(a *stubAPI) {
			a.fail(EndpointLogout, &domain.APIError{Kind: domain.KindHTTP, StatusCode: 500, Message: "boom"})
		},
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			s, api, tokens := signedIn(t)
			setup(api)

			s.Logout(context.Background())

			if api.called(EndpointLogout) != 1 {
				t.Fatalf("expected logout call")
			}
			assertSignedOut(t, s, tokens)
		})
	}
}

func TestSession_Refresh(t *testing.T) {
	s, api, _ := signedIn(t)
	api.ok(EndpointMe, `{"id":"1","name":"Hana K.","email":"hana@example.com","role":"hr","bio":"Recruiter"}`)

	user, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if user.Name != "Hana K." || s.CurrentUser().Bio != "Recruiter" {
		t.Fatalf("expected refreshed user, got %+v", user)
	}
}

func TestSession_Refresh_FailureInvalidates(t *testing.T) {
	s, api, tokens := signedIn(t)
	api.fail(EndpointMe, errNetwork)

	if _, err := s.Refresh(context.Background()); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
	assertSignedOut(t, s, tokens)
}

func TestSession_UnauthorizedSignalClearsSession(t *testing.T) {
	s, api, tokens := signedIn(t)
	api.fail("/jobs", errUnauthorized)

	// Any endpoint answering 401 ends the session.
	_, _ = api.Do(context.Background(), "/jobs", ports.RequestOptions{})

	assertSignedOut(t, s, tokens)
}

func TestSession_CurrentUserIsACopy(t *testing.T) {
	s, _, _ := signedIn(t)

	u := s.CurrentUser()
	u.Role = domain.RoleCandidate

	if s.CurrentUser().Role != domain.RoleHR {
		t.Fatalf("session user mutated through returned pointer")
	}
}

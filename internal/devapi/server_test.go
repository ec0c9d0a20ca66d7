package devapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) (int, testResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, resp
}

func signUp(t *testing.T, e *echo.Echo, name, email, role string) string {
	t.Helper()
	code, resp := do(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"`+name+`","email":"`+email+`","password":"secret1","role":"`+role+`"}`)
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", code, resp.Error)
	}
	var tok struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(resp.Data, &tok)
	return tok.Token
}

func TestServer_AuthFlow(t *testing.T) {
	e := NewServer(Config{JWTSecret: "secret", TokenTTL: time.Hour}, nil, zerolog.Nop())
	token := signUp(t, e, "Hana", "hana@example.com", "hr")

	code, resp := do(t, e, http.MethodGet, "/auth/me", token, "")
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("me: expected 200, got %d", code)
	}
	if !strings.Contains(string(resp.Data), `"role":"hr"`) {
		t.Fatalf("unexpected me payload %s", resp.Data)
	}

	if code, _ := do(t, e, http.MethodPost, "/auth/logout", token, ""); code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", code)
	}
	if code, _ := do(t, e, http.MethodGet, "/auth/me", token, ""); code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", code)
	}
}

func TestServer_LoginFailureIsNot401(t *testing.T) {
	e := NewServer(Config{JWTSecret: "secret"}, nil, zerolog.Nop())
	signUp(t, e, "Cai", "cai@example.com", "candidate")

	code, resp := do(t, e, http.MethodPost, "/auth/login", "", `{"email":"cai@example.com","password":"nope"}`)
	if code != http.StatusBadRequest || resp.Success {
		t.Fatalf("expected 400 failure, got %d %+v", code, resp)
	}
}

func TestServer_JobsRoleScoping(t *testing.T) {
	e := NewServer(Config{JWTSecret: "secret"}, nil, zerolog.Nop())
	hr := signUp(t, e, "Hana", "hana@example.com", "hr")
	cand := signUp(t, e, "Cai", "cai@example.com", "candidate")

	code, resp := do(t, e, http.MethodPost, "/jobs", hr, `{"title":"Backend","status":"open"}`)
	if code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", code, resp.Error)
	}
	var job struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(resp.Data, &job)
	_, _ = do(t, e, http.MethodPost, "/jobs", hr, `{"title":"Draft role"}`)

	if code, _ := do(t, e, http.MethodPost, "/jobs", cand, `{"title":"x"}`); code != http.StatusForbidden {
		t.Fatalf("candidate create: expected 403, got %d", code)
	}

	_, resp = do(t, e, http.MethodGet, "/jobs", cand, "")
	var visible []map[string]any
	_ = json.Unmarshal(resp.Data, &visible)
	if len(visible) != 1 {
		t.Fatalf("candidate should only see open jobs, got %d", len(visible))
	}

	code, _ = do(t, e, http.MethodPost, "/applications", cand, `{"jobId":"`+job.ID+`","resumeName":"cv.pdf"}`)
	if code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d", code)
	}

	_, resp = do(t, e, http.MethodGet, "/dashboard/metrics", hr, "")
	if !strings.Contains(string(resp.Data), `"totalApplications":1`) || !strings.Contains(string(resp.Data), `"openPositions":1`) {
		t.Fatalf("unexpected metrics %s", resp.Data)
	}

	if code, _ := do(t, e, http.MethodDelete, "/jobs/"+job.ID, hr, ""); code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", code)
	}
	if code, _ := do(t, e, http.MethodGet, "/jobs/"+job.ID, hr, ""); code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", code)
	}
}

package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-dashboard/internal/auth"
	"interview-dashboard/internal/candidate"
	"interview-dashboard/internal/config"
	"interview-dashboard/internal/dashboard"
	"interview-dashboard/internal/feedback"
	dashhttp "interview-dashboard/internal/http"
	"interview-dashboard/internal/identity"
	"interview-dashboard/internal/session"
)

// fakeUpstream stands in for the remote identity and directory provider.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":        1,
			"username":  body.Username,
			"email":     "emily@x.dummyjson.com",
			"firstName": "Emily",
			"lastName":  "Johnson",
			"token":     "upstream-jwt",
		})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": 1, "firstName": "Emily", "lastName": "Johnson"},
				{"id": 2, "firstName": "Michael", "lastName": "Williams"},
			},
			"total": 2,
		})
	})
	mux.HandleFunc("GET /users/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "firstName": "Emily", "lastName": "Johnson"})
	})
	mux.HandleFunc("GET /todos/user/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"todos": []any{}})
	})
	mux.HandleFunc("GET /posts/user/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"posts": []any{}})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type serverEnv struct {
	server *dashhttp.Server
	ctrl   *auth.Controller
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()

	upstream := fakeUpstream(t)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Upstream: config.UpstreamConfig{BaseURL: upstream.URL, Timeout: 5 * time.Second},
		Session: config.SessionConfig{
			TokenSecret: "0123456789abcdef0123456789abcdef",
			TokenTTL:    time.Hour,
		},
		App: config.AppConfig{
			PageSize:        10,
			MetricsPoolSize: 30,
			LoginRatePerSec: 100,
			LoginRateBurst:  100,
		},
	}
	require.NoError(t, cfg.Validate())

	store := session.NewMemoryStore()
	idClient := identity.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	svc := auth.NewService(idClient, store, nil)
	ctrl := auth.NewController(svc, store, nil)
	guard := auth.NewGuard(ctrl, nil)
	tokens := auth.NewTokenService(cfg.Session.TokenSecret, cfg.Session.TokenTTL)
	candidates := candidate.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	server := dashhttp.NewServer(&dashhttp.ServerDependencies{
		Config:     cfg,
		Controller: ctrl,
		Guard:      guard,
		Tokens:     tokens,
		Candidates: candidates,
		Dashboard:  dashboard.NewService(candidates, cfg.App.MetricsPoolSize),
		Feedback:   feedback.NewService(nil),
	})

	ctrl.Initialize()
	return &serverEnv{server: server, ctrl: ctrl}
}

func (env *serverEnv) request(method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.server.Echo().ServeHTTP(rec, req)
	return rec
}

func (env *serverEnv) login(t *testing.T, role string) []*http.Cookie {
	t.Helper()
	rec := env.request(http.MethodPost, "/auth/login",
		`{"username":"emilys","password":"emilyspass","role":"`+role+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestHealthEndpoint(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodPost, "/auth/login",
		`{"username":"emilys","password":"emilyspass","role":"panelist"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Authenticated bool     `json:"authenticated"`
		Role          string   `json:"role"`
		Permissions   []string `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "panelist", body.Role)
	assert.Contains(t, body.Permissions, "submit_feedback")

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			found = true
			assert.True(t, cookie.HttpOnly)
			assert.NotEmpty(t, cookie.Value)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodPost, "/auth/login",
		`{"username":"emilys","password":"emilyspass","role":"admin"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"role"`)
}

func TestLoginBadPasswordIsGeneric401(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodPost, "/auth/login",
		`{"username":"emilys","password":"wrong","role":"panelist"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestProtectedRouteWithoutLoginRedirects(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestRoleMatrixOverRoutes(t *testing.T) {
	cases := []struct {
		role   string
		method string
		target string
		body   string
		status int
	}{
		{"administrator", http.MethodGet, "/api/roles", "", http.StatusOK},
		{"administrator", http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{"administrator", http.MethodPost, "/api/feedback", `{}`, http.StatusBadRequest},
		{"administrator", http.MethodGet, "/api/feedback/mine", "", http.StatusForbidden},
		{"ta_member", http.MethodGet, "/api/candidates", "", http.StatusOK},
		{"ta_member", http.MethodGet, "/api/feedback", "", http.StatusOK},
		{"ta_member", http.MethodGet, "/api/roles", "", http.StatusForbidden},
		{"ta_member", http.MethodPost, "/api/feedback", `{}`, http.StatusForbidden},
		{"panelist", http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{"panelist", http.MethodGet, "/api/feedback", "", http.StatusForbidden},
		{"panelist", http.MethodGet, "/api/feedback/mine", "", http.StatusOK},
		{"panelist", http.MethodGet, "/api/roles", "", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.role+"_"+tc.target, func(t *testing.T) {
			env := newServerEnv(t)
			cookies := env.login(t, tc.role)

			rec := env.request(tc.method, tc.target, tc.body, cookies)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestPanelistFeedbackFlow(t *testing.T) {
	env := newServerEnv(t)
	cookies := env.login(t, "panelist")

	rec := env.request(http.MethodPost, "/api/feedback",
		`{"candidateId":1,"overallScore":4,"strengths":"strong system design answers","areasForImprovement":"needs deeper database knowledge"}`,
		cookies)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"submittedBy":"emilys"`)

	rec = env.request(http.MethodGet, "/api/feedback/mine", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"candidateId":1`)
}

func TestCandidateDetail(t *testing.T) {
	env := newServerEnv(t)
	cookies := env.login(t, "ta_member")

	rec := env.request(http.MethodGet, "/api/candidates/1", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"firstName":"Emily"`)

	rec = env.request(http.MethodGet, "/api/candidates/999", "", cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutInvalidatesCookie(t *testing.T) {
	env := newServerEnv(t)
	cookies := env.login(t, "administrator")

	rec := env.request(http.MethodPost, "/auth/logout", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodGet, "/api/dashboard", "", cookies)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionEndpointRehydration(t *testing.T) {
	env := newServerEnv(t)

	rec := env.request(http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	cookies := env.login(t, "ta_member")
	rec = env.request(http.MethodGet, "/auth/session", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"role":"ta_member"`)

	// Same process, no cookie presented: the view reports unauthenticated.
	rec = env.request(http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

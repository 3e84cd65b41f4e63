// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/inct-panel/db"
	"github.com/danielhkuo/inct-panel/metrics"
	"github.com/danielhkuo/inct-panel/session"
	"github.com/danielhkuo/inct-panel/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	store := session.NewSQLStore(testutil.SetupTestDB(t), db.TypeSQLite)
	return NewRouter(store, testutil.LoadTestRepository(t), metrics.New(), testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Prosseguir para login") {
		t.Errorf("Expected landing page, got '%s'", w.Body.String())
	}
	if len(w.Result().Cookies()) == 0 {
		t.Error("Expected a session cookie")
	}
}

func TestProtectedRoutes(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method   string
		path     string
		expected int
	}{
		{"GET", "/app", http.StatusSeeOther},
		{"GET", "/app?type=inct&key=INCT-A", http.StatusSeeOther},
		{"GET", "/api/options", http.StatusUnauthorized},
		{"GET", "/api/selection?type=inct&key=INCT-A", http.StatusUnauthorized},
		{"POST", "/admin/reload", http.StatusUnauthorized},
		{"GET", "/api/session", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expected {
				t.Errorf("Expected %d for %s %s, got %d", tc.expected, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},   // Only GET is defined
		{"GET", "/proceed"},   // Only POST is defined
		{"DELETE", "/login"},  // GET and POST are defined
		{"GET", "/admin/reload"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

// browser is a cookie-keeping client against a live server
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &browser{t: t, base: srv.URL, client: &http.Client{Jar: jar}}
}

// do sends a request, following redirects, and returns the final status,
// path and body
func (b *browser) do(method, path string, form url.Values) (int, string, string) {
	b.t.Helper()

	var resp *http.Response
	var err error
	if method == "POST" {
		resp, err = b.client.PostForm(b.base+path, form)
	} else {
		resp, err = b.client.Get(b.base + path)
	}
	if err != nil {
		b.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("Failed to read body: %v", err)
	}
	return resp.StatusCode, resp.Request.URL.Path, string(body)
}

func (b *browser) expect(method, path string, form url.Values, status int, finalPath, contains string) string {
	b.t.Helper()
	gotStatus, gotPath, body := b.do(method, path, form)
	if gotStatus != status {
		b.t.Errorf("%s %s: expected status %d, got %d", method, path, status, gotStatus)
	}
	if gotPath != finalPath {
		b.t.Errorf("%s %s: expected to end at %s, got %s", method, path, finalPath, gotPath)
	}
	if contains != "" && !strings.Contains(body, contains) {
		b.t.Errorf("%s %s: expected body to contain %q", method, path, contains)
	}
	return body
}

func TestAccessFlow(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	b := newBrowser(t, srv)

	b.expect("GET", "/", nil, http.StatusOK, "/", "Prosseguir para login")
	b.expect("GET", "/app", nil, http.StatusOK, "/", "Prosseguir para login")
	b.expect("GET", "/login", nil, http.StatusOK, "/", "Prosseguir para login")

	b.expect("POST", "/proceed", nil, http.StatusOK, "/login", `action="/login"`)
	b.expect("GET", "/", nil, http.StatusOK, "/login", `action="/login"`)
	b.expect("GET", "/app", nil, http.StatusOK, "/login", "")

	bad := url.Values{"username": {testutil.TestUsername}, "password": {"wrong"}}
	b.expect("POST", "/login", bad, http.StatusUnauthorized, "/login", "Usuário ou senha incorretos.")

	good := url.Values{"username": {testutil.TestUsername}, "password": {testutil.TestPassword}}
	b.expect("POST", "/login", good, http.StatusOK, "/app", "Escolha um INCT ou uma Área para visualizar os dados.")

	b.expect("GET", "/", nil, http.StatusOK, "/app", "")
	b.expect("GET", "/app?type=inct&key=INCT-A", nil, http.StatusOK, "/app", "Painel — INCT-A")
	b.expect("GET", "/app?type=area&key=Physics", nil, http.StatusOK, "/app", "Painel — Área: Physics")
	b.expect("GET", "/app?type=inct&key=INCT-Z", nil, http.StatusOK, "/app", "Nenhum dado encontrado para")
	b.expect("GET", "/api/options?type=area", nil, http.StatusOK, "/api/options", `"Physics"`)
	b.expect("GET", "/api/session", nil, http.StatusOK, "/api/session", `"stage":"app"`)
	b.expect("POST", "/admin/reload", nil, http.StatusOK, "/admin/reload", `"entries":3`)

	// A second browser has its own session
	other := newBrowser(t, srv)
	other.expect("GET", "/app?type=inct&key=INCT-A", nil, http.StatusOK, "/", "Prosseguir para login")
	other.expect("GET", "/api/session", nil, http.StatusOK, "/api/session", `"stage":"home"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	b := newBrowser(t, srv)
	b.do("POST", "/proceed", nil)
	b.do("POST", "/login", url.Values{"username": {"x"}, "password": {"y"}})

	_, _, body := b.do("GET", "/metrics", nil)
	for _, want := range []string{
		`inct_login_attempts_total{outcome="failure"} 1`,
		`inct_http_request_duration_seconds_count{route="proceed"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected metrics to contain %q", want)
		}
	}
}

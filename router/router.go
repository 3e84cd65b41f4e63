// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/inct-panel/cliparse"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/handlers"
	"github.com/danielhkuo/inct-panel/metrics"
	"github.com/danielhkuo/inct-panel/middleware"
	"github.com/danielhkuo/inct-panel/session"
)

func NewRouter(sessions session.Store, repo *dataset.Repository, m *metrics.Metrics, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(sessions, repo, m, cfg)
	apiHandler := handlers.NewAPIHandler(repo)
	adminHandler := handlers.NewAdminHandler(repo)

	// route wraps a handler with logging, timing and the caller's session
	route := func(name string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(m.Instrument(name, middleware.WithSession(sessions, cfg.SecureCookies, h)))
	}
	page := func(h http.HandlerFunc) http.HandlerFunc { return middleware.RequireApp(false, h) }
	api := func(h http.HandlerFunc) http.HandlerFunc { return middleware.RequireApp(true, h) }

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Access flow
	mux.HandleFunc("GET /{$}", route("landing", pageHandler.Landing))
	mux.HandleFunc("POST /proceed", route("proceed", pageHandler.Proceed))
	mux.HandleFunc("GET /login", route("login_form", pageHandler.LoginForm))
	mux.HandleFunc("POST /login", route("login", pageHandler.Login))

	// Dashboard
	mux.HandleFunc("GET /app", route("app", page(pageHandler.App)))

	// JSON API
	mux.HandleFunc("GET /api/session", route("api_session", apiHandler.Session))
	mux.HandleFunc("GET /api/options", route("api_options", api(apiHandler.Options)))
	mux.HandleFunc("GET /api/selection", route("api_selection", api(apiHandler.Selection)))

	// Operations
	mux.HandleFunc("POST /admin/reload", route("admin_reload", api(adminHandler.Reload)))

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/inct-panel/auth"
	"github.com/danielhkuo/inct-panel/cliparse"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/metrics"
	"github.com/danielhkuo/inct-panel/middleware"
	"github.com/danielhkuo/inct-panel/models"
	"github.com/danielhkuo/inct-panel/selection"
	"github.com/danielhkuo/inct-panel/session"
	"github.com/danielhkuo/inct-panel/views"
)

// Inline messages of the login form
const (
	msgBadCredentials = "Usuário ou senha incorretos."
	msgTooManyLogins  = "Muitas tentativas de login. Aguarde um instante e tente novamente."
)

type PageHandler struct {
	sessions   session.Store
	repo       *dataset.Repository
	metrics    *metrics.Metrics
	creds      auth.Credentials
	limiter    *middleware.LoginLimiter
	dispatcher *views.Dispatcher
}

func NewPageHandler(sessions session.Store, repo *dataset.Repository, m *metrics.Metrics, cfg cliparse.Config) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		repo:     repo,
		metrics:  m,
		creds:    cfg.Credentials(),
		limiter:  middleware.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst, cfg.IPHashSalt, cfg.TrustProxy),
		dispatcher: &views.Dispatcher{
			Institute: &views.InstituteView{Data: repo},
			Area:      &views.AreaView{Data: repo},
			Prompt:    views.Prompt{},
		},
	}
}

// currentSession returns the session attached by middleware.WithSession
func currentSession(w http.ResponseWriter, r *http.Request) (*session.State, bool) {
	st, ok := session.FromContext(r.Context())
	if !ok {
		slog.Error("no session in request context", "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Session unavailable")
	}
	return st, ok
}

// redirectToStage sends the browser to the page of its current stage
func redirectToStage(w http.ResponseWriter, r *http.Request, st *session.State) {
	target := "/"
	switch {
	case st.InApp():
		target = "/app"
	case st.Stage == session.StageLogin:
		target = "/login"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// writeHTML sends a fully rendered page
func writeHTML(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write page", "error", err)
	}
}

// Landing handles GET /
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	st, ok := currentSession(w, r)
	if !ok {
		return
	}
	if st.Stage != session.StageHome {
		redirectToStage(w, r, st)
		return
	}

	var buf bytes.Buffer
	if err := views.RenderLanding(&buf); err != nil {
		slog.Error("failed to render landing page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

// Proceed handles POST /proceed
func (h *PageHandler) Proceed(w http.ResponseWriter, r *http.Request) {
	st, ok := currentSession(w, r)
	if !ok {
		return
	}
	if err := st.Proceed(); err != nil {
		// Already past the landing page
		redirectToStage(w, r, st)
		return
	}
	if err := h.sessions.Save(r.Context(), st); err != nil {
		slog.Error("failed to save session", "session", st.ID, "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm handles GET /login
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	st, ok := currentSession(w, r)
	if !ok {
		return
	}
	if st.Stage != session.StageLogin {
		redirectToStage(w, r, st)
		return
	}
	h.renderLogin(w, http.StatusOK, views.LoginPage{})
}

func (h *PageHandler) renderLogin(w http.ResponseWriter, statusCode int, p views.LoginPage) {
	var buf bytes.Buffer
	if err := views.RenderLogin(&buf, p); err != nil {
		slog.Error("failed to render login page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, statusCode, &buf)
}

// Login handles POST /login. Browsers post a form and are redirected; JSON
// clients get the session state back.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	st, ok := currentSession(w, r)
	if !ok {
		return
	}
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	if st.Stage != session.StageLogin {
		if isJSON {
			middleware.ErrorResponse(w, http.StatusConflict, "Not at the login stage")
			return
		}
		redirectToStage(w, r, st)
		return
	}

	var req models.LoginRequest
	if isJSON {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	} else {
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	}

	if !h.limiter.Allow(r) {
		h.metrics.Login(metrics.LoginLimited)
		slog.Warn("login rate limited", "session", st.ID)
		if isJSON {
			middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many login attempts")
			return
		}
		h.renderLogin(w, http.StatusTooManyRequests, views.LoginPage{Username: req.Username, Error: msgTooManyLogins})
		return
	}

	verr := h.creds.Verify(req.Username, req.Password)
	if err := st.SubmitCredentials(verr == nil); err != nil {
		h.metrics.Login(metrics.LoginFailure)
		slog.Warn("login failed", "session", st.ID, "error", err)
		if isJSON {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.renderLogin(w, http.StatusUnauthorized, views.LoginPage{Username: req.Username, Error: msgBadCredentials})
		return
	}

	if err := h.sessions.Save(r.Context(), st); err != nil {
		slog.Error("failed to save session", "session", st.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	h.metrics.Login(metrics.LoginSuccess)
	slog.Info("login succeeded", "session", st.ID)

	if isJSON {
		middleware.JSONResponse(w, http.StatusOK, sessionResponse(st))
		return
	}
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

// App handles GET /app
func (h *PageHandler) App(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filterType, err := selection.ParseFilterType(q.Get("type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sel := selection.Selection{Type: filterType, Key: q.Get("key")}

	snap, err := h.repo.Snapshot()
	if err != nil {
		slog.Error("catalog unavailable", "error", err)
		http.Error(w, "Dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	cat := snap.Catalog

	// Non-numeric values fall back to the default
	top, _ := strconv.Atoi(q.Get("top"))
	opts := views.Options{
		TopN:    top,
		Period:  q.Get("period"),
		Periods: q["periods"],
		Tables:  snap.Tables,
	}

	var body bytes.Buffer
	outcome, err := h.dispatcher.Dispatch(&body, sel, selection.Apply(cat, sel), opts)
	if err != nil {
		slog.Error("failed to render view", "type", sel.Type, "key", sel.Key, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	h.metrics.Dispatch(string(outcome))

	var buf bytes.Buffer
	err = views.RenderDashboard(&buf, views.DashboardPage{
		Type:    sel.Type,
		Key:     sel.Key,
		Options: selection.Options(cat, sel.Type),
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

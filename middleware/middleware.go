// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/inct-panel/models"
	"github.com/danielhkuo/inct-panel/session"
)

// SessionCookie carries the session ID
const SessionCookie = "inct_session"

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Log request
		slog.Info("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		// Call the next handler
		next(w, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// WithSession attaches the caller's session to the request context. A
// missing or unknown cookie starts a new session at the home stage.
func WithSession(store session.Store, secure bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var st *session.State
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			st, err = store.Get(ctx, c.Value)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				slog.Error("failed to load session", "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Failed to load session")
				return
			}
		}

		if st == nil {
			var err error
			st, err = store.Create(ctx)
			if err != nil {
				slog.Error("failed to create session", "error", err)
				ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    st.ID,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next(w, r.WithContext(session.NewContext(ctx, st)))
	}
}

// RequireApp lets the request through only for sessions in the app stage.
// Pages are redirected to the landing page; JSON endpoints get 401.
func RequireApp(api bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := session.FromContext(r.Context())
		if ok && st.InApp() {
			next(w, r)
			return
		}
		if api {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
// The headers are client-controlled; use it only behind a trusted proxy.
func GetClientIP(r *http.Request) string {
	// Take the first hop of a proxy chain
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	return RemoteIP(r)
}

// RemoteIP returns the host part of the connection's remote address.
func RemoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Sessions

WithSession loads the caller's session from the inct_session cookie and
stores it in the request context. Visitors without a valid cookie get a new
session at the home stage and a fresh cookie (HttpOnly, SameSite=Lax,
optionally Secure):

	mux.HandleFunc("GET /", middleware.WithSession(store, cfg.SecureCookies, h.Landing))

Handlers read it back with session.FromContext.

# Stage Gate

RequireApp only lets sessions in the app stage through. Pages redirect to
the landing page; JSON endpoints answer 401:

	middleware.RequireApp(false, h.Dashboard)
	middleware.RequireApp(true, h.Options)

# Login Limiter

LoginLimiter throttles login attempts per client, keyed by a salted hash
of the client IP. A rate of 0 disables it and NewLoginLimiter returns nil,
which allows every attempt:

	limiter := middleware.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst, cfg.IPHashSalt)
	if !limiter.Allow(r) {
		// 429
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

The forwarded headers are set by the client unless a proxy rewrites them.
RemoteIP reads only the connection address. The login limiter keys on
RemoteIP unless it was built with trustProxy:

	limiter := middleware.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst, cfg.IPHashSalt, cfg.TrustProxy)
*/
package middleware

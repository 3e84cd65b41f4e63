// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the INCT dashboard.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(sessions, repo, metrics, cfg)

Every page and API route runs behind request logging, a latency histogram
and the session middleware, which issues the inct_session cookie.

# Endpoints

Operations:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition

Access flow:

	GET  /        - Landing page, or redirect to the current stage
	POST /proceed - Landing -> login
	GET  /login   - Credential form
	POST /login   - Validate credentials (form or JSON)

Dashboard (requires login, otherwise redirected to /):

	GET /app?type=inct|area&key=...&top=&period=&periods=

JSON API (requires login, otherwise 401):

	GET  /api/session                 - Current stage (no login needed)
	GET  /api/options?type=           - Sorted institute or area names
	GET  /api/selection?type=&key=    - Filtered rows and dispatch outcome
	POST /admin/reload                - Re-read the dataset
*/
package router

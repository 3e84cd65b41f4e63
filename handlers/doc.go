// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the INCT dashboard.

# Handler Types

Each handler is a struct holding its dependencies:

  - PageHandler: Landing, login and the dashboard pages
  - APIHandler: JSON session, option and selection endpoints
  - AdminHandler: Dataset reload

Handlers are created via constructor functions:

	pageHandler := handlers.NewPageHandler(sessions, repo, metrics, cfg)

Every handler expects middleware.WithSession to have attached the caller's
session to the request context.

# Access Flow

Sessions move through three stages: home -> login -> app

	GET  /        → Landing (redirects past the landing once left)
	POST /proceed → Proceed
	POST /login   → Login (form posts redirect, JSON gets the session)

A failed login keeps the session at the login stage and re-renders the form
with an inline error. When a login limit is configured, clients over it get
429 whatever the credentials.

# Dashboard

	GET /app?type=inct|area&key=...

App filters the catalog by the selection and hands the subset to the view
dispatcher, which draws the institute view, the area view or the prompt.
*/
package handlers

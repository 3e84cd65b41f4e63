// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the INCT research dashboard.

The dashboard shows, behind a single shared login, the researchers,
production, keywords and collaboration networks of the Brazilian National
Institutes of Science and Technology (INCTs), by institute or by research
area. All figures come from CSV tables and pre-rendered HTML produced by an
offline pipeline.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DASHBOARD_USERNAME=cgee DASHBOARD_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -data ./data -user cgee -password ...

A .env file in the working directory is read first; variables already set
in the environment win.

# Configuration

Required settings:

  - DASHBOARD_USERNAME (-user): Login name
  - DASHBOARD_PASSWORD (-password) or DASHBOARD_PASSWORD_HASH (-password-hash): Password, plain or bcrypt

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATA_DIR (-data): Dataset directory (default: .)
  - DATA_MANIFEST (-manifest): YAML file overriding dataset paths
  - WATCH_DATA (-watch): Reload when dataset files change
  - DATABASE_TYPE (-t): Session store, sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Session store connection string
  - LOGIN_RATE (-login-rate), LOGIN_BURST (-login-burst): Login attempts per client
  - TRUST_PROXY (-trust-proxy): Take client addresses from forwarded headers
  - SECURE_COOKIES (-secure-cookies): Mark the session cookie Secure

Generate a value for DASHBOARD_PASSWORD_HASH with:

	inct-panel -hash-password 's3cret'

# Architecture

  - catalog: Reference table parsing and the memoized store
  - dataset: Supplementary tables, fragments, manifest and file watcher
  - session: Access stages (home -> login -> app) and session stores
  - auth: Credential validation
  - selection: Filtering by institute or area
  - panels, charts: Aggregations and Plotly figures
  - views: Page templates and the view dispatcher
  - handlers, router, middleware: HTTP surface
  - metrics: Prometheus instrumentation
  - db, cliparse, models: Schema, configuration, JSON types

See package documentation for each component.
*/
package main

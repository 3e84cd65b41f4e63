// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the access flow of a dashboard visitor.

# Stages

Every session starts at home and moves forward only:

	home --Proceed--> login --SubmitCredentials(true)--> app

A failed credential check leaves the session at login; attempts are
unlimited. There is no logout and no expiry. A session at app is always
authenticated (Validate enforces this and the SQL schema repeats it as a
CHECK constraint).

# Storage

Store implementations return copies, so each request works on its own
*State and concurrent sessions never share flags:

  - SQLStore: dashboard_session table (SQLite or PostgreSQL)
  - MemoryStore: in-process map, used in tests and with -t memory

# Request Context

The HTTP layer loads the session once per request and passes it down:

	ctx = session.NewContext(r.Context(), st)
	st, ok := session.FromContext(ctx)
*/
package session

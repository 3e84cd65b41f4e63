// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite and PostgreSQL.

# Tables

  - dashboard_session: access stage and authentication flag per session

The table enforces that a session at the app stage is authenticated:

	CHECK (stage <> 'app' OR authenticated = TRUE)

# Placeholders

Queries are written with ? placeholders. Rebind converts them for
PostgreSQL:

	db.Rebind(db.TypePostgres, "SELECT * FROM t WHERE id = ?") // ... id = $1
*/
package db

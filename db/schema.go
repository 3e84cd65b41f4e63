// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"

	// TypeMemory keeps sessions in process; it has no driver.
	TypeMemory = "memory"
)

// DriverName maps a database type to its database/sql driver name.
func DriverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Rebind rewrites ? placeholders as $1, $2, ... for postgres.
// Queries are written with ? and must not contain literal question marks.
func Rebind(dbType, query string) string {
	if dbType != TypePostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const schema = `
-- Access-control state per browser session
CREATE TABLE IF NOT EXISTS dashboard_session (
    id TEXT PRIMARY KEY,
    stage TEXT NOT NULL DEFAULT 'home' CHECK (stage IN ('home', 'login', 'app')),
    authenticated BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (stage <> 'app' OR authenticated = TRUE)
);

CREATE INDEX IF NOT EXISTS idx_dashboard_session_updated ON dashboard_session(updated_at);
`

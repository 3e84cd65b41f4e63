// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		dbType string
		query  string
		want   string
	}{
		{"sqlite untouched", TypeSQLite, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{"postgres numbered", TypePostgres, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
		{"no placeholders", TypePostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rebind(tt.dbType, tt.query); got != tt.want {
				t.Errorf("Rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if name, err := DriverName(TypeSQLite); err != nil || name != "sqlite" {
		t.Errorf("DriverName(sqlite) = %q, %v", name, err)
	}
	if name, err := DriverName(TypePostgres); err != nil || name != "postgres" {
		t.Errorf("DriverName(postgres) = %q, %v", name, err)
	}
	if _, err := DriverName("mysql"); err == nil {
		t.Error("DriverName(mysql) should fail")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	// App stage without authentication violates the CHECK constraint
	_, err = conn.Exec(`INSERT INTO dashboard_session (id, stage, authenticated) VALUES ('x', 'app', FALSE)`)
	if err == nil {
		t.Error("expected CHECK constraint to reject unauthenticated app stage")
	}

	_, err = conn.Exec(`INSERT INTO dashboard_session (id, stage, authenticated) VALUES ('y', 'app', TRUE)`)
	if err != nil {
		t.Errorf("authenticated app stage rejected: %v", err)
	}
}

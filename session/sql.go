// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/inct-panel/db"
)

// SQLStore keeps sessions in the dashboard_session table.
type SQLStore struct {
	conn   *sql.DB
	dbType string
}

// NewSQLStore expects the schema from db.CreateSchema to exist.
func NewSQLStore(conn *sql.DB, dbType string) *SQLStore {
	return &SQLStore{conn: conn, dbType: dbType}
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dbType, query)
}

func (s *SQLStore) Create(ctx context.Context) (*State, error) {
	st := New(uuid.NewString())

	_, err := s.conn.ExecContext(ctx, s.q(`
		INSERT INTO dashboard_session (id, stage, authenticated, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`), st.ID, string(st.Stage), st.Authenticated, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return st, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*State, error) {
	var st State
	var stage string
	err := s.conn.QueryRowContext(ctx, s.q(`
		SELECT id, stage, authenticated, created_at, updated_at
		FROM dashboard_session
		WHERE id = ?
	`), id).Scan(&st.ID, &stage, &st.Authenticated, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	st.Stage = Stage(stage)

	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("stored session %s: %w", id, err)
	}
	return &st, nil
}

func (s *SQLStore) Save(ctx context.Context, st *State) error {
	if err := st.Validate(); err != nil {
		return err
	}

	res, err := s.conn.ExecContext(ctx, s.q(`
		UPDATE dashboard_session
		SET stage = ?, authenticated = ?, updated_at = ?
		WHERE id = ?
	`), string(st.Stage), st.Authenticated, st.UpdatedAt, st.ID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/inct-panel/cliparse"
	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/db"
	"github.com/danielhkuo/inct-panel/metrics"
	"github.com/danielhkuo/inct-panel/middleware"
	"github.com/danielhkuo/inct-panel/session"
	"github.com/danielhkuo/inct-panel/testutil"
)

// harness wires the handlers to a SQLite session store and the test dataset
type harness struct {
	store   session.Store
	repo    *dataset.Repository
	metrics *metrics.Metrics
	pages   *PageHandler
	api     *APIHandler
	admin   *AdminHandler
}

func newHarness(t *testing.T, cfg cliparse.Config) *harness {
	t.Helper()

	h := &harness{
		store:   session.NewSQLStore(testutil.SetupTestDB(t), db.TypeSQLite),
		repo:    testutil.LoadTestRepository(t),
		metrics: metrics.New(),
	}
	h.pages = NewPageHandler(h.store, h.repo, h.metrics, cfg)
	h.api = NewAPIHandler(h.repo)
	h.admin = NewAdminHandler(h.repo)
	return h
}

// sessionAt stores a session that has reached stage
func (h *harness) sessionAt(t *testing.T, stage session.Stage) *session.State {
	t.Helper()
	ctx := context.Background()

	st, err := h.store.Create(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if stage != session.StageHome {
		if err := st.Proceed(); err != nil {
			t.Fatalf("Failed to proceed: %v", err)
		}
	}
	if stage == session.StageApp {
		if err := st.SubmitCredentials(true); err != nil {
			t.Fatalf("Failed to log in: %v", err)
		}
	}
	if err := h.store.Save(ctx, st); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	return st
}

// reload fetches the stored copy of st
func (h *harness) reload(t *testing.T, st *session.State) *session.State {
	t.Helper()
	got, err := h.store.Get(context.Background(), st.ID)
	if err != nil {
		t.Fatalf("Failed to load session %s: %v", st.ID, err)
	}
	return got
}

// serve runs next behind the session middleware, as the router does. A nil
// st sends no cookie.
func (h *harness) serve(next http.HandlerFunc, req *http.Request, st *session.State) *httptest.ResponseRecorder {
	if st != nil {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: st.ID})
	}
	w := httptest.NewRecorder()
	middleware.WithSession(h.store, false, next)(w, req)
	return w
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/middleware"
	"github.com/danielhkuo/inct-panel/models"
	"github.com/danielhkuo/inct-panel/selection"
	"github.com/danielhkuo/inct-panel/session"
	"github.com/danielhkuo/inct-panel/views"
)

// APIHandler serves the JSON counterparts of the dashboard pages.
type APIHandler struct {
	repo *dataset.Repository
}

func NewAPIHandler(repo *dataset.Repository) *APIHandler {
	return &APIHandler{repo: repo}
}

func sessionResponse(st *session.State) models.SessionResponse {
	return models.SessionResponse{
		Stage:         string(st.Stage),
		Authenticated: st.Authenticated,
		CreatedAt:     st.CreatedAt,
	}
}

// Session handles GET /api/session
func (h *APIHandler) Session(w http.ResponseWriter, r *http.Request) {
	st, ok := currentSession(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sessionResponse(st))
}

// Options handles GET /api/options
func (h *APIHandler) Options(w http.ResponseWriter, r *http.Request) {
	filterType, err := selection.ParseFilterType(r.URL.Query().Get("type"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	cat, err := h.repo.Catalog()
	if err != nil {
		slog.Error("catalog unavailable", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Dataset unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Type:    filterType.String(),
		Options: selection.Options(cat, filterType),
	})
}

// Selection handles GET /api/selection
func (h *APIHandler) Selection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filterType, err := selection.ParseFilterType(q.Get("type"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sel := selection.Selection{Type: filterType, Key: q.Get("key")}

	cat, err := h.repo.Catalog()
	if err != nil {
		slog.Error("catalog unavailable", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Dataset unavailable")
		return
	}

	subset := selection.Apply(cat, sel)
	middleware.JSONResponse(w, http.StatusOK, models.SelectionResponse{
		Type:    filterType.String(),
		Key:     sel.Key,
		Outcome: string(views.Route(sel, subset)),
		Count:   len(subset),
		Entries: subset,
	})
}

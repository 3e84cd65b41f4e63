// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/inct-panel/dataset"
	"github.com/danielhkuo/inct-panel/middleware"
	"github.com/danielhkuo/inct-panel/models"
)

type AdminHandler struct {
	repo *dataset.Repository
}

func NewAdminHandler(repo *dataset.Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

// Reload handles POST /admin/reload. On failure the previous snapshot stays
// in service.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Reload(); err != nil {
		slog.Error("dataset reload failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reload dataset")
		return
	}

	cat, err := h.repo.Catalog()
	if err != nil {
		slog.Error("catalog unavailable after reload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Dataset unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReloadResponse{
		Entries:    cat.Len(),
		Institutes: len(cat.UniqueInstitutes()),
		Areas:      len(cat.UniqueAreas()),
		ReloadedAt: time.Now().UTC(),
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/bonfire/auth"
	"github.com/danielhkuo/bonfire/cliparse"
	"github.com/danielhkuo/bonfire/middleware"
	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

type DiagnosticsHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewDiagnosticsHandler(s store.Store, cfg cliparse.Config) *DiagnosticsHandler {
	return &DiagnosticsHandler{store: s, cfg: cfg}
}

// Test handles GET /api/test
// Reports which credentials are configured and whether the backend answers.
func (h *DiagnosticsHandler) Test(w http.ResponseWriter, r *http.Request) {
	env := models.EnvStatus{
		SheetID:    auth.Presence(h.cfg.SheetID),
		Email:      auth.Presence(h.cfg.ServiceEmail),
		PrivateKey: auth.Presence(h.cfg.PrivateKey),
	}

	slog.Info("testing backend connection",
		"backend", h.cfg.DatabaseType,
		"sheet_id", env.SheetID,
		"email", env.Email,
		"private_key", env.PrivateKey,
	)

	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("backend connection test failed", "backend", h.cfg.DatabaseType, "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.DiagnosticsResponse{
			Success: false,
			Error:   err.Error(),
			Backend: h.cfg.DatabaseType,
			Env:     env,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DiagnosticsResponse{
		Success: true,
		Message: backendLabel(h.cfg.DatabaseType) + " connection working!",
		Backend: h.cfg.DatabaseType,
		Env:     env,
	})
}

func backendLabel(backend string) string {
	switch backend {
	case cliparse.BackendSheets:
		return "Google Sheets"
	case cliparse.BackendPostgres:
		return "PostgreSQL"
	default:
		return "SQLite"
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/bonfire/middleware"
	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/roster"
)

type SignupHandler struct {
	svc *roster.Service
}

func NewSignupHandler(svc *roster.Service) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// List handles GET /api/signup
func (h *SignupHandler) List(w http.ResponseWriter, r *http.Request) {
	signups, err := h.svc.ListSignups(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to load signups")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SignupsResponse{Signups: signups})
}

// Create handles POST /api/signup
func (h *SignupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.AddSignup(r.Context(), req); err != nil {
		writeError(w, r, err, "Failed to record signup")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Roster handles GET /api/signup/roster
func (h *SignupHandler) Roster(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Roster(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to load roster")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

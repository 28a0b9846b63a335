// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/bonfire/middleware"
	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/roster"
)

type NeededItemsHandler struct {
	svc *roster.Service
}

func NewNeededItemsHandler(svc *roster.Service) *NeededItemsHandler {
	return &NeededItemsHandler{svc: svc}
}

// List handles GET /api/needed-items
func (h *NeededItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListNeededItems(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to load needed items")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NeededItemsResponse{NeededItems: items})
}

// Create handles POST /api/needed-items
func (h *NeededItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNeededItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.AddNeededItem(r.Context(), req); err != nil {
		writeError(w, r, err, "Failed to add needed item")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Update handles PUT /api/needed-items
func (h *NeededItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateNeededItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.UpdateQuantityNeeded(r.Context(), req); err != nil {
		writeError(w, r, err, "Failed to update needed item")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete handles DELETE /api/needed-items
func (h *NeededItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteNeededItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.RemoveNeededItem(r.Context(), req.Item); err != nil {
		writeError(w, r, err, "Failed to remove needed item")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

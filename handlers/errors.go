// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/bonfire/middleware"
	"github.com/danielhkuo/bonfire/roster"
	"github.com/danielhkuo/bonfire/store"
)

// writeError maps roster and store errors to a status. Storage failures are
// logged and answered with the generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	switch {
	case errors.Is(err, roster.ErrInvalidRequest):
		reason := strings.TrimPrefix(err.Error(), roster.ErrInvalidRequest.Error()+": ")
		middleware.ErrorResponse(w, http.StatusBadRequest, reason)
	case errors.Is(err, store.ErrDuplicate):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case r.Context().Err() != nil && errors.Is(err, r.Context().Err()):
		slog.Warn("request cancelled", "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, generic)
	default:
		slog.Error(generic, "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, generic)
	}
}

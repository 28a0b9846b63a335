// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/bonfire/cliparse"
	"github.com/danielhkuo/bonfire/handlers"
	"github.com/danielhkuo/bonfire/middleware"
	"github.com/danielhkuo/bonfire/roster"
)

// NewRouter registers every route and wraps the mux with CORS
func NewRouter(svc *roster.Service, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	itemsHandler := handlers.NewNeededItemsHandler(svc)
	signupHandler := handlers.NewSignupHandler(svc)
	diagHandler := handlers.NewDiagnosticsHandler(svc.Store(), cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Needed items board
	mux.HandleFunc("GET /api/needed-items", middleware.WithLogging(itemsHandler.List))
	mux.HandleFunc("POST /api/needed-items", middleware.WithLogging(itemsHandler.Create))
	mux.HandleFunc("PUT /api/needed-items", middleware.WithLogging(itemsHandler.Update))
	mux.HandleFunc("DELETE /api/needed-items", middleware.WithLogging(itemsHandler.Delete))

	// Signups
	mux.HandleFunc("GET /api/signup", middleware.WithLogging(signupHandler.List))
	mux.HandleFunc("POST /api/signup", middleware.WithLogging(signupHandler.Create))
	mux.HandleFunc("GET /api/signup/roster", middleware.WithLogging(signupHandler.Roster))

	// Backend diagnostics
	mux.HandleFunc("GET /api/test", middleware.WithLogging(diagHandler.Test))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bonfire-signup API v1"))
	})

	return middleware.CORS(mux)
}

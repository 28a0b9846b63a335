// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the bonfire signup API.

# Route Registration

NewRouter returns the mux wrapped with CORS:

	handler := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Needed items:

	GET    /api/needed-items - Board
	POST   /api/needed-items - Add item {item, category, quantityNeeded}
	PUT    /api/needed-items - Change target {item, quantityNeeded}
	DELETE /api/needed-items - Remove item {item}

Signups:

	GET  /api/signup        - All signups
	POST /api/signup        - Sign up for one or more items
	GET  /api/signup/roster - Signups grouped by guest

Diagnostics:

	GET /api/test - Credential presence and backend reachability

Every /api route is wrapped with middleware.WithLogging.
*/
package router

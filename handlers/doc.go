// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the bonfire signup API.

# Handler Types

Each handler is a struct with its dependencies:

  - NeededItemsHandler: list, add, retarget and remove needed items
  - SignupHandler: list signups, record a signup, grouped roster
  - DiagnosticsHandler: credential presence and backend reachability

Handlers are created via constructor functions:

	signupHandler := handlers.NewSignupHandler(svc)
	diag := handlers.NewDiagnosticsHandler(store, cfg)

All writes go through roster.Service, which applies them one at a time.

# Signups

	POST /api/signup → Create

Accepts the single-item shape {name, email, item, itemCategory, quantity}
or a list {name, email, items: [{item, category, quantity, quantityNeeded}]}.
Each item is stored as its own signup and reconciled against the board.

# Errors

  - invalid input → 400 with the reason
  - duplicate needed item → 409
  - backend failure → 500 with a generic message; the cause is logged

Updating or removing an item that is not on the board succeeds without
changing anything.
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the bonfire signup server.

Guests sign up for a beach bonfire and pledge needed items (food, drinks,
supplies, other) in quantities. The board tracks how much of each item has
been pledged and who is bringing it.

# Starting the Server

With the embedded sqlite store (default):

	go run .

With Google Sheets:

	DATABASE_TYPE=sheets GOOGLE_SHEET_ID=... \
	GOOGLE_SERVICE_ACCOUNT_EMAIL=... GOOGLE_PRIVATE_KEY=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Settings are also read from a .env file. See package cliparse.

# Startup

The backend schema is brought up to date once before the server listens:

  - sheets: missing tabs and columns are added (sheets.Migrate)
  - sqlite/postgres: embedded migrations are applied (db.Setup)

The default needed items are seeded on first initialization unless
SEED_DEFAULT_ITEMS=false.

# Architecture

  - handlers: HTTP request handlers (needed items, signups, diagnostics)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - roster: validation, reconciliation and the single writer
  - store: backend contract
  - sheets, db: backends
  - models: Domain, request and response types
  - auth: Service account credential
  - cliparse: Configuration parsing
  - client, cmd/rosterview: API client and terminal viewer

See package documentation for each component.
*/
package main

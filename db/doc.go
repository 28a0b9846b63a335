// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the relational backend for the signup board.

# Setup

Setup opens sqlite or postgres, applies migrations and returns a Store:

	s, err := db.Setup(ctx, db.DriverSQLite, "bonfire.db", true)

# Migrations

Migrations live in migrations/*.sql and are embedded in the binary. Each file
is applied at most once, in name order, and recorded in schema_migrations.
Only the section after "-- +migrate Up" is executed.

  - 0001_init.sql: signups and needed_items without quantities
  - 0002_quantities.sql: quantity, quantity_needed, quantity_brought columns
    with defaults (backfills existing rows)

The default needed items are seeded when 0001_init.sql runs during Setup,
so deleting a seed item is permanent across restarts.

# Tables

  - signups: id, position, name, email, item, category, quantity, signed_up_at
  - needed_items: item_key (lower-cased name), position, item, category,
    taken (0/1), taken_by, quantity_needed, quantity_brought

Queries use ? placeholders; postgres queries are rebound to $n.
*/
package db

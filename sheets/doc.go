// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sheets is the spreadsheet backend for the signup board.

# Tabs

The spreadsheet has two tabs with a header row:

  - Signups: Name, Email, Item, Category, Quantity, Timestamp
  - NeededItems: Item, Category, Taken, TakenBy, QuantityNeeded, QuantityBrought

Columns are addressed by header name, not position, so a sheet whose columns
were reordered by hand still reads correctly. Booleans are stored as TRUE or
FALSE. Blank rows are skipped.

# Migration

Migrate runs once at startup:

	report, err := sheets.Migrate(ctx, client, seed)

Missing tabs are created (NeededItems is seeded with the default board when
seed is set). Missing columns are appended at the end of the header and
existing rows receive the column default.

# Client

Client is the row-level gateway. NewGoogleClient implements it with the
Sheets v4 API and a service account token source.
*/
package sheets

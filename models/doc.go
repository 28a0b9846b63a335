// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Signup: one (name, email, item, category, quantity, timestamp) record
  - NeededItem: item, category, taken, takenBy, quantityNeeded, quantityBrought
  - Category: food, drinks, supplies, other

Item names are matched case-insensitively everywhere:

	models.SameItem("napkins", "Napkins") // true

# Request Types

  - CreateSignupRequest: name, email and either item/itemCategory/quantity
    or items[] (multi-item shape)
  - CreateNeededItemRequest: item, category, quantityNeeded
  - UpdateNeededItemRequest: item, quantityNeeded
  - DeleteNeededItemRequest: item

# Response Types

  - SuccessResponse: success
  - NeededItemsResponse: neededItems
  - SignupsResponse: signups
  - RosterResponse: roster grouped by email, totalItems, uniquePeople
  - DiagnosticsResponse: credential presence and backend check
  - ErrorResponse: error, message

# Seed Data

DefaultNeededItems returns the 24 starter items written when the board is
first created.
*/
package models

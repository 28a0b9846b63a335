// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roster applies signups to the needed items board.

# Reconciliation

For each item of a signup with quantity Q:

 1. Look up the needed item by case-insensitive name.
 2. If found, add Q to quantityBrought, mark it taken once the target is
    reached and add the contributor to takenBy.
 3. If not found, create it with quantityNeeded Q (or the request's
    quantityNeeded) and apply step 2.

The signup itself is stored before the item is touched. The two writes are
not transactional.

takenBy is a ", " joined list compared by whole, case-insensitive names.

# Writes

Service runs every mutation on a single goroutine:

	svc := roster.NewService(store)
	defer svc.Close()

	err := svc.AddSignup(ctx, req)

Errors wrap ErrInvalidRequest for bad input and ErrStorage for backend
failures. AddNeededItem returns store.ErrDuplicate for a listed name.
*/
package roster

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/roster"
	"github.com/danielhkuo/bonfire/testutil"
)

// TestConcurrentSignupsSameItem verifies that simultaneous signups for one
// item are all counted and every contributor is listed once
func TestConcurrentSignupsSameItem(t *testing.T) {
	svc, s := setupService(t)
	handler := NewSignupHandler(svc)
	testutil.AddTestItem(t, s, "Paper Plates", models.CategorySupplies, 50)

	numGuests := 25
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numGuests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/signup", models.CreateSignupRequest{
				Name:         fmt.Sprintf("Guest %d", idx),
				Email:        fmt.Sprintf("guest%d@example.com", idx),
				Item:         "paper plates",
				ItemCategory: "supplies",
				Quantity:     2,
			}, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numGuests {
		t.Errorf("Expected %d successful signups, got %d", numGuests, successCount.Load())
	}

	if n := testutil.CountSignups(t, s); n != numGuests {
		t.Errorf("Expected %d signups, got %d", numGuests, n)
	}

	plates := testutil.GetTestItem(t, s, "Paper Plates")
	if plates.QuantityBrought != numGuests*2 {
		t.Errorf("Expected quantityBrought %d, got %d (lost update)", numGuests*2, plates.QuantityBrought)
	}
	if !plates.Taken {
		t.Error("Expected Paper Plates to be taken")
	}
	if got := len(roster.Contributors(plates.TakenBy)); got != numGuests {
		t.Errorf("Expected %d contributors, got %d", numGuests, got)
	}
}

// TestConcurrentCreateSameItem verifies that when several clients add the
// same needed item at once, exactly one succeeds
func TestConcurrentCreateSameItem(t *testing.T) {
	svc, s := setupService(t)
	handler := NewNeededItemsHandler(svc)

	numAttempts := 8
	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			name := "Volleyball"
			if idx%2 == 1 {
				name = strings.ToLower(name)
			}
			w := httptest.NewRecorder()
			handler.Create(w, testutil.MakeRequest("POST", "/api/needed-items",
				models.CreateNeededItemRequest{Item: name, Category: "other"}, nil))

			switch w.Code {
			case http.StatusOK:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 creation, got %d", created.Load())
	}
	if int(conflicts.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicts.Load())
	}

	items, _ := s.ListNeededItems(t.Context())
	if len(items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(items))
	}
}

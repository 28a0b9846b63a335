// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/bonfire/db"
	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/roster"
	"github.com/danielhkuo/bonfire/testutil"
)

// setupService returns a roster service over a fresh sqlite store
func setupService(t *testing.T) (*roster.Service, *db.Store) {
	t.Helper()
	s := testutil.SetupTestStore(t)
	svc := roster.NewService(s)
	t.Cleanup(svc.Close)
	return svc, s
}

func TestListNeededItems(t *testing.T) {
	svc, s := setupService(t)
	handler := NewNeededItemsHandler(svc)

	// Empty board is an empty list, not null
	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/api/needed-items", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"neededItems":[]`) {
		t.Errorf("Expected empty array, got %s", w.Body.String())
	}

	testutil.AddTestItem(t, s, "Charcoal", models.CategorySupplies, 1)
	testutil.AddTestItem(t, s, "Sodas", models.CategoryDrinks, 12)

	w = httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/api/needed-items", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.NeededItemsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.NeededItems) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(resp.NeededItems))
	}
	if resp.NeededItems[1].Item != "Sodas" || resp.NeededItems[1].QuantityNeeded != 12 {
		t.Errorf("Unexpected item %+v", resp.NeededItems[1])
	}
}

func TestCreateNeededItem(t *testing.T) {
	svc, s := setupService(t)
	handler := NewNeededItemsHandler(svc)
	testutil.AddTestItem(t, s, "Firewood", models.CategorySupplies, 5)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid item",
			body:           models.CreateNeededItemRequest{Item: "Guitar", Category: "other", QuantityNeeded: 1},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "quantity defaults to one",
			body:           models.CreateNeededItemRequest{Item: "Tongs", Category: "supplies"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing item",
			body:           models.CreateNeededItemRequest{Category: "food"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate ignoring case",
			body:           models.CreateNeededItemRequest{Item: "firewood", Category: "supplies"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid JSON",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body == nil {
				req = httptest.NewRequest("POST", "/api/needed-items", strings.NewReader("{bad"))
			} else {
				req = testutil.MakeRequest("POST", "/api/needed-items", tt.body, nil)
			}
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	tongs := testutil.GetTestItem(t, s, "Tongs")
	if tongs.QuantityNeeded != 1 || tongs.QuantityBrought != 0 || tongs.Taken {
		t.Errorf("Unexpected tongs %+v", tongs)
	}
}

func TestUpdateNeededItem(t *testing.T) {
	svc, s := setupService(t)
	handler := NewNeededItemsHandler(svc)
	testutil.AddTestItem(t, s, "Sunscreen", models.CategorySupplies, 3)

	tests := []struct {
		name           string
		body           models.UpdateNeededItemRequest
		expectedStatus int
	}{
		{"raise target", models.UpdateNeededItemRequest{Item: "sunscreen", QuantityNeeded: 6}, http.StatusOK},
		{"unknown item is a no-op", models.UpdateNeededItemRequest{Item: "Parasol", QuantityNeeded: 2}, http.StatusOK},
		{"zero target", models.UpdateNeededItemRequest{Item: "Sunscreen", QuantityNeeded: 0}, http.StatusBadRequest},
		{"missing item", models.UpdateNeededItemRequest{QuantityNeeded: 2}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Update(w, testutil.MakeRequest("PUT", "/api/needed-items", tt.body, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	if item := testutil.GetTestItem(t, s, "Sunscreen"); item.QuantityNeeded != 6 {
		t.Errorf("Expected quantityNeeded 6, got %d", item.QuantityNeeded)
	}
}

func TestDeleteNeededItem(t *testing.T) {
	svc, s := setupService(t)
	handler := NewNeededItemsHandler(svc)
	testutil.AddTestItem(t, s, "Beer", models.CategoryDrinks, 1)

	w := httptest.NewRecorder()
	handler.Delete(w, testutil.MakeRequest("DELETE", "/api/needed-items", models.DeleteNeededItemRequest{Item: "BEER"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SuccessResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success {
		t.Error("Expected success")
	}

	items, _ := s.ListNeededItems(t.Context())
	if len(items) != 0 {
		t.Errorf("Expected item deleted, got %+v", items)
	}

	// Deleting again still succeeds
	w = httptest.NewRecorder()
	handler.Delete(w, testutil.MakeRequest("DELETE", "/api/needed-items", models.DeleteNeededItemRequest{Item: "Beer"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.Delete(w, testutil.MakeRequest("DELETE", "/api/needed-items", models.DeleteNeededItemRequest{}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

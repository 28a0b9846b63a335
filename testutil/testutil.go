// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/bonfire/cliparse"
	"github.com/danielhkuo/bonfire/db"
	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

// SetupTestStore creates a fresh sqlite store with all migrations applied
// and no seed items. It is closed when the test ends.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return setup(t, false)
}

// SetupSeededStore is SetupTestStore with the default needed items
func SetupSeededStore(t *testing.T) *db.Store {
	t.Helper()
	return setup(t, true)
}

func setup(t *testing.T, seed bool) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bonfire-test.db")
	s, err := db.Setup(context.Background(), db.DriverSQLite, path, seed)
	if err != nil {
		t.Fatalf("Failed to set up test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.BackendSQLite,
		DatabaseURL:      "bonfire-test.db",
		SeedDefaultItems: false,
	}
}

// AddTestItem inserts a needed item with nothing brought yet
func AddTestItem(t *testing.T, s store.Store, name string, category models.Category, needed int) {
	t.Helper()

	err := s.AddNeededItem(context.Background(), models.NeededItem{
		Item:           name,
		Category:       category,
		QuantityNeeded: needed,
	})
	if err != nil {
		t.Fatalf("Failed to create test item %q: %v", name, err)
	}
}

// GetTestItem loads a needed item or fails the test
func GetTestItem(t *testing.T, s store.Store, name string) models.NeededItem {
	t.Helper()

	item, err := s.GetNeededItem(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to load test item %q: %v", name, err)
	}
	return item
}

// CountSignups returns the number of stored signups
func CountSignups(t *testing.T, s store.Store) int {
	t.Helper()

	signups, err := s.ListSignups(context.Background())
	if err != nil {
		t.Fatalf("Failed to list signups: %v", err)
	}
	return len(signups)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

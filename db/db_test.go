// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bonfire.db")
	s, err := Setup(context.Background(), DriverSQLite, path, false)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"

	if got := rebind(DriverSQLite, query); got != query {
		t.Errorf("sqlite rebind changed query: %s", got)
	}

	want := "SELECT a FROM t WHERE b = $1 AND c = $2"
	if got := rebind(DriverPostgres, query); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Fatal("Expected error for unsupported driver")
	}
}

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	got := upSection(content)
	if got != "\nCREATE TABLE a (id INT);\n" {
		t.Errorf("upSection() = %q", got)
	}

	plain := "CREATE TABLE b (id INT);"
	if upSection(plain) != plain {
		t.Error("content without markers should be returned whole")
	}
}

func TestApplyMigrations_OnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "once.db")
	conn, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	first, err := ApplyMigrations(conn, DriverSQLite)
	if err != nil {
		t.Fatalf("first ApplyMigrations() error = %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 migrations on a fresh database, got %v", first)
	}

	second, err := ApplyMigrations(conn, DriverSQLite)
	if err != nil {
		t.Fatalf("second ApplyMigrations() error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("Expected no migrations on second run, got %v", second)
	}
}

func TestApplyMigrations_UpgradesLegacyShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	conn, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	initSQL, err := fs.ReadFile(migrationsFS, "migrations/"+initMigration)
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	legacy := fstest.MapFS{initMigration: &fstest.MapFile{Data: initSQL}}
	if _, err := applyMigrations(conn, DriverSQLite, legacy); err != nil {
		t.Fatalf("legacy migration error = %v", err)
	}

	// Rows written before quantities existed
	_, err = conn.Exec(`INSERT INTO signups (id, position, name, email, item, category, signed_up_at)
		VALUES ('s1', 1, 'Al', 'a@x.com', 'Chips', 'food', '2025-07-01T10:00:00Z')`)
	if err != nil {
		t.Fatalf("insert legacy signup: %v", err)
	}
	_, err = conn.Exec(`INSERT INTO needed_items (item_key, position, item, category, taken, taken_by)
		VALUES ('chips', 1, 'Chips', 'food', 1, 'Al')`)
	if err != nil {
		t.Fatalf("insert legacy item: %v", err)
	}

	applied, err := ApplyMigrations(conn, DriverSQLite)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if len(applied) != 1 || applied[0] != "0002_quantities.sql" {
		t.Fatalf("Expected only the quantities migration, got %v", applied)
	}

	s := NewStore(conn, DriverSQLite)
	signups, err := s.ListSignups(context.Background())
	if err != nil {
		t.Fatalf("ListSignups() error = %v", err)
	}
	if len(signups) != 1 || signups[0].Quantity != 1 {
		t.Errorf("Expected backfilled quantity 1, got %+v", signups)
	}

	item, err := s.GetNeededItem(context.Background(), "chips")
	if err != nil {
		t.Fatalf("GetNeededItem() error = %v", err)
	}
	if item.QuantityNeeded != 1 || item.QuantityBrought != 0 {
		t.Errorf("Expected defaults needed=1 brought=0, got %+v", item)
	}
	if !item.Taken {
		t.Error("Expected taken flag to survive the upgrade")
	}
}

func TestApplyMigrations_FinishesPartialUpgrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.db")
	conn, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	initSQL, err := fs.ReadFile(migrationsFS, "migrations/"+initMigration)
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	legacy := fstest.MapFS{initMigration: &fstest.MapFile{Data: initSQL}}
	if _, err := applyMigrations(conn, DriverSQLite, legacy); err != nil {
		t.Fatalf("legacy migration error = %v", err)
	}

	// First column of the quantities upgrade already present, the rest missing
	if _, err := conn.Exec(`ALTER TABLE signups ADD COLUMN quantity INTEGER NOT NULL DEFAULT 1`); err != nil {
		t.Fatalf("add signups.quantity: %v", err)
	}
	_, err = conn.Exec(`INSERT INTO needed_items (item_key, position, item, category, taken, taken_by)
		VALUES ('ice', 1, 'Ice', 'drinks', 0, '')`)
	if err != nil {
		t.Fatalf("insert legacy item: %v", err)
	}

	applied, err := ApplyMigrations(conn, DriverSQLite)
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if len(applied) != 1 || applied[0] != "0002_quantities.sql" {
		t.Fatalf("Expected the quantities migration, got %v", applied)
	}

	s := NewStore(conn, DriverSQLite)
	items, err := s.ListNeededItems(context.Background())
	if err != nil {
		t.Fatalf("ListNeededItems() error = %v", err)
	}
	if len(items) != 1 || items[0].QuantityNeeded != 1 || items[0].QuantityBrought != 0 {
		t.Errorf("Expected backfilled quantities, got %+v", items)
	}
}

func TestApplyMigrations_FailsOnBrokenStatement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.db")
	conn, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	broken := fstest.MapFS{
		"0001_broken.sql": &fstest.MapFile{Data: []byte("CREATE TABLE a (id INT);\nALTER TABLE missing ADD COLUMN x INT;\n")},
	}
	applied, err := applyMigrations(conn, DriverSQLite, broken)
	if err == nil {
		t.Fatal("Expected error for a failing statement")
	}
	if len(applied) != 0 {
		t.Errorf("Expected nothing recorded, got %v", applied)
	}

	done, err := isApplied(conn, DriverSQLite, "0001_broken.sql")
	if err != nil || done {
		t.Errorf("isApplied() = %v, %v; want false, nil", done, err)
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("\n-- leading comment\nCREATE TABLE a (id INT);\n\nALTER TABLE a ADD COLUMN b INT;\n  -- trailing\n")
	want := []string{"CREATE TABLE a (id INT)", "ALTER TABLE a ADD COLUMN b INT"}
	if len(got) != len(want) {
		t.Fatalf("splitStatements() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetup_SeedsOnlyFreshDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	s, err := Setup(ctx, DriverSQLite, path, true)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	items, err := s.ListNeededItems(ctx)
	if err != nil {
		t.Fatalf("ListNeededItems() error = %v", err)
	}
	want := len(models.DefaultNeededItems())
	if len(items) != want {
		t.Fatalf("Expected %d seeded items, got %d", want, len(items))
	}
	if items[0].Item != "BBQ Grill" || items[len(items)-1].Item != "Firewood" {
		t.Errorf("Seed order not preserved: first=%s last=%s", items[0].Item, items[len(items)-1].Item)
	}

	if err := s.RemoveNeededItem(ctx, "Firewood"); err != nil {
		t.Fatalf("RemoveNeededItem() error = %v", err)
	}
	s.Close()

	// Reopening must not bring deleted seed items back
	s, err = Setup(ctx, DriverSQLite, path, true)
	if err != nil {
		t.Fatalf("second Setup() error = %v", err)
	}
	defer s.Close()

	items, err = s.ListNeededItems(ctx)
	if err != nil {
		t.Fatalf("ListNeededItems() error = %v", err)
	}
	if len(items) != want-1 {
		t.Errorf("Expected %d items after reopen, got %d", want-1, len(items))
	}
}

func TestStore_NeededItems(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	napkins := models.NeededItem{
		Item:           "Napkins",
		Category:       models.CategorySupplies,
		QuantityNeeded: 100,
	}
	if err := s.AddNeededItem(ctx, napkins); err != nil {
		t.Fatalf("AddNeededItem() error = %v", err)
	}

	t.Run("duplicate is case-insensitive", func(t *testing.T) {
		err := s.AddNeededItem(ctx, models.NeededItem{Item: " napkins ", Category: models.CategoryOther, QuantityNeeded: 1})
		if err != store.ErrDuplicate {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("get by any case", func(t *testing.T) {
		got, err := s.GetNeededItem(ctx, "NAPKINS")
		if err != nil {
			t.Fatalf("GetNeededItem() error = %v", err)
		}
		if got.Item != "Napkins" || got.QuantityNeeded != 100 || got.Taken {
			t.Errorf("Unexpected item: %+v", got)
		}
	})

	t.Run("update", func(t *testing.T) {
		napkins.QuantityBrought = 105
		napkins.Taken = true
		napkins.TakenBy = "Al, Bo"
		if err := s.UpdateNeededItem(ctx, napkins); err != nil {
			t.Fatalf("UpdateNeededItem() error = %v", err)
		}
		got, _ := s.GetNeededItem(ctx, "napkins")
		if got.QuantityBrought != 105 || !got.Taken || got.TakenBy != "Al, Bo" {
			t.Errorf("Update not persisted: %+v", got)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		if _, err := s.GetNeededItem(ctx, "Kayak"); err != store.ErrNotFound {
			t.Errorf("GetNeededItem() expected ErrNotFound, got %v", err)
		}
		if err := s.UpdateNeededItem(ctx, models.NeededItem{Item: "Kayak"}); err != store.ErrNotFound {
			t.Errorf("UpdateNeededItem() expected ErrNotFound, got %v", err)
		}
		if err := s.RemoveNeededItem(ctx, "Kayak"); err != store.ErrNotFound {
			t.Errorf("RemoveNeededItem() expected ErrNotFound, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := s.RemoveNeededItem(ctx, "Napkins"); err != nil {
			t.Fatalf("RemoveNeededItem() error = %v", err)
		}
		items, _ := s.ListNeededItems(ctx)
		if len(items) != 0 {
			t.Errorf("Expected empty list, got %+v", items)
		}
	})
}

func TestStore_Signups(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	entries := []models.Signup{
		{Name: "Al", Email: "a@x.com", Item: "Napkins", Category: models.CategorySupplies, Quantity: 40, Timestamp: "2025-07-01T10:00:00Z"},
		{Name: "Bo", Email: "b@x.com", Item: "Napkins", Category: models.CategorySupplies, Quantity: 65, Timestamp: "2025-07-01T11:00:00Z"},
		{Name: "Al", Email: "a@x.com", Item: "Beer", Category: models.CategoryDrinks, Quantity: 1, Timestamp: "2025-07-01T12:00:00Z"},
	}
	for _, e := range entries {
		if err := s.AddSignup(ctx, e); err != nil {
			t.Fatalf("AddSignup() error = %v", err)
		}
	}

	got, err := s.ListSignups(ctx)
	if err != nil {
		t.Fatalf("ListSignups() error = %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("Expected %d signups, got %d", len(entries), len(got))
	}
	for i, e := range entries {
		if got[i].Name != e.Name || got[i].Item != e.Item || got[i].Quantity != e.Quantity || got[i].Category != e.Category {
			t.Errorf("signup %d = %+v, want %+v", i, got[i], e)
		}
		if got[i].ID == "" {
			t.Errorf("signup %d has no ID", i)
		}
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

// Store implements store.Store on sqlite or postgres
type Store struct {
	db     *sql.DB
	driver string
}

var _ store.Store = (*Store)(nil)

func NewStore(conn *sql.DB, driver string) *Store {
	return &Store{db: conn, driver: driver}
}

// DB exposes the underlying connection (tests and maintenance)
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) q(query string) string {
	return rebind(s.driver, query)
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) ListSignups(ctx context.Context) ([]models.Signup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, item, category, quantity, signed_up_at
		FROM signups
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	signups := []models.Signup{}
	for rows.Next() {
		var su models.Signup
		var category string
		if err := rows.Scan(&su.ID, &su.Name, &su.Email, &su.Item, &category, &su.Quantity, &su.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		su.Category = models.ParseCategory(category)
		signups = append(signups, su)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signups: %w", err)
	}
	return signups, nil
}

func (s *Store) AddSignup(ctx context.Context, su models.Signup) error {
	if su.ID == "" {
		su.ID = uuid.NewString()
	}

	pos, err := s.nextPosition(ctx, "signups")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO signups (id, position, name, email, item, category, quantity, signed_up_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), su.ID, pos, su.Name, su.Email, su.Item, string(su.Category), su.Quantity, su.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}
	return nil
}

func (s *Store) ListNeededItems(ctx context.Context) ([]models.NeededItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item, category, taken, taken_by, quantity_needed, quantity_brought
		FROM needed_items
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query needed items: %w", err)
	}
	defer rows.Close()

	items := []models.NeededItem{}
	for rows.Next() {
		item, err := scanNeededItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read needed items: %w", err)
	}
	return items, nil
}

func (s *Store) GetNeededItem(ctx context.Context, name string) (models.NeededItem, error) {
	row := s.db.QueryRowContext(ctx, s.q(`
		SELECT item, category, taken, taken_by, quantity_needed, quantity_brought
		FROM needed_items
		WHERE item_key = ?
	`), itemKey(name))

	item, err := scanNeededItem(row)
	if err == sql.ErrNoRows {
		return models.NeededItem{}, store.ErrNotFound
	}
	return item, err
}

func (s *Store) AddNeededItem(ctx context.Context, item models.NeededItem) error {
	_, err := s.GetNeededItem(ctx, item.Item)
	if err == nil {
		return store.ErrDuplicate
	}
	if err != store.ErrNotFound {
		return err
	}

	pos, err := s.nextPosition(ctx, "needed_items")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO needed_items (item_key, position, item, category, taken, taken_by, quantity_needed, quantity_brought)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), itemKey(item.Item), pos, strings.TrimSpace(item.Item), string(item.Category),
		boolToInt(item.Taken), item.TakenBy, item.QuantityNeeded, item.QuantityBrought)
	if err != nil {
		return fmt.Errorf("failed to insert needed item: %w", err)
	}
	return nil
}

func (s *Store) UpdateNeededItem(ctx context.Context, item models.NeededItem) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE needed_items
		SET category = ?, taken = ?, taken_by = ?, quantity_needed = ?, quantity_brought = ?
		WHERE item_key = ?
	`), string(item.Category), boolToInt(item.Taken), item.TakenBy,
		item.QuantityNeeded, item.QuantityBrought, itemKey(item.Item))
	if err != nil {
		return fmt.Errorf("failed to update needed item: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) RemoveNeededItem(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM needed_items WHERE item_key = ?`), itemKey(name))
	if err != nil {
		return fmt.Errorf("failed to delete needed item: %w", err)
	}
	return expectOneRow(res)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SeedDefaults inserts the starter board
func (s *Store) SeedDefaults(ctx context.Context) error {
	for _, item := range models.DefaultNeededItems() {
		if err := s.AddNeededItem(ctx, item); err != nil && err != store.ErrDuplicate {
			return fmt.Errorf("failed to seed %q: %w", item.Item, err)
		}
	}
	return nil
}

// table is always a package constant, never caller input
func (s *Store) nextPosition(ctx context.Context, table string) (int64, error) {
	var pos int64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) + 1 FROM "+table).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate position in %s: %w", table, err)
	}
	return pos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNeededItem(row scanner) (models.NeededItem, error) {
	var item models.NeededItem
	var category string
	err := row.Scan(&item.Item, &category, &item.Taken, &item.TakenBy, &item.QuantityNeeded, &item.QuantityBrought)
	if err == sql.ErrNoRows {
		return models.NeededItem{}, err
	}
	if err != nil {
		return models.NeededItem{}, fmt.Errorf("failed to scan needed item: %w", err)
	}
	item.Category = models.ParseCategory(category)
	return item, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

// Store implements store.Store on the two spreadsheet tabs.
// Every call reloads the tab so edits made in the sheet by hand are seen.
type Store struct {
	client Client
}

var _ store.Store = (*Store)(nil)

func NewStore(c Client) *Store {
	return &Store{client: c}
}

func defaultItems() []models.NeededItem {
	return models.DefaultNeededItems()
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

// parseInt falls back to def for blank or malformed cells
func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func neededItemRow(t *table, row []string, item models.NeededItem) []string {
	values := map[string]string{
		"Item":            strings.TrimSpace(item.Item),
		"Category":        string(item.Category),
		"Taken":           formatBool(item.Taken),
		"TakenBy":         item.TakenBy,
		"QuantityNeeded":  strconv.Itoa(item.QuantityNeeded),
		"QuantityBrought": strconv.Itoa(item.QuantityBrought),
	}
	if row == nil {
		return t.record(values)
	}
	for col, v := range values {
		row = t.set(row, col, v)
	}
	return row
}

func parseNeededItem(t *table, row []string) models.NeededItem {
	return models.NeededItem{
		Item:            t.get(row, "Item"),
		Category:        models.ParseCategory(t.get(row, "Category")),
		Taken:           parseBool(t.get(row, "Taken")),
		TakenBy:         t.get(row, "TakenBy"),
		QuantityNeeded:  parseInt(t.get(row, "QuantityNeeded"), 1),
		QuantityBrought: parseInt(t.get(row, "QuantityBrought"), 0),
	}
}

func parseSignup(t *table, row []string) models.Signup {
	return models.Signup{
		Name:      t.get(row, "Name"),
		Email:     t.get(row, "Email"),
		Item:      t.get(row, "Item"),
		Category:  models.ParseCategory(t.get(row, "Category")),
		Quantity:  parseInt(t.get(row, "Quantity"), 1),
		Timestamp: t.get(row, "Timestamp"),
	}
}

func (s *Store) ListSignups(ctx context.Context) ([]models.Signup, error) {
	t, err := loadTable(ctx, s.client, SignupsTab)
	if err != nil {
		return nil, err
	}

	signups := []models.Signup{}
	for _, row := range t.rows {
		if blank(row) {
			continue
		}
		signups = append(signups, parseSignup(t, row))
	}
	return signups, nil
}

func (s *Store) AddSignup(ctx context.Context, su models.Signup) error {
	t, err := loadTable(ctx, s.client, SignupsTab)
	if err != nil {
		return err
	}

	row := t.record(map[string]string{
		"Name":      su.Name,
		"Email":     su.Email,
		"Item":      su.Item,
		"Category":  string(su.Category),
		"Quantity":  strconv.Itoa(su.Quantity),
		"Timestamp": su.Timestamp,
	})
	return s.client.AppendRows(ctx, SignupsTab, [][]string{row})
}

func (s *Store) ListNeededItems(ctx context.Context) ([]models.NeededItem, error) {
	t, err := loadTable(ctx, s.client, NeededItemsTab)
	if err != nil {
		return nil, err
	}

	items := []models.NeededItem{}
	for _, row := range t.rows {
		if blank(row) || t.get(row, "Item") == "" {
			continue
		}
		items = append(items, parseNeededItem(t, row))
	}
	return items, nil
}

// findItem returns the data row index of an item, or -1
func findItem(t *table, name string) int {
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		if models.SameItem(t.get(row, "Item"), name) {
			return i
		}
	}
	return -1
}

func (s *Store) GetNeededItem(ctx context.Context, name string) (models.NeededItem, error) {
	t, err := loadTable(ctx, s.client, NeededItemsTab)
	if err != nil {
		return models.NeededItem{}, err
	}

	i := findItem(t, name)
	if i < 0 {
		return models.NeededItem{}, store.ErrNotFound
	}
	return parseNeededItem(t, t.rows[i]), nil
}

func (s *Store) AddNeededItem(ctx context.Context, item models.NeededItem) error {
	t, err := loadTable(ctx, s.client, NeededItemsTab)
	if err != nil {
		return err
	}
	if findItem(t, item.Item) >= 0 {
		return store.ErrDuplicate
	}

	return s.client.AppendRows(ctx, NeededItemsTab, [][]string{neededItemRow(t, nil, item)})
}

func (s *Store) UpdateNeededItem(ctx context.Context, item models.NeededItem) error {
	t, err := loadTable(ctx, s.client, NeededItemsTab)
	if err != nil {
		return err
	}

	i := findItem(t, item.Item)
	if i < 0 {
		return store.ErrNotFound
	}

	// The stored spelling of the name is kept
	item.Item = t.get(t.rows[i], "Item")
	row := append([]string{}, t.rows[i]...)
	return s.client.WriteRow(ctx, NeededItemsTab, i+1, neededItemRow(t, row, item))
}

func (s *Store) RemoveNeededItem(ctx context.Context, name string) error {
	t, err := loadTable(ctx, s.client, NeededItemsTab)
	if err != nil {
		return err
	}

	i := findItem(t, name)
	if i < 0 {
		return store.ErrNotFound
	}

	tabs, err := s.client.Tabs(ctx)
	if err != nil {
		return err
	}
	tab, ok := findTab(tabs, NeededItemsTab)
	if !ok {
		return fmt.Errorf("tab %s not found", NeededItemsTab)
	}
	return s.client.DeleteRow(ctx, tab, i+1)
}

// Ping checks that both tabs exist
func (s *Store) Ping(ctx context.Context) error {
	tabs, err := s.client.Tabs(ctx)
	if err != nil {
		return err
	}
	for _, title := range []string{SignupsTab, NeededItemsTab} {
		if _, ok := findTab(tabs, title); !ok {
			return fmt.Errorf("tab %s not found", title)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"fmt"
	"strings"
)

// Tab titles
const (
	SignupsTab     = "Signups"
	NeededItemsTab = "NeededItems"
)

// Canonical column sets, in the order new tabs are created with
var (
	SignupColumns     = []string{"Name", "Email", "Item", "Category", "Quantity", "Timestamp"}
	NeededItemColumns = []string{"Item", "Category", "Taken", "TakenBy", "QuantityNeeded", "QuantityBrought"}
)

// columnDefaults are backfilled into rows written before a column existed
var columnDefaults = map[string]map[string]string{
	SignupsTab: {
		"Category": "other",
		"Quantity": "1",
	},
	NeededItemsTab: {
		"Category":        "other",
		"Taken":           "FALSE",
		"QuantityNeeded":  "1",
		"QuantityBrought": "0",
	},
}

// table is a header-keyed snapshot of one tab
type table struct {
	title  string
	header []string
	index  map[string]int
	rows   [][]string // rows[i] is sheet row i+1
}

func loadTable(ctx context.Context, c Client, title string) (*table, error) {
	all, err := c.ReadRows(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("tab %s has no header row", title)
	}
	return newTable(title, all[0], all[1:]), nil
}

func newTable(title string, header []string, rows [][]string) *table {
	t := &table{
		title:  title,
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
		rows:   rows,
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.header[i] = h
		if _, dup := t.index[h]; !dup && h != "" {
			t.index[h] = i
		}
	}
	return t
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// get returns the cell of a row, or "" when the column or cell is absent
func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// set writes a cell, padding the row to the header width
func (t *table) set(row []string, col, value string) []string {
	i, ok := t.index[col]
	if !ok {
		return row
	}
	for len(row) < len(t.header) {
		row = append(row, "")
	}
	row[i] = value
	return row
}

// record builds a full row in header order from column values
func (t *table) record(values map[string]string) []string {
	row := make([]string, len(t.header))
	for col, v := range values {
		row = t.set(row, col, v)
	}
	return row
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func findTab(tabs []Tab, title string) (Tab, bool) {
	for _, tab := range tabs {
		if tab.Title == title {
			return tab, true
		}
	}
	return Tab{}, false
}

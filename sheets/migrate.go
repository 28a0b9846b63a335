// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"fmt"
	"log/slog"
)

// MigrationReport summarizes what Migrate changed
type MigrationReport struct {
	CreatedTabs  []string
	AddedColumns map[string][]string
	Backfilled   int
	Seeded       int
}

// Migrate brings the spreadsheet to the current shape. Missing tabs are
// created with their headers; missing columns are appended to existing tabs
// and every existing row gets the column default. Run once at startup.
func Migrate(ctx context.Context, c Client, seed bool) (MigrationReport, error) {
	report := MigrationReport{AddedColumns: map[string][]string{}}

	tabs, err := c.Tabs(ctx)
	if err != nil {
		return report, err
	}

	for _, want := range []struct {
		title   string
		columns []string
	}{
		{SignupsTab, SignupColumns},
		{NeededItemsTab, NeededItemColumns},
	} {
		tab, ok := findTab(tabs, want.title)
		if !ok {
			if err := createTab(ctx, c, want.title, want.columns); err != nil {
				return report, err
			}
			report.CreatedTabs = append(report.CreatedTabs, want.title)
			slog.Info("spreadsheet tab created", "tab", want.title)

			if want.title == NeededItemsTab && seed {
				n, err := seedNeededItems(ctx, c)
				if err != nil {
					return report, err
				}
				report.Seeded = n
			}
			continue
		}

		added, backfilled, err := upgradeTab(ctx, c, tab, want.columns)
		if err != nil {
			return report, err
		}
		if len(added) > 0 {
			report.AddedColumns[want.title] = added
			report.Backfilled += backfilled
			slog.Info("spreadsheet columns added", "tab", want.title, "columns", added, "rows", backfilled)
		}
	}

	return report, nil
}

func createTab(ctx context.Context, c Client, title string, columns []string) error {
	if _, err := c.AddTab(ctx, title, len(columns)); err != nil {
		return err
	}
	if err := c.WriteRow(ctx, title, 0, columns); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", title, err)
	}
	return nil
}

func seedNeededItems(ctx context.Context, c Client) (int, error) {
	t := newTable(NeededItemsTab, NeededItemColumns, nil)

	var rows [][]string
	for _, item := range defaultItems() {
		rows = append(rows, neededItemRow(t, nil, item))
	}
	if err := c.AppendRows(ctx, NeededItemsTab, rows); err != nil {
		return 0, fmt.Errorf("failed to seed needed items: %w", err)
	}
	return len(rows), nil
}

// upgradeTab appends missing canonical columns and backfills their defaults
func upgradeTab(ctx context.Context, c Client, tab Tab, columns []string) ([]string, int, error) {
	all, err := c.ReadRows(ctx, tab.Title)
	if err != nil {
		return nil, 0, err
	}

	var header []string
	var rows [][]string
	if len(all) > 0 {
		header, rows = all[0], all[1:]
	}
	t := newTable(tab.Title, header, rows)

	var missing []string
	for _, col := range columns {
		if !t.has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil, 0, nil
	}

	// Blank trailing header cells are dropped so new columns line up
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}
	newHeader := append(append([]string{}, header...), missing...)
	if len(newHeader) > tab.Columns {
		if err := c.ResizeColumns(ctx, tab, len(newHeader)); err != nil {
			return nil, 0, err
		}
	}
	if err := c.WriteRow(ctx, tab.Title, 0, newHeader); err != nil {
		return nil, 0, fmt.Errorf("failed to update header of %s: %w", tab.Title, err)
	}

	upgraded := newTable(tab.Title, newHeader, rows)
	defaults := columnDefaults[tab.Title]
	backfilled := 0
	for i, row := range rows {
		if blank(row) {
			continue
		}
		for _, col := range missing {
			row = upgraded.set(row, col, defaults[col])
		}
		if err := c.WriteRow(ctx, tab.Title, i+1, row); err != nil {
			return missing, backfilled, fmt.Errorf("failed to backfill row %d of %s: %w", i+1, tab.Title, err)
		}
		backfilled++
	}

	return missing, backfilled, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/danielhkuo/bonfire/auth"
)

// Tab is one worksheet of the spreadsheet
type Tab struct {
	ID      int64
	Title   string
	Columns int
}

// Client is the row-level gateway to a remote spreadsheet.
// Row indexes are zero-based sheet rows; row 0 is the header.
type Client interface {
	Tabs(ctx context.Context) ([]Tab, error)
	AddTab(ctx context.Context, title string, columns int) (Tab, error)
	ResizeColumns(ctx context.Context, tab Tab, columns int) error
	ReadRows(ctx context.Context, title string) ([][]string, error)
	AppendRows(ctx context.Context, title string, rows [][]string) error
	WriteRow(ctx context.Context, title string, index int, row []string) error
	DeleteRow(ctx context.Context, tab Tab, index int) error
}

type googleClient struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewGoogleClient authenticates with the service account and opens the
// spreadsheet by identifier. Extra options (endpoint, HTTP client) are
// appended after the credential.
func NewGoogleClient(ctx context.Context, spreadsheetID string, sa auth.ServiceAccount, opts ...option.ClientOption) (Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	ts, err := sa.TokenSource(ctx, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account: %w", err)
	}

	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &googleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *googleClient) Tabs(ctx context.Context) ([]Tab, error) {
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to load spreadsheet: %w", err)
	}

	tabs := make([]Tab, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		tabs = append(tabs, tabFromProperties(sh.Properties))
	}
	return tabs, nil
}

func (c *googleClient) AddTab(ctx context.Context, title string, columns int) (Tab, error) {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    1000,
						ColumnCount: int64(columns),
					},
				},
			},
		}},
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return Tab{}, fmt.Errorf("failed to add tab %s: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return Tab{}, fmt.Errorf("add tab %s: empty reply", title)
	}
	return tabFromProperties(resp.Replies[0].AddSheet.Properties), nil
}

func (c *googleClient) ResizeColumns(ctx context.Context, tab Tab, columns int) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			UpdateSheetProperties: &gsheets.UpdateSheetPropertiesRequest{
				Properties: &gsheets.SheetProperties{
					SheetId: tab.ID,
					GridProperties: &gsheets.GridProperties{
						ColumnCount: int64(columns),
					},
					// The first tab has ID 0, which omitempty would drop
					ForceSendFields: []string{"SheetId"},
				},
				Fields: "gridProperties.columnCount",
			},
		}},
	}

	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to resize tab %s: %w", tab.Title, err)
	}
	return nil
}

func (c *googleClient) ReadRows(ctx context.Context, title string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1(title, "")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %s: %w", title, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, v := range raw {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (c *googleClient) AppendRows(ctx context.Context, title string, rows [][]string) error {
	vr := &gsheets.ValueRange{Values: toValues(rows)}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1(title, "A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to tab %s: %w", title, err)
	}
	return nil
}

func (c *googleClient) WriteRow(ctx context.Context, title string, index int, row []string) error {
	cell := fmt.Sprintf("A%d", index+1)
	vr := &gsheets.ValueRange{Values: toValues([][]string{row})}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1(title, cell), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write row %d of tab %s: %w", index, title, err)
	}
	return nil
}

func (c *googleClient) DeleteRow(ctx context.Context, tab Tab, index int) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:         tab.ID,
					Dimension:       "ROWS",
					StartIndex:      int64(index),
					EndIndex:        int64(index + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}

	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d of tab %s: %w", index, tab.Title, err)
	}
	return nil
}

func tabFromProperties(p *gsheets.SheetProperties) Tab {
	tab := Tab{ID: p.SheetId, Title: p.Title}
	if p.GridProperties != nil {
		tab.Columns = int(p.GridProperties.ColumnCount)
	}
	return tab
}

// a1 builds an A1 range with the tab title quoted
func a1(title, cell string) string {
	quoted := "'" + strings.ReplaceAll(title, "'", "''") + "'"
	if cell == "" {
		return quoted
	}
	return quoted + "!" + cell
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		values[i] = vals
	}
	return values
}

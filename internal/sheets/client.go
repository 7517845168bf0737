package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API for a single spreadsheet. It is
// constructed once at process start and injected into the legacy source;
// there is no package-level singleton.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

var _ ValuesGetter = (*Client)(nil)

// NewClient builds a read-only Sheets client. credentialsFile may be empty,
// in which case application default credentials are used.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	opts := []option.ClientOption{
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Values fetches a range and flattens every cell to its string form.
func (c *Client) Values(ctx context.Context, readRange string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get range %q: %w", readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

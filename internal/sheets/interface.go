package sheets

import "context"

// ValuesGetter fetches the cell values of a spreadsheet range. It abstracts
// the Google Sheets API so the legacy ranking source can be tested without
// network access.
type ValuesGetter interface {
	Values(ctx context.Context, readRange string) ([][]string, error)
}

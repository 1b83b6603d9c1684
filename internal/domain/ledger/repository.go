package ledger

import "context"

// RowStore is the remote ledger-row contract the core consumes. The store is
// an external collaborator; every call can fail with a network or server
// error and callers decide whether that degrades (reads) or surfaces
// (writes).
type RowStore interface {
	// FetchRows returns all persisted rows for a date, oldest first.
	FetchRows(ctx context.Context, date string) ([]*Row, error)

	// SaveRow upserts one row: creates when the ID is nil, updates
	// otherwise. Returns the stored row including its assigned ID.
	SaveRow(ctx context.Context, row *Row) (*Row, error)

	// DistinctDates returns every date with at least one stored row,
	// sorted ascending.
	DistinctDates(ctx context.Context) ([]string, error)
}

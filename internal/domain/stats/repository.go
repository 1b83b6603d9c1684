package stats

import "context"

// Store is the remote statistics contract. One record per date.
type Store interface {
	// FetchByDate returns the stored record for a date, or nil when no
	// record exists yet.
	FetchByDate(ctx context.Context, date string) (*Daily, error)

	// Create stores a new record; the store assigns its ID.
	Create(ctx context.Context, record *Daily) error

	// Update replaces the record with the given ID.
	Update(ctx context.Context, id int64, record *Daily) error
}

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/frontoffice-ledger/internal/domain/stats"
)

// StatsStore implements stats.Store against the remote REST API.
type StatsStore struct {
	c *Client
}

// NewStatsStore creates a stats store backed by the given client.
func NewStatsStore(c *Client) *StatsStore {
	return &StatsStore{c: c}
}

// FetchByDate returns the stored record for a date, or nil when none exists.
// The remote endpoint answers with a list of zero or one records.
func (s *StatsStore) FetchByDate(ctx context.Context, date string) (*stats.Daily, error) {
	var records []*stats.Daily
	query := url.Values{"date": []string{date}}
	if err := s.c.get(ctx, "/ledger_stats/", query, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Create stores a new record for its date.
func (s *StatsStore) Create(ctx context.Context, record *stats.Daily) error {
	return s.c.send(ctx, http.MethodPost, "/ledger_stats/", record, nil)
}

// Update replaces the record with the given ID.
func (s *StatsStore) Update(ctx context.Context, id int64, record *stats.Daily) error {
	path := fmt.Sprintf("/ledger_stats/%d/", id)
	return s.c.send(ctx, http.MethodPut, path, record, nil)
}

var _ stats.Store = (*StatsStore)(nil)

package remote

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"github.com/frontoffice-ledger/internal/domain/ledger"
)

// RowStore implements ledger.RowStore against the remote REST API.
type RowStore struct {
	c *Client
}

// NewRowStore creates a row store backed by the given client.
func NewRowStore(c *Client) *RowStore {
	return &RowStore{c: c}
}

// rowPayload is the wire shape of a ledger row. The derived figures are
// included on save because the store schema carries them as plain columns;
// they are recomputed from the editable fields before every save and ignored
// on read.
type rowPayload struct {
	ID        *int64 `json:"id"`
	Date      string `json:"date"`
	Folio     string `json:"folio"`
	GuestName string `json:"guest_name"`
	Pax       int    `json:"pax"`
	ledger.Amounts

	TotalCharge           float64 `json:"total_charge"`
	BalanceCarriedForward float64 `json:"balance_carried_forward"`
}

func toPayload(row *ledger.Row) rowPayload {
	return rowPayload{
		ID:        row.ID,
		Date:      row.Date,
		Folio:     row.Folio,
		GuestName: row.GuestName,
		Pax:       row.Pax,
		Amounts:   row.Amounts,

		TotalCharge:           row.TotalCharge(),
		BalanceCarriedForward: row.BalanceCarriedForward(),
	}
}

func (p rowPayload) toRow() *ledger.Row {
	row := ledger.NewRow(p.Date)
	row.ID = p.ID
	row.Folio = p.Folio
	row.GuestName = p.GuestName
	row.Pax = p.Pax
	row.Amounts = p.Amounts
	row.SaveStatus = ledger.SaveStatusSaved
	return row
}

// FetchRows returns all persisted rows for a date, positioned 1..n.
func (s *RowStore) FetchRows(ctx context.Context, date string) ([]*ledger.Row, error) {
	var payloads []rowPayload
	query := url.Values{"date": []string{date}}
	if err := s.c.get(ctx, "/ledger/", query, &payloads); err != nil {
		return nil, err
	}

	rows := make([]*ledger.Row, 0, len(payloads))
	for _, p := range payloads {
		rows = append(rows, p.toRow())
	}
	ledger.Renumber(rows)
	return rows, nil
}

// SaveRow upserts one row and returns the stored version with its ID.
func (s *RowStore) SaveRow(ctx context.Context, row *ledger.Row) (*ledger.Row, error) {
	var stored rowPayload
	if err := s.c.send(ctx, http.MethodPost, "/ledger/", toPayload(row), &stored); err != nil {
		return nil, err
	}
	saved := stored.toRow()
	saved.Position = row.Position
	return saved, nil
}

// DistinctDates returns every date with stored rows, normalized, deduplicated
// and sorted ascending. Dates the store returns in an unexpected shape are
// skipped rather than failing the whole load.
func (s *RowStore) DistinctDates(ctx context.Context) ([]string, error) {
	var raw []string
	if err := s.c.get(ctx, "/ledger_dates/", nil, &raw); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	dates := make([]string, 0, len(raw))
	for _, r := range raw {
		date, err := ledger.NormalizeDate(r)
		if err != nil {
			s.c.logger.Warn("skipping unparseable ledger date", "value", r, "error", err)
			continue
		}
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates, nil
}

var _ ledger.RowStore = (*RowStore)(nil)

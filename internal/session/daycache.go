package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frontoffice-ledger/internal/domain/ledger"
)

// ErrDateNotLoaded indicates an edit against a date the session has not
// opened yet.
var ErrDateNotLoaded = errors.New("date not loaded in session")

// DayCache is the lazily populated map from date to that day's rows and cash
// account. It is owned by one Session and never shared.
type DayCache struct {
	logger *slog.Logger
	store  ledger.RowStore
	rows   map[string][]*ledger.Row
	cash   map[string]*ledger.CashAccount
}

// NewDayCache creates an empty cache reading through to the given store.
func NewDayCache(logger *slog.Logger, store ledger.RowStore) *DayCache {
	return &DayCache{
		logger: logger,
		store:  store,
		rows:   make(map[string][]*ledger.Row),
		cash:   make(map[string]*ledger.CashAccount),
	}
}

// EnsureDate returns the rows for a date, populating the cache on first
// access. Resolution order: already cached, then remotely persisted rows,
// then carry-forward seeds from the previous date's rows, then a single
// blank row. A remote fetch failure counts as "no persisted rows" so the
// session stays usable while the backend is unreachable; the next navigation
// to an unvisited date simply retries.
//
// Reading the previous date may populate its cache entry as a side effect.
func (c *DayCache) EnsureDate(ctx context.Context, date, previous string) []*ledger.Row {
	if rows, ok := c.rows[date]; ok && len(rows) > 0 {
		return rows
	}

	rows := c.fetch(ctx, date)
	if len(rows) == 0 && previous != "" {
		prevRows, ok := c.rows[previous]
		if !ok || len(prevRows) == 0 {
			prevRows = c.fetch(ctx, previous)
			if len(prevRows) == 0 {
				prevRows = []*ledger.Row{ledger.NewRow(previous)}
			}
			ledger.Renumber(prevRows)
			c.rows[previous] = prevRows
			c.ensureCash(previous)
		}
		rows = ledger.CarryForward(date, prevRows)
	}
	if len(rows) == 0 {
		rows = []*ledger.Row{ledger.NewRow(date)}
	}

	ledger.Renumber(rows)
	c.rows[date] = rows
	c.ensureCash(date)
	return rows
}

// fetch reads persisted rows, degrading a failure to an empty result.
func (c *DayCache) fetch(ctx context.Context, date string) []*ledger.Row {
	rows, err := c.store.FetchRows(ctx, date)
	if err != nil {
		c.logger.Warn("failed to fetch rows, treating date as empty", "date", date, "error", err)
		return nil
	}
	return rows
}

// Rows returns the cached rows for a date, or nil when not loaded.
func (c *DayCache) Rows(date string) []*ledger.Row {
	return c.rows[date]
}

// Cash returns the cash account for a loaded date.
func (c *DayCache) Cash(date string) (*ledger.CashAccount, error) {
	if _, ok := c.rows[date]; !ok {
		return nil, ErrDateNotLoaded
	}
	return c.ensureCash(date), nil
}

func (c *DayCache) ensureCash(date string) *ledger.CashAccount {
	if ca, ok := c.cash[date]; ok {
		return ca
	}
	ca := ledger.NewCashAccount(date)
	c.cash[date] = ca
	return ca
}

// AddRow appends a blank row to a loaded date.
func (c *DayCache) AddRow(date string) (*ledger.Row, error) {
	rows, ok := c.rows[date]
	if !ok {
		return nil, ErrDateNotLoaded
	}
	row := ledger.NewRow(date)
	rows = append(rows, row)
	ledger.Renumber(rows)
	c.rows[date] = rows
	return row, nil
}

// Row returns the row at a 1-based position within a loaded date.
func (c *DayCache) Row(date string, position int) (*ledger.Row, error) {
	rows, ok := c.rows[date]
	if !ok {
		return nil, ErrDateNotLoaded
	}
	if position < 1 || position > len(rows) {
		return nil, ledger.ErrNoSuchRow
	}
	return rows[position-1], nil
}

// RemoveRow deletes the row at a 1-based position. Rows the remote store has
// already assigned an ID are part of the historical record and cannot be
// removed.
func (c *DayCache) RemoveRow(date string, position int) error {
	row, err := c.Row(date, position)
	if err != nil {
		return err
	}
	if row.Persisted() {
		return ledger.ErrRowLocked
	}

	rows := c.rows[date]
	rows = append(rows[:position-1], rows[position:]...)
	if len(rows) == 0 {
		rows = []*ledger.Row{ledger.NewRow(date)}
	}
	ledger.Renumber(rows)
	c.rows[date] = rows
	return nil
}

// RetainOnly drops every cached date except the given one.
func (c *DayCache) RetainOnly(date string) {
	for d := range c.rows {
		if d != date {
			delete(c.rows, d)
		}
	}
	for d := range c.cash {
		if d != date {
			delete(c.cash, d)
		}
	}
}

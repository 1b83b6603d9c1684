package session

import (
	"context"
	"io"
	"log/slog"

	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/domain/stats"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockRowStore mocks ledger.RowStore
type MockRowStore struct {
	mock.Mock
}

func (m *MockRowStore) FetchRows(ctx context.Context, date string) ([]*ledger.Row, error) {
	args := m.Called(ctx, date)
	if rows := args.Get(0); rows != nil {
		return rows.([]*ledger.Row), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRowStore) SaveRow(ctx context.Context, row *ledger.Row) (*ledger.Row, error) {
	args := m.Called(ctx, row)
	if stored := args.Get(0); stored != nil {
		return stored.(*ledger.Row), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRowStore) DistinctDates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if dates := args.Get(0); dates != nil {
		return dates.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockStatsStore mocks stats.Store
type MockStatsStore struct {
	mock.Mock
}

func (m *MockStatsStore) FetchByDate(ctx context.Context, date string) (*stats.Daily, error) {
	args := m.Called(ctx, date)
	if record := args.Get(0); record != nil {
		return record.(*stats.Daily), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatsStore) Create(ctx context.Context, record *stats.Daily) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStatsStore) Update(ctx context.Context, id int64, record *stats.Daily) error {
	args := m.Called(ctx, id, record)
	return args.Error(0)
}

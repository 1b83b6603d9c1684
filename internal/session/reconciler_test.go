package session

import (
	"context"
	"errors"
	"testing"

	"github.com/frontoffice-ledger/internal/config"
	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testReconcileConfig() *config.ReconcileConfig {
	return &config.ReconcileConfig{WorkerPoolSize: 2, MaxRangeDays: 10}
}

func TestReconciler_Reconcile_CreatesWhenAbsent(t *testing.T) {
	rowStore := new(MockRowStore)
	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-02").Return(nil, nil).Once()
	statsStore.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	rowTotals := ledger.DayTotals{TotalCharge: 100}
	err := r.Reconcile(context.Background(), "2026-03-02", rowTotals, ledger.DayTotals{}, 100)
	require.NoError(t, err)

	statsStore.AssertExpectations(t)
	created := statsStore.Calls[1].Arguments.Get(1).(*stats.Daily)
	assert.Equal(t, "2026-03-02", created.Date)
	assert.InDelta(t, 100.0, created.TotalCharge, 1e-9)
}

func TestReconciler_Reconcile_UpdatesWhenChanged(t *testing.T) {
	id := int64(5)
	existing := &stats.Daily{ID: &id, Date: "2026-03-02", TotalCharge: 50}

	rowStore := new(MockRowStore)
	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-02").Return(existing, nil).Once()
	statsStore.On("Update", mock.Anything, int64(5), mock.Anything).Return(nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	rowTotals := ledger.DayTotals{TotalCharge: 100}
	require.NoError(t, r.Reconcile(context.Background(), "2026-03-02", rowTotals, ledger.DayTotals{}, 100))
	statsStore.AssertExpectations(t)
}

func TestReconciler_Reconcile_SkipsWhenUnchanged(t *testing.T) {
	rowTotals := ledger.DayTotals{TotalCharge: 100, BalanceCarriedForward: 100}
	id := int64(5)
	existing := stats.NewDaily("2026-03-02", rowTotals, ledger.DayTotals{}, 100)
	existing.ID = &id

	rowStore := new(MockRowStore)
	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-02").Return(existing, nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	require.NoError(t, r.Reconcile(context.Background(), "2026-03-02", rowTotals, ledger.DayTotals{}, 100))
	statsStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	statsStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconciler_Reconcile_FetchFailureSurfaced(t *testing.T) {
	rowStore := new(MockRowStore)
	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, mock.Anything).
		Return(nil, errors.New("remote down")).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	err := r.Reconcile(context.Background(), "2026-03-02", ledger.DayTotals{}, ledger.DayTotals{}, 0)
	assert.Error(t, err)
}

func TestReconciler_ReconcileRange_InvalidRange(t *testing.T) {
	r := NewReconciler(testLogger(), new(MockRowStore), new(MockStatsStore), testReconcileConfig())

	tests := []struct {
		name     string
		from, to string
	}{
		{"ReversedRange", "2026-03-05", "2026-03-01"},
		{"BadFromDate", "garbage", "2026-03-01"},
		{"BadToDate", "2026-03-01", "garbage"},
		{"ExceedsLimit", "2026-01-01", "2026-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written, err := r.ReconcileRange(context.Background(), tt.from, tt.to)
			assert.ErrorIs(t, err, ErrInvalidRange)
			assert.Zero(t, written)
		})
	}
}

func TestReconciler_ReconcileRange_WritesOnlyChangedDates(t *testing.T) {
	row := ledger.NewRow("2026-03-01")
	row.GuestName = "SMITH"
	row.Accommodation = 100

	rowStore := new(MockRowStore)
	rowStore.On("FetchRows", mock.Anything, "2026-03-01").Return([]*ledger.Row{row}, nil).Once()
	// No stored rows: the date is skipped without touching the stats store.
	rowStore.On("FetchRows", mock.Anything, "2026-03-02").Return(nil, nil).Once()

	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-01").Return(nil, nil).Once()
	statsStore.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	written, err := r.ReconcileRange(context.Background(), "2026-03-01", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	rowStore.AssertExpectations(t)
	statsStore.AssertExpectations(t)
}

func TestReconciler_ReconcileRange_PreservesCashFigures(t *testing.T) {
	row := ledger.NewRow("2026-03-01")
	row.GuestName = "SMITH"
	row.Accommodation = 120

	id := int64(3)
	existing := &stats.Daily{ID: &id, Date: "2026-03-01", TotalCharge: 50, CashBar: 40, CashTotalCharge: 40}

	rowStore := new(MockRowStore)
	rowStore.On("FetchRows", mock.Anything, "2026-03-01").Return([]*ledger.Row{row}, nil).Once()

	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-01").Return(existing, nil).Once()
	statsStore.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(d *stats.Daily) bool {
		return d.CashBar == 40 && d.CashTotalCharge == 40 && d.TotalCharge == 120
	})).Return(nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	written, err := r.ReconcileRange(context.Background(), "2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	statsStore.AssertExpectations(t)
}

func TestReconciler_ReconcileRange_IdempotentSecondPass(t *testing.T) {
	row := ledger.NewRow("2026-03-01")
	row.GuestName = "SMITH"
	row.Accommodation = 100

	rowTotals := ledger.SumRows([]*ledger.Row{row})
	id := int64(3)
	stored := stats.NewDaily("2026-03-01", rowTotals, ledger.DayTotals{}, rowTotals.DebtorsInResidence())
	stored.ID = &id

	rowStore := new(MockRowStore)
	rowStore.On("FetchRows", mock.Anything, "2026-03-01").Return([]*ledger.Row{row}, nil).Once()

	statsStore := new(MockStatsStore)
	statsStore.On("FetchByDate", mock.Anything, "2026-03-01").Return(stored, nil).Once()

	r := NewReconciler(testLogger(), rowStore, statsStore, testReconcileConfig())

	written, err := r.ReconcileRange(context.Background(), "2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.Zero(t, written)
	statsStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	statsStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReconciler_ReconcileRange_CollectsFailures(t *testing.T) {
	rowStore := new(MockRowStore)
	rowStore.On("FetchRows", mock.Anything, "2026-03-01").
		Return(nil, errors.New("remote down")).Once()
	rowStore.On("FetchRows", mock.Anything, "2026-03-02").Return(nil, nil).Once()

	r := NewReconciler(testLogger(), rowStore, new(MockStatsStore), testReconcileConfig())

	written, err := r.ReconcileRange(context.Background(), "2026-03-01", "2026-03-02")
	assert.Error(t, err)
	assert.Zero(t, written)
}

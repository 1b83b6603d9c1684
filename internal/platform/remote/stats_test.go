package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/frontoffice-ledger/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsStore_FetchByDate(t *testing.T) {
	store := NewStatsStore(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ledger_stats/", r.URL.Path)
		assert.Equal(t, "2026-03-02", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 9, "date": "2026-03-02", "total_charge": 230, "cash_bar": 40, "debtors_in_res": 150}]`))
	})))

	record, err := store.FetchByDate(context.Background(), "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NotNil(t, record.ID)
	assert.Equal(t, int64(9), *record.ID)
	assert.InDelta(t, 230.0, record.TotalCharge, 1e-9)
	assert.InDelta(t, 40.0, record.CashBar, 1e-9)
	assert.InDelta(t, 150.0, record.DebtorsInResidence, 1e-9)
}

func TestStatsStore_FetchByDate_Absent(t *testing.T) {
	store := NewStatsStore(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})))

	record, err := store.FetchByDate(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestStatsStore_Create(t *testing.T) {
	var received map[string]any
	store := NewStatsStore(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ledger_stats/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	})))

	record := &stats.Daily{Date: "2026-03-02", TotalCharge: 230}
	require.NoError(t, store.Create(context.Background(), record))
	assert.Equal(t, "2026-03-02", received["date"])
	assert.InDelta(t, 230.0, received["total_charge"].(float64), 1e-9)
}

func TestStatsStore_Update(t *testing.T) {
	store := NewStatsStore(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ledger_stats/9/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})))

	require.NoError(t, store.Update(context.Background(), 9, &stats.Daily{Date: "2026-03-02"}))
}

func TestStatsStore_Update_RemoteError(t *testing.T) {
	store := NewStatsStore(testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})))

	err := store.Update(context.Background(), 9, &stats.Daily{Date: "2026-03-02"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
}

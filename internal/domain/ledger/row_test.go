package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmounts_DerivedFigures(t *testing.T) {
	a := Amounts{
		BalanceBroughtForward: 50,
		Accommodation:         100,
		Food:                  20,
		Bar:                   5,
		Laundry:               3,
		Pool:                  2,
		RoomHire:              10,
		Other:                 1,
		USDSwipe:              60,
		EcoCash:               10,
		ZigSwipe:              5,
		Cash:                  20,
		TransferLedger:        4,
		BankTransfer:          1,
	}

	assert.InDelta(t, 141.0, a.TotalCharge(), 1e-9)
	assert.InDelta(t, 100.0, a.TotalPayments(), 1e-9)
	// 141 + 50 - 100
	assert.InDelta(t, 91.0, a.BalanceCarriedForward(), 1e-9)
}

func TestAmounts_ZeroValue(t *testing.T) {
	var a Amounts
	assert.Zero(t, a.TotalCharge())
	assert.Zero(t, a.TotalPayments())
	assert.Zero(t, a.BalanceCarriedForward())
}

func TestAmounts_NegativeCorrection(t *testing.T) {
	a := Amounts{Accommodation: 100, Other: -30, Cash: 50}
	assert.InDelta(t, 70.0, a.TotalCharge(), 1e-9)
	assert.InDelta(t, 20.0, a.BalanceCarriedForward(), 1e-9)
}

func TestNewRow(t *testing.T) {
	row := NewRow("2026-03-01")

	assert.Equal(t, "2026-03-01", row.Date)
	assert.Equal(t, SaveStatusNew, row.SaveStatus)
	assert.Nil(t, row.ID)
	assert.False(t, row.Persisted())
}

func TestRow_Validate(t *testing.T) {
	row := NewRow("2026-03-01")
	row.Pax = 2
	require.NoError(t, row.Validate())

	row.Pax = -1
	assert.ErrorIs(t, row.Validate(), ErrNegativePax)
}

func TestRenumber(t *testing.T) {
	rows := []*Row{NewRow("2026-03-01"), NewRow("2026-03-01"), NewRow("2026-03-01")}
	Renumber(rows)

	for i, r := range rows {
		assert.Equal(t, i+1, r.Position)
	}
}

func TestSumRows(t *testing.T) {
	a := NewRow("2026-03-01")
	a.Amounts = Amounts{Accommodation: 100, Food: 20, Cash: 40, BalanceBroughtForward: 10}
	b := NewRow("2026-03-01")
	b.Amounts = Amounts{Accommodation: 80, Bar: 15, USDSwipe: 95}

	totals := SumRows([]*Row{a, b})

	assert.InDelta(t, 180.0, totals.Amounts.Accommodation, 1e-9)
	assert.InDelta(t, 20.0, totals.Amounts.Food, 1e-9)
	assert.InDelta(t, 15.0, totals.Amounts.Bar, 1e-9)
	assert.InDelta(t, 10.0, totals.Amounts.BalanceBroughtForward, 1e-9)
	assert.InDelta(t, 215.0, totals.TotalCharge, 1e-9)
	// (120+10-40) + (95-95)
	assert.InDelta(t, 90.0, totals.BalanceCarriedForward, 1e-9)
}

func TestSumRows_Empty(t *testing.T) {
	totals := SumRows(nil)
	assert.Zero(t, totals.TotalCharge)
	assert.Zero(t, totals.BalanceCarriedForward)
}

func TestDayTotals_DebtorsInResidence(t *testing.T) {
	a := NewRow("2026-03-01")
	a.Amounts = Amounts{Accommodation: 200, Cash: 50}
	b := NewRow("2026-03-01")
	b.Amounts = Amounts{Food: 30, EcoCash: 30}

	totals := SumRows([]*Row{a, b})

	// 230 charged, 80 paid; the brought-forward balance plays no part.
	assert.InDelta(t, 150.0, totals.DebtorsInResidence(), 1e-9)
}

func TestCashAccount_Totals(t *testing.T) {
	ca := NewCashAccount("2026-03-01")
	ca.Amounts = Amounts{Bar: 25, Food: 10, Cash: 30}

	totals := ca.Totals()

	assert.InDelta(t, 35.0, totals.TotalCharge, 1e-9)
	assert.InDelta(t, 5.0, totals.BalanceCarriedForward, 1e-9)
	assert.InDelta(t, 25.0, totals.Amounts.Bar, 1e-9)
}

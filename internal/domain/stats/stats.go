// Package stats models the per-date aggregate record the ledger reconciles
// against the remote statistics store: one total_* figure per numeric column
// summed over the day's guest rows, one cash_* figure per column from the
// day's cash account, and the derived debtors-in-residence balance.
package stats

import (
	"math"

	"github.com/frontoffice-ledger/internal/domain/ledger"
)

// Daily is one date's aggregate record. Identity is the date, unique per
// record; the remote store assigns the ID on first creation.
type Daily struct {
	ID   *int64 `json:"id,omitempty"`
	Date string `json:"date"`

	TotalBalanceBroughtForward float64 `json:"total_balance_brought_forward"`
	TotalAccommodation         float64 `json:"total_accommodation"`
	TotalFood                  float64 `json:"total_food"`
	TotalBar                   float64 `json:"total_bar"`
	TotalLaundry               float64 `json:"total_laundry"`
	TotalPool                  float64 `json:"total_pool"`
	TotalRoomHire              float64 `json:"total_room_hire"`
	TotalOther                 float64 `json:"total_other"`
	TotalCharge                float64 `json:"total_charge"`
	TotalUSDSwipe              float64 `json:"total_usd_swipe"`
	TotalEcoCash               float64 `json:"total_eco_cash"`
	TotalZigSwipe              float64 `json:"total_zig_swipe"`
	TotalCash                  float64 `json:"total_cash"`
	TotalTransferLedger        float64 `json:"total_transfer_ledger"`
	TotalBankTransfer          float64 `json:"total_bank_transfer"`
	TotalBalanceCarriedForward float64 `json:"total_balance_carried_forward"`

	CashBalanceBroughtForward float64 `json:"cash_balance_brought_forward"`
	CashAccommodation         float64 `json:"cash_accommodation"`
	CashFood                  float64 `json:"cash_food"`
	CashBar                   float64 `json:"cash_bar"`
	CashLaundry               float64 `json:"cash_laundry"`
	CashPool                  float64 `json:"cash_pool"`
	CashRoomHire              float64 `json:"cash_room_hire"`
	CashOther                 float64 `json:"cash_other"`
	CashTotalCharge           float64 `json:"cash_total_charge"`
	CashUSDSwipe              float64 `json:"cash_usd_swipe"`
	CashEcoCash               float64 `json:"cash_eco_cash"`
	CashZigSwipe              float64 `json:"cash_zig_swipe"`
	CashCash                  float64 `json:"cash_cash"`
	CashTransferLedger        float64 `json:"cash_transfer_ledger"`
	CashBankTransfer          float64 `json:"cash_bank_transfer"`
	CashBalanceCarriedForward float64 `json:"cash_balance_carried_forward"`

	DebtorsInResidence float64 `json:"debtors_in_res"`
}

// NewDaily builds the candidate record for a date from the day's row totals,
// cash-account totals and debtors figure.
func NewDaily(date string, rowTotals, cashTotals ledger.DayTotals, debtorsInRes float64) *Daily {
	return &Daily{
		Date: date,

		TotalBalanceBroughtForward: rowTotals.Amounts.BalanceBroughtForward,
		TotalAccommodation:         rowTotals.Amounts.Accommodation,
		TotalFood:                  rowTotals.Amounts.Food,
		TotalBar:                   rowTotals.Amounts.Bar,
		TotalLaundry:               rowTotals.Amounts.Laundry,
		TotalPool:                  rowTotals.Amounts.Pool,
		TotalRoomHire:              rowTotals.Amounts.RoomHire,
		TotalOther:                 rowTotals.Amounts.Other,
		TotalCharge:                rowTotals.TotalCharge,
		TotalUSDSwipe:              rowTotals.Amounts.USDSwipe,
		TotalEcoCash:               rowTotals.Amounts.EcoCash,
		TotalZigSwipe:              rowTotals.Amounts.ZigSwipe,
		TotalCash:                  rowTotals.Amounts.Cash,
		TotalTransferLedger:        rowTotals.Amounts.TransferLedger,
		TotalBankTransfer:          rowTotals.Amounts.BankTransfer,
		TotalBalanceCarriedForward: rowTotals.BalanceCarriedForward,

		CashBalanceBroughtForward: cashTotals.Amounts.BalanceBroughtForward,
		CashAccommodation:         cashTotals.Amounts.Accommodation,
		CashFood:                  cashTotals.Amounts.Food,
		CashBar:                   cashTotals.Amounts.Bar,
		CashLaundry:               cashTotals.Amounts.Laundry,
		CashPool:                  cashTotals.Amounts.Pool,
		CashRoomHire:              cashTotals.Amounts.RoomHire,
		CashOther:                 cashTotals.Amounts.Other,
		CashTotalCharge:           cashTotals.TotalCharge,
		CashUSDSwipe:              cashTotals.Amounts.USDSwipe,
		CashEcoCash:               cashTotals.Amounts.EcoCash,
		CashZigSwipe:              cashTotals.Amounts.ZigSwipe,
		CashCash:                  cashTotals.Amounts.Cash,
		CashTransferLedger:        cashTotals.Amounts.TransferLedger,
		CashBankTransfer:          cashTotals.Amounts.BankTransfer,
		CashBalanceCarriedForward: cashTotals.BalanceCarriedForward,

		DebtorsInResidence: debtorsInRes,
	}
}

// CopyCashFields carries the cash_* figures of an existing record into the
// receiver. The cash account lives only in the editing session, so a backfill
// recomputing a past date from stored rows must not zero out the cash figures
// that were reconciled when the day was worked.
func (d *Daily) CopyCashFields(from *Daily) {
	d.CashBalanceBroughtForward = from.CashBalanceBroughtForward
	d.CashAccommodation = from.CashAccommodation
	d.CashFood = from.CashFood
	d.CashBar = from.CashBar
	d.CashLaundry = from.CashLaundry
	d.CashPool = from.CashPool
	d.CashRoomHire = from.CashRoomHire
	d.CashOther = from.CashOther
	d.CashTotalCharge = from.CashTotalCharge
	d.CashUSDSwipe = from.CashUSDSwipe
	d.CashEcoCash = from.CashEcoCash
	d.CashZigSwipe = from.CashZigSwipe
	d.CashCash = from.CashCash
	d.CashTransferLedger = from.CashTransferLedger
	d.CashBankTransfer = from.CashBankTransfer
	d.CashBalanceCarriedForward = from.CashBalanceCarriedForward
}

// tolerance absorbs float representation noise so re-reconciling unchanged
// totals does not count as a difference.
const tolerance = 1e-9

// NeedsWrite reports whether any numeric field of the candidate differs from
// the stored record. It is a pure comparison; the reconciler calls it to skip
// writes when nothing moved.
func NeedsWrite(existing, candidate *Daily) bool {
	if existing == nil {
		return true
	}
	a := existing.values()
	b := candidate.values()
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return true
		}
	}
	return false
}

// values lists every numeric field in a fixed order for comparison.
func (d *Daily) values() [33]float64 {
	return [33]float64{
		d.TotalBalanceBroughtForward, d.TotalAccommodation, d.TotalFood,
		d.TotalBar, d.TotalLaundry, d.TotalPool, d.TotalRoomHire,
		d.TotalOther, d.TotalCharge, d.TotalUSDSwipe, d.TotalEcoCash,
		d.TotalZigSwipe, d.TotalCash, d.TotalTransferLedger,
		d.TotalBankTransfer, d.TotalBalanceCarriedForward,

		d.CashBalanceBroughtForward, d.CashAccommodation, d.CashFood,
		d.CashBar, d.CashLaundry, d.CashPool, d.CashRoomHire, d.CashOther,
		d.CashTotalCharge, d.CashUSDSwipe, d.CashEcoCash, d.CashZigSwipe,
		d.CashCash, d.CashTransferLedger, d.CashBankTransfer,
		d.CashBalanceCarriedForward,

		d.DebtorsInResidence,
	}
}

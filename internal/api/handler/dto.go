package handler

import (
	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/session"
)

// RowResponse is one ledger row with its derived figures filled in.
type RowResponse struct {
	ID        *int64 `json:"id"`
	Position  int    `json:"position"`
	Date      string `json:"date"`
	Folio     string `json:"folio"`
	GuestName string `json:"guest_name"`
	Pax       int    `json:"pax"`
	ledger.Amounts
	TotalCharge           float64 `json:"total_charge"`
	BalanceCarriedForward float64 `json:"balance_carried_forward"`
	SaveStatus            string  `json:"save_status"`
}

// TotalsResponse carries per-column sums plus the derived totals.
type TotalsResponse struct {
	ledger.Amounts
	TotalCharge           float64 `json:"total_charge"`
	BalanceCarriedForward float64 `json:"balance_carried_forward"`
}

// ViewResponse is the full state of the current ledger day: rows, cash
// account, totals and the date timeline.
type ViewResponse struct {
	Date               string         `json:"date"`
	Rows               []RowResponse  `json:"rows"`
	Totals             TotalsResponse `json:"totals"`
	CashTotals         TotalsResponse `json:"cash_totals"`
	DebtorsInResidence float64        `json:"debtors_in_res"`
	Dates              []string       `json:"dates"`
	CurrentIndex       int            `json:"current_index"`
	VisibleStartIndex  int            `json:"visible_start_index"`
	VisibleDates       []string       `json:"visible_dates"`
}

// JumpRequest selects an arbitrary ledger date.
type JumpRequest struct {
	Date string `json:"date" binding:"required"`
}

// SelectRequest selects a date by its timeline index.
type SelectRequest struct {
	Index *int `json:"index" binding:"required"`
}

// ReconcileRangeRequest triggers a stats backfill over an inclusive
// date range.
type ReconcileRangeRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// ReconcileRangeResponse reports how many stats records the backfill wrote.
type ReconcileRangeResponse struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Written int    `json:"written"`
}

func newRowResponse(r ledger.Row) RowResponse {
	return RowResponse{
		ID:                    r.ID,
		Position:              r.Position,
		Date:                  r.Date,
		Folio:                 r.Folio,
		GuestName:             r.GuestName,
		Pax:                   r.Pax,
		Amounts:               r.Amounts,
		TotalCharge:           r.TotalCharge(),
		BalanceCarriedForward: r.BalanceCarriedForward(),
		SaveStatus:            string(r.SaveStatus),
	}
}

func newTotalsResponse(t ledger.DayTotals) TotalsResponse {
	return TotalsResponse{
		Amounts:               t.Amounts,
		TotalCharge:           t.TotalCharge,
		BalanceCarriedForward: t.BalanceCarriedForward,
	}
}

func newViewResponse(v session.View) ViewResponse {
	rows := make([]RowResponse, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = newRowResponse(r)
	}

	return ViewResponse{
		Date:               v.Date,
		Rows:               rows,
		Totals:             newTotalsResponse(v.RowTotals),
		CashTotals:         newTotalsResponse(v.CashTotals),
		DebtorsInResidence: v.DebtorsInResidence,
		Dates:              v.Dates,
		CurrentIndex:       v.Index,
		VisibleStartIndex:  v.WindowStart,
		VisibleDates:       v.WindowDates,
	}
}

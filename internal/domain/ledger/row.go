// Package ledger defines the front-office day ledger model: guest folio rows,
// the per-date cash account, and the balance arithmetic shared by both.
package ledger

import "errors"

// Common errors
var (
	ErrRowLocked   = errors.New("row is already persisted and cannot be removed")
	ErrNegativePax = errors.New("pax cannot be negative")
	ErrNoSuchRow   = errors.New("no row at that position")
)

// SaveStatus tracks whether a row's current content has reached the remote store.
// It is session bookkeeping and is never sent to the store.
type SaveStatus string

const (
	SaveStatusNew   SaveStatus = "new"
	SaveStatusSaved SaveStatus = "saved"
)

// Amounts holds every editable numeric column of a ledger row. The charge
// columns may be entered negative for corrections; payments and the brought
// forward balance take any sign.
//
// TotalCharge and BalanceCarriedForward are deliberately methods rather than
// fields: they cannot be set from outside and therefore cannot drift from
// the columns they are derived from.
type Amounts struct {
	BalanceBroughtForward float64 `json:"balance_brought_forward"`

	// Charge columns.
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Bar           float64 `json:"bar"`
	Laundry       float64 `json:"laundry"`
	Pool          float64 `json:"pool"`
	RoomHire      float64 `json:"room_hire"`
	Other         float64 `json:"other"`

	// Payment columns.
	USDSwipe       float64 `json:"usd_swipe"`
	EcoCash        float64 `json:"eco_cash"`
	ZigSwipe       float64 `json:"zig_swipe"`
	Cash           float64 `json:"cash"`
	TransferLedger float64 `json:"transfer_ledger"`
	BankTransfer   float64 `json:"bank_transfer"`
}

// TotalCharge is the sum of the seven charge columns.
func (a Amounts) TotalCharge() float64 {
	return a.Accommodation + a.Food + a.Bar + a.Laundry + a.Pool + a.RoomHire + a.Other
}

// TotalPayments is the sum of the six payment columns.
func (a Amounts) TotalPayments() float64 {
	return a.USDSwipe + a.EcoCash + a.ZigSwipe + a.Cash + a.TransferLedger + a.BankTransfer
}

// BalanceCarriedForward is the row's closing balance:
// total charge plus the balance brought forward, minus all payments.
func (a Amounts) BalanceCarriedForward() float64 {
	return a.TotalCharge() + a.BalanceBroughtForward - a.TotalPayments()
}

// Row is one guest folio line on a given date. A nil ID means the row has not
// been persisted yet; the remote store assigns the identifier on first save.
type Row struct {
	ID        *int64 `json:"id"`
	Date      string `json:"date"`
	Folio     string `json:"folio"`
	GuestName string `json:"guest_name"`
	Pax       int    `json:"pax"`
	Amounts

	SaveStatus SaveStatus `json:"-"`
	Position   int        `json:"-"` // 1-based ordinal within the date
}

// NewRow creates a blank unsaved row for the given date.
func NewRow(date string) *Row {
	return &Row{
		Date:       date,
		SaveStatus: SaveStatusNew,
	}
}

// Persisted reports whether the remote store has assigned this row an ID.
func (r *Row) Persisted() bool {
	return r.ID != nil
}

// Validate checks the externally settable fields.
func (r *Row) Validate() error {
	if r.Pax < 0 {
		return ErrNegativePax
	}
	return nil
}

// Renumber rewrites the 1-based positions after rows were added or removed.
func Renumber(rows []*Row) {
	for i, r := range rows {
		r.Position = i + 1
	}
}

// CashAccount is the hotel's own cash-drawer line for one date. It shares the
// row arithmetic but carries no guest identity and is never fetched from the
// remote store; its values reach durability only through the daily stats.
type CashAccount struct {
	Date string `json:"date"`
	Amounts
}

// NewCashAccount creates a zeroed cash account for the given date.
func NewCashAccount(date string) *CashAccount {
	return &CashAccount{Date: date}
}

// DayTotals aggregates one date: the column-wise sums plus the summed derived
// figures of every row that contributed.
type DayTotals struct {
	Amounts               Amounts
	TotalCharge           float64
	BalanceCarriedForward float64
}

// DebtorsInResidence is the outstanding balance owed by guests on the books:
// total charges billed minus total payments received.
func (t DayTotals) DebtorsInResidence() float64 {
	return t.TotalCharge - t.Amounts.TotalPayments()
}

// SumRows computes the per-column totals across a day's guest rows.
func SumRows(rows []*Row) DayTotals {
	var t DayTotals
	for _, r := range rows {
		t.Amounts.BalanceBroughtForward += r.BalanceBroughtForward
		t.Amounts.Accommodation += r.Accommodation
		t.Amounts.Food += r.Food
		t.Amounts.Bar += r.Bar
		t.Amounts.Laundry += r.Laundry
		t.Amounts.Pool += r.Pool
		t.Amounts.RoomHire += r.RoomHire
		t.Amounts.Other += r.Other
		t.Amounts.USDSwipe += r.USDSwipe
		t.Amounts.EcoCash += r.EcoCash
		t.Amounts.ZigSwipe += r.ZigSwipe
		t.Amounts.Cash += r.Cash
		t.Amounts.TransferLedger += r.TransferLedger
		t.Amounts.BankTransfer += r.BankTransfer
		t.TotalCharge += r.TotalCharge()
		t.BalanceCarriedForward += r.BalanceCarriedForward()
	}
	return t
}

// Totals derives the cash account's contribution to the daily stats.
func (c *CashAccount) Totals() DayTotals {
	return DayTotals{
		Amounts:               c.Amounts,
		TotalCharge:           c.TotalCharge(),
		BalanceCarriedForward: c.BalanceCarriedForward(),
	}
}

package session

import (
	"context"

	"github.com/frontoffice-ledger/internal/domain/ledger"
)

// AmountsPatch is a partial update of the numeric columns. Only non-nil
// fields are applied.
type AmountsPatch struct {
	BalanceBroughtForward *float64 `json:"balance_brought_forward"`
	Accommodation         *float64 `json:"accommodation"`
	Food                  *float64 `json:"food"`
	Bar                   *float64 `json:"bar"`
	Laundry               *float64 `json:"laundry"`
	Pool                  *float64 `json:"pool"`
	RoomHire              *float64 `json:"room_hire"`
	Other                 *float64 `json:"other"`
	USDSwipe              *float64 `json:"usd_swipe"`
	EcoCash               *float64 `json:"eco_cash"`
	ZigSwipe              *float64 `json:"zig_swipe"`
	Cash                  *float64 `json:"cash"`
	TransferLedger        *float64 `json:"transfer_ledger"`
	BankTransfer          *float64 `json:"bank_transfer"`
}

func (p AmountsPatch) apply(a *ledger.Amounts) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.BalanceBroughtForward, p.BalanceBroughtForward)
	set(&a.Accommodation, p.Accommodation)
	set(&a.Food, p.Food)
	set(&a.Bar, p.Bar)
	set(&a.Laundry, p.Laundry)
	set(&a.Pool, p.Pool)
	set(&a.RoomHire, p.RoomHire)
	set(&a.Other, p.Other)
	set(&a.USDSwipe, p.USDSwipe)
	set(&a.EcoCash, p.EcoCash)
	set(&a.ZigSwipe, p.ZigSwipe)
	set(&a.Cash, p.Cash)
	set(&a.TransferLedger, p.TransferLedger)
	set(&a.BankTransfer, p.BankTransfer)
}

// RowPatch is a partial update of one row's editable fields.
type RowPatch struct {
	Folio     *string `json:"folio"`
	GuestName *string `json:"guest_name"`
	Pax       *int    `json:"pax"`
	AmountsPatch
}

// AddRow appends a blank row to the current date.
func (s *Session) AddRow(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	if _, err := s.cache.AddRow(s.timeline.Current()); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// UpdateRow applies a patch to the row at a 1-based position on the current
// date. Any change makes the row unsaved again until the next save.
func (s *Session) UpdateRow(ctx context.Context, position int, patch RowPatch) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	row, err := s.cache.Row(s.timeline.Current(), position)
	if err != nil {
		return View{}, err
	}

	updated := *row
	if patch.Folio != nil {
		updated.Folio = *patch.Folio
	}
	if patch.GuestName != nil {
		updated.GuestName = *patch.GuestName
	}
	if patch.Pax != nil {
		updated.Pax = *patch.Pax
	}
	patch.AmountsPatch.apply(&updated.Amounts)

	if err := updated.Validate(); err != nil {
		return View{}, err
	}

	updated.SaveStatus = ledger.SaveStatusNew
	*row = updated
	return s.viewLocked(), nil
}

// RemoveRow deletes an unsaved row from the current date. Persisted rows are
// locked and stay on the ledger.
func (s *Session) RemoveRow(ctx context.Context, position int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	if err := s.cache.RemoveRow(s.timeline.Current(), position); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// UpdateCash applies a patch to the current date's cash account.
func (s *Session) UpdateCash(ctx context.Context, patch AmountsPatch) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	cash, err := s.cache.Cash(s.timeline.Current())
	if err != nil {
		return View{}, err
	}
	patch.apply(&cash.Amounts)
	return s.viewLocked(), nil
}

package session

import (
	"context"
)

// SaveRow persists the row at a 1-based position on the current date and then
// reconciles the date's stats. A reconcile failure is surfaced even though
// the row itself was saved.
func (s *Session) SaveRow(ctx context.Context, position int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	date := s.timeline.Current()
	row, err := s.cache.Row(date, position)
	if err != nil {
		return View{}, err
	}

	if err := s.saver.SaveRow(ctx, row); err != nil {
		return View{}, err
	}

	if err := s.reconcileLocked(ctx, date); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// SaveAll persists every row of the current date sequentially, in list
// order, then reconciles stats once. A mid-batch failure returns a
// *PartialSaveError and skips the reconcile; rows saved before the failure
// stay saved.
func (s *Session) SaveAll(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)

	date := s.timeline.Current()
	if err := s.saver.SaveAll(ctx, date, s.cache.Rows(date)); err != nil {
		return View{}, err
	}

	if err := s.reconcileLocked(ctx, date); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// reconcileLocked recomputes the current totals and upserts the date's
// stats record. Caller holds the lock.
func (s *Session) reconcileLocked(ctx context.Context, date string) error {
	v := s.viewLocked()
	return s.reconciler.Reconcile(ctx, date, v.RowTotals, v.CashTotals, v.DebtorsInResidence)
}

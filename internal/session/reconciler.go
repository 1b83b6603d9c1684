package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/frontoffice-ledger/internal/config"
	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/domain/stats"
	"github.com/panjf2000/ants/v2"
)

// Reconciler keeps the remote per-date statistics in step with the detail
// rows. Every write is fetch-compare-upsert: a record is only written when at
// least one field actually differs, so reconciling the same day twice is a
// no-op the second time.
type Reconciler struct {
	logger       *slog.Logger
	rows         ledger.RowStore
	stats        stats.Store
	poolSize     int
	maxRangeDays int
}

// NewReconciler creates a reconciler over the given stores.
func NewReconciler(logger *slog.Logger, rows ledger.RowStore, statsStore stats.Store, cfg *config.ReconcileConfig) *Reconciler {
	return &Reconciler{
		logger:       logger,
		rows:         rows,
		stats:        statsStore,
		poolSize:     cfg.WorkerPoolSize,
		maxRangeDays: cfg.MaxRangeDays,
	}
}

// Reconcile upserts the aggregate record for a date from the session's
// current totals. Unlike row reads, a failure here is surfaced: the caller
// believes stats were reconciled, so it must hear when they were not.
func (r *Reconciler) Reconcile(ctx context.Context, date string, rowTotals, cashTotals ledger.DayTotals, debtorsInRes float64) error {
	candidate := stats.NewDaily(date, rowTotals, cashTotals, debtorsInRes)

	existing, err := r.stats.FetchByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch stats for %s: %w", date, err)
	}

	return r.upsert(ctx, date, existing, candidate)
}

// ReconcileRange recomputes the total_* figures and debtors for every date in
// [from, to] straight from the stored rows, preserving the cash_* figures of
// any existing record (the cash account never leaves the editing session).
// Dates are independent, so they are processed concurrently. Returns the
// number of records written.
func (r *Reconciler) ReconcileRange(ctx context.Context, from, to string) (int, error) {
	dates, err := enumerateDates(from, to, r.maxRangeDays)
	if err != nil {
		return 0, err
	}

	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return 0, fmt.Errorf("failed to create backfill worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		written int
	)

	for _, date := range dates {
		date := date
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			wrote, err := r.reconcileStored(ctx, date)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if wrote {
				written++
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("failed to submit backfill for %s: %w", date, submitErr))
			mu.Unlock()
		}
	}
	wg.Wait()

	r.logger.Info("stats backfill finished", "from", from, "to", to, "dates", len(dates), "written", written, "failures", len(errs))
	return written, errors.Join(errs...)
}

// reconcileStored recomputes one date from its persisted rows. Dates with no
// stored rows are skipped.
func (r *Reconciler) reconcileStored(ctx context.Context, date string) (bool, error) {
	rows, err := r.rows.FetchRows(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to fetch rows for %s: %w", date, err)
	}
	if len(rows) == 0 {
		return false, nil
	}

	rowTotals := ledger.SumRows(rows)
	candidate := stats.NewDaily(date, rowTotals, ledger.DayTotals{}, rowTotals.DebtorsInResidence())

	existing, err := r.stats.FetchByDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to fetch stats for %s: %w", date, err)
	}
	if existing != nil {
		candidate.CopyCashFields(existing)
	}

	if !stats.NeedsWrite(existing, candidate) {
		return false, nil
	}
	return true, r.upsert(ctx, date, existing, candidate)
}

func (r *Reconciler) upsert(ctx context.Context, date string, existing, candidate *stats.Daily) error {
	if !stats.NeedsWrite(existing, candidate) {
		r.logger.Debug("stats unchanged, skipping write", "date", date)
		return nil
	}

	if existing != nil && existing.ID != nil {
		if err := r.stats.Update(ctx, *existing.ID, candidate); err != nil {
			return fmt.Errorf("failed to update stats for %s: %w", date, err)
		}
		r.logger.Info("stats updated", "date", date)
		return nil
	}

	if err := r.stats.Create(ctx, candidate); err != nil {
		return fmt.Errorf("failed to create stats for %s: %w", date, err)
	}
	r.logger.Info("stats created", "date", date)
	return nil
}

// ErrInvalidRange indicates an unusable backfill range request.
var ErrInvalidRange = errors.New("invalid date range")

// enumerateDates expands an inclusive date range, bounded by maxDays.
func enumerateDates(from, to string, maxDays int) ([]string, error) {
	start, err := ledger.NormalizeDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := ledger.NormalizeDate(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if start > end {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, from, to)
	}

	dates := []string{start}
	for cur := start; cur < end; {
		next, err := ledger.NextDay(cur)
		if err != nil {
			return nil, err
		}
		dates = append(dates, next)
		cur = next
		if len(dates) > maxDays {
			return nil, fmt.Errorf("%w: %s..%s exceeds the %d-day limit", ErrInvalidRange, from, to, maxDays)
		}
	}
	return dates, nil
}

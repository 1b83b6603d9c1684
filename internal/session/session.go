// Package session holds the front-desk editing state for the ledger: the
// date timeline, the per-date day cache, row editing, saving and stats
// reconciliation. One session serves one receptionist; every operation runs
// under a single lock, so the timeline and cache behave as if driven by a
// single thread of control even though the HTTP layer above is concurrent.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frontoffice-ledger/internal/domain/ledger"
)

// visibleDates is how many date tabs the UI shows at once.
const visibleDates = 2

// Session owns the timeline and day cache and orchestrates the saver and
// reconciler. All exported methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	logger     *slog.Logger
	store      ledger.RowStore
	cache      *DayCache
	timeline   *Timeline
	saver      *Saver
	reconciler *Reconciler
}

// NewSession wires a session over the given collaborators.
func NewSession(logger *slog.Logger, store ledger.RowStore, saver *Saver, reconciler *Reconciler) *Session {
	return &Session{
		logger:     logger,
		store:      store,
		cache:      NewDayCache(logger, store),
		timeline:   NewTimeline(nil),
		saver:      saver,
		reconciler: reconciler,
	}
}

// View is a consistent snapshot of the current date handed to the transport
// layer. Rows are copies; derived figures are recomputed from them.
type View struct {
	Date               string
	Rows               []ledger.Row
	Cash               ledger.CashAccount
	RowTotals          ledger.DayTotals
	CashTotals         ledger.DayTotals
	DebtorsInResidence float64

	Dates       []string
	Index       int
	WindowStart int
	WindowDates []string
}

// Load initializes the timeline from the remote set of dates with stored
// rows, falling back to just today when the store has none or cannot be
// reached, and opens the most recent date.
func (s *Session) Load(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.viewLocked()
}

func (s *Session) loadLocked(ctx context.Context) {
	dates, err := s.store.DistinctDates(ctx)
	if err != nil {
		s.logger.Warn("failed to load ledger dates, starting from today", "error", err)
		dates = nil
	}
	if len(dates) == 0 {
		dates = []string{ledger.Today()}
	}
	s.timeline = NewTimeline(dates)
	s.ensureCurrentLocked(ctx)
}

// ensureLoadedLocked lazily initializes a session that was never loaded.
func (s *Session) ensureLoadedLocked(ctx context.Context) {
	if s.timeline.Len() == 0 {
		s.loadLocked(ctx)
	}
}

// ensureCurrentLocked makes sure rows exist for the current date, using its
// predecessor in the timeline as the carry-forward source.
func (s *Session) ensureCurrentLocked(ctx context.Context) {
	date := s.timeline.Current()
	if date == "" {
		return
	}
	s.cache.EnsureDate(ctx, date, s.timeline.Predecessor(s.timeline.Index()))
}

// CurrentView returns the snapshot for the current date.
func (s *Session) CurrentView(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	s.ensureCurrentLocked(ctx)
	return s.viewLocked()
}

// Next moves one day forward. At the end of the timeline it opens a new
// calendar day seeded by carry-forward from the last known date.
func (s *Session) Next(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	if s.timeline.Index() < s.timeline.Len()-1 {
		if err := s.timeline.MoveTo(s.timeline.Index() + 1); err != nil {
			return View{}, err
		}
		s.ensureCurrentLocked(ctx)
		return s.viewLocked(), nil
	}

	last := s.timeline.Last()
	next, err := ledger.NextDay(last)
	if err != nil {
		return View{}, err
	}
	idx := s.timeline.Insert(next)
	if err := s.timeline.MoveTo(idx); err != nil {
		return View{}, err
	}
	s.cache.EnsureDate(ctx, next, last)
	return s.viewLocked(), nil
}

// Previous moves one day back within the known timeline. At the earliest
// date it is a no-op; ExtendBackward opens earlier days.
func (s *Session) Previous(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	idx := s.timeline.Index()
	if idx == 0 {
		return s.viewLocked(), nil
	}

	target, err := s.timeline.At(idx - 1)
	if err != nil {
		return View{}, err
	}
	s.cache.EnsureDate(ctx, target, s.timeline.Predecessor(idx-1))
	if err := s.timeline.MoveTo(idx - 1); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// JumpTo opens an arbitrary date, inserting it into the timeline if absent
// and carrying forward from whatever date precedes it in the set.
func (s *Session) JumpTo(ctx context.Context, rawDate string) (View, error) {
	date, err := ledger.NormalizeDate(rawDate)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	idx := s.timeline.Insert(date)
	s.cache.EnsureDate(ctx, date, s.timeline.Predecessor(idx))
	if err := s.timeline.MoveTo(idx); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// Select moves to the date at the given timeline index.
func (s *Session) Select(ctx context.Context, idx int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	target, err := s.timeline.At(idx)
	if err != nil {
		return View{}, err
	}
	s.cache.EnsureDate(ctx, target, s.timeline.Predecessor(idx))
	if err := s.timeline.MoveTo(idx); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// ExtendBackward prepends the day before the earliest known date. The carry
// source is the day before that, so the newly opened day can pick up stored
// balances from further back if any exist.
func (s *Session) ExtendBackward(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	first := s.timeline.First()
	newDate, err := ledger.PreviousDay(first)
	if err != nil {
		return View{}, err
	}
	dayBefore, err := ledger.PreviousDay(newDate)
	if err != nil {
		return View{}, err
	}

	idx := s.timeline.Insert(newDate)
	s.cache.EnsureDate(ctx, newDate, dayBefore)
	if err := s.timeline.MoveTo(idx); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// ResetToLatest collapses the timeline to its most recent date and discards
// every other day's in-memory state.
func (s *Session) ResetToLatest(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	latest := s.timeline.Last()
	if latest == "" {
		latest = ledger.Today()
	}
	s.timeline.Reset(latest)
	s.cache.RetainOnly(latest)
	s.cache.EnsureDate(ctx, latest, "")
	return s.viewLocked()
}

// viewLocked builds the snapshot for the current date. Caller holds the lock.
func (s *Session) viewLocked() View {
	date := s.timeline.Current()

	rows := s.cache.Rows(date)
	copied := make([]ledger.Row, len(rows))
	for i, r := range rows {
		copied[i] = *r
	}

	var cash ledger.CashAccount
	if ca, err := s.cache.Cash(date); err == nil {
		cash = *ca
	} else {
		cash = *ledger.NewCashAccount(date)
	}

	rowTotals := ledger.SumRows(rows)
	cashTotals := cash.Totals()
	start, window := s.timeline.Window(visibleDates)

	return View{
		Date:               date,
		Rows:               copied,
		Cash:               cash,
		RowTotals:          rowTotals,
		CashTotals:         cashTotals,
		DebtorsInResidence: rowTotals.DebtorsInResidence(),

		Dates:       s.timeline.Dates(),
		Index:       s.timeline.Index(),
		WindowStart: start,
		WindowDates: window,
	}
}

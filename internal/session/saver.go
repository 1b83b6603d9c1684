package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/platform/messaging/producers"
	"github.com/google/uuid"
)

// Saver pushes rows to the remote store. Writes are never swallowed: a
// failure is returned to the caller because pretending a row is durable when
// it is not would be worse than any error message.
type Saver struct {
	logger *slog.Logger
	store  ledger.RowStore
	events producers.MessagePublisher // nil when event publishing is disabled
}

// NewSaver creates a saver. events may be nil.
func NewSaver(logger *slog.Logger, store ledger.RowStore, events producers.MessagePublisher) *Saver {
	return &Saver{
		logger: logger,
		store:  store,
		events: events,
	}
}

// RowSavedEvent is the audit record published after a row reaches the store.
type RowSavedEvent struct {
	EventID               string    `json:"event_id"`
	Date                  string    `json:"date"`
	RowID                 int64     `json:"row_id"`
	Folio                 string    `json:"folio"`
	GuestName             string    `json:"guest_name"`
	TotalCharge           float64   `json:"total_charge"`
	BalanceCarriedForward float64   `json:"balance_carried_forward"`
	SavedAt               time.Time `json:"saved_at"`
}

// PartialSaveError reports a batch save that stopped partway: rows before
// FailedPosition were saved and stay saved, the failing row and everything
// after it remain unsaved. There is no rollback.
type PartialSaveError struct {
	Date           string
	FailedPosition int
	Saved          int
	Err            error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("save-all for %s stopped at row %d after %d saved: %v",
		e.Date, e.FailedPosition, e.Saved, e.Err)
}

func (e *PartialSaveError) Unwrap() error {
	return e.Err
}

// SaveRow upserts one row and, on success, marks it saved and adopts the
// store-assigned ID.
func (s *Saver) SaveRow(ctx context.Context, row *ledger.Row) error {
	stored, err := s.store.SaveRow(ctx, row)
	if err != nil {
		return fmt.Errorf("failed to save row %d for %s: %w", row.Position, row.Date, err)
	}

	row.ID = stored.ID
	row.SaveStatus = ledger.SaveStatusSaved
	s.logger.Info("row saved", "date", row.Date, "position", row.Position, "guest_name", row.GuestName)

	s.publish(ctx, row)
	return nil
}

// SaveAll persists rows sequentially, in list order. On the first failure it
// stops and returns a *PartialSaveError; rows already saved keep their
// status.
func (s *Saver) SaveAll(ctx context.Context, date string, rows []*ledger.Row) error {
	for i, row := range rows {
		if err := s.SaveRow(ctx, row); err != nil {
			return &PartialSaveError{
				Date:           date,
				FailedPosition: row.Position,
				Saved:          i,
				Err:            err,
			}
		}
	}
	return nil
}

// publish emits the audit event. Best effort: a publish failure is logged
// and never turns a durable save into an error.
func (s *Saver) publish(ctx context.Context, row *ledger.Row) {
	if s.events == nil || row.ID == nil {
		return
	}

	event := RowSavedEvent{
		EventID:               uuid.New().String(),
		Date:                  row.Date,
		RowID:                 *row.ID,
		Folio:                 row.Folio,
		GuestName:             row.GuestName,
		TotalCharge:           row.TotalCharge(),
		BalanceCarriedForward: row.BalanceCarriedForward(),
		SavedAt:               time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, row.Date, event); err != nil {
		s.logger.Warn("failed to publish row-saved event", "date", row.Date, "error", err)
	}
}

package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/frontoffice-ledger/internal/domain/ledger"
	"github.com/frontoffice-ledger/internal/platform/remote"
	"github.com/frontoffice-ledger/internal/session"
	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the editing session over HTTP: navigation across
// dates, row and cash edits, and saves.
type LedgerHandler struct {
	logger  *slog.Logger
	session *session.Session
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(logger *slog.Logger, sess *session.Session) *LedgerHandler {
	return &LedgerHandler{
		logger:  logger,
		session: sess,
	}
}

// Get returns the current day's view.
func (h *LedgerHandler) Get(c *gin.Context) {
	RespondOK(c, newViewResponse(h.session.CurrentView(c.Request.Context())))
}

// Next moves one day forward, opening a new calendar day at the end of the
// timeline.
func (h *LedgerHandler) Next(c *gin.Context) {
	view, err := h.session.Next(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// Previous moves one day back within the known timeline.
func (h *LedgerHandler) Previous(c *gin.Context) {
	view, err := h.session.Previous(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// Jump opens an arbitrary date.
func (h *LedgerHandler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}
	if _, err := ledger.NormalizeDate(req.Date); err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.session.JumpTo(c.Request.Context(), req.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// Select moves to the date at the given timeline index.
func (h *LedgerHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	view, err := h.session.Select(c.Request.Context(), *req.Index)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	RespondOK(c, newViewResponse(view))
}

// ExtendBackward prepends the day before the earliest known date.
func (h *LedgerHandler) ExtendBackward(c *gin.Context) {
	view, err := h.session.ExtendBackward(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// Reset collapses the timeline to its most recent date.
func (h *LedgerHandler) Reset(c *gin.Context) {
	RespondOK(c, newViewResponse(h.session.ResetToLatest(c.Request.Context())))
}

// AddRow appends a blank row to the current date.
func (h *LedgerHandler) AddRow(c *gin.Context) {
	view, err := h.session.AddRow(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondCreated(c, newViewResponse(view))
}

// UpdateRow applies a partial update to one row of the current date.
func (h *LedgerHandler) UpdateRow(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}

	var patch session.RowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	view, err := h.session.UpdateRow(c.Request.Context(), position, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// RemoveRow deletes an unsaved row from the current date. Rows already on
// the remote ledger cannot be removed.
func (h *LedgerHandler) RemoveRow(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}

	view, err := h.session.RemoveRow(c.Request.Context(), position)
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// UpdateCash applies a partial update to the current date's cash account.
func (h *LedgerHandler) UpdateCash(c *gin.Context) {
	var patch session.AmountsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	view, err := h.session.UpdateCash(c.Request.Context(), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// SaveRow persists one row and reconciles the date's stats.
func (h *LedgerHandler) SaveRow(c *gin.Context) {
	position, ok := h.position(c)
	if !ok {
		return
	}

	view, err := h.session.SaveRow(c.Request.Context(), position)
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// SaveAll persists every row of the current date in list order.
func (h *LedgerHandler) SaveAll(c *gin.Context) {
	view, err := h.session.SaveAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	RespondOK(c, newViewResponse(view))
}

// position parses the 1-based :position path parameter, responding with a
// 400 on failure.
func (h *LedgerHandler) position(c *gin.Context) (int, bool) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 1 {
		RespondBadRequest(c, "Invalid row position")
		return 0, false
	}
	return position, true
}

// respondError maps session and store errors onto HTTP statuses.
func (h *LedgerHandler) respondError(c *gin.Context, err error) {
	var partial *session.PartialSaveError
	var status *remote.StatusError

	switch {
	case errors.Is(err, ledger.ErrRowLocked):
		RespondConflict(c, err.Error())
	case errors.Is(err, ledger.ErrNoSuchRow), errors.Is(err, session.ErrDateNotLoaded):
		RespondNotFound(c, err.Error())
	case errors.Is(err, ledger.ErrNegativePax):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &partial):
		RespondBadGateway(c, "BATCH_INCOMPLETE", err.Error())
	case errors.As(err, &status):
		RespondBadGateway(c, "REMOTE_WRITE_FAILED", err.Error())
	default:
		h.logger.Error("unhandled ledger error", "error", err)
		RespondInternalError(c)
	}
}

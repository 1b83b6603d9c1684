package handler

import (
	"errors"
	"log/slog"

	"github.com/frontoffice-ledger/internal/session"
	"github.com/gin-gonic/gin"
)

// StatsHandler exposes the stats backfill over HTTP.
type StatsHandler struct {
	logger     *slog.Logger
	reconciler *session.Reconciler
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(logger *slog.Logger, reconciler *session.Reconciler) *StatsHandler {
	return &StatsHandler{
		logger:     logger,
		reconciler: reconciler,
	}
}

// ReconcileRange recomputes the stats records for every date in an
// inclusive range straight from the stored rows.
func (h *StatsHandler) ReconcileRange(c *gin.Context) {
	var req ReconcileRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	written, err := h.reconciler.ReconcileRange(c.Request.Context(), req.From, req.To)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRange) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("stats backfill failed", "from", req.From, "to", req.To, "written", written, "error", err)
		RespondBadGateway(c, "BACKFILL_INCOMPLETE", err.Error())
		return
	}

	RespondOK(c, ReconcileRangeResponse{From: req.From, To: req.To, Written: written})
}

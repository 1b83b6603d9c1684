package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frontoffice-ledger/internal/api/handler"
	"github.com/frontoffice-ledger/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	ledgerHandler *handler.LedgerHandler,
	statsHandler *handler.StatsHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Current-day view and navigation
		ledger := v1.Group("/ledger")
		{
			ledger.GET("", ledgerHandler.Get)
			ledger.POST("/next", ledgerHandler.Next)
			ledger.POST("/previous", ledgerHandler.Previous)
			ledger.POST("/jump", ledgerHandler.Jump)
			ledger.POST("/select", ledgerHandler.Select)
			ledger.POST("/extend-backward", ledgerHandler.ExtendBackward)
			ledger.POST("/reset", ledgerHandler.Reset)
			ledger.POST("/save", ledgerHandler.SaveAll)

			// Row and cash editing
			ledger.POST("/rows", ledgerHandler.AddRow)
			ledger.PATCH("/rows/:position", ledgerHandler.UpdateRow)
			ledger.DELETE("/rows/:position", ledgerHandler.RemoveRow)
			ledger.POST("/rows/:position/save", ledgerHandler.SaveRow)
			ledger.PATCH("/cash", ledgerHandler.UpdateCash)
		}

		// Stats operations
		stats := v1.Group("/stats")
		{
			stats.POST("/reconcile", statsHandler.ReconcileRange)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

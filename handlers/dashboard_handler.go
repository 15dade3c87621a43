package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/ledger"
)

type DashboardHandler struct {
	reader *ledger.Reader
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{reader: ledger.NewReader(db)}
}

// GET /api/dashboard
//
// Aggregates are recomputed on every read; nothing is cached between
// writes.
func (h *DashboardHandler) Snapshot(c echo.Context) error {
	now := time.Now()
	today := now.Format(ledger.DateLayout)
	weekStart := now.AddDate(0, 0, -7).Format(ledger.DateLayout)

	snap, err := h.reader.SnapshotFor(c.Request().Context(), today, weekStart)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DASHBOARD_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, snap)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/ledger"
)

type AttendanceHandler struct {
	writer *ledger.Writer
	reader *ledger.Reader
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{
		writer: ledger.NewWriter(db),
		reader: ledger.NewReader(db),
	}
}

type attendanceEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

type recordRequest struct {
	Date       string            `json:"date" validate:"required"`
	Attendance []attendanceEntry `json:"attendance" validate:"min=1,dive"`
}

// POST /api/attendance
//
// The whole roster for the date is replaced in one transaction; any
// bad entry rejects the entire call and the stored roster stays as it
// was.
func (h *AttendanceHandler) Record(c echo.Context) error {
	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entries := make([]ledger.Entry, 0, len(req.Attendance))
	for _, e := range req.Attendance {
		entries = append(entries, ledger.Entry{
			StudentID: strings.TrimSpace(e.StudentID),
			Status:    ledger.Status(e.Status),
		})
	}

	err := h.writer.Record(c.Request().Context(), req.Date, entries, adminID(c))
	if err != nil {
		if ledger.IsInvalidInput(err) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "ATTENDANCE_WRITE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Attendance recorded successfully"})
}

// GET /api/attendance?date=YYYY-MM-DD&student_id=S
func (h *AttendanceHandler) List(c echo.Context) error {
	f := ledger.Filter{
		Date:      strings.TrimSpace(c.QueryParam("date")),
		StudentID: strings.TrimSpace(c.QueryParam("student_id")),
	}

	rows, err := h.reader.Query(c.Request().Context(), f)
	if err != nil {
		if ledger.IsInvalidInput(err) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "ATTENDANCE_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/attendly/attendance-api/ledger"
)

type ExportHandler struct {
	reader *ledger.Reader
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{reader: ledger.NewReader(db)}
}

func (h *ExportHandler) rangeRows(c echo.Context) (start, end string, rows []ledger.Record, err error) {
	start = strings.TrimSpace(c.QueryParam("startDate"))
	end = strings.TrimSpace(c.QueryParam("endDate"))
	if start == "" || end == "" {
		return "", "", nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_DATE_RANGE"})
	}

	rows, err = h.reader.Range(c.Request().Context(), start, end)
	if err != nil {
		if ledger.IsInvalidInput(err) {
			return "", "", nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}
		return "", "", nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_QUERY_FAILED"})
	}
	return start, end, rows, nil
}

// GET /api/export/excel?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *ExportHandler) Excel(c echo.Context) error {
	start, end, rows, err := h.rangeRows(c)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_RENDER_FAILED"})
	}

	headers := []string{"Date", "Student ID", "Name", "Class", "Status"}
	widths := []float64{15, 15, 25, 15, 10}
	for i, hd := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, widths[i])
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hd)
	}
	for ri, r := range rows {
		values := []any{r.Date, r.StudentID, r.Name, r.Class, r.Status}
		for ci, v := range values {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=attendance_%s_to_%s.xlsx", start, end))
	res.WriteHeader(http.StatusOK)
	return f.Write(res)
}

// GET /api/export/pdf?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *ExportHandler) PDF(c echo.Context) error {
	start, end, rows, err := h.rangeRows(c)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Attendance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("From %s to %s", start, end), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	colWidths := []float64{30, 30, 60, 30, 25}
	headers := []string{"Date", "Student ID", "Name", "Class", "Status"}

	pdf.SetFont("Helvetica", "B", 11)
	for i, hd := range headers {
		pdf.CellFormat(colWidths[i], 8, hd, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		values := []string{r.Date, r.StudentID, r.Name, r.Class, r.Status}
		for i, v := range values {
			pdf.CellFormat(colWidths[i], 7, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/pdf")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=attendance_%s_to_%s.pdf", start, end))
	res.WriteHeader(http.StatusOK)
	return pdf.Output(res)
}

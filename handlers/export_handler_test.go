package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRange(t *testing.T, api *testAPI) {
	t.Helper()
	api.seedStudents(t)
	for _, day := range []string{"2024-01-10", "2024-01-11"} {
		rec := api.request(t, "POST", "/api/attendance", map[string]any{
			"date": day,
			"attendance": []map[string]string{
				{"student_id": "S1", "status": "present"},
				{"student_id": "S2", "status": "late"},
			},
		}, api.token)
		require.Equal(t, 200, rec.Code)
	}
}

func TestExportExcel(t *testing.T) {
	api := newTestAPI(t)
	seedRange(t, api)

	rec := api.request(t, "GET", "/api/export/excel?startDate=2024-01-01&endDate=2024-01-31", nil, api.token)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_2024-01-01_to_2024-01-31.xlsx")

	// xlsx files are zip archives
	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}

func TestExportPDF(t *testing.T) {
	api := newTestAPI(t)
	seedRange(t, api)

	rec := api.request(t, "GET", "/api/export/pdf?startDate=2024-01-01&endDate=2024-01-31", nil, api.token)
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	body := rec.Body.Bytes()
	require.Greater(t, len(body), 5)
	assert.Equal(t, "%PDF-", string(body[:5]))
}

func TestExportValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.request(t, "GET", "/api/export/excel", nil, api.token)
	assert.Equal(t, 400, rec.Code)

	rec = api.request(t, "GET", "/api/export/pdf?startDate=2024-01-01", nil, api.token)
	assert.Equal(t, 400, rec.Code)

	rec = api.request(t, "GET", "/api/export/excel?startDate=bad&endDate=2024-01-31", nil, api.token)
	assert.Equal(t, 400, rec.Code)

	rec = api.request(t, "GET", "/api/export/excel?startDate=2024-01-01&endDate=2024-01-31", nil, "")
	assert.Equal(t, 401, rec.Code)
}

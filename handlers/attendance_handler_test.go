package handlers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-api/ledger"
	"github.com/attendly/attendance-api/models"
)

func TestRecordAndListAttendance(t *testing.T) {
	api := newTestAPI(t)
	api.seedStudents(t)

	rec := api.request(t, "POST", "/api/attendance", map[string]any{
		"date": "2024-01-10",
		"attendance": []map[string]string{
			{"student_id": "S1", "status": "present"},
			{"student_id": "S2", "status": "absent"},
		},
	}, api.token)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	rec = api.request(t, "GET", "/api/attendance?date=2024-01-10", nil, api.token)
	require.Equal(t, 200, rec.Code)

	var rows []ledger.Record
	decodeJSON(t, rec, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "present", rows[0].Status)
	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, "absent", rows[1].Status)

	// recorded_by carries the authenticated admin's id
	var admin models.Admin
	require.NoError(t, api.db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, admin.ID, rows[0].RecordedBy)
}

func TestRecordAttendanceValidation(t *testing.T) {
	api := newTestAPI(t)
	api.seedStudents(t)

	// unrecognized status is caught at the edge
	rec := api.request(t, "POST", "/api/attendance", map[string]any{
		"date": "2024-01-10",
		"attendance": []map[string]string{
			{"student_id": "S1", "status": "sick"},
		},
	}, api.token)
	assert.Equal(t, 400, rec.Code)

	// empty roster
	rec = api.request(t, "POST", "/api/attendance", map[string]any{
		"date":       "2024-01-10",
		"attendance": []map[string]string{},
	}, api.token)
	assert.Equal(t, 400, rec.Code)

	// malformed date passes binding but fails in the ledger
	rec = api.request(t, "POST", "/api/attendance", map[string]any{
		"date": "01-10-2024",
		"attendance": []map[string]string{
			{"student_id": "S1", "status": "present"},
		},
	}, api.token)
	assert.Equal(t, 400, rec.Code)

	// unknown student
	rec = api.request(t, "POST", "/api/attendance", map[string]any{
		"date": "2024-01-10",
		"attendance": []map[string]string{
			{"student_id": "S9", "status": "present"},
		},
	}, api.token)
	assert.Equal(t, 400, rec.Code)

	// none of the rejected writes left anything behind
	rec = api.request(t, "GET", "/api/attendance?date=2024-01-10", nil, api.token)
	require.Equal(t, 200, rec.Code)
	var rows []ledger.Record
	decodeJSON(t, rec, &rows)
	assert.Empty(t, rows)
}

func TestReRecordReplacesRoster(t *testing.T) {
	api := newTestAPI(t)
	api.seedStudents(t)

	for _, roster := range [][]map[string]string{
		{{"student_id": "S1", "status": "present"}, {"student_id": "S2", "status": "absent"}},
		{{"student_id": "S1", "status": "late"}, {"student_id": "S2", "status": "present"}},
	} {
		rec := api.request(t, "POST", "/api/attendance", map[string]any{
			"date":       "2024-01-10",
			"attendance": roster,
		}, api.token)
		require.Equal(t, 200, rec.Code)
	}

	rec := api.request(t, "GET", "/api/attendance?date=2024-01-10&student_id=S1", nil, api.token)
	require.Equal(t, 200, rec.Code)
	var rows []ledger.Record
	decodeJSON(t, rec, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "late", rows[0].Status)
}

func TestDashboardSnapshot(t *testing.T) {
	api := newTestAPI(t)
	api.seedStudents(t)

	// empty ledger: totals present, counts all zero
	rec := api.request(t, "GET", "/api/dashboard", nil, api.token)
	require.Equal(t, 200, rec.Code)

	var snap ledger.Snapshot
	decodeJSON(t, rec, &snap)
	assert.Equal(t, int64(2), snap.TotalStudents)
	assert.Equal(t, ledger.Counts{}, snap.TodayAttendance)
	assert.NotNil(t, snap.WeeklyAttendance)
	assert.Empty(t, snap.WeeklyAttendance)

	// record today's roster and read it back through the snapshot
	today := time.Now().Format(ledger.DateLayout)
	res := api.request(t, "POST", "/api/attendance", map[string]any{
		"date": today,
		"attendance": []map[string]string{
			{"student_id": "S1", "status": "present"},
			{"student_id": "S2", "status": "late"},
		},
	}, api.token)
	require.Equal(t, 200, res.Code)

	rec = api.request(t, "GET", "/api/dashboard", nil, api.token)
	require.Equal(t, 200, rec.Code)
	decodeJSON(t, rec, &snap)
	assert.Equal(t, ledger.Counts{Present: 1, Late: 1}, snap.TodayAttendance)
	require.Len(t, snap.WeeklyAttendance, 2)
}

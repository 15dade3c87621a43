package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/attendly/attendance-api/models"
)

// Record is one attendance fact joined with the student's identity.
type Record struct {
	Date       string `json:"date"`
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Class      string `json:"class"`
	Status     string `json:"status"`
	RecordedBy uint   `json:"recorded_by"`
}

// Filter narrows Query results; zero-value fields match everything.
type Filter struct {
	Date      string
	StudentID string
}

// Counts holds one day's totals per status. Statuses with no rows
// stay zero.
type Counts struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
}

type DayCount struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Snapshot struct {
	TotalStudents    int64      `json:"totalStudents"`
	TodayAttendance  Counts     `json:"todayAttendance"`
	WeeklyAttendance []DayCount `json:"weeklyAttendance"`
}

// Reader serves filtered and aggregated views of the ledger. It never
// mutates anything.
type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader { return &Reader{db: db} }

func (r *Reader) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("attendances AS a").
		Select("a.date, a.student_id, s.name, s.class, a.status, a.recorded_by").
		Joins("JOIN students s ON s.student_id = a.student_id")
}

// Query returns matching facts, newest date first, names ascending
// within a date. No matches is an empty slice, not an error.
func (r *Reader) Query(ctx context.Context, f Filter) ([]Record, error) {
	tx := r.joined(ctx)
	if f.Date != "" {
		if _, err := time.Parse(DateLayout, f.Date); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, f.Date)
		}
		tx = tx.Where("a.date = ?", f.Date)
	}
	if f.StudentID != "" {
		tx = tx.Where("a.student_id = ?", f.StudentID)
	}

	rows := make([]Record, 0)
	if err := tx.Order("a.date DESC, s.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Range returns facts for start..end inclusive, oldest first, for
// report generation.
func (r *Reader) Range(ctx context.Context, start, end string) ([]Record, error) {
	for _, d := range []string{start, end} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}

	rows := make([]Record, 0)
	err := r.joined(ctx).
		Where("a.date BETWEEN ? AND ?", start, end).
		Order("a.date ASC, s.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SnapshotFor aggregates the dashboard numbers for today and the week
// leading up to it. Dates with no facts simply contribute nothing;
// today's counts are zero-filled.
func (r *Reader) SnapshotFor(ctx context.Context, today, weekStart string) (Snapshot, error) {
	var snap Snapshot
	for _, d := range []string{today, weekStart} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return snap, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
	}

	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Student{}).Count(&snap.TotalStudents).Error; err != nil {
		return snap, err
	}

	var todayRows []DayCount
	err := db.Model(&models.Attendance{}).
		Select("status, COUNT(*) AS count").
		Where("date = ?", today).
		Group("status").
		Scan(&todayRows).Error
	if err != nil {
		return snap, err
	}
	for _, row := range todayRows {
		switch Status(row.Status) {
		case StatusPresent:
			snap.TodayAttendance.Present = row.Count
		case StatusAbsent:
			snap.TodayAttendance.Absent = row.Count
		case StatusLate:
			snap.TodayAttendance.Late = row.Count
		}
	}

	snap.WeeklyAttendance = make([]DayCount, 0)
	err = db.Model(&models.Attendance{}).
		Select("date, status, COUNT(*) AS count").
		Where("date >= ? AND date <= ?", weekStart, today).
		Group("date, status").
		Order("date ASC").
		Scan(&snap.WeeklyAttendance).Error
	if err != nil {
		return snap, err
	}
	return snap, nil
}

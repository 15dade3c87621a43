package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/attendly/attendance-api/models"
)

// DateLayout is the calendar-date format used everywhere in the
// ledger: on the wire, in queries and in the date column itself.
const DateLayout = "2006-01-02"

// Entry is one student's status in a submitted roster.
type Entry struct {
	StudentID string
	Status    Status
}

// Writer records daily rosters. Safe for concurrent use; it holds no
// state beyond the shared connection pool.
type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer { return &Writer{db: db} }

// Record replaces everything stored for date with the given roster,
// stamped with the recording admin. The delete and the inserts run in
// one transaction: a failed call leaves the previous roster fully
// intact, and re-running an identical call is a no-op in effect.
//
// Every student in the roster must already exist; an unknown id
// aborts the whole write with ErrUnknownStudent. The check runs
// inside the transaction so it holds on engines without enforced
// foreign keys.
func (w *Writer) Record(ctx context.Context, date string, entries []Entry, recordedBy uint) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if len(entries) == 0 {
		return ErrEmptyRoster
	}

	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, err := ParseStatus(string(e.Status)); err != nil {
			return err
		}
		if _, dup := seen[e.StudentID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEntry, e.StudentID)
		}
		seen[e.StudentID] = struct{}{}
		ids = append(ids, e.StudentID)
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var known int64
		if err := tx.Model(&models.Student{}).Where("student_id IN ?", ids).Count(&known).Error; err != nil {
			return err
		}
		if known != int64(len(ids)) {
			return ErrUnknownStudent
		}

		if err := tx.Where("date = ?", date).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		rows := make([]models.Attendance, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, models.Attendance{
				StudentID:  e.StudentID,
				Date:       date,
				Status:     string(e.Status),
				RecordedBy: recordedBy,
			})
		}
		return tx.Create(&rows).Error
	})
}

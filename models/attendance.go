package models

import "time"

// One status per student per day. A write for a date replaces every
// row for that date, so the unique index is never hit by the writer
// itself; it guards against anything else inserting behind its back.
type Attendance struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  string    `json:"student_id" gorm:"size:20;not null;uniqueIndex:idx_attendance_student_date"`
	Date       string    `json:"date" gorm:"size:10;not null;index;uniqueIndex:idx_attendance_student_date"` // YYYY-MM-DD
	Status     string    `json:"status" gorm:"size:10;not null"`                                             // present|absent|late
	RecordedBy uint      `json:"recorded_by" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

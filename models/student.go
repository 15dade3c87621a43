package models

import "time"

type Student struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"size:20;uniqueIndex;not null"` // external code shown on rosters
	Name      string    `json:"name" gorm:"size:100;not null"`
	Class     string    `json:"class" gorm:"size:20"`
	Email     string    `json:"email" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// VirtualClassroom stores the video-conference entry point for a class grade.
// The conferencing provider itself is external; only the join link lives here.
type VirtualClassroom struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassGrade  int       `gorm:"not null;uniqueIndex" json:"class_grade"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	MeetingLink string    `gorm:"size:512" json:"meeting_link"`
	UpdatedBy   uint      `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

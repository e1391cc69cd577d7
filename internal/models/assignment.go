package models

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/timeutil"
)

// Assignment represents homework published by a teacher for one class grade.
type Assignment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClassGrade    int       `gorm:"not null;index" json:"class_grade"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	TotalMarks    int       `gorm:"not null" json:"total_marks"`
	DueDate       time.Time `gorm:"not null" json:"due_date"`
	AttachmentURL string    `gorm:"size:512" json:"attachment_url"`
	Status        string    `gorm:"size:32;not null" json:"status"`
	CreatedBy     uint      `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

const (
	// AssignmentStatusDraft keeps an assignment hidden from students.
	AssignmentStatusDraft = "draft"
	// AssignmentStatusPublished makes an assignment visible and submittable.
	AssignmentStatusPublished = "published"
	// AssignmentStatusClosed marks an assignment no longer accepting work.
	AssignmentStatusClosed = "closed"
)

// IsPastDue returns true when the deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return timeutil.IsOverdue(reference, a.DueDate)
}

// OwnedBy reports whether the given teacher authored this assignment.
func (a Assignment) OwnedBy(teacherID uint) bool {
	return a.CreatedBy == teacherID
}

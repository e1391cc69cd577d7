package models

import "time"

// Submission records a student's work for an assignment. The composite unique
// index enforces at most one submission per (assignment, student) pair even
// under concurrent requests.
type Submission struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AssignmentID   uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"assignment_id"`
	StudentID      uint       `gorm:"not null;uniqueIndex:idx_submission_pair" json:"student_id"`
	SubmissionText string     `gorm:"type:text" json:"submission_text"`
	AttachmentURL  string     `gorm:"size:512" json:"attachment_url"`
	SubmittedAt    time.Time  `gorm:"not null" json:"submitted_at"`
	IsLate         bool       `gorm:"not null" json:"is_late"`
	Status         string     `gorm:"size:32;not null" json:"status"`
	MarksObtained  *int       `json:"marks_obtained"`
	Feedback       string     `gorm:"type:text" json:"feedback"`
	GradedBy       *uint      `json:"graded_by"`
	GradedAt       *time.Time `json:"graded_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Assignment Assignment               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student    User                     `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	History    []SubmissionGradeHistory `gorm:"foreignKey:SubmissionID" json:"-"`
}

const (
	// SubmissionStatusSubmitted indicates work has been handed in but not graded.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusGraded indicates the teacher has recorded marks.
	SubmissionStatusGraded = "graded"
)

// IsGraded reports whether the submission carries final marks.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}

// HasContent reports whether the submission carries text or an attachment.
func (s Submission) HasContent() bool {
	return s.SubmissionText != "" || s.AttachmentURL != ""
}

// SubmissionGradeHistory keeps every grading write so re-grades stay auditable.
type SubmissionGradeHistory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	Marks        int       `gorm:"not null" json:"marks"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
	GradedBy     uint      `gorm:"not null" json:"graded_by"`
	GradedAt     time.Time `gorm:"not null" json:"graded_at"`
}

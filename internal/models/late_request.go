package models

import "time"

// LateSubmissionRequest is a student's petition to submit after the due date.
// PENDING requests move exactly once to APPROVED or REJECTED; both are
// terminal for the row. A rejected pair may file a fresh request.
type LateSubmissionRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	AssignmentID    uint       `gorm:"not null;index:idx_late_request_pair" json:"assignment_id"`
	StudentID       uint       `gorm:"not null;index:idx_late_request_pair" json:"student_id"`
	Reason          string     `gorm:"size:500;not null" json:"reason"`
	Status          string     `gorm:"size:16;not null" json:"status"`
	RequestedAt     time.Time  `gorm:"not null" json:"requested_at"`
	RespondedAt     *time.Time `json:"responded_at"`
	TeacherResponse string     `gorm:"type:text" json:"teacher_response"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Assignment Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student    User       `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

const (
	// LateRequestStatusPending awaits a teacher decision.
	LateRequestStatusPending = "pending"
	// LateRequestStatusApproved unlocks a single late submission.
	LateRequestStatusApproved = "approved"
	// LateRequestStatusRejected denies late submission for this request.
	LateRequestStatusRejected = "rejected"
)

// IsTerminal reports whether the request has already been responded to.
func (r LateSubmissionRequest) IsTerminal() bool {
	return r.Status == LateRequestStatusApproved || r.Status == LateRequestStatusRejected
}

// Blocks reports whether this request forbids creating a new one for the pair.
func (r LateSubmissionRequest) Blocks() bool {
	return r.Status == LateRequestStatusPending || r.Status == LateRequestStatusApproved
}

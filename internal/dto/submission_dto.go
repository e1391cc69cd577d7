package dto

import (
	"strings"
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// SubmissionCreateRequest is the student payload for handing in work.
// At least one of SubmissionText or AttachmentURL must be present.
type SubmissionCreateRequest struct {
	AssignmentID   uint   `json:"assignment_id" validate:"required,gt=0"`
	SubmissionText string `json:"submission_text" validate:"omitempty,max=20000"`
	AttachmentURL  string `json:"attachment_url" validate:"omitempty,url"`
}

// HasContent reports whether the payload carries any submission content.
func (r SubmissionCreateRequest) HasContent() bool {
	return strings.TrimSpace(r.SubmissionText) != "" || strings.TrimSpace(r.AttachmentURL) != ""
}

// GradeSubmissionRequest is the teacher payload for recording marks.
type GradeSubmissionRequest struct {
	MarksObtained *int   `json:"marks_obtained" validate:"required,gte=0"`
	Feedback      string `json:"feedback" validate:"omitempty,max=5000"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	AssignmentID *uint   `query:"assignment_id"`
	StudentID    *uint   `query:"student_id"`
	Status       *string `query:"status" validate:"omitempty,oneof=submitted graded"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID             uint                   `json:"id"`
	AssignmentID   uint                   `json:"assignment_id"`
	StudentID      uint                   `json:"student_id"`
	SubmissionText string                 `json:"submission_text"`
	AttachmentURL  string                 `json:"attachment_url"`
	SubmittedAt    time.Time              `json:"submitted_at"`
	IsLate         bool                   `json:"is_late"`
	Status         string                 `json:"status"`
	MarksObtained  *int                   `json:"marks_obtained"`
	Feedback       string                 `json:"feedback"`
	GradedBy       *uint                  `json:"graded_by"`
	GradedAt       *time.Time             `json:"graded_at"`
	Assignment     AssignmentLite         `json:"assignment"`
	Student        UserLite               `json:"student"`
	History        []GradeHistoryResponse `json:"history,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// GradeHistoryResponse serializes one grading write.
type GradeHistoryResponse struct {
	Marks    int       `json:"marks"`
	Feedback string    `json:"feedback"`
	GradedBy uint      `json:"graded_by"`
	GradedAt time.Time `json:"graded_at"`
}

// UserLite summarizes a user without exposing full profile data.
type UserLite struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:             model.ID,
		AssignmentID:   model.AssignmentID,
		StudentID:      model.StudentID,
		SubmissionText: model.SubmissionText,
		AttachmentURL:  model.AttachmentURL,
		SubmittedAt:    model.SubmittedAt,
		IsLate:         model.IsLate,
		Status:         model.Status,
		MarksObtained:  model.MarksObtained,
		Feedback:       model.Feedback,
		GradedBy:       model.GradedBy,
		GradedAt:       model.GradedAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}

	if model.Assignment.ID != 0 {
		response.Assignment = NewAssignmentLite(model.Assignment)
	}

	if model.Student.ID != 0 {
		response.Student = UserLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
		}
	}

	if len(model.History) > 0 {
		history := make([]GradeHistoryResponse, 0, len(model.History))
		for _, entry := range model.History {
			history = append(history, GradeHistoryResponse{
				Marks:    entry.Marks,
				Feedback: entry.Feedback,
				GradedBy: entry.GradedBy,
				GradedAt: entry.GradedAt,
			})
		}
		response.History = history
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(models []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(models))
	for _, submission := range models {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}

package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/timeutil"
)

// AssignmentCreateRequest describes the payload for publishing an assignment.
type AssignmentCreateRequest struct {
	ClassGrade  int    `form:"class_grade" json:"class_grade" validate:"required,gte=1,lte=12"`
	Title       string `form:"title" json:"title" validate:"required,min=3"`
	Description string `form:"description" json:"description" validate:"required,min=10"`
	TotalMarks  int    `form:"total_marks" json:"total_marks" validate:"required,gte=1"`
	DueDate     string `form:"due_date" json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// AssignmentUpdateRequest describes a partial teacher edit.
type AssignmentUpdateRequest struct {
	Title       *string `form:"title" json:"title" validate:"omitempty,min=3"`
	Description *string `form:"description" json:"description" validate:"omitempty,min=10"`
	TotalMarks  *int    `form:"total_marks" json:"total_marks" validate:"omitempty,gte=1"`
	DueDate     *string `form:"due_date" json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Status      *string `form:"status" json:"status" validate:"omitempty,oneof=draft published closed"`
}

// AssignmentResponse is the serialized representation returned to API clients.
// DueDateLocal carries the IST rendering used by the frontend.
type AssignmentResponse struct {
	ID            uint      `json:"id"`
	ClassGrade    int       `json:"class_grade"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TotalMarks    int       `json:"total_marks"`
	DueDate       time.Time `json:"due_date"`
	DueDateLocal  string    `json:"due_date_local"`
	AttachmentURL string    `json:"attachment_url"`
	Status        string    `json:"status"`
	CreatedBy     uint      `json:"created_by"`
	IsOverdue     bool      `json:"is_overdue"`
	HasSubmitted  *bool     `json:"has_submitted,omitempty"`
	IsGraded      *bool     `json:"is_graded,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment, now time.Time) AssignmentResponse {
	return AssignmentResponse{
		ID:            model.ID,
		ClassGrade:    model.ClassGrade,
		Title:         model.Title,
		Description:   model.Description,
		TotalMarks:    model.TotalMarks,
		DueDate:       model.DueDate,
		DueDateLocal:  timeutil.FormatIST(model.DueDate),
		AttachmentURL: model.AttachmentURL,
		Status:        model.Status,
		CreatedBy:     model.CreatedBy,
		IsOverdue:     model.IsPastDue(now),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// AssignmentLite summarizes an assignment inside other responses.
type AssignmentLite struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	ClassGrade int       `json:"class_grade"`
	TotalMarks int       `json:"total_marks"`
	DueDate    time.Time `json:"due_date"`
}

// NewAssignmentLite converts a model into its summary form.
func NewAssignmentLite(model models.Assignment) AssignmentLite {
	return AssignmentLite{
		ID:         model.ID,
		Title:      model.Title,
		ClassGrade: model.ClassGrade,
		TotalMarks: model.TotalMarks,
		DueDate:    model.DueDate,
	}
}

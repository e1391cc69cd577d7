package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// LateRequestCreateRequest is the student payload for requesting a late submission.
type LateRequestCreateRequest struct {
	AssignmentID uint   `json:"assignment_id" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"required,min=10,max=500"`
}

// LateRequestRespondRequest is the teacher decision payload.
type LateRequestRespondRequest struct {
	Decision        string `json:"decision" validate:"required,oneof=approved rejected"`
	TeacherResponse string `json:"teacher_response" validate:"omitempty,max=1000"`
}

// LateRequestFilter narrows late-request listings.
type LateRequestFilter struct {
	AssignmentID *uint   `query:"assignment_id"`
	StudentID    *uint   `query:"student_id"`
	Status       *string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// LateRequestResponse is the serialized late-submission request.
type LateRequestResponse struct {
	ID              uint           `json:"id"`
	AssignmentID    uint           `json:"assignment_id"`
	StudentID       uint           `json:"student_id"`
	Reason          string         `json:"reason"`
	Status          string         `json:"status"`
	RequestedAt     time.Time      `json:"requested_at"`
	RespondedAt     *time.Time     `json:"responded_at"`
	TeacherResponse string         `json:"teacher_response"`
	Assignment      AssignmentLite `json:"assignment"`
	Student         UserLite       `json:"student"`
}

// NewLateRequestResponse converts a model into a DTO.
func NewLateRequestResponse(model models.LateSubmissionRequest) LateRequestResponse {
	response := LateRequestResponse{
		ID:              model.ID,
		AssignmentID:    model.AssignmentID,
		StudentID:       model.StudentID,
		Reason:          model.Reason,
		Status:          model.Status,
		RequestedAt:     model.RequestedAt,
		RespondedAt:     model.RespondedAt,
		TeacherResponse: model.TeacherResponse,
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

	return response
}

// NewLateRequestResponseSlice converts request models into DTOs.
func NewLateRequestResponseSlice(models []models.LateSubmissionRequest) []LateRequestResponse {
	responses := make([]LateRequestResponse, 0, len(models))
	for _, request := range models {
		responses = append(responses, NewLateRequestResponse(request))
	}

	return responses
}

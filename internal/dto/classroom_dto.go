package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// MeetingLinkUpdateRequest is the teacher payload for rotating the join link.
type MeetingLinkUpdateRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
}

// ClassroomResponse serializes a virtual classroom.
type ClassroomResponse struct {
	ID          uint      `json:"id"`
	ClassGrade  int       `json:"class_grade"`
	Name        string    `json:"name"`
	MeetingLink string    `json:"meeting_link"`
	UpdatedBy   uint      `json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewClassroomResponse converts a model into a DTO.
func NewClassroomResponse(model models.VirtualClassroom) ClassroomResponse {
	return ClassroomResponse{
		ID:          model.ID,
		ClassGrade:  model.ClassGrade,
		Name:        model.Name,
		MeetingLink: model.MeetingLink,
		UpdatedBy:   model.UpdatedBy,
		UpdatedAt:   model.UpdatedAt,
	}
}

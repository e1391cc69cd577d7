package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// TimetableEntryRequest is the teacher payload for creating or replacing a
// weekly schedule slot. Times are wall-clock "HH:MM" strings.
type TimetableEntryRequest struct {
	ClassGrade int    `json:"class_grade" validate:"required,gte=1,lte=12"`
	DayOfWeek  string `json:"day_of_week" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Notes      string `json:"notes" validate:"omitempty,max=500"`
}

// TimetableEntryResponse is the serialized schedule slot.
type TimetableEntryResponse struct {
	ID         uint      `json:"id"`
	ClassGrade int       `json:"class_grade"`
	DayOfWeek  string    `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTimetableEntryResponse converts a model into a DTO.
func NewTimetableEntryResponse(model models.TimetableEntry) TimetableEntryResponse {
	return TimetableEntryResponse{
		ID:         model.ID,
		ClassGrade: model.ClassGrade,
		DayOfWeek:  models.DayOfWeekName(model.DayOfWeek),
		StartTime:  model.StartTime,
		EndTime:    model.EndTime,
		Notes:      model.Notes,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewTimetableEntryResponseSlice converts timetable models into DTOs.
func NewTimetableEntryResponseSlice(models []models.TimetableEntry) []TimetableEntryResponse {
	responses := make([]TimetableEntryResponse, 0, len(models))
	for _, entry := range models {
		responses = append(responses, NewTimetableEntryResponse(entry))
	}

	return responses
}

package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// MaterialCreateRequest describes the multipart payload for uploading study material.
type MaterialCreateRequest struct {
	ClassGrade  int    `form:"class_grade" validate:"required,gte=1,lte=12"`
	Title       string `form:"title" validate:"required,min=3"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}

// MaterialResponse is the serialized learning material.
type MaterialResponse struct {
	ID          uint      `json:"id"`
	ClassGrade  int       `json:"class_grade"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	UploadedBy  uint      `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMaterialResponse converts a model into a DTO.
func NewMaterialResponse(model models.LearningMaterial) MaterialResponse {
	return MaterialResponse{
		ID:          model.ID,
		ClassGrade:  model.ClassGrade,
		Title:       model.Title,
		Description: model.Description,
		FileURL:     model.FileURL,
		FileType:    model.FileType,
		UploadedBy:  model.UploadedBy,
		CreatedAt:   model.CreatedAt,
	}
}

// NewMaterialResponseSlice converts material models into DTOs.
func NewMaterialResponseSlice(materials []models.LearningMaterial) []MaterialResponse {
	responses := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		responses = append(responses, NewMaterialResponse(material))
	}

	return responses
}

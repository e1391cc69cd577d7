package dto

import (
	"time"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// QueryCreateRequest is the student payload for posting a forum question.
type QueryCreateRequest struct {
	Subject string `json:"subject" validate:"required,min=3,max=255"`
	Content string `json:"content" validate:"required,min=10,max=10000"`
}

// QueryReplyCreateRequest is the payload for answering a query.
type QueryReplyCreateRequest struct {
	Content string `json:"content" validate:"required,min=2,max=10000"`
}

// QueryResponse serializes a forum question with its replies.
type QueryResponse struct {
	ID         uint                 `json:"id"`
	ClassGrade int                  `json:"class_grade"`
	StudentID  uint                 `json:"student_id"`
	Subject    string               `json:"subject"`
	Content    string               `json:"content"`
	Resolved   bool                 `json:"resolved"`
	Student    UserLite             `json:"student"`
	Replies    []QueryReplyResponse `json:"replies"`
	CreatedAt  time.Time            `json:"created_at"`
}

// QueryReplyResponse serializes one forum answer.
type QueryReplyResponse struct {
	ID             uint      `json:"id"`
	QueryID        uint      `json:"query_id"`
	AuthorID       uint      `json:"author_id"`
	Content        string    `json:"content"`
	IsTeacherReply bool      `json:"is_teacher_reply"`
	Author         UserLite  `json:"author"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewQueryResponse converts a model into a DTO.
func NewQueryResponse(model models.Query) QueryResponse {
	response := QueryResponse{
		ID:         model.ID,
		ClassGrade: model.ClassGrade,
		StudentID:  model.StudentID,
		Subject:    model.Subject,
		Content:    model.Content,
		Resolved:   model.Resolved,
		Replies:    make([]QueryReplyResponse, 0, len(model.Replies)),
		CreatedAt:  model.CreatedAt,
	}

	if model.Student.ID != 0 {
		response.Student = UserLite{ID: model.Student.ID, Name: model.Student.Name, Email: model.Student.Email}
	}

	for _, reply := range model.Replies {
		response.Replies = append(response.Replies, NewQueryReplyResponse(reply))
	}

	return response
}

// NewQueryReplyResponse converts a reply model into a DTO.
func NewQueryReplyResponse(model models.QueryReply) QueryReplyResponse {
	response := QueryReplyResponse{
		ID:             model.ID,
		QueryID:        model.QueryID,
		AuthorID:       model.AuthorID,
		Content:        model.Content,
		IsTeacherReply: model.IsTeacherReply,
		CreatedAt:      model.CreatedAt,
	}

	if model.Author.ID != 0 {
		response.Author = UserLite{ID: model.Author.ID, Name: model.Author.Name, Email: model.Author.Email}
	}

	return response
}

// NewQueryResponseSlice converts query models into DTOs.
func NewQueryResponseSlice(queries []models.Query) []QueryResponse {
	responses := make([]QueryResponse, 0, len(queries))
	for _, query := range queries {
		responses = append(responses, NewQueryResponse(query))
	}

	return responses
}

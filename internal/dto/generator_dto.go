package dto

// GenerateAssignmentRequest asks the AI helper for a homework draft.
type GenerateAssignmentRequest struct {
	Topic      string `json:"topic" validate:"required,min=3,max=255"`
	ClassGrade int    `json:"class_grade" validate:"required,gte=1,lte=12"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// GenerateAssignmentResponse carries the generated draft back to the teacher.
type GenerateAssignmentResponse struct {
	Topic      string `json:"topic"`
	ClassGrade int    `json:"class_grade"`
	Content    string `json:"content"`
}

package ai

import "context"

// DraftInput describes the homework the teacher wants generated.
type DraftInput struct {
	Topic      string
	ClassGrade int
	Difficulty string
}

// DraftResult is the generated assignment text.
type DraftResult struct {
	Content string
}

// DraftGenerator produces assignment drafts from a topic prompt.
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, input DraftInput) (DraftResult, error)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/observability"
	"github.com/noah-isme/tuition-go-api/pkg/ai"
)

type fakeDraftGenerator struct {
	lastInput ai.DraftInput
}

func (f *fakeDraftGenerator) GenerateDraft(ctx context.Context, input ai.DraftInput) (ai.DraftResult, error) {
	f.lastInput = input
	return ai.DraftResult{Content: "Title: Fractions practice\n1. Simplify 4/8."}, nil
}

func TestGenerateDraft(t *testing.T) {
	generator := &fakeDraftGenerator{}
	svc := NewGeneratorService(generator, testValidator(), testLogger(), observability.NewTestMetrics())

	resp, err := svc.GenerateDraft(context.Background(), teacherPrincipal(1), dto.GenerateAssignmentRequest{
		Topic:      "Fractions",
		ClassGrade: 6,
		Difficulty: "easy",
	})
	require.NoError(t, err)
	require.Contains(t, resp.Content, "Fractions practice")
	require.Equal(t, "Fractions", generator.lastInput.Topic)
	require.Equal(t, 6, generator.lastInput.ClassGrade)
}

func TestGenerateDraftStudentForbidden(t *testing.T) {
	svc := NewGeneratorService(&fakeDraftGenerator{}, testValidator(), testLogger(), observability.NewTestMetrics())

	_, err := svc.GenerateDraft(context.Background(), studentPrincipal(5, 8), dto.GenerateAssignmentRequest{
		Topic:      "Fractions",
		ClassGrade: 6,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGenerateDraftUnconfigured(t *testing.T) {
	svc := NewGeneratorService(nil, testValidator(), testLogger(), observability.NewTestMetrics())

	_, err := svc.GenerateDraft(context.Background(), teacherPrincipal(1), dto.GenerateAssignmentRequest{
		Topic:      "Fractions",
		ClassGrade: 6,
	})
	require.ErrorIs(t, err, ErrGeneratorUnavailable)
}

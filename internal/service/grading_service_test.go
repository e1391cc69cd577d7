package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/observability"
)

func newGradingFixture(t *testing.T) (*gradingService, *memorySubmissionRepo, *captureEventPublisher) {
	t.Helper()

	assignments := newMemoryAssignmentRepo()
	require.NoError(t, assignments.Create(context.Background(), &models.Assignment{
		ClassGrade: 8,
		Title:      "Fractions quiz",
		TotalMarks: 100,
		DueDate:    time.Date(2025, 2, 10, 18, 0, 0, 0, time.UTC),
		Status:     models.AssignmentStatusPublished,
		CreatedBy:  1,
	}))

	submissions := newMemorySubmissionRepo()
	require.NoError(t, submissions.Create(context.Background(), &models.Submission{
		AssignmentID:   1,
		StudentID:      5,
		SubmissionText: "worked answers",
		SubmittedAt:    time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC),
		Status:         models.SubmissionStatusSubmitted,
	}))

	events := &captureEventPublisher{}
	svc := NewGradingService(
		submissions,
		assignments,
		events,
		NewActivityService(&memoryActivityRepo{}, testLogger()),
		testValidator(),
		testLogger(),
		observability.NewTestMetrics(),
	).(*gradingService)
	svc.now = func() time.Time { return time.Date(2025, 2, 11, 10, 0, 0, 0, time.UTC) }

	return svc, submissions, events
}

func intPtr(v int) *int { return &v }

func TestGradeSubmission(t *testing.T) {
	svc, _, events := newGradingFixture(t)

	resp, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(85),
		Feedback:      "Good work, revise question 4.",
	})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, resp.Status)
	require.Equal(t, 85, *resp.MarksObtained)
	require.Equal(t, uint(1), *resp.GradedBy)
	require.NotNil(t, resp.GradedAt)
	require.Len(t, events.graded, 1)
	require.Equal(t, 100, events.graded[0].TotalMarks)
}

func TestGradeMarksOutOfRange(t *testing.T) {
	svc, _, _ := newGradingFixture(t)

	_, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(101),
	})
	require.ErrorIs(t, err, ErrMarksOutOfRange)
}

func TestGradeFullMarksAllowed(t *testing.T) {
	svc, _, _ := newGradingFixture(t)

	resp, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(100),
	})
	require.NoError(t, err)
	require.Equal(t, 100, *resp.MarksObtained)
}

func TestGradeIdempotentRepeat(t *testing.T) {
	svc, submissions, events := newGradingFixture(t)

	payload := dto.GradeSubmissionRequest{MarksObtained: intPtr(70), Feedback: "Solid."}
	_, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, payload)
	require.NoError(t, err)

	// Replaying the identical grade writes nothing new.
	_, err = svc.Grade(context.Background(), teacherPrincipal(1), 1, payload)
	require.NoError(t, err)
	require.Len(t, events.graded, 1)

	stored, err := submissions.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stored.History, 1)
}

func TestReGradeReplacesAndKeepsHistory(t *testing.T) {
	svc, submissions, events := newGradingFixture(t)

	_, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(60),
		Feedback:      "Check question 2.",
	})
	require.NoError(t, err)

	resp, err := svc.Grade(context.Background(), teacherPrincipal(1), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(75),
		Feedback:      "Revised after review.",
	})
	require.NoError(t, err)
	require.Equal(t, 75, *resp.MarksObtained)
	require.Equal(t, "Revised after review.", resp.Feedback)
	require.Len(t, events.graded, 2)

	stored, err := submissions.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stored.History, 2)
	require.Equal(t, 60, stored.History[0].Marks)
	require.Equal(t, 75, stored.History[1].Marks)
}

func TestGradeRequiresOwnership(t *testing.T) {
	svc, _, _ := newGradingFixture(t)

	_, err := svc.Grade(context.Background(), teacherPrincipal(99), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(50),
	})
	require.ErrorIs(t, err, ErrNotAssignmentOwner)
}

func TestGradeStudentForbidden(t *testing.T) {
	svc, _, _ := newGradingFixture(t)

	_, err := svc.Grade(context.Background(), studentPrincipal(5, 8), 1, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(50),
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGradeUnknownSubmission(t *testing.T) {
	svc, _, _ := newGradingFixture(t)

	_, err := svc.Grade(context.Background(), teacherPrincipal(1), 42, dto.GradeSubmissionRequest{
		MarksObtained: intPtr(50),
	})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

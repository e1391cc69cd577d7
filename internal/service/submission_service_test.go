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

func newSubmissionFixture(t *testing.T, dueDate time.Time, now time.Time) (*submissionService, *memoryAssignmentRepo, *memoryLateRequestRepo) {
	t.Helper()

	assignments := newMemoryAssignmentRepo()
	require.NoError(t, assignments.Create(context.Background(), &models.Assignment{
		ClassGrade: 8,
		Title:      "Algebra worksheet",
		TotalMarks: 100,
		DueDate:    dueDate,
		Status:     models.AssignmentStatusPublished,
		CreatedBy:  1,
	}))

	requests := newMemoryLateRequestRepo()
	svc := NewSubmissionService(
		newMemorySubmissionRepo(),
		assignments,
		requests,
		testValidator(),
		testLogger(),
		observability.NewTestMetrics(),
	).(*submissionService)
	svc.now = func() time.Time { return now }

	return svc, assignments, requests
}

func TestSubmitOnTime(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(48 * time.Hour)
	svc, _, _ := newSubmissionFixture(t, due, now)

	resp, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "my answers",
	})
	require.NoError(t, err)
	require.False(t, resp.IsLate)
	require.Equal(t, models.SubmissionStatusSubmitted, resp.Status)
	require.Equal(t, now, resp.SubmittedAt)
}

func TestSubmitTwiceRejected(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	student := studentPrincipal(5, 8)
	_, err := svc.Submit(context.Background(), student, dto.SubmissionCreateRequest{AssignmentID: 1, SubmissionText: "first"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), student, dto.SubmissionCreateRequest{AssignmentID: 1, SubmissionText: "second"})
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmitOverdueWithoutApproval(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(-time.Hour), now)

	_, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "late answers",
	})
	require.ErrorIs(t, err, ErrLateWithoutApproval)
}

func TestSubmitOverdueWithPendingRequestRejected(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, requests := newSubmissionFixture(t, now.Add(-time.Hour), now)

	require.NoError(t, requests.CreateIfNoActive(context.Background(), &models.LateSubmissionRequest{
		AssignmentID: 1,
		StudentID:    5,
		Reason:       "internet outage at home",
		Status:       models.LateRequestStatusPending,
		RequestedAt:  now,
	}))

	_, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "late answers",
	})
	require.ErrorIs(t, err, ErrLateWithoutApproval)
}

func TestSubmitOverdueWithApprovalFlagsLate(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, requests := newSubmissionFixture(t, now.Add(-time.Hour), now)

	require.NoError(t, requests.CreateIfNoActive(context.Background(), &models.LateSubmissionRequest{
		AssignmentID: 1,
		StudentID:    5,
		Reason:       "was sick for three days",
		Status:       models.LateRequestStatusApproved,
		RequestedAt:  now.Add(-30 * time.Minute),
	}))

	resp, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "late answers",
	})
	require.NoError(t, err)
	require.True(t, resp.IsLate)
}

func TestSubmitAtExactDeadlineIsOnTime(t *testing.T) {
	due := time.Date(2025, 2, 10, 18, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, due, due)

	resp, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "right on the buzzer",
	})
	require.NoError(t, err)
	require.False(t, resp.IsLate)
}

func TestSubmitEmptyContentRejected(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	_, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "   ",
	})
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestSubmitWrongClassRejected(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	_, err := svc.Submit(context.Background(), studentPrincipal(5, 9), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "answers",
	})
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSubmitClosedAssignmentRejected(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, assignments, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	assignment, err := assignments.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assignment.Status = models.AssignmentStatusClosed
	require.NoError(t, assignments.Update(context.Background(), &assignment))

	_, err = svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "answers",
	})
	require.ErrorIs(t, err, ErrAssignmentClosed)
}

func TestSubmitTeacherForbidden(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	_, err := svc.Submit(context.Background(), teacherPrincipal(1), dto.SubmissionCreateRequest{
		AssignmentID:   1,
		SubmissionText: "answers",
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestListScopedToStudent(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	_, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{AssignmentID: 1, SubmissionText: "mine"})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), studentPrincipal(6, 8), dto.SubmissionCreateRequest{AssignmentID: 1, SubmissionText: "theirs"})
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), studentPrincipal(5, 8), dto.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, uint(5), mine[0].StudentID)

	all, err := svc.List(context.Background(), teacherPrincipal(1), dto.SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetHidesOtherStudents(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newSubmissionFixture(t, now.Add(time.Hour), now)

	created, err := svc.Submit(context.Background(), studentPrincipal(5, 8), dto.SubmissionCreateRequest{AssignmentID: 1, SubmissionText: "mine"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), studentPrincipal(6, 8), created.ID)
	require.ErrorIs(t, err, ErrSubmissionNotFound)

	resp, err := svc.Get(context.Background(), teacherPrincipal(1), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, resp.ID)
}

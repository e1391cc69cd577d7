package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/observability"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

// ErrMarksOutOfRange indicates marks outside [0, assignment total].
var ErrMarksOutOfRange = errors.New("marks must be between zero and the assignment total")

// GradingService records marks and feedback against submissions. Grading is
// idempotent: repeating the same marks and feedback changes nothing, while a
// different write replaces the grade and appends a history row.
type GradingService interface {
	Grade(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	events      EventPublisher
	activity    ActivityRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
	metrics     *observability.Metrics
	tracer      trace.Tracer
	now         func() time.Time
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	events EventPublisher,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) GradingService {
	return &gradingService{
		submissions: submissionRepo,
		assignments: assignmentRepo,
		events:      events,
		activity:    activity,
		validator:   validate,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		metrics:     metrics,
		tracer:      otel.Tracer("grading_service"),
		now:         time.Now,
	}
}

func (s *gradingService) Grade(ctx context.Context, principal Principal, submissionID uint, payload dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GradingService.Grade")
	defer span.End()

	if !principal.IsTeacher() {
		return dto.SubmissionResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if !assignment.OwnedBy(principal.ID) {
		return dto.SubmissionResponse{}, ErrNotAssignmentOwner
	}

	marks := *payload.MarksObtained
	if marks < 0 || marks > assignment.TotalMarks {
		return dto.SubmissionResponse{}, ErrMarksOutOfRange
	}

	// Same marks and feedback: nothing to write, return the current state.
	if submission.IsGraded() && *submission.MarksObtained == marks && submission.Feedback == payload.Feedback {
		return dto.NewSubmissionResponse(submission), nil
	}

	now := s.now()
	gradedBy := principal.ID
	submission.MarksObtained = &marks
	submission.Feedback = payload.Feedback
	submission.GradedBy = &gradedBy
	submission.GradedAt = &now
	submission.Status = models.SubmissionStatusGraded

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	history := models.SubmissionGradeHistory{
		SubmissionID: submission.ID,
		Marks:        marks,
		Feedback:     payload.Feedback,
		GradedBy:     gradedBy,
		GradedAt:     now,
	}
	if err := s.submissions.CreateHistory(ctx, &history); err != nil {
		s.logger.Error().Err(err).Uint("submission_id", submission.ID).Msg("failed to append grade history")
	}

	span.SetAttributes(
		attribute.Int("submission.id", int(submission.ID)),
		attribute.Int("submission.marks", marks),
	)

	if s.metrics != nil {
		s.metrics.SubmissionsGraded.Inc()
	}

	s.events.SubmissionGraded(ctx, SubmissionGradedEvent{
		SubmissionID:  submission.ID,
		AssignmentID:  assignment.ID,
		StudentID:     submission.StudentID,
		MarksObtained: marks,
		TotalMarks:    assignment.TotalMarks,
		GradedBy:      gradedBy,
		GradedAt:      now,
	})

	s.recordActivity(ctx, principal, submission.ID, map[string]interface{}{
		"assignment_id": assignment.ID,
		"marks":         marks,
		"total_marks":   assignment.TotalMarks,
	})

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("teacher_id", principal.ID).
		Int("marks", marks).
		Msg("submission graded")

	graded, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(graded), nil
}

func (s *gradingService) recordActivity(ctx context.Context, principal Principal, submissionID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, ActivityEntry{
		Actor:      principal,
		Action:     "submission_graded",
		EntityType: "submission",
		EntityID:   &submissionID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record activity")
	}
}

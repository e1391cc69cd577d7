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

var (
	// ErrLateRequestNotFound indicates the late request could not be located.
	ErrLateRequestNotFound = errors.New("late request not found")
	// ErrNotYetOverdue indicates the assignment's deadline has not passed.
	ErrNotYetOverdue = errors.New("assignment is not yet overdue")
	// ErrDuplicateRequest indicates an active request already exists for the pair.
	ErrDuplicateRequest = errors.New("an active late request already exists for this assignment")
	// ErrAlreadyResponded indicates the request was already approved or rejected.
	ErrAlreadyResponded = errors.New("late request has already been responded to")
	// ErrNotAssignmentOwner indicates the teacher does not own the assignment.
	ErrNotAssignmentOwner = errors.New("only the assignment's teacher can respond to this request")
)

// LateRequestService drives the late-submission request workflow. Requests are
// created by students against overdue assignments and decided exactly once by
// the owning teacher.
type LateRequestService interface {
	Create(ctx context.Context, principal Principal, payload dto.LateRequestCreateRequest) (dto.LateRequestResponse, error)
	Respond(ctx context.Context, principal Principal, id uint, payload dto.LateRequestRespondRequest) (dto.LateRequestResponse, error)
	List(ctx context.Context, principal Principal, filter dto.LateRequestFilter) ([]dto.LateRequestResponse, error)
	Get(ctx context.Context, principal Principal, id uint) (dto.LateRequestResponse, error)
}

type lateRequestService struct {
	requests    repository.LateRequestRepository
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	events      EventPublisher
	activity    ActivityRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
	metrics     *observability.Metrics
	tracer      trace.Tracer
	now         func() time.Time
}

// NewLateRequestService constructs a LateRequestService instance.
func NewLateRequestService(
	requestRepo repository.LateRequestRepository,
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	events EventPublisher,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) LateRequestService {
	return &lateRequestService{
		requests:    requestRepo,
		assignments: assignmentRepo,
		submissions: submissionRepo,
		events:      events,
		activity:    activity,
		validator:   validate,
		logger:      logger.With().Str("component", "late_request_service").Logger(),
		metrics:     metrics,
		tracer:      otel.Tracer("late_request_service"),
		now:         time.Now,
	}
}

func (s *lateRequestService) Create(ctx context.Context, principal Principal, payload dto.LateRequestCreateRequest) (dto.LateRequestResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LateRequestService.Create")
	defer span.End()

	if !principal.IsStudent() {
		return dto.LateRequestResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.LateRequestResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LateRequestResponse{}, ErrAssignmentNotFound
		}
		return dto.LateRequestResponse{}, err
	}

	if assignment.Status == models.AssignmentStatusDraft {
		return dto.LateRequestResponse{}, ErrAssignmentNotFound
	}

	if !principal.EnrolledIn(assignment.ClassGrade) {
		return dto.LateRequestResponse{}, ErrNotEnrolled
	}

	now := s.now()
	if !assignment.IsPastDue(now) {
		return dto.LateRequestResponse{}, ErrNotYetOverdue
	}

	// A student who already submitted has nothing left to request.
	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, principal.ID); err == nil {
		return dto.LateRequestResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LateRequestResponse{}, err
	}

	request := models.LateSubmissionRequest{
		AssignmentID: assignment.ID,
		StudentID:    principal.ID,
		Reason:       payload.Reason,
		Status:       models.LateRequestStatusPending,
		RequestedAt:  now,
	}

	if err := s.requests.CreateIfNoActive(ctx, &request); err != nil {
		if errors.Is(err, repository.ErrActiveRequestExists) {
			return dto.LateRequestResponse{}, ErrDuplicateRequest
		}
		return dto.LateRequestResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("late_request.id", int(request.ID)),
		attribute.Int("assignment.id", int(assignment.ID)),
	)

	s.events.LateRequestCreated(ctx, LateRequestEvent{
		RequestID:    request.ID,
		AssignmentID: assignment.ID,
		StudentID:    principal.ID,
		Status:       request.Status,
		OccurredAt:   now,
	})

	if s.metrics != nil {
		s.metrics.LateRequestsCreated.Inc()
	}

	s.recordActivity(ctx, principal, "late_request_created", request.ID, map[string]interface{}{
		"assignment_id": assignment.ID,
	})

	s.logger.Info().
		Uint("request_id", request.ID).
		Uint("assignment_id", assignment.ID).
		Uint("student_id", principal.ID).
		Msg("late request created")

	created, err := s.requests.GetByID(ctx, request.ID)
	if err != nil {
		return dto.LateRequestResponse{}, err
	}

	return dto.NewLateRequestResponse(created), nil
}

func (s *lateRequestService) Respond(ctx context.Context, principal Principal, id uint, payload dto.LateRequestRespondRequest) (dto.LateRequestResponse, error) {
	ctx, span := s.tracer.Start(ctx, "LateRequestService.Respond")
	defer span.End()

	if !principal.IsTeacher() {
		return dto.LateRequestResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.LateRequestResponse{}, err
	}

	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LateRequestResponse{}, ErrLateRequestNotFound
		}
		return dto.LateRequestResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, request.AssignmentID)
	if err != nil {
		return dto.LateRequestResponse{}, err
	}

	if !assignment.OwnedBy(principal.ID) {
		return dto.LateRequestResponse{}, ErrNotAssignmentOwner
	}

	if request.IsTerminal() {
		return dto.LateRequestResponse{}, ErrAlreadyResponded
	}

	// Conditional update so a concurrent responder cannot overwrite the
	// first decision; the loser sees the request as already responded.
	now := s.now()
	if err := s.requests.Decide(ctx, request.ID, payload.Decision, payload.TeacherResponse, now); err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return dto.LateRequestResponse{}, ErrAlreadyResponded
		}
		return dto.LateRequestResponse{}, err
	}

	request.Status = payload.Decision
	request.RespondedAt = &now
	request.TeacherResponse = payload.TeacherResponse

	span.SetAttributes(
		attribute.Int("late_request.id", int(request.ID)),
		attribute.String("late_request.decision", payload.Decision),
	)

	s.events.LateRequestResponded(ctx, LateRequestEvent{
		RequestID:    request.ID,
		AssignmentID: request.AssignmentID,
		StudentID:    request.StudentID,
		Status:       request.Status,
		OccurredAt:   now,
	})

	if s.metrics != nil {
		s.metrics.LateRequestsDecided.WithLabelValues(payload.Decision).Inc()
	}

	s.recordActivity(ctx, principal, "late_request_responded", request.ID, map[string]interface{}{
		"assignment_id": request.AssignmentID,
		"decision":      payload.Decision,
	})

	s.logger.Info().
		Uint("request_id", request.ID).
		Uint("teacher_id", principal.ID).
		Str("decision", payload.Decision).
		Msg("late request responded")

	return dto.NewLateRequestResponse(request), nil
}

func (s *lateRequestService) List(ctx context.Context, principal Principal, filter dto.LateRequestFilter) ([]dto.LateRequestResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.LateRequestFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
		Status:       filter.Status,
	}

	if principal.IsStudent() {
		studentID := principal.ID
		repoFilter.StudentID = &studentID
	}

	requests, err := s.requests.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewLateRequestResponseSlice(requests), nil
}

func (s *lateRequestService) Get(ctx context.Context, principal Principal, id uint) (dto.LateRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LateRequestResponse{}, ErrLateRequestNotFound
		}
		return dto.LateRequestResponse{}, err
	}

	if principal.IsStudent() && request.StudentID != principal.ID {
		return dto.LateRequestResponse{}, ErrLateRequestNotFound
	}

	return dto.NewLateRequestResponse(request), nil
}

func (s *lateRequestService) recordActivity(ctx context.Context, principal Principal, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, ActivityEntry{
		Actor:      principal,
		Action:     action,
		EntityType: "late_request",
		EntityID:   &entityID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/observability"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

var (
	// ErrAssignmentNotFound indicates the assignment could not be located.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrSubmissionNotFound indicates a submission could not be found.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrAlreadySubmitted indicates the student already handed in work.
	ErrAlreadySubmitted = errors.New("assignment already submitted")
	// ErrLateWithoutApproval indicates overdue work without an approved late request.
	ErrLateWithoutApproval = errors.New("assignment is overdue and no approved late request exists")
	// ErrEmptyContent indicates the submission carries neither text nor attachment.
	ErrEmptyContent = errors.New("submission text or attachment is required")
	// ErrNotEnrolled indicates the student is not in the assignment's class.
	ErrNotEnrolled = errors.New("student is not enrolled in this class")
	// ErrAssignmentClosed indicates the assignment no longer accepts work.
	ErrAssignmentClosed = errors.New("assignment is closed")
	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("operation not permitted for this role")
)

// SubmissionService orchestrates the submission workflow: the late gate,
// the at-most-one rule, and submission listing.
type SubmissionService interface {
	Submit(ctx context.Context, principal Principal, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context, principal Principal, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, principal Principal, id uint) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	requests    repository.LateRequestRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	requestRepo repository.LateRequestRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) SubmissionService {
	return &submissionService{
		submissions: submissionRepo,
		assignments: assignmentRepo,
		requests:    requestRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		metrics:     metrics,
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, principal Principal, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if !principal.IsStudent() {
		return dto.SubmissionResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if !payload.HasContent() {
		return dto.SubmissionResponse{}, ErrEmptyContent
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	// Drafts are invisible to students; closed assignments reject outright.
	switch assignment.Status {
	case models.AssignmentStatusDraft:
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	case models.AssignmentStatusClosed:
		return dto.SubmissionResponse{}, ErrAssignmentClosed
	}

	if !principal.EnrolledIn(assignment.ClassGrade) {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, principal.ID); err == nil {
		return dto.SubmissionResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	isLate := assignment.IsPastDue(now)
	if isLate {
		request, err := s.requests.GetActiveByAssignmentAndStudent(ctx, assignment.ID, principal.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.SubmissionResponse{}, ErrLateWithoutApproval
			}
			return dto.SubmissionResponse{}, err
		}
		if request.Status != models.LateRequestStatusApproved {
			return dto.SubmissionResponse{}, ErrLateWithoutApproval
		}
	}

	submission := models.Submission{
		AssignmentID:   assignment.ID,
		StudentID:      principal.ID,
		SubmissionText: payload.SubmissionText,
		AttachmentURL:  payload.AttachmentURL,
		SubmittedAt:    now,
		IsLate:         isLate,
		Status:         models.SubmissionStatusSubmitted,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		// The unique index wins races the pre-check cannot see.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.SubmissionResponse{}, ErrAlreadySubmitted
		}
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.SubmissionsCreated.WithLabelValues(strconv.FormatBool(isLate)).Inc()
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", assignment.ID).
		Uint("student_id", principal.ID).
		Bool("is_late", isLate).
		Msg("submission created")

	return dto.NewSubmissionResponse(created), nil
}

func (s *submissionService) List(ctx context.Context, principal Principal, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.SubmissionFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
		Status:       filter.Status,
	}

	// Students only ever see their own submissions.
	if principal.IsStudent() {
		studentID := principal.ID
		repoFilter.StudentID = &studentID
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, principal Principal, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if principal.IsStudent() && submission.StudentID != principal.ID {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	return dto.NewSubmissionResponse(submission), nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

// ErrInvalidDueDate indicates a due date that could not be parsed.
var ErrInvalidDueDate = errors.New("due date must be a valid RFC 3339 timestamp")

// AssignmentFilter narrows assignment listings for API callers.
type AssignmentFilter struct {
	ClassGrade *int
	Status     *string
	Search     string
	Sort       string
}

// AssignmentService manages the assignment registry: teacher CRUD plus the
// class-scoped listings students see, annotated with their submission state.
type AssignmentService interface {
	Create(ctx context.Context, principal Principal, payload dto.AssignmentCreateRequest, attachmentURL string) (dto.AssignmentResponse, error)
	Update(ctx context.Context, principal Principal, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, principal Principal, id uint) error
	Get(ctx context.Context, principal Principal, id uint) (dto.AssignmentResponse, error)
	List(ctx context.Context, principal Principal, filter AssignmentFilter) ([]dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	activity    ActivityRecorder
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentService{
		assignments: assignmentRepo,
		submissions: submissionRepo,
		activity:    activity,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Create(ctx context.Context, principal Principal, payload dto.AssignmentCreateRequest, attachmentURL string) (dto.AssignmentResponse, error) {
	if !principal.IsTeacher() {
		return dto.AssignmentResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, ErrInvalidDueDate
	}

	assignment := models.Assignment{
		ClassGrade:    payload.ClassGrade,
		Title:         payload.Title,
		Description:   payload.Description,
		TotalMarks:    payload.TotalMarks,
		DueDate:       dueDate.UTC(),
		AttachmentURL: attachmentURL,
		Status:        models.AssignmentStatusPublished,
		CreatedBy:     principal.ID,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.recordActivity(ctx, principal, "assignment_created", assignment.ID, map[string]interface{}{
		"class_grade": assignment.ClassGrade,
		"title":       assignment.Title,
	})

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Int("class_grade", assignment.ClassGrade).
		Uint("teacher_id", principal.ID).
		Msg("assignment created")

	return dto.NewAssignmentResponse(assignment, s.now()), nil
}

func (s *assignmentService) Update(ctx context.Context, principal Principal, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if !principal.IsTeacher() {
		return dto.AssignmentResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if !assignment.OwnedBy(principal.ID) {
		return dto.AssignmentResponse{}, ErrNotAssignmentOwner
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.TotalMarks != nil {
		assignment.TotalMarks = *payload.TotalMarks
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err != nil {
			return dto.AssignmentResponse{}, ErrInvalidDueDate
		}
		assignment.DueDate = dueDate.UTC()
	}
	if payload.Status != nil {
		assignment.Status = *payload.Status
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.recordActivity(ctx, principal, "assignment_updated", assignment.ID, nil)

	return dto.NewAssignmentResponse(assignment, s.now()), nil
}

func (s *assignmentService) Delete(ctx context.Context, principal Principal, id uint) error {
	if !principal.IsTeacher() {
		return ErrForbidden
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if !assignment.OwnedBy(principal.ID) {
		return ErrNotAssignmentOwner
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.recordActivity(ctx, principal, "assignment_deleted", id, nil)

	s.logger.Info().
		Uint("assignment_id", id).
		Uint("teacher_id", principal.ID).
		Msg("assignment deleted")

	return nil
}

func (s *assignmentService) Get(ctx context.Context, principal Principal, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if principal.IsStudent() {
		if assignment.Status == models.AssignmentStatusDraft || !principal.EnrolledIn(assignment.ClassGrade) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
	}

	response := dto.NewAssignmentResponse(assignment, s.now())
	if principal.IsStudent() {
		s.annotateSubmissionState(ctx, principal.ID, &response)
	}

	return response, nil
}

func (s *assignmentService) List(ctx context.Context, principal Principal, filter AssignmentFilter) ([]dto.AssignmentResponse, error) {
	repoFilter := repository.AssignmentFilter{
		ClassGrade: filter.ClassGrade,
		Status:     filter.Status,
		Search:     filter.Search,
		Sort:       filter.Sort,
	}

	// Students are pinned to their own class and never see drafts.
	if principal.IsStudent() {
		repoFilter.ClassGrade = principal.ClassGrade
		published := models.AssignmentStatusPublished
		if repoFilter.Status == nil || *repoFilter.Status == models.AssignmentStatusDraft {
			repoFilter.Status = &published
		}
	}

	assignments, err := s.assignments.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response := dto.NewAssignmentResponse(assignment, now)
		if principal.IsStudent() {
			s.annotateSubmissionState(ctx, principal.ID, &response)
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// annotateSubmissionState fills HasSubmitted and IsGraded for a student view.
func (s *assignmentService) annotateSubmissionState(ctx context.Context, studentID uint, response *dto.AssignmentResponse) {
	hasSubmitted := false
	isGraded := false

	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, response.ID, studentID)
	switch {
	case err == nil:
		hasSubmitted = true
		isGraded = submission.IsGraded()
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Warn().Err(err).Uint("assignment_id", response.ID).Msg("failed to resolve submission state")
	}

	response.HasSubmitted = &hasSubmitted
	response.IsGraded = &isGraded
}

func (s *assignmentService) recordActivity(ctx context.Context, principal Principal, action string, assignmentID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(ctx, ActivityEntry{
		Actor:      principal,
		Action:     action,
		EntityType: "assignment",
		EntityID:   &assignmentID,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

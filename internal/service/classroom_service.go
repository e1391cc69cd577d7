package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

// ErrClassroomNotFound indicates no classroom exists for the class grade.
var ErrClassroomNotFound = errors.New("classroom not found")

// ClassroomService exposes the per-class video-conference join link. Teachers
// rotate the link; students in the class read it.
type ClassroomService interface {
	Get(ctx context.Context, principal Principal, classGrade int) (dto.ClassroomResponse, error)
	SetMeetingLink(ctx context.Context, principal Principal, classGrade int, payload dto.MeetingLinkUpdateRequest) (dto.ClassroomResponse, error)
}

type classroomService struct {
	classrooms repository.ClassroomRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewClassroomService constructs a ClassroomService instance.
func NewClassroomService(classroomRepo repository.ClassroomRepository, validate *validator.Validate, logger zerolog.Logger) ClassroomService {
	return &classroomService{
		classrooms: classroomRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) Get(ctx context.Context, principal Principal, classGrade int) (dto.ClassroomResponse, error) {
	if principal.IsStudent() && !principal.EnrolledIn(classGrade) {
		return dto.ClassroomResponse{}, ErrForbidden
	}

	classroom, err := s.classrooms.GetByClassGrade(ctx, classGrade)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, ErrClassroomNotFound
		}
		return dto.ClassroomResponse{}, err
	}

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) SetMeetingLink(ctx context.Context, principal Principal, classGrade int, payload dto.MeetingLinkUpdateRequest) (dto.ClassroomResponse, error) {
	if !principal.IsTeacher() {
		return dto.ClassroomResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	classroom, err := s.classrooms.GetByClassGrade(ctx, classGrade)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, err
		}
		classroom = models.VirtualClassroom{
			ClassGrade: classGrade,
			Name:       fmt.Sprintf("Class %d", classGrade),
		}
	}

	classroom.MeetingLink = payload.MeetingLink
	classroom.UpdatedBy = principal.ID

	if err := s.classrooms.Upsert(ctx, &classroom); err != nil {
		return dto.ClassroomResponse{}, err
	}

	s.logger.Info().
		Int("class_grade", classGrade).
		Uint("teacher_id", principal.ID).
		Msg("meeting link updated")

	return dto.NewClassroomResponse(classroom), nil
}

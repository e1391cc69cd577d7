package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

var (
	// ErrTimetableEntryNotFound indicates the schedule slot could not be located.
	ErrTimetableEntryNotFound = errors.New("timetable entry not found")
	// ErrInvalidDayOfWeek indicates an unrecognized day name.
	ErrInvalidDayOfWeek = errors.New("day of week must be monday through sunday")
	// ErrInvalidTimeSlot indicates malformed times or an end not after the start.
	ErrInvalidTimeSlot = errors.New("start and end must be HH:MM with end after start")
)

// TimetableService manages the weekly schedule per class grade. Teachers own
// the slots; students read their class's week.
type TimetableService interface {
	Create(ctx context.Context, principal Principal, payload dto.TimetableEntryRequest) (dto.TimetableEntryResponse, error)
	Update(ctx context.Context, principal Principal, id uint, payload dto.TimetableEntryRequest) (dto.TimetableEntryResponse, error)
	Delete(ctx context.Context, principal Principal, id uint) error
	ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.TimetableEntryResponse, error)
	ListAll(ctx context.Context, principal Principal) ([]dto.TimetableEntryResponse, error)
}

type timetableService struct {
	timetables repository.TimetableRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewTimetableService constructs a TimetableService instance.
func NewTimetableService(timetableRepo repository.TimetableRepository, validate *validator.Validate, logger zerolog.Logger) TimetableService {
	return &timetableService{
		timetables: timetableRepo,
		validator:  validate,
		logger:     logger.With().Str("component", "timetable_service").Logger(),
	}
}

func (s *timetableService) Create(ctx context.Context, principal Principal, payload dto.TimetableEntryRequest) (dto.TimetableEntryResponse, error) {
	if !principal.IsTeacher() {
		return dto.TimetableEntryResponse{}, ErrForbidden
	}

	entry, err := s.buildEntry(payload)
	if err != nil {
		return dto.TimetableEntryResponse{}, err
	}
	entry.CreatedBy = principal.ID

	if err := s.timetables.Create(ctx, &entry); err != nil {
		return dto.TimetableEntryResponse{}, err
	}

	s.logger.Info().
		Uint("entry_id", entry.ID).
		Int("class_grade", entry.ClassGrade).
		Msg("timetable entry created")

	return dto.NewTimetableEntryResponse(entry), nil
}

func (s *timetableService) Update(ctx context.Context, principal Principal, id uint, payload dto.TimetableEntryRequest) (dto.TimetableEntryResponse, error) {
	if !principal.IsTeacher() {
		return dto.TimetableEntryResponse{}, ErrForbidden
	}

	existing, err := s.timetables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TimetableEntryResponse{}, ErrTimetableEntryNotFound
		}
		return dto.TimetableEntryResponse{}, err
	}

	entry, err := s.buildEntry(payload)
	if err != nil {
		return dto.TimetableEntryResponse{}, err
	}
	entry.ID = existing.ID
	entry.CreatedBy = existing.CreatedBy
	entry.CreatedAt = existing.CreatedAt

	if err := s.timetables.Update(ctx, &entry); err != nil {
		return dto.TimetableEntryResponse{}, err
	}

	s.logger.Info().Uint("entry_id", entry.ID).Msg("timetable entry updated")

	return dto.NewTimetableEntryResponse(entry), nil
}

func (s *timetableService) Delete(ctx context.Context, principal Principal, id uint) error {
	if !principal.IsTeacher() {
		return ErrForbidden
	}

	if err := s.timetables.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableEntryNotFound
		}
		return err
	}

	s.logger.Info().Uint("entry_id", id).Msg("timetable entry deleted")

	return nil
}

func (s *timetableService) ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.TimetableEntryResponse, error) {
	if principal.IsStudent() && !principal.EnrolledIn(classGrade) {
		return nil, ErrForbidden
	}

	entries, err := s.timetables.ListByClassGrade(ctx, classGrade)
	if err != nil {
		return nil, err
	}

	return dto.NewTimetableEntryResponseSlice(entries), nil
}

func (s *timetableService) ListAll(ctx context.Context, principal Principal) ([]dto.TimetableEntryResponse, error) {
	if !principal.IsTeacher() {
		return nil, ErrForbidden
	}

	entries, err := s.timetables.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewTimetableEntryResponseSlice(entries), nil
}

// buildEntry validates the payload and normalizes the day name and times into
// their stored forms.
func (s *timetableService) buildEntry(payload dto.TimetableEntryRequest) (models.TimetableEntry, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.TimetableEntry{}, err
	}

	day, ok := models.DayOfWeekIndex(strings.ToLower(strings.TrimSpace(payload.DayOfWeek)))
	if !ok {
		return models.TimetableEntry{}, ErrInvalidDayOfWeek
	}

	start, err := time.Parse("15:04", payload.StartTime)
	if err != nil {
		return models.TimetableEntry{}, ErrInvalidTimeSlot
	}
	end, err := time.Parse("15:04", payload.EndTime)
	if err != nil {
		return models.TimetableEntry{}, ErrInvalidTimeSlot
	}
	if !end.After(start) {
		return models.TimetableEntry{}, ErrInvalidTimeSlot
	}

	return models.TimetableEntry{
		ClassGrade: payload.ClassGrade,
		DayOfWeek:  day,
		StartTime:  start.Format("15:04"),
		EndTime:    end.Format("15:04"),
		Notes:      strings.TrimSpace(payload.Notes),
	}, nil
}

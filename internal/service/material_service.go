package service

import (
	"context"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

// ErrMaterialNotFound indicates the learning material could not be located.
var ErrMaterialNotFound = errors.New("material not found")

// MaterialService manages teacher-uploaded study material per class grade.
type MaterialService interface {
	Create(ctx context.Context, principal Principal, payload dto.MaterialCreateRequest, filename string, file io.Reader) (dto.MaterialResponse, error)
	ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.MaterialResponse, error)
	Delete(ctx context.Context, principal Principal, id uint) error
}

type materialService struct {
	materials repository.MaterialRepository
	uploads   UploadService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMaterialService constructs a MaterialService instance.
func NewMaterialService(
	materialRepo repository.MaterialRepository,
	uploads UploadService,
	validate *validator.Validate,
	logger zerolog.Logger,
) MaterialService {
	return &materialService{
		materials: materialRepo,
		uploads:   uploads,
		validator: validate,
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) Create(ctx context.Context, principal Principal, payload dto.MaterialCreateRequest, filename string, file io.Reader) (dto.MaterialResponse, error) {
	if !principal.IsTeacher() {
		return dto.MaterialResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	stored, err := s.uploads.Store(ctx, filename, file)
	if err != nil {
		return dto.MaterialResponse{}, err
	}

	material := models.LearningMaterial{
		ClassGrade:  payload.ClassGrade,
		Title:       payload.Title,
		Description: payload.Description,
		FileURL:     stored.URL,
		FileType:    stored.FileType,
		UploadedBy:  principal.ID,
	}

	if err := s.materials.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	s.logger.Info().
		Uint("material_id", material.ID).
		Int("class_grade", material.ClassGrade).
		Msg("material uploaded")

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.MaterialResponse, error) {
	if principal.IsStudent() && !principal.EnrolledIn(classGrade) {
		return nil, ErrForbidden
	}

	materials, err := s.materials.ListByClassGrade(ctx, classGrade)
	if err != nil {
		return nil, err
	}

	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *materialService) Delete(ctx context.Context, principal Principal, id uint) error {
	if !principal.IsTeacher() {
		return ErrForbidden
	}

	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}

	if material.UploadedBy != principal.ID {
		return ErrForbidden
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}

	s.logger.Info().Uint("material_id", id).Msg("material deleted")

	return nil
}

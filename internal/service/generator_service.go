package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/observability"
	"github.com/noah-isme/tuition-go-api/pkg/ai"
)

// ErrGeneratorUnavailable indicates no AI backend is configured.
var ErrGeneratorUnavailable = errors.New("assignment draft generation is not configured")

// GeneratorService produces AI-assisted assignment drafts for teachers.
type GeneratorService interface {
	GenerateDraft(ctx context.Context, principal Principal, payload dto.GenerateAssignmentRequest) (dto.GenerateAssignmentResponse, error)
}

type generatorService struct {
	generator ai.DraftGenerator
	validator *validator.Validate
	logger    zerolog.Logger
	metrics   *observability.Metrics
}

// NewGeneratorService constructs a GeneratorService. A nil generator makes
// every call fail with ErrGeneratorUnavailable.
func NewGeneratorService(generator ai.DraftGenerator, validate *validator.Validate, logger zerolog.Logger, metrics *observability.Metrics) GeneratorService {
	return &generatorService{
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "generator_service").Logger(),
		metrics:   metrics,
	}
}

func (s *generatorService) GenerateDraft(ctx context.Context, principal Principal, payload dto.GenerateAssignmentRequest) (dto.GenerateAssignmentResponse, error) {
	if !principal.IsTeacher() {
		return dto.GenerateAssignmentResponse{}, ErrForbidden
	}

	if s.generator == nil {
		return dto.GenerateAssignmentResponse{}, ErrGeneratorUnavailable
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.GenerateAssignmentResponse{}, err
	}

	start := time.Now()
	result, err := s.generator.GenerateDraft(ctx, ai.DraftInput{
		Topic:      payload.Topic,
		ClassGrade: payload.ClassGrade,
		Difficulty: payload.Difficulty,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("topic", payload.Topic).Msg("draft generation failed")
		return dto.GenerateAssignmentResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.AIDraftDuration.Observe(time.Since(start).Seconds())
	}

	return dto.GenerateAssignmentResponse{
		Topic:      payload.Topic,
		ClassGrade: payload.ClassGrade,
		Content:    result.Content,
	}, nil
}

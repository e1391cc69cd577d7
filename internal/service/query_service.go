package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

// ErrQueryNotFound indicates the forum query could not be located.
var ErrQueryNotFound = errors.New("query not found")

// QueryService runs the class Q&A forum. Content is sanitized on the way in;
// a teacher reply marks the query resolved.
type QueryService interface {
	Create(ctx context.Context, principal Principal, payload dto.QueryCreateRequest) (dto.QueryResponse, error)
	Reply(ctx context.Context, principal Principal, queryID uint, payload dto.QueryReplyCreateRequest) (dto.QueryResponse, error)
	ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.QueryResponse, error)
	Get(ctx context.Context, principal Principal, id uint) (dto.QueryResponse, error)
}

type queryService struct {
	queries   repository.QueryRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewQueryService constructs a QueryService instance.
func NewQueryService(queryRepo repository.QueryRepository, validate *validator.Validate, logger zerolog.Logger) QueryService {
	return &queryService{
		queries:   queryRepo,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "query_service").Logger(),
	}
}

func (s *queryService) Create(ctx context.Context, principal Principal, payload dto.QueryCreateRequest) (dto.QueryResponse, error) {
	if !principal.IsStudent() || principal.ClassGrade == nil {
		return dto.QueryResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.QueryResponse{}, err
	}

	query := models.Query{
		ClassGrade: *principal.ClassGrade,
		StudentID:  principal.ID,
		Subject:    s.clean(payload.Subject),
		Content:    s.clean(payload.Content),
	}

	if err := s.queries.Create(ctx, &query); err != nil {
		return dto.QueryResponse{}, err
	}

	s.logger.Info().
		Uint("query_id", query.ID).
		Int("class_grade", query.ClassGrade).
		Msg("forum query created")

	created, err := s.queries.GetByID(ctx, query.ID)
	if err != nil {
		return dto.QueryResponse{}, err
	}

	return dto.NewQueryResponse(created), nil
}

func (s *queryService) Reply(ctx context.Context, principal Principal, queryID uint, payload dto.QueryReplyCreateRequest) (dto.QueryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QueryResponse{}, err
	}

	query, err := s.queries.GetByID(ctx, queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QueryResponse{}, ErrQueryNotFound
		}
		return dto.QueryResponse{}, err
	}

	if principal.IsStudent() && !principal.EnrolledIn(query.ClassGrade) {
		return dto.QueryResponse{}, ErrQueryNotFound
	}

	reply := models.QueryReply{
		QueryID:        query.ID,
		AuthorID:       principal.ID,
		Content:        s.clean(payload.Content),
		IsTeacherReply: principal.IsTeacher(),
	}

	if err := s.queries.CreateReply(ctx, &reply); err != nil {
		return dto.QueryResponse{}, err
	}

	if principal.IsTeacher() && !query.Resolved {
		query.Resolved = true
		if err := s.queries.Update(ctx, &query); err != nil {
			s.logger.Warn().Err(err).Uint("query_id", query.ID).Msg("failed to mark query resolved")
		}
	}

	updated, err := s.queries.GetByID(ctx, query.ID)
	if err != nil {
		return dto.QueryResponse{}, err
	}

	return dto.NewQueryResponse(updated), nil
}

func (s *queryService) ListForClass(ctx context.Context, principal Principal, classGrade int) ([]dto.QueryResponse, error) {
	if principal.IsStudent() {
		if !principal.EnrolledIn(classGrade) {
			return nil, ErrForbidden
		}
	}

	queries, err := s.queries.ListByClassGrade(ctx, classGrade)
	if err != nil {
		return nil, err
	}

	return dto.NewQueryResponseSlice(queries), nil
}

func (s *queryService) Get(ctx context.Context, principal Principal, id uint) (dto.QueryResponse, error) {
	query, err := s.queries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QueryResponse{}, ErrQueryNotFound
		}
		return dto.QueryResponse{}, err
	}

	if principal.IsStudent() && !principal.EnrolledIn(query.ClassGrade) {
		return dto.QueryResponse{}, ErrQueryNotFound
	}

	return dto.NewQueryResponse(query), nil
}

func (s *queryService) clean(input string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(input))
}

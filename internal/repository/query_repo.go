package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// QueryRepository defines persistence operations for the Q&A forum.
type QueryRepository interface {
	ListByClassGrade(ctx context.Context, classGrade int) ([]models.Query, error)
	GetByID(ctx context.Context, id uint) (models.Query, error)
	Create(ctx context.Context, query *models.Query) error
	Update(ctx context.Context, query *models.Query) error
	CreateReply(ctx context.Context, reply *models.QueryReply) error
}

type queryRepository struct {
	db *gorm.DB
}

// NewQueryRepository instantiates the repository.
func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Query{}).
		Preload("Student").
		Preload("Replies").
		Preload("Replies.Author")
}

func (r *queryRepository) ListByClassGrade(ctx context.Context, classGrade int) ([]models.Query, error) {
	var queries []models.Query
	err := r.baseQuery(ctx).
		Where("class_grade = ?", classGrade).
		Order("created_at DESC").
		Find(&queries).Error
	if err != nil {
		return nil, err
	}

	return queries, nil
}

func (r *queryRepository) GetByID(ctx context.Context, id uint) (models.Query, error) {
	var query models.Query
	if err := r.baseQuery(ctx).First(&query, id).Error; err != nil {
		return models.Query{}, err
	}

	return query, nil
}

func (r *queryRepository) Create(ctx context.Context, query *models.Query) error {
	return r.db.WithContext(ctx).Create(query).Error
}

func (r *queryRepository) Update(ctx context.Context, query *models.Query) error {
	return r.db.WithContext(ctx).Save(query).Error
}

func (r *queryRepository) CreateReply(ctx context.Context, reply *models.QueryReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

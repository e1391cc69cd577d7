package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// MaterialRepository defines persistence operations for learning materials.
type MaterialRepository interface {
	ListByClassGrade(ctx context.Context, classGrade int) ([]models.LearningMaterial, error)
	GetByID(ctx context.Context, id uint) (models.LearningMaterial, error)
	Create(ctx context.Context, material *models.LearningMaterial) error
	Delete(ctx context.Context, id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository instantiates the repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) ListByClassGrade(ctx context.Context, classGrade int) ([]models.LearningMaterial, error) {
	var materials []models.LearningMaterial
	err := r.db.WithContext(ctx).
		Where("class_grade = ?", classGrade).
		Order("created_at DESC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (models.LearningMaterial, error) {
	var material models.LearningMaterial
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return models.LearningMaterial{}, err
	}

	return material, nil
}

func (r *materialRepository) Create(ctx context.Context, material *models.LearningMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.LearningMaterial{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

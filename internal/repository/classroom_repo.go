package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// ClassroomRepository defines persistence operations for virtual classrooms.
type ClassroomRepository interface {
	GetByClassGrade(ctx context.Context, classGrade int) (models.VirtualClassroom, error)
	GetByID(ctx context.Context, id uint) (models.VirtualClassroom, error)
	Upsert(ctx context.Context, classroom *models.VirtualClassroom) error
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository instantiates the repository.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) GetByClassGrade(ctx context.Context, classGrade int) (models.VirtualClassroom, error) {
	var classroom models.VirtualClassroom
	if err := r.db.WithContext(ctx).Where("class_grade = ?", classGrade).First(&classroom).Error; err != nil {
		return models.VirtualClassroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) GetByID(ctx context.Context, id uint) (models.VirtualClassroom, error) {
	var classroom models.VirtualClassroom
	if err := r.db.WithContext(ctx).First(&classroom, id).Error; err != nil {
		return models.VirtualClassroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) Upsert(ctx context.Context, classroom *models.VirtualClassroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

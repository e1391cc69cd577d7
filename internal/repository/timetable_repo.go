package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

// TimetableRepository defines persistence operations for weekly schedules.
type TimetableRepository interface {
	ListByClassGrade(ctx context.Context, classGrade int) ([]models.TimetableEntry, error)
	ListAll(ctx context.Context) ([]models.TimetableEntry, error)
	GetByID(ctx context.Context, id uint) (models.TimetableEntry, error)
	Create(ctx context.Context, entry *models.TimetableEntry) error
	Update(ctx context.Context, entry *models.TimetableEntry) error
	Delete(ctx context.Context, id uint) error
}

type timetableRepository struct {
	db *gorm.DB
}

// NewTimetableRepository instantiates the repository.
func NewTimetableRepository(db *gorm.DB) TimetableRepository {
	return &timetableRepository{db: db}
}

func (r *timetableRepository) ListByClassGrade(ctx context.Context, classGrade int) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("class_grade = ?", classGrade).
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *timetableRepository) ListAll(ctx context.Context) ([]models.TimetableEntry, error) {
	var entries []models.TimetableEntry
	err := r.db.WithContext(ctx).
		Order("class_grade ASC").
		Order("day_of_week ASC").
		Order("start_time ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *timetableRepository) GetByID(ctx context.Context, id uint) (models.TimetableEntry, error) {
	var entry models.TimetableEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return models.TimetableEntry{}, err
	}

	return entry, nil
}

func (r *timetableRepository) Create(ctx context.Context, entry *models.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepository) Update(ctx context.Context, entry *models.TimetableEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *timetableRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.TimetableEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

var (
	// ErrActiveRequestExists indicates a pending or approved request already
	// covers the (assignment, student) pair.
	ErrActiveRequestExists = errors.New("active late request already exists")
	// ErrRequestNotPending indicates the request was decided by the time the
	// conditional update ran.
	ErrRequestNotPending = errors.New("late request is no longer pending")
)

// LateRequestRepository defines data operations for late-submission requests.
type LateRequestRepository interface {
	List(ctx context.Context, filter LateRequestFilter) ([]models.LateSubmissionRequest, error)
	GetByID(ctx context.Context, id uint) (models.LateSubmissionRequest, error)
	GetActiveByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.LateSubmissionRequest, error)
	CreateIfNoActive(ctx context.Context, request *models.LateSubmissionRequest) error
	Decide(ctx context.Context, id uint, decision, teacherResponse string, respondedAt time.Time) error
	Update(ctx context.Context, request *models.LateSubmissionRequest) error
}

// LateRequestFilter narrows late-request queries.
type LateRequestFilter struct {
	AssignmentID *uint
	StudentID    *uint
	Status       *string
}

type lateRequestRepository struct {
	db *gorm.DB
}

// NewLateRequestRepository instantiates the repository.
func NewLateRequestRepository(db *gorm.DB) LateRequestRepository {
	return &lateRequestRepository{db: db}
}

func (r *lateRequestRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.LateSubmissionRequest{}).
		Preload("Assignment").
		Preload("Student")
}

func (r *lateRequestRepository) List(ctx context.Context, filter LateRequestFilter) ([]models.LateSubmissionRequest, error) {
	query := r.baseQuery(ctx)

	if filter.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filter.AssignmentID)
	}

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var requests []models.LateSubmissionRequest
	if err := query.Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *lateRequestRepository) GetByID(ctx context.Context, id uint) (models.LateSubmissionRequest, error) {
	var request models.LateSubmissionRequest
	if err := r.baseQuery(ctx).First(&request, id).Error; err != nil {
		return models.LateSubmissionRequest{}, err
	}

	return request, nil
}

func (r *lateRequestRepository) GetActiveByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.LateSubmissionRequest, error) {
	var request models.LateSubmissionRequest
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Where("student_id = ?", studentID).
		Where("status IN ?", []string{models.LateRequestStatusPending, models.LateRequestStatusApproved}).
		Order("requested_at DESC").
		First(&request).Error
	if err != nil {
		return models.LateSubmissionRequest{}, err
	}

	return request, nil
}

// CreateIfNoActive performs the check-then-insert inside one transaction so a
// second active request for the same pair cannot slip in between the check
// and the write.
func (r *lateRequestRepository) CreateIfNoActive(ctx context.Context, request *models.LateSubmissionRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.LateSubmissionRequest{}).
			Where("assignment_id = ?", request.AssignmentID).
			Where("student_id = ?", request.StudentID).
			Where("status IN ?", []string{models.LateRequestStatusPending, models.LateRequestStatusApproved}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrActiveRequestExists
		}

		return tx.Create(request).Error
	})
}

// Decide flips a pending request to its decision with a conditional update,
// so concurrent responders cannot both win: the loser matches zero rows and
// gets ErrRequestNotPending.
func (r *lateRequestRepository) Decide(ctx context.Context, id uint, decision, teacherResponse string, respondedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.LateSubmissionRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.LateRequestStatusPending).
		Updates(map[string]interface{}{
			"status":           decision,
			"responded_at":     respondedAt,
			"teacher_response": teacherResponse,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotPending
	}

	return nil
}

func (r *lateRequestRepository) Update(ctx context.Context, request *models.LateSubmissionRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

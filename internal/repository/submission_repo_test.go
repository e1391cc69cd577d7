package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One shared in-memory database per test so pooled connections see the
	// same data without bleeding rows across tests.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Assignment{},
		&models.Submission{},
		&models.SubmissionGradeHistory{},
		&models.LateSubmissionRequest{},
	))
	return db
}

func seedPair(t *testing.T, db *gorm.DB) (models.Assignment, models.User) {
	t.Helper()

	teacher := models.User{Name: "Asha Verma", Email: "asha@example.com", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	grade := 9
	student := models.User{Name: "Rohan Mehta", Email: "rohan@example.com", Role: models.RoleStudent, ClassGrade: &grade}
	require.NoError(t, db.Create(&student).Error)

	assignment := models.Assignment{
		Title:       "Photosynthesis Essay",
		Description: "Explain the light-dependent reactions.",
		ClassGrade:  9,
		TotalMarks:  100,
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
		Status:      models.AssignmentStatusPublished,
		CreatedBy:   teacher.ID,
	}
	require.NoError(t, db.Create(&assignment).Error)

	return assignment, student
}

func TestSubmissionCreateEnforcesUniquePair(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedPair(t, db)

	first := models.Submission{
		AssignmentID:   assignment.ID,
		StudentID:      student.ID,
		SubmissionText: "First attempt.",
		SubmittedAt:    time.Now().UTC(),
		Status:         models.SubmissionStatusSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), &first))

	duplicate := models.Submission{
		AssignmentID:   assignment.ID,
		StudentID:      student.ID,
		SubmissionText: "Second attempt.",
		SubmittedAt:    time.Now().UTC(),
		Status:         models.SubmissionStatusSubmitted,
	}
	err := repo.Create(context.Background(), &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSubmissionGetByIDPreloadsHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedPair(t, db)

	submission := models.Submission{
		AssignmentID:   assignment.ID,
		StudentID:      student.ID,
		SubmissionText: "Answer.",
		SubmittedAt:    time.Now().UTC(),
		Status:         models.SubmissionStatusSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), &submission))
	require.NoError(t, repo.CreateHistory(context.Background(), &models.SubmissionGradeHistory{
		SubmissionID: submission.ID,
		Marks:        60,
		GradedBy:     1,
		GradedAt:     time.Now().UTC(),
	}))
	require.NoError(t, repo.CreateHistory(context.Background(), &models.SubmissionGradeHistory{
		SubmissionID: submission.ID,
		Marks:        75,
		GradedBy:     1,
		GradedAt:     time.Now().UTC(),
	}))

	loaded, err := repo.GetByID(context.Background(), submission.ID)
	require.NoError(t, err)
	require.Len(t, loaded.History, 2)
	require.Equal(t, assignment.Title, loaded.Assignment.Title)
	require.Equal(t, student.Name, loaded.Student.Name)
}

func TestSubmissionListFiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubmissionRepository(db)
	assignment, student := seedPair(t, db)

	grade := 9
	other := models.User{Name: "Meera Iyer", Email: "meera@example.com", Role: models.RoleStudent, ClassGrade: &grade}
	require.NoError(t, db.Create(&other).Error)

	marks := 80
	require.NoError(t, repo.Create(context.Background(), &models.Submission{
		AssignmentID:  assignment.ID,
		StudentID:     student.ID,
		SubmittedAt:   time.Now().UTC().Add(-time.Hour),
		Status:        models.SubmissionStatusGraded,
		MarksObtained: &marks,
	}))
	require.NoError(t, repo.Create(context.Background(), &models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    other.ID,
		SubmittedAt:  time.Now().UTC(),
		Status:       models.SubmissionStatusSubmitted,
	}))

	graded := models.SubmissionStatusGraded
	submissions, err := repo.List(context.Background(), SubmissionFilter{Status: &graded})
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	require.Equal(t, student.ID, submissions[0].StudentID)

	submissions, err = repo.List(context.Background(), SubmissionFilter{AssignmentID: &assignment.ID})
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	require.Equal(t, other.ID, submissions[0].StudentID, "expected newest submission first")
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
	"github.com/noah-isme/tuition-go-api/internal/timeutil"
)

// DashboardService aggregates a student's standing across all published
// assignments in their class. Responses are cached per student in Redis.
type DashboardService interface {
	StudentDashboard(ctx context.Context, principal Principal) (dto.StudentDashboardResponse, error)
	Invalidate(ctx context.Context, studentID uint)
}

type dashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService constructs a DashboardService. The cache client may be
// nil, in which case every call recomputes the dashboard.
func NewDashboardService(
	assignmentRepo repository.AssignmentRepository,
	submissionRepo repository.SubmissionRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		assignments: assignmentRepo,
		submissions: submissionRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func dashboardCacheKey(studentID uint) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

func (s *dashboardService) StudentDashboard(ctx context.Context, principal Principal) (dto.StudentDashboardResponse, error) {
	if !principal.IsStudent() || principal.ClassGrade == nil {
		return dto.StudentDashboardResponse{}, ErrForbidden
	}

	if cached, ok := s.fromCache(ctx, principal.ID); ok {
		return cached, nil
	}

	published := models.AssignmentStatusPublished
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{
		ClassGrade: principal.ClassGrade,
		Status:     &published,
	})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	now := s.now()
	response := dto.StudentDashboardResponse{
		Assignments: make([]dto.AssignmentProgress, 0, len(assignments)),
		GeneratedAt: now,
	}

	var percentSum float64
	response.Summary.TotalAssignments = len(assignments)

	for _, assignment := range assignments {
		progress := dto.AssignmentProgress{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			DueDate:      assignment.DueDate,
			DueDateLocal: timeutil.FormatIST(assignment.DueDate),
			TotalMarks:   assignment.TotalMarks,
			Status:       "pending",
			Overdue:      assignment.IsPastDue(now),
		}

		submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, principal.ID)
		switch {
		case err == nil:
			id := submission.ID
			progress.SubmissionID = &id
			progress.IsLate = submission.IsLate
			progress.Status = submission.Status
			response.Summary.Submitted++
			if submission.IsGraded() {
				progress.MarksObtained = submission.MarksObtained
				progress.Feedback = submission.Feedback
				response.Summary.Graded++
				if assignment.TotalMarks > 0 {
					percentSum += float64(*submission.MarksObtained) / float64(assignment.TotalMarks) * 100
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Summary.Pending++
			if progress.Overdue {
				response.Summary.Overdue++
			}
		default:
			return dto.StudentDashboardResponse{}, err
		}

		response.Assignments = append(response.Assignments, progress)
	}

	if response.Summary.Graded > 0 {
		response.Summary.AveragePercent = percentSum / float64(response.Summary.Graded)
	}

	s.toCache(ctx, principal.ID, response)

	return response, nil
}

// Invalidate drops the cached dashboard after a write that changes it.
func (s *dashboardService) Invalidate(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(studentID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to invalidate dashboard cache")
	}
}

func (s *dashboardService) fromCache(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, bool) {
	if s.cache == nil {
		return dto.StudentDashboardResponse{}, false
	}

	payload, err := s.cache.Get(ctx, dashboardCacheKey(studentID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
		return dto.StudentDashboardResponse{}, false
	}

	var response dto.StudentDashboardResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache entry corrupt")
		return dto.StudentDashboardResponse{}, false
	}

	return response, true
}

func (s *dashboardService) toCache(ctx context.Context, studentID uint, response dto.StudentDashboardResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, dashboardCacheKey(studentID), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache write failed")
	}
}

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New()
}

func studentPrincipal(id uint, classGrade int) Principal {
	return Principal{ID: id, Role: models.RoleStudent, ClassGrade: &classGrade}
}

func teacherPrincipal(id uint) Principal {
	return Principal{ID: id, Role: models.RoleTeacher}
}

type memoryAssignmentRepo struct {
	assignments map[uint]models.Assignment
	nextID      uint
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[uint]models.Assignment), nextID: 1}
}

func (m *memoryAssignmentRepo) List(ctx context.Context, filter repository.AssignmentFilter) ([]models.Assignment, error) {
	results := make([]models.Assignment, 0, len(m.assignments))
	for _, assignment := range m.assignments {
		if filter.ClassGrade != nil && assignment.ClassGrade != *filter.ClassGrade {
			continue
		}
		if filter.Status != nil && assignment.Status != *filter.Status {
			continue
		}
		results = append(results, assignment)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryAssignmentRepo) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = m.nextID
	m.nextID++
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

type memorySubmissionRepo struct {
	mu          sync.Mutex
	submissions map[uint]models.Submission
	history     []models.SubmissionGradeHistory
	nextID      uint
}

func newMemorySubmissionRepo() *memorySubmissionRepo {
	return &memorySubmissionRepo{submissions: make(map[uint]models.Submission), nextID: 1}
}

func (m *memorySubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]models.Submission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && submission.Status != *filter.Status {
			continue
		}
		results = append(results, submission)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memorySubmissionRepo) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	submission, ok := m.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	for _, entry := range m.history {
		if entry.SubmissionID == id {
			submission.History = append(submission.History, entry)
		}
	}
	return submission, nil
}

func (m *memorySubmissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, submission := range m.submissions {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (m *memorySubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.submissions {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}

	submission.ID = m.nextID
	m.nextID++
	m.submissions[submission.ID] = *submission
	return nil
}

func (m *memorySubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *submission
	stored.History = nil
	m.submissions[submission.ID] = stored
	return nil
}

func (m *memorySubmissionRepo) CreateHistory(ctx context.Context, entry *models.SubmissionGradeHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = append(m.history, *entry)
	return nil
}

type memoryLateRequestRepo struct {
	mu       sync.Mutex
	requests map[uint]models.LateSubmissionRequest
	nextID   uint
}

func newMemoryLateRequestRepo() *memoryLateRequestRepo {
	return &memoryLateRequestRepo{requests: make(map[uint]models.LateSubmissionRequest), nextID: 1}
}

func (m *memoryLateRequestRepo) List(ctx context.Context, filter repository.LateRequestFilter) ([]models.LateSubmissionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	results := make([]models.LateSubmissionRequest, 0, len(m.requests))
	for _, request := range m.requests {
		if filter.AssignmentID != nil && request.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && request.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		results = append(results, request)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryLateRequestRepo) GetByID(ctx context.Context, id uint) (models.LateSubmissionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return models.LateSubmissionRequest{}, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (m *memoryLateRequestRepo) GetActiveByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.LateSubmissionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, request := range m.requests {
		if request.AssignmentID == assignmentID && request.StudentID == studentID && request.Blocks() {
			return request, nil
		}
	}
	return models.LateSubmissionRequest{}, gorm.ErrRecordNotFound
}

func (m *memoryLateRequestRepo) CreateIfNoActive(ctx context.Context, request *models.LateSubmissionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.requests {
		if existing.AssignmentID == request.AssignmentID && existing.StudentID == request.StudentID && existing.Blocks() {
			return repository.ErrActiveRequestExists
		}
	}

	request.ID = m.nextID
	m.nextID++
	m.requests[request.ID] = *request
	return nil
}

func (m *memoryLateRequestRepo) Decide(ctx context.Context, id uint, decision, teacherResponse string, respondedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok || request.Status != models.LateRequestStatusPending {
		return repository.ErrRequestNotPending
	}

	request.Status = decision
	request.RespondedAt = &respondedAt
	request.TeacherResponse = teacherResponse
	m.requests[id] = request
	return nil
}

func (m *memoryLateRequestRepo) Update(ctx context.Context, request *models.LateSubmissionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.requests[request.ID] = *request
	return nil
}

type memoryActivityRepo struct {
	entries []models.ActivityLog
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, error) {
	results := make([]models.ActivityLog, 0, len(m.entries))
	for _, entry := range m.entries {
		if filter.ActorID != nil && entry.ActorID != *filter.ActorID {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		results = append(results, entry)
	}
	return results, nil
}

type captureEventPublisher struct {
	graded    []SubmissionGradedEvent
	created   []LateRequestEvent
	responded []LateRequestEvent
}

func (c *captureEventPublisher) SubmissionGraded(_ context.Context, event SubmissionGradedEvent) {
	c.graded = append(c.graded, event)
}

func (c *captureEventPublisher) LateRequestCreated(_ context.Context, event LateRequestEvent) {
	c.created = append(c.created, event)
}

func (c *captureEventPublisher) LateRequestResponded(_ context.Context, event LateRequestEvent) {
	c.responded = append(c.responded, event)
}

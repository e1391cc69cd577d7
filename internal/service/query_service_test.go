package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
	"gorm.io/gorm"
)

type memoryQueryRepo struct {
	queries map[uint]models.Query
	replies []models.QueryReply
	nextID  uint
}

func newMemoryQueryRepo() *memoryQueryRepo {
	return &memoryQueryRepo{queries: make(map[uint]models.Query), nextID: 1}
}

func (m *memoryQueryRepo) ListByClassGrade(ctx context.Context, classGrade int) ([]models.Query, error) {
	results := make([]models.Query, 0)
	for id := uint(1); id < m.nextID; id++ {
		if query, ok := m.queries[id]; ok && query.ClassGrade == classGrade {
			results = append(results, m.withReplies(query))
		}
	}
	return results, nil
}

func (m *memoryQueryRepo) GetByID(ctx context.Context, id uint) (models.Query, error) {
	query, ok := m.queries[id]
	if !ok {
		return models.Query{}, gorm.ErrRecordNotFound
	}
	return m.withReplies(query), nil
}

func (m *memoryQueryRepo) Create(ctx context.Context, query *models.Query) error {
	query.ID = m.nextID
	m.nextID++
	m.queries[query.ID] = *query
	return nil
}

func (m *memoryQueryRepo) Update(ctx context.Context, query *models.Query) error {
	stored := *query
	stored.Replies = nil
	m.queries[query.ID] = stored
	return nil
}

func (m *memoryQueryRepo) CreateReply(ctx context.Context, reply *models.QueryReply) error {
	reply.ID = uint(len(m.replies) + 1)
	m.replies = append(m.replies, *reply)
	return nil
}

func (m *memoryQueryRepo) withReplies(query models.Query) models.Query {
	query.Replies = nil
	for _, reply := range m.replies {
		if reply.QueryID == query.ID {
			query.Replies = append(query.Replies, reply)
		}
	}
	return query
}

var _ repository.QueryRepository = (*memoryQueryRepo)(nil)

func TestQueryCreateSanitizesContent(t *testing.T) {
	svc := NewQueryService(newMemoryQueryRepo(), testValidator(), testLogger())

	resp, err := svc.Create(context.Background(), studentPrincipal(5, 8), dto.QueryCreateRequest{
		Subject: "Doubt in <b>algebra</b>",
		Content: "How do I solve this? <script>alert('x')</script> Please explain step by step.",
	})
	require.NoError(t, err)
	require.Equal(t, "Doubt in algebra", resp.Subject)
	require.NotContains(t, resp.Content, "<script>")
	require.NotContains(t, resp.Content, "alert")
	require.False(t, resp.Resolved)
}

func TestTeacherReplyResolvesQuery(t *testing.T) {
	svc := NewQueryService(newMemoryQueryRepo(), testValidator(), testLogger())

	created, err := svc.Create(context.Background(), studentPrincipal(5, 8), dto.QueryCreateRequest{
		Subject: "Doubt in trigonometry",
		Content: "What is the difference between sin and cos here?",
	})
	require.NoError(t, err)

	// A classmate's reply does not resolve the query.
	afterStudent, err := svc.Reply(context.Background(), studentPrincipal(6, 8), created.ID, dto.QueryReplyCreateRequest{
		Content: "I think you use the opposite side.",
	})
	require.NoError(t, err)
	require.False(t, afterStudent.Resolved)
	require.False(t, afterStudent.Replies[0].IsTeacherReply)

	afterTeacher, err := svc.Reply(context.Background(), teacherPrincipal(1), created.ID, dto.QueryReplyCreateRequest{
		Content: "Use SOH-CAH-TOA; see the worked example in chapter 3.",
	})
	require.NoError(t, err)
	require.True(t, afterTeacher.Resolved)
	require.Len(t, afterTeacher.Replies, 2)
	require.True(t, afterTeacher.Replies[1].IsTeacherReply)
}

func TestQueryHiddenFromOtherClasses(t *testing.T) {
	svc := NewQueryService(newMemoryQueryRepo(), testValidator(), testLogger())

	created, err := svc.Create(context.Background(), studentPrincipal(5, 8), dto.QueryCreateRequest{
		Subject: "Doubt in chemistry",
		Content: "Why does this reaction need a catalyst at all?",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), studentPrincipal(9, 10), created.ID)
	require.ErrorIs(t, err, ErrQueryNotFound)

	_, err = svc.ListForClass(context.Background(), studentPrincipal(9, 10), 8)
	require.ErrorIs(t, err, ErrForbidden)
}

package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/handler"
	"github.com/noah-isme/tuition-go-api/internal/service"
)

type stubSubmissionService struct {
	response dto.SubmissionResponse
}

func (s stubSubmissionService) Submit(context.Context, service.Principal, dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	return s.response, nil
}

func (s stubSubmissionService) List(context.Context, service.Principal, dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	return []dto.SubmissionResponse{s.response}, nil
}

func (s stubSubmissionService) Get(context.Context, service.Principal, uint) (dto.SubmissionResponse, error) {
	return s.response, nil
}

type stubGradingService struct {
	response dto.SubmissionResponse
}

func (s stubGradingService) Grade(context.Context, service.Principal, uint, dto.GradeSubmissionRequest) (dto.SubmissionResponse, error) {
	return s.response, nil
}

type stubDashboardService struct{}

func (stubDashboardService) StudentDashboard(context.Context, service.Principal) (dto.StudentDashboardResponse, error) {
	return dto.StudentDashboardResponse{}, nil
}

func (stubDashboardService) Invalidate(context.Context, uint) {}

func compileSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)

	return schema
}

func validateBody(t *testing.T, schema *jsonschema.Schema, resp *http.Response) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestGradedSubmissionContract(t *testing.T) {
	schema := compileSchema(t, "submission.schema.json")

	now := time.Now().UTC()
	gradedAt := now.Add(30 * time.Minute)
	marks := 84
	gradedBy := uint(7)

	response := dto.SubmissionResponse{
		ID:             42,
		AssignmentID:   10,
		StudentID:      3,
		SubmissionText: "Photosynthesis converts light energy into chemical energy.",
		SubmittedAt:    now,
		IsLate:         true,
		Status:         "graded",
		MarksObtained:  &marks,
		Feedback:       "Well argued, cite the light-dependent reactions next time.",
		GradedBy:       &gradedBy,
		GradedAt:       &gradedAt,
		Assignment: dto.AssignmentLite{
			ID:         10,
			Title:      "Photosynthesis Essay",
			ClassGrade: 9,
			TotalMarks: 100,
			DueDate:    now.Add(-24 * time.Hour),
		},
		History: []dto.GradeHistoryResponse{
			{Marks: 84, Feedback: "Well argued.", GradedBy: 7, GradedAt: gradedAt},
		},
		CreatedAt: now,
		UpdatedAt: gradedAt,
	}

	h := handler.NewSubmissionHandler(
		stubSubmissionService{response: response},
		stubGradingService{response: response},
		stubDashboardService{},
		zerolog.Nop(),
	)

	app := fiber.New()
	group := app.Group("/api/v1/submissions", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", "student")
		c.Locals("class_grade", 9)
		return c.Next()
	})
	h.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

func TestUngradedSubmissionContract(t *testing.T) {
	schema := compileSchema(t, "submission.schema.json")

	now := time.Now().UTC()
	response := dto.SubmissionResponse{
		ID:            41,
		AssignmentID:  10,
		StudentID:     3,
		AttachmentURL: "https://cdn.example.com/uploads/essay.pdf",
		SubmittedAt:   now,
		Status:        "submitted",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	h := handler.NewSubmissionHandler(
		stubSubmissionService{response: response},
		stubGradingService{response: response},
		stubDashboardService{},
		zerolog.Nop(),
	)

	app := fiber.New()
	group := app.Group("/api/v1/submissions", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", "student")
		c.Locals("class_grade", 9)
		return c.Next()
	})
	h.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/41", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

package contract_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/handler"
	"github.com/noah-isme/tuition-go-api/internal/service"
)

type stubLateRequestService struct {
	response dto.LateRequestResponse
}

func (s stubLateRequestService) Create(context.Context, service.Principal, dto.LateRequestCreateRequest) (dto.LateRequestResponse, error) {
	return s.response, nil
}

func (s stubLateRequestService) Respond(context.Context, service.Principal, uint, dto.LateRequestRespondRequest) (dto.LateRequestResponse, error) {
	return s.response, nil
}

func (s stubLateRequestService) List(context.Context, service.Principal, dto.LateRequestFilter) ([]dto.LateRequestResponse, error) {
	return []dto.LateRequestResponse{s.response}, nil
}

func (s stubLateRequestService) Get(context.Context, service.Principal, uint) (dto.LateRequestResponse, error) {
	return s.response, nil
}

func newLateRequestApp(response dto.LateRequestResponse, role string) *fiber.App {
	h := handler.NewLateRequestHandler(stubLateRequestService{response: response}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/late-requests", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", role)
		c.Locals("class_grade", 9)
		return c.Next()
	})
	h.Register(group)

	return app
}

func TestPendingLateRequestContract(t *testing.T) {
	schema := compileSchema(t, "late_request.schema.json")

	response := dto.LateRequestResponse{
		ID:           5,
		AssignmentID: 10,
		StudentID:    3,
		Reason:       "I was hospitalized over the weekend.",
		Status:       "pending",
		RequestedAt:  time.Now().UTC(),
	}

	app := newLateRequestApp(response, "student")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/late-requests/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

func TestRespondedLateRequestContract(t *testing.T) {
	schema := compileSchema(t, "late_request.schema.json")

	now := time.Now().UTC()
	respondedAt := now.Add(2 * time.Hour)
	response := dto.LateRequestResponse{
		ID:              5,
		AssignmentID:    10,
		StudentID:       3,
		Reason:          "I was hospitalized over the weekend.",
		Status:          "approved",
		RequestedAt:     now,
		RespondedAt:     &respondedAt,
		TeacherResponse: "Get well soon, submit by Friday.",
	}

	app := newLateRequestApp(response, "teacher")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/late-requests/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	validateBody(t, schema, resp)
}

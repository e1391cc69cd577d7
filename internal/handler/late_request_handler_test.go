package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/service"
)

type erringLateRequestService struct {
	err error
}

func (s erringLateRequestService) Create(context.Context, service.Principal, dto.LateRequestCreateRequest) (dto.LateRequestResponse, error) {
	return dto.LateRequestResponse{}, s.err
}

func (s erringLateRequestService) Respond(context.Context, service.Principal, uint, dto.LateRequestRespondRequest) (dto.LateRequestResponse, error) {
	return dto.LateRequestResponse{}, s.err
}

func (s erringLateRequestService) List(context.Context, service.Principal, dto.LateRequestFilter) ([]dto.LateRequestResponse, error) {
	return nil, s.err
}

func (s erringLateRequestService) Get(context.Context, service.Principal, uint) (dto.LateRequestResponse, error) {
	return dto.LateRequestResponse{}, s.err
}

func newLateRequestTestApp(role string, err error) *fiber.App {
	h := NewLateRequestHandler(erringLateRequestService{err: err}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/late-requests", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(3))
		c.Locals("user_role", role)
		c.Locals("class_grade", 9)
		return c.Next()
	})
	h.Register(group)

	return app
}

func TestCreateLateRequestMapsNotOverdueToConflict(t *testing.T) {
	app := newLateRequestTestApp("student", service.ErrNotYetOverdue)

	resp := postJSON(t, app, "/late-requests", `{"assignment_id":10,"reason":"hospitalized all weekend"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateLateRequestMapsDuplicateToConflict(t *testing.T) {
	app := newLateRequestTestApp("student", service.ErrDuplicateRequest)

	resp := postJSON(t, app, "/late-requests", `{"assignment_id":10,"reason":"hospitalized all weekend"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRespondMapsRepeatDecisionToConflict(t *testing.T) {
	app := newLateRequestTestApp("teacher", service.ErrAlreadyResponded)

	resp := postJSON(t, app, "/late-requests/5/respond", `{"decision":"approved"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRespondRequiresTeacherRole(t *testing.T) {
	app := newLateRequestTestApp("student", nil)

	resp := postJSON(t, app, "/late-requests/5/respond", `{"decision":"approved"}`)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetLateRequestMapsMissingToNotFound(t *testing.T) {
	app := newLateRequestTestApp("student", service.ErrLateRequestNotFound)

	req := httptest.NewRequest(http.MethodGet, "/late-requests/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/internal/utils"
)

// LateRequestHandler manages late-submission request endpoints.
type LateRequestHandler struct {
	service service.LateRequestService
	logger  zerolog.Logger
}

// NewLateRequestHandler builds a late-request handler instance.
func NewLateRequestHandler(svc service.LateRequestService, logger zerolog.Logger) *LateRequestHandler {
	return &LateRequestHandler{
		service: svc,
		logger:  logger.With().Str("component", "late_request_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *LateRequestHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(models.RoleStudent), h.create)
	router.Post("/:id/respond", middleware.RequireRole(models.RoleTeacher), h.respond)
}

func (h *LateRequestHandler) list(c *fiber.Ctx) error {
	filter := dto.LateRequestFilter{}

	assignmentID, err := parseQueryUint(c, "assignment_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid assignment_id")
	}
	filter.AssignmentID = assignmentID

	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	filter.StudentID = studentID

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	requests, err := h.service.List(c.UserContext(), principalFromContext(c), filter)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "late requests retrieved", requests)
}

func (h *LateRequestHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	request, err := h.service.Get(c.UserContext(), principalFromContext(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "late request retrieved", request)
}

func (h *LateRequestHandler) create(c *fiber.Ctx) error {
	var payload dto.LateRequestCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.service.Create(c.UserContext(), principalFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	requestLogger(h.logger, c).Info().Uint("request_id", request.ID).Msg("late request filed")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "late request created", request)
}

func (h *LateRequestHandler) respond(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LateRequestRespondRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.service.Respond(c.UserContext(), principalFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "late request responded", request)
}

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

// ClassroomHandler manages virtual classroom endpoints.
type ClassroomHandler struct {
	service service.ClassroomService
	logger  zerolog.Logger
}

// NewClassroomHandler builds a classroom handler instance.
func NewClassroomHandler(svc service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: svc,
		logger:  logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ClassroomHandler) Register(router fiber.Router) {
	router.Get("/class/:classGrade", h.get)
	router.Put("/class/:classGrade/meeting-link", middleware.RequireRole(models.RoleTeacher), h.setMeetingLink)
}

func (h *ClassroomHandler) get(c *fiber.Ctx) error {
	classGrade, err := parseIntParam(c, "classGrade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	classroom, err := h.service.Get(c.UserContext(), principalFromContext(c), classGrade)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "classroom retrieved", classroom)
}

func (h *ClassroomHandler) setMeetingLink(c *fiber.Ctx) error {
	classGrade, err := parseIntParam(c, "classGrade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.MeetingLinkUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.SetMeetingLink(c.UserContext(), principalFromContext(c), classGrade, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "meeting link updated", classroom)
}

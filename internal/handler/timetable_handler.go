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

// TimetableHandler manages the weekly schedule endpoints.
type TimetableHandler struct {
	service service.TimetableService
	logger  zerolog.Logger
}

// NewTimetableHandler builds a timetable handler instance.
func NewTimetableHandler(svc service.TimetableService, logger zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		service: svc,
		logger:  logger.With().Str("component", "timetable_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *TimetableHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequireRole(models.RoleTeacher), h.listAll)
	router.Get("/class/:classGrade", h.listForClass)
	router.Post("", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Put("/:id", middleware.RequireRole(models.RoleTeacher), h.update)
	router.Delete("/:id", middleware.RequireRole(models.RoleTeacher), h.delete)
}

func (h *TimetableHandler) listAll(c *fiber.Ctx) error {
	entries, err := h.service.ListAll(c.UserContext(), principalFromContext(c))
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "timetable retrieved", entries)
}

func (h *TimetableHandler) listForClass(c *fiber.Ctx) error {
	classGrade, err := parseIntParam(c, "classGrade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := h.service.ListForClass(c.UserContext(), principalFromContext(c), classGrade)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "timetable retrieved", entries)
}

func (h *TimetableHandler) create(c *fiber.Ctx) error {
	var payload dto.TimetableEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.Create(c.UserContext(), principalFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	requestLogger(h.logger, c).Info().Uint("entry_id", entry.ID).Msg("timetable entry created")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "timetable entry created", entry)
}

func (h *TimetableHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TimetableEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	entry, err := h.service.Update(c.UserContext(), principalFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "timetable entry updated", entry)
}

func (h *TimetableHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), principalFromContext(c), id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "timetable entry deleted", nil)
}

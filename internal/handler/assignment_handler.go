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

// AssignmentHandler manages assignment registry endpoints.
type AssignmentHandler struct {
	service service.AssignmentService
	uploads service.UploadService
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(svc service.AssignmentService, uploads service.UploadService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: svc,
		uploads: uploads,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Put("/:id", middleware.RequireRole(models.RoleTeacher), h.update)
	router.Delete("/:id", middleware.RequireRole(models.RoleTeacher), h.delete)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	filter := service.AssignmentFilter{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}

	classGrade, err := parseQueryInt(c, "class_grade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class_grade")
	}
	filter.ClassGrade = classGrade

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	assignments, err := h.service.List(c.UserContext(), principalFromContext(c), filter)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Get(c.UserContext(), principalFromContext(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	// An attachment is optional and arrives as multipart alongside the form.
	attachmentURL := ""
	if file, err := c.FormFile("file"); err == nil && file != nil {
		reader, err := file.Open()
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "unable to read attachment")
		}
		defer reader.Close()

		stored, err := h.uploads.Store(c.UserContext(), file.Filename, reader)
		if err != nil {
			return sendServiceError(c, err)
		}
		attachmentURL = stored.URL
	}

	assignment, err := h.service.Create(c.UserContext(), principalFromContext(c), payload, attachmentURL)
	if err != nil {
		return sendServiceError(c, err)
	}

	requestLogger(h.logger, c).Info().Uint("assignment_id", assignment.ID).Msg("assignment created")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Update(c.UserContext(), principalFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), principalFromContext(c), id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "assignment deleted", nil)
}

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

// MaterialHandler manages learning-material endpoints.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler builds a material handler instance.
func NewMaterialHandler(svc service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: svc,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *MaterialHandler) Register(router fiber.Router) {
	router.Get("/class/:classGrade", h.listForClass)
	router.Post("", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Delete("/:id", middleware.RequireRole(models.RoleTeacher), h.delete)
}

func (h *MaterialHandler) listForClass(c *fiber.Ctx) error {
	classGrade, err := parseIntParam(c, "classGrade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	materials, err := h.service.ListForClass(c.UserContext(), principalFromContext(c), classGrade)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "materials retrieved", materials)
}

func (h *MaterialHandler) create(c *fiber.Ctx) error {
	var payload dto.MaterialCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read file")
	}
	defer reader.Close()

	material, err := h.service.Create(c.UserContext(), principalFromContext(c), payload, file.Filename, reader)
	if err != nil {
		return sendServiceError(c, err)
	}

	requestLogger(h.logger, c).Info().Uint("material_id", material.ID).Msg("material uploaded")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material created", material)
}

func (h *MaterialHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), principalFromContext(c), id); err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "material deleted", nil)
}

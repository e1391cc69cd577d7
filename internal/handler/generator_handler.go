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

// GeneratorHandler serves AI-assisted assignment drafts.
type GeneratorHandler struct {
	service service.GeneratorService
	logger  zerolog.Logger
}

// NewGeneratorHandler builds a generator handler instance.
func NewGeneratorHandler(svc service.GeneratorService, logger zerolog.Logger) *GeneratorHandler {
	return &GeneratorHandler{
		service: svc,
		logger:  logger.With().Str("component", "generator_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GeneratorHandler) Register(router fiber.Router) {
	router.Post("/assignment-draft", middleware.RequireRole(models.RoleTeacher), h.generate)
}

func (h *GeneratorHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := h.service.GenerateDraft(c.UserContext(), principalFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "draft generated", draft)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/internal/utils"
)

// UploadHandler manages standalone document uploads.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler builds an upload handler instance.
func NewUploadHandler(svc service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: svc,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("", middleware.RequireRole(models.RoleTeacher, models.RoleStudent), h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read file")
	}
	defer reader.Close()

	stored, err := h.service.Store(c.UserContext(), file.Filename, reader)
	if err != nil {
		return sendServiceError(c, err)
	}

	requestLogger(h.logger, c).Info().Str("filename", stored.Filename).Msg("file uploaded")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "file uploaded", stored)
}

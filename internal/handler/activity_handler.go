package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/repository"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/internal/utils"
)

// ActivityHandler exposes the audit log to teachers.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler builds an activity handler instance.
func NewActivityHandler(svc service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: svc,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequireRole(models.RoleTeacher), h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	filter := repository.ActivityLogFilter{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}

	actorID, err := parseQueryUint(c, "actor_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor_id")
	}
	filter.ActorID = actorID

	if limit, err := parseQueryInt(c, "limit"); err == nil && limit != nil {
		filter.Limit = *limit
	}

	entries, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "activity retrieved", entries)
}

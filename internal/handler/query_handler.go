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

// QueryHandler manages the class Q&A forum endpoints.
type QueryHandler struct {
	service service.QueryService
	logger  zerolog.Logger
}

// NewQueryHandler builds a query handler instance.
func NewQueryHandler(svc service.QueryService, logger zerolog.Logger) *QueryHandler {
	return &QueryHandler{
		service: svc,
		logger:  logger.With().Str("component", "query_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *QueryHandler) Register(router fiber.Router) {
	router.Get("/class/:classGrade", h.listForClass)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(models.RoleStudent), h.create)
	router.Post("/:id/replies", h.reply)
}

func (h *QueryHandler) listForClass(c *fiber.Ctx) error {
	classGrade, err := parseIntParam(c, "classGrade")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	queries, err := h.service.ListForClass(c.UserContext(), principalFromContext(c), classGrade)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "queries retrieved", queries)
}

func (h *QueryHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	query, err := h.service.Get(c.UserContext(), principalFromContext(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "query retrieved", query)
}

func (h *QueryHandler) create(c *fiber.Ctx) error {
	var payload dto.QueryCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	query, err := h.service.Create(c.UserContext(), principalFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "query created", query)
}

func (h *QueryHandler) reply(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.QueryReplyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	query, err := h.service.Reply(c.UserContext(), principalFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reply created", query)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/internal/utils"
)

// DashboardHandler serves the aggregated student dashboard.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(svc service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/student", middleware.RequireRole(models.RoleStudent), h.student)
}

func (h *DashboardHandler) student(c *fiber.Ctx) error {
	dashboard, err := h.service.StudentDashboard(c.UserContext(), principalFromContext(c))
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

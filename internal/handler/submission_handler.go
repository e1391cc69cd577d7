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

// SubmissionHandler manages submission and grading endpoints.
type SubmissionHandler struct {
	submissions service.SubmissionService
	grading     service.GradingService
	dashboards  service.DashboardService
	logger      zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(
	submissions service.SubmissionService,
	grading service.GradingService,
	dashboards service.DashboardService,
	logger zerolog.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		grading:     grading,
		dashboards:  dashboards,
		logger:      logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", middleware.RequireRole(models.RoleStudent), h.create)
	router.Post("/:id/grade", middleware.RequireRole(models.RoleTeacher), h.grade)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	filter := dto.SubmissionFilter{}

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

	submissions, err := h.submissions.List(c.UserContext(), principalFromContext(c), filter)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.submissions.Get(c.UserContext(), principalFromContext(c), id)
	if err != nil {
		return sendServiceError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	principal := principalFromContext(c)
	submission, err := h.submissions.Submit(c.UserContext(), principal, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.dashboards.Invalidate(c.UserContext(), principal.ID)
	requestLogger(h.logger, c).Info().Uint("submission_id", submission.ID).Msg("submission accepted")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission created", submission)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.grading.Grade(c.UserContext(), principalFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.dashboards.Invalidate(c.UserContext(), submission.StudentID)

	return utils.SendSuccess(c, "submission graded", submission)
}

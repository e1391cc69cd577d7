package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	value := c.Params(name)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return parsed, nil
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}
	result := uint(parsed)
	return &result, nil
}

func parseQueryInt(c *fiber.Ctx, key string) (*int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// principalFromContext builds the caller identity from the locals populated by
// the JWT middleware.
func principalFromContext(c *fiber.Ctx) service.Principal {
	principal := service.Principal{}

	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			principal.ID = id
		}
	}
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			principal.Role = role
		}
	}
	if v := c.Locals("class_grade"); v != nil {
		if grade, ok := v.(int); ok {
			principal.ClassGrade = &grade
		}
	}

	return principal
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendServiceError maps service sentinel errors onto HTTP status codes.
func sendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.Is(err, service.ErrMarksOutOfRange),
		errors.Is(err, service.ErrInvalidDayOfWeek),
		errors.Is(err, service.ErrInvalidTimeSlot):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrAlreadyResponded),
		errors.Is(err, service.ErrLateWithoutApproval),
		errors.Is(err, service.ErrNotYetOverdue),
		errors.Is(err, service.ErrAssignmentClosed):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrNotAssignmentOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrLateRequestNotFound),
		errors.Is(err, service.ErrQueryNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrClassroomNotFound),
		errors.Is(err, service.ErrTimetableEntryNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrGeneratorUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/tuition-go-api/internal/config"
	"github.com/noah-isme/tuition-go-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler  *handler.AssignmentHandler
	SubmissionHandler  *handler.SubmissionHandler
	LateRequestHandler *handler.LateRequestHandler
	MaterialHandler    *handler.MaterialHandler
	QueryHandler       *handler.QueryHandler
	ClassroomHandler   *handler.ClassroomHandler
	TimetableHandler   *handler.TimetableHandler
	DashboardHandler   *handler.DashboardHandler
	UploadHandler      *handler.UploadHandler
	GeneratorHandler   *handler.GeneratorHandler
	ActivityHandler    *handler.ActivityHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(api.Group("/assignments", jwtMiddleware))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwtMiddleware))
	}

	if deps.LateRequestHandler != nil {
		deps.LateRequestHandler.Register(api.Group("/late-requests", jwtMiddleware))
	}

	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(api.Group("/materials", jwtMiddleware))
	}

	if deps.QueryHandler != nil {
		deps.QueryHandler.Register(api.Group("/queries", jwtMiddleware))
	}

	if deps.ClassroomHandler != nil {
		deps.ClassroomHandler.Register(api.Group("/classrooms", jwtMiddleware))
	}

	if deps.TimetableHandler != nil {
		deps.TimetableHandler.Register(api.Group("/timetable", jwtMiddleware))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api.Group("/uploads", jwtMiddleware))
	}

	if deps.GeneratorHandler != nil {
		deps.GeneratorHandler.Register(api.Group("/generate", jwtMiddleware))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activity", jwtMiddleware))
	}
}

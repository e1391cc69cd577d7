package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tuition-go-api/internal/config"
	"github.com/noah-isme/tuition-go-api/internal/database"
	"github.com/noah-isme/tuition-go-api/internal/handler"
	"github.com/noah-isme/tuition-go-api/internal/middleware"
	"github.com/noah-isme/tuition-go-api/internal/models"
	"github.com/noah-isme/tuition-go-api/internal/observability"
	"github.com/noah-isme/tuition-go-api/internal/repository"
	"github.com/noah-isme/tuition-go-api/internal/router"
	"github.com/noah-isme/tuition-go-api/internal/service"
	"github.com/noah-isme/tuition-go-api/pkg/ai"
	cloud "github.com/noah-isme/tuition-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Assignment{},
		&models.Submission{},
		&models.SubmissionGradeHistory{},
		&models.LateSubmissionRequest{},
		&models.LearningMaterial{},
		&models.Query{},
		&models.QueryReply{},
		&models.VirtualClassroom{},
		&models.TimetableEntry{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	events := service.NewNopEventPublisher()
	if cfg.NATSURL != "" {
		natsConn, err := database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
		events = service.NewNATSEventPublisher(natsConn, logger)
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var draftGenerator ai.DraftGenerator
	if cfg.OpenAIAPIKey != "" {
		draftGenerator, err = ai.NewOpenAIDraftGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create draft generator: %v", err)
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	lateRequestRepo := repository.NewLateRequestRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	queryRepo := repository.NewQueryRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	uploadService := service.NewUploadService(uploader, cfg.UploadMaxSizeMB, logger, metrics)
	assignmentService := service.NewAssignmentService(assignmentRepo, submissionRepo, activityService, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, lateRequestRepo, validate, logger, metrics)
	lateRequestService := service.NewLateRequestService(lateRequestRepo, assignmentRepo, submissionRepo, events, activityService, validate, logger, metrics)
	gradingService := service.NewGradingService(submissionRepo, assignmentRepo, events, activityService, validate, logger, metrics)
	dashboardService := service.NewDashboardService(assignmentRepo, submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)
	materialService := service.NewMaterialService(materialRepo, uploadService, validate, logger)
	queryService := service.NewQueryService(queryRepo, validate, logger)
	classroomService := service.NewClassroomService(classroomRepo, validate, logger)
	timetableService := service.NewTimetableService(timetableRepo, validate, logger)
	generatorService := service.NewGeneratorService(draftGenerator, validate, logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
	})
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler:  handler.NewAssignmentHandler(assignmentService, uploadService, logger),
		SubmissionHandler:  handler.NewSubmissionHandler(submissionService, gradingService, dashboardService, logger),
		LateRequestHandler: handler.NewLateRequestHandler(lateRequestService, logger),
		MaterialHandler:    handler.NewMaterialHandler(materialService, logger),
		QueryHandler:       handler.NewQueryHandler(queryService, logger),
		ClassroomHandler:   handler.NewClassroomHandler(classroomService, logger),
		TimetableHandler:   handler.NewTimetableHandler(timetableService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		UploadHandler:      handler.NewUploadHandler(uploadService, logger),
		GeneratorHandler:   handler.NewGeneratorHandler(generatorService, logger),
		ActivityHandler:    handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("addr", cfg.HTTPAddress()).Msg("server started")

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

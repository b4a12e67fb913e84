package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-service/internal/api/http"
	"github.com/spec-kit/staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/staffing-service/internal/auth"
	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/mfa"
	"github.com/spec-kit/staffing-service/internal/observability"
	"github.com/spec-kit/staffing-service/internal/persistence"
	"github.com/spec-kit/staffing-service/internal/repository"
	"github.com/spec-kit/staffing-service/internal/service"
	"github.com/spec-kit/staffing-service/internal/storage"
	"github.com/spec-kit/staffing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	regionRepo := repository.NewRegionRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	checkinRepo := repository.NewCheckinCodeRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	mfaRepo := repository.NewMFARepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		MFARepo:           mfaRepo,
		PasswordResetRepo: resetRepo,
		CodeStore:         mfa.NewRedisCodeStore(redis.Client),
		Dispatcher:        dispatcher,
	})
	onboardingService := service.NewOnboardingService(*cfg, service.OnboardingDependencies{
		UserRepo:     userRepo,
		ProfileRepo:  profileRepo,
		DocumentRepo: documentRepo,
		FileStore:    fileStore,
		Dispatcher:   dispatcher,
	})
	rosterService := service.NewRosterService(service.RosterDependencies{
		RegionRepo:  regionRepo,
		VenueRepo:   venueRepo,
		EventRepo:   eventRepo,
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: assignmentRepo,
		EventRepo:      eventRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
	})
	checkinService := service.NewCheckinService(*cfg, service.CheckinDependencies{
		CheckinCodeRepo: checkinRepo,
		EventRepo:       eventRepo,
		AssignmentRepo:  assignmentRepo,
		Cache:           redis.Client,
		Dispatcher:      dispatcher,
	})
	payrollService := service.NewPayrollService(*cfg, service.PayrollDependencies{
		PaymentRepo:    paymentRepo,
		LeaveRepo:      leaveRepo,
		ProfileRepo:    profileRepo,
		AssignmentRepo: assignmentRepo,
		Dispatcher:     dispatcher,
	})
	documentService := service.NewDocumentService(*cfg, service.DocumentDependencies{
		DocumentRepo: documentRepo,
		FileStore:    fileStore,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxDocBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Vendors:        handlers.NewVendorsHandler(onboardingService, rosterService),
		Events:         handlers.NewEventsHandler(rosterService, assignmentService),
		Checkin:        handlers.NewCheckinHandler(checkinService),
		Payments:       handlers.NewPaymentsHandler(payrollService),
		Documents:      handlers.NewDocumentsHandler(documentService),
		Ops:            handlers.NewOpsHandler(metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

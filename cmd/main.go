package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Ezra-Tech-EB/BAHIS/internal/config"
	"github.com/Ezra-Tech-EB/BAHIS/internal/database/minio"
	"github.com/Ezra-Tech-EB/BAHIS/internal/database/postgres"
	"github.com/Ezra-Tech-EB/BAHIS/internal/event"
	"github.com/Ezra-Tech-EB/BAHIS/internal/handlers"
	"github.com/Ezra-Tech-EB/BAHIS/internal/refseq"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository"
	"github.com/Ezra-Tech-EB/BAHIS/internal/repository/memory"
	"github.com/Ezra-Tech-EB/BAHIS/internal/services"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/bahis", "log", "inspection_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewJSONHandler(file, nil)))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	// Repositories: PostgreSQL when reachable, in-memory fallback otherwise so
	// the service still boots in single-node and development setups.
	var (
		bookingRepo      repository.IBookingRepository
		importRepo       repository.IImportInspectionRepository
		farmInspRepo     repository.IFarmInspectionRepository
		surveillanceRepo repository.ISurveillanceRepository
		userRepo         repository.IUserRepository
		farmRepo         repository.IFarmRepository
		auditRepo        repository.IAuditRepository
	)

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		// Repositories cannot be rewired after boot, so a later reconnect
		// would leave the service memory-backed while reporting a healthy
		// database. Stay on the in-memory store until the process restarts.
		log.Printf("error connect to database: %s, serving from in-memory store until restart", err)

		store := memory.NewStore()
		bookingRepo = store
		importRepo = store.ImportInspections()
		farmInspRepo = store.FarmInspections()
		surveillanceRepo = store.Surveillance()
		userRepo = store.Users()
		farmRepo = store.Farms()
		auditRepo = store
	} else {
		bookingRepo = repository.NewBookingRepository(db)
		importRepo = repository.NewImportInspectionRepository(db)
		farmInspRepo = repository.NewFarmInspectionRepository(db)
		surveillanceRepo = repository.NewSurveillanceRepository(db)
		userRepo = repository.NewUserRepository(db)
		farmRepo = repository.NewFarmRepository(db)
		auditRepo = repository.NewAuditRepository(db)
	}

	// Reference sequencing: Redis shares one counter across instances; the
	// in-process sequencer covers single-node runs.
	var sequencer refseq.Sequencer
	redisClient, err := refseq.ConnectRedis(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Printf("error connect to redis: %s, using in-process sequencer", err)
		sequencer = refseq.NewMemorySequencer()
	} else {
		defer redisClient.Close()
		sequencer = refseq.NewRedisSequencer(redisClient)
	}
	refGen := refseq.NewGenerator(sequencer, cfg.WorkflowCfg.SequenceDigits)

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Printf("error connect to minio: %s, photo and report storage disabled", err)
		minioClient = nil
	}

	var publisher *event.Publisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("error connect to rabbitmq: %s, status events disabled", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewPublisher(rabbitConn)
	}

	photoService := services.NewPhotoService(minioClient, cfg.WorkflowCfg)
	bookingService := services.NewBookingService(bookingRepo, userRepo, importRepo, farmInspRepo, refGen, publisher)
	importService := services.NewImportInspectionService(importRepo, refGen, photoService, publisher)
	farmInspService := services.NewFarmInspectionService(farmInspRepo, farmRepo, refGen, photoService)
	surveillanceService := services.NewSurveillanceService(surveillanceRepo, farmInspRepo, refGen, photoService)
	userService := services.NewUserService(userRepo)
	farmService := services.NewFarmService(farmRepo)
	reportService := services.NewReportService(minioClient, importRepo, farmInspRepo, farmRepo, userRepo)
	dashboardService := services.NewDashboardService(bookingRepo, importRepo, farmInspRepo, surveillanceRepo, userRepo)
	auditService := services.NewAuditService(auditRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.WorkflowCfg.MaxPhotoBytes) * (cfg.WorkflowCfg.MaxPhotoCount + 1),
	})

	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "Inspection service is healthy",
			"database": postgres.DBStatus,
		})
	})

	handlers.NewBookingHandler(bookingService).RegisterRoutes(app)
	handlers.NewImportInspectionHandler(importService, reportService).RegisterRoutes(app)
	handlers.NewFarmInspectionHandler(farmInspService, reportService).RegisterRoutes(app)
	handlers.NewSurveillanceHandler(surveillanceService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app)
	handlers.NewFarmHandler(farmService).RegisterRoutes(app)
	handlers.NewDashboardHandler(dashboardService, auditService).RegisterRoutes(app)

	log.Printf("Inspection service listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"attendance/config"
	"attendance/domain"
	"attendance/services/attendance/delivery"
	"attendance/services/attendance/repository"
	"attendance/services/attendance/usecase"
)

var log *logrus.Logger
var wg sync.WaitGroup

const usecaseTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using process environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	redisClient := config.BootRedis()

	// Notification sink: WhatsApp in production, console everywhere else.
	var sink domain.NotificationSink
	if os.Getenv("SINK_BACKEND") == "whatsapp" {
		meow, err := config.InitMeow()
		if err != nil {
			log.Fatalf("Failed to init WhatsApp sink: %v", err)
			return
		}
		sink = repository.NewWhatsappSink(meow)
	} else {
		log.Info("SINK_BACKEND not set to whatsapp, notifications go to console")
		sink = repository.NewConsoleSink()
	}

	// Scan cool-down: shared via redis when configured.
	var cooldown domain.CooldownStore
	if redisClient != nil {
		cooldown = repository.NewRedisCooldown(redisClient, "attendance:scan")
	} else {
		log.Info("REDIS_ADDR not set, scan cool-down is per-process")
		cooldown = repository.NewMemoryCooldown()
	}

	// Repositories
	subjectRepo := repository.NewSubjectRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Usecases
	resolverUC := usecase.NewResolverUseCase(subjectRepo, usecaseTimeout)
	recorderUC := usecase.NewRecorderUseCase(attendanceRepo)
	dispatcherUC := usecase.NewDispatcherUseCase(notificationRepo, sink)
	subjectUC := usecase.NewSubjectUseCase(subjectRepo, usecaseTimeout)
	historyUC := usecase.NewNotificationHistoryUseCase(notificationRepo, usecaseTimeout)
	session := usecase.NewScanSession(resolverUC, recorderUC, dispatcherUC, cooldown, log)

	// Delivery
	delivery.NewScanHandler(app, session)
	if os.Getenv("APP_ENV") == "production" {
		delivery.NewAttendanceHandlerDeploy(app, attendanceRepo)
		delivery.NewSubjectHandlerDeploy(app, subjectUC)
		delivery.NewNotificationHandlerDeploy(app, historyUC)
	} else {
		delivery.NewAttendanceHandler(app, attendanceRepo)
		delivery.NewSubjectHandler(app, subjectUC)
		delivery.NewNotificationHandler(app, historyUC)
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		dbHealthy := err == nil && sqlDB.PingContext(c.Context()) == nil
		status := fiber.StatusOK
		if !dbHealthy {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status": "ok",
			"db":     dbHealthy,
			"redis":  config.RedisHealthy(c.Context(), redisClient),
		})
	})

	config.ServeMetrics(config.GetMetricsListenAddress())

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	// The scanner must stop producing transitions before the listener goes.
	session.Teardown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}

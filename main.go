// File: salonassist/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonassist/config"
	"salonassist/cron"
	"salonassist/database"
	appointmentRepo "salonassist/database/repository/appointment"
	"salonassist/handlers"
	"salonassist/middleware"
	"salonassist/routes"
	"salonassist/services/dialogue"
	"salonassist/services/salon"
	"salonassist/services/tasks"
	"salonassist/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Salon provider: deterministic fake or the Phorest REST API.
	salonAPI := salon.New(cfg)
	if cfg.UseFakeAPI {
		logger.Sugar().Info("main: using deterministic fake salon provider")
	}

	// Session store: Redis when configured, in-process memory otherwise.
	var sessionStore dialogue.SessionStore
	if cfg.RedisAddr != "" {
		sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
		sessionStore = dialogue.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	} else {
		logger.Sugar().Info("main: no redis configured, keeping chat sessions in memory")
		sessionStore = dialogue.NewMemorySessionStore()
	}

	// Appointment log: MongoDB when configured, in-process memory otherwise.
	var appointments appointmentRepo.AppointmentRepository
	if cfg.DatabaseURL != "" {
		database.InitDB()
		appointments = appointmentRepo.NewMongoAppointmentRepo()
	} else {
		logger.Sugar().Info("main: no database configured, keeping appointment log in memory")
		appointments = appointmentRepo.NewMemoryAppointmentRepo()
	}

	// Reminder queue: only runs with Redis behind it.
	var reminders *tasks.ReminderScheduler
	if cfg.RedisAddr != "" {
		reminders = tasks.NewReminderScheduler(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisReminderQueueDB,
		})
		cron.InitReminderWorker()
	}

	callTimeout := time.Duration(cfg.ProviderTimeoutSeconds) * time.Second
	machine := dialogue.NewMachine(salonAPI, appointments, reminders, logger, callTimeout)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Chat:         handlers.NewChatHandler(machine, sessionStore, logger),
		Directory:    handlers.NewDirectoryHandler(salonAPI, logger),
		Availability: handlers.NewAvailabilityHandler(salonAPI, logger),
		Booking:      handlers.NewBookingHandler(salonAPI, appointments, reminders, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

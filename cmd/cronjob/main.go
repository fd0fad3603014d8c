package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"device-rental-manager/internal/config"
	"device-rental-manager/internal/jobs"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
	"device-rental-manager/internal/repository/file"
	"device-rental-manager/internal/repository/postgres"
	"device-rental-manager/internal/scheduler"
	"device-rental-manager/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'flag-overdue-rentals', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize storage
	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open storage", "error", err)
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	// Initialize services
	var emailSvc service.EmailService
	if cfg.SMTP.Host != "" {
		emailSvc = service.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
	}
	rentalSvc := service.NewRentalService(store, emailSvc, cfg.Scheduling.SearchHorizonDays)

	jobServices := &jobs.Services{
		Email:  emailSvc,
		Rental: rentalSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "flag-overdue-rentals":
		jobRunner.FlagOverdueRentals()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - flag-overdue-rentals\n")
		fmt.Printf("  - send-return-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}

// openStore opens the configured storage backend and returns it with a
// cleanup function.
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Storage.Type {
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connection established", "host", cfg.Storage.Database.Host)
		return postgres.NewStore(db), func() { db.Close() }, nil
	default:
		if err := file.Init(cfg.Storage.Path); err != nil {
			return nil, nil, err
		}
		store, err := file.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

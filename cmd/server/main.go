package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"device-rental-manager/internal/api/httpapi"
	"device-rental-manager/internal/config"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
	"device-rental-manager/internal/repository/file"
	"device-rental-manager/internal/repository/postgres"
	"device-rental-manager/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting rental API server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Storage configuration", "type", cfg.Storage.Type)

	// Initialize storage
	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open storage", "error", err)
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	// Initialize services
	deviceSvc := service.NewDeviceService(store)
	customerSvc := service.NewCustomerService(store)
	rentalSvc := service.NewRentalService(store, nil, cfg.Scheduling.SearchHorizonDays)

	// Set up HTTP server
	srv := httpapi.NewServer(deviceSvc, customerSvc, rentalSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), srv); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
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

// Command rentalctl manages the device rental fleet from the terminal:
// fleet and customer registration, bookings, auto-scheduling, returns with
// settlement and the month occupancy calendar.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"

	"device-rental-manager/internal/config"
	"device-rental-manager/internal/extract"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
	"device-rental-manager/internal/repository/file"
	"device-rental-manager/internal/repository/postgres"
	"device-rental-manager/internal/service"
)

const usage = `Usage: rentalctl [flags] <command> [command flags] [args]

Commands:
  init                                   create an empty data file
  seed                                   create the data file with sample data
  add-device <name> <category> <rate>    register a device (rate in currency units per day)
  add-customer <name> <phone> <email>    register a customer
  rent <device> <customer> <start>       book a device from a start date
  auto-schedule <device> <customer> <not-before> <days>
                                         book the earliest free slot
  ai-rent <device> <customer> <text>     book from a natural-language request
  return <rental> <date>                 return a device and settle the fee
  maintenance <device>                   put a device into maintenance
  list-devices                           show the fleet
  list-customers                         show customers
  list-rentals                           show rentals
  calendar                               show the month occupancy calendar

Flags:
`

type app struct {
	cfg       *config.Config
	store     repository.Store
	cleanup   func()
	out       io.Writer
	devices   service.DeviceService
	customers service.CustomerService
	rentals   service.RentalService
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	dataPath := flag.String("data", "", "Override the data file path")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := loadConfig(*configPath)
	if *dataPath != "" {
		cfg.Storage.Type = "file"
		cfg.Storage.Path = *dataPath
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when the file
// does not exist so that rentalctl works out of the box.
func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	return cfg
}

func run(cfg *config.Config, command string, args []string) error {
	ctx := context.Background()

	// init and seed create the data file and cannot go through the normal
	// open path, which requires the file to exist.
	switch command {
	case "init":
		return runInit(cfg)
	case "seed":
		return runSeed(ctx, cfg)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	switch command {
	case "add-device":
		return a.runAddDevice(ctx, args)
	case "add-customer":
		return a.runAddCustomer(ctx, args)
	case "rent":
		return a.runRent(ctx, args)
	case "auto-schedule":
		return a.runAutoSchedule(ctx, args)
	case "ai-rent":
		return a.runAIRent(ctx, args)
	case "return":
		return a.runReturn(ctx, args)
	case "maintenance":
		return a.runMaintenance(ctx, args)
	case "list-devices":
		return a.runListDevices(ctx, args)
	case "list-customers":
		return a.runListCustomers(ctx)
	case "list-rentals":
		return a.runListRentals(ctx, args)
	case "calendar":
		return a.runCalendar(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func newApp(cfg *config.Config) (*app, error) {
	store, cleanup, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	var emailSvc service.EmailService
	if cfg.SMTP.Host != "" {
		emailSvc = service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	}

	return &app{
		cfg:       cfg,
		store:     store,
		cleanup:   cleanup,
		out:       os.Stdout,
		devices:   service.NewDeviceService(store),
		customers: service.NewCustomerService(store),
		rentals:   service.NewRentalService(store, emailSvc, cfg.Scheduling.SearchHorizonDays),
	}, nil
}

func (a *app) extractor() (extract.Extractor, error) {
	return extract.New(a.cfg.Extract)
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
		return postgres.NewStore(db), func() { db.Close() }, nil
	default:
		store, err := file.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

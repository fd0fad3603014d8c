package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"strconv"
	"time"

	"device-rental-manager/internal/config"
	"device-rental-manager/internal/repository/file"
	"device-rental-manager/internal/schedule"
	"device-rental-manager/internal/service"
)

func runInit(cfg *config.Config) error {
	if cfg.Storage.Type != "file" {
		return fmt.Errorf("init is only needed for the file backend")
	}
	if err := file.Init(cfg.Storage.Path); err != nil {
		return err
	}
	fmt.Printf("Created data file: %s\n", cfg.Storage.Path)
	return nil
}

// runSeed initializes the data file and fills it with a small sample fleet.
// Seeding is skipped when the store already holds any data.
func runSeed(ctx context.Context, cfg *config.Config) error {
	if err := runInit(cfg); err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.cleanup()

	devices, err := a.devices.ListDevices(ctx, "")
	if err != nil {
		return err
	}
	customers, err := a.customers.ListCustomers(ctx)
	if err != nil {
		return err
	}
	if len(devices) > 0 || len(customers) > 0 {
		fmt.Fprintln(a.out, "Data file is not empty, skipping sample data")
		return nil
	}

	camera, err := a.devices.AddDevice(ctx, "Sony A7M4", "camera", 22000)
	if err != nil {
		return err
	}
	lens, err := a.devices.AddDevice(ctx, "Canon EF 70-200 f/2.8", "lens", 8000)
	if err != nil {
		return err
	}
	monitor, err := a.devices.AddDevice(ctx, "Atomos Ninja V", "monitor", 4500)
	if err != nil {
		return err
	}

	alice, err := a.customers.AddCustomer(ctx, "Wang Xiaoyu", "13900000000", "xiaoyu@example.com")
	if err != nil {
		return err
	}
	bob, err := a.customers.AddCustomer(ctx, "Li Lei", "18800000000", "lilei@example.com")
	if err != nil {
		return err
	}

	today := schedule.Day(time.Now())
	if _, err := a.rentals.Book(ctx, service.BookRequest{
		DeviceID:   camera.ID,
		CustomerID: alice.ID,
		Start:      today,
		End:        today.AddDate(0, 0, 5),
		Notes:      "ad shoot",
	}); err != nil {
		return err
	}
	if _, err := a.rentals.Book(ctx, service.BookRequest{
		DeviceID:   lens.ID,
		CustomerID: bob.ID,
		Start:      today,
		End:        today.AddDate(0, 0, cfg.Scheduling.DefaultRentalDays),
		Notes:      "wedding shoot",
	}); err != nil {
		return err
	}
	if _, err := a.devices.SetMaintenance(ctx, monitor.ID, true); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sample data written to: %s\n", cfg.Storage.Path)
	return a.printSummary(ctx)
}

func (a *app) runAddDevice(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: add-device <name> <category> <day-rate>")
	}
	rate, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("day rate must be a number: %q", args[2])
	}
	device, err := a.devices.AddDevice(ctx, args[0], args[1], int64(math.Round(rate*100)))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added device %s (ID: %s)\n", device.Name, device.ID)
	return nil
}

func (a *app) runAddCustomer(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: add-customer <name> <phone> <email>")
	}
	customer, err := a.customers.AddCustomer(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added customer %s (ID: %s)\n", customer.Name, customer.ID)
	return nil
}

func (a *app) runRent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rent", flag.ContinueOnError)
	endStr := fs.String("end", "", "End date YYYY-MM-DD (exclusive)")
	days := fs.Int("days", 0, "Rental length in days, alternative to -end")
	address := fs.String("address", "", "Delivery address")
	notes := fs.String("notes", "", "Free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: rent [flags] <device-id> <customer-id> <start-date>")
	}

	start, err := schedule.ParseDate(fs.Arg(2))
	if err != nil {
		return err
	}
	var end time.Time
	switch {
	case *endStr != "" && *days != 0:
		return fmt.Errorf("give either -end or -days, not both")
	case *endStr != "":
		if end, err = schedule.ParseDate(*endStr); err != nil {
			return err
		}
	case *days != 0:
		end = start.AddDate(0, 0, *days)
	default:
		end = start.AddDate(0, 0, a.cfg.Scheduling.DefaultRentalDays)
	}

	rental, err := a.rentals.Book(ctx, service.BookRequest{
		DeviceID:   fs.Arg(0),
		CustomerID: fs.Arg(1),
		Start:      start,
		End:        end,
		Address:    *address,
		Notes:      *notes,
	})
	if err != nil {
		return err
	}
	a.printRentalReceipt("Rental created", rental)
	return nil
}

func (a *app) runAutoSchedule(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("auto-schedule", flag.ContinueOnError)
	address := fs.String("address", "", "Delivery address")
	notes := fs.String("notes", "", "Free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return fmt.Errorf("usage: auto-schedule [flags] <device-id> <customer-id> <not-before-date> <days>")
	}

	notBefore, err := schedule.ParseDate(fs.Arg(2))
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(fs.Arg(3))
	if err != nil || days < 1 {
		return fmt.Errorf("days must be a positive number: %q", fs.Arg(3))
	}

	rental, err := a.rentals.AutoSchedule(ctx, service.AutoScheduleRequest{
		DeviceID:     fs.Arg(0),
		CustomerID:   fs.Arg(1),
		DurationDays: days,
		NotBefore:    notBefore,
		Address:      *address,
		Notes:        *notes,
	})
	if err != nil {
		return err
	}
	a.printRentalReceipt("Auto-scheduled rental", rental)
	return nil
}

func (a *app) runAIRent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ai-rent", flag.ContinueOnError)
	fallbackDays := fs.Int("fallback-days", a.cfg.Scheduling.DefaultRentalDays,
		"Rental length when the text names no end date or duration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: ai-rent [flags] <device-id> <customer-id> <request-text>")
	}

	ext, err := a.extractor()
	if err != nil {
		return err
	}
	res, err := ext.Extract(ctx, fs.Arg(2))
	if err != nil {
		return err
	}

	rental, err := a.rentals.Book(ctx, service.BookRequest{
		DeviceID:   fs.Arg(0),
		CustomerID: fs.Arg(1),
		Start:      res.Start,
		End:        res.EndBound(*fallbackDays),
		Address:    res.Address,
		Notes:      fs.Arg(2),
	})
	if err != nil {
		return err
	}
	a.printRentalReceipt("Rental created from request text", rental)
	return nil
}

func (a *app) runReturn(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: return <rental-id> <return-date>")
	}
	returnDate, err := schedule.ParseDate(args[1])
	if err != nil {
		return err
	}
	rental, err := a.rentals.Return(ctx, args[0], returnDate)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Device returned, rental settled:")
	fmt.Fprintf(a.out, "  Rental ID: %s\n", rental.ID)
	fmt.Fprintf(a.out, "  Period:    %s ~ %s\n", schedule.FormatDate(rental.Start), schedule.FormatDate(rental.End))
	if rental.FeeCents != nil {
		fmt.Fprintf(a.out, "  Total fee: %s\n", formatMoney(*rental.FeeCents))
	}
	return nil
}

func (a *app) runMaintenance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maintenance", flag.ContinueOnError)
	clear := fs.Bool("clear", false, "Take the device out of maintenance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: maintenance [-clear] <device-id>")
	}
	device, err := a.devices.SetMaintenance(ctx, fs.Arg(0), !*clear)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Device %s is now %s\n", device.Name, device.Status)
	return nil
}

func formatMoney(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

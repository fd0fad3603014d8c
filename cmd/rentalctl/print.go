package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

func (a *app) runListDevices(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-devices", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status (available, scheduled, rented, maintenance)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	devices, err := a.devices.ListDevices(ctx, domain.DeviceStatus(*status))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tDAY RATE\tSTATUS")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s/day\t%s\n",
			d.ID, d.Name, d.Category, formatMoney(d.DayRateCents), d.Status)
	}
	return w.Flush()
}

func (a *app) runListCustomers(ctx context.Context) error {
	customers, err := a.customers.ListCustomers(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL")
	for _, c := range customers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email)
	}
	return w.Flush()
}

func (a *app) runListRentals(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list-rentals", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status (active, closed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rentals, err := a.rentals.ListRentals(ctx, domain.RentalStatus(*status))
	if err != nil {
		return err
	}
	deviceNames, customerNames, err := a.nameIndexes(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDEVICE\tCUSTOMER\tSTART\tEND\tSTATUS\tFEE\tNOTES")
	for _, r := range rentals {
		fee := "-"
		if r.FeeCents != nil {
			fee = formatMoney(*r.FeeCents)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, nameOrID(deviceNames, r.DeviceID), nameOrID(customerNames, r.CustomerID),
			schedule.FormatDate(r.Start), schedule.FormatDate(r.End), r.Status, fee, r.Notes)
	}
	return w.Flush()
}

// nameIndexes loads the device and customer name lookups used to render
// rentals with names instead of raw IDs.
func (a *app) nameIndexes(ctx context.Context) (map[string]string, map[string]string, error) {
	devices, err := a.devices.ListDevices(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	customers, err := a.customers.ListCustomers(ctx)
	if err != nil {
		return nil, nil, err
	}
	deviceNames := make(map[string]string, len(devices))
	for _, d := range devices {
		deviceNames[d.ID] = d.Name
	}
	customerNames := make(map[string]string, len(customers))
	for _, c := range customers {
		customerNames[c.ID] = c.Name
	}
	return deviceNames, customerNames, nil
}

// nameOrID falls back to the raw ID when the referenced record is gone.
func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// runCalendar prints one row per device for the requested month. Free days
// show a dot, maintenance days an X, and booked days a letter resolved in
// the legend below the grid.
func (a *app) runCalendar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	monthStr := fs.String("month", time.Now().UTC().Format("2006-01"), "Target month YYYY-MM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	month, err := time.Parse("2006-01", *monthStr)
	if err != nil {
		return fmt.Errorf("month must be formatted YYYY-MM: %q", *monthStr)
	}

	devices, err := a.devices.ListDevices(ctx, "")
	if err != nil {
		return err
	}
	rentals, err := a.rentals.ListRentals(ctx, "")
	if err != nil {
		return err
	}

	days := schedule.DaysInMonth(month.Year(), month.Month())
	fmt.Fprintf(a.out, "Calendar %s (%d days)\n\n", *monthStr, days)

	nameWidth := len("DEVICE")
	for _, d := range devices {
		if len(d.Name) > nameWidth {
			nameWidth = len(d.Name)
		}
	}

	// Header: day-of-month mod 10 so columns stay one character wide.
	var header strings.Builder
	for day := 1; day <= days; day++ {
		header.WriteByte(byte('0' + day%10))
	}
	fmt.Fprintf(a.out, "%-*s  %s\n", nameWidth, "DEVICE", header.String())

	marks := map[string]byte{}
	// No uppercase so a booking mark can never read as the X maintenance mark.
	letters := []byte("abcdefghijklmnopqrstuvwxyz0123456789")
	var order []string

	for row := range schedule.Month(month.Year(), month.Month(), devices, rentals) {
		line := make([]byte, days)
		for i, cell := range row.Cells {
			switch cell.State {
			case schedule.DayMaintenance:
				line[i] = 'X'
			case schedule.DayOccupied:
				mark, ok := marks[cell.RentalID]
				if !ok {
					if len(order) < len(letters) {
						mark = letters[len(order)]
					} else {
						mark = '#'
					}
					marks[cell.RentalID] = mark
					order = append(order, cell.RentalID)
				}
				line[i] = mark
			default:
				line[i] = '.'
			}
		}
		fmt.Fprintf(a.out, "%-*s  %s\n", nameWidth, row.DeviceName, line)
	}

	if len(order) > 0 {
		fmt.Fprintln(a.out, "\nLegend:")
		byID := make(map[string]domain.Rental, len(rentals))
		for _, r := range rentals {
			byID[r.ID] = r
		}
		for _, id := range order {
			r := byID[id]
			fmt.Fprintf(a.out, "  %c = %s  %s ~ %s (%s)\n",
				marks[id], id, schedule.FormatDate(r.Start), schedule.FormatDate(r.End), r.Status)
		}
	}
	return nil
}

func (a *app) printRentalReceipt(title string, rental *domain.Rental) {
	fmt.Fprintln(a.out, title+":")
	fmt.Fprintf(a.out, "  Rental ID:   %s\n", rental.ID)
	fmt.Fprintf(a.out, "  Device ID:   %s\n", rental.DeviceID)
	fmt.Fprintf(a.out, "  Customer ID: %s\n", rental.CustomerID)
	fmt.Fprintf(a.out, "  Period:      %s ~ %s\n", schedule.FormatDate(rental.Start), schedule.FormatDate(rental.End))
	if rental.Address != "" {
		fmt.Fprintf(a.out, "  Address:     %s\n", rental.Address)
	}
	if rental.Notes != "" {
		fmt.Fprintf(a.out, "  Notes:       %s\n", rental.Notes)
	}
}

func (a *app) printSummary(ctx context.Context) error {
	if err := a.runListDevices(ctx, nil); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	if err := a.runListCustomers(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return a.runListRentals(ctx, nil)
}

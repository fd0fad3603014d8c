package jobs

import (
	"context"
	"time"

	"device-rental-manager/internal/schedule"
)

// FlagOverdueRentals logs every active rental whose booked end has passed
// without a return. Rentals stay active until an operator records the
// return, so the job only flags them for follow-up.
func (jr *JobRunner) FlagOverdueRentals() {
	jr.runWithRecovery("FlagOverdueRentals", func() {
		ctx := context.Background()

		overdue, err := jr.services.Rental.Overdue(ctx, time.Now())
		if err != nil {
			jr.log.Error("Failed to list overdue rentals", "error", err)
			return
		}

		jr.log.Info("Flagged overdue rentals", "count", len(overdue))
		for _, rental := range overdue {
			jr.log.Warn("Rental is overdue",
				"rental_id", rental.ID,
				"device_id", rental.DeviceID,
				"customer_id", rental.CustomerID,
				"end_date", schedule.FormatDate(rental.End))
		}
	})
}

// SendReturnReminders emails customers whose rental ends within the next day.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		if jr.services.Email == nil {
			jr.log.Debug("Email notifications disabled, skipping return reminders")
			return
		}
		ctx := context.Background()

		ending, err := jr.services.Rental.EndingWithin(ctx, time.Now(), 1)
		if err != nil {
			jr.log.Error("Failed to list rentals ending soon", "error", err)
			return
		}

		sent := 0
		for _, rental := range ending {
			customer, err := jr.store.Customers().GetByID(ctx, rental.CustomerID)
			if err != nil {
				jr.log.Error("Failed to load customer for reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			if customer.Email == "" {
				continue
			}
			device, err := jr.store.Devices().GetByID(ctx, rental.DeviceID)
			if err != nil {
				jr.log.Error("Failed to load device for reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, customer, device, &rental); err != nil {
				jr.log.Error("Failed to send return reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}
		jr.log.Info("Sent return reminders", "count", sent)
	})
}

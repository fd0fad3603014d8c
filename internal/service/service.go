package service

import (
	"context"
	"time"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

type DeviceService interface {
	AddDevice(ctx context.Context, name, category string, dayRateCents int64) (*domain.Device, error)
	// SetMaintenance toggles the manual maintenance override. Clearing it
	// re-derives the device status from its active rentals.
	SetMaintenance(ctx context.Context, deviceID string, on bool) (*domain.Device, error)
	ListDevices(ctx context.Context, status domain.DeviceStatus) ([]domain.Device, error)
}

type CustomerService interface {
	AddCustomer(ctx context.Context, name, phone, email string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// BookRequest carries the parameters of a booking.
type BookRequest struct {
	DeviceID   string
	CustomerID string
	Start      time.Time
	End        time.Time
	Address    string
	Notes      string
}

// AutoScheduleRequest books the earliest open slot of the given length on or
// after NotBefore.
type AutoScheduleRequest struct {
	DeviceID     string
	CustomerID   string
	DurationDays int
	NotBefore    time.Time
	Address      string
	Notes        string
}

type RentalService interface {
	Book(ctx context.Context, req BookRequest) (*domain.Rental, error)
	AutoSchedule(ctx context.Context, req AutoScheduleRequest) (*domain.Rental, error)
	Return(ctx context.Context, rentalID string, actualEnd time.Time) (*domain.Rental, error)
	ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	// Overdue returns active rentals whose booked end has passed asOf.
	Overdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
	// EndingWithin returns active rentals whose booked end falls within the
	// next `days` days of asOf. Used for return reminders.
	EndingWithin(ctx context.Context, asOf time.Time, days int) ([]domain.Rental, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error
	SendSettlementSummary(ctx context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error
	SendReturnReminder(ctx context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error
}

// deriveDeviceStatus projects the device status from its active rentals.
// The stored field is authoritative but treated as a cached view with the
// lifecycle as its single writer; maintenance is sticky until cleared
// manually.
func deriveDeviceStatus(current domain.DeviceStatus, occupying []domain.Rental, now time.Time) domain.DeviceStatus {
	if current == domain.DeviceStatusMaintenance {
		return current
	}
	today := schedule.Day(now)
	scheduled := false
	for _, r := range occupying {
		if r.Status != domain.RentalStatusActive || !r.End.After(today) {
			continue
		}
		if !r.Start.After(today) {
			return domain.DeviceStatusRented
		}
		scheduled = true
	}
	if scheduled {
		return domain.DeviceStatusScheduled
	}
	return domain.DeviceStatusAvailable
}

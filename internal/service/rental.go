package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/logger"
	"device-rental-manager/internal/repository"
	"device-rental-manager/internal/schedule"
)

type rentalService struct {
	// mu serializes the check-then-commit sequence so long-running
	// surfaces (HTTP server, cron runner) cannot race two bookings into
	// the same slot.
	mu          sync.Mutex
	store       repository.Store
	emailSvc    EmailService // nil when notifications are disabled
	horizonDays int
}

func NewRentalService(store repository.Store, emailSvc EmailService, horizonDays int) RentalService {
	return &rentalService{
		store:       store,
		emailSvc:    emailSvc,
		horizonDays: horizonDays,
	}
}

func (s *rentalService) Book(ctx context.Context, req BookRequest) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book(ctx, req)
}

// book runs the full validate-then-commit sequence. Nothing is mutated
// until every check has passed, so a failed booking leaves both the
// in-memory collections and the data file untouched.
func (s *rentalService) book(ctx context.Context, req BookRequest) (*domain.Rental, error) {
	device, err := s.store.Devices().GetByID(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	}
	customer, err := s.store.Customers().GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if device.Status == domain.DeviceStatusMaintenance {
		return nil, fmt.Errorf("%w: device %q is in maintenance", domain.ErrSchedulingConflict, device.Name)
	}

	iv, err := schedule.NewInterval(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	occupying, err := s.store.Rentals().ListByDevice(ctx, device.ID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	if !schedule.NewAvailability(occupying).IsFree(iv) {
		return nil, fmt.Errorf("%w: device %q is already booked over %s", domain.ErrSchedulingConflict, device.Name, iv)
	}

	rental := &domain.Rental{
		ID:         uuid.NewString(),
		DeviceID:   device.ID,
		CustomerID: customer.ID,
		Start:      iv.Start,
		End:        iv.End,
		Address:    req.Address,
		Notes:      req.Notes,
		Status:     domain.RentalStatusActive,
		CreatedOn:  time.Now().UTC(),
	}
	if err := s.store.Rentals().Create(ctx, rental); err != nil {
		return nil, err
	}

	occupying = append(occupying, *rental)
	device.Status = deriveDeviceStatus(device.Status, occupying, time.Now())
	if err := s.store.Devices().Update(ctx, device); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	logger.Info("rental booked",
		"rental_id", rental.ID, "device", device.Name, "customer", customer.Name, "interval", iv.String())

	if s.emailSvc != nil && customer.Email != "" {
		if err := s.emailSvc.SendBookingConfirmation(ctx, customer, device, rental); err != nil {
			logger.Warn("failed to send booking confirmation", "rental_id", rental.ID, "error", err)
		}
	}
	return rental, nil
}

func (s *rentalService) AutoSchedule(ctx context.Context, req AutoScheduleRequest) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	device, err := s.store.Devices().GetByID(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	}
	if device.Status == domain.DeviceStatusMaintenance {
		return nil, fmt.Errorf("%w: device %q is in maintenance", domain.ErrSchedulingConflict, device.Name)
	}

	occupying, err := s.store.Rentals().ListByDevice(ctx, device.ID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	slot, err := schedule.NewAvailability(occupying).EarliestSlot(req.DurationDays, req.NotBefore, s.horizonDays)
	if err != nil {
		return nil, err
	}

	// The lock is held across search and booking, so the slot cannot be
	// taken in between.
	return s.book(ctx, BookRequest{
		DeviceID:   req.DeviceID,
		CustomerID: req.CustomerID,
		Start:      slot.Start,
		End:        slot.End,
		Address:    req.Address,
		Notes:      req.Notes,
	})
}

func (s *rentalService) Return(ctx context.Context, rentalID string, actualEnd time.Time) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental %s is already %s", domain.ErrInvalidState, rental.ID, rental.Status)
	}

	actualEnd = schedule.Day(actualEnd)
	if actualEnd.Before(rental.Start) {
		return nil, fmt.Errorf("%w: return date %s is before rental start %s",
			domain.ErrInvalidInterval, schedule.FormatDate(actualEnd), schedule.FormatDate(rental.Start))
	}

	device, err := s.store.Devices().GetByID(ctx, rental.DeviceID)
	if err != nil {
		return nil, err
	}

	// Shortening the booked interval is always safe. Extending it past the
	// booked end may collide with a later booking and must be re-validated
	// before anything is committed.
	if actualEnd.After(rental.End) {
		others, err := s.otherActiveRentals(ctx, rental.DeviceID, rental.ID)
		if err != nil {
			return nil, err
		}
		extended := schedule.Interval{Start: rental.Start, End: actualEnd}
		if !schedule.NewAvailability(others).IsFree(extended) {
			return nil, fmt.Errorf("%w: keeping device %q until %s collides with a later booking",
				domain.ErrSchedulingConflict, device.Name, schedule.FormatDate(actualEnd))
		}
	}

	rental.End = actualEnd
	rental.Status = domain.RentalStatusClosed
	fee := schedule.Fee(device.DayRateCents, rental.Start, actualEnd)
	rental.FeeCents = &fee
	if err := s.store.Rentals().Update(ctx, rental); err != nil {
		return nil, err
	}

	remaining, err := s.store.Rentals().ListByDevice(ctx, rental.DeviceID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	device.Status = deriveDeviceStatus(device.Status, remaining, time.Now())
	if err := s.store.Devices().Update(ctx, device); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}

	logger.Info("rental returned",
		"rental_id", rental.ID, "device", device.Name, "end", schedule.FormatDate(actualEnd), "fee_cents", fee)

	if s.emailSvc != nil {
		if customer, err := s.store.Customers().GetByID(ctx, rental.CustomerID); err == nil && customer.Email != "" {
			if err := s.emailSvc.SendSettlementSummary(ctx, customer, device, rental); err != nil {
				logger.Warn("failed to send settlement summary", "rental_id", rental.ID, "error", err)
			}
		}
	}
	return rental, nil
}

func (s *rentalService) otherActiveRentals(ctx context.Context, deviceID, excludeID string) ([]domain.Rental, error) {
	all, err := s.store.Rentals().ListByDevice(ctx, deviceID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	others := all[:0]
	for _, r := range all {
		if r.ID != excludeID {
			others = append(others, r)
		}
	}
	return others, nil
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.store.Rentals().List(ctx, status)
}

func (s *rentalService) Overdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	active, err := s.store.Rentals().List(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	today := schedule.Day(asOf)
	var overdue []domain.Rental
	for _, r := range active {
		if !r.End.After(today) {
			overdue = append(overdue, r)
		}
	}
	return overdue, nil
}

func (s *rentalService) EndingWithin(ctx context.Context, asOf time.Time, days int) ([]domain.Rental, error) {
	active, err := s.store.Rentals().List(ctx, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	today := schedule.Day(asOf)
	cutoff := today.AddDate(0, 0, days)
	var ending []domain.Rental
	for _, r := range active {
		if r.End.After(today) && !r.End.After(cutoff) {
			ending = append(ending, r)
		}
	}
	return ending, nil
}

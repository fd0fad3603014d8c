package file

import (
	"context"
	"fmt"
	"sort"

	"device-rental-manager/internal/domain"
)

// The repository views hand out copies so callers cannot mutate the store's
// state without going through Create/Update.

type deviceRepo struct{ s *Store }

func (r deviceRepo) Create(_ context.Context, d *domain.Device) error {
	cp := *d
	r.s.devices[d.ID] = &cp
	return nil
}

func (r deviceRepo) GetByID(_ context.Context, id string) (*domain.Device, error) {
	d, ok := r.s.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: device %s", domain.ErrNotFound, id)
	}
	cp := *d
	return &cp, nil
}

func (r deviceRepo) Update(_ context.Context, d *domain.Device) error {
	if _, ok := r.s.devices[d.ID]; !ok {
		return fmt.Errorf("%w: device %s", domain.ErrNotFound, d.ID)
	}
	cp := *d
	r.s.devices[d.ID] = &cp
	return nil
}

func (r deviceRepo) List(_ context.Context, status domain.DeviceStatus) ([]domain.Device, error) {
	devices := make([]domain.Device, 0, len(r.s.devices))
	for _, d := range r.s.devices {
		if status != "" && d.Status != status {
			continue
		}
		devices = append(devices, *d)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	return devices, nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *domain.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r customerRepo) List(_ context.Context) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

type rentalRepo struct{ s *Store }

func (r rentalRepo) Create(_ context.Context, rt *domain.Rental) error {
	cp := *rt
	r.s.rentals[rt.ID] = &cp
	return nil
}

func (r rentalRepo) GetByID(_ context.Context, id string) (*domain.Rental, error) {
	rt, ok := r.s.rentals[id]
	if !ok {
		return nil, fmt.Errorf("%w: rental %s", domain.ErrNotFound, id)
	}
	cp := *rt
	return &cp, nil
}

func (r rentalRepo) Update(_ context.Context, rt *domain.Rental) error {
	if _, ok := r.s.rentals[rt.ID]; !ok {
		return fmt.Errorf("%w: rental %s", domain.ErrNotFound, rt.ID)
	}
	cp := *rt
	r.s.rentals[rt.ID] = &cp
	return nil
}

func (r rentalRepo) List(_ context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	rentals := make([]domain.Rental, 0, len(r.s.rentals))
	for _, rt := range r.s.rentals {
		if status != "" && rt.Status != status {
			continue
		}
		rentals = append(rentals, *rt)
	}
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].Start.After(rentals[j].Start) })
	return rentals, nil
}

func (r rentalRepo) ListByDevice(_ context.Context, deviceID string, status domain.RentalStatus) ([]domain.Rental, error) {
	rentals := make([]domain.Rental, 0)
	for _, rt := range r.s.rentals {
		if rt.DeviceID != deviceID {
			continue
		}
		if status != "" && rt.Status != status {
			continue
		}
		rentals = append(rentals, *rt)
	}
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].Start.Before(rentals[j].Start) })
	return rentals, nil
}

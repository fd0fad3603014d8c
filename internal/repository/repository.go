package repository

import (
	"context"

	"device-rental-manager/internal/domain"
)

type DeviceRepository interface {
	Create(ctx context.Context, d *domain.Device) error
	GetByID(ctx context.Context, id string) (*domain.Device, error)
	Update(ctx context.Context, d *domain.Device) error
	// List returns devices sorted by name. An empty status matches all.
	List(ctx context.Context, status domain.DeviceStatus) ([]domain.Device, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// List returns customers sorted by name.
	List(ctx context.Context) ([]domain.Customer, error)
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	// List returns rentals sorted by start date descending. An empty status
	// matches all.
	List(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListByDevice(ctx context.Context, deviceID string, status domain.RentalStatus) ([]domain.Rental, error)
}

// Store bundles the entity repositories with the persistence commit
// boundary. Save is all-or-nothing: either the full state reaches durable
// storage or nothing changes on disk. Backends that write through on every
// operation may implement Save as a no-op.
type Store interface {
	Devices() DeviceRepository
	Customers() CustomerRepository
	Rentals() RentalRepository
	Save(ctx context.Context) error
}

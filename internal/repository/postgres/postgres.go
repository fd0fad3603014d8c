// Package postgres is the database-backed storage option. Rows are written
// through on every operation, so the Store's Save is a no-op.
//
// Expected schema:
//
//	devices   (id TEXT PRIMARY KEY, name TEXT, category TEXT, day_rate_cents BIGINT, status TEXT)
//	customers (id TEXT PRIMARY KEY, name TEXT, phone TEXT, email TEXT)
//	rentals   (id TEXT PRIMARY KEY, device_id TEXT, customer_id TEXT,
//	           start_date DATE, end_date DATE, address TEXT, notes TEXT,
//	           status TEXT, fee_cents BIGINT NULL, created_on TIMESTAMPTZ)
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"device-rental-manager/internal/repository"
)

type Store struct {
	db        *sql.DB
	devices   repository.DeviceRepository
	customers repository.CustomerRepository
	rentals   repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		devices:   NewDeviceRepository(db),
		customers: NewCustomerRepository(db),
		rentals:   NewRentalRepository(db),
	}
}

func (s *Store) Devices() repository.DeviceRepository     { return s.devices }
func (s *Store) Customers() repository.CustomerRepository { return s.customers }
func (s *Store) Rentals() repository.RentalRepository     { return s.rentals }

func (s *Store) Save(_ context.Context) error { return nil }

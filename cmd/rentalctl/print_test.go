package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-rental-manager/internal/config"
	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/repository/file"
	"device-rental-manager/internal/service"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rentals.json")
	require.NoError(t, file.Init(path))
	store, err := file.Open(path)
	require.NoError(t, err)

	device := &domain.Device{ID: "d1", Name: "Sony A7M4", Category: "camera", DayRateCents: 22000, Status: domain.DeviceStatusAvailable}
	customer := &domain.Customer{ID: "c1", Name: "Li Lei", Phone: "18800000000"}
	require.NoError(t, store.Devices().Create(ctx, device))
	require.NoError(t, store.Customers().Create(ctx, customer))
	require.NoError(t, store.Save(ctx))

	out := &bytes.Buffer{}
	return &app{
		cfg:       config.Default(),
		store:     store,
		cleanup:   func() {},
		out:       out,
		devices:   service.NewDeviceService(store),
		customers: service.NewCustomerService(store),
		rentals:   service.NewRentalService(store, nil, 365),
	}, out
}

func TestListRentalsShowsNames(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	rental, err := a.rentals.Book(ctx, service.BookRequest{
		DeviceID:   "d1",
		CustomerID: "c1",
		Start:      time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC),
		Notes:      "ad shoot",
	})
	require.NoError(t, err)

	require.NoError(t, a.runListRentals(ctx, nil))

	assert.Contains(t, out.String(), rental.ID)
	assert.Contains(t, out.String(), "Sony A7M4")
	assert.Contains(t, out.String(), "Li Lei")
	assert.Contains(t, out.String(), "ad shoot")
}

func TestListRentalsFallsBackToIDForMissingRecords(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	// A rental referencing records that no longer exist still renders, with
	// the raw IDs in place of names.
	orphan := &domain.Rental{
		ID:         "r-orphan",
		DeviceID:   "gone-device",
		CustomerID: "gone-customer",
		Start:      time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive,
	}
	require.NoError(t, a.store.Rentals().Create(ctx, orphan))

	require.NoError(t, a.runListRentals(ctx, nil))

	assert.Contains(t, out.String(), "gone-device")
	assert.Contains(t, out.String(), "gone-customer")
}

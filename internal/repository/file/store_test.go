package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-rental-manager/internal/domain"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "rentals.json")
}

func TestInitAndOpen(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, Init(path))

	s, err := Open(path)
	require.NoError(t, err)

	devices, err := s.Devices().List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, devices)

	// Init must not clobber an existing file.
	require.NoError(t, s.Devices().Create(context.Background(), &domain.Device{ID: "d1", Name: "Camera"}))
	require.NoError(t, s.Save(context.Background()))
	require.NoError(t, Init(path))
	reopened, err := Open(path)
	require.NoError(t, err)
	devices, err = reopened.Devices().List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(tempPath(t))
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestOpenCorruptFile(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Open(path)
	assert.ErrorIs(t, err, domain.ErrStorage)

	require.NoError(t, os.WriteFile(path, []byte(`{"rentals":[{"id":"r1","start_date":"someday","end_date":"2024-09-05","status":"active"}]}`), 0o644))
	_, err = Open(path)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t)
	require.NoError(t, Init(path))

	s, err := Open(path)
	require.NoError(t, err)

	device := &domain.Device{ID: "d1", Name: "Sony A7M4", Category: "camera", DayRateCents: 22000, Status: domain.DeviceStatusRented}
	customer := &domain.Customer{ID: "c1", Name: "Li Lei", Phone: "18800000000", Email: "lilei@example.com"}
	fee := int64(88000)
	rental := &domain.Rental{
		ID:         "r1",
		DeviceID:   "d1",
		CustomerID: "c1",
		Start:      time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Address:    "12 Harbor Rd",
		Notes:      "ad shoot",
		Status:     domain.RentalStatusClosed,
		FeeCents:   &fee,
		CreatedOn:  time.Date(2024, 8, 28, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.Devices().Create(ctx, device))
	require.NoError(t, s.Customers().Create(ctx, customer))
	require.NoError(t, s.Rentals().Create(ctx, rental))
	require.NoError(t, s.Save(ctx))

	reopened, err := Open(path)
	require.NoError(t, err)

	gotDevice, err := reopened.Devices().GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, device, gotDevice)

	gotCustomer, err := reopened.Customers().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, customer, gotCustomer)

	gotRental, err := reopened.Rentals().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rental, gotRental)
}

func TestUnsavedMutationsDoNotTouchDisk(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t)
	require.NoError(t, Init(path))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Devices().Create(ctx, &domain.Device{ID: "d1", Name: "Camera"}))

	// No Save: a fresh Open must not see the device.
	reopened, err := Open(path)
	require.NoError(t, err)
	_, err = reopened.Devices().GetByID(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepositoriesReturnCopies(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t)
	require.NoError(t, Init(path))
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Devices().Create(ctx, &domain.Device{ID: "d1", Name: "Camera", Status: domain.DeviceStatusAvailable}))
	got, err := s.Devices().GetByID(ctx, "d1")
	require.NoError(t, err)
	got.Status = domain.DeviceStatusMaintenance

	again, err := s.Devices().GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.DeviceStatusAvailable, again.Status)
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	path := tempPath(t)
	require.NoError(t, Init(path))
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Devices().Create(ctx, &domain.Device{ID: "d2", Name: "Lens"}))
	require.NoError(t, s.Devices().Create(ctx, &domain.Device{ID: "d1", Name: "Camera"}))
	devices, err := s.Devices().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "Camera", devices[0].Name)

	start := func(day int) time.Time { return time.Date(2024, 9, day, 0, 0, 0, 0, time.UTC) }
	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, s.Rentals().Create(ctx, &domain.Rental{
			ID: id, DeviceID: "d1", Start: start(i + 1), End: start(i + 2), Status: domain.RentalStatusActive,
		}))
	}
	rentals, err := s.Rentals().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, rentals, 3)
	assert.Equal(t, "r3", rentals[0].ID, "most recent start first")

	byDevice, err := s.Rentals().ListByDevice(ctx, "d1", domain.RentalStatusActive)
	require.NoError(t, err)
	require.Len(t, byDevice, 3)
	assert.Equal(t, "r1", byDevice[0].ID, "ascending by start for scheduling scans")
}

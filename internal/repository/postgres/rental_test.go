package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-rental-manager/internal/domain"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ID:         "r1",
		DeviceID:   "d1",
		CustomerID: "c1",
		Start:      time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusActive,
		CreatedOn:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO rentals").
		WithArgs(rental.ID, rental.DeviceID, rental.CustomerID, rental.Start, rental.End,
			"", "", rental.Status, nil, rental.CreatedOn).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, rental))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	cols := []string{"id", "device_id", "customer_id", "start_date", "end_date", "address", "notes", "status", "fee_cents", "created_on"}

	t.Run("Success", func(t *testing.T) {
		start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs("r1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("r1", "d1", "c1", start, end, "12 Harbor Rd", "", "closed", int64(88000), time.Now()))

		rt, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusClosed, rt.Status)
		require.NotNil(t, rt.FeeCents)
		assert.Equal(t, int64(88000), *rt.FeeCents)
		assert.Equal(t, start, rt.Start)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalRepository_ListByDevice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	cols := []string{"id", "device_id", "customer_id", "start_date", "end_date", "address", "notes", "status", "fee_cents", "created_on"}
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE device_id").
		WithArgs("d1", domain.RentalStatusActive).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("r1", "d1", "c1", start, start.AddDate(0, 0, 4), "", "", "active", nil, time.Now()).
			AddRow("r2", "d1", "c2", start.AddDate(0, 0, 9), start.AddDate(0, 0, 11), "", "", "active", nil, time.Now()))

	rentals, err := repo.ListByDevice(ctx, "d1", domain.RentalStatusActive)
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, "r1", rentals[0].ID)
	assert.Nil(t, rentals[0].FeeCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDeviceRepository(db)
	ctx := context.Background()

	device := &domain.Device{ID: "d1", Name: "Camera", Category: "camera", DayRateCents: 22000, Status: domain.DeviceStatusRented}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE devices SET").
			WithArgs(device.Name, device.Category, device.DayRateCents, device.Status, device.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Update(ctx, device))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE devices SET").
			WithArgs(device.Name, device.Category, device.DayRateCents, device.Status, device.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Update(ctx, device), domain.ErrNotFound)
	})
}

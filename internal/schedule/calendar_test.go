package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-rental-manager/internal/domain"
)

func collectRows(seq func(func(DeviceRow) bool)) []DeviceRow {
	var rows []DeviceRow
	seq(func(r DeviceRow) bool {
		rows = append(rows, r)
		return true
	})
	return rows
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 30, DaysInMonth(2024, time.September))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.Equal(t, 29, DaysInMonth(2024, time.February), "leap year")
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
}

func TestMonthEmptyCalendar(t *testing.T) {
	devices := []domain.Device{{ID: "d1", Name: "Camera", Status: domain.DeviceStatusAvailable}}

	rows := collectRows(Month(2024, time.September, devices, nil))
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Cells, 30)
	for i, cell := range rows[0].Cells {
		assert.Equal(t, DayFree, cell.State, "day %d", i+1)
	}
}

func TestMonthOccupancy(t *testing.T) {
	devices := []domain.Device{
		{ID: "d1", Name: "Camera", Status: domain.DeviceStatusRented},
		{ID: "d2", Name: "Lens", Status: domain.DeviceStatusAvailable},
	}
	rentals := []domain.Rental{
		activeRental(t, "r1", "2024-09-03", "2024-09-06"),
		{
			ID: "r2", DeviceID: "d2",
			Start: date(t, "2024-08-30"), End: date(t, "2024-09-02"),
			Status: domain.RentalStatusClosed,
		},
	}

	rows := collectRows(Month(2024, time.September, devices, rentals))
	require.Len(t, rows, 2)

	camera := rows[0]
	assert.Equal(t, DayFree, camera.Cells[1].State)
	assert.Equal(t, DayCell{State: DayOccupied, RentalID: "r1"}, camera.Cells[2], "Sep 3")
	assert.Equal(t, DayCell{State: DayOccupied, RentalID: "r1"}, camera.Cells[4], "Sep 5")
	assert.Equal(t, DayFree, camera.Cells[5].State, "Sep 6 is past the half-open end")

	lens := rows[1]
	assert.Equal(t, DayCell{State: DayOccupied, RentalID: "r2"}, lens.Cells[0], "closed rentals still show on past days")
	assert.Equal(t, DayFree, lens.Cells[1].State)
}

func TestMonthMaintenanceOverridesRentals(t *testing.T) {
	devices := []domain.Device{{ID: "d1", Name: "Monitor", Status: domain.DeviceStatusMaintenance}}
	rentals := []domain.Rental{activeRental(t, "r1", "2024-09-03", "2024-09-06")}

	rows := collectRows(Month(2024, time.September, devices, rentals))
	require.Len(t, rows, 1)
	for i, cell := range rows[0].Cells {
		assert.Equal(t, DayMaintenance, cell.State, "day %d", i+1)
	}
}

func TestMonthSequenceIsRestartable(t *testing.T) {
	devices := []domain.Device{
		{ID: "d1", Name: "Camera", Status: domain.DeviceStatusAvailable},
		{ID: "d2", Name: "Lens", Status: domain.DeviceStatusAvailable},
	}
	seq := Month(2024, time.February, devices, nil)

	first := collectRows(seq)
	second := collectRows(seq)
	assert.Equal(t, first, second)
	require.Len(t, second, 2)
	assert.Len(t, second[0].Cells, 29)

	// Early break must not panic or leak.
	seq(func(DeviceRow) bool { return false })
}

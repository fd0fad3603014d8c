package schedule

import (
	"iter"
	"time"

	"device-rental-manager/internal/domain"
)

// DayState tags the occupancy of one device on one day.
type DayState int

const (
	DayFree DayState = iota
	DayOccupied
	DayMaintenance
)

// DayCell is a tagged occupancy marker. RentalID is set only when State is
// DayOccupied.
type DayCell struct {
	State    DayState
	RentalID string
}

// DeviceRow is one calendar row: a device and one cell per day of the month.
type DeviceRow struct {
	DeviceID   string
	DeviceName string
	Cells      []DayCell
}

// DaysInMonth returns the number of calendar days in the given month,
// leap-year February included.
func DaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return int(first.AddDate(0, 1, 0).Sub(first).Hours() / 24)
}

// Month projects the rentals of one month into an occupancy row per device.
// A device in maintenance renders maintenance markers for every day
// regardless of its rentals. The returned sequence is lazy, finite and
// restartable, and iterating it never mutates the underlying collections.
func Month(year int, month time.Month, devices []domain.Device, rentals []domain.Rental) iter.Seq[DeviceRow] {
	return func(yield func(DeviceRow) bool) {
		days := DaysInMonth(year, month)
		byDevice := make(map[string][]domain.Rental, len(devices))
		for _, r := range rentals {
			byDevice[r.DeviceID] = append(byDevice[r.DeviceID], r)
		}
		for _, d := range devices {
			row := DeviceRow{DeviceID: d.ID, DeviceName: d.Name, Cells: make([]DayCell, days)}
			if d.Status == domain.DeviceStatusMaintenance {
				for i := range row.Cells {
					row.Cells[i] = DayCell{State: DayMaintenance}
				}
				if !yield(row) {
					return
				}
				continue
			}
			for i := range row.Cells {
				day := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)
				for _, r := range byDevice[d.ID] {
					iv := Interval{Start: Day(r.Start), End: Day(r.End)}
					if iv.Contains(day) {
						row.Cells[i] = DayCell{State: DayOccupied, RentalID: r.ID}
						break
					}
				}
			}
			if !yield(row) {
				return
			}
		}
	}
}

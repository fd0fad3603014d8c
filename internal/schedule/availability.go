package schedule

import (
	"fmt"
	"sort"
	"time"

	"device-rental-manager/internal/domain"
)

// Availability indexes the occupying intervals of a single device. It is a
// transient view rebuilt on demand from the device's active rentals and is
// never persisted.
type Availability struct {
	booked []Interval
}

// NewAvailability builds the index from the rentals referencing one device.
// Only active rentals occupy; closed ones are ignored.
func NewAvailability(rentals []domain.Rental) *Availability {
	booked := make([]Interval, 0, len(rentals))
	for _, r := range rentals {
		if r.Status != domain.RentalStatusActive {
			continue
		}
		iv := Interval{Start: Day(r.Start), End: Day(r.End)}
		if !iv.End.After(iv.Start) {
			continue
		}
		booked = append(booked, iv)
	}
	sort.Slice(booked, func(i, j int) bool {
		return booked[i].Start.Before(booked[j].Start)
	})
	return &Availability{booked: booked}
}

// IsFree reports whether the requested interval collides with no occupying
// interval. This check is the sole guarantee against double-booking and must
// pass before any rental is committed.
func (a *Availability) IsFree(iv Interval) bool {
	for _, b := range a.booked {
		if iv.Overlaps(b) {
			return false
		}
	}
	return true
}

// EarliestSlot scans the occupying intervals in start order and returns the
// first gap of durationDays on or after notBefore. Past the last booking the
// cursor slot always fits, so the search only fails when horizonDays > 0 and
// the found slot starts more than horizonDays after notBefore.
func (a *Availability) EarliestSlot(durationDays int, notBefore time.Time, horizonDays int) (Interval, error) {
	if durationDays < 1 {
		return Interval{}, fmt.Errorf("%w: duration must be at least one day, got %d",
			domain.ErrInvalidInterval, durationDays)
	}
	cursor := Day(notBefore)
	slot := Interval{}
	for _, b := range a.booked {
		if !cursor.AddDate(0, 0, durationDays).After(b.Start) {
			slot = Interval{Start: cursor, End: cursor.AddDate(0, 0, durationDays)}
			break
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if slot.Start.IsZero() {
		slot = Interval{Start: cursor, End: cursor.AddDate(0, 0, durationDays)}
	}
	if horizonDays > 0 && slot.Start.After(Day(notBefore).AddDate(0, 0, horizonDays)) {
		return Interval{}, fmt.Errorf("%w: no %d-day opening within %d days of %s",
			domain.ErrNoSlotFound, durationDays, horizonDays, FormatDate(notBefore))
	}
	return slot, nil
}

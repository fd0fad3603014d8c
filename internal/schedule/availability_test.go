package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-rental-manager/internal/domain"
)

func activeRental(t *testing.T, id, start, end string) domain.Rental {
	t.Helper()
	return domain.Rental{
		ID:       id,
		DeviceID: "d1",
		Start:    date(t, start),
		End:      date(t, end),
		Status:   domain.RentalStatusActive,
	}
}

func TestAvailabilityIsFree(t *testing.T) {
	idx := NewAvailability([]domain.Rental{
		activeRental(t, "r1", "2024-09-01", "2024-09-05"),
		activeRental(t, "r2", "2024-09-10", "2024-09-12"),
	})

	t.Run("BackToBack", func(t *testing.T) {
		assert.True(t, idx.IsFree(ival(t, "2024-09-05", "2024-09-08")))
	})

	t.Run("Overlap", func(t *testing.T) {
		assert.False(t, idx.IsFree(ival(t, "2024-09-04", "2024-09-06")))
	})

	t.Run("GapBetweenBookings", func(t *testing.T) {
		assert.True(t, idx.IsFree(ival(t, "2024-09-05", "2024-09-10")))
	})

	t.Run("ClosedRentalsDoNotOccupy", func(t *testing.T) {
		closed := activeRental(t, "r3", "2024-09-06", "2024-09-08")
		closed.Status = domain.RentalStatusClosed
		idx := NewAvailability([]domain.Rental{closed})
		assert.True(t, idx.IsFree(ival(t, "2024-09-06", "2024-09-08")))
	})
}

func TestAvailabilityEarliestSlot(t *testing.T) {
	t.Run("EmptyCalendar", func(t *testing.T) {
		idx := NewAvailability(nil)
		slot, err := idx.EarliestSlot(4, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-09-01", "2024-09-05"), slot)
	})

	t.Run("FitsBeforeFirstBooking", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-10", "2024-09-15"),
		})
		slot, err := idx.EarliestSlot(3, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-09-01", "2024-09-04"), slot)
	})

	t.Run("FitsInGap", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-01", "2024-09-05"),
			activeRental(t, "r2", "2024-09-08", "2024-09-12"),
		})
		slot, err := idx.EarliestSlot(3, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-09-05", "2024-09-08"), slot)
	})

	t.Run("GapTooSmall", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-01", "2024-09-05"),
			activeRental(t, "r2", "2024-09-07", "2024-09-12"),
		})
		slot, err := idx.EarliestSlot(3, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-09-12", "2024-09-15"), slot)
	})

	t.Run("UnsortedInput", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r2", "2024-09-08", "2024-09-12"),
			activeRental(t, "r1", "2024-09-01", "2024-09-05"),
		})
		slot, err := idx.EarliestSlot(2, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-09-05", "2024-09-07"), slot)
	})

	t.Run("HorizonExceeded", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-01", "2024-12-01"),
		})
		_, err := idx.EarliestSlot(4, date(t, "2024-09-01"), 30)
		assert.ErrorIs(t, err, domain.ErrNoSlotFound)
	})

	t.Run("NoHorizonAlwaysSucceeds", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-01", "2024-12-01"),
		})
		slot, err := idx.EarliestSlot(4, date(t, "2024-09-01"), 0)
		require.NoError(t, err)
		assert.Equal(t, ival(t, "2024-12-01", "2024-12-05"), slot)
	})

	t.Run("NonPositiveDuration", func(t *testing.T) {
		idx := NewAvailability(nil)
		_, err := idx.EarliestSlot(0, date(t, "2024-09-01"), 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})

	// The returned slot must always pass IsFree on the same index.
	t.Run("SlotAlwaysFree", func(t *testing.T) {
		idx := NewAvailability([]domain.Rental{
			activeRental(t, "r1", "2024-09-02", "2024-09-04"),
			activeRental(t, "r2", "2024-09-04", "2024-09-09"),
			activeRental(t, "r3", "2024-09-15", "2024-09-20"),
		})
		for _, dur := range []int{1, 3, 5, 10, 40} {
			slot, err := idx.EarliestSlot(dur, date(t, "2024-09-01"), 0)
			require.NoError(t, err)
			assert.True(t, idx.IsFree(slot), "slot %s for duration %d", slot, dur)
			assert.Equal(t, dur, slot.Days())
		}
	})
}

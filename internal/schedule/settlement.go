package schedule

import "time"

// Fee computes the settlement amount for a returned rental from the device
// day rate and the actual duration. The minimum billable unit is one day, so
// a same-day return still charges one day's rate. Pure function.
func Fee(dayRateCents int64, start, actualEnd time.Time) int64 {
	days := int64(Day(actualEnd).Sub(Day(start)).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return dayRateCents * days
}

package schedule

import (
	"fmt"
	"time"

	"device-rental-manager/internal/domain"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Interval is a half-open [Start, End) range of calendar days. Both bounds
// are UTC midnights.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds a day-granular interval. End must be strictly after
// Start; zero-length intervals are invalid.
func NewInterval(start, end time.Time) (Interval, error) {
	start, end = Day(start), Day(end)
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: end %s must be after start %s",
			domain.ErrInvalidInterval, end.Format(DateFormat), start.Format(DateFormat))
	}
	return Interval{Start: start, End: end}, nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", domain.ErrInvalidInterval, s)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Overlaps reports whether the two ranges share at least one day. Touching
// intervals (a.End == b.Start) do not overlap, which is what allows
// back-to-back bookings.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether the given day falls inside the interval.
func (a Interval) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(a.Start) && day.Before(a.End)
}

// Days returns the interval length in whole days, >= 1 for any interval
// built with NewInterval.
func (a Interval) Days() int {
	return int(a.End.Sub(a.Start).Hours() / 24)
}

func (a Interval) String() string {
	return fmt.Sprintf("[%s, %s)", FormatDate(a.Start), FormatDate(a.End))
}

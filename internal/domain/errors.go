package domain

import "errors"

var (
	// ErrInvalidInterval reports a malformed date range (end <= start,
	// unparseable date, non-positive duration).
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrSchedulingConflict reports an overlapping booking or a
	// maintenance-blocked device.
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrInvalidState reports an operation on a rental that is not in the
	// required status, e.g. returning a closed rental.
	ErrInvalidState = errors.New("invalid rental state")

	// ErrNoSlotFound reports that auto-scheduling exhausted the configured
	// search horizon.
	ErrNoSlotFound = errors.New("no open slot found")

	// ErrExtractionFailed reports that the natural-language extractor could
	// not produce rental details from the prompt.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrStorage reports a persistence failure (missing or corrupt data
	// file, failed write, database error).
	ErrStorage = errors.New("storage failure")

	// ErrNotFound reports a missing device, customer or rental.
	ErrNotFound = errors.New("not found")
)

package services

import "errors"

// Reporting error taxonomy. Validation errors carry detail to the caller;
// data and computation errors surface a generic message and are logged in
// full at the handler boundary.
var (
	// ErrInvalidOwner is returned when the owner id is missing or not positive.
	ErrInvalidOwner = errors.New("invalid owner id")

	// ErrInvalidPeriod is returned for an unrecognized period token, or for
	// a custom period missing either bound.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDateRange is returned when a range's start falls after its end.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDataUnavailable is returned when the underlying snapshot fetch fails.
	ErrDataUnavailable = errors.New("report data unavailable")

	// ErrComputationFault is returned when report assembly fails after the
	// snapshot was fetched.
	ErrComputationFault = errors.New("report computation fault")
)

package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrListingNotFound means the listing does not exist.
	ErrListingNotFound = errors.New("listing not found")
	// ErrListingUnavailable means the listing exists but is not approved for booking.
	ErrListingUnavailable = errors.New("listing not available for booking")
	// ErrInvalidDateRange covers inverted, empty, past or unparseable date ranges.
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrGuestsExceedMax means the party is larger than the listing allows.
	ErrGuestsExceedMax = errors.New("guests exceed listing capacity")
	// ErrDatesUnavailable means a persisted booking overlaps the requested range.
	ErrDatesUnavailable = errors.New("dates unavailable")
)

// GuestsExceedMaxError carries the capacity that was exceeded.
type GuestsExceedMaxError struct {
	MaxGuests int
}

func (e *GuestsExceedMaxError) Error() string {
	return fmt.Sprintf("%s: maximum is %d", ErrGuestsExceedMax, e.MaxGuests)
}

func (e *GuestsExceedMaxError) Unwrap() error { return ErrGuestsExceedMax }

func invalidRange(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDateRange, reason)
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staybook/database/repository"
	"staybook/models"
)

// ListingLookup loads a listing by id. Missing listings yield repository.ErrNotFound.
type ListingLookup interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
}

// BookingFinder returns bookings whose stored interval satisfies
// checkIn < iv.CheckOut AND checkOut > iv.CheckIn.
type BookingFinder interface {
	FindOverlapping(ctx context.Context, listingID string, iv Interval) ([]models.Booking, error)
	FindOverlappingAny(ctx context.Context, iv Interval) ([]models.Booking, error)
}

// Request is a proposed stay against one listing.
type Request struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	NumGuests int
}

// Decision is returned when a request may proceed; the interval holds the
// normalized dates to persist.
type Decision struct {
	Listing  *models.Listing
	Interval Interval
}

// Checker decides whether a listing can take a booking for a date range.
// It only reads; persisting the booking is the caller's job.
type Checker struct {
	Listings ListingLookup
	Bookings BookingFinder
	Clock    Clock
	Location *time.Location
}

// NewChecker wires a Checker. A nil clock means the system clock.
func NewChecker(listings ListingLookup, bookings BookingFinder, clock Clock, loc *time.Location) *Checker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Checker{Listings: listings, Bookings: bookings, Clock: clock, Location: loc}
}

// Check runs the booking rules in order and returns the first failure.
func (c *Checker) Check(ctx context.Context, req Request) (Decision, error) {
	iv, err := NewInterval(req.CheckIn, req.CheckOut, c.Location)
	if err != nil {
		return Decision{}, err
	}

	listing, err := c.Listings.GetByID(ctx, req.ListingID)
	if errors.Is(err, repository.ErrNotFound) {
		return Decision{}, ErrListingNotFound
	}
	if err != nil {
		return Decision{}, fmt.Errorf("availability: load listing %s: %w", req.ListingID, err)
	}
	if !listing.IsBookable() {
		return Decision{}, ErrListingUnavailable
	}

	today := StartOfDay(c.Clock.Now(), c.Location)
	if iv.CheckIn.Before(today) {
		return Decision{}, invalidRange("check-in is in the past")
	}

	if req.NumGuests > listing.MaxGuests {
		return Decision{}, &GuestsExceedMaxError{MaxGuests: listing.MaxGuests}
	}

	existing, err := c.Bookings.FindOverlapping(ctx, listing.ID, iv)
	if err != nil {
		return Decision{}, fmt.Errorf("availability: find overlapping bookings: %w", err)
	}
	for _, b := range existing {
		if iv.Overlaps(Of(b)) {
			return Decision{}, ErrDatesUnavailable
		}
	}

	return Decision{Listing: listing, Interval: iv}, nil
}
